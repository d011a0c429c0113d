package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookwormapp/bookworm-server/internal/domain"
	domainerrors "github.com/bookwormapp/bookworm-server/internal/errors"
)

func TestValidate_ValidBook(t *testing.T) {
	v := New()

	book := &domain.Book{
		Title:    "Dune",
		UserData: domain.UserData{Rating: 5},
	}

	assert.NoError(t, v.Validate(book))
}

func TestValidate_MissingTitle(t *testing.T) {
	v := New()

	err := v.Validate(&domain.Book{})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", details["title"])
}

func TestValidate_RatingOutOfRange(t *testing.T) {
	v := New()

	err := v.Validate(&domain.Book{
		Title:    "Dune",
		UserData: domain.UserData{Rating: 6},
	})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "rating")
}
