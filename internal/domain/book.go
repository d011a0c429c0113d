// Package domain contains the core catalog entities for the BookWorm library.
package domain

// Book represents a catalog entry with its authors and per-book user data.
// The ID is assigned by the store on insert.
type Book struct {
	ID          int64    `json:"id"`
	ISBN10      string   `json:"isbn10,omitempty"`
	ISBN13      string   `json:"isbn13,omitempty"`
	Title       string   `json:"title" validate:"required"`
	Subtitle    string   `json:"subtitle,omitempty"`
	Publisher   string   `json:"publisher,omitempty"`
	Description string   `json:"description,omitempty"`
	Format      string   `json:"format,omitempty"`
	Subject     string   `json:"subject,omitempty"`
	PublishedAt int64    `json:"published_at,omitempty"` // Unix seconds
	Authors     []Author `json:"authors"`
	UserData    UserData `json:"user_data"`
}

// AuthorNames returns the author names in input order.
func (b *Book) AuthorNames() []string {
	names := make([]string, 0, len(b.Authors))
	for _, a := range b.Authors {
		names = append(names, a.Name)
	}
	return names
}

// UserData is the per-book annotation record: read status, rating, and an
// optional free-text blurb. Exactly one row exists per persisted book.
type UserData struct {
	Read   bool   `json:"read"`
	Rating int    `json:"rating" validate:"min=0,max=5"`
	Blurb  string `json:"blurb,omitempty"`
}
