package domain

// Author is a catalog author. Names are unique case-insensitively; the store
// creates authors lazily on first reference by a book and removes them once
// no book links to them.
type Author struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required"`
}
