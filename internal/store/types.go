package store

// SortOrder selects the ordering of the catalog listing.
type SortOrder string

// Sort orders accepted by ListCatalog. Any other value means no ordering.
const (
	SortNone       SortOrder = ""
	SortTitleAsc   SortOrder = "title-asc"
	SortTitleDesc  SortOrder = "title-desc"
	SortRatingAsc  SortOrder = "rating-asc"
	SortRatingDesc SortOrder = "rating-desc"
)

// ParseSortOrder maps a symbolic sort token to a SortOrder.
// Unknown tokens map to SortNone.
func ParseSortOrder(token string) SortOrder {
	switch SortOrder(token) {
	case SortTitleAsc, SortTitleDesc, SortRatingAsc, SortRatingDesc:
		return SortOrder(token)
	default:
		return SortNone
	}
}

// CatalogRow is one row of the joined book/user-data catalog listing.
type CatalogRow struct {
	BookID      int64  `json:"book_id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	Publisher   string `json:"publisher,omitempty"`
	PublishedAt int64  `json:"published_at,omitempty"`
	Format      string `json:"format,omitempty"`
	Read        bool   `json:"read"`
	Rating      int    `json:"rating"`
	Blurb       string `json:"blurb,omitempty"`
}

// TableRow is one exported row of a raw table dump: column names paired with
// stringified cell values. NULL cells are empty strings.
type TableRow struct {
	Columns []string
	Values  []string
}
