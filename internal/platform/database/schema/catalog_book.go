package schema

// CatalogBookTable represents the 'catalog.book' table
type CatalogBookTable struct {
	Table      string
	ID         string
	Title      string
	LanguageID string
	AuthorID   string
	Summary    string
	ISBN       string
	CreatedAt  string
	UpdatedAt  string
}

// CatalogBook is the schema definition for catalog.book
var CatalogBook = CatalogBookTable{
	Table:      "catalog.book",
	ID:         "id",
	Title:      "title",
	LanguageID: "languageid",
	AuthorID:   "authorid",
	Summary:    "summary",
	ISBN:       "isbn",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}

func (t CatalogBookTable) Columns() []string {
	return []string{t.ID, t.Title, t.LanguageID, t.AuthorID, t.Summary, t.ISBN, t.CreatedAt, t.UpdatedAt}
}
