package schema

// CatalogAuthorTable represents the 'catalog.author' table
type CatalogAuthorTable struct {
	Table       string
	ID          string
	FirstName   string
	LastName    string
	DateOfBirth string
	DateOfDeath string
	CreatedAt   string
	UpdatedAt   string
}

// CatalogAuthor is the schema definition for catalog.author
var CatalogAuthor = CatalogAuthorTable{
	Table:       "catalog.author",
	ID:          "id",
	FirstName:   "firstname",
	LastName:    "lastname",
	DateOfBirth: "dateofbirth",
	DateOfDeath: "dateofdeath",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t CatalogAuthorTable) Columns() []string {
	return []string{t.ID, t.FirstName, t.LastName, t.DateOfBirth, t.DateOfDeath, t.CreatedAt, t.UpdatedAt}
}
