package schema

// AgeRatingTable represents the 'catalog.agerating' table
type AgeRatingTable struct {
	Table string
	ID    string
	Name  string
}

// AgeRating is the schema definition for catalog.agerating
var AgeRating = AgeRatingTable{
	Table: "catalog.agerating",
	ID:    "id",
	Name:  "name",
}

func (t AgeRatingTable) Columns() []string {
	return []string{t.ID, t.Name}
}
