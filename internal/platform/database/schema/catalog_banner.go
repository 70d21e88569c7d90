package schema

// BannerTable represents the 'catalog.banner' table
type BannerTable struct {
	Table       string
	ID          string
	Title       string
	Description string
	ImageKey    string
	BookID      string
	StartsOn    string
	EndsOn      string
	Active      string
}

// Banner is the schema definition for catalog.banner
var Banner = BannerTable{
	Table:       "catalog.banner",
	ID:          "id",
	Title:       "title",
	Description: "description",
	ImageKey:    "imagekey",
	BookID:      "bookid",
	StartsOn:    "startson",
	EndsOn:      "endson",
	Active:      "active",
}

func (t BannerTable) Columns() []string {
	return []string{t.ID, t.Title, t.Description, t.ImageKey, t.BookID, t.StartsOn, t.EndsOn, t.Active}
}
