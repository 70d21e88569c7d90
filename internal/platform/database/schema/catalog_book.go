package schema

// BookTable represents the 'catalog.book' table
type BookTable struct {
	Table          string
	ID             string
	Title          string
	AuthorID       string
	Description    string
	PriceCents     string
	CategoryID     string
	AgeRatingID    string
	CoverKey       string
	FileKey        string
	HasPromotion   string
	PromotionStart string
	PromotionEnd   string
	Active         string
	CreatedAt      string
	LastSaleAt     string
}

// Book is the schema definition for catalog.book
var Book = BookTable{
	Table:          "catalog.book",
	ID:             "id",
	Title:          "title",
	AuthorID:       "authorid",
	Description:    "description",
	PriceCents:     "pricecents",
	CategoryID:     "categoryid",
	AgeRatingID:    "ageratingid",
	CoverKey:       "coverkey",
	FileKey:        "filekey",
	HasPromotion:   "haspromotion",
	PromotionStart: "promotionstart",
	PromotionEnd:   "promotionend",
	Active:         "active",
	CreatedAt:      "createdat",
	LastSaleAt:     "lastsaleat",
}

func (t BookTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.AuthorID, t.Description, t.PriceCents, t.CategoryID,
		t.AgeRatingID, t.CoverKey, t.FileKey, t.HasPromotion, t.PromotionStart,
		t.PromotionEnd, t.Active, t.CreatedAt, t.LastSaleAt,
	}
}
