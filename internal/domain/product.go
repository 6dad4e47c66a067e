package domain

import "time"

// CategoryRef is the joined category summary attached to product reads.
type CategoryRef struct {
	Name string
	Slug string
}

// Product is the catalog aggregate.
//
// Images, Materials and KeyFeatures are stored as JSON-encoded text columns
// and decoded tolerantly at the repository layer.
type Product struct {
	ID                string
	Name              string
	Slug              string
	CategoryID        string
	CategorySlug      string
	Description       string
	LongDescription   string
	Images            []string
	Materials         []string
	KeyFeatures       []string
	Trending          bool
	IsFeatured        bool
	InStock           bool
	Price             *float64
	MetaDescription   *string
	SchemaType        *string
	SchemaDescription *string
	SchemaImage       *string
	SchemaCategory    *string
	Category          *CategoryRef
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
