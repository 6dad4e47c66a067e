package domain

import "time"

// Category groups products for storefront navigation.
type Category struct {
	ID          string
	Name        string
	Slug        string
	Image       *string
	Description *string
	IsActive    bool
	Order       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
