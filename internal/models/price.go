package models

import "time"

// PriceCategory enumerates the price list sections shown on the site.
type PriceCategory string

const (
	PriceCategoryBases  PriceCategory = "bases"
	PriceCategoryCreams PriceCategory = "creams"
	PriceCategoryEvents PriceCategory = "events"
)

// Price represents one entry of the dynamic price list. item_key is unique
// within a category and is what the frontend uses to address an entry.
type Price struct {
	ID          string    `db:"id" json:"id"`
	Category    string    `db:"category" json:"category"`
	ItemKey     string    `db:"item_key" json:"item_key"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Price       Decimal   `db:"price" json:"price"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// PriceEntry is the per-item shape used inside the grouped price payload.
type PriceEntry struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}
