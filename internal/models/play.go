package models

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers, the shape storefront clients expect.
	decimal.MarshalJSONWithoutQuotes = true
}

// Play is a stage production listed in the catalog
type Play struct {
	ID          int    `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	ImageURL    string `json:"image_url" db:"image_url"`
}
