package models

import "time"

// Product represents a catalog entry. Stock fields are maintained by the
// upstream; StockOnHand is always the sum of the variant stocks.
type Product struct {
	ID             int               `json:"id"`
	Name           string            `json:"name"`
	Tagline        string            `json:"tagline"`
	SKU            string            `json:"sku"`
	Description    string            `json:"description"`
	Price          float64           `json:"price"`
	CompareAtPrice float64           `json:"compareAtPrice"`
	Brand          string            `json:"brand"`
	CategoryID     int               `json:"categoryId"`
	Attributes     map[string]string `json:"attributes,omitempty"`
	Banner         string            `json:"banner,omitempty"`
	StockOnHand    int               `json:"stockOnHand"`
	StockReserved  int               `json:"stockReserved"`
	IsActive       bool              `json:"isActive"`
	ComingSoon     bool              `json:"comingSoon"`
	Images         []ProductImage    `json:"images,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// ProductImage is one color variant of a product: a hex color code without
// the leading '#', exactly four image URLs, and the stock held for that color.
type ProductImage struct {
	ID        int      `json:"id"`
	ProductID int      `json:"productId"`
	Color     string   `json:"color"`
	Images    []string `json:"images"`
	Stock     int      `json:"stock"`
	AltText   string   `json:"altText,omitempty"`
	Position  int      `json:"position"`
}

// Category is a product category. The id/slug mapping is fixed upstream.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
