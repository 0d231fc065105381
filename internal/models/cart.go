package models

import "time"

// Cart is an open customer cart held by the upstream.
type Cart struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CartItem is a single line inside a cart.
type CartItem struct {
	ID        int     `json:"id"`
	CartID    int     `json:"cartId"`
	ProductID int     `json:"productId"`
	SKU       string  `json:"sku"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}
