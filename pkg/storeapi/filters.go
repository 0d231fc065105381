package storeapi

import "time"

// Optional-field filter structs for the generic /api/<Resource>/search
// endpoints. Only the documented subset of fields is filterable; nil fields
// are omitted from the request.

// OrderItemFilter narrows order-line searches.
type OrderItemFilter struct {
	ID        *int       `json:"id,omitempty"`
	OrderID   *int       `json:"orderId,omitempty"`
	ProductID *int       `json:"productId,omitempty"`
	SKU       *string    `json:"sku,omitempty"`
	FromDate  *time.Time `json:"fromDate,omitempty"`
	ToDate    *time.Time `json:"toDate,omitempty"`
}

// ShipmentFilter narrows shipment searches.
type ShipmentFilter struct {
	ID         *int       `json:"id,omitempty"`
	OrderID    *int       `json:"orderId,omitempty"`
	Carrier    *string    `json:"carrier,omitempty"`
	TrackingNo *string    `json:"trackingNo,omitempty"`
	Status     *int       `json:"status,omitempty"`
	FromDate   *time.Time `json:"fromDate,omitempty"`
	ToDate     *time.Time `json:"toDate,omitempty"`
}

// CartFilter narrows cart searches.
type CartFilter struct {
	ID       *int       `json:"id,omitempty"`
	UserID   *int       `json:"userId,omitempty"`
	Status   *string    `json:"status,omitempty"`
	FromDate *time.Time `json:"fromDate,omitempty"`
	ToDate   *time.Time `json:"toDate,omitempty"`
}

// CartItemFilter narrows cart-line searches.
type CartItemFilter struct {
	ID        *int    `json:"id,omitempty"`
	CartID    *int    `json:"cartId,omitempty"`
	ProductID *int    `json:"productId,omitempty"`
	SKU       *string `json:"sku,omitempty"`
}

// ProductImageFilter narrows variant-image searches.
type ProductImageFilter struct {
	ID        *int    `json:"id,omitempty"`
	ProductID *int    `json:"productId,omitempty"`
	Color     *string `json:"color,omitempty"`
}
