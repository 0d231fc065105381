package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// OrderStatus is the canonical order state. Upstream revisions also emit the
// display strings; those are parsed for rendering only.
type OrderStatus int

const (
	OrderPending OrderStatus = iota
	OrderPaid
	OrderShipped
	OrderDelivered
	OrderCancelled
	OrderReturned
)

var orderStatusNames = map[OrderStatus]string{
	OrderPending:   "Pending",
	OrderPaid:      "Paid",
	OrderShipped:   "Shipped",
	OrderDelivered: "Delivered",
	OrderCancelled: "Cancelled",
	OrderReturned:  "Returned",
}

// String returns the display name for the status, or "Unknown".
func (s OrderStatus) String() string {
	if name, ok := orderStatusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// Valid reports whether s is a defined status value.
func (s OrderStatus) Valid() bool {
	_, ok := orderStatusNames[s]
	return ok
}

// ParseOrderStatus maps a display string back onto the enum. Unknown strings
// fall back to Pending so legacy payloads stay renderable.
func ParseOrderStatus(name string) OrderStatus {
	for status, n := range orderStatusNames {
		if strings.EqualFold(n, name) {
			return status
		}
	}
	return OrderPending
}

// UnmarshalJSON accepts both the canonical numeric form and the legacy
// display-string form emitted by older upstream revisions.
func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*s = ParseOrderStatus(raw)
		return nil
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return err
	}
	*s = OrderStatus(n)
	return nil
}

// MarshalJSON always emits the canonical numeric form.
func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(s))), nil
}

// ShippingDetails is the recipient address block on an order.
type ShippingDetails struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

// OrderLine is one purchased item inside an order document.
type OrderLine struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image,omitempty"`
	Quantity int     `json:"quantity"`
	Color    string  `json:"color,omitempty"`
}

// Order is a customer order as held by the upstream. The dashboard only
// mutates the status field.
type Order struct {
	ID              string          `json:"_id"`
	UserID          string          `json:"user"`
	ShippingDetails ShippingDetails `json:"shippingDetails"`
	Items           []OrderLine     `json:"items"`
	TotalAmount     float64         `json:"totalAmount"`
	PaymentMethod   string          `json:"paymentMethod"`
	Status          OrderStatus     `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// OrderItem is the normalized per-line record exposed by the search endpoint.
type OrderItem struct {
	ID             int     `json:"id"`
	OrderID        int     `json:"orderId"`
	ProductID      int     `json:"productId"`
	SKU            string  `json:"sku"`
	Name           string  `json:"name"`
	Quantity       int     `json:"quantity"`
	UnitPrice      float64 `json:"unitPrice"`
	LineTotal      float64 `json:"lineTotal"`
	AttributesSnap string  `json:"attributesSnap,omitempty"`
}
