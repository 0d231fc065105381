package models

import "time"

// ShipmentStatus mirrors the upstream shipment state enum.
type ShipmentStatus int

const (
	ShipmentPending ShipmentStatus = iota
	ShipmentInTransit
	ShipmentDelivered
	ShipmentException
	ShipmentReturned
)

var shipmentStatusNames = map[ShipmentStatus]string{
	ShipmentPending:   "Pending",
	ShipmentInTransit: "InTransit",
	ShipmentDelivered: "Delivered",
	ShipmentException: "Exception",
	ShipmentReturned:  "Returned",
}

func (s ShipmentStatus) String() string {
	if name, ok := shipmentStatusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// Shipment is a carrier shipment attached to an order.
type Shipment struct {
	ID          int            `json:"id"`
	OrderID     int            `json:"orderId"`
	Carrier     string         `json:"carrier"`
	TrackingNo  string         `json:"trackingNo"`
	Status      ShipmentStatus `json:"status"`
	ShippedAt   time.Time      `json:"shippedAt"`
	DeliveredAt time.Time      `json:"deliveredAt"`
}
