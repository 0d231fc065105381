package storeapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Hamza287/brenvick-dashboard/internal/models"
)

// GetShipment loads a shipment by id.
func (c *Client) GetShipment(ctx context.Context, token string, id int) (*models.Shipment, error) {
	var shipment models.Shipment
	if err := c.doEnvelope(ctx, http.MethodGet, fmt.Sprintf("/api/Shipment/%d", id), token, nil, &shipment); err != nil {
		return nil, err
	}
	return &shipment, nil
}

// SearchShipments runs a partial-record search.
func (c *Client) SearchShipments(ctx context.Context, token string, filter ShipmentFilter) ([]models.Shipment, error) {
	var shipments []models.Shipment
	if err := c.doEnvelope(ctx, http.MethodPost, "/api/Shipment/search", token, filter, &shipments); err != nil {
		return nil, err
	}
	return shipments, nil
}

// UpdateShipment submits shipment changes (tracking number, status).
func (c *Client) UpdateShipment(ctx context.Context, token string, shipment *models.Shipment) (*models.Shipment, error) {
	var updated models.Shipment
	if err := c.doEnvelope(ctx, http.MethodPut, "/api/Shipment", token, shipment, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
