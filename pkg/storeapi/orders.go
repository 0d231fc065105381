package storeapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Hamza287/brenvick-dashboard/internal/models"
)

// The orders endpoints predate the uniform envelope and keep their
// resource-specific shapes.
type ordersResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Count   int            `json:"count"`
	Orders  []models.Order `json:"orders"`
}

type orderResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Order   models.Order `json:"order"`
}

// ListOrders returns all orders. The upstream offers no paging or filtering
// here; callers narrow the result in memory.
func (c *Client) ListOrders(ctx context.Context, token string) ([]models.Order, error) {
	var resp ordersResponse
	if err := c.doJSON(ctx, http.MethodGet, "/orders", token, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{StatusCode: http.StatusOK, Message: firstNonEmpty(resp.Message, "failed to fetch orders")}
	}
	return resp.Orders, nil
}

// GetOrder loads one order.
func (c *Client) GetOrder(ctx context.Context, token, id string) (*models.Order, error) {
	var resp orderResponse
	if err := c.doJSON(ctx, http.MethodGet, "/orders/"+id, token, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{StatusCode: http.StatusOK, Message: firstNonEmpty(resp.Message, "failed to fetch order")}
	}
	return &resp.Order, nil
}

// UpdateOrderStatus changes the only order field the dashboard may mutate.
func (c *Client) UpdateOrderStatus(ctx context.Context, token, id string, status models.OrderStatus) (*models.Order, error) {
	payload := map[string]models.OrderStatus{"status": status}
	var resp orderResponse
	if err := c.doJSON(ctx, http.MethodPut, "/orders/"+id, token, payload, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{StatusCode: http.StatusOK, Message: firstNonEmpty(resp.Message, "failed to update order")}
	}
	return &resp.Order, nil
}

// SearchOrderItems runs a partial-record search over normalized order lines.
func (c *Client) SearchOrderItems(ctx context.Context, token string, filter OrderItemFilter) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := c.doEnvelope(ctx, http.MethodPost, "/api/OrderItem/search", token, filter, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetOrderItem loads one normalized order line.
func (c *Client) GetOrderItem(ctx context.Context, token string, id int) (*models.OrderItem, error) {
	var item models.OrderItem
	if err := c.doEnvelope(ctx, http.MethodGet, fmt.Sprintf("/api/OrderItem/%d", id), token, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}
