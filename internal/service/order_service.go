package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Hamza287/brenvick-dashboard/internal/events"
	"github.com/Hamza287/brenvick-dashboard/internal/export"
	"github.com/Hamza287/brenvick-dashboard/internal/models"
	"github.com/Hamza287/brenvick-dashboard/internal/utils"
	"github.com/Hamza287/brenvick-dashboard/pkg/storeapi"
	"github.com/Hamza287/brenvick-dashboard/pkg/tcs"
)

// OrderFilter narrows and orders the admin order list. The upstream list
// endpoint takes no parameters, so all of this runs in memory.
type OrderFilter struct {
	Status        *models.OrderStatus
	PaymentMethod string
	// Query matches the order id or the recipient name, case-insensitively.
	Query    string
	From     time.Time
	To       time.Time
	SortBy   string // "date" (default) or "total"
	SortAsc  bool
	Page     int
	Limit    int
}

// OrderService handles order listing, status transitions, PDF export, and
// carrier label retrieval.
type OrderService struct {
	client    *storeapi.Client
	tcsClient *tcs.Client
	publisher *events.Publisher
}

// NewOrderService constructs an OrderService. tcsClient and publisher may be
// nil; the corresponding features report as unavailable or no-op.
func NewOrderService(client *storeapi.Client, tcsClient *tcs.Client, publisher *events.Publisher) *OrderService {
	return &OrderService{client: client, tcsClient: tcsClient, publisher: publisher}
}

// ListOrders fetches all orders and applies the filter, sort, and page
// locally. It returns the page plus the total match count for pagination.
func (s *OrderService) ListOrders(ctx context.Context, token string, filter OrderFilter) ([]models.Order, int, error) {
	orders, err := s.client.ListOrders(ctx, token)
	if err != nil {
		return nil, 0, err
	}

	matched := orders[:0]
	for _, o := range orders {
		if !matchOrder(&o, filter) {
			continue
		}
		matched = append(matched, o)
	}

	sortOrders(matched, filter.SortBy, filter.SortAsc)
	total := len(matched)

	page, limit := filter.Page, filter.Limit
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	start := (page - 1) * limit
	if start >= total {
		return []models.Order{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

// GetOrder loads one order.
func (s *OrderService) GetOrder(ctx context.Context, token, id string) (*models.Order, error) {
	return s.client.GetOrder(ctx, token, id)
}

// UpdateStatus moves an order to a new status. The status must be a defined
// enum value; the upstream is the authority on whether the transition sticks.
// A successful change is announced on the event queue.
func (s *OrderService) UpdateStatus(ctx context.Context, token, id string, status models.OrderStatus, changedBy int) (*models.Order, error) {
	if !status.Valid() {
		return nil, utils.ErrInvalidStatus
	}

	current, err := s.client.GetOrder(ctx, token, id)
	if err != nil {
		return nil, err
	}
	oldStatus := current.Status

	updated, err := s.client.UpdateOrderStatus(ctx, token, id, status)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("order_id", id).
		Str("old_status", oldStatus.String()).
		Str("new_status", status.String()).
		Int("changed_by", changedBy).
		Msg("Order status updated")

	s.publisher.PublishOrderStatus(ctx, events.OrderStatusEvent{
		OrderID:    id,
		OldStatus:  oldStatus,
		NewStatus:  status,
		ChangedBy:  changedBy,
		OccurredAt: time.Now().UTC(),
	})
	return updated, nil
}

// ExportPDF renders an order as a downloadable PDF document.
func (s *OrderService) ExportPDF(ctx context.Context, token, id string) ([]byte, string, error) {
	order, err := s.client.GetOrder(ctx, token, id)
	if err != nil {
		return nil, "", err
	}
	data, err := export.OrderPDF(order, time.Now())
	if err != nil {
		return nil, "", fmt.Errorf("failed to render order pdf: %w", err)
	}
	return data, fmt.Sprintf("order-%s.pdf", order.ID), nil
}

// GetShippingLabel proxies the carrier label for a consignment number.
func (s *OrderService) GetShippingLabel(ctx context.Context, consignmentNo string) (*tcs.Label, error) {
	if s.tcsClient == nil {
		return nil, fmt.Errorf("carrier label service is not configured")
	}
	return s.tcsClient.GetLabel(ctx, consignmentNo)
}

// SearchOrderItems runs an upstream search over normalized order lines.
func (s *OrderService) SearchOrderItems(ctx context.Context, token string, filter storeapi.OrderItemFilter) ([]models.OrderItem, error) {
	return s.client.SearchOrderItems(ctx, token, filter)
}

// SearchShipments runs an upstream shipment search.
func (s *OrderService) SearchShipments(ctx context.Context, token string, filter storeapi.ShipmentFilter) ([]models.Shipment, error) {
	return s.client.SearchShipments(ctx, token, filter)
}

// UpdateShipment forwards shipment changes upstream.
func (s *OrderService) UpdateShipment(ctx context.Context, token string, shipment *models.Shipment) (*models.Shipment, error) {
	return s.client.UpdateShipment(ctx, token, shipment)
}

func matchOrder(o *models.Order, f OrderFilter) bool {
	if f.Status != nil && o.Status != *f.Status {
		return false
	}
	if f.PaymentMethod != "" && !strings.EqualFold(o.PaymentMethod, f.PaymentMethod) {
		return false
	}
	if !f.From.IsZero() && o.CreatedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && o.CreatedAt.After(f.To) {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		name := strings.ToLower(o.ShippingDetails.FirstName + " " + o.ShippingDetails.LastName)
		if !strings.Contains(strings.ToLower(o.ID), q) && !strings.Contains(name, q) {
			return false
		}
	}
	return true
}

func sortOrders(orders []models.Order, by string, asc bool) {
	less := func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt) // newest first
	}
	switch by {
	case "total":
		less = func(i, j int) bool { return orders[i].TotalAmount > orders[j].TotalAmount }
	}
	if asc {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}
	sort.SliceStable(orders, less)
}
