package handler

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Hamza287/brenvick-dashboard/internal/middleware"
	"github.com/Hamza287/brenvick-dashboard/internal/models"
	"github.com/Hamza287/brenvick-dashboard/internal/service"
	"github.com/Hamza287/brenvick-dashboard/internal/utils"
	"github.com/Hamza287/brenvick-dashboard/pkg/storeapi"
)

// OrderHandler handles order management HTTP endpoints.
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// GetOrders returns the order list with filters, sorting, and pagination.
func (h *OrderHandler) GetOrders(c *gin.Context) {
	filter := service.OrderFilter{
		PaymentMethod: c.Query("paymentMethod"),
		Query:         c.Query("q"),
		SortBy:        c.Query("sortBy"),
		SortAsc:       c.Query("sortDir") == "asc",
	}

	if v := c.Query("status"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || !models.OrderStatus(n).Valid() {
			utils.Error(c, 400, "INVALID_STATUS", "Unknown order status")
			return
		}
		status := models.OrderStatus(n)
		filter.Status = &status
	}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			utils.Error(c, 400, "INVALID_REQUEST", "from must be RFC3339")
			return
		}
		filter.From = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			utils.Error(c, 400, "INVALID_REQUEST", "to must be RFC3339")
			return
		}
		filter.To = t
	}
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Page = n
		}
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Limit = n
		}
	}

	token := middleware.GetUpstreamToken(c)
	orders, total, err := h.orderService.ListOrders(c.Request.Context(), token, filter)
	if err != nil {
		upstreamError(c, err, "Failed to get orders")
		return
	}

	page, limit := filter.Page, filter.Limit
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	utils.SuccessWithPagination(c, 200, "Orders retrieved successfully", gin.H{
		"orders": orders,
	}, page, limit, total)
}

// GetOrder returns one order.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	token := middleware.GetUpstreamToken(c)
	order, err := h.orderService.GetOrder(c.Request.Context(), token, c.Param("id"))
	if err != nil {
		upstreamError(c, err, "Failed to get order")
		return
	}
	utils.Success(c, 200, "Order retrieved successfully", gin.H{"order": order})
}

type updateStatusRequest struct {
	// Pointer so an absent field is distinguishable from Pending (0).
	Status *models.OrderStatus `json:"status"`
}

// UpdateStatus changes an order's status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == nil {
		utils.Error(c, 400, "INVALID_REQUEST", "status is required")
		return
	}

	user := middleware.GetUser(c)
	token := middleware.GetUpstreamToken(c)
	order, err := h.orderService.UpdateStatus(c.Request.Context(), token, c.Param("id"), *req.Status, user.ID)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidStatus) {
			utils.Error(c, 400, "INVALID_STATUS", "Unknown order status")
			return
		}
		upstreamError(c, err, "Failed to update order status")
		return
	}
	utils.Success(c, 200, "Order status updated", gin.H{"order": order})
}

// ExportPDF streams the order as a PDF attachment.
func (h *OrderHandler) ExportPDF(c *gin.Context) {
	token := middleware.GetUpstreamToken(c)
	data, filename, err := h.orderService.ExportPDF(c.Request.Context(), token, c.Param("id"))
	if err != nil {
		upstreamError(c, err, "Failed to export order")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(200, "application/pdf", data)
}

// GetShippingLabel proxies the carrier label PDF for a consignment number.
func (h *OrderHandler) GetShippingLabel(c *gin.Context) {
	label, err := h.orderService.GetShippingLabel(c.Request.Context(), c.Param("cn"))
	if err != nil {
		utils.Error(c, 502, "CARRIER_ERROR", err.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, label.Filename))
	c.Data(200, label.ContentType, label.Data)
}

// SearchOrderItems runs an upstream search over normalized order lines.
func (h *OrderHandler) SearchOrderItems(c *gin.Context) {
	var filter storeapi.OrderItemFilter
	if err := c.ShouldBindJSON(&filter); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid search filter")
		return
	}

	token := middleware.GetUpstreamToken(c)
	items, err := h.orderService.SearchOrderItems(c.Request.Context(), token, filter)
	if err != nil {
		upstreamError(c, err, "Order item search failed")
		return
	}
	utils.Success(c, 200, "Search completed", gin.H{
		"items": items,
		"count": len(items),
	})
}

// SearchShipments runs an upstream shipment search.
func (h *OrderHandler) SearchShipments(c *gin.Context) {
	var filter storeapi.ShipmentFilter
	if err := c.ShouldBindJSON(&filter); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid search filter")
		return
	}

	token := middleware.GetUpstreamToken(c)
	shipments, err := h.orderService.SearchShipments(c.Request.Context(), token, filter)
	if err != nil {
		upstreamError(c, err, "Shipment search failed")
		return
	}
	utils.Success(c, 200, "Search completed", gin.H{
		"shipments": shipments,
		"count":     len(shipments),
	})
}

// UpdateShipment forwards shipment changes upstream.
func (h *OrderHandler) UpdateShipment(c *gin.Context) {
	var shipment models.Shipment
	if err := c.ShouldBindJSON(&shipment); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid shipment payload")
		return
	}

	token := middleware.GetUpstreamToken(c)
	updated, err := h.orderService.UpdateShipment(c.Request.Context(), token, &shipment)
	if err != nil {
		upstreamError(c, err, "Failed to update shipment")
		return
	}
	utils.Success(c, 200, "Shipment updated", gin.H{"shipment": updated})
}
