package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Hamza287/brenvick-dashboard/internal/middleware"
	"github.com/Hamza287/brenvick-dashboard/internal/utils"
	"github.com/Hamza287/brenvick-dashboard/pkg/storeapi"
)

// CartHandler exposes read-only cart views for support staff.
type CartHandler struct {
	client *storeapi.Client
}

// NewCartHandler constructs a CartHandler.
func NewCartHandler(client *storeapi.Client) *CartHandler {
	return &CartHandler{client: client}
}

// SearchCarts runs an upstream cart search.
func (h *CartHandler) SearchCarts(c *gin.Context) {
	var filter storeapi.CartFilter
	if err := c.ShouldBindJSON(&filter); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid search filter")
		return
	}

	token := middleware.GetUpstreamToken(c)
	carts, err := h.client.SearchCarts(c.Request.Context(), token, filter)
	if err != nil {
		upstreamError(c, err, "Cart search failed")
		return
	}
	utils.Success(c, 200, "Search completed", gin.H{
		"carts": carts,
		"count": len(carts),
	})
}

// GetCart returns one cart with its lines.
func (h *CartHandler) GetCart(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Cart id must be numeric")
		return
	}

	token := middleware.GetUpstreamToken(c)
	cart, err := h.client.GetCart(c.Request.Context(), token, id)
	if err != nil {
		upstreamError(c, err, "Failed to get cart")
		return
	}
	items, err := h.client.SearchCartItems(c.Request.Context(), token, storeapi.CartItemFilter{CartID: &id})
	if err != nil {
		upstreamError(c, err, "Failed to get cart items")
		return
	}
	utils.Success(c, 200, "Cart retrieved successfully", gin.H{
		"cart":  cart,
		"items": items,
	})
}
