package storeapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Hamza287/brenvick-dashboard/internal/models"
)

// GetCart loads a cart by id.
func (c *Client) GetCart(ctx context.Context, token string, id int) (*models.Cart, error) {
	var cart models.Cart
	if err := c.doEnvelope(ctx, http.MethodGet, fmt.Sprintf("/api/Cart/%d", id), token, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// SearchCarts runs a partial-record search.
func (c *Client) SearchCarts(ctx context.Context, token string, filter CartFilter) ([]models.Cart, error) {
	var carts []models.Cart
	if err := c.doEnvelope(ctx, http.MethodPost, "/api/Cart/search", token, filter, &carts); err != nil {
		return nil, err
	}
	return carts, nil
}

// SearchCartItems runs a partial-record search over cart lines.
func (c *Client) SearchCartItems(ctx context.Context, token string, filter CartItemFilter) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := c.doEnvelope(ctx, http.MethodPost, "/api/CartItem/search", token, filter, &items); err != nil {
		return nil, err
	}
	return items, nil
}
