package storeapi

import (
	"context"
	"net/http"

	"github.com/Hamza287/brenvick-dashboard/internal/models"
)

// ListCategories returns all product categories.
func (c *Client) ListCategories(ctx context.Context, token string) ([]models.Category, error) {
	var categories []models.Category
	if err := c.doEnvelope(ctx, http.MethodGet, "/api/ProductCategory/GetAll", token, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
