package storeapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Hamza287/brenvick-dashboard/internal/models"
)

// GetProductImage loads one variant-image record.
func (c *Client) GetProductImage(ctx context.Context, token string, id int) (*models.ProductImage, error) {
	var image models.ProductImage
	if err := c.doEnvelope(ctx, http.MethodGet, fmt.Sprintf("/api/ProductImage/%d", id), token, nil, &image); err != nil {
		return nil, err
	}
	return &image, nil
}

// SearchProductImages returns the variant images matching a filter; used to
// seed edit-mode forms when a product record omits its variants.
func (c *Client) SearchProductImages(ctx context.Context, token string, filter ProductImageFilter) ([]models.ProductImage, error) {
	var images []models.ProductImage
	if err := c.doEnvelope(ctx, http.MethodPost, "/api/ProductImage/search", token, filter, &images); err != nil {
		return nil, err
	}
	return images, nil
}

// DeleteProductImage removes a variant-image record.
func (c *Client) DeleteProductImage(ctx context.Context, token string, id int) error {
	return c.doEnvelope(ctx, http.MethodDelete, fmt.Sprintf("/api/ProductImage/%d", id), token, nil, nil)
}
