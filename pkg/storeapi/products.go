package storeapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Hamza287/brenvick-dashboard/internal/models"
)

// productsResponse is the resource-specific list shape used by /products.
type productsResponse struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message"`
	Count    int              `json:"count"`
	Products []models.Product `json:"products"`
}

type productResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Product models.Product `json:"product"`
}

// ProductFilter is the documented subset of filterable product fields. The
// wide date range stands in for server-side querying the upstream lacks.
type ProductFilter struct {
	ID         *int       `json:"id,omitempty"`
	Name       *string    `json:"name,omitempty"`
	SKU        *string    `json:"sku,omitempty"`
	CategoryID *int       `json:"categoryId,omitempty"`
	IsActive   *bool      `json:"isActive,omitempty"`
	FromDate   *time.Time `json:"fromDate,omitempty"`
	ToDate     *time.Time `json:"toDate,omitempty"`
}

// ListProducts returns the full catalog.
func (c *Client) ListProducts(ctx context.Context, token string) ([]models.Product, error) {
	var resp productsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/products", token, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{StatusCode: http.StatusOK, Message: firstNonEmpty(resp.Message, "failed to fetch products")}
	}
	return resp.Products, nil
}

// GetProduct loads a single product with its variant images.
func (c *Client) GetProduct(ctx context.Context, token string, id int) (*models.Product, error) {
	var resp productResponse
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), token, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{StatusCode: http.StatusOK, Message: firstNonEmpty(resp.Message, "product not found")}
	}
	return &resp.Product, nil
}

// CreateProduct submits a new product as an encoded multipart body.
func (c *Client) CreateProduct(ctx context.Context, token, contentType string, body io.Reader) (*models.Product, error) {
	var product models.Product
	if err := c.doMultipart(ctx, http.MethodPost, "/products", token, contentType, body, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct submits changes to an existing product as a multipart body.
func (c *Client) UpdateProduct(ctx context.Context, token string, id int, contentType string, body io.Reader) (*models.Product, error) {
	var product models.Product
	if err := c.doMultipart(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), token, contentType, body, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, token string, id int) error {
	return c.doEnvelope(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), token, nil, nil)
}

// SearchProducts runs a partial-record search.
func (c *Client) SearchProducts(ctx context.Context, token string, filter ProductFilter) ([]models.Product, error) {
	var products []models.Product
	if err := c.doEnvelope(ctx, http.MethodPost, "/api/Product/search", token, filter, &products); err != nil {
		return nil, err
	}
	return products, nil
}
