package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Hamza287/brenvick-dashboard/internal/cache"
	"github.com/Hamza287/brenvick-dashboard/internal/models"
	"github.com/Hamza287/brenvick-dashboard/internal/productform"
	"github.com/Hamza287/brenvick-dashboard/pkg/storeapi"
)

// ProductService handles catalog reads and form-driven product mutations.
// List reads go through the Redis catalog cache; every mutation invalidates
// it so stale listings never outlive a change.
type ProductService struct {
	client  *storeapi.Client
	catalog *cache.CatalogCache
}

// NewProductService constructs a ProductService. catalog may be nil when
// Redis is not configured; all reads then go straight upstream.
func NewProductService(client *storeapi.Client, catalog *cache.CatalogCache) *ProductService {
	return &ProductService{client: client, catalog: catalog}
}

// ListProducts returns the catalog, serving from cache when possible.
func (s *ProductService) ListProducts(ctx context.Context, token string) ([]models.Product, error) {
	if s.catalog != nil {
		products, err := s.catalog.GetProducts(ctx)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			log.Warn().Err(err).Msg("Catalog cache read failed, falling through to upstream")
		}
	}

	products, err := s.client.ListProducts(ctx, token)
	if err != nil {
		return nil, err
	}
	if s.catalog != nil {
		if err := s.catalog.SetProducts(ctx, products); err != nil {
			log.Warn().Err(err).Msg("Failed to populate catalog cache")
		}
	}
	return products, nil
}

// GetProduct loads one product with its variants, bypassing the cache so
// edit forms always seed from fresh data.
func (s *ProductService) GetProduct(ctx context.Context, token string, id int) (*models.Product, error) {
	return s.client.GetProduct(ctx, token, id)
}

// SearchProducts runs an upstream partial-record search.
func (s *ProductService) SearchProducts(ctx context.Context, token string, filter storeapi.ProductFilter) ([]models.Product, error) {
	return s.client.SearchProducts(ctx, token, filter)
}

// CreateProduct submits a completed create-mode form.
func (s *ProductService) CreateProduct(ctx context.Context, token string, form *productform.Form) (*models.Product, error) {
	var created *models.Product
	err := form.Submit(ctx, func(ctx context.Context, payload *productform.Payload) error {
		contentType, body, err := payload.Encode()
		if err != nil {
			return err
		}
		created, err = s.client.CreateProduct(ctx, token, contentType, body)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	log.Info().Int("product_id", created.ID).Str("name", created.Name).Msg("Product created")
	return created, nil
}

// UpdateProduct submits a completed edit-mode form for an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, token string, id int, form *productform.Form) (*models.Product, error) {
	var updated *models.Product
	err := form.Submit(ctx, func(ctx context.Context, payload *productform.Payload) error {
		contentType, body, err := payload.Encode()
		if err != nil {
			return err
		}
		updated, err = s.client.UpdateProduct(ctx, token, id, contentType, body)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	log.Info().Int("product_id", id).Msg("Product updated")
	return updated, nil
}

// DeleteProduct removes a product and its variant images.
func (s *ProductService) DeleteProduct(ctx context.Context, token string, id int) error {
	if err := s.client.DeleteProduct(ctx, token, id); err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	s.invalidate(ctx)
	log.Info().Int("product_id", id).Msg("Product deleted")
	return nil
}

// ListCategories returns all categories, serving from cache when possible.
func (s *ProductService) ListCategories(ctx context.Context, token string) ([]models.Category, error) {
	if s.catalog != nil {
		categories, err := s.catalog.GetCategories(ctx)
		if err == nil {
			return categories, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			log.Warn().Err(err).Msg("Category cache read failed, falling through to upstream")
		}
	}

	categories, err := s.client.ListCategories(ctx, token)
	if err != nil {
		return nil, err
	}
	if s.catalog != nil {
		if err := s.catalog.SetCategories(ctx, categories); err != nil {
			log.Warn().Err(err).Msg("Failed to populate category cache")
		}
	}
	return categories, nil
}

// ListVariantImages returns the stored variant-image records for a product.
func (s *ProductService) ListVariantImages(ctx context.Context, token string, productID int) ([]models.ProductImage, error) {
	return s.client.SearchProductImages(ctx, token, storeapi.ProductImageFilter{ProductID: &productID})
}

func (s *ProductService) invalidate(ctx context.Context) {
	if s.catalog == nil {
		return
	}
	if err := s.catalog.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate catalog cache")
	}
}
