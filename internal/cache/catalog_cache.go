package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Hamza287/brenvick-dashboard/internal/models"
)

const (
	keyProducts   = "catalog:products"
	keyCategories = "catalog:categories"
)

// CatalogCache keeps read-mostly storefront data (products, categories) in
// Redis so list views do not hammer the upstream API. Any product mutation
// must invalidate it.
type CatalogCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewCatalogCache creates a CatalogCache with the given entry TTL.
func NewCatalogCache(redis *RedisClient, ttl time.Duration) *CatalogCache {
	return &CatalogCache{redis: redis, ttl: ttl}
}

// SetProducts caches the full product list.
func (c *CatalogCache) SetProducts(ctx context.Context, products []models.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to marshal products: %w", err)
	}
	return c.redis.Set(ctx, keyProducts, string(data), c.ttl)
}

// GetProducts returns the cached product list, or ErrMiss.
func (c *CatalogCache) GetProducts(ctx context.Context) ([]models.Product, error) {
	raw, err := c.redis.Get(ctx, keyProducts)
	if err != nil {
		return nil, err
	}
	var products []models.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		return nil, fmt.Errorf("failed to unmarshal products: %w", err)
	}
	return products, nil
}

// SetCategories caches the category list.
func (c *CatalogCache) SetCategories(ctx context.Context, categories []models.Category) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("failed to marshal categories: %w", err)
	}
	return c.redis.Set(ctx, keyCategories, string(data), c.ttl)
}

// GetCategories returns the cached category list, or ErrMiss.
func (c *CatalogCache) GetCategories(ctx context.Context) ([]models.Category, error) {
	raw, err := c.redis.Get(ctx, keyCategories)
	if err != nil {
		return nil, err
	}
	var categories []models.Category
	if err := json.Unmarshal([]byte(raw), &categories); err != nil {
		return nil, fmt.Errorf("failed to unmarshal categories: %w", err)
	}
	return categories, nil
}

// Invalidate drops all catalog keys. Called after create/update/delete so the
// next list read refetches from the upstream.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	return c.redis.Delete(ctx, keyProducts, keyCategories)
}
