package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Hamza287/brenvick-dashboard/internal/cache"
	"github.com/Hamza287/brenvick-dashboard/pkg/storeapi"
)

// CatalogSyncWorker periodically refreshes the Redis catalog cache from the
// storefront so list views stay warm between admin visits. The catalog
// endpoints are public upstream, so no session token is needed.
type CatalogSyncWorker struct {
	client   *storeapi.Client
	catalog  *cache.CatalogCache
	interval time.Duration
}

// NewCatalogSyncWorker constructs a CatalogSyncWorker.
func NewCatalogSyncWorker(client *storeapi.Client, catalog *cache.CatalogCache, interval time.Duration) *CatalogSyncWorker {
	return &CatalogSyncWorker{
		client:   client,
		catalog:  catalog,
		interval: interval,
	}
}

// Start begins the periodic refresh loop and listens for context cancellation.
func (w *CatalogSyncWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting catalog sync worker")

	// Run immediately on start
	w.run(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Catalog sync worker stopped")
			return
		}
	}
}

func (w *CatalogSyncWorker) run(ctx context.Context) {
	start := time.Now()

	products, err := w.client.ListProducts(ctx, "")
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch catalog for cache refresh")
		return
	}
	if err := w.catalog.SetProducts(ctx, products); err != nil {
		log.Error().Err(err).Msg("Failed to write products to catalog cache")
		return
	}

	categories, err := w.client.ListCategories(ctx, "")
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch categories for cache refresh")
		return
	}
	if err := w.catalog.SetCategories(ctx, categories); err != nil {
		log.Error().Err(err).Msg("Failed to write categories to catalog cache")
		return
	}

	log.Info().
		Int("products", len(products)).
		Int("categories", len(categories)).
		Dur("duration", time.Since(start)).
		Msg("Catalog cache refreshed")
}
