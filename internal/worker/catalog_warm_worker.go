package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/voltshop/inventory-api/internal/inventory"
	"github.com/voltshop/inventory-api/internal/models"
)

// CatalogWarmWorker periodically re-primes the Redis listing cache so that
// storefront reads stay warm across cache expiry and invalidations.
type CatalogWarmWorker struct {
	engine   *inventory.Engine
	interval time.Duration
}

// NewCatalogWarmWorker constructs a CatalogWarmWorker.
func NewCatalogWarmWorker(engine *inventory.Engine, interval time.Duration) *CatalogWarmWorker {
	return &CatalogWarmWorker{
		engine:   engine,
		interval: interval,
	}
}

// Start begins the periodic warm loop and listens for context cancellation.
func (w *CatalogWarmWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting catalog warm worker")

	// Run immediately on start
	w.run(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Catalog warm worker stopped")
			return
		}
	}
}

func (w *CatalogWarmWorker) run(ctx context.Context) {
	start := time.Now()

	commands := []inventory.QueryCommand{{Grouping: models.GroupingNone}}
	for _, c := range []models.Category{models.CategorySmartphone, models.CategoryLaptop, models.CategoryAppliance} {
		commands = append(commands, inventory.QueryCommand{Grouping: models.GroupingCategory, Category: c})
	}

	for i := range commands {
		if _, err := w.engine.Query(ctx, &commands[i]); err != nil {
			log.Error().Err(err).Msg("Failed to warm catalog listing")
			return
		}
		if _, err := w.engine.QueryAvailable(ctx, &commands[i]); err != nil {
			log.Error().Err(err).Msg("Failed to warm available catalog listing")
			return
		}
	}

	log.Debug().Dur("duration", time.Since(start)).Msg("Catalog cache warmed")
}
