package app

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/kapu/pokedex-go/internal/config"
	"github.com/kapu/pokedex-go/internal/constants"
	"github.com/kapu/pokedex-go/internal/domain"
	"github.com/kapu/pokedex-go/internal/service/catalog"
	"github.com/kapu/pokedex-go/internal/service/caught"
	"github.com/kapu/pokedex-go/internal/service/storage"
	"github.com/kapu/pokedex-go/internal/ui"
)

// Container bundles assembled services for constructing the TUI model.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	Catalog    *catalog.Client
	Store      storage.BlobStore
	Caught     *caught.Store
	Categories []domain.Category

	closers []func()
}

// NewModel instantiates the TUI model using the pre-built dependency graph.
func (c *Container) NewModel(ctx context.Context) (ui.Model, error) {
	if c == nil || c.Catalog == nil || c.Caught == nil {
		return ui.Model{}, fmt.Errorf("container not initialized")
	}
	return ui.NewModel(ctx, ui.Options{
		Catalog:    c.Catalog,
		Caught:     c.Caught,
		Categories: c.Categories,
		Logger:     c.Logger,
	}), nil
}

// Close releases resources in reverse creation order.
func (c *Container) Close() {
	if c == nil {
		return
	}
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

// Build assembles the catalog client and storage backend, then loads the
// caught-set and the type list concurrently. A failed type list is logged
// and leaves Categories empty; the UI can retry it.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	// Remote catalog
	httpClient := catalog.NewHTTPClient(cfg.PokeAPI.Timeout)
	catalogClient := catalog.NewClient(httpClient, cfg.PokeAPI.BaseURL, logger)
	closers = append(closers, httpClient.CloseIdleConnections)

	// Persistence
	store, err := storage.New(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Backend, err)
	}
	closers = append(closers, func() {
		if closeErr := store.Close(); closeErr != nil {
			logger.Warn("Failed to close storage", zap.Error(closeErr))
		}
	})

	bootCtx, cancel := context.WithTimeout(ctx, constants.BootstrapConfig.Timeout)
	defer cancel()

	var (
		caughtStore *caught.Store
		categories  []domain.Category
	)

	p := pool.New().WithMaxGoroutines(2)
	p.Go(func() {
		caughtStore = caught.Load(bootCtx, store, cfg.Storage.Key, logger)
	})
	p.Go(func() {
		list, listErr := catalogClient.ListCategories(bootCtx)
		if listErr != nil {
			logger.Error("Failed to load types during startup", zap.Error(listErr))
			return
		}
		categories = list
	})
	p.Wait()

	logger.Info("Pokédex initialized",
		zap.String("storage", cfg.Storage.Backend),
		zap.String("api", catalogClient.BaseURL()),
		zap.Int("caught", caughtStore.Len()),
		zap.Int("types", len(categories)),
	)

	return &Container{
		Config:     cfg,
		Logger:     logger,
		Catalog:    catalogClient,
		Store:      store,
		Caught:     caughtStore,
		Categories: categories,
		closers:    closers,
	}, nil
}
