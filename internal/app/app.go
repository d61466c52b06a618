// Package app wires the catalog, lexicon, parser, searcher and remote
// client into a ready orchestrator. Both binaries share this bootstrap.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/antojo/antojo/internal/catalog"
	"github.com/antojo/antojo/internal/config"
	"github.com/antojo/antojo/internal/lexicon"
	"github.com/antojo/antojo/internal/orchestrator"
	"github.com/antojo/antojo/internal/parser"
	"github.com/antojo/antojo/internal/remote"
	"github.com/antojo/antojo/internal/searcher"
	"github.com/antojo/antojo/pkg/types"
)

// App holds the assembled pipeline.
type App struct {
	Orchestrator *orchestrator.Orchestrator
	Dishes       []types.Dish
	Log          zerolog.Logger
}

// NewLogger builds a zerolog logger writing to out at the configured level.
// Unknown level names fall back to info.
func NewLogger(out io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// Build assembles the pipeline from configuration. When cfg.CatalogDB is
// set, dishes come from SQLite; an empty database is seeded from the
// embedded catalog so first runs work out of the box.
func Build(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	dishes, err := loadDishes(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	idx, err := catalog.NewIndex(dishes)
	if err != nil {
		return nil, fmt.Errorf("build catalog index: %w", err)
	}
	lex, err := lexicon.New(lexicon.Default())
	if err != nil {
		return nil, fmt.Errorf("build lexicon: %w", err)
	}

	engine, err := searcher.New(dishes, idx, lex)
	if err != nil {
		return nil, fmt.Errorf("build search engine: %w", err)
	}
	builder := parser.New(lex, idx, catalog.RestaurantNames(dishes))

	var svc orchestrator.RemoteService
	if cfg.RemoteURL != "" {
		svc = remote.NewClient(cfg.RemoteURL, cfg.RemoteTimeout)
		log.Info().Str("url", cfg.RemoteURL).Dur("timeout", cfg.RemoteTimeout).Msg("remote interpreter configured")
	}

	return &App{
		Orchestrator: orchestrator.New(builder, engine, svc, remote.NewBreaker(), log),
		Dishes:       dishes,
		Log:          log,
	}, nil
}

func loadDishes(ctx context.Context, cfg *config.Config, log zerolog.Logger) ([]types.Dish, error) {
	if cfg.CatalogDB == "" {
		dishes := catalog.Default()
		log.Info().Int("dishes", len(dishes)).Msg("using embedded catalog")
		return dishes, nil
	}

	store, err := catalog.OpenStore(cfg.CatalogDB)
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()

	dishes, err := store.LoadDishes(ctx)
	if err == nil {
		log.Info().Int("dishes", len(dishes)).Str("db", cfg.CatalogDB).Msg("catalog loaded from database")
		return dishes, nil
	}
	if !errors.Is(err, types.ErrEmptyCatalog) {
		return nil, fmt.Errorf("load catalog from %s: %w", cfg.CatalogDB, err)
	}

	dishes = catalog.Default()
	if err := store.SaveDishes(ctx, dishes); err != nil {
		return nil, fmt.Errorf("seed catalog db %s: %w", cfg.CatalogDB, err)
	}
	log.Info().Int("dishes", len(dishes)).Str("db", cfg.CatalogDB).Msg("catalog database seeded from embedded data")
	return dishes, nil
}
