package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/wildcast/wildcast/internal/config"
	"github.com/wildcast/wildcast/internal/matcher"
	"github.com/wildcast/wildcast/internal/store"
	"github.com/wildcast/wildcast/internal/taxonomy"
)

// openStore constructs the configured store driver and runs migrations.
func openStore(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	var (
		st  store.Store
		err error
	)
	switch cfg.Driver {
	case "sqlite", "":
		st, err = store.NewSQLite(cfg.DatabaseURL)
	case "postgres":
		st, err = store.NewPostgres(ctx, cfg.DatabaseURL, cfg.MaxConns, cfg.MinConns)
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}

// buildMatcher constructs the contact matcher, applying taxonomy overrides
// when a path is configured.
func buildMatcher(cfg config.MatcherConfig) (*matcher.ContactMatcher, error) {
	tables := taxonomy.Default()
	if cfg.TaxonomyPath != "" {
		t, err := taxonomy.Load(cfg.TaxonomyPath)
		if err != nil {
			return nil, err
		}
		tables = t
	}

	m := matcher.NewContactMatcher(tables)
	if cfg.ParallelThreshold > 0 {
		m = m.WithParallelThreshold(cfg.ParallelThreshold)
	}
	return m, nil
}
