package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jaideeprtx/nj-trades/internal/config"
	"github.com/jaideeprtx/nj-trades/internal/edgar"
	"github.com/jaideeprtx/nj-trades/internal/ingest"
	"github.com/jaideeprtx/nj-trades/internal/ingest/congress"
	"github.com/jaideeprtx/nj-trades/internal/ingest/insider"
	"github.com/jaideeprtx/nj-trades/internal/ingest/sec13f"
	"github.com/jaideeprtx/nj-trades/internal/store"
)

// app holds the components shared by the subcommands.
type app struct {
	store    *store.Store
	insider  *insider.Adapter
	congress *congress.Adapter
	sec13f   *sec13f.Adapter
	fixtures sec13f.Fixtures
}

func newApp(cfg *config.Config, log *zap.Logger) (*app, error) {
	st, err := store.Open(cfg.Database, log.Named("store"))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	sec := edgar.New(cfg.SEC)
	opts := congress.Options{
		RandomTrades: cfg.Ingest.CongressRandomTrades,
		WindowDays:   cfg.Ingest.CongressWindowDays,
		Seed:         cfg.Ingest.CongressSeed,
	}

	fx := sec13f.DefaultFixtures()

	return &app{
		store:    st,
		fixtures: fx,
		insider:  insider.New(sec, sec, st, log.Named("ingest")),
		congress: congress.New(st, congress.DefaultDataset(), opts, log.Named("ingest")),
		sec13f:   sec13f.New(sec, st, fx, log.Named("ingest")),
	}, nil
}

func (a *app) adapter(src ingest.Source) (ingest.Adapter, error) {
	switch src {
	case ingest.SourceInsider:
		return a.insider, nil
	case ingest.SourceCongress:
		return a.congress, nil
	case ingest.Source13F:
		return a.sec13f, nil
	default:
		return nil, fmt.Errorf("unknown source %q (want insider, congress or 13f)", src)
	}
}

func (a *app) Close() {
	_ = a.store.Close()
}
