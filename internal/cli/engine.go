package cli

import (
	"context"
	"errors"

	"github.com/matzehuels/jarscope/pkg/config"
	"github.com/matzehuels/jarscope/pkg/finder"
	"github.com/matzehuels/jarscope/pkg/pipeline"
	"github.com/matzehuels/jarscope/pkg/pom"
	"github.com/matzehuels/jarscope/pkg/repository"
	"github.com/matzehuels/jarscope/pkg/resolver"
	"github.com/matzehuels/jarscope/pkg/store"
)

// engine is the wired finder, repository and resolver behind a runner.
type engine struct {
	runner    *pipeline.Runner
	checksums store.Store
}

// newEngine builds the lookup stack described by cfg. Close releases the
// checksum store.
func (c *CLI) newEngine(ctx context.Context, cfg *config.Config) (*engine, error) {
	httpc := cfg.HTTPClient()

	checksums := store.Store(store.NewNullStore())
	if cfg.Finder.Mode.UsesLocal() {
		s, err := store.Open(ctx, cfg.StoreOptions())
		if err != nil {
			return nil, err
		}
		checksums = s
	}

	f, err := finder.New(finder.Config{
		Mode:        cfg.Finder.Mode,
		URLTemplate: cfg.Finder.URLTemplate,
		Local:       checksums,
		HTTP:        httpc,
		Logger:      c.Logger,
	})
	if err != nil {
		return nil, errors.Join(err, checksums.Close())
	}

	var local *store.FileStore
	if cfg.Repository.Mode.UsesLocal() {
		if local, err = store.NewFileStore(cfg.Repository.Local); err != nil {
			return nil, errors.Join(err, checksums.Close())
		}
	}
	repo, err := repository.New(repository.Config{
		Mode:    cfg.Repository.Mode,
		BaseURL: cfg.Repository.URL,
		Local:   local,
		HTTP:    httpc,
		Logger:  c.Logger,
	})
	if err != nil {
		return nil, errors.Join(err, checksums.Close())
	}

	res := resolver.New(pom.NewLoader(repo, c.Logger), resolver.Options{
		SingleFlight: cfg.Resolver.SingleFlight,
		Logger:       c.Logger,
	})

	runner := pipeline.NewRunner(f, res, c.Logger)
	runner.Workers = cfg.Audit.Workers
	return &engine{runner: runner, checksums: checksums}, nil
}

func (e *engine) Close() error {
	return e.checksums.Close()
}
