package kv

import (
	"context"
	"time"

	"github.com/socialvibe/feedcore/pkg/config"
	"github.com/socialvibe/feedcore/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In
	LC fx.Lifecycle

	Logger logger.Logger
	Config *config.Config
}

// New creates the badger-backed store and manages its lifecycle: a periodic
// value-log GC pass while running, a clean close on shutdown.
func New(opts Opts) (*Badger, error) {
	store, err := NewBadger(BadgerOpts{
		Path:     opts.Config.Badger.Path,
		InMemory: opts.Config.Badger.InMemory,
	}, opts.Logger)
	if err != nil {
		return nil, err
	}

	gcDone := make(chan struct{})

	opts.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ticker := time.NewTicker(10 * time.Minute)
				defer ticker.Stop()
				for {
					select {
					case <-ticker.C:
						store.RunGC()
					case <-gcDone:
						return
					}
				}
			}()
			opts.Logger.Info("Badger store opened", "path", opts.Config.Badger.Path, "in_memory", opts.Config.Badger.InMemory)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(gcDone)
			return store.Close()
		},
	})

	return store, nil
}

var Module = fx.Module("kv",
	fx.Provide(
		New,
		func(store *Badger) Store { return store },
	),
)
