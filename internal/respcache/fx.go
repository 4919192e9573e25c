package respcache

import (
	"time"

	"github.com/socialvibe/feedcore/internal/kv"
	"github.com/socialvibe/feedcore/internal/metrics"
	"github.com/socialvibe/feedcore/pkg/config"
	"github.com/socialvibe/feedcore/pkg/logger"
	"go.uber.org/fx"
)

var Module = fx.Module("respcache",
	fx.Provide(
		func(store kv.Store, log logger.Logger, collector *metrics.Collector, cfg *config.Config) *Impl {
			return New(store, log, collector, time.Duration(cfg.Cache.OpTimeoutMillis)*time.Millisecond)
		},
		func(impl *Impl) Cache { return impl },
	),
)
