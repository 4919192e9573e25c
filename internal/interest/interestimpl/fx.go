package interestimpl

import (
	"github.com/socialvibe/feedcore/internal/interest"
	"github.com/socialvibe/feedcore/internal/kv"
	"github.com/socialvibe/feedcore/internal/ratelimit"
	followrepo "github.com/socialvibe/feedcore/internal/repositories/follow"
	"github.com/socialvibe/feedcore/pkg/config"
	"github.com/socialvibe/feedcore/pkg/logger"
	"go.uber.org/fx"
)

var Module = fx.Module("interest",
	fx.Provide(
		fx.Annotate(
			func(store kv.Store, follows followrepo.Repository, log logger.Logger, limiter ratelimit.Limiter, cfg *config.Config) *TrackerImpl {
				return New(store, follows, log, limiter, Config{
					ProfileCap:        cfg.Interest.ProfileCap,
					TopTags:           cfg.Interest.TopTags,
					DecayHalfLifeDays: cfg.Interest.DecayHalfLifeDays,
				})
			},
			fx.As(new(interest.Tracker)),
		),
	),
)
