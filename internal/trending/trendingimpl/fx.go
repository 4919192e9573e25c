package trendingimpl

import (
	"github.com/socialvibe/feedcore/internal/trending"
	"go.uber.org/fx"
)

var Module = fx.Module("trending",
	fx.Provide(
		fx.Annotate(
			New,
			fx.As(new(trending.Client)),
		),
	),
)
