package engagementimpl

import (
	"github.com/socialvibe/feedcore/internal/engagement"
	"go.uber.org/fx"
)

var Module = fx.Module("engagement",
	fx.Provide(
		fx.Annotate(
			New,
			fx.As(new(engagement.Counter)),
		),
	),
)
