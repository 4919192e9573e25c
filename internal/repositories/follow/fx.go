package follow

import (
	"go.uber.org/fx"
)

var Module = fx.Module("follow_repository",
	fx.Provide(
		fx.Annotate(
			NewPgx,
			fx.As(new(Repository)),
		),
	),
)
