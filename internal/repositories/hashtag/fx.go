package hashtag

import (
	"go.uber.org/fx"
)

var Module = fx.Module("hashtag_repository",
	fx.Provide(
		fx.Annotate(
			NewPgx,
			fx.As(new(Repository)),
		),
	),
)
