package fx

import (
	"github.com/socialvibe/feedcore/internal/repositories/follow"
	"github.com/socialvibe/feedcore/internal/repositories/hashtag"
	"github.com/socialvibe/feedcore/internal/repositories/post"
	"go.uber.org/fx"
)

var Module = fx.Options(
	post.Module,
	follow.Module,
	hashtag.Module,
)
