package trending

import (
	"context"

	"github.com/socialvibe/feedcore/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=trending.go -destination=mocks/mock.go
type Client interface {
	// TrendingHashtags returns the top tags ordered most-recently-used
	// first, count second. Served from cache within the trending TTL.
	TrendingHashtags(ctx context.Context, limit int) ([]domain.TagUsage, error)

	// TrendingPosts returns post IDs from the trailing window ordered by
	// hotness descending. Served from cache within the trending TTL.
	TrendingPosts(ctx context.Context, limit int) ([]string, error)

	// TrackHashtagUsage records one hashtag occurrence at post-creation
	// time.
	TrackHashtagUsage(ctx context.Context, tag string) error

	// ScheduleRefresh starts the periodic snapshot recomputation and keeps
	// it running until ctx is cancelled.
	ScheduleRefresh(ctx context.Context) error
}
