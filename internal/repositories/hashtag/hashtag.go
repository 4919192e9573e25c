package hashtag

import (
	"context"

	"github.com/socialvibe/feedcore/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=hashtag.go -destination=mocks/mock.go
type Repository interface {
	// TrackUsage bumps a tag's usage counter and refreshes its last-used
	// timestamp, creating the row on first use. Called once per occurrence
	// at post-creation time; occurrences are deliberately not deduplicated.
	TrackUsage(ctx context.Context, tag string) error

	// TopByRecency returns up to limit tags ordered most-recently-used
	// first, ties broken by count descending.
	TopByRecency(ctx context.Context, limit int) ([]domain.TagUsage, error)
}
