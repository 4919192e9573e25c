package engagement

import (
	"context"

	"github.com/socialvibe/feedcore/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=engagement.go -destination=mocks/mock.go
type Counter interface {
	// Increment atomically bumps one counter of a post and returns the new
	// value. The counter is a denormalized acceleration structure: a store
	// failure is logged and absorbed, never surfaced to the action that
	// triggered it.
	Increment(ctx context.Context, postID string, kind domain.EngagementKind) (int64, error)

	// Decrement is the undo path (unlike, comment delete). The result is
	// clamped at zero regardless of call order.
	Decrement(ctx context.Context, postID string, kind domain.EngagementKind) (int64, error)

	// Read returns the current counters for a post. May be served from a
	// short-lived cache; falls back to a zero snapshot when the store is
	// unreachable.
	Read(ctx context.Context, postID string) (domain.EngagementSnapshot, error)

	// Rate returns the post's total engagement as a percentage of its
	// author's follower count. Returns ErrNotFound when the post no longer
	// exists; zero followers yields a zero rate.
	Rate(ctx context.Context, postID string) (float64, error)
}
