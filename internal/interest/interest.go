package interest

import (
	"context"
	"errors"

	"github.com/socialvibe/feedcore/internal/domain"
)

// ErrRateLimited is returned when the similar-users scan is throttled for a
// caller.
var ErrRateLimited = errors.New("similar users lookup rate limited")

//go:generate go run go.uber.org/mock/mockgen -source=interest.go -destination=mocks/mock.go
type Tracker interface {
	// RecordInterest adds weight to each tag of the user's interest
	// profile (create-if-absent, accumulate otherwise) and keeps the
	// tag-to-users inverted index in step.
	RecordInterest(ctx context.Context, userID string, tags []string, weight float64) error

	// TopInterests returns up to limit tags ordered by descending weight,
	// ties broken lexicographically.
	TopInterests(ctx context.Context, userID string, limit int) ([]domain.InterestEntry, error)

	// SuggestSimilarUsers ranks other users by summed weight on the
	// caller's top interest tags, using the inverted index rather than a
	// full profile scan. Users the caller already follows are excluded.
	SuggestSimilarUsers(ctx context.Context, userID string, limit int) ([]domain.UserScore, error)

	// MarkViewed records that the user has seen a post.
	MarkViewed(ctx context.Context, userID, postID string) error

	// ViewedPosts returns the set of post IDs the user has seen.
	ViewedPosts(ctx context.Context, userID string) (map[string]struct{}, error)
}
