package post

import (
	"context"
	"errors"
	"time"

	"github.com/socialvibe/feedcore/internal/domain"
)

var ErrNotFound = errors.New("post not found")

//go:generate go run go.uber.org/mock/mockgen -source=post.go -destination=mocks/mock.go
//
// Repository is the read-only projection of posts owned by the primary
// store. Every query excludes posts past their expiry, and every
// viewer-scoped query applies the visibility rules in SQL: private posts
// only for their author, friends posts only on mutual follow, close-friends
// posts only on an explicit membership row (absent data fails closed).
type Repository interface {
	// GetByID returns a single post or ErrNotFound.
	GetByID(ctx context.Context, id string) (*domain.Post, error)

	// ListFollowing returns posts authored by accounts the viewer follows,
	// by the viewer, or public posts, newest first. before is an exclusive
	// upper bound on post ID ("" means from the top).
	ListFollowing(ctx context.Context, viewerID, before string, limit int) ([]*domain.Post, error)

	// ListLatest returns the visibility-filtered set in creation order,
	// newest first, with the same cursor semantics.
	ListLatest(ctx context.Context, viewerID, before string, limit int) ([]*domain.Post, error)

	// ListRecentPublic returns public posts created since the given time,
	// the candidate set for hot and trending ranking.
	ListRecentPublic(ctx context.Context, since time.Time, limit int) ([]*domain.Post, error)

	// ListByHashtags returns public posts carrying at least one of the
	// given tags, newest first.
	ListByHashtags(ctx context.Context, tags []string, limit int) ([]*domain.Post, error)
}
