package composer

import (
	"context"

	"github.com/socialvibe/feedcore/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=composer.go -destination=mocks/mock.go
type Client interface {
	// ComposeFeed assembles one page of ranked post IDs for a viewer.
	// viewerID may be empty for anonymous requests. Unknown modes and
	// malformed cursors are rejected before any store round trip; a hard
	// primary-store failure is returned as an error, never as an empty
	// page.
	ComposeFeed(ctx context.Context, viewerID string, mode domain.FeedMode, cursor string, pageSize int) (domain.FeedPage, error)
}
