package domain

import "time"

type Visibility string

const (
	VisibilityPublic       Visibility = "public"
	VisibilityFriends      Visibility = "friends"
	VisibilityPrivate      Visibility = "private"
	VisibilityCloseFriends Visibility = "close_friends"
)

// EngagementSnapshot holds the denormalized counters for a post.
type EngagementSnapshot struct {
	Likes    int64
	Comments int64
	Shares   int64
}

// Post is a read-only projection of a post owned by the primary store.
// IDs are assumed monotonically increasing, which is what makes them usable
// as pagination cursors.
type Post struct {
	ID         string
	AuthorID   string
	CreatedAt  time.Time
	Visibility Visibility
	Hashtags   []string
	Engagement EngagementSnapshot
	ExpiresAt  *time.Time // set for ephemeral content (stories)
}

// Expired reports whether the post is past its expiry. Expired posts are
// excluded from every feed and trend computation even if still present in
// storage.
func (p *Post) Expired(now time.Time) bool {
	return p.ExpiresAt != nil && !p.ExpiresAt.After(now)
}
