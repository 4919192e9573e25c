package domain

import "time"

// TagUsage tracks how often a hashtag has been used and when it was last
// seen. Trending ordering is most-recently-used first, count second.
type TagUsage struct {
	Tag      string
	Count    int64
	LastUsed time.Time
}

// InterestEntry is one tag of a user's interest profile.
type InterestEntry struct {
	Tag    string
	Weight float64
}

// UserScore ranks a candidate user by summed matching-interest weight.
type UserScore struct {
	UserID string
	Score  float64
}
