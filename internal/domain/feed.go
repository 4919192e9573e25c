package domain

// FeedMode selects the candidate set and ordering for a composed feed.
type FeedMode string

const (
	FeedModeFollowing   FeedMode = "following"
	FeedModeHot         FeedMode = "hot"
	FeedModeLatest      FeedMode = "latest"
	FeedModeRecommended FeedMode = "recommended"
	FeedModeSmart       FeedMode = "smart"
)

// Valid reports whether the mode is one the composer understands.
func (m FeedMode) Valid() bool {
	switch m {
	case FeedModeFollowing, FeedModeHot, FeedModeLatest, FeedModeRecommended, FeedModeSmart:
		return true
	}
	return false
}

// FeedPage is one page of a composed feed.
type FeedPage struct {
	PostIDs    []string
	NextCursor string
	HasMore    bool
}
