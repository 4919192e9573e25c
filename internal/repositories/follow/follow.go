package follow

import "context"

//go:generate go run go.uber.org/mock/mockgen -source=follow.go -destination=mocks/mock.go
type Repository interface {
	// Following returns the IDs of accounts the user follows.
	Following(ctx context.Context, userID string) ([]string, error)

	// IsFollowing reports whether follower follows followee.
	IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error)

	// IsCloseFriend reports whether member is on owner's close-friends
	// list. Callers treat a missing row as no access.
	IsCloseFriend(ctx context.Context, ownerID, memberID string) (bool, error)

	// FollowerCount returns how many accounts follow the user.
	FollowerCount(ctx context.Context, userID string) (int64, error)
}
