package scorer

import (
	"math"
	"time"

	"github.com/socialvibe/feedcore/internal/domain"
)

// Engagement weights. Comments and shares cost the user more than a like,
// so they count for more.
const (
	likeWeight    = 2.0
	commentWeight = 3.0
	shareWeight   = 5.0
)

// HotScore ranks a post by engagement with power decay over age:
//
//	(likes*2 + comments*3 + shares*5) / (ageHours + 2)^1.5
//
// The +2 offset keeps the denominator positive and damps the first-hours
// swing; the 1.5 exponent lets old posts fall out of ranking even with
// frozen engagement. Age is clamped at zero so a createdAt in the future
// (clock skew) cannot inflate the score or flip the denominator.
func HotScore(post *domain.Post, now time.Time) float64 {
	return HotScoreAt(post.Engagement, post.CreatedAt, now)
}

// HotScoreAt is HotScore over an explicit engagement snapshot, used when
// counters are fetched separately from the post projection.
func HotScoreAt(e domain.EngagementSnapshot, createdAt, now time.Time) float64 {
	ageHours := now.Sub(createdAt).Hours()
	if ageHours < 0 {
		ageHours = 0
	}

	engagement := float64(e.Likes)*likeWeight +
		float64(e.Comments)*commentWeight +
		float64(e.Shares)*shareWeight

	return engagement / math.Pow(ageHours+2, 1.5)
}

// EngagementRate is the post engagement expressed as a percentage of the
// author's follower count. Zero followers yields zero, not a division error.
func EngagementRate(e domain.EngagementSnapshot, followers int64) float64 {
	if followers == 0 {
		return 0
	}
	total := float64(e.Likes + e.Comments + e.Shares)
	return total / float64(followers) * 100
}
