package interestimpl

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/socialvibe/feedcore/internal/domain"
	"github.com/socialvibe/feedcore/internal/interest"
	"github.com/socialvibe/feedcore/internal/kv"
	"github.com/socialvibe/feedcore/internal/ratelimit"
	followrepo "github.com/socialvibe/feedcore/internal/repositories/follow"
	"github.com/socialvibe/feedcore/pkg/hashtag"
	"github.com/socialvibe/feedcore/pkg/logger"
)

type Config struct {
	// ProfileCap bounds the number of tags kept per user; the lowest
	// weights are evicted on write. Zero disables the cap.
	ProfileCap int
	// TopTags is how many of the caller's interests seed the
	// similar-users and recommended-feed lookups.
	TopTags int
	// DecayHalfLifeDays applies read-time exponential decay to weights.
	// Zero disables decay; stored weights stay monotone either way.
	DecayHalfLifeDays float64
}

type TrackerImpl struct {
	store   kv.Store
	follows followrepo.Repository
	logger  logger.Logger
	limiter ratelimit.Limiter
	cfg     Config
	now     func() time.Time
}

func New(store kv.Store, follows followrepo.Repository, log logger.Logger, limiter ratelimit.Limiter, cfg Config) *TrackerImpl {
	if cfg.TopTags <= 0 {
		cfg.TopTags = 5
	}
	return &TrackerImpl{
		store:   store,
		follows: follows,
		logger:  log.WithComponent("InterestTracker"),
		limiter: limiter,
		cfg:     cfg,
		now:     time.Now,
	}
}

var _ interest.Tracker = (*TrackerImpl)(nil)

func profileKey(userID string) string {
	return "user/" + userID + "/interests"
}

func touchedKey(userID string) string {
	return "user/" + userID + "/interests_touched"
}

func tagIndexKey(tag string) string {
	return "tagusers/" + tag
}

func viewedKey(userID string) string {
	return "user/" + userID + "/viewed_posts"
}

func (t *TrackerImpl) RecordInterest(ctx context.Context, userID string, tags []string, weight float64) error {
	if weight == 0 {
		weight = 1
	}

	now := float64(t.now().Unix())
	for _, raw := range tags {
		tag := hashtag.Normalize(raw)
		if tag == "" {
			continue
		}

		if _, err := t.store.ZIncrBy(ctx, profileKey(userID), tag, weight); err != nil {
			return err
		}
		// Inverted index: who holds this tag, at what weight. Updated in
		// step with the profile so similarity lookups never need a key
		// scan.
		if _, err := t.store.ZIncrBy(ctx, tagIndexKey(tag), userID, weight); err != nil {
			return err
		}
		if err := t.store.ZAdd(ctx, touchedKey(userID), tag, now); err != nil {
			return err
		}
	}

	return t.enforceCap(ctx, userID)
}

// enforceCap evicts the lowest-weight tags beyond the profile cap, removing
// them from the inverted index as well so the two structures stay aligned.
func (t *TrackerImpl) enforceCap(ctx context.Context, userID string) error {
	if t.cfg.ProfileCap <= 0 {
		return nil
	}

	all, err := t.store.ZRevRangeWithScores(ctx, profileKey(userID), 0)
	if err != nil {
		return err
	}
	if len(all) <= t.cfg.ProfileCap {
		return nil
	}

	for _, evicted := range all[t.cfg.ProfileCap:] {
		if err := t.store.ZRem(ctx, profileKey(userID), evicted.Member); err != nil {
			return err
		}
		if err := t.store.ZRem(ctx, touchedKey(userID), evicted.Member); err != nil {
			return err
		}
		if err := t.store.ZRem(ctx, tagIndexKey(evicted.Member), userID); err != nil {
			return err
		}
	}
	return nil
}

func (t *TrackerImpl) TopInterests(ctx context.Context, userID string, limit int) ([]domain.InterestEntry, error) {
	members, err := t.store.ZRevRangeWithScores(ctx, profileKey(userID), 0)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.InterestEntry, 0, len(members))
	if t.cfg.DecayHalfLifeDays > 0 {
		entries, err = t.decayed(ctx, userID, members)
		if err != nil {
			return nil, err
		}
	} else {
		for _, m := range members {
			entries = append(entries, domain.InterestEntry{Tag: m.Member, Weight: m.Score})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Weight != entries[j].Weight {
			return entries[i].Weight > entries[j].Weight
		}
		return entries[i].Tag < entries[j].Tag
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// decayed applies read-time exponential decay based on when each tag was
// last touched: weight * 0.5^(ageDays/halfLife).
func (t *TrackerImpl) decayed(ctx context.Context, userID string, members []kv.Member) ([]domain.InterestEntry, error) {
	touched, err := t.store.ZRevRangeWithScores(ctx, touchedKey(userID), 0)
	if err != nil {
		return nil, err
	}
	lastTouch := make(map[string]float64, len(touched))
	for _, m := range touched {
		lastTouch[m.Member] = m.Score
	}

	now := float64(t.now().Unix())
	entries := make([]domain.InterestEntry, 0, len(members))
	for _, m := range members {
		weight := m.Score
		if ts, ok := lastTouch[m.Member]; ok {
			ageDays := (now - ts) / 86400
			if ageDays > 0 {
				weight *= math.Pow(0.5, ageDays/t.cfg.DecayHalfLifeDays)
			}
		}
		entries = append(entries, domain.InterestEntry{Tag: m.Member, Weight: weight})
	}
	return entries, nil
}

func (t *TrackerImpl) SuggestSimilarUsers(ctx context.Context, userID string, limit int) ([]domain.UserScore, error) {
	if !t.limiter.Allow(userID) {
		return nil, interest.ErrRateLimited
	}

	top, err := t.TopInterests(ctx, userID, t.cfg.TopTags)
	if err != nil {
		return nil, err
	}

	// Suggestions are for discovery: accounts the caller already follows
	// are filtered out. A failed lookup degrades to no filtering.
	exclude := map[string]struct{}{userID: {}}
	if following, err := t.follows.Following(ctx, userID); err != nil {
		t.logger.Warn("Following lookup failed, suggestions unfiltered", "user_id", userID, "error", err)
	} else {
		for _, id := range following {
			exclude[id] = struct{}{}
		}
	}

	scores := make(map[string]float64)
	for _, entry := range top {
		holders, err := t.store.ZRevRangeWithScores(ctx, tagIndexKey(entry.Tag), 0)
		if err != nil {
			return nil, err
		}
		for _, holder := range holders {
			if _, skip := exclude[holder.Member]; skip {
				continue
			}
			scores[holder.Member] += holder.Score
		}
	}

	ranked := make([]domain.UserScore, 0, len(scores))
	for id, score := range scores {
		ranked = append(ranked, domain.UserScore{UserID: id, Score: score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].UserID < ranked[j].UserID
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

func (t *TrackerImpl) MarkViewed(ctx context.Context, userID, postID string) error {
	return t.store.SAdd(ctx, viewedKey(userID), postID)
}

func (t *TrackerImpl) ViewedPosts(ctx context.Context, userID string) (map[string]struct{}, error) {
	members, err := t.store.SMembers(ctx, viewedKey(userID))
	if err != nil {
		return nil, err
	}
	viewed := make(map[string]struct{}, len(members))
	for _, m := range members {
		viewed[m] = struct{}{}
	}
	return viewed, nil
}
