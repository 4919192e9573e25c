package engagementimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/socialvibe/feedcore/internal/domain"
	"github.com/socialvibe/feedcore/internal/engagement"
	"github.com/socialvibe/feedcore/internal/kv"
	"github.com/socialvibe/feedcore/internal/metrics"
	followrepo "github.com/socialvibe/feedcore/internal/repositories/follow"
	postrepo "github.com/socialvibe/feedcore/internal/repositories/post"
	"github.com/socialvibe/feedcore/internal/respcache"
	"github.com/socialvibe/feedcore/internal/scorer"
	"github.com/socialvibe/feedcore/pkg/config"
	"github.com/socialvibe/feedcore/pkg/errors"
	"github.com/socialvibe/feedcore/pkg/logger"
	"github.com/socialvibe/feedcore/pkg/retry"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Store      kv.Store
	Cache      respcache.Cache
	PostRepo   postrepo.Repository
	FollowRepo followrepo.Repository
	Collector  *metrics.Collector
	Logger     logger.Logger
	Config     *config.Config
}

type CounterImpl struct {
	store      kv.Store
	cache      respcache.Cache
	postRepo   postrepo.Repository
	followRepo followrepo.Repository
	collector  *metrics.Collector
	logger     logger.Logger
	readTTL    time.Duration
	opTimeout  time.Duration
}

func New(opts Opts) *CounterImpl {
	return &CounterImpl{
		store:      opts.Store,
		cache:      opts.Cache,
		postRepo:   opts.PostRepo,
		followRepo: opts.FollowRepo,
		collector:  opts.Collector,
		logger:     opts.Logger.WithComponent("EngagementCounter"),
		readTTL:    time.Duration(opts.Config.Cache.CounterTTLSeconds) * time.Second,
		opTimeout:  time.Duration(opts.Config.Cache.OpTimeoutMillis) * time.Millisecond,
	}
}

var _ engagement.Counter = (*CounterImpl)(nil)

func counterKey(postID string) string {
	return "post/" + postID + "/engagement"
}

func fieldFor(kind domain.EngagementKind) string {
	// Field names match the persisted hash layout: likes/comments/shares.
	return string(kind) + "s"
}

func (c *CounterImpl) Increment(ctx context.Context, postID string, kind domain.EngagementKind) (int64, error) {
	return c.apply(ctx, postID, kind, 1)
}

func (c *CounterImpl) Decrement(ctx context.Context, postID string, kind domain.EngagementKind) (int64, error) {
	return c.apply(ctx, postID, kind, -1)
}

func (c *CounterImpl) apply(ctx context.Context, postID string, kind domain.EngagementKind, delta int64) (int64, error) {
	if !kind.Valid() {
		return 0, errors.ErrInvalidInput
	}

	var count int64
	err := retry.Do(ctx, c.logger, "engagement_incr", func() error {
		opCtx, cancel := context.WithTimeout(ctx, c.opTimeout)
		defer cancel()

		n, err := c.store.HIncrBy(opCtx, counterKey(postID), fieldFor(kind), delta)
		if err != nil {
			return err
		}
		count = n
		return nil
	}, retry.DefaultConfig())
	if err != nil {
		// The like/unlike itself is authoritative in the primary store;
		// losing a counter update is not fatal to the user action.
		c.collector.RecordCounterFailure()
		c.logger.Warn("Engagement counter update lost", "post_id", postID, "kind", kind, "delta", delta, "error", err)
		return 0, nil
	}

	c.invalidate(ctx, postID)
	return count, nil
}

func (c *CounterImpl) Read(ctx context.Context, postID string) (domain.EngagementSnapshot, error) {
	raw, err := c.cache.GetOrCompute(ctx, counterKey(postID), c.readTTL, func(ctx context.Context) ([]byte, error) {
		snapshot, err := c.readDirect(ctx, postID)
		if err != nil {
			return nil, err
		}
		return json.Marshal(snapshot)
	})
	if err != nil {
		c.collector.RecordCounterFailure()
		c.logger.Warn("Engagement read failed, falling back to zero", "post_id", postID, "error", err)
		return domain.EngagementSnapshot{}, nil
	}

	var snapshot domain.EngagementSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return domain.EngagementSnapshot{}, nil
	}
	return snapshot, nil
}

func (c *CounterImpl) Rate(ctx context.Context, postID string) (float64, error) {
	post, err := c.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, postrepo.ErrNotFound) {
			return 0, errors.ErrNotFound
		}
		return 0, fmt.Errorf("%w: %v", errors.ErrUnavailable, err)
	}

	followers, err := c.followRepo.FollowerCount(ctx, post.AuthorID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errors.ErrUnavailable, err)
	}

	snapshot, err := c.Read(ctx, postID)
	if err != nil {
		return 0, err
	}
	return scorer.EngagementRate(snapshot, followers), nil
}

func (c *CounterImpl) readDirect(ctx context.Context, postID string) (domain.EngagementSnapshot, error) {
	opCtx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()

	fields, err := c.store.HGetAll(opCtx, counterKey(postID))
	if err != nil {
		return domain.EngagementSnapshot{}, err
	}

	return domain.EngagementSnapshot{
		Likes:    fields["likes"],
		Comments: fields["comments"],
		Shares:   fields["shares"],
	}, nil
}

// invalidate drops every cached entry for the post so the next read reflects
// the write within the cache TTL contract.
func (c *CounterImpl) invalidate(ctx context.Context, postID string) {
	invCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.opTimeout)
	defer cancel()

	// Trailing separator keeps "post/1" from sweeping "post/10".
	_ = c.cache.Invalidate(invCtx, "post/"+postID+"/")
	// Reaction writes reorder hot rankings, so cached anonymous feed pages
	// must not outlive the write.
	_ = c.cache.Invalidate(invCtx, "feed")
}
