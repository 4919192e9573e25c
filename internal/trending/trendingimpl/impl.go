package trendingimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/socialvibe/feedcore/internal/domain"
	"github.com/socialvibe/feedcore/internal/engagement"
	"github.com/socialvibe/feedcore/internal/metrics"
	hashtagrepo "github.com/socialvibe/feedcore/internal/repositories/hashtag"
	postrepo "github.com/socialvibe/feedcore/internal/repositories/post"
	"github.com/socialvibe/feedcore/internal/respcache"
	"github.com/socialvibe/feedcore/internal/scorer"
	"github.com/socialvibe/feedcore/internal/trending"
	"github.com/socialvibe/feedcore/pkg/config"
	"github.com/socialvibe/feedcore/pkg/hashtag"
	"github.com/socialvibe/feedcore/pkg/logger"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"
)

// candidateLimit bounds how many window posts are scored per recompute.
const candidateLimit = 500

// counterFanout bounds concurrent engagement reads during scoring.
const counterFanout = 16

type Opts struct {
	fx.In

	PostRepo    postrepo.Repository
	HashtagRepo hashtagrepo.Repository
	Counter     engagement.Counter
	Cache       respcache.Cache
	Collector   *metrics.Collector
	Logger      logger.Logger
	Config      *config.Config
}

type TrendingImpl struct {
	postRepo    postrepo.Repository
	hashtagRepo hashtagrepo.Repository
	counter     engagement.Counter
	cache       respcache.Cache
	collector   *metrics.Collector
	logger      logger.Logger
	window      time.Duration
	ttl         time.Duration
	interval    time.Duration
	limit       int
	now         func() time.Time
}

func New(opts Opts) *TrendingImpl {
	return &TrendingImpl{
		postRepo:    opts.PostRepo,
		hashtagRepo: opts.HashtagRepo,
		counter:     opts.Counter,
		cache:       opts.Cache,
		collector:   opts.Collector,
		logger:      opts.Logger.WithComponent("TrendingAggregator"),
		window:      time.Duration(opts.Config.Trending.WindowHours) * time.Hour,
		ttl:         time.Duration(opts.Config.Cache.TrendingTTLSeconds) * time.Second,
		interval:    time.Duration(opts.Config.Trending.RefreshIntervalMinutes) * time.Minute,
		limit:       opts.Config.Trending.Limit,
		now:         time.Now,
	}
}

var _ trending.Client = (*TrendingImpl)(nil)

func (t *TrendingImpl) TrendingHashtags(ctx context.Context, limit int) ([]domain.TagUsage, error) {
	// The snapshot is global, so the cache key carries no viewer context.
	// Both trending outputs share one TTL policy.
	key := fmt.Sprintf("trending/hashtags/%d", limit)

	raw, err := t.cache.GetOrCompute(ctx, key, t.ttl, func(ctx context.Context) ([]byte, error) {
		tags, err := t.hashtagRepo.TopByRecency(ctx, limit)
		if err != nil {
			return nil, err
		}
		return json.Marshal(tags)
	})
	if err != nil {
		return nil, err
	}

	var tags []domain.TagUsage
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (t *TrendingImpl) TrendingPosts(ctx context.Context, limit int) ([]string, error) {
	key := fmt.Sprintf("trending/posts/%d", limit)

	raw, err := t.cache.GetOrCompute(ctx, key, t.ttl, func(ctx context.Context) ([]byte, error) {
		ids, err := t.recomputeTrendingPosts(ctx, limit)
		if err != nil {
			return nil, err
		}
		return json.Marshal(ids)
	})
	if err != nil {
		return nil, err
	}

	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (t *TrendingImpl) recomputeTrendingPosts(ctx context.Context, limit int) ([]string, error) {
	started := t.now()

	posts, err := t.postRepo.ListRecentPublic(ctx, started.Add(-t.window), candidateLimit)
	if err != nil {
		return nil, err
	}

	type scored struct {
		id    string
		score float64
	}
	results := make([]scored, len(posts))

	// Engagement reads are independent per post; issue them concurrently.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(counterFanout)
	for i, post := range posts {
		g.Go(func() error {
			snapshot, err := t.counter.Read(gctx, post.ID)
			if err != nil {
				return err
			}
			results[i] = scored{
				id:    post.ID,
				score: scorer.HotScoreAt(snapshot, post.CreatedAt, started),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].id > results[j].id
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.id
	}

	t.collector.RecordTrendingRecompute(t.now().Sub(started))
	return ids, nil
}

func (t *TrendingImpl) TrackHashtagUsage(ctx context.Context, tag string) error {
	normalized := hashtag.Normalize(tag)
	if normalized == "" {
		return nil
	}
	return t.hashtagRepo.TrackUsage(ctx, normalized)
}
