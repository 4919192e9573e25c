package composerimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/socialvibe/feedcore/internal/composer"
	"github.com/socialvibe/feedcore/internal/domain"
	"github.com/socialvibe/feedcore/internal/engagement"
	"github.com/socialvibe/feedcore/internal/interest"
	"github.com/socialvibe/feedcore/internal/metrics"
	followrepo "github.com/socialvibe/feedcore/internal/repositories/follow"
	postrepo "github.com/socialvibe/feedcore/internal/repositories/post"
	"github.com/socialvibe/feedcore/internal/respcache"
	"github.com/socialvibe/feedcore/internal/scorer"
	"github.com/socialvibe/feedcore/pkg/config"
	"github.com/socialvibe/feedcore/pkg/errors"
	"github.com/socialvibe/feedcore/pkg/logger"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"
)

// candidateLimit bounds the candidate set fetched for ranked modes.
const candidateLimit = 500

// counterFanout bounds concurrent engagement reads during a scoring pass.
const counterFanout = 16

// idCursorPattern matches primary-store post identifiers. Anything else in
// an ID-cursor position is rejected before a store round trip.
var idCursorPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

type Opts struct {
	fx.In

	PostRepo   postrepo.Repository
	FollowRepo followrepo.Repository
	Tracker    interest.Tracker
	Counter    engagement.Counter
	Cache      respcache.Cache
	Collector  *metrics.Collector
	Logger     logger.Logger
	Config     *config.Config
}

type ComposerImpl struct {
	postRepo   postrepo.Repository
	followRepo followrepo.Repository
	tracker    interest.Tracker
	counter    engagement.Counter
	cache      respcache.Cache
	collector  *metrics.Collector
	logger     logger.Logger

	defaultPageSize int
	maxPageSize     int
	hotWindow       time.Duration
	topTags         int
	cacheTTL        time.Duration
	now             func() time.Time
}

func New(opts Opts) *ComposerImpl {
	return &ComposerImpl{
		postRepo:        opts.PostRepo,
		followRepo:      opts.FollowRepo,
		tracker:         opts.Tracker,
		counter:         opts.Counter,
		cache:           opts.Cache,
		collector:       opts.Collector,
		logger:          opts.Logger.WithComponent("FeedComposer"),
		defaultPageSize: opts.Config.Feed.DefaultPageSize,
		maxPageSize:     opts.Config.Feed.MaxPageSize,
		hotWindow:       time.Duration(opts.Config.Trending.WindowHours) * time.Hour,
		topTags:         opts.Config.Interest.TopTags,
		cacheTTL:        time.Duration(opts.Config.Cache.DefaultTTLSeconds) * time.Second,
		now:             time.Now,
	}
}

var _ composer.Client = (*ComposerImpl)(nil)

func (c *ComposerImpl) ComposeFeed(ctx context.Context, viewerID string, mode domain.FeedMode, cursor string, pageSize int) (domain.FeedPage, error) {
	if !mode.Valid() {
		return domain.FeedPage{}, errors.ErrUnknownMode
	}
	if err := validateCursor(mode, cursor); err != nil {
		return domain.FeedPage{}, err
	}

	if pageSize <= 0 {
		pageSize = c.defaultPageSize
	}
	if pageSize > c.maxPageSize {
		pageSize = c.maxPageSize
	}

	started := c.now()
	defer func() {
		c.collector.RecordComposeLatency(string(mode), c.now().Sub(started))
	}()

	// Hot and latest pages are viewer-independent for anonymous requests
	// and may be served from the shared cache. Any identified viewer
	// bypasses the cache entirely.
	if respcache.Cacheable(viewerID) {
		if mode == domain.FeedModeHot || mode == domain.FeedModeLatest {
			return c.composeCached(ctx, mode, cursor, pageSize)
		}
	} else {
		c.collector.RecordCacheBypass()
	}

	return c.compose(ctx, viewerID, mode, cursor, pageSize)
}

func (c *ComposerImpl) composeCached(ctx context.Context, mode domain.FeedMode, cursor string, pageSize int) (domain.FeedPage, error) {
	key := fmt.Sprintf("feed/%s/%s/%d", mode, cursor, pageSize)

	raw, err := c.cache.GetOrCompute(ctx, key, c.cacheTTL, func(ctx context.Context) ([]byte, error) {
		page, err := c.compose(ctx, "", mode, cursor, pageSize)
		if err != nil {
			return nil, err
		}
		return json.Marshal(page)
	})
	if err != nil {
		return domain.FeedPage{}, err
	}

	var page domain.FeedPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return domain.FeedPage{}, err
	}
	return page, nil
}

func (c *ComposerImpl) compose(ctx context.Context, viewerID string, mode domain.FeedMode, cursor string, pageSize int) (domain.FeedPage, error) {
	switch mode {
	case domain.FeedModeFollowing:
		return c.composeChronological(ctx, viewerID, cursor, pageSize, c.postRepo.ListFollowing)
	case domain.FeedModeLatest:
		return c.composeChronological(ctx, viewerID, cursor, pageSize, c.postRepo.ListLatest)
	case domain.FeedModeHot:
		return c.composeHot(ctx, cursor, pageSize)
	case domain.FeedModeRecommended:
		return c.composeRecommended(ctx, viewerID, cursor, pageSize)
	case domain.FeedModeSmart:
		return c.composeSmart(ctx, viewerID, cursor, pageSize)
	}
	return domain.FeedPage{}, errors.ErrUnknownMode
}

type chronoQuery func(ctx context.Context, viewerID, before string, limit int) ([]*domain.Post, error)

// composeChronological serves the creation-order modes. The cursor is the
// last-seen post ID; the next page is everything strictly below it, which
// keeps consecutive pages duplicate-free as long as IDs are monotonic.
func (c *ComposerImpl) composeChronological(ctx context.Context, viewerID, cursor string, pageSize int, query chronoQuery) (domain.FeedPage, error) {
	posts, err := query(ctx, viewerID, cursor, pageSize+1)
	if err != nil {
		return domain.FeedPage{}, fmt.Errorf("%w: %v", errors.ErrUnavailable, err)
	}

	// Page boundaries come from the raw fetch. A post dropped by the
	// in-memory visibility re-check shrinks the page, but must not end
	// pagination early.
	hasMore := len(posts) > pageSize
	if hasMore {
		posts = posts[:pageSize]
	}

	page := domain.FeedPage{HasMore: hasMore}
	if hasMore {
		page.NextCursor = posts[len(posts)-1].ID
	}
	page.PostIDs = postIDs(c.filterVisible(ctx, viewerID, posts))
	return page, nil
}

// composeHot serves the hotness-ranked mode. The cursor is a plain offset
// into the ranking; because the ranking is recomputed per request, entries
// may shift between pages. That volatility is inherent to a live hot
// ranking and accepted.
func (c *ComposerImpl) composeHot(ctx context.Context, cursor string, pageSize int) (domain.FeedPage, error) {
	offset, err := parseOffset(cursor)
	if err != nil {
		return domain.FeedPage{}, err
	}

	posts, err := c.postRepo.ListRecentPublic(ctx, c.now().Add(-c.hotWindow), candidateLimit)
	if err != nil {
		return domain.FeedPage{}, fmt.Errorf("%w: %v", errors.ErrUnavailable, err)
	}

	ranked, err := c.rankByHotness(ctx, posts)
	if err != nil {
		return domain.FeedPage{}, err
	}

	return pageFromRanking(ranked, offset, pageSize), nil
}

func (c *ComposerImpl) composeRecommended(ctx context.Context, viewerID, cursor string, pageSize int) (domain.FeedPage, error) {
	offset, err := parseOffset(cursor)
	if err != nil {
		return domain.FeedPage{}, err
	}

	// No viewer means no interest profile to match against.
	if viewerID == "" {
		return domain.FeedPage{}, nil
	}

	posts, err := c.recommendedCandidates(ctx, viewerID)
	if err != nil {
		return domain.FeedPage{}, err
	}

	ranked, err := c.rankByHotness(ctx, posts)
	if err != nil {
		return domain.FeedPage{}, err
	}

	return pageFromRanking(ranked, offset, pageSize), nil
}

func (c *ComposerImpl) recommendedCandidates(ctx context.Context, viewerID string) ([]*domain.Post, error) {
	top, err := c.tracker.TopInterests(ctx, viewerID, c.topTags)
	if err != nil {
		// The interest store is an acceleration structure; a failed read
		// degrades to an empty recommendation set, not a failed feed.
		c.logger.Warn("Interest lookup failed, skipping recommendations", "viewer_id", viewerID, "error", err)
		return nil, nil
	}
	if len(top) == 0 {
		return nil, nil
	}

	tags := make([]string, len(top))
	for i, entry := range top {
		tags[i] = entry.Tag
	}

	posts, err := c.postRepo.ListByHashtags(ctx, tags, candidateLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrUnavailable, err)
	}
	return c.filterVisible(ctx, viewerID, posts), nil
}

// composeSmart merges the three candidate sets: follow-graph posts first,
// interest matches second, hot posts last. The three queries are
// independent reads and run concurrently. Posts the viewer has already seen
// sink to the end of the merged sequence.
func (c *ComposerImpl) composeSmart(ctx context.Context, viewerID, cursor string, pageSize int) (domain.FeedPage, error) {
	offset, err := parseOffset(cursor)
	if err != nil {
		return domain.FeedPage{}, err
	}

	var (
		followingPosts []*domain.Post
		recommended    []*domain.Post
		hotRanked      []*domain.Post
		viewed         map[string]struct{}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		posts, err := c.postRepo.ListFollowing(gctx, viewerID, "", candidateLimit)
		if err != nil {
			return fmt.Errorf("%w: %v", errors.ErrUnavailable, err)
		}
		followingPosts = c.filterVisible(gctx, viewerID, posts)
		return nil
	})
	g.Go(func() error {
		posts, err := c.recommendedCandidates(gctx, viewerID)
		if err != nil {
			return err
		}
		ranked, err := c.rankByHotness(gctx, posts)
		if err != nil {
			return err
		}
		recommended = ranked
		return nil
	})
	g.Go(func() error {
		posts, err := c.postRepo.ListRecentPublic(gctx, c.now().Add(-c.hotWindow), candidateLimit)
		if err != nil {
			return fmt.Errorf("%w: %v", errors.ErrUnavailable, err)
		}
		ranked, err := c.rankByHotness(gctx, posts)
		if err != nil {
			return err
		}
		hotRanked = ranked
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.FeedPage{}, err
	}

	if viewerID != "" {
		viewed, err = c.tracker.ViewedPosts(ctx, viewerID)
		if err != nil {
			c.logger.Warn("Viewed-posts lookup failed, serving unfiltered merge", "viewer_id", viewerID, "error", err)
			viewed = nil
		}
	}

	merged := mergeDedupe(followingPosts, recommended, hotRanked)
	merged = demoteViewed(merged, viewed)

	return pageFromRanking(merged, offset, pageSize), nil
}

// rankByHotness scores posts with concurrently fetched engagement counters
// and returns them hottest first, ties broken by ID descending.
func (c *ComposerImpl) rankByHotness(ctx context.Context, posts []*domain.Post) ([]*domain.Post, error) {
	if len(posts) == 0 {
		return nil, nil
	}

	now := c.now()
	scores := make([]float64, len(posts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(counterFanout)
	for i, post := range posts {
		g.Go(func() error {
			snapshot, err := c.counter.Read(gctx, post.ID)
			if err != nil {
				return err
			}
			scores[i] = scorer.HotScoreAt(snapshot, post.CreatedAt, now)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ranked := make([]*domain.Post, len(posts))
	order := make([]int, len(posts))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		i, j := order[a], order[b]
		if scores[i] != scores[j] {
			return scores[i] > scores[j]
		}
		return posts[i].ID > posts[j].ID
	})
	for pos, idx := range order {
		ranked[pos] = posts[idx]
	}
	return ranked, nil
}

// filterVisible re-applies the privacy rules in memory: a private post only
// reaches its author, close-friends visibility needs an explicit membership
// row and fails closed when the check cannot be made, friends visibility
// needs a mutual follow. Expired posts are dropped regardless of source.
func (c *ComposerImpl) filterVisible(ctx context.Context, viewerID string, posts []*domain.Post) []*domain.Post {
	now := c.now()
	visible := posts[:0]
	for _, post := range posts {
		if post.Expired(now) {
			continue
		}
		if c.mayView(ctx, viewerID, post) {
			visible = append(visible, post)
		}
	}
	return visible
}

func (c *ComposerImpl) mayView(ctx context.Context, viewerID string, post *domain.Post) bool {
	if post.AuthorID == viewerID && viewerID != "" {
		return true
	}

	switch post.Visibility {
	case domain.VisibilityPublic:
		return true
	case domain.VisibilityPrivate:
		return false
	case domain.VisibilityCloseFriends:
		if viewerID == "" {
			return false
		}
		ok, err := c.followRepo.IsCloseFriend(ctx, post.AuthorID, viewerID)
		if err != nil {
			// Membership data unavailable: treat as private.
			return false
		}
		return ok
	case domain.VisibilityFriends:
		if viewerID == "" {
			return false
		}
		forward, err := c.followRepo.IsFollowing(ctx, viewerID, post.AuthorID)
		if err != nil || !forward {
			return false
		}
		back, err := c.followRepo.IsFollowing(ctx, post.AuthorID, viewerID)
		if err != nil {
			return false
		}
		return back
	}
	return false
}

func mergeDedupe(lists ...[]*domain.Post) []*domain.Post {
	seen := make(map[string]struct{})
	var merged []*domain.Post
	for _, list := range lists {
		for _, post := range list {
			if _, dup := seen[post.ID]; dup {
				continue
			}
			seen[post.ID] = struct{}{}
			merged = append(merged, post)
		}
	}
	return merged
}

// demoteViewed stably moves already-seen posts behind unseen ones.
func demoteViewed(posts []*domain.Post, viewed map[string]struct{}) []*domain.Post {
	if len(viewed) == 0 {
		return posts
	}

	fresh := make([]*domain.Post, 0, len(posts))
	var seen []*domain.Post
	for _, post := range posts {
		if _, ok := viewed[post.ID]; ok {
			seen = append(seen, post)
		} else {
			fresh = append(fresh, post)
		}
	}
	return append(fresh, seen...)
}

func pageFromRanking(ranked []*domain.Post, offset, pageSize int) domain.FeedPage {
	if offset >= len(ranked) {
		return domain.FeedPage{}
	}

	end := offset + pageSize
	hasMore := end < len(ranked)
	if !hasMore {
		end = len(ranked)
	}

	page := domain.FeedPage{PostIDs: postIDs(ranked[offset:end]), HasMore: hasMore}
	if hasMore {
		page.NextCursor = strconv.Itoa(end)
	}
	return page
}

func postIDs(posts []*domain.Post) []string {
	ids := make([]string, len(posts))
	for i, post := range posts {
		ids[i] = post.ID
	}
	return ids
}

func validateCursor(mode domain.FeedMode, cursor string) error {
	if cursor == "" {
		return nil
	}

	switch mode {
	case domain.FeedModeFollowing, domain.FeedModeLatest:
		if !idCursorPattern.MatchString(cursor) {
			return errors.ErrInvalidCursor
		}
	default:
		if _, err := parseOffset(cursor); err != nil {
			return err
		}
	}
	return nil
}

func parseOffset(cursor string) (int, error) {
	if cursor == "" {
		return 0, nil
	}
	offset, err := strconv.Atoi(cursor)
	if err != nil || offset < 0 {
		return 0, errors.ErrInvalidCursor
	}
	return offset, nil
}
