package trendingimpl

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/socialvibe/feedcore/internal/domain"
	mock_engagement "github.com/socialvibe/feedcore/internal/engagement/mocks"
	"github.com/socialvibe/feedcore/internal/kv"
	"github.com/socialvibe/feedcore/internal/metrics"
	mock_hashtag "github.com/socialvibe/feedcore/internal/repositories/hashtag/mocks"
	mock_post "github.com/socialvibe/feedcore/internal/repositories/post/mocks"
	"github.com/socialvibe/feedcore/internal/respcache"
	"github.com/socialvibe/feedcore/pkg/config"
	"github.com/socialvibe/feedcore/pkg/logger"
	"go.uber.org/mock/gomock"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Trending.WindowHours = 24
	cfg.Trending.Limit = 10
	cfg.Trending.RefreshIntervalMinutes = 10
	cfg.Cache.TrendingTTLSeconds = 900
	cfg.Cache.OpTimeoutMillis = 200
	return cfg
}

type fixture struct {
	impl        *TrendingImpl
	postRepo    *mock_post.MockRepository
	hashtagRepo *mock_hashtag.MockRepository
	counter     *mock_engagement.MockCounter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store, err := kv.NewInMemoryBadger(logger.NewNop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	ctrl := gomock.NewController(t)
	log := logger.NewNop()
	collector := metrics.NewCollector(prometheus.NewRegistry())

	f := &fixture{
		postRepo:    mock_post.NewMockRepository(ctrl),
		hashtagRepo: mock_hashtag.NewMockRepository(ctrl),
		counter:     mock_engagement.NewMockCounter(ctrl),
	}
	f.impl = New(Opts{
		PostRepo:    f.postRepo,
		HashtagRepo: f.hashtagRepo,
		Counter:     f.counter,
		Cache:       respcache.New(store, log, collector, 200*time.Millisecond),
		Collector:   collector,
		Logger:      log,
		Config:      testConfig(),
	})
	return f
}

func TestTrendingHashtagsServedFromCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	usage := []domain.TagUsage{
		{Tag: "goa", Count: 3, LastUsed: time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)},
		{Tag: "travel", Count: 50, LastUsed: time.Date(2025, 8, 1, 11, 0, 0, 0, time.UTC)},
	}
	// One repo hit serves every call within the TTL.
	f.hashtagRepo.EXPECT().TopByRecency(gomock.Any(), 10).Return(usage, nil).Times(1)

	for i := 0; i < 3; i++ {
		got, err := f.impl.TrendingHashtags(ctx, 10)
		if err != nil {
			t.Fatalf("TrendingHashtags: %v", err)
		}
		if !reflect.DeepEqual(got, usage) {
			t.Fatalf("TrendingHashtags = %v, want %v", got, usage)
		}
	}
}

func TestTrendingPostsRankedByHotness(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	f.impl.now = func() time.Time { return now }

	posts := []*domain.Post{
		{ID: "p1", CreatedAt: now.Add(-1 * time.Hour), Visibility: domain.VisibilityPublic},
		{ID: "p2", CreatedAt: now.Add(-1 * time.Hour), Visibility: domain.VisibilityPublic},
		{ID: "p3", CreatedAt: now.Add(-10 * time.Hour), Visibility: domain.VisibilityPublic},
	}
	f.postRepo.EXPECT().
		ListRecentPublic(gomock.Any(), now.Add(-24*time.Hour), candidateLimit).
		Return(posts, nil)

	// p3 carries enough engagement to outrank the fresher posts.
	f.counter.EXPECT().Read(gomock.Any(), "p1").Return(domain.EngagementSnapshot{Likes: 10}, nil)
	f.counter.EXPECT().Read(gomock.Any(), "p2").Return(domain.EngagementSnapshot{Likes: 1}, nil)
	f.counter.EXPECT().Read(gomock.Any(), "p3").Return(domain.EngagementSnapshot{Likes: 100}, nil)

	got, err := f.impl.TrendingPosts(ctx, 10)
	if err != nil {
		t.Fatalf("TrendingPosts: %v", err)
	}
	want := []string{"p3", "p1", "p2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TrendingPosts = %v, want %v", got, want)
	}
}

func TestTrendingPostsTieBreaksByNewestID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	f.impl.now = func() time.Time { return now }

	posts := []*domain.Post{
		{ID: "p4", CreatedAt: now.Add(-1 * time.Hour), Visibility: domain.VisibilityPublic},
		{ID: "p5", CreatedAt: now.Add(-1 * time.Hour), Visibility: domain.VisibilityPublic},
	}
	f.postRepo.EXPECT().ListRecentPublic(gomock.Any(), gomock.Any(), gomock.Any()).Return(posts, nil)
	f.counter.EXPECT().Read(gomock.Any(), gomock.Any()).Return(domain.EngagementSnapshot{}, nil).Times(2)

	got, err := f.impl.TrendingPosts(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []string{"p5", "p4"}) {
		t.Fatalf("TrendingPosts = %v, want [p5 p4]", got)
	}
}

func TestTrendingPostsCachedWithinTTL(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.postRepo.EXPECT().
		ListRecentPublic(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]*domain.Post{{ID: "p1", CreatedAt: time.Now(), Visibility: domain.VisibilityPublic}}, nil).
		Times(1)
	f.counter.EXPECT().Read(gomock.Any(), "p1").Return(domain.EngagementSnapshot{Likes: 1}, nil).Times(1)

	for i := 0; i < 3; i++ {
		got, err := f.impl.TrendingPosts(ctx, 10)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(got, []string{"p1"}) {
			t.Fatalf("TrendingPosts = %v, want [p1]", got)
		}
	}
}

func TestTrendingPostsLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	f.impl.now = func() time.Time { return now }

	posts := make([]*domain.Post, 5)
	for i := range posts {
		posts[i] = &domain.Post{
			ID:         string(rune('a' + i)),
			CreatedAt:  now.Add(-time.Hour),
			Visibility: domain.VisibilityPublic,
		}
	}
	f.postRepo.EXPECT().ListRecentPublic(gomock.Any(), gomock.Any(), gomock.Any()).Return(posts, nil)
	f.counter.EXPECT().Read(gomock.Any(), gomock.Any()).Return(domain.EngagementSnapshot{}, nil).Times(5)

	got, err := f.impl.TrendingPosts(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("TrendingPosts returned %d IDs, want 2", len(got))
	}
}

func TestTrackHashtagUsageNormalizes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.hashtagRepo.EXPECT().TrackUsage(gomock.Any(), "travel").Return(nil)
	if err := f.impl.TrackHashtagUsage(ctx, "#Travel"); err != nil {
		t.Fatalf("TrackHashtagUsage: %v", err)
	}

	// Empty after normalization never reaches the repository.
	if err := f.impl.TrackHashtagUsage(ctx, "#"); err != nil {
		t.Fatalf("TrackHashtagUsage empty tag: %v", err)
	}
}
