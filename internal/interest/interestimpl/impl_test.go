package interestimpl

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/socialvibe/feedcore/internal/domain"
	"github.com/socialvibe/feedcore/internal/interest"
	"github.com/socialvibe/feedcore/internal/kv"
	followrepo "github.com/socialvibe/feedcore/internal/repositories/follow"
	"github.com/socialvibe/feedcore/pkg/logger"
)

type allowAll struct{}

func (allowAll) Allow(string) bool { return true }

type denyAll struct{}

func (denyAll) Allow(string) bool { return false }

// stubFollows answers Following from a fixed list; the remaining repository
// methods are never reached from the tracker.
type stubFollows struct {
	followrepo.Repository
	ids []string
	err error
}

func (s stubFollows) Following(ctx context.Context, userID string) ([]string, error) {
	return s.ids, s.err
}

func newTestTracker(t *testing.T, cfg Config) (*TrackerImpl, kv.Store) {
	t.Helper()
	return newTrackerFollowing(t, cfg, stubFollows{})
}

func newTrackerFollowing(t *testing.T, cfg Config, follows followrepo.Repository) (*TrackerImpl, kv.Store) {
	t.Helper()
	store, err := kv.NewInMemoryBadger(logger.NewNop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return New(store, follows, logger.NewNop(), allowAll{}, cfg), store
}

func TestRecordInterestAccumulates(t *testing.T) {
	tr, _ := newTestTracker(t, Config{})
	ctx := context.Background()

	if err := tr.RecordInterest(ctx, "u1", []string{"Travel"}, 5); err != nil {
		t.Fatal(err)
	}
	if err := tr.RecordInterest(ctx, "u1", []string{"travel", "music", "food"}, 1); err != nil {
		t.Fatal(err)
	}
	if err := tr.RecordInterest(ctx, "u1", []string{"music"}, 1); err != nil {
		t.Fatal(err)
	}

	got, err := tr.TopInterests(ctx, "u1", 0)
	if err != nil {
		t.Fatalf("TopInterests: %v", err)
	}
	want := []domain.InterestEntry{
		{Tag: "travel", Weight: 6},
		{Tag: "music", Weight: 2},
		{Tag: "food", Weight: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TopInterests = %v, want %v", got, want)
	}
}

func TestTopInterestsTieBreak(t *testing.T) {
	tr, _ := newTestTracker(t, Config{})
	ctx := context.Background()

	for _, tag := range []string{"music", "art"} {
		if err := tr.RecordInterest(ctx, "u1", []string{tag}, 2); err != nil {
			t.Fatal(err)
		}
	}

	got, err := tr.TopInterests(ctx, "u1", 0)
	if err != nil {
		t.Fatal(err)
	}
	want := []domain.InterestEntry{
		{Tag: "art", Weight: 2},
		{Tag: "music", Weight: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tie broke as %v, want %v", got, want)
	}
}

func TestTopInterestsLimit(t *testing.T) {
	tr, _ := newTestTracker(t, Config{})
	ctx := context.Background()

	if err := tr.RecordInterest(ctx, "u1", []string{"a", "b", "c"}, 1); err != nil {
		t.Fatal(err)
	}

	got, err := tr.TopInterests(ctx, "u1", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
}

func TestRecordInterestDefaultWeight(t *testing.T) {
	tr, _ := newTestTracker(t, Config{})
	ctx := context.Background()

	if err := tr.RecordInterest(ctx, "u1", []string{"food"}, 0); err != nil {
		t.Fatal(err)
	}

	got, err := tr.TopInterests(ctx, "u1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Weight != 1 {
		t.Fatalf("TopInterests = %v, want food at weight 1", got)
	}
}

func TestRecordInterestSkipsEmptyTags(t *testing.T) {
	tr, _ := newTestTracker(t, Config{})
	ctx := context.Background()

	if err := tr.RecordInterest(ctx, "u1", []string{"", "#", "  ", "ok"}, 1); err != nil {
		t.Fatal(err)
	}

	got, err := tr.TopInterests(ctx, "u1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Tag != "ok" {
		t.Fatalf("TopInterests = %v, want only %q", got, "ok")
	}
}

func TestProfileCapEvictsLowestAndIndex(t *testing.T) {
	tr, store := newTestTracker(t, Config{ProfileCap: 2})
	ctx := context.Background()

	if err := tr.RecordInterest(ctx, "u1", []string{"travel"}, 5); err != nil {
		t.Fatal(err)
	}
	if err := tr.RecordInterest(ctx, "u1", []string{"music"}, 3); err != nil {
		t.Fatal(err)
	}
	if err := tr.RecordInterest(ctx, "u1", []string{"food"}, 1); err != nil {
		t.Fatal(err)
	}

	got, err := tr.TopInterests(ctx, "u1", 0)
	if err != nil {
		t.Fatal(err)
	}
	want := []domain.InterestEntry{
		{Tag: "travel", Weight: 5},
		{Tag: "music", Weight: 3},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("profile after cap = %v, want %v", got, want)
	}

	// Eviction keeps the inverted index aligned with the profile.
	_, ok, err := store.ZScore(ctx, "tagusers/food", "u1")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("evicted tag still lists the user in the inverted index")
	}
}

func TestDecayHalvesAtHalfLife(t *testing.T) {
	tr, _ := newTestTracker(t, Config{DecayHalfLifeDays: 1})
	ctx := context.Background()

	base := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	tr.now = func() time.Time { return base }

	if err := tr.RecordInterest(ctx, "u1", []string{"travel"}, 4); err != nil {
		t.Fatal(err)
	}

	tr.now = func() time.Time { return base.Add(48 * time.Hour) }

	got, err := tr.TopInterests(ctx, "u1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d entries, want 1", len(got))
	}
	// Two half-lives: 4 -> 1.
	if math.Abs(got[0].Weight-1) > 1e-9 {
		t.Fatalf("decayed weight = %v, want 1", got[0].Weight)
	}
}

func TestSuggestSimilarUsers(t *testing.T) {
	tr, _ := newTestTracker(t, Config{TopTags: 5})
	ctx := context.Background()

	if err := tr.RecordInterest(ctx, "u1", []string{"travel", "music"}, 2); err != nil {
		t.Fatal(err)
	}
	if err := tr.RecordInterest(ctx, "u2", []string{"travel"}, 4); err != nil {
		t.Fatal(err)
	}
	if err := tr.RecordInterest(ctx, "u3", []string{"music"}, 1); err != nil {
		t.Fatal(err)
	}
	// u4 shares nothing with u1.
	if err := tr.RecordInterest(ctx, "u4", []string{"cooking"}, 9); err != nil {
		t.Fatal(err)
	}

	got, err := tr.SuggestSimilarUsers(ctx, "u1", 10)
	if err != nil {
		t.Fatalf("SuggestSimilarUsers: %v", err)
	}
	want := []domain.UserScore{
		{UserID: "u2", Score: 4},
		{UserID: "u3", Score: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SuggestSimilarUsers = %v, want %v", got, want)
	}
}

func TestSuggestSimilarUsersTieBreak(t *testing.T) {
	tr, _ := newTestTracker(t, Config{TopTags: 5})
	ctx := context.Background()

	if err := tr.RecordInterest(ctx, "u1", []string{"travel"}, 1); err != nil {
		t.Fatal(err)
	}
	for _, u := range []string{"zed", "amy"} {
		if err := tr.RecordInterest(ctx, u, []string{"travel"}, 3); err != nil {
			t.Fatal(err)
		}
	}

	got, err := tr.SuggestSimilarUsers(ctx, "u1", 10)
	if err != nil {
		t.Fatal(err)
	}
	want := []domain.UserScore{
		{UserID: "amy", Score: 3},
		{UserID: "zed", Score: 3},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tie broke as %v, want %v", got, want)
	}
}

func TestSuggestSimilarUsersExcludesFollowed(t *testing.T) {
	tr, _ := newTrackerFollowing(t, Config{TopTags: 5}, stubFollows{ids: []string{"u2"}})
	ctx := context.Background()

	if err := tr.RecordInterest(ctx, "u1", []string{"travel"}, 1); err != nil {
		t.Fatal(err)
	}
	for _, u := range []string{"u2", "u3"} {
		if err := tr.RecordInterest(ctx, u, []string{"travel"}, 3); err != nil {
			t.Fatal(err)
		}
	}

	got, err := tr.SuggestSimilarUsers(ctx, "u1", 10)
	if err != nil {
		t.Fatalf("SuggestSimilarUsers: %v", err)
	}
	want := []domain.UserScore{{UserID: "u3", Score: 3}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SuggestSimilarUsers = %v, want %v (followed user suggested)", got, want)
	}
}

func TestSuggestSimilarUsersFollowLookupFailure(t *testing.T) {
	tr, _ := newTrackerFollowing(t, Config{TopTags: 5}, stubFollows{err: errors.New("timeout")})
	ctx := context.Background()

	if err := tr.RecordInterest(ctx, "u1", []string{"travel"}, 1); err != nil {
		t.Fatal(err)
	}
	if err := tr.RecordInterest(ctx, "u2", []string{"travel"}, 3); err != nil {
		t.Fatal(err)
	}

	// Degrades to unfiltered suggestions rather than failing the call.
	got, err := tr.SuggestSimilarUsers(ctx, "u1", 10)
	if err != nil {
		t.Fatalf("SuggestSimilarUsers: %v", err)
	}
	if len(got) != 1 || got[0].UserID != "u2" {
		t.Fatalf("SuggestSimilarUsers = %v, want [u2]", got)
	}
}

func TestSuggestSimilarUsersRateLimited(t *testing.T) {
	store, err := kv.NewInMemoryBadger(logger.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })

	tr := New(store, stubFollows{}, logger.NewNop(), denyAll{}, Config{})
	if _, err := tr.SuggestSimilarUsers(context.Background(), "u1", 10); !errors.Is(err, interest.ErrRateLimited) {
		t.Fatalf("SuggestSimilarUsers = %v, want ErrRateLimited", err)
	}
}

func TestMarkViewed(t *testing.T) {
	tr, _ := newTestTracker(t, Config{})
	ctx := context.Background()

	for _, id := range []string{"p1", "p2", "p1"} {
		if err := tr.MarkViewed(ctx, "u1", id); err != nil {
			t.Fatal(err)
		}
	}

	viewed, err := tr.ViewedPosts(ctx, "u1")
	if err != nil {
		t.Fatalf("ViewedPosts: %v", err)
	}
	if len(viewed) != 2 {
		t.Fatalf("viewed = %v, want p1 and p2", viewed)
	}
	for _, id := range []string{"p1", "p2"} {
		if _, ok := viewed[id]; !ok {
			t.Fatalf("viewed set missing %s", id)
		}
	}

	other, err := tr.ViewedPosts(ctx, "u2")
	if err != nil {
		t.Fatal(err)
	}
	if len(other) != 0 {
		t.Fatalf("other user's viewed set = %v, want empty", other)
	}
}
