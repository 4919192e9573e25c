package kv

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/socialvibe/feedcore/pkg/logger"
)

func newTestStore(t *testing.T) *Badger {
	t.Helper()
	b, err := NewInMemoryBadger(logger.NewNop())
	if err != nil {
		t.Fatalf("open in-memory store: %v", err)
	}
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestHIncrBy(t *testing.T) {
	b := newTestStore(t)
	ctx := context.Background()

	if got, err := b.HIncrBy(ctx, "post/1/engagement", "likes", 1); err != nil || got != 1 {
		t.Fatalf("first incr = %d, %v, want 1, nil", got, err)
	}
	if got, err := b.HIncrBy(ctx, "post/1/engagement", "likes", 2); err != nil || got != 3 {
		t.Fatalf("second incr = %d, %v, want 3, nil", got, err)
	}

	// Decrement below zero clamps at zero instead of going negative.
	if got, err := b.HIncrBy(ctx, "post/1/engagement", "likes", -10); err != nil || got != 0 {
		t.Fatalf("clamped decr = %d, %v, want 0, nil", got, err)
	}
	if got, err := b.HIncrBy(ctx, "post/1/engagement", "shares", -1); err != nil || got != 0 {
		t.Fatalf("decr of missing field = %d, %v, want 0, nil", got, err)
	}
}

func TestHIncrByConcurrent(t *testing.T) {
	b := newTestStore(t)
	ctx := context.Background()

	const workers = 8
	const perWorker = 25

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				if _, err := b.HIncrBy(ctx, "post/c/engagement", "likes", 1); err != nil {
					t.Errorf("concurrent incr: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	fields, err := b.HGetAll(ctx, "post/c/engagement")
	if err != nil {
		t.Fatalf("HGetAll: %v", err)
	}
	if fields["likes"] != workers*perWorker {
		t.Fatalf("likes = %d, want %d", fields["likes"], workers*perWorker)
	}
}

func TestHGetAll(t *testing.T) {
	b := newTestStore(t)
	ctx := context.Background()

	if _, err := b.HIncrBy(ctx, "post/2/engagement", "likes", 4); err != nil {
		t.Fatal(err)
	}
	if _, err := b.HIncrBy(ctx, "post/2/engagement", "comments", 1); err != nil {
		t.Fatal(err)
	}

	got, err := b.HGetAll(ctx, "post/2/engagement")
	if err != nil {
		t.Fatalf("HGetAll: %v", err)
	}
	want := map[string]int64{"likes": 4, "comments": 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("HGetAll = %v, want %v", got, want)
	}

	empty, err := b.HGetAll(ctx, "post/none/engagement")
	if err != nil {
		t.Fatalf("HGetAll missing key: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("missing key yields %v, want empty map", empty)
	}
}

func TestZSetOrdering(t *testing.T) {
	b := newTestStore(t)
	ctx := context.Background()

	for member, score := range map[string]float64{
		"travel": 6, "music": 2, "food": 1, "art": 2,
	} {
		if _, err := b.ZIncrBy(ctx, "user/1/interests", member, score); err != nil {
			t.Fatal(err)
		}
	}

	got, err := b.ZRevRangeWithScores(ctx, "user/1/interests", 0)
	if err != nil {
		t.Fatalf("ZRevRangeWithScores: %v", err)
	}

	// Descending by score; art before music on the tie because the tie
	// breaks lexicographically.
	want := []Member{
		{Member: "travel", Score: 6},
		{Member: "art", Score: 2},
		{Member: "music", Score: 2},
		{Member: "food", Score: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("range = %v, want %v", got, want)
	}

	limited, err := b.ZRevRangeWithScores(ctx, "user/1/interests", 2)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(limited, want[:2]) {
		t.Fatalf("limited range = %v, want %v", limited, want[:2])
	}
}

func TestZIncrByAccumulates(t *testing.T) {
	b := newTestStore(t)
	ctx := context.Background()

	if got, err := b.ZIncrBy(ctx, "k", "m", 5); err != nil || got != 5 {
		t.Fatalf("create = %v, %v", got, err)
	}
	if got, err := b.ZIncrBy(ctx, "k", "m", 1); err != nil || got != 6 {
		t.Fatalf("accumulate = %v, %v", got, err)
	}

	score, ok, err := b.ZScore(ctx, "k", "m")
	if err != nil || !ok || score != 6 {
		t.Fatalf("ZScore = %v, %v, %v, want 6, true, nil", score, ok, err)
	}
}

func TestZAddOverwritesScore(t *testing.T) {
	b := newTestStore(t)
	ctx := context.Background()

	if err := b.ZAdd(ctx, "k", "m", 10); err != nil {
		t.Fatal(err)
	}
	if err := b.ZAdd(ctx, "k", "m", 3); err != nil {
		t.Fatal(err)
	}

	score, ok, err := b.ZScore(ctx, "k", "m")
	if err != nil || !ok || score != 3 {
		t.Fatalf("ZScore = %v, %v, %v, want 3, true, nil", score, ok, err)
	}
}

func TestZRem(t *testing.T) {
	b := newTestStore(t)
	ctx := context.Background()

	if err := b.ZAdd(ctx, "k", "m", 1); err != nil {
		t.Fatal(err)
	}
	if err := b.ZRem(ctx, "k", "m"); err != nil {
		t.Fatalf("ZRem: %v", err)
	}

	_, ok, err := b.ZScore(ctx, "k", "m")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("member still present after ZRem")
	}
}

func TestSets(t *testing.T) {
	b := newTestStore(t)
	ctx := context.Background()

	for _, m := range []string{"u1", "u2", "u1"} {
		if err := b.SAdd(ctx, "tagusers/travel", m); err != nil {
			t.Fatal(err)
		}
	}

	got, err := b.SMembers(ctx, "tagusers/travel")
	if err != nil {
		t.Fatalf("SMembers: %v", err)
	}
	sort.Strings(got)
	if !reflect.DeepEqual(got, []string{"u1", "u2"}) {
		t.Fatalf("SMembers = %v, want [u1 u2]", got)
	}
}

func TestSetGetTTL(t *testing.T) {
	b := newTestStore(t)
	ctx := context.Background()

	if err := b.Set(ctx, "cache/feed", []byte("payload"), 50*time.Millisecond); err != nil {
		t.Fatal(err)
	}

	got, err := b.Get(ctx, "cache/feed")
	if err != nil {
		t.Fatalf("Get before expiry: %v", err)
	}
	if string(got) != "payload" {
		t.Fatalf("Get = %q, want %q", got, "payload")
	}

	time.Sleep(80 * time.Millisecond)

	if _, err := b.Get(ctx, "cache/feed"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after expiry = %v, want ErrNotFound", err)
	}
}

func TestGetMissing(t *testing.T) {
	b := newTestStore(t)

	if _, err := b.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get missing = %v, want ErrNotFound", err)
	}
}

func TestDeletePrefix(t *testing.T) {
	b := newTestStore(t)
	ctx := context.Background()

	for _, k := range []string{"trending/hashtags/10", "trending/posts/10", "feed/hot//1"} {
		if err := b.Set(ctx, k, []byte("x"), 0); err != nil {
			t.Fatal(err)
		}
	}
	// A hash under the same logical prefix lives in another namespace and
	// must survive the sweep.
	if _, err := b.HIncrBy(ctx, "trending/counter", "likes", 3); err != nil {
		t.Fatal(err)
	}

	if err := b.DeletePrefix(ctx, "trending"); err != nil {
		t.Fatalf("DeletePrefix: %v", err)
	}

	for _, k := range []string{"trending/hashtags/10", "trending/posts/10"} {
		if _, err := b.Get(ctx, k); !errors.Is(err, ErrNotFound) {
			t.Fatalf("Get(%q) = %v, want ErrNotFound", k, err)
		}
	}
	if _, err := b.Get(ctx, "feed/hot//1"); err != nil {
		t.Fatalf("unrelated key dropped: %v", err)
	}
	fields, err := b.HGetAll(ctx, "trending/counter")
	if err != nil {
		t.Fatal(err)
	}
	if fields["likes"] != 3 {
		t.Fatalf("hash fields = %v, want likes=3 intact", fields)
	}
}

func TestCanceledContext(t *testing.T) {
	b := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := b.HIncrBy(ctx, "k", "f", 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("HIncrBy with canceled ctx = %v, want context.Canceled", err)
	}
	if _, err := b.Get(ctx, "k"); !errors.Is(err, context.Canceled) {
		t.Fatalf("Get with canceled ctx = %v, want context.Canceled", err)
	}
}
