package kv

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("kv: key not found")

// Member is one entry of a sorted set with its score.
type Member struct {
	Member string
	Score  float64
}

// Store is the external key-value store port. All mutations are atomic
// primitive operations; callers never do read-modify-write themselves, so
// concurrent requests cannot lose updates.
type Store interface {
	// HIncrBy atomically adds delta to a hash field and returns the new
	// value. Results are clamped at zero: a decrement below zero leaves
	// the counter at zero.
	HIncrBy(ctx context.Context, key, field string, delta int64) (int64, error)

	// HGetAll returns all fields of a hash. Missing keys yield an empty map.
	HGetAll(ctx context.Context, key string) (map[string]int64, error)

	// ZIncrBy atomically adds delta to a member's score, creating the
	// member at delta if absent, and returns the new score.
	ZIncrBy(ctx context.Context, key, member string, delta float64) (float64, error)

	// ZAdd sets a member's score, creating the member if absent.
	ZAdd(ctx context.Context, key, member string, score float64) error

	// ZRevRangeWithScores returns members ordered by score descending,
	// ties broken lexicographically by member. limit <= 0 returns all.
	ZRevRangeWithScores(ctx context.Context, key string, limit int) ([]Member, error)

	// ZScore returns a member's score. The bool is false when the member
	// is absent.
	ZScore(ctx context.Context, key, member string) (float64, bool, error)

	// ZRem removes a member from a sorted set.
	ZRem(ctx context.Context, key, member string) error

	// SAdd adds a member to a set.
	SAdd(ctx context.Context, key, member string) error

	// SMembers returns all members of a set.
	SMembers(ctx context.Context, key string) ([]string, error)

	// Set stores a value under key with a TTL. ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get returns the value stored under key, or ErrNotFound when absent
	// or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// DeletePrefix removes every value written with Set whose key starts
	// with prefix. Hashes, sorted sets and plain sets live in separate
	// namespaces and are untouched.
	DeletePrefix(ctx context.Context, prefix string) error
}
