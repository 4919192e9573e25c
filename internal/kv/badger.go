package kv

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"strconv"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/socialvibe/feedcore/pkg/logger"
)

// Key layout inside badger. Hash fields, sorted-set members and set members
// each live under their own namespace so prefix scans cannot cross types.
const (
	nsHash   = "h/"
	nsZSet   = "z/"
	nsSet    = "s/"
	nsString = "v/"
)

// maxTxnRetries bounds the conflict-retry loop on Update transactions.
const maxTxnRetries = 16

type Badger struct {
	db     *badger.DB
	logger logger.Logger
}

var _ Store = (*Badger)(nil)

type BadgerOpts struct {
	Path     string
	InMemory bool
}

func NewBadger(opts BadgerOpts, log logger.Logger) (*Badger, error) {
	badgerOpts := badger.DefaultOptions(opts.Path).
		WithInMemory(opts.InMemory).
		WithLogger(nil)
	if opts.InMemory {
		badgerOpts = badgerOpts.WithDir("").WithValueDir("")
	}

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, err
	}

	return &Badger{
		db:     db,
		logger: log.WithComponent("BadgerStore"),
	}, nil
}

// NewInMemoryBadger is a convenience constructor for tests.
func NewInMemoryBadger(log logger.Logger) (*Badger, error) {
	return NewBadger(BadgerOpts{InMemory: true}, log)
}

func (b *Badger) Close() error {
	return b.db.Close()
}

// RunGC triggers one value-log GC pass. Called periodically by the app
// lifecycle; badger returns ErrNoRewrite when there is nothing to collect.
func (b *Badger) RunGC() {
	if err := b.db.RunValueLogGC(0.5); err != nil && !errors.Is(err, badger.ErrNoRewrite) {
		b.logger.Warn("Value log GC failed", "error", err)
	}
}

// update runs fn in a read-write transaction, retrying on conflict. Badger
// uses optimistic concurrency, so two concurrent increments of the same key
// surface as ErrConflict and one of them must re-run.
func (b *Badger) update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	for i := 0; i < maxTxnRetries; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := b.db.Update(fn)
		if errors.Is(err, badger.ErrConflict) {
			continue
		}
		return err
	}
	return badger.ErrConflict
}

func (b *Badger) HIncrBy(ctx context.Context, key, field string, delta int64) (int64, error) {
	fullKey := []byte(nsHash + key + "/" + field)
	var result int64

	err := b.update(ctx, func(txn *badger.Txn) error {
		current, err := readInt64(txn, fullKey)
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		next := current + delta
		if next < 0 {
			next = 0
		}
		result = next

		return txn.Set(fullKey, []byte(strconv.FormatInt(next, 10)))
	})
	if err != nil {
		return 0, err
	}
	return result, nil
}

func (b *Badger) HGetAll(ctx context.Context, key string) (map[string]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := []byte(nsHash + key + "/")
	fields := make(map[string]int64)

	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			field := string(bytes.TrimPrefix(item.Key(), prefix))
			err := item.Value(func(val []byte) error {
				n, err := strconv.ParseInt(string(val), 10, 64)
				if err != nil {
					return err
				}
				fields[field] = n
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fields, nil
}

func (b *Badger) ZIncrBy(ctx context.Context, key, member string, delta float64) (float64, error) {
	fullKey := []byte(nsZSet + key + "/" + member)
	var result float64

	err := b.update(ctx, func(txn *badger.Txn) error {
		current, err := readFloat64(txn, fullKey)
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		result = current + delta
		return txn.Set(fullKey, []byte(strconv.FormatFloat(result, 'g', -1, 64)))
	})
	if err != nil {
		return 0, err
	}
	return result, nil
}

func (b *Badger) ZAdd(ctx context.Context, key, member string, score float64) error {
	return b.update(ctx, func(txn *badger.Txn) error {
		fullKey := []byte(nsZSet + key + "/" + member)
		return txn.Set(fullKey, []byte(strconv.FormatFloat(score, 'g', -1, 64)))
	})
}

func (b *Badger) ZRevRangeWithScores(ctx context.Context, key string, limit int) ([]Member, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := []byte(nsZSet + key + "/")
	var members []Member

	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			name := string(bytes.TrimPrefix(item.Key(), prefix))
			err := item.Value(func(val []byte) error {
				score, err := strconv.ParseFloat(string(val), 64)
				if err != nil {
					return err
				}
				members = append(members, Member{Member: name, Score: score})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(members, func(i, j int) bool {
		if members[i].Score != members[j].Score {
			return members[i].Score > members[j].Score
		}
		return members[i].Member < members[j].Member
	})

	if limit > 0 && len(members) > limit {
		members = members[:limit]
	}
	return members, nil
}

func (b *Badger) ZScore(ctx context.Context, key, member string) (float64, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}

	fullKey := []byte(nsZSet + key + "/" + member)
	var score float64
	found := false

	err := b.db.View(func(txn *badger.Txn) error {
		s, err := readFloat64(txn, fullKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		score = s
		found = true
		return nil
	})
	if err != nil {
		return 0, false, err
	}
	return score, found, nil
}

func (b *Badger) ZRem(ctx context.Context, key, member string) error {
	return b.update(ctx, func(txn *badger.Txn) error {
		return txn.Delete([]byte(nsZSet + key + "/" + member))
	})
}

func (b *Badger) SAdd(ctx context.Context, key, member string) error {
	return b.update(ctx, func(txn *badger.Txn) error {
		return txn.Set([]byte(nsSet+key+"/"+member), nil)
	})
}

func (b *Badger) SMembers(ctx context.Context, key string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := []byte(nsSet + key + "/")
	var members []string

	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			members = append(members, string(bytes.TrimPrefix(it.Item().Key(), prefix)))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (b *Badger) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return b.update(ctx, func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(nsString+key), value)
		if ttl > 0 {
			entry = entry.WithTTL(ttl)
		}
		return txn.SetEntry(entry)
	})
}

func (b *Badger) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(nsString + key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (b *Badger) DeletePrefix(ctx context.Context, prefix string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.db.DropPrefix([]byte(nsString + prefix))
}

func readInt64(txn *badger.Txn, key []byte) (int64, error) {
	item, err := txn.Get(key)
	if err != nil {
		return 0, err
	}
	var n int64
	err = item.Value(func(val []byte) error {
		parsed, err := strconv.ParseInt(string(val), 10, 64)
		if err != nil {
			return err
		}
		n = parsed
		return nil
	})
	return n, err
}

func readFloat64(txn *badger.Txn, key []byte) (float64, error) {
	item, err := txn.Get(key)
	if err != nil {
		return 0, err
	}
	var f float64
	err = item.Value(func(val []byte) error {
		parsed, err := strconv.ParseFloat(string(val), 64)
		if err != nil {
			return err
		}
		f = parsed
		return nil
	})
	return f, err
}
