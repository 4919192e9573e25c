package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/socialvibe/feedcore/pkg/logger"
)

func fastConfig() Config {
	return Config{
		MaxRetries:      3,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
		Multiplier:      1.5,
	}
}

func TestDoSucceedsAfterTransientFailures(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), logger.NewNop(), "test_op", func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	}, fastConfig())
	if err != nil {
		t.Fatalf("Do = %v, want nil", err)
	}
	if attempts != 3 {
		t.Fatalf("attempts = %d, want 3", attempts)
	}
}

func TestDoGivesUpAfterMaxRetries(t *testing.T) {
	boom := errors.New("persistent")
	attempts := 0
	err := Do(context.Background(), logger.NewNop(), "test_op", func() error {
		attempts++
		return boom
	}, fastConfig())
	if !errors.Is(err, boom) {
		t.Fatalf("Do = %v, want %v", err, boom)
	}
	// Initial attempt plus MaxRetries.
	if attempts != 4 {
		t.Fatalf("attempts = %d, want 4", attempts)
	}
}

func TestDoStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	err := Do(ctx, logger.NewNop(), "test_op", func() error {
		attempts++
		return errors.New("transient")
	}, fastConfig())
	if err == nil {
		t.Fatal("Do with canceled context = nil, want error")
	}
	if attempts > 1 {
		t.Fatalf("attempts = %d, want at most 1", attempts)
	}
}
