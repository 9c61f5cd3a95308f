package asyncx

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestAsyncAllKeepsOrder(t *testing.T) {
	items := []int{5, 1, 4, 2, 3}

	got, err := AsyncAll(context.Background(), items, 0, func(ctx context.Context, n int) (int, error) {
		time.Sleep(time.Duration(n) * time.Millisecond)
		return n * 10, nil
	})
	if err != nil {
		t.Fatalf("AsyncAll() error = %v", err)
	}
	for i, n := range items {
		if got[i] != n*10 {
			t.Fatalf("got[%d] = %d, want %d", i, got[i], n*10)
		}
	}
}

func TestAsyncAllRespectsLimit(t *testing.T) {
	var inFlight, peak int32

	_, err := AsyncAll(context.Background(), make([]int, 12), 3, func(ctx context.Context, _ int) (struct{}, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return struct{}{}, nil
	})
	if err != nil {
		t.Fatalf("AsyncAll() error = %v", err)
	}
	if peak > 3 {
		t.Fatalf("peak concurrency = %d, want <= 3", peak)
	}
}

func TestAsyncAllReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")

	_, err := AsyncAll(context.Background(), []int{1, 2, 3}, 1, func(ctx context.Context, n int) (int, error) {
		if n == 2 {
			return 0, boom
		}
		return n, nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestAsyncAllEmpty(t *testing.T) {
	got, err := AsyncAll(context.Background(), []string{}, 4, func(ctx context.Context, s string) (string, error) {
		return s, nil
	})
	if err != nil || len(got) != 0 {
		t.Fatalf("got %v, %v", got, err)
	}
}

func TestAsyncAllCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := AsyncAll(ctx, []int{1, 2}, 1, func(ctx context.Context, n int) (int, error) {
		return n, ctx.Err()
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
