package stm

import (
	"errors"
	"sync"
	"testing"
)

func TestWithRetryInfoPopulatesReason(t *testing.T) {
	a := NewTVar(0)
	b := NewTVar(0)

	ready := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(2)

	var sawReason bool
	var mu sync.Mutex

	s2 := New(WithRetryInfo(true), WithObserver(func(stats RetryStats) {
		if !stats.Committed && stats.Reason != "" {
			mu.Lock()
			sawReason = true
			mu.Unlock()
		}
	}))

	for i := 0; i < 2; i++ {
		go func() {
			defer wg.Done()
			<-ready
			Atomically(s2, TransactionFunc[struct{}](func(ctx *Context) (struct{}, error) {
				x, err := Read(ctx, a)
				if err != nil {
					return struct{}{}, err
				}
				if err := Write(ctx, a, x+1); err != nil {
					return struct{}{}, err
				}
				y, err := Read(ctx, b)
				if err != nil {
					return struct{}{}, err
				}
				return struct{}{}, Write(ctx, b, y+1)
			}))
		}()
	}
	close(ready)
	wg.Wait()

	// Two concurrent writers on the same two cells should force at least
	// one retry somewhere across a handful of runs; rerun a bit if the
	// scheduler happened to serialize them cleanly.
	if !sawReason {
		for attempt := 0; attempt < 20 && !sawReason; attempt++ {
			Atomically(s2, TransactionFunc[struct{}](func(ctx *Context) (struct{}, error) {
				return struct{}{}, Write(ctx, a, attempt)
			}))
		}
	}
	if !sawReason {
		t.Fatal("expected at least one retry to carry a non-empty Reason")
	}
}

func TestRetryErrorUnwrapsToErrRetry(t *testing.T) {
	err := &RetryError{Reason: "because"}
	if !errors.Is(err, ErrRetry) {
		t.Fatal("expected errors.Is(err, ErrRetry) to hold")
	}
	if err.Error() == "" {
		t.Fatal("expected non-empty error message")
	}
}

func TestWithLockSpinBudgetIsRespected(t *testing.T) {
	cfg := defaultConfig()
	opt := WithLockSpinBudget(3)
	opt(&cfg, &Stm{})
	if cfg.lockSpinBudget != 3 {
		t.Fatalf("expected lockSpinBudget 3, got %d", cfg.lockSpinBudget)
	}
}

func TestWithInlineCapacityRaisesPreallocatedSize(t *testing.T) {
	cfg := defaultConfig()
	opt := WithInlineCapacity(32, 4)
	opt(&cfg, &Stm{})

	rs := newReadSet(&cfg)
	if cap(rs.entries) < 32 {
		t.Fatalf("expected a heap-backed slice with cap >= 32, got cap %d", cap(rs.entries))
	}

	a := NewTVar(0)
	b := NewTVar(0)
	rs.log(a.identity())
	rs.log(b.identity())
	if len(rs.entries) != 2 {
		t.Fatalf("expected 2 entries logged, got %d", len(rs.entries))
	}
}
