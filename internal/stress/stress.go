// Package stress drives the scenario fixtures from the package tests at a
// larger scale, suitable for ad-hoc soak runs or benchmarking. It is not
// part of the exported transactional-memory API.
package stress

import (
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/kvstm/stm"
)

// FibonacciResult is one observed (index, b) pair from RunFibonacci.
type FibonacciResult struct {
	Index int
	B     int64
}

// RunFibonacci spins up count concurrent transactions against a, b, and an
// index counter idx, each advancing the Fibonacci recurrence by one step
// and stamping its position via idx. It returns the observed results
// sorted by Index, so the caller can check the b-values form the expected
// Fibonacci run regardless of goroutine interleaving.
func RunFibonacci(s *stm.Stm, idx *stm.TVar[int], a, b *stm.TVar[int64], count int) ([]FibonacciResult, error) {
	results := make([]FibonacciResult, count)

	var g errgroup.Group
	for i := 0; i < count; i++ {
		i := i
		g.Go(func() error {
			results[i] = stm.Atomically(s, stm.TransactionFunc[FibonacciResult](func(ctx *stm.Context) (FibonacciResult, error) {
				n, err := stm.Read(ctx, idx)
				if err != nil {
					return FibonacciResult{}, err
				}
				av, err := stm.Read(ctx, a)
				if err != nil {
					return FibonacciResult{}, err
				}
				bv, err := stm.Read(ctx, b)
				if err != nil {
					return FibonacciResult{}, err
				}

				if err := stm.Write(ctx, idx, n+1); err != nil {
					return FibonacciResult{}, err
				}
				if err := stm.Write(ctx, a, bv); err != nil {
					return FibonacciResult{}, err
				}
				next := av + bv
				if err := stm.Write(ctx, b, next); err != nil {
					return FibonacciResult{}, err
				}

				return FibonacciResult{Index: n, B: next}, nil
			}))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })
	return results, nil
}

// RunCounterArray runs goroutines concurrent groups, each perGoroutine
// transactions that increment every cell in vars by one inside a single
// commit. It returns once all goroutines complete; the goroutines report
// no errors, so the result is always nil.
func RunCounterArray(s *stm.Stm, vars []*stm.TVar[int], goroutines, perGoroutine int) error {
	var g errgroup.Group
	for i := 0; i < goroutines; i++ {
		g.Go(func() error {
			for j := 0; j < perGoroutine; j++ {
				stm.Atomically(s, stm.TransactionFunc[struct{}](func(ctx *stm.Context) (struct{}, error) {
					for _, v := range vars {
						cur, err := stm.Read(ctx, v)
						if err != nil {
							return struct{}{}, err
						}
						if err := stm.Write(ctx, v, cur+1); err != nil {
							return struct{}{}, err
						}
					}
					return struct{}{}, nil
				}))
			}
			return nil
		})
	}
	return g.Wait()
}

// BigArraySize is the element count used by RunBigArray, matching the
// fixed-array scenario this package exercises.
const BigArraySize = 10086

// BigArray is the fixed-size, pointer-free array type RunBigArray
// transacts on; a Go array (unlike a slice) is a plain value with no
// header, so it satisfies TVar's no-indirection constraint directly.
type BigArray [BigArraySize]int64

// RunBigArray runs count concurrent transactions against arr, each
// incrementing every element by one in a single commit. The caller is
// responsible for asserting invariants about arr's contents (e.g. that it
// remains a consecutive run) before and after; RunBigArray only drives the
// concurrency.
func RunBigArray(s *stm.Stm, arr *stm.TVar[BigArray], count int) error {
	var g errgroup.Group
	for i := 0; i < count; i++ {
		g.Go(func() error {
			stm.Atomically(s, stm.TransactionFunc[struct{}](func(ctx *stm.Context) (struct{}, error) {
				cur, err := stm.Read(ctx, arr)
				if err != nil {
					return struct{}{}, err
				}
				var next BigArray
				for i, v := range cur {
					next[i] = v + 1
				}
				return struct{}{}, stm.Write(ctx, arr, next)
			}))
			return nil
		})
	}
	return g.Wait()
}
