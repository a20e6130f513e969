package stress

import (
	"testing"

	"github.com/kvstm/stm"
)

func TestRunFibonacciProducesExpectedSequence(t *testing.T) {
	s := stm.New()
	idx := stm.NewTVar(0)
	a := stm.NewTVar(int64(1))
	b := stm.NewTVar(int64(1))

	const count = 500
	results, err := RunFibonacci(s, idx, a, b, count)
	if err != nil {
		t.Fatalf("RunFibonacci: %v", err)
	}
	if len(results) != count {
		t.Fatalf("expected %d results, got %d", count, len(results))
	}

	fa, fb := int64(1), int64(1)
	for i, r := range results {
		if r.Index != i {
			t.Fatalf("result %d has index %d", i, r.Index)
		}
		fa, fb = fb, fa+fb
		if r.B != fb {
			t.Fatalf("at %d: got %d, want %d", i, r.B, fb)
		}
	}
}

func TestRunCounterArrayConvergesToExpectedTotal(t *testing.T) {
	s := stm.New()

	const numVars = 10
	vars := make([]*stm.TVar[int], numVars)
	for i := range vars {
		vars[i] = stm.NewTVar(0)
	}

	const goroutines = 8
	const perGoroutine = 200
	if err := RunCounterArray(s, vars, goroutines, perGoroutine); err != nil {
		t.Fatalf("RunCounterArray: %v", err)
	}

	want := goroutines * perGoroutine
	for i, v := range vars {
		if got := stm.Atomically(s, v.Read()); got != want {
			t.Fatalf("var %d: expected %d, got %d", i, want, got)
		}
	}
}

func TestRunBigArrayIncrementsEveryElement(t *testing.T) {
	s := stm.New()

	var seed BigArray
	for i := range seed {
		seed[i] = int64(i + 1)
	}
	arr := stm.NewTVar(seed)

	const count = 16
	if err := RunBigArray(s, arr, count); err != nil {
		t.Fatalf("RunBigArray: %v", err)
	}

	final := stm.Atomically(s, arr.Read())
	for i, v := range final {
		if want := int64(i+1) + count; v != want {
			t.Fatalf("array[%d] = %d, want %d", i, v, want)
		}
	}
}
