package stm

import "unsafe"

// TVar is a transactional memory cell holding a value of type T plus an
// embedded VersionedLock. Its identity is its own address: two TVars are
// the same cell iff they are the same pointer.
//
// T must be a fixed-size value type that contains no pointers, interfaces,
// slices, maps, or strings — e.g. numeric types, and arrays or structs
// built only from such types. The write set stages speculative values in
// a raw byte buffer (see writeSet) and copies them back with unsafe
// pointer arithmetic; a T containing pointers would defeat the garbage
// collector. Go generics cannot express a "Copy, fixed-size" bound at
// compile time, so this constraint is documentation-only.
//
// A TVar must be created before any transaction touches it and must
// outlive every transaction that references it.
type TVar[T any] struct {
	lock  VersionedLock
	value T
}

// NewTVar constructs a transactional cell holding initial. The cell
// starts unlocked at version 1, equal to the clock's first sampled
// value, so its first read is never spuriously rejected (readWithDoubleCheck
// only rejects a version strictly greater than the reader's read
// version). It must be strictly positive, since VersionedLock.init
// requires a positive version to keep the locked encoding unambiguous.
func NewTVar[T any](initial T) *TVar[T] {
	v := &TVar[T]{value: initial}
	v.lock.init(1)
	return v
}

func (v *TVar[T]) identity() anyTVar {
	return anyTVar{ptr: unsafe.Pointer(&v.value), lock: &v.lock}
}

// readWithDoubleCheck implements the opacity-preserving read: it brackets
// the value load between two version observations so that a reader never
// observes a torn value or one committed after rv, without ever taking
// the lock.
func (v *TVar[T]) readWithDoubleCheck(rv Version) (T, bool) {
	var zero T

	pre := v.lock.Version()
	if pre.IsLocked() {
		return zero, false
	}
	if pre > rv {
		return zero, false
	}

	val := v.value

	post := v.lock.Version()
	if post != pre {
		return zero, false
	}

	return val, true
}

func (v *TVar[T]) tryLock() (*lockGuard, bool) {
	return v.lock.TryLock()
}

// Read returns a single-cell Transaction that reads v.
func (v *TVar[T]) Read() Transaction[T] {
	return readTx[T]{v: v}
}

// Write returns a single-cell Transaction that writes value to v.
func (v *TVar[T]) Write(value T) Transaction[struct{}] {
	return writeTx[T]{v: v, value: value}
}
