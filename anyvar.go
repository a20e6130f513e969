package stm

import "unsafe"

// anyTVar is a type-erased handle to a TVar[T], used anywhere a read set
// or write set needs to compare or look up cells without knowing their
// static T (a transaction touches many TVar[T] instantiations at once).
//
// ptr is the address of the TVar's value slot; it identifies the cell and
// is never dereferenced through the stored type. lock points at the same
// cell's VersionedLock.
type anyTVar struct {
	ptr  unsafe.Pointer
	lock *VersionedLock
}

func (a anyTVar) equal(b anyTVar) bool {
	return a.ptr == b.ptr
}
