/*
Package stm implements a Software Transactional Memory runtime using the
TL2 (Transactional Locking II) commit protocol.

Shared state lives in TVar[T] cells. A caller reads and writes TVars inside
a Transaction passed to Atomically; the runtime runs the transaction
speculatively against a snapshot of a global version clock, then tries to
commit. If another transaction touched the same cells in a conflicting way,
the commit is rejected and the whole transaction is retried automatically.
There are no explicit locks in user code and no deadlocks: a transaction
either commits in full or has no effect at all.

	counter := stm.NewTVar(0)
	s := stm.New()

	result := stm.Atomically(s, stm.TransactionFunc[int](func(ctx *stm.Context) (int, error) {
		v, err := stm.Read(ctx, counter)
		if err != nil {
			return 0, err
		}
		if err := stm.Write(ctx, counter, v+1); err != nil {
			return 0, err
		}
		return v + 1, nil
	}))

A transaction that only reads never takes a lock and never advances the
clock; a transaction that writes is speculative until commit time, when its
write-set is locked, the clock is bumped, and its read-set is validated
against concurrent commits (skipped when no other commit has ticked the
clock since its read sample). See SPEC_FULL.md §4.G for the commit
protocol in detail.

Transactions must be free of externally visible side effects: a transaction
body can run any number of times before it finally commits.
*/
package stm
