package stm

// writeContext is the mode a transaction attempt is upgraded to the
// first time it calls Write. It logs every cell it reads and every value
// it speculatively writes, and implements the full TL2 commit protocol.
type writeContext struct {
	readVersion Version
	reads       *readSet
	writes      *writeSet
	cfg         *config
}

func newWriteContext(rv Version, cfg *config) *writeContext {
	return &writeContext{
		readVersion: rv,
		reads:       newReadSet(cfg),
		writes:      newWriteSet(cfg),
		cfg:         cfg,
	}
}

func (c *writeContext) reset(rv Version) {
	c.readVersion = rv
	c.reads.clear()
	c.writes.clear()
}

func readWrite[T any](c *writeContext, tvar *TVar[T]) (T, error) {
	id := tvar.identity()
	c.reads.log(id)

	if v, ok := tryReadWrite[T](c.writes, id); ok {
		return v, nil
	}

	val, ok := tvar.readWithDoubleCheck(c.readVersion)
	if !ok {
		var zero T
		return zero, newRetry(c.cfg, "post-validation failed")
	}
	return val, nil
}

func writeWrite[T any](c *writeContext, tvar *TVar[T], value T) error {
	logWrite(c.writes, tvar.identity(), value)
	return nil
}

// tryCommit runs the TL2 commit protocol described in SPEC_FULL.md §4.G:
// lock the write set, bump the clock, validate the read set (unless the
// rv+1 fast path applies), then publish.
func (c *writeContext) tryCommit(clock *VersionClock) error {
	if len(c.writes.entries) == 0 {
		// A context that's in write mode but staged nothing this attempt
		// (e.g. it was upgraded on a prior retry and this run only read)
		// still commits for free.
		return nil
	}

	guard, ok := c.writes.tryLockAll(c.cfg.lockSpinBudget)
	if !ok {
		return newRetry(c.cfg, "lock write-set failed")
	}

	writeVersion := clock.Tick()

	if writeVersion != c.readVersion+1 {
		for i := range c.reads.entries {
			entry := c.reads.entries[i]
			v := entry.lock.Version()

			if v.IsLocked() {
				if !c.writes.contains(entry) {
					guard.releaseAll()
					return newRetry(c.cfg, "read-set entry locked by another transaction")
				}
				// Locked by our own write set: the real version is the
				// negation, per the self-locked tie-break rule.
				v = -v
			}

			if v > c.readVersion {
				guard.releaseAll()
				return newRetry(c.cfg, "read-set entry changed by another transaction")
			}
		}
	}

	guard.setVersionAll(writeVersion)
	guard.writeDataFromBuffer()
	guard.releaseAll()
	return nil
}
