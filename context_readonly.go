package stm

// readOnlyContext is the cheap mode a fresh transaction attempt starts
// in: no read set, no write set, no allocation. It stays in this mode for
// as long as the transaction body never calls Write.
type readOnlyContext struct {
	readVersion  Version
	triedWriting bool
	cfg          *config
}

func newReadOnlyContext(rv Version, cfg *config) *readOnlyContext {
	return &readOnlyContext{readVersion: rv, cfg: cfg}
}

func (c *readOnlyContext) reset(rv Version) {
	c.readVersion = rv
}

func (c *readOnlyContext) tryCommit() error {
	// Nothing was ever staged; a read-only attempt commits for free.
	return nil
}

func readReadOnly[T any](c *readOnlyContext, tvar *TVar[T]) (T, error) {
	var zero T
	val, ok := tvar.readWithDoubleCheck(c.readVersion)
	if !ok {
		return zero, newRetry(c.cfg, "read-only read failed double-check")
	}
	return val, nil
}

func writeReadOnly[T any](c *readOnlyContext, _ *TVar[T], _ T) error {
	// Record that a write was attempted so the next reset upgrades this
	// context to read-write mode, then abort this attempt immediately.
	c.triedWriting = true
	return newRetry(c.cfg, "write attempted in read-only context")
}
