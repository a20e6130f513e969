package stm

// Context carries one transaction attempt's state: the read version it
// is speculating against, and (once upgraded) its read and write sets.
//
// A Context starts, and stays, in the cheap read-only mode until its body
// calls Write for the first time; only then does the next attempt pay
// for a read set and write set. Go has no generic methods, so Read and
// Write are package-level generic functions rather than methods — the
// same pattern the standard library's slices and maps packages use.
type Context struct {
	readOnly *readOnlyContext
	write    *writeContext
	cfg      *config
}

func newContext(rv Version, cfg *config) *Context {
	return &Context{readOnly: newReadOnlyContext(rv, cfg), cfg: cfg}
}

// reset prepares the Context for a fresh attempt seeded at rv. If the
// prior attempt was read-only but tried to write, it is replaced with a
// fresh write-mode context; otherwise the existing mode is reused in
// place, without reallocating.
func (ctx *Context) reset(rv Version) {
	if ctx.write != nil {
		ctx.write.reset(rv)
		return
	}
	if ctx.readOnly.triedWriting {
		ctx.write = newWriteContext(rv, ctx.cfg)
		ctx.readOnly = nil
		return
	}
	ctx.readOnly.reset(rv)
}

func (ctx *Context) tryCommit(clock *VersionClock) error {
	if ctx.write != nil {
		return ctx.write.tryCommit(clock)
	}
	return ctx.readOnly.tryCommit()
}

// Read reads tvar's value as of ctx's read version, or tvar's own
// previously-staged write if ctx already wrote to it this attempt. A
// non-nil error is always ErrRetry (or a *RetryError wrapping it) and
// must be propagated immediately by the caller.
func Read[T any](ctx *Context, tvar *TVar[T]) (T, error) {
	if ctx.write != nil {
		return readWrite(ctx.write, tvar)
	}
	return readReadOnly(ctx.readOnly, tvar)
}

// Write stages value for tvar. In a still-read-only context this always
// fails with Retry and flags the context for upgrade on the next attempt;
// in a write-mode context it always succeeds.
func Write[T any](ctx *Context, tvar *TVar[T], value T) error {
	if ctx.write != nil {
		return writeWrite(ctx.write, tvar, value)
	}
	return writeReadOnly(ctx.readOnly, tvar, value)
}
