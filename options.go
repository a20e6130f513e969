package stm

// defaultLockSpinBudget bounds tryLockAll's per-entry spin count.
const defaultLockSpinBudget = 10

// config holds the tunables every Context shares from its owning Stm.
type config struct {
	retryInfo      bool
	lockSpinBudget int
	inlineEntries  int
	inlineBufBytes int
}

func defaultConfig() config {
	return config{
		retryInfo:      false,
		lockSpinBudget: defaultLockSpinBudget,
		inlineEntries:  defaultInlineEntries,
		inlineBufBytes: defaultInlineBufBytes,
	}
}

// Option configures an Stm at construction time.
type Option func(*config, *Stm)

// WithRetryInfo toggles whether a failed Read, Write, or commit carries a
// human-readable reason string (as a *RetryError) instead of the bare
// ErrRetry sentinel. Off by default, since building the reason string on
// every retry has a real cost under contention.
func WithRetryInfo(enabled bool) Option {
	return func(c *config, _ *Stm) {
		c.retryInfo = enabled
	}
}

// WithLockSpinBudget overrides the per-entry spin count tryLockAll uses
// before giving up on acquiring a write set's locks. Default 10.
func WithLockSpinBudget(n int) Option {
	return func(c *config, _ *Stm) {
		c.lockSpinBudget = n
	}
}

// WithInlineCapacity overrides the inline-storage thresholds for read and
// write sets: the entry count and write-set byte-buffer size below which
// a transaction attempt never allocates. Defaults are 16 entries and 512
// bytes; a value at or below its default leaves the default in effect.
// Raising these trades a larger fixed per-Context footprint for fewer
// allocations on transactions that touch many cells.
func WithInlineCapacity(entries, bufBytes int) Option {
	return func(c *config, _ *Stm) {
		c.inlineEntries = entries
		c.inlineBufBytes = bufBytes
	}
}

// WithObserver installs a callback invoked once per Atomically attempt,
// whether it committed or retried. This is the seam a host wires
// structured logging or metrics into; the core package itself has no
// logging dependency (see DESIGN.md).
func WithObserver(fn func(RetryStats)) Option {
	return func(_ *config, s *Stm) {
		s.observer = fn
	}
}
