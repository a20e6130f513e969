package stm

// Stm is an STM runtime: a global version clock plus the configuration
// every transaction attempt run against it shares. The zero value is not
// usable; construct one with New.
type Stm struct {
	clock    VersionClock
	cfg      config
	observer func(RetryStats)
}

// New constructs a runtime with a fresh clock and the given options
// applied over the defaults (retry info off, spin budget 10, inline
// capacity 16 entries / 512 bytes, no observer).
func New(opts ...Option) *Stm {
	s := &Stm{cfg: defaultConfig()}
	for _, opt := range opts {
		opt(&s.cfg, s)
	}
	s.clock.init()
	return s
}

// RetryStats describes one Atomically attempt, handed to the configured
// Observer (see WithObserver) whether the attempt committed or retried.
type RetryStats struct {
	Attempt   int
	Committed bool
	Reason    string
}

func (s *Stm) notify(attempt int, committed bool, err error) {
	if s.observer == nil {
		return
	}
	reason := ""
	if err != nil && s.cfg.retryInfo {
		reason = err.Error()
	}
	s.observer(RetryStats{Attempt: attempt, Committed: committed, Reason: reason})
}

// NewContext allocates a fresh Context seeded at s's current clock
// sample, in the cheap read-only mode. Most callers don't need this
// directly — Atomically manages its own Context — but a caller that runs
// the same Transaction shape repeatedly can reuse one via RunReusing to
// avoid the per-call allocation.
func NewContext(s *Stm) *Context {
	return newContext(s.clock.Sample(), &s.cfg)
}

// Atomically runs tx to completion: sample the clock, run the body,
// try to commit; on any Retry, sample a fresh read version and try
// again. It returns only once a commit succeeds.
func Atomically[O any](s *Stm, tx Transaction[O]) O {
	ctx := newContext(s.clock.Sample(), &s.cfg)
	return runLoop(s, ctx, tx)
}

// RunReusing runs tx against a caller-owned Context, avoiding the
// allocation Atomically pays per call. ctx must have been created with
// NewContext(s) against the same Stm.
func RunReusing[O any](s *Stm, ctx *Context, tx Transaction[O]) O {
	return runLoop(s, ctx, tx)
}

func runLoop[O any](s *Stm, ctx *Context, tx Transaction[O]) O {
	for attempt := 1; ; attempt++ {
		ctx.reset(s.clock.Sample())

		out, err := tx.Run(ctx)
		if err != nil {
			s.notify(attempt, false, err)
			continue
		}

		if err := ctx.tryCommit(&s.clock); err != nil {
			s.notify(attempt, false, err)
			continue
		}

		s.notify(attempt, true, nil)
		return out
	}
}
