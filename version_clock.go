package stm

import "sync/atomic"

// VersionClock is a process-wide monotonically increasing counter. Every
// Stm owns exactly one; every writing commit stamps its Tick() return
// value onto the TVars it touched.
type VersionClock struct {
	version atomic.Int64
}

// initialClockVersion seeds the clock at the same version every fresh
// TVar starts unlocked at (1), so the very first Sample a transaction
// observes never rejects a read of an untouched cell.
const initialClockVersion = 1

func (c *VersionClock) init() {
	c.version.Store(initialClockVersion)
}

// Sample takes a linearization-safe snapshot of the clock. It never
// blocks and never mutates the clock.
func (c *VersionClock) Sample() Version {
	return Version(c.version.Load())
}

// Tick atomically advances the clock and returns the new value. Every
// call returns a distinct, strictly increasing value.
func (c *VersionClock) Tick() Version {
	return Version(c.version.Add(1))
}
