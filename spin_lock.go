package waitx

import (
	"sync/atomic"
	"time"
)

// SpinLock is a busy-wait exclusive lock for short critical sections.
//
// In contrast to sync.Mutex, contenders burn CPU instead of parking, so it
// only pays off when the critical section is a handful of instructions and
// the hold time is shorter than a scheduler round trip. Never hold it
// across blocking operations.
//
// Properties:
//   - Zero-value ready: var l SpinLock
//   - Not reentrant: relocking from the holder deadlocks.
//   - No fairness: there is no ordering guarantee among waiters; any
//     contender may win repeatedly.
//   - Satisfies sync.Locker, so scoped locking is the usual
//     l.Lock(); defer l.Unlock().
//
// Unlocking a SpinLock that is not held by the caller is undefined
// behavior and is not detected.
type SpinLock struct {
	_     noCopy
	state atomic.Bool
}

// IsLocked reports whether the lock is currently held.
// The result is advisory: it can be stale by the time the caller acts on it.
//
//go:nosplit
func (l *SpinLock) IsLocked() bool {
	return l.state.Load()
}

// TryLock makes a single attempt to acquire the lock.
// It never blocks.
//
//go:nosplit
func (l *SpinLock) TryLock() bool {
	return !l.state.Load() && l.state.CompareAndSwap(false, true)
}

// TryLockSpin tries to acquire the lock making up to the given number of
// attempts. It yields the processor (PAUSE) between attempts but never
// sleeps, so the worst case cost is bounded by the spin budget.
func (l *SpinLock) TryLockSpin(spin int) bool {
	for ; spin > 0; spin-- {
		if l.TryLock() {
			return true
		}
		runtime_doSpin()
	}
	return false
}

// TryLockFor tries to acquire the lock, spinning for up to the given
// duration in the worst case.
func (l *SpinLock) TryLockFor(duration time.Duration) bool {
	return l.TryLockUntil(time.Now().Add(duration))
}

// TryLockUntil tries to acquire the lock, spinning until the given
// deadline in the worst case. The deadline is checked against the
// monotonic clock reading carried by time.Time.
func (l *SpinLock) TryLockUntil(deadline time.Time) bool {
	var spins int
	for {
		if l.TryLock() {
			return true
		}
		if !time.Now().Before(deadline) {
			return false
		}
		delay(&spins)
	}
}

// Lock acquires the lock, spinning until it succeeds.
func (l *SpinLock) Lock() {
	var spins int
	for !l.TryLock() {
		delay(&spins)
	}
}

// Unlock releases the lock. The caller must be the current holder.
//
//go:nosplit
func (l *SpinLock) Unlock() {
	l.state.Store(false)
}
