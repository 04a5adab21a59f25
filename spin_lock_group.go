package waitx

import (
	"github.com/llxisdsh/pb"
)

// SpinLockGroup allows spin-locking on arbitrary keys (string, int, struct, etc.).
// It dynamically manages a set of SpinLocks associated with keys.
//
// Features:
//   - Infinite Keys: No need to pre-allocate locks.
//   - Auto-Cleanup: Locks are automatically removed from memory when unlocked and no one else is waiting.
//   - Low Overhead: Uses a sharded map structure internally for concurrent access.
//
// Usage:
//
//	var group SpinLockGroup[string]
//	group.Lock("user-123")
//	// Critical section for user-123
//	group.Unlock("user-123")
//
// This is the supported way to get per-key mutual exclusion among many
// goroutines; the SpinLock caveats apply per key (short critical sections
// only, no fairness).
//
// Implementation Note:
// It uses reference counting to safely delete entries.
type SpinLockGroup[K comparable] struct {
	_ noCopy
	m pb.MapOf[K, *spinLockGroupEntry]
}

type spinLockGroupEntry struct {
	mu  SpinLock
	ref int32
}

// Lock acquires the spin-lock associated with the given key.
func (g *SpinLockGroup[K]) Lock(k K) {
	var e *spinLockGroupEntry
	g.m.ProcessEntry(
		k,
		func(l *pb.EntryOf[K, *spinLockGroupEntry]) (*pb.EntryOf[K, *spinLockGroupEntry], *spinLockGroupEntry, bool) {
			if l != nil {
				e = l.Value
				e.ref++
				return l, e, true
			}
			e = &spinLockGroupEntry{ref: 1}
			return &pb.EntryOf[K, *spinLockGroupEntry]{Value: e}, e, false
		},
	)
	e.mu.Lock()
}

// Unlock releases the spin-lock associated with the given key.
// The entry is removed once no goroutine holds or waits for it.
func (g *SpinLockGroup[K]) Unlock(k K) {
	v, ok := g.m.Load(k)
	if !ok {
		return
	}
	v.mu.Unlock()

	g.m.ProcessEntry(
		k,
		func(l *pb.EntryOf[K, *spinLockGroupEntry]) (*pb.EntryOf[K, *spinLockGroupEntry], *spinLockGroupEntry, bool) {
			if l == nil {
				return nil, nil, false
			}
			l.Value.ref--
			if l.Value.ref <= 0 {
				return nil, nil, true
			}
			return l, l.Value, true
		},
	)
}
