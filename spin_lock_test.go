package waitx

import (
	"sync"
	"testing"
	"time"
)

var _ sync.Locker = (*SpinLock)(nil)

func TestSpinLockTryLock(t *testing.T) {
	var l SpinLock
	if l.IsLocked() {
		t.Fatal("new lock reports locked")
	}
	if !l.TryLock() {
		t.Fatal("TryLock failed on a free lock")
	}
	if !l.IsLocked() {
		t.Fatal("lock not reported as held")
	}
	if l.TryLock() {
		t.Fatal("TryLock succeeded on a held lock")
	}
	l.Unlock()
	if l.IsLocked() {
		t.Fatal("lock still reported as held after Unlock")
	}
}

func TestSpinLockTryLockSpin(t *testing.T) {
	var l SpinLock
	l.Lock()
	if l.TryLockSpin(100) {
		t.Fatal("TryLockSpin acquired a held lock")
	}
	l.Unlock()
	if !l.TryLockSpin(1) {
		t.Fatal("TryLockSpin failed on a free lock")
	}
	l.Unlock()
}

func TestSpinLockMutualExclusion(t *testing.T) {
	var l SpinLock
	const goroutines = 8
	const iterations = 10000

	var count int
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for range goroutines {
		go func() {
			defer wg.Done()
			for range iterations {
				l.Lock()
				count++
				l.Unlock()
			}
		}()
	}
	wg.Wait()

	if count != goroutines*iterations {
		t.Fatalf("count = %d, want %d", count, goroutines*iterations)
	}
}

func TestSpinLockTryLockFor(t *testing.T) {
	var l SpinLock
	l.Lock()
	go func() {
		time.Sleep(50 * time.Millisecond)
		l.Unlock()
	}()

	start := time.Now()
	if !l.TryLockFor(time.Second) {
		t.Fatal("TryLockFor missed the release")
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Fatalf("acquired after %v, want about 50ms", elapsed)
	}
	l.Unlock()
}

func TestSpinLockTryLockForTimeout(t *testing.T) {
	var l SpinLock
	l.Lock()

	const timeout = 50 * time.Millisecond
	start := time.Now()
	if l.TryLockFor(timeout) {
		t.Fatal("TryLockFor acquired a held lock")
	}
	if elapsed := time.Since(start); elapsed < timeout {
		t.Fatalf("returned after %v, want at least %v", elapsed, timeout)
	}
	if !l.IsLocked() {
		t.Fatal("timed-out TryLockFor released the lock")
	}
	l.Unlock()
}

func TestSpinLockTryLockUntilPast(t *testing.T) {
	var l SpinLock
	l.Lock()
	if l.TryLockUntil(time.Now().Add(-time.Second)) {
		t.Fatal("TryLockUntil with a past deadline acquired a held lock")
	}
	l.Unlock()
	if !l.TryLockUntil(time.Now().Add(-time.Second)) {
		t.Fatal("TryLockUntil failed on a free lock")
	}
	l.Unlock()
}

func BenchmarkSpinLock(b *testing.B) {
	var l SpinLock
	var count int
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			l.Lock()
			count++
			l.Unlock()
		}
	})
}

func BenchmarkSpinLockUncontended(b *testing.B) {
	var l SpinLock
	for range b.N {
		l.Lock()
		l.Unlock()
	}
}
