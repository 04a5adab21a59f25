package waitx

import (
	"sync/atomic"
)

// SPSCRingBuffer is a wait-free bounded byte ring buffer for exactly one
// producer goroutine and one consumer goroutine.
//
// The producer owns the tail cursor, the consumer owns the head cursor,
// and each side only ever stores to its own cursor, so both Enqueue and
// Dequeue complete in a bounded number of steps with plain acquire/release
// atomics and no CAS. Calling Enqueue from two goroutines concurrently, or
// Dequeue from two goroutines concurrently, is undefined behavior.
//
// Cursors grow monotonically and are reduced modulo the capacity with a
// bitmask, which is why the capacity must be a power of two. The occupied
// size is always tail-head and never exceeds the capacity.
//
// The field order below keeps the read-only fields, the head cursor and
// the tail cursor on separate cache lines. This layout is load-bearing:
// the two cursors are written by different goroutines and must not share
// a line.
type SPSCRingBuffer struct {
	_        noCopy
	_        [cacheLineSize]byte
	capacity int64
	mask     int64
	buffer   []byte

	_    [cacheLineSize]byte
	head atomic.Int64

	_    [cacheLineSize]byte
	tail atomic.Int64
}

// NewSPSCRingBuffer creates a ring buffer with the given capacity in
// bytes. The capacity must be a power of two; anything else is a caller
// contract breach and panics.
func NewSPSCRingBuffer(capacity int64) *SPSCRingBuffer {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		panic("waitx: ring buffer capacity must be a power of two")
	}
	return &SPSCRingBuffer{
		capacity: capacity,
		mask:     capacity - 1,
		buffer:   make([]byte, capacity),
	}
}

// Capacity returns the ring buffer capacity in bytes.
//
//go:nosplit
func (b *SPSCRingBuffer) Capacity() int64 {
	return b.capacity
}

// Size returns the occupied size in bytes. It is a hint: with the other
// side running concurrently the value may be stale by the time it is
// returned, but it never exceeds the capacity.
//
//go:nosplit
func (b *SPSCRingBuffer) Size() int64 {
	head := b.head.Load()
	tail := b.tail.Load()
	return tail - head
}

// Enqueue copies the given chunk of bytes into the ring buffer.
// Producer goroutine only.
//
// The write is all-or-nothing: if the chunk does not fit into the free
// space the call returns false and the buffer state is unchanged. A chunk
// exactly equal to the free space fits. The tail cursor is advanced only
// after every payload byte is in place, so the consumer can never observe
// the new tail before the bytes themselves.
func (b *SPSCRingBuffer) Enqueue(chunk []byte) bool {
	size := int64(len(chunk))
	if size == 0 {
		return true
	}

	tail := b.tail.Load()
	head := b.head.Load()
	if size > b.capacity-(tail-head) {
		return false
	}

	index := tail & b.mask
	first := min(size, b.capacity-index)
	copy(b.buffer[index:], chunk[:first])
	copy(b.buffer, chunk[first:])

	b.tail.Store(tail + size)
	return true
}

// Dequeue copies up to len(chunk) bytes out of the ring buffer and
// returns the number of bytes copied. Consumer goroutine only.
//
// It returns false with no bytes copied if the buffer is empty. Otherwise
// it drains min(len(chunk), occupied) bytes, so a short destination
// leaves the remainder in place for the next call.
func (b *SPSCRingBuffer) Dequeue(chunk []byte) (int64, bool) {
	head := b.head.Load()
	tail := b.tail.Load()
	available := tail - head
	if available == 0 {
		return 0, false
	}

	size := min(available, int64(len(chunk)))
	if size == 0 {
		return 0, false
	}

	index := head & b.mask
	first := min(size, b.capacity-index)
	copy(chunk[:first], b.buffer[index:])
	copy(chunk[first:size], b.buffer)

	b.head.Store(head + size)
	return size, true
}
