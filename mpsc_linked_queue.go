package waitx

import (
	"sync/atomic"
)

// mpscNode is a queue link. Ownership moves from the producer that
// allocates it, to the queue's reachable chain once published, to the
// consumer once dequeued. It is never mutated concurrently.
type mpscNode[T any] struct {
	value T
	next  atomic.Pointer[mpscNode[T]]
}

// MPSCLinkedQueue is an unbounded FIFO queue for any number of producer
// goroutines and exactly one consumer goroutine.
//
// It is the non-intrusive linked MPSC design by Dmitry Vyukov:
// http://www.1024cores.net/home/lock-free-algorithms/queues/non-intrusive-mpsc-node-based-queue
//
// Producers are wait-free: publishing costs one allocation, one atomic
// exchange on tail and one release store linking the previous tail to the
// new node. The consumer is lock-free: because the exchange and the link
// are two separate steps, a node can be reachable from tail but not yet
// linked from its predecessor, and during that instant Dequeue reports
// empty. This transient false-empty is part of the contract; every
// completed Enqueue is observed by Dequeue eventually.
//
// Items become visible to the consumer in linked-chain order, which
// preserves FIFO per producer. Calling Dequeue from more than one
// goroutine is undefined behavior.
type MPSCLinkedQueue[T any] struct {
	_ noCopy

	_    [cacheLineSize]byte
	head atomic.Pointer[mpscNode[T]]

	_    [cacheLineSize]byte
	tail atomic.Pointer[mpscNode[T]]
}

// NewMPSCLinkedQueue creates an empty queue seeded with its sentinel node.
func NewMPSCLinkedQueue[T any]() *MPSCLinkedQueue[T] {
	q := &MPSCLinkedQueue[T]{}
	sentinel := new(mpscNode[T])
	q.head.Store(sentinel)
	q.tail.Store(sentinel)
	return q
}

// Enqueue appends a copy of item to the queue. Safe to call from any
// number of goroutines concurrently.
//
// The bool mirrors Dequeue and is reserved for node allocation failure;
// under the Go runtime allocation does not fail recoverably, so Enqueue
// always returns true.
func (q *MPSCLinkedQueue[T]) Enqueue(item T) bool {
	n := &mpscNode[T]{value: item}
	// Exchange serializes producers on the splice point; the link store
	// below publishes the node's value to the consumer.
	prev := q.tail.Swap(n)
	prev.next.Store(n)
	return true
}

// Dequeue removes the oldest item from the queue.
// Single consumer goroutine only.
//
// It returns false when no linked node is visible. That includes the
// moment when a producer has exchanged tail but not yet linked its node:
// the queue momentarily looks empty even though an Enqueue is in flight.
// Callers treat false as "try again", not as an error.
func (q *MPSCLinkedQueue[T]) Dequeue() (item T, ok bool) {
	head := q.head.Load()
	next := head.next.Load()
	if next == nil {
		return item, false
	}

	item = next.value
	// The dequeued node becomes the new sentinel; drop its value so the
	// queue does not pin the item for the sentinel's lifetime.
	var zero T
	next.value = zero
	q.head.Store(next)
	return item, true
}
