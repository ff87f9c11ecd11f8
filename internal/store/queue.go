package store

import (
	"io"
	"iter"
	"sync"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"
)

// ConcurrentQueue is an unbounded multi-producer queue of lines.
// Producers never block. Consumers are serialized against each other, but
// never against producers.
type ConcurrentQueue struct {
	// head is the most recently pushed node, swapped by producers.
	head atomic.Pointer[node]

	// consumer guards tail.
	consumer sync.Mutex
	// tail is a consumed node, its successor is the next line to pop.
	tail *node

	pending *xsync.Counter
}

type node struct {
	next atomic.Pointer[node]
	line string
}

// NewConcurrentQueue returns an empty queue.
func NewConcurrentQueue() *ConcurrentQueue {
	stub := &node{}

	q := &ConcurrentQueue{
		tail:    stub,
		pending: xsync.NewCounter(),
	}
	q.head.Store(stub)

	return q
}

// Accept enqueues line. It never blocks and never fails.
func (q *ConcurrentQueue) Accept(line string) {
	n := &node{line: line}

	q.pending.Inc()

	prev := q.head.Swap(n)
	// Between Swap and Store the queue looks empty from n onwards.
	// Consumers see n as soon as the link is published.
	prev.next.Store(n)
}

// Pop dequeues the oldest line. ok is false if no line is available right now.
func (q *ConcurrentQueue) Pop() (line string, ok bool) {
	q.consumer.Lock()
	defer q.consumer.Unlock()

	return q.pop()
}

func (q *ConcurrentQueue) pop() (string, bool) {
	next := q.tail.next.Load()
	if next == nil {
		return "", false
	}

	line := next.line
	next.line = ""
	q.tail = next

	q.pending.Dec()

	return line, true
}

// Drain returns a one-shot sequence over the queued lines. Each step pops
// one line; iteration stops once the queue is empty and never waits for
// new lines. Lines not reached because the caller stopped early stay queued.
func (q *ConcurrentQueue) Drain() iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			line, ok := q.Pop()
			if !ok {
				return
			}

			if !yield(line) {
				return
			}
		}
	}
}

// Dump drains the queue into w, writing each line followed by a line break.
// On a write error the failed line is lost and the remaining lines stay queued.
func (q *ConcurrentQueue) Dump(w io.Writer) error {
	q.consumer.Lock()
	defer q.consumer.Unlock()

	buf := make([]byte, 0, 256)

	for {
		line, ok := q.pop()
		if !ok {
			return nil
		}

		buf = append(buf[:0], line...)
		buf = append(buf, '\n')

		if _, err := w.Write(buf); err != nil {
			return err //nolint:wrapcheck
		}
	}
}

// Len returns the number of queued lines. The value is approximate while
// producers are active.
func (q *ConcurrentQueue) Len() int {
	return int(max(q.pending.Value(), 0))
}
