// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"context"
	"sync"
)

// compactMin is the consumed prefix length at which pop compacts the queue.
const compactMin = 32

// queue is an unbounded single-consumer FIFO of commands.
type queue struct {
	mu     sync.Mutex
	items  []Command
	head   int
	closed bool

	notify chan struct{} // cap 1, signalled on every push
	done   chan struct{} // closed when the receiver closes
}

// Sender is the sending endpoint of a command channel. Send never blocks.
//
// A *Sender may be copied and shared freely; all copies feed the same
// queue. Commands from one goroutine are received in the order sent.
type Sender struct {
	q *queue
}

// Receiver is the receiving endpoint of a command channel. It is meant to
// be drained by a single goroutine.
type Receiver struct {
	q *queue
}

// NewChannel creates a connected Sender/Receiver pair.
func NewChannel() (*Sender, *Receiver) {
	q := &queue{
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	return &Sender{q: q}, &Receiver{q: q}
}

// Send enqueues cmd and returns immediately. It returns ErrRendererGone if
// the receiver has been closed.
func (s *Sender) Send(cmd Command) error {
	q := s.q
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrRendererGone
	}
	q.items = append(q.items, cmd)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
	return nil
}

// Done returns a channel that is closed once the receiver stops receiving.
func (s *Sender) Done() <-chan struct{} {
	return s.q.done
}

// Recv waits for the next command. It returns ErrRendererGone after Close,
// or ctx.Err() if ctx ends first.
func (r *Receiver) Recv(ctx context.Context) (Command, error) {
	for {
		if cmd, ok, err := r.pop(); ok || err != nil {
			return cmd, err
		}
		select {
		case <-r.q.notify:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// TryRecv returns the next command if one is queued.
func (r *Receiver) TryRecv() (Command, bool) {
	cmd, ok, _ := r.pop()
	return cmd, ok
}

// Len returns the number of queued commands.
func (r *Receiver) Len() int {
	r.q.mu.Lock()
	defer r.q.mu.Unlock()
	return len(r.q.items) - r.q.head
}

// Close stops the receiver. Queued commands are dropped and later sends
// fail with ErrRendererGone. Close is idempotent.
func (r *Receiver) Close() {
	q := r.q
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	q.items = nil
	q.head = 0
	close(q.done)
}

func (r *Receiver) pop() (Command, bool, error) {
	q := r.q
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil, false, ErrRendererGone
	}
	if q.head == len(q.items) {
		return nil, false, nil
	}
	cmd := q.items[q.head]
	q.items[q.head] = nil
	q.head++
	switch {
	case q.head == len(q.items):
		q.items = q.items[:0]
		q.head = 0
	case q.head >= compactMin && 2*q.head >= len(q.items):
		// A consumer that trails by a few commands never empties the
		// queue; move the live tail to the front.
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
	return cmd, true, nil
}
