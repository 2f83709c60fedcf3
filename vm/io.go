// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vm

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
)

// Queue is an unbounded FIFO of Cells with a single producer and a single
// consumer. Send never blocks, Recv blocks until a value is available or the
// queue is closed.
//
// Closing a queue does not discard its contents: values sent before Close can
// still be received or drained.
type Queue struct {
	mu     sync.Mutex
	buf    []Cell
	closed bool
	ready  chan struct{}
}

// NewQueue returns a new Queue holding the given values.
func NewQueue(init ...Cell) *Queue {
	q := &Queue{ready: make(chan struct{}, 1)}
	if len(init) > 0 {
		q.buf = append(q.buf, init...)
		q.signal()
	}
	return q
}

func (q *Queue) signal() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// Send appends v to the queue. It returns ErrChannelClosed if the queue has
// been closed.
func (q *Queue) Send(v ...Cell) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrChannelClosed
	}
	q.buf = append(q.buf, v...)
	q.mu.Unlock()
	q.signal()
	return nil
}

// Recv removes and returns the value at the head of the queue, waiting for one
// to be sent if necessary. It returns ErrChannelClosed if the queue is empty
// and has been closed.
func (q *Queue) Recv() (Cell, error) {
	return q.RecvContext(context.Background())
}

// RecvContext is like Recv but gives up waiting when ctx is done, in which
// case it returns ctx.Err().
func (q *Queue) RecvContext(ctx context.Context) (Cell, error) {
	for {
		if v, ok, closed := q.pop(); ok {
			return v, nil
		} else if closed {
			return 0, ErrChannelClosed
		}
		select {
		case <-q.ready:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
}

// TryRecv is a non-blocking Recv. The boolean result is false if the queue is
// empty.
func (q *Queue) TryRecv() (Cell, bool) {
	v, ok, _ := q.pop()
	return v, ok
}

func (q *Queue) pop() (v Cell, ok, closed bool) {
	q.mu.Lock()
	if len(q.buf) == 0 {
		closed = q.closed
		q.mu.Unlock()
		return 0, false, closed
	}
	v = q.buf[0]
	q.buf = q.buf[1:]
	more := len(q.buf) > 0
	if !more {
		q.buf = nil
	}
	q.mu.Unlock()
	if more {
		q.signal()
	}
	return v, true, false
}

// Close closes the queue. Further calls to Send will fail, receivers will get
// the remaining values then ErrChannelClosed. Closing a closed queue is a
// no-op.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.signal()
}

// Closed returns true if the queue has been closed.
func (q *Queue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Len returns the number of values in the queue.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.buf)
}

// Drain removes and returns all values in the queue without blocking.
func (q *Queue) Drain() []Cell {
	q.mu.Lock()
	defer q.mu.Unlock()
	b := q.buf
	q.buf = nil
	return b
}

// Handle is returned by Instance.Start and is used to wait for a running
// instance to terminate.
type Handle struct {
	i    *Instance
	done chan struct{}
	err  error
}

// Start runs the instance on a new goroutine. Values can be sent to the
// instance before or after it has started.
//
// Start panics if the instance has already been started. Calling Run or Step
// while the instance runs on its own goroutine is a data race.
func (i *Instance) Start() *Handle {
	if !atomic.CompareAndSwapInt32(&i.started, 0, 1) {
		panic("vm: instance " + i.Name + " already started")
	}
	h := &Handle{i: i, done: make(chan struct{})}
	go func() {
		h.err = i.Run()
		close(h.done)
	}()
	return h
}

// Instance returns the instance controlled by h.
func (h *Handle) Instance() *Instance { return h.i }

// Input returns the input queue of the instance.
func (h *Handle) Input() *Queue { return h.i.in }

// Output returns the output queue of the instance.
func (h *Handle) Output() *Queue { return h.i.out }

// Done returns a channel that is closed when the instance terminates.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Wait waits for the instance to terminate and returns the error returned by
// its Run method.
func (h *Handle) Wait() error {
	<-h.done
	return h.err
}

// Err returns the error returned by the Run method of the instance if it has
// terminated, nil otherwise.
func (h *Handle) Err() error {
	select {
	case <-h.done:
		return h.err
	default:
		return nil
	}
}

// WaitContext is like Wait but gives up waiting when ctx is done. The instance
// is not stopped: close its input queue in order to make it fault if it is
// blocked on input.
func (h *Handle) WaitContext(ctx context.Context) error {
	select {
	case <-h.done:
		return h.err
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "wait "+h.i.Name)
	}
}
