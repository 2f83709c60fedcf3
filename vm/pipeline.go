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
	"strconv"

	"github.com/pkg/errors"
)

// Pipeline is a chain of instances where the output of each instance is the
// input of the next one. In a looped pipeline, the output of the last instance
// is the input of the first one.
type Pipeline struct {
	machines []*Instance
	queues   []*Queue
}

// NewPipeline creates n instances running the given program and connects them
// in a chain, or in a ring if loop is true. The options are applied to every
// instance; Input and Output options are overridden.
//
// Instance k is named "<k>" unless a Name option is given.
func NewPipeline(program []Cell, n int, loop bool, opts ...Option) (*Pipeline, error) {
	if n < 1 {
		return nil, errors.Errorf("invalid pipeline length %d", n)
	}
	nq := n + 1
	if loop {
		nq = n
	}
	p := &Pipeline{
		machines: make([]*Instance, n),
		queues:   make([]*Queue, nq),
	}
	for k := range p.queues {
		p.queues[k] = NewQueue()
	}
	for k := range p.machines {
		o := make([]Option, 0, len(opts)+3)
		o = append(o, Name(strconv.Itoa(k)))
		o = append(o, opts...)
		o = append(o, Input(p.queues[k]), Output(p.queues[(k+1)%nq]))
		i, err := New(program, o...)
		if err != nil {
			return nil, errors.Wrapf(err, "machine %d", k)
		}
		p.machines[k] = i
	}
	return p, nil
}

// Machines returns the instances of the pipeline, in order.
func (p *Pipeline) Machines() []*Instance { return p.machines }

// Entry returns the input queue of the first instance.
func (p *Pipeline) Entry() *Queue { return p.queues[0] }

// Exit returns the output queue of the last instance. For looped pipelines,
// this is the same queue as Entry.
func (p *Pipeline) Exit() *Queue { return p.machines[len(p.machines)-1].out }

// Run starts all instances and waits for them to terminate. It returns the
// values left in the exit queue.
//
// If any instance faults, all the pipeline queues are closed so that blocked
// instances fault in turn, and Run returns the error of the first instance
// that did not fail with ErrChannelClosed.
func (p *Pipeline) Run() ([]Cell, error) {
	return p.RunContext(context.Background())
}

// RunContext is like Run but closes all the pipeline queues when ctx is done.
// Instances blocked on input will then fault with ErrChannelClosed. In that
// case, the returned error is ctx.Err().
func (p *Pipeline) RunContext(ctx context.Context) ([]Cell, error) {
	errc := make(chan error, len(p.machines))
	for _, i := range p.machines {
		h := i.Start()
		go func() { errc <- h.Wait() }()
	}
	var errs []error
	done := ctx.Done()
	for n := 0; n < len(p.machines); {
		select {
		case err := <-errc:
			n++
			if err != nil {
				if len(errs) == 0 {
					p.closeAll()
				}
				errs = append(errs, err)
			}
		case <-done:
			p.closeAll()
			done = nil
			errs = append([]error{errors.Wrap(ctx.Err(), "pipeline")}, errs...)
		}
	}
	return p.Exit().Drain(), firstError(errs)
}

func (p *Pipeline) closeAll() {
	for _, q := range p.queues {
		q.Close()
	}
}

func firstError(errs []error) error {
	for _, err := range errs {
		if errors.Cause(err) != ErrChannelClosed {
			return err
		}
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
