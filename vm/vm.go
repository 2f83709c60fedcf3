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
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
)

// State is the execution state of an Instance.
type State int32

// Instance states. Halted and Faulted are terminal.
const (
	Running State = iota
	WaitingOnInput
	Halted
	Faulted
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case WaitingOnInput:
		return "waiting on input"
	case Halted:
		return "halted"
	case Faulted:
		return "faulted"
	}
	return "State(" + strconv.Itoa(int(s)) + ")"
}

// Instance represents an Intcode VM instance.
//
// The exported registers and memory may be inspected or modified before the
// instance is started and after it has terminated. Doing so while it runs on
// its own goroutine is a data race.
type Instance struct {
	PC       int    // Program Counter (aka. Instruction Pointer)
	RB       int    // Relative Base
	Mem      Memory // Memory
	Name     string // used in log messages, defaults to a random UUID
	in       *Queue
	out      *Queue
	log      commonlog.Logger
	insCount int64
	state    int32
	started  int32
}

// Option interface
type Option func(*Instance) error

// Input sets the input queue of the instance. Use this to make an instance
// read the output of another one.
func Input(q *Queue) Option {
	return func(i *Instance) error {
		if q == nil {
			return errors.New("nil input queue")
		}
		i.in = q
		return nil
	}
}

// Output sets the output queue of the instance.
func Output(q *Queue) Option {
	return func(i *Instance) error {
		if q == nil {
			return errors.New("nil output queue")
		}
		i.out = q
		return nil
	}
}

// Patch writes v at address addr once the program has been loaded and before
// the first instruction is executed. Patches are applied in order.
func Patch(addr int, v Cell) Option {
	return func(i *Instance) error {
		return errors.Wrap(i.Mem.Write(addr, v), "patch")
	}
}

// Logger sets the logger used by the instance. Executed instructions are
// logged at the debug level.
func Logger(l commonlog.Logger) Option {
	return func(i *Instance) error { i.log = l; return nil }
}

// Name sets the instance name used in log messages.
func Name(name string) Option {
	return func(i *Instance) error { i.Name = name; return nil }
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new Intcode Virtual Machine instance.
//
// The program is copied to addresses 0 to len(program)-1 of the instance
// memory. Unless the Input or Output options are used, the instance gets new,
// empty queues.
//
// Options will be set by calling SetOptions.
func New(program []Cell, opts ...Option) (*Instance, error) {
	i := &Instance{
		Mem:  NewMemory(program),
		Name: uuid.NewString(),
		log:  commonlog.GetLogger("intcode.vm"),
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	if i.in == nil {
		i.in = NewQueue()
	}
	if i.out == nil {
		i.out = NewQueue()
	}
	return i, nil
}

// Clone returns a copy of i with the same registers and memory contents, a new
// name and new queues, unless specified otherwise in opts. The clone is in the
// Running state and may be started even if i has been.
func (i *Instance) Clone(opts ...Option) (*Instance, error) {
	c := &Instance{
		PC:   i.PC,
		RB:   i.RB,
		Mem:  i.Mem.Clone(),
		Name: uuid.NewString(),
		log:  i.log,
	}
	if err := c.SetOptions(opts...); err != nil {
		return nil, err
	}
	if c.in == nil {
		c.in = NewQueue()
	}
	if c.out == nil {
		c.out = NewQueue()
	}
	return c, nil
}

// Input returns the input queue of the instance.
func (i *Instance) Input() *Queue { return i.in }

// Output returns the output queue of the instance.
func (i *Instance) Output() *Queue { return i.out }

// State returns the current state of the instance. It is safe to call from any
// goroutine.
func (i *Instance) State() State {
	return State(atomic.LoadInt32(&i.state))
}

func (i *Instance) setState(s State) {
	atomic.StoreInt32(&i.state, int32(s))
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return atomic.LoadInt64(&i.insCount)
}
