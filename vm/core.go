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
	"math"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
)

func add(a, b Cell) (Cell, error) {
	c := a + b
	if (c > a) != (b > 0) {
		return 0, errors.Wrapf(ErrOverflow, "%d + %d", a, b)
	}
	return c, nil
}

func mul(a, b Cell) (Cell, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	c := a * b
	if c/b != a || (a == math.MinInt64 && b == -1) {
		return 0, errors.Wrapf(ErrOverflow, "%d * %d", a, b)
	}
	return c, nil
}

// address converts v to a memory address.
func address(v Cell) (int, error) {
	if v < 0 {
		return 0, errors.Wrapf(ErrNegativeAddress, "%d", v)
	}
	if Cell(int(v)) != v {
		return 0, errors.Wrapf(ErrOverflow, "address %d", v)
	}
	return int(v), nil
}

// effective returns the address referenced by the k-th operand of in, which
// must not be in Immediate mode.
func (i *Instance) effective(in Instruction, k int) (int, error) {
	v := i.Mem.Read(i.PC + 1 + k)
	switch in.Modes[k] {
	case Relative:
		var err error
		if v, err = add(Cell(i.RB), v); err != nil {
			return 0, err
		}
	case Immediate:
		return 0, errors.Wrapf(ErrInvalidWriteTarget, "operand %d", k+1)
	}
	return address(v)
}

// load returns the value of the k-th operand of in.
func (i *Instance) load(in Instruction, k int) (Cell, error) {
	if in.Modes[k] == Immediate {
		return i.Mem.Read(i.PC + 1 + k), nil
	}
	addr, err := i.effective(in, k)
	if err != nil {
		return 0, err
	}
	return i.Mem.Read(addr), nil
}

// store writes v to the address referenced by the k-th operand of in.
func (i *Instance) store(in Instruction, k int, v Cell) error {
	addr, err := i.effective(in, k)
	if err != nil {
		return err
	}
	return i.Mem.Write(addr, v)
}

func (i *Instance) load2(in Instruction) (a, b Cell, err error) {
	if a, err = i.load(in, 0); err != nil {
		return 0, 0, err
	}
	b, err = i.load(in, 1)
	return a, b, err
}

func (i *Instance) trace(in Instruction) {
	if !i.log.AllowLevel(commonlog.Debug) {
		return
	}
	args := make([]Cell, in.N)
	for k := range args {
		args[k] = i.Mem.Read(i.PC + 1 + k)
	}
	i.log.Debug(in.Op.String(), "machine", i.Name, "pc", i.PC, "rb", i.RB, "word", i.Mem.Read(i.PC), "args", args)
}

// exec executes a single decoded instruction. It returns true if the
// instruction was OpHalt.
func (i *Instance) exec(in Instruction) (bool, error) {
	switch in.Op {
	case OpAdd, OpMul, OpLt, OpEq:
		a, b, err := i.load2(in)
		if err != nil {
			return false, err
		}
		var v Cell
		switch in.Op {
		case OpAdd:
			v, err = add(a, b)
		case OpMul:
			v, err = mul(a, b)
		case OpLt:
			if a < b {
				v = 1
			}
		case OpEq:
			if a == b {
				v = 1
			}
		}
		if err != nil {
			return false, err
		}
		if err = i.store(in, 2, v); err != nil {
			return false, err
		}
	case OpIn:
		addr, err := i.effective(in, 0)
		if err != nil {
			return false, err
		}
		if i.in.Len() == 0 {
			i.setState(WaitingOnInput)
		}
		v, err := i.in.Recv()
		i.setState(Running)
		if err != nil {
			return false, errors.Wrap(err, "input")
		}
		if err = i.Mem.Write(addr, v); err != nil {
			return false, err
		}
	case OpOut:
		v, err := i.load(in, 0)
		if err != nil {
			return false, err
		}
		if err = i.out.Send(v); err != nil {
			return false, errors.Wrap(err, "output")
		}
	case OpJnz, OpJz:
		a, b, err := i.load2(in)
		if err != nil {
			return false, err
		}
		if (a != 0) == (in.Op == OpJnz) {
			pc, err := address(b)
			if err != nil {
				return false, errors.Wrap(err, "jump target")
			}
			i.PC = pc
			return false, nil
		}
	case OpArb:
		a, err := i.load(in, 0)
		if err != nil {
			return false, err
		}
		rb, err := add(Cell(i.RB), a)
		if err != nil {
			return false, err
		}
		if Cell(int(rb)) != rb {
			return false, errors.Wrapf(ErrOverflow, "relative base %d", rb)
		}
		i.RB = int(rb)
	case OpHalt:
		return true, nil
	}
	i.PC += in.Size()
	return false, nil
}

// Step decodes and executes the instruction at PC. It returns true once the
// instruction OpHalt has been executed. Unlike Run, Step does not close the
// output queue on halt.
//
// If an error occurs, PC will point to the instruction that triggered it.
func (i *Instance) Step() (halted bool, err error) {
	word := i.Mem.Read(i.PC)
	in, err := Decode(word)
	if err == nil {
		i.trace(in)
		halted, err = i.exec(in)
	}
	if err != nil {
		return false, errors.Wrapf(err, "%s: pc=%d word=%d", i.Name, i.PC, word)
	}
	atomic.AddInt64(&i.insCount, 1)
	return halted, nil
}

// Run runs the instance on the caller's goroutine until it executes OpHalt or
// faults. In both cases the output queue is closed before Run returns.
//
// If an error occurs, the PC will point to the instruction that triggered the
// error, the instance will be in the Faulted state and errors.Cause(err) will
// be one of the Err* errors of this package.
func (i *Instance) Run() (err error) {
	defer func() {
		if e := recover(); e != nil {
			switch e := e.(type) {
			case error:
				err = errors.Wrapf(e, "recovered error @pc=%d", i.PC)
			default:
				panic(e)
			}
		}
		i.out.Close()
		if err != nil {
			i.setState(Faulted)
			i.log.Error("fault", "machine", i.Name, "error", err.Error())
		} else {
			i.setState(Halted)
		}
	}()
	i.setState(Running)
	for {
		halted, err := i.Step()
		if err != nil {
			return err
		}
		if halted {
			return nil
		}
	}
}
