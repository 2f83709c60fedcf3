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

	"github.com/pkg/errors"
)

// Opcode is the operation selector found in the low two decimal digits of an
// instruction word.
type Opcode Cell

// Intcode opcodes.
const (
	OpAdd  Opcode = 1
	OpMul  Opcode = 2
	OpIn   Opcode = 3
	OpOut  Opcode = 4
	OpJnz  Opcode = 5
	OpJz   Opcode = 6
	OpLt   Opcode = 7
	OpEq   Opcode = 8
	OpArb  Opcode = 9
	OpHalt Opcode = 99
)

// MaxArgs is the largest operand count of any opcode.
const MaxArgs = 3

type opInfo struct {
	name  string
	nargs int
}

// indexed by opcode, empty names are unassigned codes.
var opcodes = [100]opInfo{
	OpAdd:  {"add", 3},
	OpMul:  {"mul", 3},
	OpIn:   {"in", 1},
	OpOut:  {"out", 1},
	OpJnz:  {"jnz", 2},
	OpJz:   {"jz", 2},
	OpLt:   {"lt", 3},
	OpEq:   {"eq", 3},
	OpArb:  {"arb", 1},
	OpHalt: {"hlt", 0},
}

// Args returns the number of operands of op. The boolean result is false if
// op is not a valid opcode.
func (op Opcode) Args() (int, bool) {
	if op < 0 || int(op) >= len(opcodes) || opcodes[op].name == "" {
		return 0, false
	}
	return opcodes[op].nargs, true
}

// String returns the mnemonic for op, or its decimal value if op is not a
// valid opcode.
func (op Opcode) String() string {
	if _, ok := op.Args(); ok {
		return opcodes[op].name
	}
	return strconv.FormatInt(int64(op), 10)
}

// Opcodes returns all valid opcodes in ascending order.
func Opcodes() []Opcode {
	var ops []Opcode
	for i := range opcodes {
		if opcodes[i].name != "" {
			ops = append(ops, Opcode(i))
		}
	}
	return ops
}

// Mode is an operand addressing mode.
type Mode uint8

// Addressing modes.
const (
	Position  Mode = iota // operand is an address
	Immediate             // operand is a literal value
	Relative              // operand is an offset from the relative base
)

func (m Mode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	case Relative:
		return "relative"
	}
	return "Mode(" + strconv.Itoa(int(m)) + ")"
}

// Instruction is a decoded instruction word.
type Instruction struct {
	Op    Opcode
	Modes [MaxArgs]Mode // only the first N entries are meaningful
	N     int           // operand count
}

// Size returns the number of cells used by the instruction, including the
// instruction word itself.
func (in Instruction) Size() int {
	return in.N + 1
}

// Decode decodes an instruction word.
//
// The returned error, if any, has ErrUnknownOpcode or ErrInvalidMode as its
// cause. Mode digits in excess of the opcode's operand count are ignored.
func Decode(word Cell) (Instruction, error) {
	var in Instruction
	if word < 0 {
		return in, errors.Wrapf(ErrUnknownOpcode, "%d", word)
	}
	in.Op = Opcode(word % 100)
	n, ok := in.Op.Args()
	if !ok {
		return in, errors.Wrapf(ErrUnknownOpcode, "%d", in.Op)
	}
	in.N = n
	modes := word / 100
	for k := 0; k < n; k++ {
		m := Mode(modes % 10)
		if m > Relative {
			return in, errors.Wrapf(ErrInvalidMode, "%d in operand %d of %d", m, k+1, word)
		}
		in.Modes[k] = m
		modes /= 10
	}
	return in, nil
}
