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


package asm

import (
	"fmt"
	"io"
	"strconv"

	"github.com/db47h/intcode/internal/ngi"
	"github.com/db47h/intcode/vm"
)

// mnemonics maps assembler mnemonics and their aliases to opcodes.
var mnemonics = map[string]vm.Opcode{
	"jt":   vm.OpJnz,
	"jf":   vm.OpJz,
	"rbo":  vm.OpArb,
	"halt": vm.OpHalt,
}

func init() {
	for _, op := range vm.Opcodes() {
		mnemonics[op.String()] = op
	}
}

// Assemble compiles assembly read from the supplied io.Reader and returns the
// resulting program and error if any.
//
// The name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, can safely be cast to an ErrAsm value that
// will contain up to 10 entries.
func Assemble(name string, r io.Reader) ([]vm.Cell, error) {
	return newParser(name, r).parse()
}

// encode returns the canonical instruction word for in.
func encode(in vm.Instruction) vm.Cell {
	w := vm.Cell(in.Op)
	scale := vm.Cell(100)
	for k := 0; k < in.N; k++ {
		w += vm.Cell(in.Modes[k]) * scale
		scale *= 10
	}
	return w
}

// Disassemble writes a disassembly of the instruction in the given slice at
// position pc to the specified io.Writer and returns the position of the next
// instruction and any write error.
//
// Words that do not decode to a valid instruction, non canonical instruction
// words and instructions truncated by the end of the slice are written as a
// single .dat directive.
func Disassemble(prog []vm.Cell, pc int, w io.Writer) (next int, err error) {
	ew, _ := w.(*ngi.ErrWriter)
	if ew == nil {
		ew = ngi.NewErrWriter(w)
	}

	word := prog[pc]
	in, err := vm.Decode(word)
	if err != nil || encode(in) != word || pc+in.N >= len(prog) {
		io.WriteString(ew, ".dat ")
		io.WriteString(ew, strconv.FormatInt(int64(word), 10))
		return pc + 1, ew.Err
	}
	io.WriteString(ew, in.Op.String())
	for k := 0; k < in.N; k++ {
		if k == 0 {
			ew.Write([]byte{' '})
		} else {
			io.WriteString(ew, ", ")
		}
		switch in.Modes[k] {
		case vm.Immediate:
			ew.Write([]byte{'#'})
		case vm.Relative:
			ew.Write([]byte{'~'})
		}
		io.WriteString(ew, strconv.FormatInt(int64(prog[pc+1+k]), 10))
	}
	return pc + in.Size(), ew.Err
}

// DisassembleAll writes a disassembly of all cells in the given slice to
// the specified io.Writer. The base argument specifies the real address of the
// first cell (prog[0]). It will return any write error.
func DisassembleAll(prog []vm.Cell, base int, w io.Writer) error {
	ew := ngi.NewErrWriter(w)
	for pc := 0; pc < len(prog); {
		fmt.Fprintf(ew, "% 10d\t", base+pc)
		pc, _ = Disassemble(prog, pc, ew)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
