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

// Package vm implements the Intcode virtual machine.
//
// An Intcode program is a flat sequence of signed integers. The low two
// decimal digits of an instruction word select the opcode, the remaining digits
// select, least significant first, the addressing mode of each operand:
// Position (0), Immediate (1) or Relative (2).
//
// Each Instance owns its memory and registers. The only things that cross the
// boundary between an Instance and its environment are the integers exchanged
// through its input and output Queues. An Instance can either be run to
// completion on the caller's goroutine with Run, or started on its own
// goroutine with Start, in which case the returned Handle is used to wait for
// termination:
//
//	prog, _ := vm.Parse("3,0,4,0,99")
//	i, _ := vm.New(prog)
//	i.Input().Send(42)
//	h := i.Start()
//	if err := h.Wait(); err != nil {
//		// errors.Cause(err) is one of the Err* values of this package.
//	}
//	out := i.Output().Drain() // [42]
//
// Several instances can share queues (see the Input and Output options) in
// order to build chains or feedback loops. NewPipeline does exactly that.
//
// Cells are 64 bits signed integers. Additions or multiplications that
// overflow fault the machine with ErrOverflow rather than wrapping around.
package vm
