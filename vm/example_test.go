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

package vm_test

import (
	"fmt"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// Patch memory before running a program to completion on the current
// goroutine, then inspect the final memory state.
func ExampleInstance_Run() {
	prog, err := vm.Parse("1,0,0,3,2,3,11,0,99,30,40,50")
	if err != nil {
		panic(err)
	}
	i, err := vm.New(prog, vm.Patch(1, 9), vm.Patch(2, 10))
	if err != nil {
		panic(err)
	}
	if err = i.Run(); err != nil {
		panic(err)
	}
	fmt.Println(i.Mem.Read(0))

	// Output:
	// 3500
}

// Run an instance on its own goroutine and talk to it while it runs.
func ExampleInstance_Start() {
	// doubles every input value until it reads 0
	prog, err := vm.Parse("3,15,1006,15,14,1002,15,2,15,4,15,1105,1,0,99,0")
	if err != nil {
		panic(err)
	}
	i, err := vm.New(prog)
	if err != nil {
		panic(err)
	}
	h := i.Start()
	for _, v := range []vm.Cell{1, 21, -4} {
		h.Input().Send(v)
		r, _ := h.Output().Recv()
		fmt.Println(r)
	}
	h.Input().Send(0)
	fmt.Println(h.Wait(), i.State())

	// Output:
	// 2
	// 42
	// -8
	// <nil> halted
}

// Errors carry the faulting instruction as context. Use errors.Cause to test
// against the package errors.
func ExampleDecode() {
	_, err := vm.Decode(1042)
	fmt.Println(errors.Cause(err) == vm.ErrUnknownOpcode)

	in, _ := vm.Decode(21002)
	fmt.Println(in.Op, in.Modes[:in.N])

	// Output:
	// true
	// mul [position immediate relative]
}
