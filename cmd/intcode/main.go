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


package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

type fileList []string

func (f *fileList) String() string     { return "" }
func (f *fileList) Set(s string) error { *f = append(*f, s); return nil }
func (f *fileList) Get() interface{}   { return *f }

type cellList []vm.Cell

func (c *cellList) String() string { return vm.Format(*c) }
func (c *cellList) Set(s string) error {
	v, err := vm.Parse(s)
	if err != nil {
		return err
	}
	*c = append(*c, v...)
	return nil
}
func (c *cellList) Get() interface{} { return *c }

type patch struct {
	addr int
	v    vm.Cell
}

type patchList []patch

func (p *patchList) String() string {
	s := make([]string, len(*p))
	for i, e := range *p {
		s[i] = strconv.Itoa(e.addr) + "=" + strconv.FormatInt(int64(e.v), 10)
	}
	return strings.Join(s, " ")
}

func (p *patchList) Set(s string) error {
	i := strings.IndexByte(s, '=')
	if i < 0 {
		return errors.Errorf("%q: expected addr=value", s)
	}
	addr, err := strconv.Atoi(s[:i])
	if err != nil {
		return errors.Wrap(err, "bad address")
	}
	v, err := strconv.ParseInt(s[i+1:], 10, 64)
	if err != nil {
		return errors.Wrap(err, "bad value")
	}
	*p = append(*p, patch{addr, vm.Cell(v)})
	return nil
}

func (p *patchList) Get() interface{} { return *p }

var (
	ascii   bool
	rawIO   bool
	debug   bool
	dump    bool
	dis     bool
	timeout time.Duration
	log     = commonlog.GetLogger("intcode")
)

func atExit(i *vm.Instance, err error) {
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "\n%+v\n", err)
	if i != nil {
		fmt.Fprintf(os.Stderr, "PC: %d (%d), RB: %d, State: %v, Instructions: %d\n",
			i.PC, i.Mem.Read(i.PC), i.RB, i.State(), i.InstructionCount())
	}
	os.Exit(1)
}

func main() {
	// check exit condition
	var err error
	var i *vm.Instance

	stdout := bufio.NewWriter(os.Stdout)

	// flush output, catch and log errors
	defer func() {
		stdout.Flush()
		if err == nil && dump && i != nil {
			err = dumpVM(i, os.Stdout)
		}
		atExit(i, err)
	}()

	var inputs cellList
	var patches patchList
	var withFiles fileList

	flag.Var(&inputs, "in", "comma separated `values` to send as input before anything else (can be specified multiple times)")
	flag.Var(&patches, "set", "set memory address `addr=value` before running (can be specified multiple times)")
	flag.Var(&withFiles, "with", "Add `filename` to the input list (can be specified multiple times)")
	flag.BoolVar(&ascii, "ascii", false, "ASCII mode: input is text, output values below 128 are written as characters")
	flag.BoolVar(&rawIO, "raw", false, "in ASCII mode, switch the terminal to raw IO")
	flag.BoolVar(&dis, "dis", false, "disassemble the program and exit")
	flag.BoolVar(&dump, "dump", false, "dump memory upon exit")
	flag.DurationVar(&timeout, "timeout", 0, "stop waiting for the program after `duration`")
	flag.BoolVar(&debug, "debug", false, "enable debug diagnostics")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] program\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	if debug {
		commonlog.Configure(2, nil)
	} else {
		commonlog.Configure(0, nil)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	prog, err := vm.Load(flag.Arg(0))
	if err != nil {
		return
	}
	log.Debug("program loaded", "file", flag.Arg(0), "cells", len(prog))

	if dis {
		err = asm.DisassembleAll(prog, 0, stdout)
		return
	}

	opts := []vm.Option{vm.Input(vm.NewQueue(inputs...))}
	for _, p := range patches {
		opts = append(opts, vm.Patch(p.addr, p.v))
	}
	if i, err = vm.New(prog, opts...); err != nil {
		return
	}

	src, tearDown := stdinSource()
	if tearDown != nil {
		defer tearDown()
	}

	h := i.Start()
	go func() {
		if err := feedInput(h.Input(), withFiles, src); err != nil && errors.Cause(err) != vm.ErrChannelClosed {
			log.Error("input failed", "error", err)
		}
		h.Input().Close()
	}()

	outDone := make(chan error, 1)
	go func() {
		outDone <- vm.CopyOutput(stdout, h.Output(), ascii)
	}()

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err = h.WaitContext(ctx); errors.Cause(err) == context.DeadlineExceeded {
		// release the machine if it is blocked and stop copying output.
		h.Input().Close()
		h.Output().Close()
	}
	if e := <-outDone; err == nil {
		err = e
	}
}
