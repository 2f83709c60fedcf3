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
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/db47h/intcode/vm"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
)

// source sends values to q until its input is exhausted.
type source func(q *vm.Queue) error

// feedRaw feeds text input in ASCII mode and program text values otherwise.
func feedRaw(q *vm.Queue, r io.Reader) error {
	if ascii {
		return vm.FeedRunes(q, r)
	}
	return vm.FeedValues(q, r)
}

// feedInput sends the contents of the given files, then src, to q.
func feedInput(q *vm.Queue, files []string, src source) error {
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			return errors.Wrap(err, "open failed")
		}
		err = feedRaw(q, bufio.NewReader(f))
		f.Close()
		if err != nil {
			return errors.Wrap(err, name)
		}
	}
	return src(q)
}

// in raw tty mode, CTRL-D is not handled by the terminal.
type eotReader struct {
	r io.Reader
}

func (e eotReader) Read(p []byte) (int, error) {
	n, err := e.r.Read(p)
	if i := bytes.IndexByte(p[:n], 4); i >= 0 {
		return i, io.EOF
	}
	return n, err
}

// rawIOIgnored returns the reason why raw IO cannot be used, or an empty
// string if it can or has not been requested.
func rawIOIgnored(ascii, raw, tty bool) string {
	switch {
	case !raw:
		return ""
	case !ascii:
		return "-raw requires -ascii"
	case !tty:
		return "stdin is not a terminal"
	}
	return ""
}

// stdinSource selects how standard input is read and returns a function that
// restores the terminal state, if any.
func stdinSource() (source, func()) {
	tty := isTerminal(os.Stdin.Fd())
	if why := rawIOIgnored(ascii, rawIO, tty); why != "" {
		log.Warning("raw IO ignored", "reason", why)
	}
	switch {
	case ascii && rawIO && tty:
		tearDown, err := setRawIO()
		if err != nil {
			log.Warning("raw IO not available", "error", err)
			break
		}
		return func(q *vm.Queue) error {
			return vm.FeedRunes(q, bufio.NewReader(eotReader{os.Stdin}))
		}, tearDown
	case !ascii && tty:
		ln := liner.NewLiner()
		ln.SetCtrlCAborts(true)
		return func(q *vm.Queue) error {
			return promptValues(q, ln)
		}, func() { ln.Close() }
	}
	return func(q *vm.Queue) error {
		return feedRaw(q, bufio.NewReader(os.Stdin))
	}, nil
}

// promptValues reads lines of comma separated values with a line editor and
// sends them to q. Malformed lines are reported and skipped.
func promptValues(q *vm.Queue, ln *liner.State) error {
	for {
		line, err := ln.Prompt("")
		if err != nil {
			if err == io.EOF || err == liner.ErrPromptAborted {
				return nil
			}
			return errors.Wrap(err, "read failed")
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		v, err := vm.Parse(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		ln.AppendHistory(line)
		if err = q.Send(v...); err != nil {
			return err
		}
	}
}
