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
	"bytes"
	"flag"
	"io"
	"strings"
	"testing"

	"github.com/db47h/intcode/vm"
	"github.com/stretchr/testify/require"
)

func TestFlags(t *testing.T) {
	require := require.New(t)

	var inputs cellList
	var patches patchList
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Var(&inputs, "in", "")
	fs.Var(&patches, "set", "")

	require.NoError(fs.Parse([]string{"-in", "1,2", "-set", "1=12", "-in", "-3", "-set", "2=-2"}))
	require.Equal(cellList{1, 2, -3}, inputs)
	require.Equal(patchList{{1, 12}, {2, -2}}, patches)
	require.Equal("1=12 2=-2", patches.String())
	require.Equal("1,2,-3", inputs.String())

	for _, bad := range [][]string{{"-set", "12"}, {"-set", "x=1"}, {"-set", "1=y"}, {"-in", "1,,2"}} {
		require.Error(fs.Parse(bad), "%v", bad)
	}
}

func TestEOTReader(t *testing.T) {
	b, err := io.ReadAll(eotReader{strings.NewReader("ab\x04cd")})
	require.NoError(t, err)
	require.Equal(t, "ab", string(b))

	n, err := eotReader{strings.NewReader("xyz")}.Read(make([]byte, 8))
	require.NoError(t, err)
	require.Equal(t, 3, n)
}

func TestRawIOIgnored(t *testing.T) {
	var tests = [...]struct {
		ascii, raw, tty bool
		ignored         bool
	}{
		{false, false, true, false},
		{true, false, false, false},
		{true, true, true, false},
		{false, true, true, true},
		{true, true, false, true},
		{false, true, false, true},
	}
	for _, test := range tests {
		why := rawIOIgnored(test.ascii, test.raw, test.tty)
		require.Equal(t, test.ignored, why != "", "ascii=%v raw=%v tty=%v", test.ascii, test.raw, test.tty)
	}
}

func TestFeedInput(t *testing.T) {
	q := vm.NewQueue()
	src := func(q *vm.Queue) error { return feedRaw(q, strings.NewReader("4,5\n6\n")) }
	require.NoError(t, feedInput(q, nil, src))
	require.Equal(t, []vm.Cell{4, 5, 6}, q.Drain())

	err := feedInput(q, []string{"does/not/exist"}, src)
	require.Error(t, err)
	require.Equal(t, 0, q.Len())
}

func TestDumpVM(t *testing.T) {
	i, err := vm.New([]vm.Cell{1, 0, 0, 0, 99})
	require.NoError(t, err)
	require.NoError(t, i.Run())
	var b bytes.Buffer
	require.NoError(t, dumpVM(i, &b))
	require.Equal(t, "pc=4 rb=0 state=halted\n2,0,0,0,99\n", b.String())

	require.Error(t, dumpVM(i, failWriter{}))
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }
