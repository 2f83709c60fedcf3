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
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestQueue(t *testing.T) {
	require := require.New(t)

	q := vm.NewQueue(1, 2)
	require.NoError(q.Send(3, 4))
	require.Equal(4, q.Len())
	for want := vm.Cell(1); want <= 3; want++ {
		v, err := q.Recv()
		require.NoError(err)
		require.Equal(want, v)
	}
	v, ok := q.TryRecv()
	require.True(ok)
	require.Equal(vm.Cell(4), v)
	_, ok = q.TryRecv()
	require.False(ok)

	require.NoError(q.Send(5, 6))
	q.Close()
	q.Close()
	require.True(q.Closed())
	require.Equal(vm.ErrChannelClosed, q.Send(7))
	v, err := q.Recv()
	require.NoError(err)
	require.Equal(vm.Cell(5), v)
	require.Equal(C{6}, C(q.Drain()))
	_, err = q.Recv()
	require.Equal(vm.ErrChannelClosed, err)
}

func TestQueue_blockingFIFO(t *testing.T) {
	const n = 10000
	q := vm.NewQueue()
	go func() {
		for k := 0; k < n; k++ {
			q.Send(vm.Cell(k))
		}
		q.Close()
	}()
	for k := 0; ; k++ {
		v, err := q.Recv()
		if err != nil {
			require.Equal(t, vm.ErrChannelClosed, err)
			require.Equal(t, n, k)
			break
		}
		require.Equal(t, vm.Cell(k), v)
	}
}

func TestQueue_RecvContext(t *testing.T) {
	q := vm.NewQueue()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := q.RecvContext(ctx)
	require.Equal(t, context.DeadlineExceeded, err)

	go func() {
		time.Sleep(5 * time.Millisecond)
		q.Close()
	}()
	_, err = q.Recv()
	require.Equal(t, vm.ErrChannelClosed, err)
}

func TestHandle(t *testing.T) {
	require := require.New(t)

	prog, err := vm.Parse("3,0,4,0,3,0,4,0,99")
	require.NoError(err)
	i, err := vm.New(prog)
	require.NoError(err)
	require.Equal(vm.Running, i.State())

	h := i.Start()
	require.Panics(func() { i.Start() })

	// the machine must block on its first input.
	waitState(t, i, vm.WaitingOnInput)
	require.NoError(h.Input().Send(17))
	v, err := h.Output().Recv()
	require.NoError(err)
	require.Equal(vm.Cell(17), v)

	waitState(t, i, vm.WaitingOnInput)
	require.NoError(h.Input().Send(-3))
	require.NoError(h.Wait())
	require.Equal(vm.Halted, i.State())
	require.Equal(C{-3}, C(h.Output().Drain()))
	require.True(h.Output().Closed())

	select {
	case <-h.Done():
	default:
		t.Fatal("Done channel not closed after Wait")
	}
	require.Same(i, h.Instance())
}

func TestHandle_fault(t *testing.T) {
	prog, _ := vm.Parse("104,1,98")
	i, err := vm.New(prog)
	require.NoError(t, err)
	h := i.Start()
	err = h.Wait()
	require.Equal(t, vm.ErrUnknownOpcode, errors.Cause(err))
	require.Equal(t, err, h.Err())
	require.Equal(t, vm.Faulted, i.State())
	// values sent before the fault are still available.
	require.Equal(t, C{1}, C(i.Output().Drain()))
}

func TestHandle_WaitContext(t *testing.T) {
	prog, _ := vm.Parse("3,0,99")
	i, err := vm.New(prog)
	require.NoError(t, err)
	h := i.Start()
	require.NoError(t, h.Err())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err = h.WaitContext(ctx)
	require.Equal(t, context.DeadlineExceeded, errors.Cause(err))
	require.Equal(t, vm.WaitingOnInput, i.State())

	// releasing a blocked machine.
	i.Input().Close()
	err = h.Wait()
	require.Equal(t, vm.ErrChannelClosed, errors.Cause(err))
	require.Equal(t, vm.Faulted, i.State())
}

func TestFeed(t *testing.T) {
	require := require.New(t)

	q := vm.NewQueue()
	require.NoError(vm.FeedRunes(q, strings.NewReader("Hé\n")))
	require.Equal(C{'H', 'é', '\n'}, C(q.Drain()))

	require.NoError(vm.FeedValues(q, strings.NewReader("1,2\n\n  -3 \n")))
	require.Equal(C{1, 2, -3}, C(q.Drain()))

	err := vm.FeedValues(q, strings.NewReader("1\n2,x\n"))
	_, ok := errors.Cause(err).(*vm.ParseError)
	require.True(ok, "unexpected error %v", err)

	q.Close()
	require.Equal(vm.ErrChannelClosed, vm.FeedRunes(q, strings.NewReader("a")))
}

func TestCopyOutput(t *testing.T) {
	var b bytes.Buffer
	q := vm.NewQueue('o', 'k', '\n', 1000, -1)
	q.Close()
	require.NoError(t, vm.CopyOutput(&b, q, true))
	require.Equal(t, "ok\n1000\n-1\n", b.String())

	b.Reset()
	q = vm.NewQueue('o', 42)
	q.Close()
	require.NoError(t, vm.CopyOutput(&b, q, false))
	require.Equal(t, "111\n42\n", b.String())
}

// waitState polls i until it reaches state s.
func waitState(t *testing.T, i *vm.Instance, s vm.State) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for i.State() != s {
		if time.Now().After(deadline) {
			t.Fatalf("timeout waiting for state %v, current state %v", s, i.State())
		}
		time.Sleep(time.Millisecond)
	}
}
