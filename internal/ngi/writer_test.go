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


package ngi_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/db47h/intcode/internal/ngi"
	"github.com/pkg/errors"
)

type limitWriter struct {
	b bytes.Buffer
	n int
}

func (w *limitWriter) Write(p []byte) (int, error) {
	if w.b.Len()+len(p) > w.n {
		return 0, io.ErrShortWrite
	}
	return w.b.Write(p)
}

func TestErrWriter(t *testing.T) {
	lw := &limitWriter{n: 4}
	w := ngi.NewErrWriter(lw)
	io.WriteString(w, "ab")
	w.Write([]byte("cdef"))
	io.WriteString(w, "g")
	if errors.Cause(w.Err) != io.ErrShortWrite {
		t.Fatalf("expected %v, got %v", io.ErrShortWrite, w.Err)
	}
	if s := lw.b.String(); s != "ab" {
		t.Errorf("expected %q, got %q", "ab", s)
	}
}
