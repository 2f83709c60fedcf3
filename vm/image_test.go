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
	"os"
	"path/filepath"
	"testing"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

func TestParse(t *testing.T) {
	var tests = [...]struct {
		text  string
		prog  C
		index int // of the bad field, -1 if no error
	}{
		{"1,2,3", C{1, 2, 3}, -1},
		{"  1,-2,+3\n", C{1, -2, 3}, -1},
		{"99", C{99}, -1},
		{"9223372036854775807,-9223372036854775808", C{9223372036854775807, -9223372036854775808}, -1},
		{"", nil, 0},
		{" \n", nil, 0},
		{"1,,3", nil, 1},
		{"1,2,", nil, 2},
		{"1, 2", nil, 1},
		{"1;2", nil, 0},
		{"1,0x10", nil, 1},
		{"1,9223372036854775808", nil, 1},
	}
	for _, test := range tests {
		prog, err := vm.Parse(test.text)
		if test.index < 0 {
			if err != nil {
				t.Errorf("%q: %v", test.text, err)
			} else if !slices.Equal(prog, []vm.Cell(test.prog)) {
				t.Errorf("%q: expected %v, got %v", test.text, test.prog, prog)
			}
			continue
		}
		pe, ok := err.(*vm.ParseError)
		if !ok {
			t.Errorf("%q: expected a *ParseError, got %v", test.text, err)
			continue
		}
		if pe.Index != test.index {
			t.Errorf("%q: expected error at field %d, got %d", test.text, test.index, pe.Index)
		}
	}
}

func TestFormat(t *testing.T) {
	const text = "109,1,204,-1,1001,100,1,100,1008,100,16,101,1006,101,0,99"
	prog, err := vm.Parse(text)
	if err != nil {
		t.Fatal(err)
	}
	if s := vm.Format(prog); s != text {
		t.Errorf("expected %s, got %s", text, s)
	}
	if s := vm.Format(nil); s != "" {
		t.Errorf("expected empty string, got %q", s)
	}
}

func TestLoad(t *testing.T) {
	dir, err := os.MkdirTemp("", "intcode")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	name := filepath.Join(dir, "prog.txt")
	if err = os.WriteFile(name, []byte("3,0,4,0,99\n"), 0644); err != nil {
		t.Fatal(err)
	}
	prog, err := vm.Load(name)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if !slices.Equal(prog, []vm.Cell{3, 0, 4, 0, 99}) {
		t.Errorf("unexpected program %v", prog)
	}

	bad := filepath.Join(dir, "bad.txt")
	if err = os.WriteFile(bad, []byte("3,0,x"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err = vm.Load(bad)
	if pe, ok := errors.Cause(err).(*vm.ParseError); !ok || pe.Index != 2 {
		t.Errorf("expected a parse error at field 2, got %v", err)
	}

	if _, err = vm.Load(filepath.Join(dir, "missing")); !os.IsNotExist(errors.Cause(err)) {
		t.Errorf("expected a not exist error, got %v", err)
	}
}
