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
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Parse parses program text: comma separated base 10 integers, with optional
// leading and trailing white space.
//
// The returned error, if not nil, is a *ParseError.
func Parse(text string) ([]Cell, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &ParseError{0, "", errors.New("empty program")}
	}
	fields := strings.Split(text, ",")
	prog := make([]Cell, len(fields))
	for k, f := range fields {
		n, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			if ne, ok := err.(*strconv.NumError); ok {
				err = ne.Err
			}
			return nil, &ParseError{k, f, err}
		}
		prog[k] = Cell(n)
	}
	return prog, nil
}

// ParseReader reads all of r and parses it with Parse.
func ParseReader(r io.Reader) ([]Cell, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read failed")
	}
	return Parse(string(b))
}

// Load loads a program from file fileName.
func Load(fileName string) ([]Cell, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	defer f.Close()
	prog, err := ParseReader(f)
	if err != nil {
		return nil, errors.Wrap(err, fileName)
	}
	return prog, nil
}

// Format returns the program text for prog. It is the inverse of Parse.
func Format(prog []Cell) string {
	var b strings.Builder
	for k, v := range prog {
		if k > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(int64(v), 10))
	}
	return b.String()
}
