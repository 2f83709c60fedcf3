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
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

type flusher interface {
	Flush() error
}

func newRuneReader(r io.Reader) io.RuneReader {
	if rr, ok := r.(io.RuneReader); ok {
		return rr
	}
	return bufio.NewReader(r)
}

// FeedRunes sends the runes read from r to q, one Cell per rune, until r
// reaches EOF. It returns nil on EOF.
func FeedRunes(q *Queue, r io.Reader) error {
	rr := newRuneReader(r)
	for {
		c, _, err := rr.ReadRune()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return errors.Wrap(err, "read failed")
		}
		if err = q.Send(Cell(c)); err != nil {
			return err
		}
	}
}

// FeedValues reads program text formatted values from r, one or more per line,
// and sends them to q until r reaches EOF. Blank lines are skipped.
func FeedValues(q *Queue, r io.Reader) error {
	s := bufio.NewScanner(r)
	line := 0
	for s.Scan() {
		line++
		t := strings.TrimSpace(s.Text())
		if t == "" {
			continue
		}
		v, err := Parse(t)
		if err != nil {
			return errors.Wrapf(err, "line %d", line)
		}
		if err = q.Send(v...); err != nil {
			return err
		}
	}
	return errors.Wrap(s.Err(), "read failed")
}

// CopyOutput writes the values received from q to w until q is closed, one
// value per line. If ascii is true, values in the ASCII range are written as
// characters instead. If w implements Flush() error, it is flushed after
// every new line.
//
// CopyOutput returns nil when q is closed.
func CopyOutput(w io.Writer, q *Queue, ascii bool) error {
	var b [utf8.UTFMax + 24]byte
	f, _ := w.(flusher)
	for {
		v, err := q.Recv()
		if err != nil {
			if err == ErrChannelClosed {
				return nil
			}
			return err
		}
		p := b[:0]
		if ascii && v >= 0 && v < utf8.RuneSelf {
			p = append(p, byte(v))
		} else {
			p = strconv.AppendInt(p, int64(v), 10)
			p = append(p, '\n')
		}
		if _, err = w.Write(p); err != nil {
			return errors.Wrap(err, "write failed")
		}
		if f != nil && p[len(p)-1] == '\n' {
			if err = f.Flush(); err != nil {
				return errors.Wrap(err, "flush failed")
			}
		}
	}
}
