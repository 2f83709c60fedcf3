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


package asm

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"
	"unicode/utf8"

	"github.com/db47h/intcode/vm"
)

// Assemble stops after that many errors.
const maxErrors = 10

// Error is a single assembly error.
type Error struct {
	Pos scanner.Position
	Msg string
}

func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// ErrAsm is the error type returned by Assemble. It contains one entry per
// error found in the source, in order of appearance.
type ErrAsm []Error

func (e ErrAsm) Error() string {
	s := make([]string, len(e))
	for i := range e {
		s[i] = e[i].Error()
	}
	return strings.Join(s, "\n")
}

// labels and directives may start with ':' or '.', digits are not allowed in
// first position since they would be indistinguishable from integer operands.
func isIdentRune(ch rune, i int) bool {
	return ch == '_' || unicode.IsLetter(ch) || i > 0 && unicode.IsDigit(ch) || i == 0 && (ch == ':' || ch == '.')
}

type use struct {
	pos  scanner.Position
	addr int
}

type label struct {
	pos  scanner.Position
	addr int // -1 until defined
	uses []use
}

type parser struct {
	s      scanner.Scanner
	tok    rune
	text   string
	pos    scanner.Position
	prog   []vm.Cell
	labels map[string]*label
	errs   ErrAsm
}

func newParser(name string, r io.Reader) *parser {
	p := &parser{labels: make(map[string]*label)}
	p.s.Init(r)
	p.s.Filename = name
	p.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanChars | scanner.ScanStrings | scanner.ScanRawStrings | scanner.ScanComments | scanner.SkipComments
	p.s.IsIdentRune = isIdentRune
	p.s.Error = func(s *scanner.Scanner, msg string) {
		p.error(s.Position, "%s", msg)
	}
	p.next()
	return p
}

func (p *parser) next() {
	p.tok = p.s.Scan()
	p.text = p.s.TokenText()
	p.pos = p.s.Position
}

func (p *parser) error(pos scanner.Position, format string, args ...interface{}) {
	if len(p.errs) >= maxErrors {
		return
	}
	if !pos.IsValid() {
		pos = p.s.Pos()
	}
	p.errs = append(p.errs, Error{pos, fmt.Sprintf(format, args...)})
}

func (p *parser) unexpected(what string) {
	if p.tok == scanner.EOF {
		p.error(p.pos, "expected %s, got end of file", what)
		return
	}
	p.error(p.pos, "expected %s, got %q", what, p.text)
}

func (p *parser) emit(v ...vm.Cell) {
	p.prog = append(p.prog, v...)
}

func (p *parser) parse() ([]vm.Cell, error) {
	for p.tok != scanner.EOF && len(p.errs) < maxErrors {
		p.statement()
	}
	p.resolve()
	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return p.prog, nil
}

// skipLine skips the remaining tokens on the given line.
func (p *parser) skipLine(line int) {
	for p.tok != scanner.EOF && p.pos.Line == line {
		p.next()
	}
}

func (p *parser) statement() {
	pos, text, nerr := p.pos, p.text, len(p.errs)
	defer func() {
		if len(p.errs) > nerr {
			p.skipLine(pos.Line)
		}
	}()
	if p.tok != scanner.Ident {
		p.unexpected("instruction, label or directive")
		return
	}
	p.next()
	switch {
	case text[0] == ':':
		p.define(pos, text[1:])
	case text == ".dat":
		p.data()
	case text[0] == '.':
		p.error(pos, "unknown directive %s", text)
	default:
		op, ok := mnemonics[text]
		if !ok {
			p.error(pos, "unknown instruction %s", text)
			return
		}
		p.instruction(pos, op)
	}
}

func (p *parser) define(pos scanner.Position, name string) {
	if name == "" {
		p.error(pos, "empty label name")
		return
	}
	if r, _ := utf8.DecodeRuneInString(name); !unicode.IsLetter(r) && r != '_' {
		p.error(pos, "invalid label name %s", name)
		return
	}
	l := p.labels[name]
	switch {
	case l == nil:
		p.labels[name] = &label{pos: pos, addr: len(p.prog)}
	case l.addr >= 0:
		p.error(pos, "label %s redefined, previous definition here: %s", name, l.pos)
	default:
		l.pos, l.addr = pos, len(p.prog)
	}
}

func (p *parser) instruction(pos scanner.Position, op vm.Opcode) {
	n, _ := op.Args()
	at := len(p.prog)
	p.emit(vm.Cell(op))
	scale := vm.Cell(100)
	for k := 0; k < n; k++ {
		if k > 0 {
			if p.tok != ',' {
				p.error(pos, "%v takes %d operands, got %d", op, n, k)
				return
			}
			p.next()
		}
		m, ok := p.operand()
		if !ok {
			return
		}
		p.prog[at] += vm.Cell(m) * scale
		scale *= 10
	}
}

// operand parses an optionally prefixed operand and emits its value.
func (p *parser) operand() (vm.Mode, bool) {
	m := vm.Position
	switch p.tok {
	case '#':
		m = vm.Immediate
		p.next()
	case '~':
		m = vm.Relative
		p.next()
	}
	return m, p.value()
}

// value parses an integer, character literal or label reference and emits the
// corresponding cell.
func (p *parser) value() bool {
	neg := false
	if p.tok == '-' {
		neg = true
		p.next()
	}
	switch p.tok {
	case scanner.Int:
		text := p.text
		if neg {
			text = "-" + text
		}
		v, err := strconv.ParseInt(text, 0, 64)
		if err != nil {
			p.error(p.pos, "invalid integer %s: %v", text, err.(*strconv.NumError).Err)
			p.next()
			return false
		}
		p.emit(vm.Cell(v))
	case scanner.Char:
		if len(p.text) < 3 {
			p.error(p.pos, "invalid character literal %s", p.text)
			p.next()
			return false
		}
		r, _, _, err := strconv.UnquoteChar(p.text[1:len(p.text)-1], '\'')
		if err != nil {
			p.error(p.pos, "invalid character literal %s", p.text)
			p.next()
			return false
		}
		if neg {
			r = -r
		}
		p.emit(vm.Cell(r))
	case scanner.Ident:
		if neg || p.text[0] == ':' || p.text[0] == '.' {
			p.unexpected("operand")
			return false
		}
		p.use(p.text)
		p.emit(0)
	default:
		p.unexpected("operand")
		return false
	}
	p.next()
	return true
}

func (p *parser) use(name string) {
	l := p.labels[name]
	if l == nil {
		l = &label{pos: p.pos, addr: -1}
		p.labels[name] = l
	}
	l.uses = append(l.uses, use{p.pos, len(p.prog)})
}

// data parses the comma separated value list of a .dat directive. Strings emit
// one cell per rune.
func (p *parser) data() {
	for {
		if p.tok == scanner.String || p.tok == scanner.RawString {
			s, err := strconv.Unquote(p.text)
			if err != nil {
				p.error(p.pos, "invalid string literal %s", p.text)
			}
			for _, r := range s {
				p.emit(vm.Cell(r))
			}
			p.next()
		} else if !p.value() {
			return
		}
		if p.tok != ',' {
			return
		}
		p.next()
	}
}

func (p *parser) resolve() {
	names := make([]string, 0, len(p.labels))
	for n := range p.labels {
		names = append(names, n)
	}
	// report undefined labels in source order
	sort.Slice(names, func(i, j int) bool {
		return p.labels[names[i]].pos.Offset < p.labels[names[j]].pos.Offset
	})
	for _, n := range names {
		l := p.labels[n]
		if l.addr < 0 {
			p.error(l.uses[0].pos, "undefined label %s", n)
			continue
		}
		for _, u := range l.uses {
			p.prog[u.addr] = vm.Cell(l.addr)
		}
	}
}
