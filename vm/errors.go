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
	"strconv"

	"github.com/pkg/errors"
)

// Errors returned by the VM. They are usually wrapped with some context, use
// errors.Cause to get at the actual value.
var (
	ErrUnknownOpcode      = errors.New("unknown opcode")
	ErrInvalidMode        = errors.New("invalid addressing mode")
	ErrInvalidWriteTarget = errors.New("immediate mode used as write target")
	ErrNegativeAddress    = errors.New("negative address")
	ErrChannelClosed      = errors.New("channel closed")
	ErrOverflow           = errors.New("integer overflow")
)

// ParseError is returned when parsing malformed program text.
type ParseError struct {
	Index int    // zero based index of the offending field
	Field string // field text
	Err   error
}

func (e *ParseError) Error() string {
	return "field " + strconv.Itoa(e.Index) + " " + strconv.Quote(e.Field) + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }
