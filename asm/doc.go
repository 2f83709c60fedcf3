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


// Package asm provides utility functions to assemble and disassemble Intcode
// programs.
//
// Supported assembler mnemonics:
//
//	opcode	asm	alias	args	description
//	------	---	-----	----	------------------------------------------------------------
//	1	add		a, b, c	c = a + b
//	2	mul		a, b, c	c = a * b
//	3	in		a	read the next input value and store it at a
//	4	out		a	output a
//	5	jnz	jt	a, b	jump to b if a != 0
//	6	jz	jf	a, b	jump to b if a == 0
//	7	lt		a, b, c	c = 1 if a < b, else c = 0
//	8	eq		a, b, c	c = 1 if a == b, else c = 0
//	9	arb	rbo	a	add a to the relative base
//	99	hlt	halt		halt
//
// Operands are separated by commas. Each operand takes an optional prefix
// selecting its addressing mode:
//
//	42	position mode: the value at address 42
//	#42	immediate mode: the value 42
//	~42	relative mode: the value at address relative base + 42
//
// An operand value is a Go integer literal (see strconv.ParseInt), a character
// literal or a label name. Immediate mode is not allowed as a write target at
// run time, but the assembler does not check it.
//
// Labels:
//
// Labels are defined by prefixing them with a colon (:) and referenced without
// the colon. A label reference is replaced by the address of its definition.
// Forward references are ok:
//
//	:loop	in x
//		jz x, #end	// jump to end if the input is 0
//		out x
//		jnz #1, #loop
//	:end	hlt
//	:x	.dat 0
//
// Label names must start with a letter or an underscore and may contain
// letters, digits and underscores. Labels may share their name with a
// mnemonic.
//
// Comments:
//
// Comments are Go style, either line comments starting with // or general
// comments between /* and */.
//
// Assembler directives:
//
//	.dat <value>[, <value>...]
//
// compiles the specified values as-is. Values are integers, character
// literals, label names or Go string literals. Strings compile to one cell per
// rune:
//
//	:msg	.dat "hello", 10, 0
//	:ptr	.dat msg
package asm
