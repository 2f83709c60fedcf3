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


// The intcode command line tool loads and runs an Intcode program.
//
// Usage:
//
//	intcode [flags] program
//
//	-ascii
//		  ASCII mode: input is text, output values below 128 are written as characters
//	-debug
//		  enable debug diagnostics
//	-dis
//		  disassemble the program and exit
//	-dump
//		  dump memory upon exit
//	-in values
//		  comma separated values to send as input before anything else (can be specified multiple times)
//	-raw
//		  in ASCII mode, switch the terminal to raw IO
//	-set addr=value
//		  set memory address addr=value before running (can be specified multiple times)
//	-timeout duration
//		  stop waiting for the program after duration
//	-with filename
//		  Add filename to the input list (can be specified multiple times)
//
// The program file contains comma separated integers.
//
// Input is taken from the -in values, then from the -with files in order of
// appearance on the command line, then from stdin. In ASCII mode, every
// character read is sent to the program as its Unicode code point. Otherwise
// input is read as comma separated integers and, if stdin is a terminal, with a
// line editor. The input is closed once stdin reaches end of file, a program
// waiting for more input will then fail.
//
// Output values are written one per line. In ASCII mode values below 128 are
// written as characters instead.
//
// -debug: will trace every executed instruction and print a full stacktrace
// should the program fail.
//
// -dis: writes a disassembly of the program, see package
// github.com/db47h/intcode/asm for the syntax.
//
// -dump: after the program halts, writes the registers on one line, then the
// memory contents as program text.
//
// -raw: in ASCII mode and with a terminal on stdin, characters are sent to the
// program as soon as they are typed instead of line by line. Use CTRL-D to
// close the input.
//
// -set: patches memory after loading the program. For example, the following
// sets addresses 1 and 2 to 12 and 2 respectively, then prints the final
// memory contents:
//
//	intcode -set 1=12 -set 2=2 -dump input.txt
package main
