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
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// Cell is the raw type stored in a memory location.
type Cell int64

// writes farther than denseSlack cells past the end of the dense area go to
// the sparse map.
const denseSlack = 1 << 16

// Memory is the addressable store of an Instance. Reading an address that was
// never written returns 0, writing past the end extends the memory.
//
// Memory keeps a contiguous area starting at address 0 that grows as needed,
// and a sparse map for isolated cells written far beyond that area.
//
// The zero value is an empty memory ready to use.
type Memory struct {
	dense  []Cell
	sparse map[int]Cell
}

// NewMemory returns a Memory initialized with a copy of the given cells at
// addresses 0 to len(cells)-1.
func NewMemory(cells []Cell) Memory {
	return Memory{dense: slices.Clone(cells)}
}

// Read returns the value at address addr. Unset and negative addresses read as
// 0.
func (m *Memory) Read(addr int) Cell {
	if addr < 0 {
		return 0
	}
	if addr < len(m.dense) {
		return m.dense[addr]
	}
	return m.sparse[addr]
}

// Write sets the value at address addr.
func (m *Memory) Write(addr int, v Cell) error {
	if addr < 0 {
		return errors.Wrapf(ErrNegativeAddress, "write to %d", addr)
	}
	if addr < len(m.dense) {
		m.dense[addr] = v
		return nil
	}
	if addr-len(m.dense) < denseSlack {
		m.grow(addr + 1)
		m.dense[addr] = v
		return nil
	}
	if m.sparse == nil {
		m.sparse = make(map[int]Cell)
	}
	m.sparse[addr] = v
	return nil
}

func (m *Memory) grow(n int) {
	if n <= cap(m.dense) {
		m.dense = m.dense[:n]
	} else {
		c := 2 * cap(m.dense)
		if c < n {
			c = n
		}
		t := make([]Cell, n, c)
		copy(t, m.dense)
		m.dense = t
	}
	for addr, v := range m.sparse {
		if addr < n {
			m.dense[addr] = v
			delete(m.sparse, addr)
		}
	}
}

// Len returns the size of the contiguous area of memory starting at address
// 0. Cells written far beyond it are not counted.
func (m *Memory) Len() int {
	return len(m.dense)
}

// Snapshot returns a copy of the contiguous area of memory.
func (m *Memory) Snapshot() []Cell {
	return slices.Clone(m.dense)
}

// Clone returns a deep copy of m.
func (m *Memory) Clone() Memory {
	c := Memory{dense: slices.Clone(m.dense)}
	if len(m.sparse) > 0 {
		c.sparse = make(map[int]Cell, len(m.sparse))
		for k, v := range m.sparse {
			c.sparse[k] = v
		}
	}
	return c
}
