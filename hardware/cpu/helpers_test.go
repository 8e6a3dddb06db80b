// This file is part of Apple2Go.
//
// Apple2Go is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Apple2Go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Apple2Go.  If not, see <https://www.gnu.org/licenses/>.

package cpu_test

import (
	"testing"
)

// mockMem is a flat 64K memory with no mapped hardware. good enough for
// exercising every addressing mode and opcode.
type mockMem struct {
	internal []uint8
}

func newMockMem() *mockMem {
	mem := &mockMem{
		internal: make([]uint8, 0x10000),
	}
	return mem
}

// putInstructions places a sequence of bytes into memory, returning the
// address of the byte after the last one written.
func (mem *mockMem) putInstructions(origin uint16, bytes ...uint8) uint16 {
	for i, b := range bytes {
		mem.Write(uint16(i)+origin, b)
	}
	return origin + uint16(len(bytes))
}

func (mem *mockMem) assert(t *testing.T, address uint16, value uint8) {
	t.Helper()
	if mem.internal[address] != value {
		t.Errorf("memory assertion failed (%#02x - wanted %#02x at address %#04x)",
			mem.internal[address], value, address)
	}
}

func (mem *mockMem) clear() {
	for i := range mem.internal {
		mem.internal[i] = 0
	}
}

func (mem *mockMem) Read(address uint16) uint8 {
	return mem.internal[address]
}

func (mem *mockMem) Write(address uint16, data uint8) {
	mem.internal[address] = data
}
