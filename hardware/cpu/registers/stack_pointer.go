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

package registers

import (
	"fmt"
)

// StackPointer is the 8 bit stack pointer. The stack itself always lives in
// page $01 so the Address() function factors that in.
type StackPointer struct {
	value uint8
}

// NewStackPointer creates a new stack pointer with an initial value.
func NewStackPointer(val uint8) StackPointer {
	return StackPointer{value: val}
}

func (sp StackPointer) String() string {
	return fmt.Sprintf("SP=%#02x", sp.value)
}

// Label returns the canonical name of the stack pointer.
func (sp StackPointer) Label() string {
	return "SP"
}

// Value returns the current value of the stack pointer.
func (sp StackPointer) Value() uint8 {
	return sp.value
}

// Address returns the address in page $01 currently pointed to.
func (sp StackPointer) Address() uint16 {
	return 0x0100 | uint16(sp.value)
}

// Load a value into the stack pointer.
func (sp *StackPointer) Load(val uint8) {
	sp.value = val
}

// Push decrements the stack pointer, wrapping within page $01.
func (sp *StackPointer) Push() {
	sp.value--
}

// Pull increments the stack pointer, wrapping within page $01.
func (sp *StackPointer) Pull() {
	sp.value++
}
