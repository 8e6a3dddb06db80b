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

package registers_test

import (
	"testing"

	"github.com/iflan/apple2go/hardware/cpu/registers"
	"github.com/iflan/apple2go/test"
)

func TestAddDecimal(t *testing.T) {
	r := registers.NewRegister(0x19, "A")

	carry, _, _, _ := r.AddDecimal(0x03, false)
	test.Equate(t, r.Value(), 0x22)
	test.Equate(t, carry, false)

	r.Load(0x99)
	carry, _, _, _ = r.AddDecimal(0x01, false)
	test.Equate(t, r.Value(), 0x00)
	test.Equate(t, carry, true)

	// carry in adds one
	r.Load(0x10)
	carry, _, _, _ = r.AddDecimal(0x05, true)
	test.Equate(t, r.Value(), 0x16)
	test.Equate(t, carry, false)
}

func TestSubtractDecimal(t *testing.T) {
	r := registers.NewRegister(0x21, "A")

	// carry set means no borrow
	carry, _, _, _ := r.SubtractDecimal(0x03, true)
	test.Equate(t, r.Value(), 0x18)
	test.Equate(t, carry, true)

	r.Load(0x00)
	carry, _, _, _ = r.SubtractDecimal(0x01, true)
	test.Equate(t, r.Value(), 0x99)
	test.Equate(t, carry, false)
}
