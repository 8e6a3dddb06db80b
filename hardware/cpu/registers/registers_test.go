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

func TestAddCarryOverflow(t *testing.T) {
	r := registers.NewRegister(0x40, "A")

	carry, overflow := r.Add(0x40, false)
	test.Equate(t, r.Value(), 0x80)
	test.Equate(t, carry, false)
	test.Equate(t, overflow, true)

	r.Load(0xff)
	carry, overflow = r.Add(0x01, false)
	test.Equate(t, r.Value(), 0x00)
	test.Equate(t, carry, true)
	test.Equate(t, overflow, false)

	r.Load(0xff)
	carry, _ = r.Add(0x00, true)
	test.Equate(t, r.Value(), 0x00)
	test.Equate(t, carry, true)
}

func TestSubtract(t *testing.T) {
	r := registers.NewRegister(0x40, "A")

	// carry set means no borrow
	carry, _ := r.Subtract(0x41, true)
	test.Equate(t, r.Value(), 0xff)
	test.Equate(t, carry, false)

	r.Load(0x40)
	carry, _ = r.Subtract(0x40, true)
	test.Equate(t, r.Value(), 0x00)
	test.Equate(t, carry, true)
}

func TestShiftsAndRotates(t *testing.T) {
	r := registers.NewRegister(0x81, "A")

	test.Equate(t, r.ASL(), true)
	test.Equate(t, r.Value(), 0x02)

	r.Load(0x81)
	test.Equate(t, r.LSR(), true)
	test.Equate(t, r.Value(), 0x40)

	r.Load(0x80)
	test.Equate(t, r.ROL(true), true)
	test.Equate(t, r.Value(), 0x01)

	r.Load(0x01)
	test.Equate(t, r.ROR(true), true)
	test.Equate(t, r.Value(), 0x80)
}

func TestStackPointerAddress(t *testing.T) {
	sp := registers.NewStackPointer(0xfd)
	test.Equate(t, sp.Address(), 0x01fd)

	// pushes wrap within page $01
	sp.Load(0x00)
	sp.Push()
	test.Equate(t, sp.Address(), 0x01ff)
}

func TestStatusValueRoundTrip(t *testing.T) {
	var sr registers.StatusRegister

	sr.Sign = true
	sr.Carry = true
	sr.DecimalMode = true

	v := sr.Value(false)
	test.Equate(t, v, 0xa9)

	var sr2 registers.StatusRegister
	sr2.FromValue(v)
	test.Equate(t, sr2.Sign, true)
	test.Equate(t, sr2.Carry, true)
	test.Equate(t, sr2.DecimalMode, true)
	test.Equate(t, sr2.Zero, false)

	// the break bit only exists in the pushed value
	test.Equate(t, sr.Value(true), 0xb9)
}
