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

package bus_test

import (
	"testing"

	"github.com/iflan/apple2go/curated"
	"github.com/iflan/apple2go/hardware/bus"
	"github.com/iflan/apple2go/test"
)

func TestReadBack(t *testing.T) {
	b := bus.NewBus()
	test.ExpectSuccess(t, b.AddHandler(bus.NewRAM(0x00, 0xbf)))

	for _, a := range []uint16{0x0000, 0x01ff, 0x0400, 0x2000, 0xbfff} {
		b.Write(a, 0xa5)
		test.Equate(t, b.Read(a), 0xa5)
		b.Write(a, 0x5a)
		test.Equate(t, b.Read(a), 0x5a)
	}
}

func TestUnclaimedPages(t *testing.T) {
	b := bus.NewBus()
	test.ExpectSuccess(t, b.AddHandler(bus.NewRAM(0x00, 0x3f)))

	// floating bus approximation
	test.Equate(t, b.Read(0xd000), 0xff)

	// writes to unclaimed pages are swallowed
	b.Write(0xd000, 0x00)
	test.Equate(t, b.Read(0xd000), 0xff)
}

func TestOverlapIsConstructionError(t *testing.T) {
	b := bus.NewBus()
	test.ExpectSuccess(t, b.AddHandler(bus.NewRAM(0x00, 0x7f)))

	err := b.AddHandler(bus.NewRAM(0x7f, 0xbf))
	test.ExpectFailure(t, err)
	if !curated.Is(err, curated.BusConflict) {
		t.Errorf("expected BusConflict error, got: %v", err)
	}
}

func TestROMSwallowsWrites(t *testing.T) {
	b := bus.NewBus()

	data := make([]uint8, 256)
	data[0x80] = 0x42
	r, err := bus.NewROM(0xff, 0xff, data)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, b.AddHandler(r))

	test.Equate(t, b.Read(0xff80), 0x42)
	b.Write(0xff80, 0x00)
	test.Equate(t, b.Read(0xff80), 0x42)
}

func TestROMLengthMismatch(t *testing.T) {
	_, err := bus.NewROM(0xd0, 0xff, make([]uint8, 0x2fff))
	test.ExpectFailure(t, err)
}
