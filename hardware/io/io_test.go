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

package io_test

import (
	"testing"

	"github.com/iflan/apple2go/hardware/io"
	"github.com/iflan/apple2go/test"
)

// mockClock stands in for the CPU cycle counter.
type mockClock struct {
	cycles uint64
}

func (c *mockClock) CurrentCycles() uint64 {
	return c.cycles
}

func TestVideoSwitchParity(t *testing.T) {
	clk := &mockClock{}
	p := io.NewIO(clk)

	// power on state is text mode
	test.Equate(t, p.Text(), true)

	// the latch state equals the parity of the address for $c050-$c057:
	// $c050 (graphics) clears TEXT and the odd address $c051 sets it
	p.Read(0x50)
	test.Equate(t, p.Text(), false)
	p.Read(0x51)
	test.Equate(t, p.Text(), true)

	p.Read(0x53)
	test.Equate(t, p.Mixed(), true)
	p.Read(0x52)
	test.Equate(t, p.Mixed(), false)

	p.Read(0x55)
	test.Equate(t, p.Page2(), true)
	p.Read(0x54)
	test.Equate(t, p.Page2(), false)

	p.Read(0x57)
	test.Equate(t, p.Hires(), true)
	p.Read(0x56)
	test.Equate(t, p.Hires(), false)

	// writes behave the same as reads
	p.Write(0x55, 0)
	test.Equate(t, p.Page2(), true)
}

func TestAnnunciators(t *testing.T) {
	clk := &mockClock{}
	p := io.NewIO(clk)

	test.Equate(t, p.Annunciator(0), false)
	p.Read(0x59)
	test.Equate(t, p.Annunciator(0), true)
	p.Read(0x58)
	test.Equate(t, p.Annunciator(0), false)

	p.Read(0x5d)
	test.Equate(t, p.Annunciator(2), true)
}

func TestSpeakerEvents(t *testing.T) {
	clk := &mockClock{}
	p := io.NewIO(clk)

	clk.cycles = 100
	p.Read(0x30)
	clk.cycles = 1200
	p.Read(0x30)

	ev := p.Speaker.ReadEvents()
	test.Equate(t, len(ev), 2)
	test.Equate(t, ev[0].Cycle, uint64(100))
	test.Equate(t, ev[0].Level, true)
	test.Equate(t, ev[1].Cycle, uint64(1200))
	test.Equate(t, ev[1].Level, false)

	// buffer is drained
	test.Equate(t, len(p.Speaker.ReadEvents()), 0)
}

func TestKeyboard(t *testing.T) {
	clk := &mockClock{}
	p := io.NewIO(clk)

	// nothing pressed
	test.Equate(t, p.Read(0x00)&0x80, 0x00)

	p.Keyboard.KeyDown('A')
	test.Equate(t, p.Read(0x00), 0xc1)

	// reading the data register does not clear the strobe
	test.Equate(t, p.Read(0x00), 0xc1)

	// $c010 clears the strobe. any-key-down still set
	test.Equate(t, p.Read(0x10)&0x80, 0x80)
	test.Equate(t, p.Read(0x00), 0x41)

	p.Keyboard.KeyUp()
	test.Equate(t, p.Read(0x10)&0x80, 0x00)
}

func TestKeyBuffer(t *testing.T) {
	clk := &mockClock{}
	p := io.NewIO(clk)

	p.Keyboard.SetKeyBuffer("HI\n")

	test.Equate(t, p.Read(0x00), uint8('H')|0x80)
	p.Read(0x10)
	test.Equate(t, p.Read(0x00), uint8('I')|0x80)
	p.Read(0x10)
	test.Equate(t, p.Read(0x00), uint8(0x0d)|0x80)
	p.Read(0x10)
	test.Equate(t, p.Read(0x00)&0x80, 0x00)
}

func TestPaddleTimer(t *testing.T) {
	clk := &mockClock{}
	p := io.NewIO(clk)

	p.Paddles.SetPosition(0, 0.5)
	p.Paddles.SetPosition(1, 1.0)

	clk.cycles = 1000
	p.Read(0x70)

	// both timers running immediately after the strobe
	test.Equate(t, p.Read(0x64), 0x80)
	test.Equate(t, p.Read(0x65), 0x80)

	// paddle 0 expires at 1408 cycles, paddle 1 at 2816
	clk.cycles = 1000 + 1500
	test.Equate(t, p.Read(0x64), 0x00)
	test.Equate(t, p.Read(0x65), 0x80)

	clk.cycles = 1000 + 2900
	test.Equate(t, p.Read(0x65), 0x00)
}

func TestButtons(t *testing.T) {
	clk := &mockClock{}
	p := io.NewIO(clk)

	test.Equate(t, p.Read(0x61), 0x00)
	p.Paddles.ButtonDown(0)
	test.Equate(t, p.Read(0x61), 0x80)
	test.Equate(t, p.Read(0x62), 0x00)
	p.Paddles.ButtonUp(0)
	test.Equate(t, p.Read(0x61), 0x00)
}

func TestKHz(t *testing.T) {
	clk := &mockClock{}
	p := io.NewIO(clk)

	test.Equate(t, p.KHz(), 1023)
	p.UpdateKHz(4092)
	test.Equate(t, p.KHz(), 4092)

	// invalid values are ignored
	p.UpdateKHz(0)
	test.Equate(t, p.KHz(), 4092)
}

// slot dispatch is exercised through a stub device.
type stubDevice struct {
	lastRead  int
	lastWrite int
	lastValue uint8
}

func (d *stubDevice) ReadDevice(offset uint8) uint8 {
	d.lastRead = int(offset)
	return 0x42
}

func (d *stubDevice) WriteDevice(offset uint8, v uint8) {
	d.lastWrite = int(offset)
	d.lastValue = v
}

func TestSlotDispatch(t *testing.T) {
	clk := &mockClock{}
	p := io.NewIO(clk)

	dev := &stubDevice{}
	p.AttachSlot(6, dev)

	// slot 6 device selects are $c0e0-$c0ef
	test.Equate(t, p.Read(0xe3), 0x42)
	test.Equate(t, dev.lastRead, 3)

	p.Write(0xef, 0x99)
	test.Equate(t, dev.lastWrite, 15)
	test.Equate(t, dev.lastValue, 0x99)

	// unattached slots float high
	test.Equate(t, p.Read(0xf0), 0xff)
}
