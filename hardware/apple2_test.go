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

package hardware_test

import (
	"strings"
	"testing"

	"github.com/iflan/apple2go/hardware"
	"github.com/iflan/apple2go/test"
)

// testROM builds a 12K system ROM with a program at $f000 and the reset
// vector pointing at it.
func testROM(program []uint8) []uint8 {
	rom := make([]uint8, 0x3000)

	copy(rom[0x2000:], program)

	// reset vector at $fffc
	rom[0x2ffc] = 0x00
	rom[0x2ffd] = 0xf0

	return rom
}

// a program that writes 'A' to the top of the text screen, beeps, and
// spins.
var screenAndBeep = []uint8{
	0xa9, 0xc1, //       LDA #$c1
	0x8d, 0x00, 0x04, // STA $0400
	0x8d, 0x30, 0xc0, // STA $c030
	0x8d, 0x30, 0xc0, // STA $c030
	0x4c, 0x0b, 0xf0, // JMP $f00b
}

func TestIIPlusPowerOn(t *testing.T) {
	a, err := hardware.NewApple2(hardware.Options{
		Model:     hardware.IIPlus,
		SystemROM: testROM(screenAndBeep),
	})
	test.ExpectSuccess(t, err)

	a.Reset()
	test.Equate(t, a.CPU.PC.Address(), 0xf000)

	a.StepCycles(100)

	// the program wrote to the text page through the bus
	test.Equate(t, a.Bus.Read(0x0400), 0xc1)

	// and toggled the speaker twice
	ev := a.IO.Speaker.ReadEvents()
	test.Equate(t, len(ev), 2)
	test.Equate(t, ev[1].Cycle > ev[0].Cycle, true)

	// the frame renders the character. clear the rest of the text page to
	// spaces first - the test ROM has no firmware to do it
	for addr := uint16(0x0401); addr <= 0x07ff; addr++ {
		a.Bus.Write(addr, 0xa0)
	}
	a.AdvanceFrame(0)
	text := strings.Split(a.Screen.GetText(), "\n")
	test.Equate(t, text[0], "A")

	stats := a.GetStats()
	test.Equate(t, stats.Frames, uint64(1))
	test.Equate(t, stats.RenderedFrames, uint64(1))
}

func TestIIeSoftSwitchesThroughBus(t *testing.T) {
	a, err := hardware.NewApple2(hardware.Options{
		Model:     hardware.IIe,
		Enhanced:  true,
		SystemROM: testROM(screenAndBeep),
	})
	test.ExpectSuccess(t, err)

	// video switch parity property, driven through the full bus
	for _, sw := range []struct {
		addr uint16
		on   bool
	}{
		{0xc050, false}, {0xc051, true},
		{0xc057, true}, {0xc056, false},
	} {
		a.Bus.Read(sw.addr)
	}
	test.Equate(t, a.IO.Text(), true)
	test.Equate(t, a.IO.Hires(), false)

	// aux memory is reachable through the bank switches
	a.Bus.Write(0x1000, 0x11)
	a.Bus.Write(0xc005, 0) // RAMWRT on
	a.Bus.Write(0x1000, 0x22)
	a.Bus.Write(0xc004, 0)
	test.Equate(t, a.Bus.Read(0x1000), 0x11)
	a.Bus.Write(0xc003, 0) // RAMRD on
	test.Equate(t, a.Bus.Read(0x1000), 0x22)
	a.Bus.Write(0xc002, 0)
}

func TestKeyboardEcho(t *testing.T) {
	// a program that polls the keyboard and stores every key to the text
	// page: LDA $c000; BPL -5; STA $0400; LDA $c010; JMP $f000
	program := []uint8{
		0xad, 0x00, 0xc0, // LDA $c000
		0x10, 0xfb, //       BPL $f000
		0x8d, 0x00, 0x04, // STA $0400
		0xad, 0x10, 0xc0, // LDA $c010
		0x4c, 0x00, 0xf0, // JMP $f000
	}

	a, err := hardware.NewApple2(hardware.Options{
		Model:     hardware.IIPlus,
		SystemROM: testROM(program),
	})
	test.ExpectSuccess(t, err)
	a.Reset()

	a.IO.Keyboard.SetKeyBuffer("B")
	a.StepCycles(200)

	// the key arrives with the strobe in bit 7
	test.Equate(t, a.Bus.Read(0x0400), uint8('B')|0x80)
}

func TestSnapshotRoundTrip(t *testing.T) {
	// a counting program touching RAM and registers
	program := []uint8{
		0xe8,             // INX
		0xe6, 0x80,       // INC $80
		0x4c, 0x00, 0xf0, // JMP $f000
	}

	a, err := hardware.NewApple2(hardware.Options{
		Model:     hardware.IIPlus,
		SystemROM: testROM(program),
	})
	test.ExpectSuccess(t, err)
	a.Reset()
	a.StepCycles(1000)

	s := a.GetState()

	a.StepCycles(1000)
	after1 := a.CPU.GetState()
	zp1 := a.Bus.Read(0x0080)

	// restore rewinds RAM and registers
	test.ExpectSuccess(t, a.SetState(s))
	test.Equate(t, a.Bus.Read(0x0080) == zp1, false)

	a.StepCycles(1000)
	after2 := a.CPU.GetState()

	test.Equate(t, after2.PC, after1.PC)
	test.Equate(t, after2.X, after1.X)
	test.Equate(t, after2.Cycles, after1.Cycles)
	test.Equate(t, a.Bus.Read(0x0080), zp1)
}

func TestSnapshotVersionMismatch(t *testing.T) {
	a, err := hardware.NewApple2(hardware.Options{
		Model:     hardware.IIPlus,
		SystemROM: testROM(screenAndBeep),
	})
	test.ExpectSuccess(t, err)
	a.Reset()
	a.StepCycles(50)

	before := a.CPU.GetState()

	s := a.GetState()
	s.Version = 99
	test.ExpectFailure(t, a.SetState(s))

	// prior state retained
	test.Equate(t, a.CPU.GetState().PC, before.PC)
}

func TestRunAndStop(t *testing.T) {
	a, err := hardware.NewApple2(hardware.Options{
		Model:     hardware.IIPlus,
		SystemROM: testROM(screenAndBeep),
	})
	test.ExpectSuccess(t, err)
	a.Reset()

	frames := 0
	err = a.Run(func() (bool, error) {
		frames++
		return frames < 3, nil
	})
	test.ExpectSuccess(t, err)
	test.Equate(t, frames, 3)
	test.Equate(t, a.Running(), false)
	test.Equate(t, a.GetStats().Frames, uint64(3))
}
