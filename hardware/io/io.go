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

// Package io implements the memory mapped I/O surface of the Apple II: the
// soft switches at $c000-$c0ff. Accessing a soft switch - reading or writing
// - toggles or reports a hardware latch. The package owns the keyboard
// register, the speaker, the paddle timers, the cassette interface, the
// annunciators and the video mode latches.
//
// On the II and II+ the package claims the whole of page $c0 on the bus. On
// the IIe the MMU claims the page and delegates the addresses it does not
// decode itself.
package io

import (
	"github.com/iflan/apple2go/hardware/clocks"
)

// Clock is the source of the current CPU cycle count. Implemented by the
// cpu package.
type Clock interface {
	CurrentCycles() uint64
}

// SlotDevice is a peripheral card responding to the sixteen device select
// addresses of its slot ($c080+slot*16).
type SlotDevice interface {
	ReadDevice(offset uint8) uint8
	WriteDevice(offset uint8, v uint8)
}

// IO is the I/O page handler.
type IO struct {
	clock Clock

	Keyboard *Keyboard
	Speaker  *Speaker
	Paddles  *Paddles
	Cassette *Cassette

	// video mode latches. read by the video package at blit time
	text  bool
	mixed bool
	page2 bool
	hires bool

	// double hires latch, gated by IOUDIS on the IIe
	dhires bool

	annunciators [4]bool

	// target clock rate in kHz. consulted by the run loop
	khz int

	slots [8]SlotDevice
}

// NewIO is the preferred method of initialisation for the IO type.
func NewIO(clock Clock) *IO {
	io := &IO{
		clock:    clock,
		Keyboard: NewKeyboard(),
		Speaker:  NewSpeaker(clock),
		Paddles:  NewPaddles(clock),
		Cassette: NewCassette(clock),
		khz:      clocks.StandardKHz,

		// the machine powers up in text mode
		text: true,
	}
	return io
}

// AttachSlot installs a peripheral card in a slot. slot must be in the
// range 1 to 7.
func (io *IO) AttachSlot(slot int, dev SlotDevice) {
	io.slots[slot] = dev
}

// Start implements the bus.PageHandler interface.
func (io *IO) Start() uint8 {
	return 0xc0
}

// End implements the bus.PageHandler interface.
func (io *IO) End() uint8 {
	return 0xc0
}

// ReadPage implements the bus.PageHandler interface.
func (io *IO) ReadPage(page uint8, offset uint8) uint8 {
	return io.Read(offset)
}

// WritePage implements the bus.PageHandler interface.
func (io *IO) WritePage(page uint8, offset uint8, v uint8) {
	io.Write(offset, v)
}

// Read a soft switch. offset is the low byte of the address in page $c0.
func (io *IO) Read(offset uint8) uint8 {
	switch {
	case offset < 0x10:
		// $c000: keyboard data and strobe
		return io.Keyboard.Data()

	case offset < 0x20:
		// $c010: clear keyboard strobe. the IIe also reports any-key-down
		// in bit 7
		return io.Keyboard.ClearStrobe()

	case offset < 0x30:
		// $c020: cassette output toggle
		io.Cassette.ToggleOutput()
		return 0

	case offset < 0x40:
		// $c030: speaker toggle
		io.Speaker.Toggle()
		return 0

	case offset >= 0x50 && offset <= 0x5f:
		io.videoSwitch(offset)
		return 0

	case offset == 0x60:
		// $c060: cassette input
		return io.Cassette.Input()

	case offset >= 0x61 && offset <= 0x63:
		return io.Paddles.Button(int(offset - 0x61))

	case offset >= 0x64 && offset <= 0x67:
		return io.Paddles.Timer(int(offset - 0x64))

	case offset >= 0x70 && offset <= 0x7f:
		io.Paddles.Strobe()
		return 0

	case offset >= 0x80:
		slot := int(offset-0x80) >> 4
		if io.slots[slot] != nil {
			return io.slots[slot].ReadDevice(offset & 0x0f)
		}
	}

	// unconnected locations float high
	return 0xff
}

// Write a soft switch. Most soft switches respond to the address alone - the
// value written is immaterial.
func (io *IO) Write(offset uint8, v uint8) {
	switch {
	case offset < 0x20:
		if offset >= 0x10 {
			// writes to $c010 clear the strobe too
			io.Keyboard.ClearStrobe()
		}

	case offset < 0x30:
		io.Cassette.ToggleOutput()

	case offset < 0x40:
		io.Speaker.Toggle()

	case offset >= 0x50 && offset <= 0x5f:
		io.videoSwitch(offset)

	case offset >= 0x70 && offset <= 0x7f:
		io.Paddles.Strobe()

	case offset >= 0x80:
		slot := int(offset-0x80) >> 4
		if io.slots[slot] != nil {
			io.slots[slot].WriteDevice(offset&0x0f, v)
		}
	}
}

// videoSwitch decodes $c050-$c05f. The latch value is the parity of the
// address: even clears, odd sets.
func (io *IO) videoSwitch(offset uint8) {
	on := offset&1 == 1

	switch offset &^ 1 {
	case 0x50:
		// GRAPHICS/TEXT: $c050 clears TEXT (graphics), $c051 sets it
		io.text = on

	case 0x52:
		io.mixed = on

	case 0x54:
		io.page2 = on

	case 0x56:
		io.hires = on

	default:
		// $c058-$c05f: annunciators
		io.annunciators[(offset>>1)&3] = on
	}
}

// Text returns the state of the TEXT latch.
func (io *IO) Text() bool { return io.text }

// Mixed returns the state of the MIXED latch.
func (io *IO) Mixed() bool { return io.mixed }

// Page2 returns the state of the PAGE2 latch.
func (io *IO) Page2() bool { return io.page2 }

// Hires returns the state of the HIRES latch.
func (io *IO) Hires() bool { return io.hires }

// DoubleHires returns the state of the DHIRES latch.
func (io *IO) DoubleHires() bool { return io.dhires }

// SetDoubleHires is used by the MMU when IOUDIS gates $c05e/$c05f.
func (io *IO) SetDoubleHires(on bool) { io.dhires = on }

// Annunciator returns the state of one of the four annunciator outputs.
func (io *IO) Annunciator(n int) bool {
	return io.annunciators[n&3]
}

// UpdateKHz sets the target clock frequency in kHz. The run loop uses the
// value to compute the cycle budget per tick. Non-positive values are
// ignored.
func (io *IO) UpdateKHz(khz int) {
	if khz <= 0 {
		return
	}
	io.khz = khz
}

// KHz returns the target clock frequency in kHz.
func (io *IO) KHz() int {
	return io.khz
}

// State packs the latches that belong to the io package. The keyboard
// strobe, paddle timers and speaker level are deliberately excluded - they
// are transient by nature.
type State struct {
	Text         bool
	Mixed        bool
	Page2        bool
	Hires        bool
	DHires       bool
	Annunciators [4]bool
	KHz          int
}

// GetState returns a snapshot of the latches.
func (io *IO) GetState() State {
	return State{
		Text:         io.text,
		Mixed:        io.mixed,
		Page2:        io.page2,
		Hires:        io.hires,
		DHires:       io.dhires,
		Annunciators: io.annunciators,
		KHz:          io.khz,
	}
}

// SetState restores the latches from a snapshot.
func (io *IO) SetState(s State) {
	io.text = s.Text
	io.mixed = s.Mixed
	io.page2 = s.Page2
	io.hires = s.Hires
	io.dhires = s.DHires
	io.annunciators = s.Annunciators
	if s.KHz > 0 {
		io.khz = s.KHz
	}
}
