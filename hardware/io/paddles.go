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

package io

// fullScaleCycles is the discharge time of a paddle at full deflection.
// The value is empirical - it matches the timing loop in the firmware
// PREAD routine against reference software.
const fullScaleCycles = 2816

// Paddles implements the game controller inputs: the four paddle timers at
// $c064-$c067, the timer strobe at $c070 and the three buttons at
// $c061-$c063.
//
// A paddle is a variable resistor charging a capacitor. The strobe
// discharges all four capacitors; each timer then reads "still charging"
// (bit 7 set) until a time proportional to the paddle position has passed.
type Paddles struct {
	clock Clock

	// position of each paddle in the range 0 to 1
	position [4]float64

	// cycle at which the strobe last fired
	strobed uint64

	buttons [3]bool
}

// NewPaddles is the preferred method of initialisation for the Paddles
// type.
func NewPaddles(clock Clock) *Paddles {
	p := &Paddles{clock: clock}

	// centre the paddles
	for i := range p.position {
		p.position[i] = 0.5
	}
	return p
}

// SetPosition sets the position of a paddle. v is clamped to 0 to 1.
func (p *Paddles) SetPosition(n int, v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	p.position[n&3] = v
}

// ButtonDown asserts one of the buttons.
func (p *Paddles) ButtonDown(n int) {
	p.buttons[n%3] = true
}

// ButtonUp releases one of the buttons.
func (p *Paddles) ButtonUp(n int) {
	p.buttons[n%3] = false
}

// Button services a read of $c061-$c063.
func (p *Paddles) Button(n int) uint8 {
	if p.buttons[n%3] {
		return 0x80
	}
	return 0
}

// Strobe services an access to $c070, starting the one-shot timers.
func (p *Paddles) Strobe() {
	p.strobed = p.clock.CurrentCycles()
}

// Timer services a read of $c064+n. Bit 7 is set while the one-shot is
// still running.
func (p *Paddles) Timer(n int) uint8 {
	elapsed := p.clock.CurrentCycles() - p.strobed
	if float64(elapsed) < p.position[n&3]*fullScaleCycles {
		return 0x80
	}
	return 0
}
