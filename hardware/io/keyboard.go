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

// Keyboard implements the keyboard register at $c000 and the strobe clear
// at $c010. Keys arrive either from host key events (KeyDown/KeyUp) or from
// a queued string (SetKeyBuffer) typed one character per strobe clear.
type Keyboard struct {
	current uint8
	strobe  bool
	keyDown bool

	buffer []uint8
}

// NewKeyboard is the preferred method of initialisation for the Keyboard
// type.
func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// KeyDown asserts a key. code is the 7 bit Apple key code.
func (k *Keyboard) KeyDown(code uint8) {
	k.current = code & 0x7f
	k.strobe = true
	k.keyDown = true
}

// KeyUp releases the currently held key. The strobe remains set until the
// program clears it through $c010.
func (k *Keyboard) KeyUp() {
	k.keyDown = false
}

// SetKeyBuffer queues a string of keystrokes. Each clear of the strobe
// presents the next character. Newlines map to carriage return, which is
// what the monitor's line input expects.
func (k *Keyboard) SetKeyBuffer(text string) {
	k.buffer = k.buffer[:0]
	for _, r := range text {
		c := uint8(r)
		if c == '\n' {
			c = '\r'
		}
		k.buffer = append(k.buffer, c)
	}
	if !k.strobe {
		k.advance()
	}
}

func (k *Keyboard) advance() {
	if len(k.buffer) == 0 {
		return
	}
	k.current = k.buffer[0] & 0x7f
	k.buffer = k.buffer[1:]
	k.strobe = true
}

// Data returns the value of the keyboard register at $c000: the key code in
// the low seven bits with the strobe in bit 7.
func (k *Keyboard) Data() uint8 {
	v := k.current
	if k.strobe {
		v |= 0x80
	}
	return v
}

// ClearStrobe services an access to $c010. Returns any-key-down in bit 7
// (a IIe feature; reads as 0 on the II where the bit is unconnected but no
// software depends on the difference).
func (k *Keyboard) ClearStrobe() uint8 {
	k.strobe = false

	// feed the next buffered keystroke, if any
	k.advance()

	if k.keyDown {
		return 0x80 | k.current
	}
	return k.current
}
