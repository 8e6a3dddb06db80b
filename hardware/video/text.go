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

package video

import (
	"strings"
)

// decode a screen code into the ascii value, inverse flag and flash flag.
// altchar selects the IIe alternate character set, which trades flashing
// for lowercase inverse.
func decodeScreenCode(code uint8, altchar bool) (ascii uint8, inverse bool, flash bool) {
	switch {
	case code >= 0x80:
		ascii = code & 0x7f
	case code >= 0x40:
		if altchar {
			// alternate set: inverse, with lowercase at $60-$7f
			ascii = code & 0x7f
			if ascii < 0x60 {
				ascii = code & 0x3f
				if ascii < 0x20 {
					ascii += 0x40
				}
			}
			inverse = true
		} else {
			ascii = code & 0x3f
			if ascii < 0x20 {
				ascii += 0x40
			}
			flash = true
		}
	default:
		ascii = code & 0x3f
		if ascii < 0x20 {
			ascii += 0x40
		}
		inverse = true
	}

	if ascii < 0x20 {
		ascii += 0x40
	}

	return ascii, inverse, flash
}

// glyph returns the 8 row bitmap for a screen code. bit 0 of each row is
// the leftmost pixel.
func (scr *Screen) glyph(code uint8, altchar bool) (rows [8]uint8, inverse bool) {
	if scr.charROM != nil && int(code)*8+8 <= len(scr.charROM) {
		copy(rows[:], scr.charROM[int(code)*8:int(code)*8+8])
		return rows, false
	}

	ascii, inv, _ := decodeScreenCode(code, altchar)

	// uppercase-only fallback font
	if ascii >= 0x60 {
		ascii -= 0x20
	}

	return fallbackGlyph(ascii), inv
}

// renderText draws text rows first to last from the selected page. In 80
// column mode the auxiliary bank supplies the even screen columns. Returns
// true if any dirty row was redrawn.
func (scr *Screen) renderText(fb *Framebuffer, page2 bool, first, last int, ms modeState) bool {
	base := textPage1
	if page2 {
		base = textPage2
	}

	// with 80STORE set, PAGE2 redirects the displayed page 1 addresses to
	// the auxiliary bank
	aux := displayAux(ms, page2, false)

	dirty := scr.textDirty(page2)
	drawn := false

	fg := white
	if scr.mono {
		fg = monoGreen
	}

	for row := first; row <= last; row++ {
		if !dirty.get(row) {
			continue
		}
		drawn = true

		offset := uint16((row%8)<<7 + (row/8)*0x28)

		for col := 0; col < 40; col++ {
			a := base + offset + uint16(col)
			if ms.col80 {
				// 80 column cells always interleave the two banks
				scr.drawChar(fb, scr.mem.PeekAux(a), col*14, row*16, 7, ms.altchar, fg)
				scr.drawChar(fb, scr.mem.PeekMain(a), col*14+7, row*16, 7, ms.altchar, fg)
			} else {
				scr.drawChar(fb, scr.peek(a, aux), col*14, row*16, 14, ms.altchar, fg)
			}
		}
	}

	return drawn
}

// drawChar draws one character cell. width is the framebuffer width of the
// cell: 14 for 40 column text, 7 for 80 column.
func (scr *Screen) drawChar(fb *Framebuffer, code uint8, x, y, width int, altchar bool, fg Color) {
	rows, inverse := scr.glyph(code, altchar)

	for r := 0; r < 8; r++ {
		bits := rows[r]
		for c := 0; c < 7; c++ {
			on := bits&(1<<c) != 0
			if inverse {
				on = !on
			}

			color := black
			if on {
				color = fg
			}

			if width == 14 {
				fb.SetPixel(x+c*2, y+r*2, color)
				fb.SetPixel(x+c*2+1, y+r*2, color)
				fb.SetPixel(x+c*2, y+r*2+1, color)
				fb.SetPixel(x+c*2+1, y+r*2+1, color)
			} else {
				fb.SetPixel(x+c, y+r*2, color)
				fb.SetPixel(x+c, y+r*2+1, color)
			}
		}
	}
}

// GetText returns the contents of the text screen as a plain string, one
// line per row, trailing spaces trimmed. Useful for clipboard copy and for
// tests.
func (scr *Screen) GetText() string {
	page2 := scr.modes.Page2() && !scr.modes.Store80()
	base := textPage1
	if page2 {
		base = textPage2
	}

	// the 80STORE bank redirection applies here too
	aux := scr.modes.Store80() && scr.modes.Page2()

	col80 := scr.modes.Col80()
	altchar := scr.modes.AltChar()

	var lines []string
	for row := 0; row < 24; row++ {
		offset := uint16((row%8)<<7 + (row/8)*0x28)

		s := strings.Builder{}
		for col := 0; col < 40; col++ {
			a := base + offset + uint16(col)
			if col80 {
				ascii, _, _ := decodeScreenCode(scr.mem.PeekAux(a), altchar)
				s.WriteByte(ascii)
				ascii, _, _ = decodeScreenCode(scr.mem.PeekMain(a), altchar)
				s.WriteByte(ascii)
			} else {
				ascii, _, _ := decodeScreenCode(scr.peek(a, aux), altchar)
				s.WriteByte(ascii)
			}
		}

		lines = append(lines, strings.TrimRight(s.String(), " "))
	}

	return strings.Join(lines, "\n")
}
