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

// renderHires draws hires scan lines first to last from the selected page.
//
// Each of the 40 bytes in a line carries 7 pixels plus a half pixel phase
// bit in bit 7. The color of a lone pixel depends on its horizontal parity
// and the phase bit of its byte; adjacent pixels fuse to white. This is the
// usual approximation of NTSC artifact color.
func (scr *Screen) renderHires(fb *Framebuffer, page2 bool, first, last int, ms modeState) bool {
	base := hiresPage1
	if page2 {
		base = hiresPage2
	}

	// with 80STORE and HIRES both set, PAGE2 redirects the first hires
	// page to the auxiliary bank
	aux := displayAux(ms, page2, true)

	dirty := scr.hiresDirty(page2)
	drawn := false

	var bits [280]bool
	var shift [280]bool

	for line := first; line <= last; line++ {
		if !dirty.get(line) {
			continue
		}
		drawn = true

		offset := uint16(((line & 7) << 10) | (((line >> 3) & 7) << 7) | ((line >> 6) * 0x28))

		for col := 0; col < 40; col++ {
			v := scr.peek(base+offset+uint16(col), aux)
			ph := v&0x80 == 0x80
			for b := 0; b < 7; b++ {
				x := col*7 + b
				bits[x] = v&(1<<b) != 0
				shift[x] = ph
			}
		}

		for x := 0; x < 280; x++ {
			if !bits[x] {
				fb.setDouble(x, line, black)
				continue
			}

			var c Color
			switch {
			case scr.mono:
				c = monoGreen

			case x > 0 && bits[x-1], x < 279 && bits[x+1]:
				// adjacent pixels fuse to white
				c = white

			case x&1 == 0:
				if shift[x] {
					c = blue
				} else {
					c = purple
				}

			default:
				if shift[x] {
					c = orange
				} else {
					c = green
				}
			}

			fb.setDouble(x, line, c)
		}
	}

	return drawn
}
