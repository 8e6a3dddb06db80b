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

// renderLores draws lores rows first to last from the selected page. Lores
// shares memory with the text screen: each byte is two stacked 4 scan line
// blocks, low nibble on top, indexing the sixteen color palette.
func (scr *Screen) renderLores(fb *Framebuffer, page2 bool, first, last int, ms modeState) bool {
	base := textPage1
	if page2 {
		base = textPage2
	}

	// lores shares the text page, and the 80STORE bank redirection with it
	aux := displayAux(ms, page2, false)

	dirty := scr.textDirty(page2)
	drawn := false

	for row := first; row <= last; row++ {
		if !dirty.get(row) {
			continue
		}
		drawn = true

		offset := uint16((row%8)<<7 + (row/8)*0x28)

		for col := 0; col < 40; col++ {
			v := scr.peek(base+offset+uint16(col), aux)

			top := scr.monoFilter(loresPalette[v&0x0f])
			bottom := scr.monoFilter(loresPalette[v>>4])

			for y := 0; y < 4; y++ {
				for x := 0; x < 7; x++ {
					fb.setDouble(col*7+x, row*8+y, top)
					fb.setDouble(col*7+x, row*8+4+y, bottom)
				}
			}
		}
	}

	return drawn
}
