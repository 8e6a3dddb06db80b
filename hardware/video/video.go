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

// Package video renders the display memory of the Apple II into a
// framebuffer. The renderer reads the video mode latches at blit time, not
// per pixel: whatever the soft switches say when Blit() is called decides
// how the whole frame is composed.
//
// Writes to display memory arrive as dirty row marks; Blit() redraws only
// dirty rows and reports whether anything changed.
package video

import (
	"github.com/iflan/apple2go/logger"
)

// Memory gives the renderer direct access to display memory, without soft
// switch side effects. Implemented by the mmu package and by the II model
// machine.
type Memory interface {
	PeekMain(address uint16) uint8
	PeekAux(address uint16) uint8
}

// Modes is the set of video mode latches, read at blit time. Implemented by
// the io package (with the machine supplying the IIe additions).
type Modes interface {
	Text() bool
	Mixed() bool
	Page2() bool
	Hires() bool
	Store80() bool
	Col80() bool
	AltChar() bool
}

// display memory bases.
const (
	textPage1  = uint16(0x0400)
	textPage2  = uint16(0x0800)
	hiresPage1 = uint16(0x2000)
	hiresPage2 = uint16(0x4000)
)

// modeState is the snapshot of latches a frame was last composed with. a
// change forces a full redraw.
type modeState struct {
	text    bool
	mixed   bool
	page2   bool
	hires   bool
	store80 bool
	col80   bool
	altchar bool
	mono    bool
}

// Screen composes display memory into framebuffers according to the current
// video mode.
type Screen struct {
	mem   Memory
	modes Modes

	// character generator ROM: 8 bytes per character code, bit 0 leftmost.
	// nil selects the builtin fallback glyphs
	charROM []uint8

	mono  bool
	multi bool

	// the composed display
	fb *Framebuffer

	// one surface per display page, rendered when multi is set:
	// text/lores page 1 and 2, hires page 1 and 2
	pages [4]*Framebuffer

	// dirty rows per display region. text regions use rows 0-23
	dirtyText1  rowset
	dirtyText2  rowset
	dirtyHires1 rowset
	dirtyHires2 rowset

	last  modeState
	first bool
}

// NewScreen is the preferred method of initialisation for the Screen type.
// charROM may be nil, in which case a builtin glyph set is used.
func NewScreen(mem Memory, modes Modes, charROM []uint8) *Screen {
	scr := &Screen{
		mem:     mem,
		modes:   modes,
		charROM: charROM,
		fb:      NewFramebuffer(),
		first:   true,
	}

	if charROM == nil {
		logger.Log("video", "no character ROM, using builtin glyphs")
	}

	return scr
}

// Framebuffer returns the composed display. The contents are valid from a
// Blit() that returned true until the next emulation step.
func (scr *Screen) Framebuffer() *Framebuffer {
	return scr.fb
}

// PageFramebuffer returns the surface for one of the four display pages.
// Only rendered when MultiScreen is enabled. n is 0 to 3: text page 1 and
// 2, then hires page 1 and 2.
func (scr *Screen) PageFramebuffer(n int) *Framebuffer {
	return scr.pages[n&3]
}

// Redraw marks every row of every region dirty, forcing the next Blit()
// to compose the whole frame. Used after a state restore.
func (scr *Screen) Redraw() {
	scr.allDirty()
}

// Mono switches the monochrome post filter on or off.
func (scr *Screen) Mono(on bool) {
	scr.mono = on
}

// MultiScreen switches rendering of all four display pages into separate
// surfaces. Intended for debugging.
func (scr *Screen) MultiScreen(on bool) {
	scr.multi = on
	if on {
		for i := range scr.pages {
			if scr.pages[i] == nil {
				scr.pages[i] = NewFramebuffer()
			}
		}
	}
}

// Mark records a write to display memory. address must be within one of the
// display page regions. Implements the mmu.Marker interface.
func (scr *Screen) Mark(address uint16, aux bool) {
	switch {
	case address >= 0x0400 && address <= 0x07ff:
		scr.dirtyText1.set(textRow(address - 0x0400))
	case address >= 0x0800 && address <= 0x0bff:
		scr.dirtyText2.set(textRow(address - 0x0800))
	case address >= 0x2000 && address <= 0x3fff:
		scr.dirtyHires1.set(hiresRow(address - 0x2000))
	case address >= 0x4000 && address <= 0x5fff:
		scr.dirtyHires2.set(hiresRow(address - 0x4000))
	}
}

func (scr *Screen) snapshotModes() modeState {
	return modeState{
		text:    scr.modes.Text(),
		mixed:   scr.modes.Mixed(),
		page2:   scr.modes.Page2(),
		hires:   scr.modes.Hires(),
		store80: scr.modes.Store80(),
		col80:   scr.modes.Col80(),
		altchar: scr.modes.AltChar(),
		mono:    scr.mono,
	}
}

func (scr *Screen) allDirty() {
	scr.dirtyText1.all()
	scr.dirtyText2.all()
	scr.dirtyHires1.all()
	scr.dirtyHires2.all()
}

// Blit composes the framebuffer from display memory. Returns true if any
// pixel changed, i.e. if any dirty row intersected the current display.
// Dirty bits are cleared afterwards.
func (scr *Screen) Blit() bool {
	ms := scr.snapshotModes()
	if scr.first || ms != scr.last {
		scr.allDirty()
		scr.last = ms
		scr.first = false
	}

	// PAGE2 selects the display page - unless 80STORE has repurposed it as
	// a bank switch, in which case page 1 is always displayed and PAGE2
	// instead selects which bank the page 1 addresses read from (the
	// renderers make that choice through displayAux)
	page2 := ms.page2 && !ms.store80

	drawn := false

	if ms.text {
		drawn = scr.renderText(scr.fb, page2, 0, 23, ms) || drawn
	} else {
		// graphics rows, with the bottom four text rows in mixed mode
		if ms.hires {
			lines := 192
			if ms.mixed {
				lines = 160
			}
			drawn = scr.renderHires(scr.fb, page2, 0, lines-1, ms) || drawn
		} else {
			rows := 24
			if ms.mixed {
				rows = 20
			}
			drawn = scr.renderLores(scr.fb, page2, 0, rows-1, ms) || drawn
		}
		if ms.mixed {
			drawn = scr.renderText(scr.fb, page2, 20, 23, ms) || drawn
		}
	}

	if scr.multi {
		scr.renderPages(ms)
	}

	// clear the dirty bits of the regions that fed the display. regions not
	// currently displayed keep their marks for when the mode flips back
	if ms.text || ms.mixed {
		if page2 {
			scr.dirtyText2.clear()
		} else {
			scr.dirtyText1.clear()
		}
	}
	if !ms.text {
		if ms.hires {
			if page2 {
				scr.dirtyHires2.clear()
			} else {
				scr.dirtyHires1.clear()
			}
		} else {
			if page2 {
				scr.dirtyText2.clear()
			} else {
				scr.dirtyText1.clear()
			}
		}
	}

	return drawn
}

// renderPages renders all four display pages into their own surfaces.
func (scr *Screen) renderPages(ms modeState) {
	if scr.dirtyText1.any() {
		scr.renderText(scr.pages[0], false, 0, 23, ms)
	}
	if scr.dirtyText2.any() {
		scr.renderText(scr.pages[1], true, 0, 23, ms)
	}
	if scr.dirtyHires1.any() {
		scr.renderHires(scr.pages[2], false, 0, 191, ms)
	}
	if scr.dirtyHires2.any() {
		scr.renderHires(scr.pages[3], true, 0, 191, ms)
	}
}

// textDirty returns the dirty rowset for a text page.
func (scr *Screen) textDirty(page2 bool) *rowset {
	if page2 {
		return &scr.dirtyText2
	}
	return &scr.dirtyText1
}

// hiresDirty returns the dirty rowset for a hires page.
func (scr *Screen) hiresDirty(page2 bool) *rowset {
	if page2 {
		return &scr.dirtyHires2
	}
	return &scr.dirtyHires1
}

// displayAux reports whether the displayed page 1 region reads from the
// auxiliary bank: with 80STORE set, PAGE2 redirects the text page - and,
// with HIRES also set, the first hires page - to auxiliary, regardless of
// RAMRD/RAMWRT. The redirection never applies to the page 2 addresses.
func displayAux(ms modeState, page2 bool, hires bool) bool {
	if page2 || !ms.store80 || !ms.page2 {
		return false
	}
	return !hires || ms.hires
}

// peek reads display memory from the selected bank.
func (scr *Screen) peek(address uint16, aux bool) uint8 {
	if aux {
		return scr.mem.PeekAux(address)
	}
	return scr.mem.PeekMain(address)
}

// monoFilter converts a color to the green phosphor equivalent.
func (scr *Screen) monoFilter(c Color) Color {
	if !scr.mono {
		return c
	}

	// luminance weighted towards green
	lum := (int(c[0])*3 + int(c[1])*6 + int(c[2])) / 10
	return Color{0, uint8(lum), 0, 0xff}
}
