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

package video_test

import (
	"strings"
	"testing"

	"github.com/iflan/apple2go/hardware/video"
	"github.com/iflan/apple2go/test"
)

// mockMemory is a flat main/aux memory pair with write marking wired to a
// screen under test.
type mockMemory struct {
	main [0x10000]uint8
	aux  [0x10000]uint8
	scr  *video.Screen
}

func (m *mockMemory) PeekMain(address uint16) uint8 {
	return m.main[address]
}

func (m *mockMemory) PeekAux(address uint16) uint8 {
	return m.aux[address]
}

func (m *mockMemory) write(address uint16, v uint8) {
	m.main[address] = v
	if m.scr != nil {
		m.scr.Mark(address, false)
	}
}

func (m *mockMemory) writeAux(address uint16, v uint8) {
	m.aux[address] = v
	if m.scr != nil {
		m.scr.Mark(address, true)
	}
}

// mockModes is a plain latch set.
type mockModes struct {
	text    bool
	mixed   bool
	page2   bool
	hires   bool
	store80 bool
	col80   bool
	altchar bool
}

func (m *mockModes) Text() bool    { return m.text }
func (m *mockModes) Mixed() bool   { return m.mixed }
func (m *mockModes) Page2() bool   { return m.page2 }
func (m *mockModes) Hires() bool   { return m.hires }
func (m *mockModes) Store80() bool { return m.store80 }
func (m *mockModes) Col80() bool   { return m.col80 }
func (m *mockModes) AltChar() bool { return m.altchar }

func newTestScreen(modes *mockModes) (*video.Screen, *mockMemory) {
	mem := &mockMemory{}
	scr := video.NewScreen(mem, modes, nil)
	mem.scr = scr
	return scr, mem
}

// clearText fills both text pages with the space screen code, the way the
// firmware does at power on.
func clearText(mem *mockMemory) {
	for a := uint16(0x0400); a <= 0x0bff; a++ {
		mem.write(a, 0xa0)
	}
}

func TestLoresColorBars(t *testing.T) {
	modes := &mockModes{text: false, hires: false}
	scr, mem := newTestScreen(modes)

	// sixteen color bars across the top row
	for i := 0; i < 40; i++ {
		n := uint8(i % 16)
		mem.write(0x0400+uint16(i), n|n<<4)
	}

	test.Equate(t, scr.Blit(), true)

	fb := scr.Framebuffer()
	palette := [16]video.Color{}
	for i := 0; i < 16; i++ {
		// block i renders as a solid 14x16 cell starting at x=i*14
		palette[i] = fb.Pixel(i*14, 0)
	}

	// each bar is the same color as the matching palette entry and bars
	// repeat with period 16
	for i := 16; i < 40; i++ {
		test.Equate(t, fb.Pixel(i*14, 0) == palette[i%16], true)
	}

	// black and white at the expected indices
	test.Equate(t, palette[0] == video.Color{0, 0, 0, 0xff}, true)
	test.Equate(t, palette[15] == video.Color{0xff, 0xff, 0xff, 0xff}, true)
}

func TestBlitDirtyTracking(t *testing.T) {
	modes := &mockModes{text: true}
	scr, mem := newTestScreen(modes)

	// first blit renders everything
	test.Equate(t, scr.Blit(), true)

	// nothing changed: nothing to draw
	test.Equate(t, scr.Blit(), false)

	// a single write dirties its row
	mem.write(0x0400, 0xc1)
	test.Equate(t, scr.Blit(), true)
	test.Equate(t, scr.Blit(), false)

	// a latch flip forces a full redraw
	modes.text = false
	test.Equate(t, scr.Blit(), true)
}

func TestGetText(t *testing.T) {
	modes := &mockModes{text: true}
	scr, mem := newTestScreen(modes)
	clearText(mem)

	// "HELLO" in normal (high bit set) screen codes at row 0
	for i, c := range []uint8{'H', 'E', 'L', 'L', 'O'} {
		mem.write(0x0400+uint16(i), c|0x80)
	}

	text := scr.GetText()
	lines := strings.Split(text, "\n")
	test.Equate(t, len(lines), 24)
	test.Equate(t, lines[0], "HELLO")

	// rows are stored interleaved: row 1 lives at $0480
	mem.write(0x0480, 'A'|0x80)
	test.Equate(t, strings.Split(scr.GetText(), "\n")[1], "A")

	// inverse screen codes decode to the same text
	mem.write(0x0400, 0x08) // inverse 'H'
	test.Equate(t, strings.Split(scr.GetText(), "\n")[0], "HELLO")
}

func TestGetTextPage2(t *testing.T) {
	modes := &mockModes{text: true}
	scr, mem := newTestScreen(modes)
	clearText(mem)

	mem.write(0x0400, '1'|0x80)
	mem.write(0x0800, '2'|0x80)
	for a := uint16(0x0400); a <= 0x07ff; a++ {
		mem.writeAux(a, 0xa0)
	}
	mem.writeAux(0x0400, '3'|0x80)

	test.Equate(t, strings.Split(scr.GetText(), "\n")[0], "1")

	modes.page2 = true
	test.Equate(t, strings.Split(scr.GetText(), "\n")[0], "2")

	// with 80STORE set, PAGE2 is a bank switch: page 1 is displayed but
	// its addresses read from the auxiliary bank
	modes.store80 = true
	test.Equate(t, strings.Split(scr.GetText(), "\n")[0], "3")

	modes.page2 = false
	test.Equate(t, strings.Split(scr.GetText(), "\n")[0], "1")
}

func TestStore80Page2AuxDisplay(t *testing.T) {
	// with 80STORE set, PAGE2 selects the bank behind the displayed page 1
	// addresses: main with PAGE2 clear, auxiliary with it set
	modes := &mockModes{text: true, store80: true}
	scr, mem := newTestScreen(modes)
	clearText(mem)
	for a := uint16(0x0400); a <= 0x07ff; a++ {
		mem.writeAux(a, 0xa0)
	}

	mem.write(0x0400, 'M'|0x80)
	mem.writeAux(0x0400, 'A'|0x80)

	test.Equate(t, strings.Split(scr.GetText(), "\n")[0], "M")

	modes.page2 = true
	test.Equate(t, strings.Split(scr.GetText(), "\n")[0], "A")

	// the blitted pixels come from the auxiliary bank too. an inverse
	// space in aux renders a solid cell where main holds a normal space
	mem.writeAux(0x0401, 0x20)
	test.Equate(t, scr.Blit(), true)
	fb := scr.Framebuffer()
	test.Equate(t, fb.Pixel(14, 0) == video.Color{0xff, 0xff, 0xff, 0xff}, true)

	// lores reads the same redirected page
	modes.text = false
	mem.writeAux(0x0400, 0xff)
	test.Equate(t, scr.Blit(), true)
	test.Equate(t, fb.Pixel(0, 0) == video.Color{0xff, 0xff, 0xff, 0xff}, true)
}

func TestStore80Page2AuxHires(t *testing.T) {
	// the hires page follows the redirection only when HIRES is also set
	modes := &mockModes{text: false, hires: true, store80: true, page2: true}
	scr, mem := newTestScreen(modes)

	mem.write(0x2000, 0x00)
	mem.writeAux(0x2000, 0x03)

	test.Equate(t, scr.Blit(), true)
	fb := scr.Framebuffer()

	w := video.Color{0xff, 0xff, 0xff, 0xff}
	test.Equate(t, fb.Pixel(0, 0) == w, true)
	test.Equate(t, fb.Pixel(2, 0) == w, true)
}

func TestHiresPixels(t *testing.T) {
	modes := &mockModes{text: false, hires: true}
	scr, mem := newTestScreen(modes)

	// two adjacent pixels fuse to white
	mem.write(0x2000, 0x03)

	// a lone even pixel with no phase shift is purple
	mem.write(0x2400, 0x04) // line 1, pixel x=2

	test.Equate(t, scr.Blit(), true)
	fb := scr.Framebuffer()

	w := video.Color{0xff, 0xff, 0xff, 0xff}
	test.Equate(t, fb.Pixel(0, 0) == w, true)
	test.Equate(t, fb.Pixel(2, 0) == w, true)

	// line 1 is at framebuffer y=2
	test.Equate(t, fb.Pixel(4, 2) == video.Color{0xdd, 0x22, 0xdd, 0xff}, true)

	// unlit pixel is black
	test.Equate(t, fb.Pixel(20, 0) == video.Color{0, 0, 0, 0xff}, true)
}

func TestMixedMode(t *testing.T) {
	modes := &mockModes{text: false, hires: false, mixed: true}
	scr, mem := newTestScreen(modes)
	clearText(mem)

	// graphics block at the top, text in the bottom four rows
	mem.write(0x0400, 0xff)            // lores white block, row 0
	mem.write(0x0400+0x0250, 'X'|0x80) // text row 20 starts at $0650

	test.Equate(t, scr.Blit(), true)

	fb := scr.Framebuffer()
	test.Equate(t, fb.Pixel(0, 0) == video.Color{0xff, 0xff, 0xff, 0xff}, true)

	lines := strings.Split(scr.GetText(), "\n")
	test.Equate(t, lines[20], "X")
}
