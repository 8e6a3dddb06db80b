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

// Package mmu implements the memory management unit of the Apple IIe: the
// language card, auxiliary memory, the 80 column text store and the bank
// switching soft switches that control them.
//
// The MMU is the single page handler for the whole address space. Rather
// than rewriting the bus table on every latch change it branches on latch
// state at each access. This trades a few branches on the hot path for the
// elimination of table mutation, and it makes state snapshots trivial: the
// MMU's own routing state is one bitmask.
package mmu

import (
	"github.com/iflan/apple2go/hardware/bus"
	"github.com/iflan/apple2go/hardware/clocks"
	"github.com/iflan/apple2go/hardware/io"
)

// Switch is a single bank switching latch.
type Switch uint32

// The latches, one bit each. Together with the PAGE2 and HIRES video
// latches of the io package they decide the routing of every address.
const (
	Store80 Switch = 1 << iota // $c000/$c001
	RAMRd                      // $c002/$c003
	RAMWrt                     // $c004/$c005
	IntCXROM                   // $c006/$c007
	AltZP                      // $c008/$c009
	SlotC3ROM                  // $c00a/$c00b
	Col80                      // $c00c/$c00d
	AltChar                    // $c00e/$c00f
	LCBank2                    // $c080-$c08f bit 3 (inverted)
	LCRead                     // $c080-$c08f decode
	LCWrite                    // $c080-$c08f double read decode
	IOUDis                     // $c07e/$c07f
)

// Marker is notified of writes to the display page regions so the video
// renderer can maintain its dirty bitmaps.
type Marker interface {
	Mark(address uint16, aux bool)
}

// langCard is one 16K bank of language card RAM: two 4K banks at
// $d000-$dfff and 8K at $e000-$ffff.
type langCard struct {
	bank1 []uint8
	bank2 []uint8
	high  []uint8
}

func newLangCard() langCard {
	return langCard{
		bank1: make([]uint8, 0x1000),
		bank2: make([]uint8, 0x1000),
		high:  make([]uint8, 0x2000),
	}
}

// MMU is the IIe memory management unit.
type MMU struct {
	clock io.Clock
	io    *io.IO

	switches Switch

	// language card write enable requires two successive reads of an odd
	// switch address. prewrite records the first. it is transient state,
	// not a latch
	prewrite bool

	// main and auxiliary 48K
	main []uint8
	aux  []uint8

	// language card RAM, main and auxiliary
	lcMain langCard
	lcAux  langCard

	// system ROM covering $d000-$ffff (12K)
	rom []uint8

	// internal slot ROM covering $c100-$cfff (3.75K). index 0 of the slice
	// is $c100
	cxROM []uint8

	// per slot ROM at $cs00, 256 bytes each. used when IntCXROM is clear
	slotROM [8][]uint8

	// a card can claim its ROM page with a live handler instead of plain
	// bytes - the smartport card traps instruction fetches this way
	slotHandler [8]bus.PageHandler

	// cycle at which the current frame started. used for the VBL signal
	frameStart uint64

	marker Marker
}

// NewMMU is the preferred method of initialisation for the MMU type. rom is
// the 12K system ROM at $d000. cxROM is the internal ROM at $c100-$cfff and
// may be nil.
func NewMMU(clock io.Clock, ioPage *io.IO, rom []uint8, cxROM []uint8) *MMU {
	m := &MMU{
		clock:  clock,
		io:     ioPage,
		main:   make([]uint8, 0xc000),
		aux:    make([]uint8, 0xc000),
		lcMain: newLangCard(),
		lcAux:  newLangCard(),
		rom:    rom,
		cxROM:  cxROM,
	}
	return m
}

// SetSlotROM installs the 256 byte ROM of a peripheral card at $cs00.
func (m *MMU) SetSlotROM(slot int, rom []uint8) {
	m.slotROM[slot&7] = rom
}

// SetSlotHandler installs a live page handler for a card's ROM page.
func (m *MMU) SetSlotHandler(slot int, h bus.PageHandler) {
	m.slotHandler[slot&7] = h
}

// SetMarker attaches the video dirty bitmap.
func (m *MMU) SetMarker(marker Marker) {
	m.marker = marker
}

// Test returns the state of a latch.
func (m *MMU) Test(sw Switch) bool {
	return m.switches&sw != 0
}

func (m *MMU) set(sw Switch, on bool) {
	if on {
		m.switches |= sw
	} else {
		m.switches &^= sw
	}
}

// Start implements the bus.PageHandler interface. The MMU covers the whole
// address space.
func (m *MMU) Start() uint8 {
	return 0x00
}

// End implements the bus.PageHandler interface.
func (m *MMU) End() uint8 {
	return 0xff
}

// auxZP reports whether zero page, stack and the language card come from
// the auxiliary bank.
func (m *MMU) auxZP() bool {
	return m.Test(AltZP)
}

// auxRead reports whether a read of the given page comes from the auxiliary
// bank. With 80STORE set, PAGE2 takes over the text page - and, with HIRES
// also set, the first hires page - regardless of RAMRD.
func (m *MMU) auxRead(page uint8) bool {
	if m.Test(Store80) {
		if page >= 0x04 && page <= 0x07 {
			return m.io.Page2()
		}
		if m.io.Hires() && page >= 0x20 && page <= 0x3f {
			return m.io.Page2()
		}
	}
	return m.Test(RAMRd)
}

// auxWrite is the write equivalent of auxRead.
func (m *MMU) auxWrite(page uint8) bool {
	if m.Test(Store80) {
		if page >= 0x04 && page <= 0x07 {
			return m.io.Page2()
		}
		if m.io.Hires() && page >= 0x20 && page <= 0x3f {
			return m.io.Page2()
		}
	}
	return m.Test(RAMWrt)
}

// lcRAM returns the language card bank selected by AltZP.
func (m *MMU) lcRAM() *langCard {
	if m.auxZP() {
		return &m.lcAux
	}
	return &m.lcMain
}

// ReadPage implements the bus.PageHandler interface.
func (m *MMU) ReadPage(page uint8, offset uint8) uint8 {
	address := (uint16(page) << 8) | uint16(offset)

	switch {
	case page <= 0x01:
		if m.auxZP() {
			return m.aux[address]
		}
		return m.main[address]

	case page <= 0xbf:
		if m.auxRead(page) {
			return m.aux[address]
		}
		return m.main[address]

	case page == 0xc0:
		return m.readC0(offset)

	case page <= 0xcf:
		return m.readCX(page, offset)

	default:
		// $d000-$ffff: language card or system ROM
		if !m.Test(LCRead) {
			return m.rom[address-0xd000]
		}

		lc := m.lcRAM()
		if page <= 0xdf {
			if m.Test(LCBank2) {
				return lc.bank2[address-0xd000]
			}
			return lc.bank1[address-0xd000]
		}
		return lc.high[address-0xe000]
	}
}

// WritePage implements the bus.PageHandler interface.
func (m *MMU) WritePage(page uint8, offset uint8, v uint8) {
	address := (uint16(page) << 8) | uint16(offset)

	switch {
	case page <= 0x01:
		if m.auxZP() {
			m.aux[address] = v
		} else {
			m.main[address] = v
		}

	case page <= 0xbf:
		aux := m.auxWrite(page)
		if aux {
			m.aux[address] = v
		} else {
			m.main[address] = v
		}
		if m.marker != nil && (page >= 0x04 && page <= 0x0b || page >= 0x20 && page <= 0x5f) {
			m.marker.Mark(address, aux)
		}

	case page == 0xc0:
		m.writeC0(offset, v)

	case page <= 0xcf:
		// slot ROM space is not writable

	default:
		if !m.Test(LCWrite) {
			return
		}

		lc := m.lcRAM()
		if page <= 0xdf {
			if m.Test(LCBank2) {
				lc.bank2[address-0xd000] = v
			} else {
				lc.bank1[address-0xd000] = v
			}
		} else {
			lc.high[address-0xe000] = v
		}
	}
}

// readCX serves $c100-$cfff: internal ROM or peripheral slot ROM depending
// on INTCXROM, with SLOTC3ROM carving out slot 3 alone.
func (m *MMU) readCX(page uint8, offset uint8) uint8 {
	internal := m.Test(IntCXROM)

	if page == 0xc3 && !m.Test(SlotC3ROM) {
		// slot 3 serves internal ROM unless SLOTC3ROM diverts it to the
		// card. the 80 column firmware lives here
		internal = true
	}

	if page >= 0xc8 {
		// expansion ROM space. served from internal ROM when present
		internal = m.cxROM != nil
	}

	if internal {
		if m.cxROM == nil {
			return 0xff
		}
		return m.cxROM[(uint16(page-0xc1)<<8)|uint16(offset)]
	}

	slot := int(page & 0x07)
	if m.slotHandler[slot] != nil {
		return m.slotHandler[slot].ReadPage(page, offset)
	}
	if m.slotROM[slot] == nil {
		return 0xff
	}
	return m.slotROM[slot][offset]
}

// readC0 decodes a read of the soft switch page.
func (m *MMU) readC0(offset uint8) uint8 {
	switch {
	case offset >= 0x11 && offset <= 0x1f:
		return m.readStatus(offset)

	case offset >= 0x80 && offset <= 0x8f:
		m.languageCard(offset, true)
		return 0xa0

	case offset == 0x5e || offset == 0x5f:
		if m.Test(IOUDis) {
			m.io.SetDoubleHires(offset == 0x5e)
			return 0
		}

	case offset == 0x7e:
		if m.Test(IOUDis) {
			return 0x80
		}
		return 0

	case offset == 0x7f:
		if m.io.DoubleHires() {
			return 0x80
		}
		return 0
	}

	// everything else belongs to the io package
	return m.io.Read(offset)
}

// writeC0 decodes a write of the soft switch page.
func (m *MMU) writeC0(offset uint8, v uint8) {
	switch {
	case offset <= 0x0f:
		// bank switch pairs: even clears, odd sets
		on := offset&1 == 1
		switch offset &^ 1 {
		case 0x00:
			m.set(Store80, on)
		case 0x02:
			m.set(RAMRd, on)
		case 0x04:
			m.set(RAMWrt, on)
		case 0x06:
			m.set(IntCXROM, on)
		case 0x08:
			m.set(AltZP, on)
		case 0x0a:
			m.set(SlotC3ROM, on)
		case 0x0c:
			m.set(Col80, on)
		case 0x0e:
			m.set(AltChar, on)
		}

	case offset >= 0x11 && offset <= 0x1f:
		// writes in the status range clear the keyboard strobe
		m.io.Keyboard.ClearStrobe()

	case offset == 0x5e || offset == 0x5f:
		if m.Test(IOUDis) {
			m.io.SetDoubleHires(offset == 0x5e)
		} else {
			m.io.Write(offset, v)
		}

	case offset == 0x7e:
		m.set(IOUDis, false)

	case offset == 0x7f:
		m.set(IOUDis, true)

	case offset >= 0x80 && offset <= 0x8f:
		m.languageCard(offset, false)

	default:
		m.io.Write(offset, v)
	}
}

// languageCard decodes an access to $c080-$c08f. Within the range:
//
//	bit 3 clear selects $d000 bank 2, set selects bank 1
//	bits 0 and 1 equal enables reading RAM, unequal the ROM
//	bit 0 set arms write enable - two successive reads are required
func (m *MMU) languageCard(offset uint8, read bool) {
	m.set(LCBank2, offset&0x08 == 0)
	m.set(LCRead, (offset^(offset>>1))&0x01 == 0)

	if offset&0x01 == 0x01 {
		if read {
			if m.prewrite {
				m.set(LCWrite, true)
			}
			m.prewrite = true
		} else {
			// a write access does not count towards enabling, nor does it
			// revoke an enable already granted
			m.prewrite = false
		}
	} else {
		m.prewrite = false
		m.set(LCWrite, false)
	}
}

// readStatus serves $c011-$c01f: the state of a latch in bit 7 with the
// current key code in the low bits.
func (m *MMU) readStatus(offset uint8) uint8 {
	var on bool

	switch offset {
	case 0x11:
		on = m.Test(LCBank2)
	case 0x12:
		on = m.Test(LCRead)
	case 0x13:
		on = m.Test(RAMRd)
	case 0x14:
		on = m.Test(RAMWrt)
	case 0x15:
		on = m.Test(IntCXROM)
	case 0x16:
		on = m.Test(AltZP)
	case 0x17:
		on = m.Test(SlotC3ROM)
	case 0x18:
		on = m.Test(Store80)
	case 0x19:
		on = m.vbl()
	case 0x1a:
		on = m.io.Text()
	case 0x1b:
		on = m.io.Mixed()
	case 0x1c:
		on = m.io.Page2()
	case 0x1d:
		on = m.io.Hires()
	case 0x1e:
		on = m.Test(AltChar)
	case 0x1f:
		on = m.Test(Col80)
	}

	v := m.io.Keyboard.Data() & 0x7f
	if on {
		v |= 0x80
	}
	return v
}

// vbl reports whether the machine is in the vertical blanking interval. The
// frame clock is reset once per frame boundary by the run loop.
func (m *MMU) vbl() bool {
	elapsed := m.clock.CurrentCycles() - m.frameStart
	return elapsed >= clocks.CyclesPerVisible
}

// ResetVB marks the start of a new frame. Called once per frame by the run
// loop.
func (m *MMU) ResetVB() {
	m.frameStart = m.clock.CurrentCycles()
}

// PeekMain reads main RAM directly, without soft switch side effects. Used
// by the video renderer and the debugger. Addresses above $bfff read the
// language card as currently banked.
func (m *MMU) PeekMain(address uint16) uint8 {
	if address < 0xc000 {
		return m.main[address]
	}
	return m.peekHigh(address)
}

// PeekAux reads auxiliary RAM directly, without soft switch side effects.
func (m *MMU) PeekAux(address uint16) uint8 {
	if address < 0xc000 {
		return m.aux[address]
	}
	return m.peekHigh(address)
}

func (m *MMU) peekHigh(address uint16) uint8 {
	if address < 0xd000 {
		return 0xff
	}
	if !m.Test(LCRead) {
		return m.rom[address-0xd000]
	}
	lc := m.lcRAM()
	if address < 0xe000 {
		if m.Test(LCBank2) {
			return lc.bank2[address-0xd000]
		}
		return lc.bank1[address-0xd000]
	}
	return lc.high[address-0xe000]
}

// Poke writes main RAM directly, without soft switch side effects.
// Addresses at $c000 and above are ignored.
func (m *MMU) Poke(address uint16, v uint8) {
	if address < 0xc000 {
		m.main[address] = v
	}
}
