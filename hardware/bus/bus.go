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

// Package bus implements the address bus of the Apple II. The 64K address
// space is divided into 256 pages of 256 bytes and every page is owned by
// at most one PageHandler; an unclaimed page reads $ff and ignores writes.
// Dispatch is a single table lookup on the high byte
// of the address.
//
// Handlers are installed at construction and never removed. Machines that
// re-route pages at runtime (the IIe) install a single handler covering the
// whole address space and branch internally; see the mmu package.
package bus

import (
	"github.com/iflan/apple2go/curated"
)

// PageHandler is implemented by anything that owns a contiguous range of
// 256-byte pages.
type PageHandler interface {
	// Start and End are the first and last page numbers claimed by the
	// handler. Both are inclusive.
	Start() uint8
	End() uint8

	// ReadPage and WritePage access a byte within a claimed page. offset is
	// the low byte of the address.
	ReadPage(page uint8, offset uint8) uint8
	WritePage(page uint8, offset uint8, v uint8)
}

// Bus maps the 16-bit address space onto page handlers.
type Bus struct {
	handlers [256]PageHandler
}

// NewBus is the preferred method of initialisation for the Bus type.
func NewBus() *Bus {
	return &Bus{}
}

// AddHandler claims the pages Start()..End() for the handler. Overlapping
// claims are an error - there is no legitimate reason for two handlers to
// want the same page and a conflict always indicates a construction bug.
func (b *Bus) AddHandler(h PageHandler) error {
	start := h.Start()
	end := h.End()

	if end < start {
		return curated.Errorf(curated.BusConflict, "handler page range is inverted")
	}

	for p := int(start); p <= int(end); p++ {
		if b.handlers[p] != nil {
			return curated.Errorf(curated.BusConflict,
				curated.Errorf("page %#02x claimed twice", p))
		}
	}
	for p := int(start); p <= int(end); p++ {
		b.handlers[p] = h
	}

	return nil
}

// Read a byte from the bus. Unclaimed pages read $ff - an approximation of
// the floating bus.
func (b *Bus) Read(address uint16) uint8 {
	h := b.handlers[address>>8]
	if h == nil {
		return 0xff
	}
	return h.ReadPage(uint8(address>>8), uint8(address))
}

// Write a byte to the bus. Writes to unclaimed pages are swallowed.
func (b *Bus) Write(address uint16, v uint8) {
	h := b.handlers[address>>8]
	if h == nil {
		return
	}
	h.WritePage(uint8(address>>8), uint8(address), v)
}
