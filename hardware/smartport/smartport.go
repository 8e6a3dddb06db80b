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

// Package smartport implements a block device for hard disk sized images:
// the ProDOS block device protocol served from a slot firmware page.
//
// There is no 6502 firmware. The card's ROM page is a page handler and the
// driver entry point is a trap: when the CPU fetches the instruction at the
// entry offset the block operation runs at once - parameters read from the
// zero page parameter list, data moved through the bus - and the fetch
// returns an RTS.
package smartport

import (
	"encoding/binary"
	"strings"

	"github.com/iflan/apple2go/hardware/cpu"
	"github.com/iflan/apple2go/logger"
)

// the ProDOS block device parameter list in zero page.
const (
	paramCommand = uint16(0x42)
	paramUnit    = uint16(0x43)
	paramBuffer  = uint16(0x44)
	paramBlock   = uint16(0x46)
)

// block device commands.
const (
	cmdStatus = iota
	cmdRead
	cmdWrite
	cmdFormat
)

// ProDOS error codes.
const (
	errNone = 0x00
	errIO   = 0x27
	errWP   = 0x2b
)

// BlockBytes is the ProDOS block size.
const BlockBytes = 512

// minImageBytes is the threshold below which an image belongs in the Disk
// II drive instead.
const minImageBytes = 800 * 1024

// offsets within the firmware page.
const (
	bootEntry   = uint8(0x00)
	driverEntry = uint8(0x42)
)

// SmartPort is the block device card. It claims its slot's ROM page on the
// bus, conventionally slot 7 (page $c7).
type SmartPort struct {
	slot int
	mc   *cpu.CPU
	mem  Memory

	rom [256]uint8

	name     string
	ext      string
	data     []uint8
	readOnly bool
	dirty    bool
}

// NewSmartPort is the preferred method of initialisation for the SmartPort
// type. The CPU is needed to return results through the register file.
func NewSmartPort(slot int, mc *cpu.CPU) *SmartPort {
	sp := &SmartPort{
		slot: slot,
		mc:   mc,
	}

	// the ProDOS block device signature bytes, and the driver entry
	// point in $cnff
	sp.rom[0x01] = 0x20
	sp.rom[0x03] = 0x00
	sp.rom[0x05] = 0x03
	sp.rom[0x07] = 0x3c
	sp.rom[0xfe] = 0x97 // status byte: two volumes, read/write capable
	sp.rom[0xff] = driverEntry

	// every other location reads as RTS so a stray call returns cleanly
	for i := 0x08; i < 0xfe; i++ {
		sp.rom[i] = 0x60
	}

	return sp
}

// Memory is the bus access the card uses for block transfers and the
// parameter list.
type Memory interface {
	Read(address uint16) uint8
	Write(address uint16, v uint8)
}

// Plumb gives the card its bus connection. Kept separate from construction
// because the machine builds the bus after its cards.
func (sp *SmartPort) Plumb(mem Memory) {
	sp.mem = mem
}

// SetBinary mounts a block image. ext is po, hdv or 2mg. Images smaller
// than 800K are rejected - they belong in a Disk II drive.
func (sp *SmartPort) SetBinary(name string, ext string, data []uint8) bool {
	payload := data

	switch strings.ToLower(ext) {
	case "po", "hdv":
		// plain block image

	case "2mg":
		if len(data) < 64 || string(data[0:4]) != "2IMG" {
			return false
		}
		offset := binary.LittleEndian.Uint32(data[0x18:])
		length := binary.LittleEndian.Uint32(data[0x1c:])
		if int(offset)+int(length) > len(data) {
			return false
		}
		payload = data[offset : offset+length]

	default:
		return false
	}

	if len(payload) < minImageBytes || len(payload)%BlockBytes != 0 {
		logger.Logf("smartport", "image rejected (%s.%s, %d bytes)", name, ext, len(payload))
		return false
	}

	sp.name = name
	sp.ext = strings.ToLower(ext)
	sp.data = make([]uint8, len(payload))
	copy(sp.data, payload)
	sp.dirty = false

	logger.Logf("smartport", "%s.%s (%d blocks)", name, sp.ext, len(sp.data)/BlockBytes)

	return true
}

// GetBinary returns the mounted image including any blocks written.
func (sp *SmartPort) GetBinary() []uint8 {
	if sp.data == nil {
		return nil
	}
	out := make([]uint8, len(sp.data))
	copy(out, sp.data)
	return out
}

// Mounted reports whether an image is present.
func (sp *SmartPort) Mounted() bool {
	return sp.data != nil
}

// Dirty reports whether any block has been written since mount.
func (sp *SmartPort) Dirty() bool {
	return sp.dirty
}

// Start implements the bus.PageHandler interface: the card ROM page.
func (sp *SmartPort) Start() uint8 {
	return uint8(0xc0 + sp.slot)
}

// End implements the bus.PageHandler interface.
func (sp *SmartPort) End() uint8 {
	return uint8(0xc0 + sp.slot)
}

// ReadPage implements the bus.PageHandler interface. Fetching the driver
// or boot entry performs the block operation and returns RTS.
func (sp *SmartPort) ReadPage(page uint8, offset uint8) uint8 {
	switch offset {
	case driverEntry:
		sp.service()
		return 0x60

	case bootEntry:
		sp.boot()
		return 0x60
	}

	return sp.rom[offset]
}

// WritePage implements the bus.PageHandler interface.
func (sp *SmartPort) WritePage(page uint8, offset uint8, v uint8) {
	// ROM
}

func (sp *SmartPort) result(err uint8) {
	sp.mc.A.Load(err)
	sp.mc.Status.Carry = err != errNone
	sp.mc.Status.Zero = err == errNone
}

// service executes one ProDOS block device call with the parameter list at
// $42-$47.
func (sp *SmartPort) service() {
	if sp.mem == nil || sp.data == nil {
		sp.result(errIO)
		return
	}

	command := sp.mem.Read(paramCommand)
	buffer := uint16(sp.mem.Read(paramBuffer)) | uint16(sp.mem.Read(paramBuffer+1))<<8
	block := int(sp.mem.Read(paramBlock)) | int(sp.mem.Read(paramBlock+1))<<8

	blocks := len(sp.data) / BlockBytes

	switch command {
	case cmdStatus:
		sp.mc.X.Load(uint8(blocks))
		sp.mc.Y.Load(uint8(blocks >> 8))
		sp.result(errNone)

	case cmdRead:
		if block >= blocks {
			sp.result(errIO)
			return
		}
		for i := 0; i < BlockBytes; i++ {
			sp.mem.Write(buffer+uint16(i), sp.data[block*BlockBytes+i])
		}
		sp.result(errNone)

	case cmdWrite:
		if block >= blocks {
			sp.result(errIO)
			return
		}
		if sp.readOnly {
			sp.result(errWP)
			return
		}
		for i := 0; i < BlockBytes; i++ {
			sp.data[block*BlockBytes+i] = sp.mem.Read(buffer + uint16(i))
		}
		sp.dirty = true
		sp.result(errNone)

	case cmdFormat:
		if sp.readOnly {
			sp.result(errWP)
			return
		}
		for i := range sp.data {
			sp.data[i] = 0
		}
		sp.dirty = true
		sp.result(errNone)

	default:
		sp.result(errIO)
	}
}

// boot loads block 0 to $0800 and arranges for the RTS that follows to
// land on the boot code, with X holding the unit number as the boot block
// expects.
func (sp *SmartPort) boot() {
	if sp.mem == nil || sp.data == nil {
		sp.result(errIO)
		return
	}

	for i := 0; i < BlockBytes; i++ {
		sp.mem.Write(0x0800+uint16(i), sp.data[i])
	}

	sp.mc.X.Load(uint8(sp.slot << 4))

	// push $0800 so the RTS continues at $0801
	sp.mem.Write(sp.mc.SP.Address(), 0x08)
	sp.mc.SP.Push()
	sp.mem.Write(sp.mc.SP.Address(), 0x00)
	sp.mc.SP.Push()

	sp.result(errNone)
}
