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

// Package hardware is the machine: the CPU, the bus and everything hanging
// off it, assembled into an Apple II+ or IIe.
package hardware

import (
	"github.com/iflan/apple2go/curated"
	"github.com/iflan/apple2go/hardware/bus"
	"github.com/iflan/apple2go/hardware/cpu"
	"github.com/iflan/apple2go/hardware/cpu/instructions"
	"github.com/iflan/apple2go/hardware/disk"
	"github.com/iflan/apple2go/hardware/io"
	"github.com/iflan/apple2go/hardware/mmu"
	"github.com/iflan/apple2go/hardware/smartport"
	"github.com/iflan/apple2go/hardware/video"
)

// Model selects the machine being emulated.
type Model int

// The supported machine models.
const (
	IIPlus Model = iota
	IIe
)

// Options are the construction inputs of a machine.
type Options struct {
	Model Model

	// Enhanced selects the 65C02 on the IIe. Ignored for the II+.
	Enhanced bool

	// SystemROM is the 12K ROM at $d000-$ffff. Required for anything
	// useful to happen on reset.
	SystemROM []uint8

	// CXROM is the IIe internal ROM at $c100-$cfff. May be nil.
	CXROM []uint8

	// CharacterROM is the character generator: 8 bytes per code. May be
	// nil, in which case builtin glyphs are used.
	CharacterROM []uint8

	// MultiScreen renders all four display pages into separate surfaces.
	MultiScreen bool

	// Mono renders in monochrome.
	Mono bool

	// Tick, if set, is called at the end of every frame.
	Tick func()
}

// Stats counts frames. Both counters are monotonic.
type Stats struct {
	Frames         uint64
	RenderedFrames uint64
}

// Apple2 is the machine.
type Apple2 struct {
	CPU    *cpu.CPU
	Bus    *bus.Bus
	IO     *io.IO
	MMU    *mmu.MMU // nil on the II+
	Screen *video.Screen
	Disk   *disk.DiskII

	// the block device card. created on demand by SetBinary
	SmartPort *smartport.SmartPort

	opts  Options
	stats Stats

	// II+ model memory, nil on the IIe
	ram []*bus.RAM

	running bool
}

// memView adapts the II+ RAM handlers to the video.Memory interface.
type memView struct {
	ram []*bus.RAM
}

func (m *memView) PeekMain(address uint16) uint8 {
	page := uint8(address >> 8)
	for _, r := range m.ram {
		if page >= r.Start() && page <= r.End() {
			return r.ReadPage(page, uint8(address))
		}
	}
	return 0xff
}

func (m *memView) PeekAux(address uint16) uint8 {
	// no auxiliary memory on the II+
	return 0xff
}

// modeView adapts the io latches (and the MMU's IIe additions) to the
// video.Modes interface.
type modeView struct {
	io *io.IO
	m  *mmu.MMU
}

func (mv *modeView) Text() bool  { return mv.io.Text() }
func (mv *modeView) Mixed() bool { return mv.io.Mixed() }
func (mv *modeView) Page2() bool { return mv.io.Page2() }
func (mv *modeView) Hires() bool { return mv.io.Hires() }

func (mv *modeView) Store80() bool {
	return mv.m != nil && mv.m.Test(mmu.Store80)
}

func (mv *modeView) Col80() bool {
	return mv.m != nil && mv.m.Test(mmu.Col80)
}

func (mv *modeView) AltChar() bool {
	return mv.m != nil && mv.m.Test(mmu.AltChar)
}

// NewApple2 is the preferred method of initialisation for the Apple2 type.
func NewApple2(opts Options) (*Apple2, error) {
	a := &Apple2{
		opts: opts,
		Bus:  bus.NewBus(),
	}

	model := instructions.NMOS
	if opts.Model == IIe && opts.Enhanced {
		model = instructions.CMOS
	}
	a.CPU = cpu.NewCPU(model, a.Bus)

	a.IO = io.NewIO(a.CPU)
	a.Disk = disk.NewDiskII(a.CPU)
	a.IO.AttachSlot(6, a.Disk)

	switch opts.Model {
	case IIe:
		if err := a.buildIIe(); err != nil {
			return nil, err
		}
	default:
		if err := a.buildIIPlus(); err != nil {
			return nil, err
		}
	}

	a.Screen.MultiScreen(opts.MultiScreen)
	a.Screen.Mono(opts.Mono)

	return a, nil
}

// buildIIe installs the MMU as the single handler for the whole address
// space.
func (a *Apple2) buildIIe() error {
	rom := a.opts.SystemROM
	if rom == nil {
		rom = make([]uint8, 0x3000)
	}
	if len(rom) != 0x3000 {
		return curated.Errorf("hardware: %v",
			curated.Errorf("system ROM must be 12K, got %d bytes", len(rom)))
	}

	a.MMU = mmu.NewMMU(a.CPU, a.IO, rom, a.opts.CXROM)
	if err := a.Bus.AddHandler(a.MMU); err != nil {
		return err
	}

	a.Screen = video.NewScreen(a.MMU, &modeView{io: a.IO, m: a.MMU}, a.opts.CharacterROM)
	a.MMU.SetMarker(a.Screen)

	return nil
}

// buildIIPlus composes the address space from discrete handlers: RAM, the
// watched display regions, the I/O page and the system ROM.
func (a *Apple2) buildIIPlus() error {
	rom := a.opts.SystemROM
	if rom == nil {
		rom = make([]uint8, 0x3000)
	}

	// RAM in five ranges, the display page regions separated so they can
	// be watched
	low := bus.NewRAM(0x00, 0x03)
	text := bus.NewRAM(0x04, 0x0b)
	mid := bus.NewRAM(0x0c, 0x1f)
	hires := bus.NewRAM(0x20, 0x5f)
	high := bus.NewRAM(0x60, 0xbf)
	a.ram = []*bus.RAM{low, text, mid, hires, high}

	view := &memView{ram: a.ram}
	a.Screen = video.NewScreen(view, &modeView{io: a.IO}, a.opts.CharacterROM)

	for _, h := range []bus.PageHandler{
		low,
		video.NewWatcher(text, a.Screen),
		mid,
		video.NewWatcher(hires, a.Screen),
		high,
		a.IO,
	} {
		if err := a.Bus.AddHandler(h); err != nil {
			return err
		}
	}

	sysrom, err := bus.NewROM(0xd0, 0xff, rom)
	if err != nil {
		return err
	}
	return a.Bus.AddHandler(sysrom)
}

// SetSlotROM installs a peripheral card boot ROM at $cs00. On the II+ the
// page must still be free on the bus.
func (a *Apple2) SetSlotROM(slot int, rom []uint8) error {
	if a.MMU != nil {
		a.MMU.SetSlotROM(slot, rom)
		return nil
	}

	r, err := bus.NewROM(uint8(0xc0+slot), uint8(0xc0+slot), rom)
	if err != nil {
		return err
	}
	return a.Bus.AddHandler(r)
}

// SetBinary mounts a disk or block image. Images of 800K and larger go to
// the SmartPort card in slot 7, everything else to the Disk II in slot 6.
// Returns false if the image is not recognised.
func (a *Apple2) SetBinary(drive int, name string, ext string, data []uint8) bool {
	if len(data) >= 800*1024 {
		if a.SmartPort == nil {
			sp := smartport.NewSmartPort(7, a.CPU)
			sp.Plumb(a.Bus)
			if a.MMU != nil {
				a.MMU.SetSlotHandler(7, sp)
			} else if err := a.Bus.AddHandler(sp); err != nil {
				return false
			}
			a.SmartPort = sp
		}
		return a.SmartPort.SetBinary(name, ext, data)
	}

	return a.Disk.SetBinary(drive, name, ext, data)
}

// Reset asserts the hardware reset line: serviced synchronously, as if at
// an instruction boundary. Safe to call while stopped or running.
func (a *Apple2) Reset() {
	a.CPU.Reset()
}

// GetStats returns the frame counters.
func (a *Apple2) GetStats() Stats {
	return a.stats
}
