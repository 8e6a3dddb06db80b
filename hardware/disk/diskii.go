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

// Package disk emulates the Disk II controller and its two drives: the
// stepper motor phases, the read/write latch and the synthesis of nibble
// track streams from sectorized disk images.
package disk

import (
	"github.com/iflan/apple2go/hardware/io"
	"github.com/iflan/apple2go/logger"
)

// quarter track range: 35 tracks of 4 quarter tracks.
const maxQuarterTrack = 139

// cyclesPerNibble is the time one nibble spends under the head: 4us per
// bit, 8 bits, at roughly 1MHz.
const cyclesPerNibble = 32

// Drive is one of the two drives attached to the controller.
type Drive struct {
	// quarter track position of the head arm, 0 to 139
	track int

	// byte offset into the current track's nibble stream
	head int

	// the nibble stream per track. for sectorized and nib images the
	// slice is indexed by whole track; woz images index by quarter track
	// through trackMap
	tracks [][]uint8

	// trackMap maps a quarter track to an index into tracks. nil for non
	// woz images, where the mapping is track/4
	trackMap []int

	name         string
	ext          string
	format       Format
	volume       uint8
	writeProtect bool

	// dirty is set when any track has been written since load
	dirty      bool
	trackDirty []bool

	// original container bytes for formats we return verbatim (2mg, woz)
	container []uint8
}

// Metadata describes the image mounted in a drive.
type Metadata struct {
	Name     string
	Ext      string
	ReadOnly bool
	Dirty    bool
}

// DiskII is the controller card. It implements the io.SlotDevice interface
// and is conventionally installed in slot 6.
type DiskII struct {
	clock io.Clock

	drives [2]*Drive
	sel    int

	motorOn bool

	// the q6/q7 switch pair: q7 selects write mode, q6 selects the latch
	// function
	q6 bool
	q7 bool

	latch uint8

	// the last energised stepper phase
	phase int

	// cycle bookkeeping for the nibble clock
	lastCycles uint64
	spare      uint64
}

// NewDiskII is the preferred method of initialisation for the DiskII type.
func NewDiskII(clock io.Clock) *DiskII {
	dc := &DiskII{
		clock: clock,
	}
	dc.drives[0] = &Drive{}
	dc.drives[1] = &Drive{}
	return dc
}

// Drive returns one of the two drives. n is 1 or 2.
func (dc *DiskII) Drive(n int) *Drive {
	return dc.drives[(n-1)&1]
}

func (dc *DiskII) selected() *Drive {
	return dc.drives[dc.sel]
}

// currentTrack returns the nibble stream under the head, or nil.
func (d *Drive) currentTrack() []uint8 {
	if len(d.tracks) == 0 {
		return nil
	}

	var idx int
	if d.trackMap != nil {
		idx = d.trackMap[d.track]
	} else {
		// quarter and half tracks read the nearest whole track
		idx = (d.track + 1) / 4
	}

	if idx < 0 || idx >= len(d.tracks) {
		return nil
	}
	return d.tracks[idx]
}

func (d *Drive) currentTrackIndex() int {
	if d.trackMap != nil {
		return d.trackMap[d.track]
	}
	return (d.track + 1) / 4
}

// advance moves the head with the passage of CPU cycles while the motor is
// on: one nibble every 32 cycles, wrapping at the end of the track.
func (dc *DiskII) advance() {
	now := dc.clock.CurrentCycles()
	elapsed := now - dc.lastCycles + dc.spare
	dc.lastCycles = now

	if !dc.motorOn {
		dc.spare = 0
		return
	}

	nibbles := elapsed / cyclesPerNibble
	dc.spare = elapsed % cyclesPerNibble

	d := dc.selected()
	t := d.currentTrack()
	if t == nil || nibbles == 0 {
		return
	}

	d.head = (d.head + int(nibbles%uint64(len(t)))) % len(t)

	// in read mode the latch picks up the nibble now under the head. in
	// write mode the latch belongs to the program
	if !dc.q7 && !dc.q6 {
		dc.latch = t[d.head]
	}
}

// step energises or releases a stepper phase magnet. Energising the phase
// adjacent to the last one pulls the arm a half track in that direction.
func (dc *DiskII) step(phase int, on bool) {
	if !on {
		return
	}

	d := dc.selected()

	switch (phase - dc.phase + 4) & 3 {
	case 1:
		d.track += 2
	case 3:
		d.track -= 2
	}
	dc.phase = phase

	if d.track < 0 {
		d.track = 0
	}
	if d.track > maxQuarterTrack {
		d.track = maxQuarterTrack
	}

	// keep the head offset within the new track
	if t := d.currentTrack(); t != nil && d.head >= len(t) {
		d.head %= len(t)
	}
}

// ReadDevice implements the io.SlotDevice interface: the sixteen soft
// switches of the controller.
func (dc *DiskII) ReadDevice(offset uint8) uint8 {
	return dc.access(offset, 0, false)
}

// WriteDevice implements the io.SlotDevice interface.
func (dc *DiskII) WriteDevice(offset uint8, v uint8) {
	dc.access(offset, v, true)
}

func (dc *DiskII) access(offset uint8, v uint8, write bool) uint8 {
	dc.advance()

	switch offset {
	case 0x0, 0x1, 0x2, 0x3, 0x4, 0x5, 0x6, 0x7:
		dc.step(int(offset>>1), offset&1 == 1)

	case 0x8:
		dc.motorOn = false

	case 0x9:
		dc.motorOn = true

	case 0xa:
		dc.sel = 0

	case 0xb:
		dc.sel = 1

	case 0xc:
		dc.q6 = false
		return dc.strobe(v, write)

	case 0xd:
		dc.q6 = true
		if write && dc.q7 {
			// load the write latch
			dc.latch = v
		}
		if !dc.q7 {
			// sense write protect
			if dc.selected().writeProtect {
				return 0xff
			}
			return 0x00
		}

	case 0xe:
		dc.q7 = false

	case 0xf:
		dc.q7 = true
	}

	return dc.latch
}

// strobe services an access to the Q6L switch: in read mode it returns the
// read latch, in write mode it commits the write latch to the disk
// surface.
func (dc *DiskII) strobe(v uint8, write bool) uint8 {
	d := dc.selected()
	t := d.currentTrack()

	if dc.q7 {
		// write mode
		if write {
			dc.latch = v
		}
		if t != nil && dc.motorOn && !d.writeProtect {
			t[d.head] = dc.latch
			d.dirty = true
			d.trackDirty[d.currentTrackIndex()] = true
		}
		return 0
	}

	if t == nil || !dc.motorOn {
		return 0xff
	}

	// the read latch: a full nibble is present only when the sequencer
	// has finished shifting it in. between nibbles the high bit reads
	// clear, which is what firmware read loops poll for
	v = dc.latch
	dc.latch = 0
	return v
}

// Motor reports whether the drive motor is on.
func (dc *DiskII) Motor() bool {
	return dc.motorOn
}

// Metadata returns a description of the image in a drive, or nil if the
// drive is empty. n is 1 or 2.
func (dc *DiskII) Metadata(n int) *Metadata {
	d := dc.Drive(n)
	if len(d.tracks) == 0 {
		return nil
	}
	return &Metadata{
		Name:     d.name,
		Ext:      d.ext,
		ReadOnly: d.writeProtect,
		Dirty:    d.dirty,
	}
}

// SetWriteProtect sets the write protect tab of a drive.
func (dc *DiskII) SetWriteProtect(n int, on bool) {
	dc.Drive(n).writeProtect = on
}

// logImage is the common trace for successful mounts.
func logImage(n int, name string, ext string, tracks int) {
	logger.Logf("disk", "drive %d: %s.%s (%d tracks)", n, name, ext, tracks)
}
