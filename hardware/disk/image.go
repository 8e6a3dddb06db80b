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

package disk

import (
	"encoding/binary"
	"strings"

	"github.com/iflan/apple2go/logger"
)

// Format identifies the layout of a mounted image.
type Format int

// The image formats the controller can ingest.
const (
	FormatNone Format = iota
	FormatDOS33       // .dsk/.do - 16 sectors in DOS 3.3 order
	FormatProDOS      // .po - 16 sectors in ProDOS order
	FormatNib         // .nib - raw nibble tracks
	Format2MG         // .2mg - header prefixed DO/PO/NIB
	FormatWOZ         // .woz - bit level track map
)

// sectorized image length: 35 tracks x 16 sectors x 256 bytes.
const dskBytes = tracksPerDisk * sectorsPerTrack * sectorBytes

// SetBinary mounts an image in a drive. n is 1 or 2; ext tags the layout
// of the byte buffer (dsk, do, po, nib, 2mg, woz). Returns false if the
// image is not recognised, in which case the drive is unchanged.
func (dc *DiskII) SetBinary(n int, name string, ext string, data []uint8) bool {
	d := dc.Drive(n)

	var mounted *Drive

	switch strings.ToLower(ext) {
	case "dsk", "do":
		mounted = loadSectorized(data, FormatDOS33, &dos33PhysToLogical)
	case "po":
		mounted = loadSectorized(data, FormatProDOS, &prodosPhysToLogical)
	case "nib":
		mounted = loadNib(data)
	case "2mg":
		mounted = load2MG(data)
	case "woz":
		mounted = loadWOZ(data)
	default:
		logger.Logf("disk", "unrecognised extension (%s)", ext)
		return false
	}

	if mounted == nil {
		logger.Logf("disk", "image rejected (%s.%s, %d bytes)", name, ext, len(data))
		return false
	}

	mounted.name = name
	if mounted.ext == "" {
		mounted.ext = strings.ToLower(ext)
	}
	mounted.writeProtect = mounted.writeProtect || d.writeProtect

	*d = *mounted
	logImage(n, d.name, d.ext, len(d.tracks))

	return true
}

// loadSectorized nibblizes a 143,360 byte sector image.
func loadSectorized(data []uint8, format Format, physToLogical *[16]int) *Drive {
	if len(data) != dskBytes {
		return nil
	}

	d := &Drive{
		format:     format,
		volume:     DefaultVolume,
		tracks:     make([][]uint8, tracksPerDisk),
		trackDirty: make([]bool, tracksPerDisk),
	}

	for t := 0; t < tracksPerDisk; t++ {
		sectors := data[t*sectorsPerTrack*sectorBytes : (t+1)*sectorsPerTrack*sectorBytes]
		d.tracks[t] = explodeTrack16(d.volume, uint8(t), sectors, physToLogical)
	}

	return d
}

// loadNib mounts raw nibble tracks.
func loadNib(data []uint8) *Drive {
	if len(data) != tracksPerDisk*nibTrackBytes {
		return nil
	}

	d := &Drive{
		format:     FormatNib,
		volume:     DefaultVolume,
		tracks:     make([][]uint8, tracksPerDisk),
		trackDirty: make([]bool, tracksPerDisk),
	}

	for t := 0; t < tracksPerDisk; t++ {
		track := make([]uint8, nibTrackBytes)
		copy(track, data[t*nibTrackBytes:])
		d.tracks[t] = track
	}

	return d
}

// load2MG unwraps the 2IMG container and mounts the payload.
func load2MG(data []uint8) *Drive {
	if len(data) < 64 || string(data[0:4]) != "2IMG" {
		return nil
	}

	format := binary.LittleEndian.Uint32(data[0x0c:])
	flags := binary.LittleEndian.Uint32(data[0x10:])
	offset := binary.LittleEndian.Uint32(data[0x18:])
	length := binary.LittleEndian.Uint32(data[0x1c:])

	if int(offset)+int(length) > len(data) {
		return nil
	}
	payload := data[offset : offset+length]

	var d *Drive
	switch format {
	case 0:
		d = loadSectorized(payload, FormatDOS33, &dos33PhysToLogical)
	case 1:
		d = loadSectorized(payload, FormatProDOS, &prodosPhysToLogical)
	case 2:
		d = loadNib(payload)
	default:
		return nil
	}
	if d == nil {
		return nil
	}

	d.format = Format2MG
	d.ext = "2mg"

	// a volume number can be supplied in the low byte of the flags
	if flags&0x100 != 0 {
		d.volume = uint8(flags)
	}
	d.writeProtect = flags&0x80000000 != 0

	d.container = make([]uint8, len(data))
	copy(d.container, data)

	return d
}

// GetBinary returns the image in a drive as bytes in its mounted format.
// dsk, do, po and nib images include any data written since load; 2mg and
// woz images are returned as the container that was loaded, without later
// writes. Returns nil for an empty drive or if a written track can no
// longer be sectorized.
func (dc *DiskII) GetBinary(n int) []uint8 {
	d := dc.Drive(n)
	if len(d.tracks) == 0 {
		return nil
	}

	switch d.format {
	case FormatNib:
		out := make([]uint8, 0, tracksPerDisk*nibTrackBytes)
		for _, t := range d.tracks {
			out = append(out, t...)
		}
		return out

	case FormatDOS33:
		return d.implode(&dos33PhysToLogical)

	case FormatProDOS:
		return d.implode(&prodosPhysToLogical)

	case Format2MG, FormatWOZ:
		// returned verbatim. dirty tracks cannot be folded back into the
		// container
		return d.container
	}

	return nil
}

func (d *Drive) implode(physToLogical *[16]int) []uint8 {
	out := make([]uint8, 0, dskBytes)
	for _, t := range d.tracks {
		sectors, ok := implodeTrack16(t, physToLogical)
		if !ok {
			return nil
		}
		out = append(out, sectors...)
	}
	return out
}
