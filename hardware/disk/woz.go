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

	"github.com/iflan/apple2go/logger"
)

// woz chunk ids.
const (
	wozChunkINFO = "INFO"
	wozChunkTMAP = "TMAP"
	wozChunkTRKS = "TRKS"
)

// loadWOZ mounts a WOZ image. The quarter track map is preserved, so half
// track and quarter track protection schemes keep their geometry. The bit
// streams are folded into nibble streams at load time: bits shift into a
// register and a nibble is emitted whenever the high bit arrives, which is
// exactly what the drive sequencer does.
func loadWOZ(data []uint8) *Drive {
	if len(data) < 12 {
		return nil
	}

	magic := string(data[0:4])
	if (magic != "WOZ1" && magic != "WOZ2") ||
		data[4] != 0xff || data[5] != 0x0a || data[6] != 0x0d || data[7] != 0x0a {
		return nil
	}
	woz2 := magic == "WOZ2"

	var info []uint8
	var tmap []uint8
	var trks []uint8

	// walk the chunk list
	at := 12
	for at+8 <= len(data) {
		id := string(data[at : at+4])
		size := int(binary.LittleEndian.Uint32(data[at+4:]))
		at += 8

		if at+size > len(data) {
			logger.Logf("disk", "woz: truncated %s chunk", id)
			return nil
		}

		switch id {
		case wozChunkINFO:
			info = data[at : at+size]
		case wozChunkTMAP:
			tmap = data[at : at+size]
		case wozChunkTRKS:
			trks = data[at : at+size]
		}

		at += size
	}

	if info == nil || tmap == nil || trks == nil || len(tmap) < 140 {
		return nil
	}

	// INFO: disk type 1 is a 5.25" disk
	if info[1] != 1 {
		return nil
	}

	d := &Drive{
		format:       FormatWOZ,
		ext:          "woz",
		volume:       DefaultVolume,
		writeProtect: info[2] != 0,
	}

	// build one nibble stream per distinct TMAP entry
	slot := make(map[uint8]int)
	d.trackMap = make([]int, maxQuarterTrack+1)

	for q := 0; q <= maxQuarterTrack; q++ {
		entry := tmap[q]
		if entry == 0xff {
			d.trackMap[q] = -1
			continue
		}

		if s, ok := slot[entry]; ok {
			d.trackMap[q] = s
			continue
		}

		var track []uint8
		if woz2 {
			track = wozTrackBits2(data, trks, int(entry))
		} else {
			track = wozTrackBits1(trks, int(entry))
		}
		if track == nil {
			return nil
		}

		slot[entry] = len(d.tracks)
		d.trackMap[q] = len(d.tracks)
		d.tracks = append(d.tracks, track)
	}

	d.trackDirty = make([]bool, len(d.tracks))

	d.container = make([]uint8, len(data))
	copy(d.container, data)

	return d
}

// wozTrackBits2 extracts one track of a WOZ2 file: the TRKS chunk holds
// 160 eight byte descriptors followed by block aligned bit data addressed
// from the start of the file.
func wozTrackBits2(file []uint8, trks []uint8, entry int) []uint8 {
	if (entry+1)*8 > len(trks) {
		return nil
	}
	desc := trks[entry*8:]

	startBlock := int(binary.LittleEndian.Uint16(desc[0:]))
	blockCount := int(binary.LittleEndian.Uint16(desc[2:]))
	bitCount := int(binary.LittleEndian.Uint32(desc[4:]))

	start := startBlock * 512
	end := start + blockCount*512
	if end > len(file) || bitCount > blockCount*512*8 {
		return nil
	}

	return nibblesFromBits(file[start:end], bitCount)
}

// wozTrackBits1 extracts one track of a WOZ1 file: fixed 6656 byte track
// records with trailing byte and bit counts.
func wozTrackBits1(trks []uint8, entry int) []uint8 {
	const recLen = 6656
	if (entry+1)*recLen > len(trks) {
		return nil
	}
	rec := trks[entry*recLen : (entry+1)*recLen]

	bitCount := int(binary.LittleEndian.Uint16(rec[6648:]))
	return nibblesFromBits(rec[:6646], bitCount)
}

// nibblesFromBits runs the drive sequencer over a bit stream: bits shift
// into a register, and when the high bit is set the register is emitted as
// a nibble and cleared. Leading zero bits of sync nibbles disappear, which
// is what happens on real hardware too.
func nibblesFromBits(bits []uint8, bitCount int) []uint8 {
	out := make([]uint8, 0, bitCount/8)

	var reg uint8
	for i := 0; i < bitCount && i/8 < len(bits); i++ {
		b := (bits[i/8] >> (7 - (i & 7))) & 1
		reg = reg<<1 | b
		if reg&0x80 != 0 {
			out = append(out, reg)
			reg = 0
		}
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
