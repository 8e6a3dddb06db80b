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
	"testing"

	"github.com/matryer/is"
)

func TestTranslate62Inverse(t *testing.T) {
	is := is.New(t)

	for i, v := range translate62 {
		is.Equal(detranslate62[v], uint8(i))
	}

	// invalid nibbles are rejected
	is.Equal(detranslate62[0xd5], uint8(0xff))
	is.Equal(detranslate62[0xaa], uint8(0xff))
}

func TestEncode62RoundTrip(t *testing.T) {
	is := is.New(t)

	data := make([]uint8, sectorBytes)
	for i := range data {
		data[i] = uint8(i*31 + 7)
	}

	nibbles := encode62(data)
	is.Equal(len(nibbles), 343)

	// every nibble is a valid disk byte
	for _, v := range nibbles {
		is.True(detranslate62[v] != 0xff)
	}

	back, ok := decode62(nibbles)
	is.True(ok)
	is.Equal(back, data)
}

func TestDecode62BadChecksum(t *testing.T) {
	is := is.New(t)

	nibbles := encode62(make([]uint8, sectorBytes))
	nibbles[100] = translate62[detranslate62[nibbles[100]]^0x01]

	_, ok := decode62(nibbles)
	is.True(!ok)
}

func TestWrite44(t *testing.T) {
	is := is.New(t)

	for _, v := range []uint8{0x00, 0x01, 0xfe, 0xff, 0x5a, DefaultVolume} {
		a, b := write44(v)
		is.Equal(read44(a, b), v)

		// 4&4 pairs always have the high bit and alternate bits set
		is.Equal(a&0xaa, uint8(0xaa))
		is.Equal(b&0xaa, uint8(0xaa))
	}
}

func TestExplodeSector16(t *testing.T) {
	is := is.New(t)

	data := make([]uint8, sectorBytes)
	s := ExplodeSector16(DefaultVolume, 17, 3, data)

	// the address field follows the leading gap
	i := 0
	for s[i] == 0xff {
		i++
	}
	is.Equal(s[i], uint8(0xd5))
	is.Equal(s[i+1], uint8(0xaa))
	is.Equal(s[i+2], uint8(0x96))

	is.Equal(read44(s[i+3], s[i+4]), uint8(DefaultVolume))
	is.Equal(read44(s[i+5], s[i+6]), uint8(17))
	is.Equal(read44(s[i+7], s[i+8]), uint8(3))
	is.Equal(read44(s[i+9], s[i+10]), uint8(DefaultVolume^17^3))

	// epilogue
	is.Equal(s[i+11], uint8(0xde))
	is.Equal(s[i+12], uint8(0xaa))
	is.Equal(s[i+13], uint8(0xeb))
}

func TestTrackRoundTrip(t *testing.T) {
	is := is.New(t)

	sectors := make([]uint8, sectorsPerTrack*sectorBytes)
	for i := range sectors {
		sectors[i] = uint8(i ^ (i >> 8))
	}

	for _, order := range []*[16]int{&dos33PhysToLogical, &prodosPhysToLogical} {
		track := explodeTrack16(DefaultVolume, 0, sectors, order)
		back, ok := implodeTrack16(track, order)
		is.True(ok)
		is.Equal(back, sectors)
	}
}

func TestImageRoundTrip(t *testing.T) {
	is := is.New(t)

	// property from the spec: for all 16 sector images of 143,360 bytes,
	// nibblize then denibblize reproduces the sector data
	img := make([]uint8, dskBytes)
	for i := range img {
		img[i] = uint8(i * 7)
	}

	d := loadSectorized(img, FormatDOS33, &dos33PhysToLogical)
	is.True(d != nil)
	is.Equal(len(d.tracks), tracksPerDisk)

	back := d.implode(&dos33PhysToLogical)
	is.Equal(back, img)
}
