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
	"testing"

	"github.com/matryer/is"
)

type mockClock struct {
	cycles uint64
}

func (c *mockClock) CurrentCycles() uint64 {
	return c.cycles
}

func testImage() []uint8 {
	img := make([]uint8, dskBytes)
	for i := range img {
		img[i] = uint8(i % 251)
	}
	return img
}

func TestSetBinaryRejection(t *testing.T) {
	is := is.New(t)
	clk := &mockClock{}
	dc := NewDiskII(clk)

	// wrong length
	is.True(!dc.SetBinary(1, "bad", "dsk", make([]uint8, 1000)))
	is.True(dc.Metadata(1) == nil)

	// unknown extension
	is.True(!dc.SetBinary(1, "bad", "img", testImage()))

	// a good image mounts, and a later rejection leaves it in place
	is.True(dc.SetBinary(1, "good", "dsk", testImage()))
	is.True(!dc.SetBinary(1, "bad", "dsk", make([]uint8, 1000)))

	md := dc.Metadata(1)
	is.True(md != nil)
	is.Equal(md.Name, "good")
	is.Equal(md.Ext, "dsk")
	is.Equal(md.Dirty, false)
}

func TestStepper(t *testing.T) {
	is := is.New(t)
	clk := &mockClock{}
	dc := NewDiskII(clk)
	is.True(dc.SetBinary(1, "test", "dsk", testImage()))

	d := dc.Drive(1)
	is.Equal(d.track, 0)

	// energising ascending phases walks the head inward a half track at a
	// time: two phase steps per whole track
	dc.ReadDevice(0x1) // phase 0 on
	dc.ReadDevice(0x3) // phase 1 on
	dc.ReadDevice(0x5) // phase 2 on
	is.Equal(d.track, 4) // one whole track

	// descending phases walk outward
	dc.ReadDevice(0x3)
	dc.ReadDevice(0x1)
	is.Equal(d.track, 0)

	// the head stops at the rail
	dc.ReadDevice(0x7)
	dc.ReadDevice(0x5)
	is.Equal(d.track, 0)
}

func TestReadNibbleStream(t *testing.T) {
	is := is.New(t)
	clk := &mockClock{}
	dc := NewDiskII(clk)
	is.True(dc.SetBinary(1, "test", "dsk", testImage()))

	// motor on, read mode
	dc.ReadDevice(0x9)
	dc.ReadDevice(0xe)

	// the first full nibble arrives after one nibble time
	clk.cycles += cyclesPerNibble
	v := dc.ReadDevice(0xc)
	is.True(v&0x80 != 0)

	// an immediate re-read catches the sequencer mid shift
	is.Equal(dc.ReadDevice(0xc), uint8(0))

	// nibbles keep coming at one per 32 cycles
	seen := 0
	for i := 0; i < 64; i++ {
		clk.cycles += cyclesPerNibble
		if dc.ReadDevice(0xc)&0x80 != 0 {
			seen++
		}
	}
	is.Equal(seen, 64)

	// motor off: the stream stops
	dc.ReadDevice(0x8)
	clk.cycles += cyclesPerNibble
	is.Equal(dc.ReadDevice(0xc), uint8(0xff))
}

func TestWriteProtectSense(t *testing.T) {
	is := is.New(t)
	clk := &mockClock{}
	dc := NewDiskII(clk)
	is.True(dc.SetBinary(1, "test", "dsk", testImage()))

	// Q7 low, Q6 high senses the write protect tab
	dc.ReadDevice(0xe)
	is.Equal(dc.ReadDevice(0xd), uint8(0x00))

	dc.SetWriteProtect(1, true)
	is.Equal(dc.ReadDevice(0xd), uint8(0xff))
}

func TestWriteNibble(t *testing.T) {
	is := is.New(t)
	clk := &mockClock{}
	dc := NewDiskII(clk)
	is.True(dc.SetBinary(1, "test", "dsk", testImage()))

	d := dc.Drive(1)

	// motor on, write mode, load latch, commit
	dc.ReadDevice(0x9)
	dc.ReadDevice(0xf)
	dc.WriteDevice(0xd, 0xd5)
	dc.WriteDevice(0xc, 0xd5)

	is.Equal(d.tracks[0][d.head], uint8(0xd5))
	is.True(dc.Metadata(1).Dirty)

	// write protect blocks the commit
	head := d.head
	dc.SetWriteProtect(1, true)
	clk.cycles += cyclesPerNibble
	dc.WriteDevice(0xd, 0xaa)
	dc.WriteDevice(0xc, 0xaa)
	is.True(d.tracks[0][(head+1)%len(d.tracks[0])] != 0xaa)
}

func TestDriveSelect(t *testing.T) {
	is := is.New(t)
	clk := &mockClock{}
	dc := NewDiskII(clk)
	is.True(dc.SetBinary(1, "one", "dsk", testImage()))
	is.True(dc.SetBinary(2, "two", "dsk", testImage()))

	// stepping moves only the selected drive
	dc.ReadDevice(0xb) // select drive 2
	dc.ReadDevice(0x1)
	dc.ReadDevice(0x3)
	is.Equal(dc.Drive(2).track, 2)
	is.Equal(dc.Drive(1).track, 0)
}

func TestGetBinaryRoundTrip(t *testing.T) {
	is := is.New(t)
	clk := &mockClock{}
	dc := NewDiskII(clk)

	img := testImage()
	is.True(dc.SetBinary(1, "test", "dsk", img))
	is.Equal(dc.GetBinary(1), img)

	// ProDOS order too
	is.True(dc.SetBinary(2, "test", "po", img))
	is.Equal(dc.GetBinary(2), img)
}

func Test2MG(t *testing.T) {
	is := is.New(t)
	clk := &mockClock{}
	dc := NewDiskII(clk)

	payload := testImage()

	hdr := make([]uint8, 64)
	copy(hdr, "2IMG")
	binary.LittleEndian.PutUint16(hdr[0x08:], 64)                   // header length
	binary.LittleEndian.PutUint32(hdr[0x0c:], 1)                    // ProDOS order
	binary.LittleEndian.PutUint32(hdr[0x18:], 64)                   // data offset
	binary.LittleEndian.PutUint32(hdr[0x1c:], uint32(len(payload))) // data length

	is.True(dc.SetBinary(1, "hd", "2mg", append(hdr, payload...)))

	md := dc.Metadata(1)
	is.Equal(md.Ext, "2mg")

	// the container is returned verbatim
	out := dc.GetBinary(1)
	is.Equal(len(out), 64+len(payload))
	is.Equal(string(out[0:4]), "2IMG")

	// bad magic is rejected
	bad := append([]uint8{}, hdr...)
	copy(bad, "XXXX")
	is.True(!dc.SetBinary(2, "bad", "2mg", append(bad, payload...)))
}

func TestJSONDescriptor(t *testing.T) {
	is := is.New(t)
	clk := &mockClock{}
	dc := NewDiskII(clk)

	is.True(dc.SetBinary(1, "test", "dsk", testImage()))

	// wrapper round trip through a second drive
	j := dc.GetJSON(1, false)
	is.True(j != "")
	is.True(dc.SetJSON(2, j))
	is.Equal(dc.GetBinary(2), testImage())

	// malformed wrappers are rejected
	is.True(!dc.SetJSON(2, "{"))
	is.True(!dc.SetJSON(2, `{"type":"dsk","name":"x","encoding":"hex","data":""}`))
}
