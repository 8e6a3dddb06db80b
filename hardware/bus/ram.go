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

package bus

// RAM is a plain byte array covering a page range. Reads and writes have no
// side effects.
type RAM struct {
	start uint8
	end   uint8
	data  []uint8
}

// NewRAM is the preferred method of initialisation for the RAM type. The
// page range is inclusive at both ends.
func NewRAM(start uint8, end uint8) *RAM {
	return &RAM{
		start: start,
		end:   end,
		data:  make([]uint8, (int(end)-int(start)+1)*256),
	}
}

// Start implements the PageHandler interface.
func (r *RAM) Start() uint8 {
	return r.start
}

// End implements the PageHandler interface.
func (r *RAM) End() uint8 {
	return r.end
}

// ReadPage implements the PageHandler interface.
func (r *RAM) ReadPage(page uint8, offset uint8) uint8 {
	return r.data[(int(page)-int(r.start))<<8|int(offset)]
}

// WritePage implements the PageHandler interface.
func (r *RAM) WritePage(page uint8, offset uint8, v uint8) {
	r.data[(int(page)-int(r.start))<<8|int(offset)] = v
}

// Data exposes the backing array. Used by state snapshots.
func (r *RAM) Data() []uint8 {
	return r.data
}

// Snapshot returns a deep copy of the RAM.
func (r *RAM) Snapshot() *RAM {
	n := *r
	n.data = make([]uint8, len(r.data))
	copy(n.data, r.data)
	return &n
}
