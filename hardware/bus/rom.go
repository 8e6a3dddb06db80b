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

import (
	"github.com/iflan/apple2go/curated"
)

// ROM is a read-only page range. Writes are swallowed.
type ROM struct {
	start uint8
	end   uint8
	data  []uint8
}

// NewROM is the preferred method of initialisation for the ROM type. The
// data length must exactly cover the page range.
func NewROM(start uint8, end uint8, data []uint8) (*ROM, error) {
	l := (int(end) - int(start) + 1) * 256
	if len(data) != l {
		return nil, curated.Errorf("rom: %v",
			curated.Errorf("data length %d does not cover pages %#02x-%#02x", len(data), start, end))
	}

	r := &ROM{
		start: start,
		end:   end,
		data:  make([]uint8, l),
	}
	copy(r.data, data)

	return r, nil
}

// Start implements the PageHandler interface.
func (r *ROM) Start() uint8 {
	return r.start
}

// End implements the PageHandler interface.
func (r *ROM) End() uint8 {
	return r.end
}

// ReadPage implements the PageHandler interface.
func (r *ROM) ReadPage(page uint8, offset uint8) uint8 {
	return r.data[(int(page)-int(r.start))<<8|int(offset)]
}

// WritePage implements the PageHandler interface.
func (r *ROM) WritePage(page uint8, offset uint8, v uint8) {
	// writes to ROM are swallowed
}

// Data exposes the backing array.
func (r *ROM) Data() []uint8 {
	return r.data
}
