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

package video

import (
	"github.com/iflan/apple2go/hardware/bus"
)

// Watcher is a RAM page handler that feeds the screen's dirty bitmaps on
// every write. Machines without an MMU install watchers over the display
// page regions; on the IIe the MMU notifies the screen directly.
type Watcher struct {
	ram *bus.RAM
	scr *Screen
}

// NewWatcher is the preferred method of initialisation for the Watcher
// type.
func NewWatcher(ram *bus.RAM, scr *Screen) *Watcher {
	return &Watcher{
		ram: ram,
		scr: scr,
	}
}

// RAM returns the wrapped memory.
func (w *Watcher) RAM() *bus.RAM {
	return w.ram
}

// Start implements the bus.PageHandler interface.
func (w *Watcher) Start() uint8 {
	return w.ram.Start()
}

// End implements the bus.PageHandler interface.
func (w *Watcher) End() uint8 {
	return w.ram.End()
}

// ReadPage implements the bus.PageHandler interface.
func (w *Watcher) ReadPage(page uint8, offset uint8) uint8 {
	return w.ram.ReadPage(page, offset)
}

// WritePage implements the bus.PageHandler interface.
func (w *Watcher) WritePage(page uint8, offset uint8, v uint8) {
	w.ram.WritePage(page, offset, v)
	w.scr.Mark((uint16(page)<<8)|uint16(offset), false)
}
