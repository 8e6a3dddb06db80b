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

package hardware

import (
	"github.com/iflan/apple2go/curated"
	"github.com/iflan/apple2go/hardware/cpu"
	"github.com/iflan/apple2go/hardware/disk"
	"github.com/iflan/apple2go/hardware/io"
	"github.com/iflan/apple2go/hardware/mmu"
)

// stateVersion is bumped whenever the State structure changes shape.
const stateVersion = 1

// State is a complete snapshot of the machine: registers, latches, RAM and
// disk head state. Restoring a snapshot on the machine it was taken from
// is an identity operation, modulo the monotonic frame counters.
type State struct {
	Version int

	CPU  cpu.State
	IO   io.State
	Disk disk.State

	// IIe state
	MMU *mmu.State

	// II+ RAM banks, in bus order
	RAM [][]uint8
}

// GetState returns a snapshot of the machine.
func (a *Apple2) GetState() State {
	s := State{
		Version: stateVersion,
		CPU:     a.CPU.GetState(),
		IO:      a.IO.GetState(),
		Disk:    a.Disk.GetState(),
	}

	if a.MMU != nil {
		m := a.MMU.GetState()
		s.MMU = &m
	}

	for _, r := range a.ram {
		c := r.Snapshot()
		s.RAM = append(s.RAM, c.Data())
	}

	return s
}

// SetState restores the machine from a snapshot. On a version mismatch or
// a snapshot from the wrong model the restore is aborted and the prior
// state retained.
func (a *Apple2) SetState(s State) error {
	if s.Version != stateVersion {
		return curated.Errorf(curated.StateDeserialize,
			curated.Errorf("unknown version (%d)", s.Version))
	}

	if (s.MMU == nil) != (a.MMU == nil) {
		return curated.Errorf(curated.StateDeserialize, "snapshot is for a different model")
	}
	if a.MMU == nil && len(s.RAM) != len(a.ram) {
		return curated.Errorf(curated.StateDeserialize, "wrong number of RAM banks")
	}

	a.CPU.SetState(s.CPU)
	a.IO.SetState(s.IO)
	a.Disk.SetState(s.Disk)

	if a.MMU != nil {
		a.MMU.SetState(*s.MMU)
	}

	for i, bank := range s.RAM {
		copy(a.ram[i].Data(), bank)
	}

	// every row of the display may have changed
	a.Screen.Redraw()

	return nil
}
