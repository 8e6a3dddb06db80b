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

package cpu

// State is a snapshot of the register file and cycle counter. It contains
// everything needed to restore the CPU exactly, given the same memory.
type State struct {
	A      uint8
	X      uint8
	Y      uint8
	SP     uint8
	PC     uint16
	Status uint8
	Cycles uint64

	PendingNMI bool
	PendingIRQ bool
}

// GetState returns a snapshot of the CPU state.
func (mc *CPU) GetState() State {
	return State{
		A:          mc.A.Value(),
		X:          mc.X.Value(),
		Y:          mc.Y.Value(),
		SP:         mc.SP.Value(),
		PC:         mc.PC.Address(),
		Status:     mc.Status.Value(true),
		Cycles:     mc.Cycles,
		PendingNMI: mc.pendingNMI,
		PendingIRQ: mc.pendingIRQ,
	}
}

// SetState restores the CPU from a snapshot.
func (mc *CPU) SetState(s State) {
	mc.A.Load(s.A)
	mc.X.Load(s.X)
	mc.Y.Load(s.Y)
	mc.SP.Load(s.SP)
	mc.PC.Load(s.PC)
	mc.Status.FromValue(s.Status)
	mc.Cycles = s.Cycles
	mc.pendingNMI = s.PendingNMI
	mc.pendingIRQ = s.PendingIRQ
	mc.LastResult = Result{}
}
