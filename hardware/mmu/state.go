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

package mmu

// State is a snapshot of the MMU: the latch vector and every RAM bank. ROM
// contents are not part of the state - they are construction inputs.
type State struct {
	Switches uint32

	Main []uint8
	Aux  []uint8

	LCMainBank1 []uint8
	LCMainBank2 []uint8
	LCMainHigh  []uint8
	LCAuxBank1  []uint8
	LCAuxBank2  []uint8
	LCAuxHigh   []uint8
}

func snap(b []uint8) []uint8 {
	n := make([]uint8, len(b))
	copy(n, b)
	return n
}

// GetState returns a deep copy of the MMU state.
func (m *MMU) GetState() State {
	return State{
		Switches:    uint32(m.switches),
		Main:        snap(m.main),
		Aux:         snap(m.aux),
		LCMainBank1: snap(m.lcMain.bank1),
		LCMainBank2: snap(m.lcMain.bank2),
		LCMainHigh:  snap(m.lcMain.high),
		LCAuxBank1:  snap(m.lcAux.bank1),
		LCAuxBank2:  snap(m.lcAux.bank2),
		LCAuxHigh:   snap(m.lcAux.high),
	}
}

// SetState restores the MMU from a snapshot.
func (m *MMU) SetState(s State) {
	m.switches = Switch(s.Switches)
	m.prewrite = false
	copy(m.main, s.Main)
	copy(m.aux, s.Aux)
	copy(m.lcMain.bank1, s.LCMainBank1)
	copy(m.lcMain.bank2, s.LCMainBank2)
	copy(m.lcMain.high, s.LCMainHigh)
	copy(m.lcAux.bank1, s.LCAuxBank1)
	copy(m.lcAux.bank2, s.LCAuxBank2)
	copy(m.lcAux.high, s.LCAuxHigh)
}
