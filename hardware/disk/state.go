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

// DriveState is the snapshot of one drive: the head geometry and the
// nibble data of any track written since the image was mounted. Clean
// tracks are not captured - they are reproducible from the image.
type DriveState struct {
	Track int
	Head  int

	DirtyTracks map[int][]uint8
}

// State is the snapshot of the controller and both drives.
type State struct {
	Selected int
	MotorOn  bool
	Q6       bool
	Q7       bool
	Latch    uint8
	Phase    int

	Drives [2]DriveState
}

// GetState returns a snapshot of the controller state.
func (dc *DiskII) GetState() State {
	s := State{
		Selected: dc.sel,
		MotorOn:  dc.motorOn,
		Q6:       dc.q6,
		Q7:       dc.q7,
		Latch:    dc.latch,
		Phase:    dc.phase,
	}

	for i, d := range dc.drives {
		ds := DriveState{
			Track: d.track,
			Head:  d.head,
		}
		for t, dirty := range d.trackDirty {
			if !dirty {
				continue
			}
			if ds.DirtyTracks == nil {
				ds.DirtyTracks = make(map[int][]uint8)
			}
			track := make([]uint8, len(d.tracks[t]))
			copy(track, d.tracks[t])
			ds.DirtyTracks[t] = track
		}
		s.Drives[i] = ds
	}

	return s
}

// SetState restores the controller from a snapshot. The mounted images are
// expected to be the ones that were mounted when the snapshot was taken.
func (dc *DiskII) SetState(s State) {
	dc.sel = s.Selected & 1
	dc.motorOn = s.MotorOn
	dc.q6 = s.Q6
	dc.q7 = s.Q7
	dc.latch = s.Latch
	dc.phase = s.Phase
	dc.lastCycles = dc.clock.CurrentCycles()
	dc.spare = 0

	for i := range dc.drives {
		d := dc.drives[i]
		ds := s.Drives[i]

		d.track = ds.Track
		d.head = ds.Head

		for t, data := range ds.DirtyTracks {
			if t < len(d.tracks) {
				copy(d.tracks[t], data)
				d.trackDirty[t] = true
				d.dirty = true
			}
		}
	}
}
