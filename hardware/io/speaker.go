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

package io

// maxEvents bounds the event buffer. at one toggle every other cycle - far
// beyond anything real software does - a frame produces around 8,500
// events, so 32768 gives comfortable headroom for a host that drains once
// per frame.
const maxEvents = 32768

// Event is a single speaker level change, timestamped with the CPU cycle at
// which it happened.
type Event struct {
	Cycle uint64
	Level bool
}

// Speaker models the 1 bit DAC behind $c030. Each access flips the output
// level and appends a timestamped event. The host resamples the event
// stream at its own rate - the emulation core has no opinion about sample
// rates.
type Speaker struct {
	clock  Clock
	level  bool
	events []Event
}

// NewSpeaker is the preferred method of initialisation for the Speaker
// type.
func NewSpeaker(clock Clock) *Speaker {
	return &Speaker{
		clock:  clock,
		events: make([]Event, 0, maxEvents),
	}
}

// Toggle flips the speaker level. Called on every access to $c030.
func (s *Speaker) Toggle() {
	s.level = !s.level
	if len(s.events) < maxEvents {
		s.events = append(s.events, Event{
			Cycle: s.clock.CurrentCycles(),
			Level: s.level,
		})
	}
}

// Level returns the current output level.
func (s *Speaker) Level() bool {
	return s.level
}

// ReadEvents drains the event buffer. The returned slice is only valid
// until the next call.
func (s *Speaker) ReadEvents() []Event {
	ev := s.events
	s.events = s.events[len(s.events):]
	if cap(s.events) == 0 {
		s.events = make([]Event, 0, maxEvents)
	}
	return ev
}
