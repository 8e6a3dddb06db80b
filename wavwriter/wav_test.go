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

package wavwriter

import (
	"testing"

	hwio "github.com/iflan/apple2go/hardware/io"
	"github.com/iflan/apple2go/test"
)

func TestSampleConversion(t *testing.T) {
	aw := New("", 1023)

	// a square wave: toggles every 1023 cycles is 500Hz, roughly 22
	// samples per half wave at 22050Hz
	var events []hwio.Event
	level := false
	for c := uint64(0); c < 1023*20; c += 1023 {
		level = !level
		events = append(events, hwio.Event{Cycle: c, Level: level})
	}
	aw.Feed(events)

	samples := aw.samples()
	test.Equate(t, len(samples) > 0, true)

	// the stream alternates sign
	flips := 0
	for i := 1; i < len(samples); i++ {
		if (samples[i] > 0) != (samples[i-1] > 0) {
			flips++
		}
	}
	test.Equate(t, flips >= 18, true)

	// all samples at full amplitude
	for _, s := range samples {
		test.Equate(t, s == amplitude || s == -amplitude, true)
	}
}

func TestEmptyCapture(t *testing.T) {
	aw := New("", 1023)
	test.Equate(t, len(aw.samples()), 0)
	aw.Feed(nil)
	test.Equate(t, len(aw.samples()), 0)
}
