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

// Package wavwriter resamples the speaker event stream to a mono WAV file.
// Events are buffered in memory in their entirety and written on End(), so
// it is only suitable for captures of modest length - testing and tooling,
// not hours of gameplay.
package wavwriter

import (
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/iflan/apple2go/curated"
	"github.com/iflan/apple2go/hardware/io"
	"github.com/iflan/apple2go/logger"
)

// SampleRate of the output file.
const SampleRate = 22050

// amplitude of the 1 bit DAC in 16 bit samples.
const amplitude = 12000

// WavWriter accumulates speaker events and converts them to samples.
type WavWriter struct {
	filename string

	// the clock rate the event timestamps were produced at, in kHz
	khz int

	// event capture
	events []io.Event

	// cycle of the first captured event; sample conversion is relative to
	// this origin
	origin uint64
	primed bool
}

// New is the preferred method of initialisation for the WavWriter type.
func New(filename string, khz int) *WavWriter {
	return &WavWriter{
		filename: filename,
		khz:      khz,
	}
}

// Feed appends a batch of speaker events, as drained from the io package.
func (aw *WavWriter) Feed(events []io.Event) {
	if len(events) == 0 {
		return
	}
	if !aw.primed {
		aw.origin = events[0].Cycle
		aw.primed = true
	}
	aw.events = append(aw.events, events...)
}

// samples converts the event stream to 16 bit mono samples: the speaker
// level held between level change timestamps.
func (aw *WavWriter) samples() []int {
	if len(aw.events) == 0 {
		return nil
	}

	cyclesPerSample := float64(aw.khz) * 1000 / SampleRate

	last := aw.events[len(aw.events)-1]
	n := int(float64(last.Cycle-aw.origin)/cyclesPerSample) + 1

	out := make([]int, n)
	level := !aw.events[0].Level

	e := 0
	for i := 0; i < n; i++ {
		cycle := aw.origin + uint64(float64(i)*cyclesPerSample)
		for e < len(aw.events) && aw.events[e].Cycle <= cycle {
			level = aw.events[e].Level
			e++
		}
		if level {
			out[i] = amplitude
		} else {
			out[i] = -amplitude
		}
	}

	return out
}

// End writes the capture to disk.
func (aw *WavWriter) End() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf("wavwriter: %v", err)
		}
	}()

	enc := wav.NewEncoder(f, SampleRate, 16, 1, 1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  SampleRate,
		},
		Data:           aw.samples(),
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	if err := enc.Close(); err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	logger.Logf("wavwriter", "%d samples written to %s", len(buf.Data), aw.filename)

	return nil
}
