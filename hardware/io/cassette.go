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

import (
	"bytes"
	stdio "io"
	"strings"

	"github.com/go-audio/wav"
	mp3 "github.com/hajimehoshi/go-mp3"

	"github.com/iflan/apple2go/curated"
	"github.com/iflan/apple2go/hardware/clocks"
	"github.com/iflan/apple2go/logger"
)

// Cassette implements the cassette interface: input at $c060 and output
// toggle at $c020. Tapes are ingested from WAV or MP3 recordings of real
// cassettes; the input register reports the sign of the recording at the
// current moment, which is all the firmware's zero crossing detector needs.
//
// Tape position advances with the CPU cycle count at the standard clock
// rate, so an accelerated CPU reads tapes faster, just as the firmware
// timing loops expect.
type Cassette struct {
	clock Clock

	// mono samples and the rate they were recorded at
	data       []float32
	sampleRate float64

	// cycle at which the tape was inserted
	startCycle uint64

	// output level and recorded toggle events ($c020)
	outLevel  bool
	outEvents []Event
}

// NewCassette is the preferred method of initialisation for the Cassette
// type.
func NewCassette(clock Clock) *Cassette {
	return &Cassette{clock: clock}
}

// Load a tape recording. ext identifies the container: "wav" or "mp3".
// Returns a curated ImageFormat error if the recording cannot be decoded.
// The tape begins playing immediately.
func (c *Cassette) Load(data []byte, ext string) error {
	var samples []float32
	var rate float64

	switch strings.ToLower(ext) {
	case "wav":
		dec := wav.NewDecoder(bytes.NewReader(data))
		if dec == nil || !dec.IsValidFile() {
			return curated.Errorf(curated.ImageFormat, "not a valid wav file")
		}

		buf, err := dec.FullPCMBuffer()
		if err != nil {
			return curated.Errorf(curated.ImageFormat, err)
		}
		floatBuf := buf.AsFloat32Buffer()

		// first channel only of the data stream
		n := int(dec.NumChans)
		samples = make([]float32, 0, len(floatBuf.Data)/n)
		for i := 0; i < len(floatBuf.Data); i += n {
			samples = append(samples, floatBuf.Data[i])
		}
		rate = float64(dec.SampleRate)

	case "mp3":
		dec, err := mp3.NewDecoder(bytes.NewReader(data))
		if err != nil {
			return curated.Errorf(curated.ImageFormat, err)
		}

		// the stream is 16bit little endian 2 channels regardless of the
		// source file. stride of 4 takes the left channel
		chunk := make([]byte, 4096)
		err = nil
		for err != stdio.EOF {
			var n int
			n, err = dec.Read(chunk)
			if err != nil && err != stdio.EOF {
				return curated.Errorf(curated.ImageFormat, err)
			}
			for i := 0; i+1 < n; i += 4 {
				f := int(chunk[i]) | (int(chunk[i+1]) << 8)
				if f >= 32768 {
					f -= 65536
				}
				samples = append(samples, float32(f)/32768)
			}
		}
		rate = float64(dec.SampleRate())

	default:
		return curated.Errorf(curated.ImageFormat, curated.Errorf("unrecognised tape container (%s)", ext))
	}

	c.data = samples
	c.sampleRate = rate
	c.startCycle = c.clock.CurrentCycles()

	logger.Logf("cassette", "tape loaded: %d samples at %.0fHz", len(samples), rate)

	return nil
}

// Eject removes the tape.
func (c *Cassette) Eject() {
	c.data = nil
}

// Input services a read of $c060: bit 7 reflects the sign of the recording
// at the current tape position. With no tape, or past the end of the tape,
// the input floats low.
func (c *Cassette) Input() uint8 {
	if len(c.data) == 0 {
		return 0
	}

	elapsed := c.clock.CurrentCycles() - c.startCycle
	seconds := float64(elapsed) / float64(clocks.StandardKHz*1000)
	idx := int(seconds * c.sampleRate)
	if idx >= len(c.data) {
		return 0
	}

	if c.data[idx] >= 0 {
		return 0x80
	}
	return 0
}

// ToggleOutput services an access to $c020, flipping the cassette output
// level. Events are recorded in the same form as speaker events so a host
// can capture a program's tape save.
func (c *Cassette) ToggleOutput() {
	c.outLevel = !c.outLevel
	if len(c.outEvents) < maxEvents {
		c.outEvents = append(c.outEvents, Event{
			Cycle: c.clock.CurrentCycles(),
			Level: c.outLevel,
		})
	}
}

// ReadOutputEvents drains the output event buffer.
func (c *Cassette) ReadOutputEvents() []Event {
	ev := c.outEvents
	c.outEvents = nil
	return ev
}
