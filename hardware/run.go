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
	"github.com/iflan/apple2go/hardware/clocks"
)

// While the continueCheck() function only runs at the end of a frame it
// can still be expensive to do a full check every time. PerformanceBrake
// is a standard value a continueCheck() implementation can use to filter
// out expensive code paths.
const PerformanceBrake = 100

// StepCycles executes whole instructions until the cumulative cycle count
// has advanced by at least n. Returns the cycles actually executed.
func (a *Apple2) StepCycles(n int) int {
	return a.CPU.StepCycles(n)
}

// StepCyclesDebug is StepCycles with a per instruction disassembly
// callback.
func (a *Apple2) StepCyclesDebug(n int, callback func(string) bool) int {
	return a.CPU.StepCyclesDebug(n, callback)
}

// AdvanceFrame runs the CPU for one animation tick's budget of cycles and
// composes the display. The host computes the budget from wall clock time
// and the current kHz setting, clamped to avoid catch up storms; see the
// gui packages. Returns true if the framebuffer changed.
//
// The frame sequence is: run the CPU, mark the frame boundary for the VBL
// signal, blit, count, tick.
func (a *Apple2) AdvanceFrame(budget int) bool {
	a.CPU.StepCycles(budget)

	if a.MMU != nil {
		a.MMU.ResetVB()
	}

	// annunciator 0 is a render hint: software can ask for the auxiliary
	// page surfaces
	a.Screen.MultiScreen(a.opts.MultiScreen || a.IO.Annunciator(0))

	rendered := a.Screen.Blit()

	a.stats.Frames++
	if rendered {
		a.stats.RenderedFrames++
	}

	if a.opts.Tick != nil {
		a.opts.Tick()
	}

	return rendered
}

// FrameBudget returns the standard cycle budget of one frame at the
// current kHz setting.
func (a *Apple2) FrameBudget() int {
	return a.IO.KHz() * 1000 / clocks.FramesPerSecond
}

// Run drives the emulation frame by frame as fast as possible until
// continueCheck returns false. continueCheck may be nil, in which case the
// machine runs forever. Stop() also ends the loop at the next frame
// boundary.
func (a *Apple2) Run(continueCheck func() (bool, error)) error {
	if continueCheck == nil {
		continueCheck = func() (bool, error) { return true, nil }
	}

	a.running = true

	for a.running {
		a.AdvanceFrame(a.FrameBudget())

		cont, err := continueCheck()
		if err != nil {
			return err
		}
		if !cont {
			break
		}
	}

	a.running = false

	return nil
}

// Running reports whether the Run loop is active.
func (a *Apple2) Running() bool {
	return a.running
}

// Stop ends a Run loop at the next frame boundary. The instruction in
// flight completes - the CPU only yields between instructions.
func (a *Apple2) Stop() {
	a.running = false
}
