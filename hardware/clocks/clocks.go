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

// Package clocks defines the clock values for the emulated machine.
package clocks

// The Apple II master clock is 14.31818MHz. The CPU clock is the master
// clock divided by 14, with one cycle in every 65 stretched by two master
// clock periods to keep the video subcarrier in phase. The commonly quoted
// effective rate is 1.023MHz or 1023kHz.
const (
	// NTSC master crystal frequency in Hz.
	Master = 14318180

	// Standard effective CPU clock in kHz.
	StandardKHz = 1023

	// Accelerated CPU clock in kHz ("4MHz" machines of the era).
	AcceleratedKHz = 4092

	// CPU cycles in one NTSC frame: 65 cycles per scanline, 262 scanlines.
	CyclesPerFrame = 65 * 262

	// CPU cycles spent in the visible portion of a frame. The remaining 70
	// scanlines are the vertical blanking interval reported at $C019.
	CyclesPerVisible = 65 * 192

	// Frames per second, used by hosts to convert frame counts to seconds.
	FramesPerSecond = 60
)
