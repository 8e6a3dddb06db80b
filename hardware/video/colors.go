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

package video

// the sixteen lores colors. values are the commonly used approximations of
// the NTSC output, indexed by the lores nibble.
var loresPalette = [16]Color{
	{0x00, 0x00, 0x00, 0xff}, // black
	{0xdd, 0x00, 0x33, 0xff}, // magenta
	{0x00, 0x00, 0x99, 0xff}, // dark blue
	{0xdd, 0x22, 0xdd, 0xff}, // purple
	{0x00, 0x77, 0x22, 0xff}, // dark green
	{0x55, 0x55, 0x55, 0xff}, // grey 1
	{0x22, 0x22, 0xff, 0xff}, // medium blue
	{0x66, 0xaa, 0xff, 0xff}, // light blue
	{0x88, 0x55, 0x00, 0xff}, // brown
	{0xff, 0x66, 0x00, 0xff}, // orange
	{0xaa, 0xaa, 0xaa, 0xff}, // grey 2
	{0xff, 0x99, 0x88, 0xff}, // pink
	{0x11, 0xdd, 0x00, 0xff}, // green
	{0xff, 0xff, 0x00, 0xff}, // yellow
	{0x44, 0xff, 0x99, 0xff}, // aquamarine
	{0xff, 0xff, 0xff, 0xff}, // white
}

// hires artifact colors. the pair selected depends on the phase bit of the
// byte the pixel came from.
var (
	black  = Color{0x00, 0x00, 0x00, 0xff}
	white  = Color{0xff, 0xff, 0xff, 0xff}
	green  = Color{0x11, 0xdd, 0x00, 0xff}
	purple = Color{0xdd, 0x22, 0xdd, 0xff}
	orange = Color{0xff, 0x66, 0x00, 0xff}
	blue   = Color{0x22, 0x22, 0xff, 0xff}
)

// the monochrome "green screen" phosphor.
var monoGreen = Color{0x00, 0xe0, 0x00, 0xff}
