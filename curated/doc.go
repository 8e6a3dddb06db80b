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

// Package curated is how errors are created in this project. Errors are
// created from a pattern string and tested with the Is() and Has() functions,
// giving us sentinel-like behaviour without a proliferation of error types.
//
// The only errors that matter to a user of the emulation core are the ones
// raised at construction (overlapping page handlers) and the ones raised when
// ingesting external data (disk images, state snapshots). Everything else is
// recovered locally - a running Apple II cannot fault.
package curated
