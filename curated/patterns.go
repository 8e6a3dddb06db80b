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

package curated

// Patterns shared by more than one package. Patterns used by only one package
// are declared in that package.
const (
	// ImageFormat is used for disk/block images that cannot be recognised.
	// The drive is left unchanged when an error with this pattern is seen.
	ImageFormat = "image format: %v"

	// StateDeserialize is used when a machine state snapshot cannot be
	// restored. The previous state is retained.
	StateDeserialize = "state deserialize: %v"

	// BusConflict is returned at construction when two page handlers claim
	// the same page.
	BusConflict = "bus conflict: %v"
)
