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

// Package diskloader loads disk images from the filesystem, tagging them
// by extension for the disk subsystem. The emulation core itself never
// touches the filesystem - it accepts byte buffers.
package diskloader

import (
	"crypto/sha1"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/iflan/apple2go/curated"
)

// FileExtensions is the list of file extensions recognised by the
// diskloader package. JSON files wrap one of the other formats.
var FileExtensions = [...]string{".dsk", ".do", ".po", ".nib", ".2mg", ".woz", ".hdv", ".json"}

// Loader is a disk image read from the filesystem, ready to hand to the
// disk surface of the machine.
type Loader struct {
	Filename string

	// Name is the filename without directory or extension.
	Name string

	// Ext is the lower case extension without the dot. "json" images are
	// JSON wrapper documents for SetJSON; everything else goes to
	// SetBinary.
	Ext string

	// sha1 of the file contents
	Hash string

	Data []uint8
}

// NewLoader is the preferred method of initialisation for the Loader
// type. The file is read immediately.
func NewLoader(filename string) (Loader, error) {
	ld := Loader{
		Filename: filename,
	}

	ext := strings.ToLower(path.Ext(filename))
	ok := false
	for _, e := range FileExtensions {
		if e == ext {
			ok = true
			break
		}
	}
	if !ok {
		return ld, curated.Errorf("diskloader: %v",
			curated.Errorf("unrecognised extension (%s)", ext))
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return ld, curated.Errorf("diskloader: %v", err)
	}

	ld.Name = strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	ld.Ext = strings.TrimPrefix(ext, ".")
	ld.Data = data
	ld.Hash = fmt.Sprintf("%x", sha1.Sum(data))

	return ld, nil
}

// IsJSON reports whether the loader holds a JSON wrapper document.
func (ld Loader) IsJSON() bool {
	return ld.Ext == "json"
}

// IsBlockDevice reports whether the image belongs on the SmartPort rather
// than in a Disk II drive.
func (ld Loader) IsBlockDevice() bool {
	return len(ld.Data) >= 800*1024
}
