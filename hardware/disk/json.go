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

package disk

import (
	"encoding/base64"
	"encoding/json"

	"github.com/iflan/apple2go/logger"
)

// Descriptor is the JSON wrapper format for disk images. data is either a
// base64 string of the raw image or, for sectorized images, a nested
// array: tracks[track][sector] of 256 byte values.
type Descriptor struct {
	Type     string          `json:"type"`
	Name     string          `json:"name"`
	Category string          `json:"category,omitempty"`
	Encoding string          `json:"encoding"`
	Volume   int             `json:"volume,omitempty"`
	ReadOnly bool            `json:"readOnly,omitempty"`
	Gamepad  json.RawMessage `json:"gamepad,omitempty"`
	Data     json.RawMessage `json:"data"`
}

// SetJSON mounts an image described by a JSON wrapper. Returns false if
// the descriptor cannot be decoded.
func (dc *DiskII) SetJSON(n int, jsonString string) bool {
	var desc Descriptor
	if err := json.Unmarshal([]byte(jsonString), &desc); err != nil {
		logger.Logf("disk", "json descriptor: %v", err)
		return false
	}

	var raw []uint8

	switch desc.Encoding {
	case "base64":
		var s string
		if err := json.Unmarshal(desc.Data, &s); err != nil {
			logger.Logf("disk", "json descriptor: %v", err)
			return false
		}
		var err error
		raw, err = base64.StdEncoding.DecodeString(s)
		if err != nil {
			logger.Logf("disk", "json descriptor: %v", err)
			return false
		}

	case "json":
		var tracks [][][]uint8
		if err := json.Unmarshal(desc.Data, &tracks); err != nil {
			logger.Logf("disk", "json descriptor: %v", err)
			return false
		}
		for _, track := range tracks {
			for _, sector := range track {
				if len(sector) != sectorBytes {
					logger.Log("disk", "json descriptor: bad sector length")
					return false
				}
				raw = append(raw, sector...)
			}
		}

	default:
		logger.Logf("disk", "json descriptor: unknown encoding (%s)", desc.Encoding)
		return false
	}

	if !dc.SetBinary(n, desc.Name, desc.Type, raw) {
		return false
	}

	d := dc.Drive(n)
	if desc.Volume > 0 {
		d.volume = uint8(desc.Volume)
	}
	d.writeProtect = d.writeProtect || desc.ReadOnly

	return true
}

// GetJSON returns the image in a drive as a JSON wrapper with base64
// data. Returns the empty string for an empty drive.
func (dc *DiskII) GetJSON(n int, pretty bool) string {
	d := dc.Drive(n)
	if len(d.tracks) == 0 {
		return ""
	}

	raw := dc.GetBinary(n)
	if raw == nil {
		return ""
	}

	data, _ := json.Marshal(base64.StdEncoding.EncodeToString(raw))

	desc := Descriptor{
		Type:     d.ext,
		Name:     d.name,
		Encoding: "base64",
		Volume:   int(d.volume),
		ReadOnly: d.writeProtect,
		Data:     data,
	}

	var out []uint8
	var err error
	if pretty {
		out, err = json.MarshalIndent(desc, "", "  ")
	} else {
		out, err = json.Marshal(desc)
	}
	if err != nil {
		return ""
	}

	return string(out)
}
