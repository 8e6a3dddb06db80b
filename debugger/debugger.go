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

// Package debugger is a minimal single key terminal debugger: step through
// instructions with a disassembly trace, run whole frames, inspect
// registers and the text screen. The terminal is put into cbreak mode so
// keys act immediately.
package debugger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/term"

	"github.com/iflan/apple2go/curated"
	"github.com/iflan/apple2go/hardware"
)

// Debugger drives a machine one instruction or one frame at a time.
type Debugger struct {
	machine *hardware.Apple2

	output io.Writer
}

// NewDebugger is the preferred method of initialisation for the Debugger
// type.
func NewDebugger(machine *hardware.Apple2) *Debugger {
	return &Debugger{
		machine: machine,
		output:  os.Stdout,
	}
}

func (dbg *Debugger) printf(format string, args ...interface{}) {
	fmt.Fprintf(dbg.output, format, args...)
}

func (dbg *Debugger) help() {
	dbg.printf("s step    f frame    g run 1s    r registers    t text screen    q quit\r\n")
}

// Run takes over the terminal until the user quits.
func (dbg *Debugger) Run() error {
	t, err := term.Open("/dev/tty")
	if err != nil {
		return curated.Errorf("debugger: %v", err)
	}
	defer t.Restore()

	if err := t.SetCbreak(); err != nil {
		return curated.Errorf("debugger: %v", err)
	}

	dbg.help()

	buf := make([]byte, 1)
	for {
		if _, err := t.Read(buf); err != nil {
			return curated.Errorf("debugger: %v", err)
		}

		switch buf[0] {
		case 's', ' ':
			dbg.machine.CPU.ExecuteInstruction()
			dbg.printf("%s\r\n", dbg.machine.CPU.LastResult.String())

		case 'f':
			dbg.machine.AdvanceFrame(dbg.machine.FrameBudget())
			dbg.printf("frame %d  %s\r\n", dbg.machine.GetStats().Frames, dbg.machine.CPU.String())

		case 'g':
			// a second of emulated time
			for i := 0; i < 60; i++ {
				dbg.machine.AdvanceFrame(dbg.machine.FrameBudget())
			}
			dbg.printf("%s\r\n", dbg.machine.CPU.String())

		case 'r':
			dbg.printf("%s\r\n", dbg.machine.CPU.String())

		case 't':
			for _, line := range strings.Split(dbg.machine.Screen.GetText(), "\n") {
				dbg.printf("%s\r\n", line)
			}

		case 'q', 0x03:
			return nil

		default:
			dbg.help()
		}
	}
}
