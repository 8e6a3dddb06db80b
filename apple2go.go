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

// apple2go is an Apple II / IIe emulator.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/iflan/apple2go/debugger"
	"github.com/iflan/apple2go/diskloader"
	"github.com/iflan/apple2go/gui/sdlplay"
	"github.com/iflan/apple2go/hardware"
	"github.com/iflan/apple2go/logger"
	"github.com/iflan/apple2go/wavwriter"
)

func main() {
	var cli struct {
		Run   runCmd   `cmd:"" default:"1" help:"run the emulation in a window"`
		Debug debugCmd `cmd:"" help:"step the emulation in the terminal"`
		Wav   wavCmd   `cmd:"" help:"run headless and capture speaker output to a WAV file"`
	}

	ctx := kong.Parse(&cli)
	err := ctx.Run(&kong.Context{})
	if err != nil {
		logger.Tail(os.Stderr, 10)
	}
	ctx.FatalIfErrorf(err)
}

// machineArgs are the construction flags shared by every command.
type machineArgs struct {
	Model    string `name:"model" default:"iie" enum:"iiplus,iie" help:"machine model"`
	Enhanced bool   `name:"enhanced" default:"true" help:"65C02 on the IIe"`
	ROM      string `name:"rom" type:"existingfile" help:"path to the 12K system ROM"`
	CXROM    string `name:"cxrom" type:"existingfile" help:"path to the IIe internal $c100 ROM"`
	CharROM  string `name:"charrom" type:"existingfile" help:"path to the character generator ROM"`
	Mono     bool   `name:"mono" help:"monochrome display"`
	KHz      int    `name:"khz" default:"1023" help:"CPU clock in kHz"`

	Disks []string `arg:"" optional:"" type:"existingfile" help:"disk images for drive 1 and 2"`
}

func (m *machineArgs) build() (*hardware.Apple2, error) {
	opts := hardware.Options{
		Mono: m.Mono,
	}
	if m.Model == "iie" {
		opts.Model = hardware.IIe
		opts.Enhanced = m.Enhanced
	}

	var err error
	if m.ROM != "" {
		opts.SystemROM, err = os.ReadFile(m.ROM)
		if err != nil {
			return nil, err
		}
	}
	if m.CXROM != "" {
		opts.CXROM, err = os.ReadFile(m.CXROM)
		if err != nil {
			return nil, err
		}
	}
	if m.CharROM != "" {
		opts.CharacterROM, err = os.ReadFile(m.CharROM)
		if err != nil {
			return nil, err
		}
	}

	machine, err := hardware.NewApple2(opts)
	if err != nil {
		return nil, err
	}

	machine.IO.UpdateKHz(m.KHz)

	for i, filename := range m.Disks {
		if i >= 2 {
			break
		}

		ld, err := diskloader.NewLoader(filename)
		if err != nil {
			return nil, err
		}

		ok := false
		if ld.IsJSON() {
			ok = machine.Disk.SetJSON(i+1, string(ld.Data))
		} else {
			ok = machine.SetBinary(i+1, ld.Name, ld.Ext, ld.Data)
		}
		if !ok {
			return nil, fmt.Errorf("image not recognised: %s", filename)
		}
	}

	return machine, nil
}

type runCmd struct {
	machineArgs
}

func (r *runCmd) Run(ctx *kong.Context) error {
	machine, err := r.build()
	if err != nil {
		return err
	}

	scr, err := sdlplay.New(machine)
	if err != nil {
		return err
	}
	defer scr.Destroy()

	return scr.Run()
}

type debugCmd struct {
	machineArgs
}

func (d *debugCmd) Run(ctx *kong.Context) error {
	machine, err := d.build()
	if err != nil {
		return err
	}
	machine.Reset()

	return debugger.NewDebugger(machine).Run()
}

type wavCmd struct {
	machineArgs

	Output  string `name:"output" default:"apple2go.wav" help:"output file"`
	Seconds int    `name:"seconds" default:"10" help:"emulated seconds to run"`
}

func (w *wavCmd) Run(ctx *kong.Context) error {
	machine, err := w.build()
	if err != nil {
		return err
	}
	machine.Reset()

	aw := wavwriter.New(w.Output, machine.IO.KHz())

	for i := 0; i < w.Seconds*60; i++ {
		machine.AdvanceFrame(machine.FrameBudget())
		aw.Feed(machine.IO.Speaker.ReadEvents())
	}

	return aw.End()
}
