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

package cpu

import (
	"fmt"
	"strings"

	"github.com/iflan/apple2go/hardware/cpu/instructions"
)

// Result records the execution of the most recent instruction. It is
// consumed by the disassembly output and the debugger.
type Result struct {
	// address of the instruction
	Address uint16

	// the definition of the executed opcode. nil when the "instruction" was
	// an interrupt service sequence
	Defn *instructions.Definition

	// the operand bytes of the instruction, if any
	InstructionData uint16

	// cycles spent on the instruction, including any penalties
	Cycles int

	// whether indexing or branching crossed a page and cost a penalty cycle
	PageFault bool

	// whether a branch instruction changed the PC
	BranchSuccess bool

	// non-empty when the NMOS indirect JMP bug was triggered
	CPUBug string

	// "NMI" or "IRQ" when the result is an interrupt service sequence
	Interrupt string
}

// String returns the result as a disassembly line:
//
//	$fded LDA ($3c),Y  [5]
func (r Result) String() string {
	if r.Interrupt != "" {
		return fmt.Sprintf("$%04x %s  [%d]", r.Address, r.Interrupt, r.Cycles)
	}
	if r.Defn == nil {
		return fmt.Sprintf("$%04x ???", r.Address)
	}

	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("$%04x %s", r.Address, r.Defn.Mnemonic))

	switch r.Defn.AddressingMode {
	case instructions.Implied:
	case instructions.Accumulator:
		s.WriteString(" A")
	case instructions.Immediate:
		s.WriteString(fmt.Sprintf(" #$%02x", r.InstructionData))
	case instructions.Relative:
		// show the branch target rather than the raw offset
		target := r.Address + 2 + r.InstructionData
		if r.InstructionData&0x80 == 0x80 {
			target -= 0x0100
		}
		s.WriteString(fmt.Sprintf(" $%04x", target))
	case instructions.Absolute:
		s.WriteString(fmt.Sprintf(" $%04x", r.InstructionData))
	case instructions.ZeroPage:
		s.WriteString(fmt.Sprintf(" $%02x", r.InstructionData))
	case instructions.Indirect:
		s.WriteString(fmt.Sprintf(" ($%04x)", r.InstructionData))
	case instructions.IndexedIndirect:
		s.WriteString(fmt.Sprintf(" ($%02x,X)", r.InstructionData))
	case instructions.IndirectIndexed:
		s.WriteString(fmt.Sprintf(" ($%02x),Y", r.InstructionData))
	case instructions.AbsoluteIndexedX:
		s.WriteString(fmt.Sprintf(" $%04x,X", r.InstructionData))
	case instructions.AbsoluteIndexedY:
		s.WriteString(fmt.Sprintf(" $%04x,Y", r.InstructionData))
	case instructions.ZeroPageIndexedX:
		s.WriteString(fmt.Sprintf(" $%02x,X", r.InstructionData))
	case instructions.ZeroPageIndexedY:
		s.WriteString(fmt.Sprintf(" $%02x,Y", r.InstructionData))
	case instructions.ZeroPageIndirect:
		s.WriteString(fmt.Sprintf(" ($%02x)", r.InstructionData))
	case instructions.AbsoluteIndexedIndirect:
		s.WriteString(fmt.Sprintf(" ($%04x,X)", r.InstructionData))
	}

	s.WriteString(fmt.Sprintf("  [%d]", r.Cycles))

	if r.CPUBug != "" {
		s.WriteString(fmt.Sprintf(" *%s", r.CPUBug))
	}

	return s.String()
}
