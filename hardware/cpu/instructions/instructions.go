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

// Package instructions defines the instruction sets of the NMOS 6502 and the
// 65C02. The cpu package drives execution from a 256 entry table of
// Definition values, one table per processor model.
package instructions

import "fmt"

// AddressingMode describes the method by which data for the instruction is
// located.
type AddressingMode int

// List of supported addressing modes.
const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	Relative // relative addressing is used for branch instructions

	Absolute // abs
	ZeroPage // zpg
	Indirect // (ind) - JMP only

	IndexedIndirect // (zpg,X)
	IndirectIndexed // (zpg),Y

	AbsoluteIndexedX // abs,X
	AbsoluteIndexedY // abs,Y

	ZeroPageIndexedX // zpg,X
	ZeroPageIndexedY // zpg,Y

	// 65C02 additions
	ZeroPageIndirect        // (zpg)
	AbsoluteIndexedIndirect // (abs,X) - JMP only
)

// EffectCategory categorises an instruction by the effect it has.
type EffectCategory int

// List of effect categories.
const (
	Read EffectCategory = iota
	Write
	RMW

	// the following categories have a variable effect on the program
	// counter, depending on the instruction's precise operand
	Flow
	Subroutine
	Interrupt
)

// Operator is the instruction operation, separated from addressing concerns.
type Operator int

// List of operators, documented NMOS set first.
const (
	Adc Operator = iota
	And
	Asl
	Bcc
	Bcs
	Beq
	Bit
	Bmi
	Bne
	Bpl
	Brk
	Bvc
	Bvs
	Clc
	Cld
	Cli
	Clv
	Cmp
	Cpx
	Cpy
	Dec
	Dex
	Dey
	Eor
	Inc
	Inx
	Iny
	Jmp
	Jsr
	Lda
	Ldx
	Ldy
	Lsr
	Nop
	Ora
	Pha
	Php
	Pla
	Plp
	Rol
	Ror
	Rti
	Rts
	Sbc
	Sec
	Sed
	Sei
	Sta
	Stx
	Sty
	Tax
	Tay
	Tsx
	Txa
	Txs
	Tya

	// 65C02 additions
	Bra
	Phx
	Phy
	Plx
	Ply
	Stz
	Trb
	Tsb
)

// Definition defines a single opcode.
type Definition struct {
	OpCode         uint8
	Operator       Operator
	Mnemonic       string
	Bytes          int
	Cycles         int
	AddressingMode AddressingMode
	PageSensitive  bool
	Effect         EffectCategory

	// Undocumented is true for opcodes outside the documented set. They
	// execute as NOPs of the recorded length and cycle count.
	Undocumented bool
}

// String returns a single instruction definition as a string.
func (defn Definition) String() string {
	return fmt.Sprintf("%02x %s +%dbytes (%d cycles)", defn.OpCode, defn.Mnemonic, defn.Bytes, defn.Cycles)
}

// IsBranch returns true if instruction is a branch instruction.
func (defn Definition) IsBranch() bool {
	return defn.AddressingMode == Relative && defn.Effect == Flow
}
