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

package instructions

// Model selects between the two processor models found in the Apple II
// family.
type Model int

// The II and II+ carry the NMOS 6502. The enhanced IIe carries the 65C02.
const (
	NMOS Model = iota
	CMOS
)

// entry is one row of the master opcode list. cmos entries exist only in the
// 65C02 instruction set - on the NMOS table they decode as undocumented NOPs
// of the same size and cycle count.
type entry struct {
	operator      Operator
	mnemonic      string
	mode          AddressingMode
	opcode        uint8
	bytes         int
	cycles        int
	pageSensitive bool
	effect        EffectCategory
	cmos          bool
}

// the master opcode list. cycle counts are the documented base counts; the
// cpu package adds page-crossing and branch penalties at run time for
// pageSensitive and Relative entries.
var master = []entry{
	{Lda, "LDA", Immediate, 0xa9, 2, 2, false, Read, false},
	{Lda, "LDA", ZeroPage, 0xa5, 2, 3, false, Read, false},
	{Lda, "LDA", ZeroPageIndexedX, 0xb5, 2, 4, false, Read, false},
	{Lda, "LDA", Absolute, 0xad, 3, 4, false, Read, false},
	{Lda, "LDA", AbsoluteIndexedX, 0xbd, 3, 4, true, Read, false},
	{Lda, "LDA", AbsoluteIndexedY, 0xb9, 3, 4, true, Read, false},
	{Lda, "LDA", IndexedIndirect, 0xa1, 2, 6, false, Read, false},
	{Lda, "LDA", IndirectIndexed, 0xb1, 2, 5, true, Read, false},
	{Lda, "LDA", ZeroPageIndirect, 0xb2, 2, 5, false, Read, true},

	{Ldx, "LDX", Immediate, 0xa2, 2, 2, false, Read, false},
	{Ldx, "LDX", ZeroPage, 0xa6, 2, 3, false, Read, false},
	{Ldx, "LDX", ZeroPageIndexedY, 0xb6, 2, 4, false, Read, false},
	{Ldx, "LDX", Absolute, 0xae, 3, 4, false, Read, false},
	{Ldx, "LDX", AbsoluteIndexedY, 0xbe, 3, 4, true, Read, false},

	{Ldy, "LDY", Immediate, 0xa0, 2, 2, false, Read, false},
	{Ldy, "LDY", ZeroPage, 0xa4, 2, 3, false, Read, false},
	{Ldy, "LDY", ZeroPageIndexedX, 0xb4, 2, 4, false, Read, false},
	{Ldy, "LDY", Absolute, 0xac, 3, 4, false, Read, false},
	{Ldy, "LDY", AbsoluteIndexedX, 0xbc, 3, 4, true, Read, false},

	{Sta, "STA", ZeroPage, 0x85, 2, 3, false, Write, false},
	{Sta, "STA", ZeroPageIndexedX, 0x95, 2, 4, false, Write, false},
	{Sta, "STA", Absolute, 0x8d, 3, 4, false, Write, false},
	{Sta, "STA", AbsoluteIndexedX, 0x9d, 3, 5, false, Write, false},
	{Sta, "STA", AbsoluteIndexedY, 0x99, 3, 5, false, Write, false},
	{Sta, "STA", IndexedIndirect, 0x81, 2, 6, false, Write, false},
	{Sta, "STA", IndirectIndexed, 0x91, 2, 6, false, Write, false},
	{Sta, "STA", ZeroPageIndirect, 0x92, 2, 5, false, Write, true},

	{Stx, "STX", ZeroPage, 0x86, 2, 3, false, Write, false},
	{Stx, "STX", ZeroPageIndexedY, 0x96, 2, 4, false, Write, false},
	{Stx, "STX", Absolute, 0x8e, 3, 4, false, Write, false},

	{Sty, "STY", ZeroPage, 0x84, 2, 3, false, Write, false},
	{Sty, "STY", ZeroPageIndexedX, 0x94, 2, 4, false, Write, false},
	{Sty, "STY", Absolute, 0x8c, 3, 4, false, Write, false},

	{Stz, "STZ", ZeroPage, 0x64, 2, 3, false, Write, true},
	{Stz, "STZ", ZeroPageIndexedX, 0x74, 2, 4, false, Write, true},
	{Stz, "STZ", Absolute, 0x9c, 3, 4, false, Write, true},
	{Stz, "STZ", AbsoluteIndexedX, 0x9e, 3, 5, false, Write, true},

	{Adc, "ADC", Immediate, 0x69, 2, 2, false, Read, false},
	{Adc, "ADC", ZeroPage, 0x65, 2, 3, false, Read, false},
	{Adc, "ADC", ZeroPageIndexedX, 0x75, 2, 4, false, Read, false},
	{Adc, "ADC", Absolute, 0x6d, 3, 4, false, Read, false},
	{Adc, "ADC", AbsoluteIndexedX, 0x7d, 3, 4, true, Read, false},
	{Adc, "ADC", AbsoluteIndexedY, 0x79, 3, 4, true, Read, false},
	{Adc, "ADC", IndexedIndirect, 0x61, 2, 6, false, Read, false},
	{Adc, "ADC", IndirectIndexed, 0x71, 2, 5, true, Read, false},
	{Adc, "ADC", ZeroPageIndirect, 0x72, 2, 5, false, Read, true},

	{Sbc, "SBC", Immediate, 0xe9, 2, 2, false, Read, false},
	{Sbc, "SBC", ZeroPage, 0xe5, 2, 3, false, Read, false},
	{Sbc, "SBC", ZeroPageIndexedX, 0xf5, 2, 4, false, Read, false},
	{Sbc, "SBC", Absolute, 0xed, 3, 4, false, Read, false},
	{Sbc, "SBC", AbsoluteIndexedX, 0xfd, 3, 4, true, Read, false},
	{Sbc, "SBC", AbsoluteIndexedY, 0xf9, 3, 4, true, Read, false},
	{Sbc, "SBC", IndexedIndirect, 0xe1, 2, 6, false, Read, false},
	{Sbc, "SBC", IndirectIndexed, 0xf1, 2, 5, true, Read, false},
	{Sbc, "SBC", ZeroPageIndirect, 0xf2, 2, 5, false, Read, true},

	{Cmp, "CMP", Immediate, 0xc9, 2, 2, false, Read, false},
	{Cmp, "CMP", ZeroPage, 0xc5, 2, 3, false, Read, false},
	{Cmp, "CMP", ZeroPageIndexedX, 0xd5, 2, 4, false, Read, false},
	{Cmp, "CMP", Absolute, 0xcd, 3, 4, false, Read, false},
	{Cmp, "CMP", AbsoluteIndexedX, 0xdd, 3, 4, true, Read, false},
	{Cmp, "CMP", AbsoluteIndexedY, 0xd9, 3, 4, true, Read, false},
	{Cmp, "CMP", IndexedIndirect, 0xc1, 2, 6, false, Read, false},
	{Cmp, "CMP", IndirectIndexed, 0xd1, 2, 5, true, Read, false},
	{Cmp, "CMP", ZeroPageIndirect, 0xd2, 2, 5, false, Read, true},

	{Cpx, "CPX", Immediate, 0xe0, 2, 2, false, Read, false},
	{Cpx, "CPX", ZeroPage, 0xe4, 2, 3, false, Read, false},
	{Cpx, "CPX", Absolute, 0xec, 3, 4, false, Read, false},

	{Cpy, "CPY", Immediate, 0xc0, 2, 2, false, Read, false},
	{Cpy, "CPY", ZeroPage, 0xc4, 2, 3, false, Read, false},
	{Cpy, "CPY", Absolute, 0xcc, 3, 4, false, Read, false},

	{Bit, "BIT", Immediate, 0x89, 2, 2, false, Read, true},
	{Bit, "BIT", ZeroPage, 0x24, 2, 3, false, Read, false},
	{Bit, "BIT", ZeroPageIndexedX, 0x34, 2, 4, false, Read, true},
	{Bit, "BIT", Absolute, 0x2c, 3, 4, false, Read, false},
	{Bit, "BIT", AbsoluteIndexedX, 0x3c, 3, 4, true, Read, true},

	{And, "AND", Immediate, 0x29, 2, 2, false, Read, false},
	{And, "AND", ZeroPage, 0x25, 2, 3, false, Read, false},
	{And, "AND", ZeroPageIndexedX, 0x35, 2, 4, false, Read, false},
	{And, "AND", Absolute, 0x2d, 3, 4, false, Read, false},
	{And, "AND", AbsoluteIndexedX, 0x3d, 3, 4, true, Read, false},
	{And, "AND", AbsoluteIndexedY, 0x39, 3, 4, true, Read, false},
	{And, "AND", IndexedIndirect, 0x21, 2, 6, false, Read, false},
	{And, "AND", IndirectIndexed, 0x31, 2, 5, true, Read, false},
	{And, "AND", ZeroPageIndirect, 0x32, 2, 5, false, Read, true},

	{Ora, "ORA", Immediate, 0x09, 2, 2, false, Read, false},
	{Ora, "ORA", ZeroPage, 0x05, 2, 3, false, Read, false},
	{Ora, "ORA", ZeroPageIndexedX, 0x15, 2, 4, false, Read, false},
	{Ora, "ORA", Absolute, 0x0d, 3, 4, false, Read, false},
	{Ora, "ORA", AbsoluteIndexedX, 0x1d, 3, 4, true, Read, false},
	{Ora, "ORA", AbsoluteIndexedY, 0x19, 3, 4, true, Read, false},
	{Ora, "ORA", IndexedIndirect, 0x01, 2, 6, false, Read, false},
	{Ora, "ORA", IndirectIndexed, 0x11, 2, 5, true, Read, false},
	{Ora, "ORA", ZeroPageIndirect, 0x12, 2, 5, false, Read, true},

	{Eor, "EOR", Immediate, 0x49, 2, 2, false, Read, false},
	{Eor, "EOR", ZeroPage, 0x45, 2, 3, false, Read, false},
	{Eor, "EOR", ZeroPageIndexedX, 0x55, 2, 4, false, Read, false},
	{Eor, "EOR", Absolute, 0x4d, 3, 4, false, Read, false},
	{Eor, "EOR", AbsoluteIndexedX, 0x5d, 3, 4, true, Read, false},
	{Eor, "EOR", AbsoluteIndexedY, 0x59, 3, 4, true, Read, false},
	{Eor, "EOR", IndexedIndirect, 0x41, 2, 6, false, Read, false},
	{Eor, "EOR", IndirectIndexed, 0x51, 2, 5, true, Read, false},
	{Eor, "EOR", ZeroPageIndirect, 0x52, 2, 5, false, Read, true},

	{Inc, "INC", ZeroPage, 0xe6, 2, 5, false, RMW, false},
	{Inc, "INC", ZeroPageIndexedX, 0xf6, 2, 6, false, RMW, false},
	{Inc, "INC", Absolute, 0xee, 3, 6, false, RMW, false},
	{Inc, "INC", AbsoluteIndexedX, 0xfe, 3, 7, false, RMW, false},
	{Inc, "INC", Accumulator, 0x1a, 1, 2, false, Read, true},

	{Dec, "DEC", ZeroPage, 0xc6, 2, 5, false, RMW, false},
	{Dec, "DEC", ZeroPageIndexedX, 0xd6, 2, 6, false, RMW, false},
	{Dec, "DEC", Absolute, 0xce, 3, 6, false, RMW, false},
	{Dec, "DEC", AbsoluteIndexedX, 0xde, 3, 7, false, RMW, false},
	{Dec, "DEC", Accumulator, 0x3a, 1, 2, false, Read, true},

	{Inx, "INX", Implied, 0xe8, 1, 2, false, Read, false},
	{Iny, "INY", Implied, 0xc8, 1, 2, false, Read, false},
	{Dex, "DEX", Implied, 0xca, 1, 2, false, Read, false},
	{Dey, "DEY", Implied, 0x88, 1, 2, false, Read, false},

	{Asl, "ASL", Accumulator, 0x0a, 1, 2, false, Read, false},
	{Asl, "ASL", ZeroPage, 0x06, 2, 5, false, RMW, false},
	{Asl, "ASL", ZeroPageIndexedX, 0x16, 2, 6, false, RMW, false},
	{Asl, "ASL", Absolute, 0x0e, 3, 6, false, RMW, false},
	{Asl, "ASL", AbsoluteIndexedX, 0x1e, 3, 7, false, RMW, false},

	{Lsr, "LSR", Accumulator, 0x4a, 1, 2, false, Read, false},
	{Lsr, "LSR", ZeroPage, 0x46, 2, 5, false, RMW, false},
	{Lsr, "LSR", ZeroPageIndexedX, 0x56, 2, 6, false, RMW, false},
	{Lsr, "LSR", Absolute, 0x4e, 3, 6, false, RMW, false},
	{Lsr, "LSR", AbsoluteIndexedX, 0x5e, 3, 7, false, RMW, false},

	{Rol, "ROL", Accumulator, 0x2a, 1, 2, false, Read, false},
	{Rol, "ROL", ZeroPage, 0x26, 2, 5, false, RMW, false},
	{Rol, "ROL", ZeroPageIndexedX, 0x36, 2, 6, false, RMW, false},
	{Rol, "ROL", Absolute, 0x2e, 3, 6, false, RMW, false},
	{Rol, "ROL", AbsoluteIndexedX, 0x3e, 3, 7, false, RMW, false},

	{Ror, "ROR", Accumulator, 0x6a, 1, 2, false, Read, false},
	{Ror, "ROR", ZeroPage, 0x66, 2, 5, false, RMW, false},
	{Ror, "ROR", ZeroPageIndexedX, 0x76, 2, 6, false, RMW, false},
	{Ror, "ROR", Absolute, 0x6e, 3, 6, false, RMW, false},
	{Ror, "ROR", AbsoluteIndexedX, 0x7e, 3, 7, false, RMW, false},

	{Trb, "TRB", ZeroPage, 0x14, 2, 5, false, RMW, true},
	{Trb, "TRB", Absolute, 0x1c, 3, 6, false, RMW, true},
	{Tsb, "TSB", ZeroPage, 0x04, 2, 5, false, RMW, true},
	{Tsb, "TSB", Absolute, 0x0c, 3, 6, false, RMW, true},

	{Clc, "CLC", Implied, 0x18, 1, 2, false, Read, false},
	{Sec, "SEC", Implied, 0x38, 1, 2, false, Read, false},
	{Cli, "CLI", Implied, 0x58, 1, 2, false, Read, false},
	{Sei, "SEI", Implied, 0x78, 1, 2, false, Read, false},
	{Cld, "CLD", Implied, 0xd8, 1, 2, false, Read, false},
	{Sed, "SED", Implied, 0xf8, 1, 2, false, Read, false},
	{Clv, "CLV", Implied, 0xb8, 1, 2, false, Read, false},

	{Bcc, "BCC", Relative, 0x90, 2, 2, true, Flow, false},
	{Bcs, "BCS", Relative, 0xb0, 2, 2, true, Flow, false},
	{Beq, "BEQ", Relative, 0xf0, 2, 2, true, Flow, false},
	{Bne, "BNE", Relative, 0xd0, 2, 2, true, Flow, false},
	{Bmi, "BMI", Relative, 0x30, 2, 2, true, Flow, false},
	{Bpl, "BPL", Relative, 0x10, 2, 2, true, Flow, false},
	{Bvc, "BVC", Relative, 0x50, 2, 2, true, Flow, false},
	{Bvs, "BVS", Relative, 0x70, 2, 2, true, Flow, false},
	{Bra, "BRA", Relative, 0x80, 2, 2, true, Flow, true},

	{Jmp, "JMP", Absolute, 0x4c, 3, 3, false, Flow, false},
	{Jmp, "JMP", Indirect, 0x6c, 3, 5, false, Flow, false},
	{Jmp, "JMP", AbsoluteIndexedIndirect, 0x7c, 3, 6, false, Flow, true},

	{Jsr, "JSR", Absolute, 0x20, 3, 6, false, Subroutine, false},
	{Rts, "RTS", Implied, 0x60, 1, 6, false, Subroutine, false},

	{Brk, "BRK", Implied, 0x00, 1, 7, false, Interrupt, false},
	{Rti, "RTI", Implied, 0x40, 1, 6, false, Interrupt, false},

	{Nop, "NOP", Implied, 0xea, 1, 2, false, Read, false},

	{Tax, "TAX", Implied, 0xaa, 1, 2, false, Read, false},
	{Txa, "TXA", Implied, 0x8a, 1, 2, false, Read, false},
	{Tay, "TAY", Implied, 0xa8, 1, 2, false, Read, false},
	{Tya, "TYA", Implied, 0x98, 1, 2, false, Read, false},
	{Txs, "TXS", Implied, 0x9a, 1, 2, false, Read, false},
	{Tsx, "TSX", Implied, 0xba, 1, 2, false, Read, false},

	{Pha, "PHA", Implied, 0x48, 1, 3, false, Read, false},
	{Pla, "PLA", Implied, 0x68, 1, 4, false, Read, false},
	{Php, "PHP", Implied, 0x08, 1, 3, false, Read, false},
	{Plp, "PLP", Implied, 0x28, 1, 4, false, Read, false},
	{Phx, "PHX", Implied, 0xda, 1, 3, false, Read, true},
	{Plx, "PLX", Implied, 0xfa, 1, 4, false, Read, true},
	{Phy, "PHY", Implied, 0x5a, 1, 3, false, Read, true},
	{Ply, "PLY", Implied, 0x7a, 1, 4, false, Read, true},
}

// gap describes an opcode outside the documented set. On both models these
// execute as NOPs of the recorded length and cycle count - the 65C02 defines
// them that way and we extend the same policy to the NMOS table rather than
// model the undocumented NMOS behaviour.
type gap struct {
	opcode uint8
	bytes  int
	cycles int
}

var gaps = []gap{
	{0x02, 2, 2}, {0x22, 2, 2}, {0x42, 2, 2}, {0x62, 2, 2},
	{0x82, 2, 2}, {0xc2, 2, 2}, {0xe2, 2, 2},
	{0x03, 1, 1}, {0x13, 1, 1}, {0x23, 1, 1}, {0x33, 1, 1},
	{0x43, 1, 1}, {0x53, 1, 1}, {0x63, 1, 1}, {0x73, 1, 1},
	{0x83, 1, 1}, {0x93, 1, 1}, {0xa3, 1, 1}, {0xb3, 1, 1},
	{0xc3, 1, 1}, {0xd3, 1, 1}, {0xe3, 1, 1}, {0xf3, 1, 1},
	{0x44, 2, 3}, {0x54, 2, 4}, {0xd4, 2, 4}, {0xf4, 2, 4},
	{0x07, 1, 1}, {0x17, 1, 1}, {0x27, 1, 1}, {0x37, 1, 1},
	{0x47, 1, 1}, {0x57, 1, 1}, {0x67, 1, 1}, {0x77, 1, 1},
	{0x87, 1, 1}, {0x97, 1, 1}, {0xa7, 1, 1}, {0xb7, 1, 1},
	{0xc7, 1, 1}, {0xd7, 1, 1}, {0xe7, 1, 1}, {0xf7, 1, 1},
	{0x0b, 1, 1}, {0x1b, 1, 1}, {0x2b, 1, 1}, {0x3b, 1, 1},
	{0x4b, 1, 1}, {0x5b, 1, 1}, {0x6b, 1, 1}, {0x7b, 1, 1},
	{0x8b, 1, 1}, {0x9b, 1, 1}, {0xab, 1, 1}, {0xbb, 1, 1},
	{0xcb, 1, 1}, {0xdb, 1, 1}, {0xeb, 1, 1}, {0xfb, 1, 1},
	{0x5c, 3, 8}, {0xdc, 3, 4}, {0xfc, 3, 4},
	{0x0f, 1, 1}, {0x1f, 1, 1}, {0x2f, 1, 1}, {0x3f, 1, 1},
	{0x4f, 1, 1}, {0x5f, 1, 1}, {0x6f, 1, 1}, {0x7f, 1, 1},
	{0x8f, 1, 1}, {0x9f, 1, 1}, {0xaf, 1, 1}, {0xbf, 1, 1},
	{0xcf, 1, 1}, {0xdf, 1, 1}, {0xef, 1, 1}, {0xff, 1, 1},
}

// GetDefinitions returns the 256 entry instruction table for the processor
// model. Every opcode has an entry - an emulated 6502 can never wedge on an
// unknown byte.
func GetDefinitions(model Model) *[256]Definition {
	var defs [256]Definition

	for _, e := range master {
		if e.cmos && model != CMOS {
			// the opcode exists only on the 65C02. the NMOS part decodes the
			// byte as an undocumented operation, which we run as a NOP of the
			// same size
			defs[e.opcode] = Definition{
				OpCode:         e.opcode,
				Operator:       Nop,
				Mnemonic:       "NOP",
				Bytes:          e.bytes,
				Cycles:         e.cycles,
				AddressingMode: Implied,
				Effect:         Read,
				Undocumented:   true,
			}
			continue
		}

		defs[e.opcode] = Definition{
			OpCode:         e.opcode,
			Operator:       e.operator,
			Mnemonic:       e.mnemonic,
			Bytes:          e.bytes,
			Cycles:         e.cycles,
			AddressingMode: e.mode,
			PageSensitive:  e.pageSensitive,
			Effect:         e.effect,
		}
	}

	for _, g := range gaps {
		defs[g.opcode] = Definition{
			OpCode:         g.opcode,
			Operator:       Nop,
			Mnemonic:       "NOP",
			Bytes:          g.bytes,
			Cycles:         g.cycles,
			AddressingMode: Implied,
			Effect:         Read,
			Undocumented:   true,
		}
	}

	return &defs
}
