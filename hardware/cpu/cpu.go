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

	"github.com/iflan/apple2go/hardware/cpu/instructions"
	"github.com/iflan/apple2go/hardware/cpu/registers"
)

// Memory is the interface the CPU requires of the address bus. Accesses
// cannot fail - unmapped reads return a floating bus value and writes to
// read-only pages are swallowed by the bus itself.
type Memory interface {
	Read(address uint16) uint8
	Write(address uint16, v uint8)
}

// The interrupt and reset vectors.
const (
	NMIVector   = uint16(0xfffa)
	ResetVector = uint16(0xfffc)
	IRQVector   = uint16(0xfffe)
)

// CPU implements the MOS 6502 as found in the Apple II and II+, and the
// 65C02 of the enhanced IIe. Register logic is implemented by the types in
// the registers sub-package.
type CPU struct {
	PC     registers.ProgramCounter
	A      registers.Register
	X      registers.Register
	Y      registers.Register
	SP     registers.StackPointer
	Status registers.StatusRegister

	// cumulative cycle count. never reset, only restored by SetState()
	Cycles uint64

	// some operations only need a scratch accumulator
	acc8 registers.Register

	mem   Memory
	model instructions.Model
	defns *[256]instructions.Definition

	// interrupt lines. NMI is edge triggered so the pending flag clears when
	// serviced. IRQ is level triggered - the flag models the state of the
	// line and stays asserted until released by the device
	pendingNMI bool
	pendingIRQ bool

	// last result. used for disassembly and debugging
	LastResult Result
}

// NewCPU is the preferred method of initialisation for the CPU structure.
func NewCPU(model instructions.Model, mem Memory) *CPU {
	return &CPU{
		mem:    mem,
		model:  model,
		PC:     registers.NewProgramCounter(0),
		A:      registers.NewRegister(0, "A"),
		X:      registers.NewRegister(0, "X"),
		Y:      registers.NewRegister(0, "Y"),
		SP:     registers.NewStackPointer(0xfd),
		Status: registers.NewStatusRegister(),
		acc8:   registers.NewRegister(0, "acc"),
		defns:  instructions.GetDefinitions(model),
	}
}

// CurrentCycles returns the cumulative cycle count. Implements the clock
// interface consumed by the io, mmu and disk packages.
func (mc *CPU) CurrentCycles() uint64 {
	return mc.Cycles
}

// Model returns the processor model the CPU was created with.
func (mc *CPU) Model() instructions.Model {
	return mc.model
}

// Snapshot creates a copy of the CPU in its current state.
func (mc *CPU) Snapshot() *CPU {
	n := *mc
	return &n
}

// Plumb a new Memory implementation into the CPU.
func (mc *CPU) Plumb(mem Memory) {
	mc.mem = mem
}

func (mc *CPU) String() string {
	return fmt.Sprintf("%s %s %s %s %s %s",
		mc.PC, mc.A, mc.X, mc.Y, mc.SP, mc.Status)
}

// Reset runs the hardware reset sequence: the decimal flag is cleared, the
// interrupt disable flag is set, the stack pointer is set to $fd and the PC
// is loaded from the vector at $fffc. The sequence takes 7 cycles.
func (mc *CPU) Reset() {
	mc.Status.DecimalMode = false
	mc.Status.InterruptDisable = true
	mc.SP.Load(0xfd)
	mc.PC.Load(mc.read16(ResetVector))
	mc.pendingNMI = false
	mc.Cycles += 7
	mc.LastResult = Result{}
}

// NMI asserts the non-maskable interrupt line. The interrupt is edge
// triggered - it is serviced exactly once, at the next instruction boundary.
func (mc *CPU) NMI() {
	mc.pendingNMI = true
}

// IRQ asserts the interrupt request line. The line is level triggered and
// stays asserted until ReleaseIRQ() is called. The interrupt is serviced at
// an instruction boundary when the interrupt disable flag is clear.
func (mc *CPU) IRQ() {
	mc.pendingIRQ = true
}

// ReleaseIRQ releases the interrupt request line.
func (mc *CPU) ReleaseIRQ() {
	mc.pendingIRQ = false
}

// read8 is a bus read.
func (mc *CPU) read8(address uint16) uint8 {
	return mc.mem.Read(address)
}

// write8 is a bus write.
func (mc *CPU) write8(address uint16, v uint8) {
	mc.mem.Write(address, v)
}

// read16 reads a 16 bit value, low byte first.
func (mc *CPU) read16(address uint16) uint16 {
	lo := mc.mem.Read(address)
	hi := mc.mem.Read(address + 1)
	return (uint16(hi) << 8) | uint16(lo)
}

// read16zp reads a 16 bit value from the zero page, wrapping within the
// page. a pointer at $ff takes its high byte from $00.
func (mc *CPU) read16zp(zp uint8) uint16 {
	lo := mc.mem.Read(uint16(zp))
	hi := mc.mem.Read(uint16(zp + 1))
	return (uint16(hi) << 8) | uint16(lo)
}

// fetch8 reads the byte at PC and increments PC.
func (mc *CPU) fetch8() uint8 {
	v := mc.mem.Read(mc.PC.Address())
	mc.PC.Add(1)
	return v
}

// fetch16 reads a 16 bit operand at PC and increments PC twice.
func (mc *CPU) fetch16() uint16 {
	lo := mc.fetch8()
	hi := mc.fetch8()
	return (uint16(hi) << 8) | uint16(lo)
}

// push a byte onto the stack.
func (mc *CPU) push(v uint8) {
	mc.write8(mc.SP.Address(), v)
	mc.SP.Push()
}

// pull a byte from the stack.
func (mc *CPU) pull() uint8 {
	mc.SP.Pull()
	return mc.read8(mc.SP.Address())
}

// interrupt services a pending NMI or IRQ: the PC and the status register
// (with the break bit clear) are pushed and the PC is loaded from the
// vector. Takes 7 cycles. The 65C02 additionally clears the decimal flag.
func (mc *CPU) interrupt(vector uint16) {
	mc.push(uint8(mc.PC.Address() >> 8))
	mc.push(uint8(mc.PC.Address()))
	mc.push(mc.Status.Value(false))
	mc.Status.InterruptDisable = true
	if mc.model == instructions.CMOS {
		mc.Status.DecimalMode = false
	}
	mc.PC.Load(mc.read16(vector))
	mc.LastResult.Cycles += 7
}

// branch adds the (sign extended) offset to the PC if flag is set. A taken
// branch costs one extra cycle, two if the destination is on a different
// page to the instruction that follows the branch.
func (mc *CPU) branch(flag bool, offset uint8) {
	mc.LastResult.BranchSuccess = flag
	if !flag {
		return
	}

	// sign extend offset into a 16 bit value
	target := mc.PC.Address() + uint16(offset)
	if offset&0x80 == 0x80 {
		target -= 0x0100
	}

	// +1 cycle
	mc.LastResult.Cycles++

	if target&0xff00 != mc.PC.Address()&0xff00 {
		// +1 cycle
		mc.LastResult.Cycles++
		mc.LastResult.PageFault = true
	}

	mc.PC.Load(target)
}

// StepCycles executes whole instructions until the cumulative cycle count
// has advanced by at least n. Returns the number of cycles actually
// executed, which may overshoot by up to the length of the longest
// instruction.
func (mc *CPU) StepCycles(n int) int {
	target := mc.Cycles + uint64(n)
	start := mc.Cycles
	for mc.Cycles < target {
		mc.ExecuteInstruction()
	}
	return int(mc.Cycles - start)
}

// StepCyclesDebug is the same as StepCycles but the callback is invoked
// after every instruction with a disassembly of what just executed. If the
// callback returns false the stepping ends early.
func (mc *CPU) StepCyclesDebug(n int, callback func(string) bool) int {
	target := mc.Cycles + uint64(n)
	start := mc.Cycles
	for mc.Cycles < target {
		mc.ExecuteInstruction()
		if !callback(mc.LastResult.String()) {
			break
		}
	}
	return int(mc.Cycles - start)
}

// ExecuteInstruction steps the CPU forward one instruction. Pending
// interrupts are serviced first. The process for an instruction is:
//
//  1. read opcode and look up the instruction definition
//  2. resolve the effective address according to the addressing mode
//  3. perform the operation
//
// Cycle accounting is table driven: the definition carries the base count
// and the addressing/branch logic adds the page crossing penalties.
func (mc *CPU) ExecuteInstruction() {
	mc.LastResult = Result{}

	// service pending interrupts between instructions. NMI has priority and
	// is not maskable
	if mc.pendingNMI {
		mc.pendingNMI = false
		mc.LastResult.Interrupt = "NMI"
		mc.interrupt(NMIVector)
		mc.Cycles += uint64(mc.LastResult.Cycles)
		return
	}
	if mc.pendingIRQ && !mc.Status.InterruptDisable {
		mc.LastResult.Interrupt = "IRQ"
		mc.interrupt(IRQVector)
		mc.Cycles += uint64(mc.LastResult.Cycles)
		return
	}

	mc.LastResult.Address = mc.PC.Address()

	opcode := mc.fetch8()
	defn := &mc.defns[opcode]
	mc.LastResult.Defn = defn
	mc.LastResult.Cycles = defn.Cycles

	// address is the effective address once any indexing has taken place.
	// value is the instruction data: read from the program for immediate
	// mode and from the effective address for other read modes
	var address uint16
	var value uint8

	// whether the effective address crossed a page during indexing
	var pageCross bool

	switch defn.AddressingMode {
	case instructions.Implied, instructions.Accumulator:
		// no operand. undocumented NOPs decode as implied whatever their
		// real addressing mode, so skip any operand bytes they carry
		if defn.Bytes > 1 {
			mc.PC.Add(uint16(defn.Bytes - 1))
		}

	case instructions.Immediate:
		value = mc.fetch8()
		mc.LastResult.InstructionData = uint16(value)

	case instructions.Relative:
		value = mc.fetch8()
		mc.LastResult.InstructionData = uint16(value)

	case instructions.ZeroPage:
		address = uint16(mc.fetch8())
		mc.LastResult.InstructionData = address

	case instructions.ZeroPageIndexedX:
		zp := mc.fetch8()
		mc.LastResult.InstructionData = uint16(zp)
		address = uint16(zp + mc.X.Value())

	case instructions.ZeroPageIndexedY:
		zp := mc.fetch8()
		mc.LastResult.InstructionData = uint16(zp)
		address = uint16(zp + mc.Y.Value())

	case instructions.Absolute:
		address = mc.fetch16()
		mc.LastResult.InstructionData = address

	case instructions.AbsoluteIndexedX:
		base := mc.fetch16()
		mc.LastResult.InstructionData = base
		address = base + mc.X.Address()
		pageCross = base&0xff00 != address&0xff00

	case instructions.AbsoluteIndexedY:
		base := mc.fetch16()
		mc.LastResult.InstructionData = base
		address = base + mc.Y.Address()
		pageCross = base&0xff00 != address&0xff00

	case instructions.Indirect:
		ptr := mc.fetch16()
		mc.LastResult.InstructionData = ptr
		if mc.model == instructions.NMOS && ptr&0x00ff == 0x00ff {
			// the indirect JMP bug: the high byte of the target is read from
			// the first byte of the same page, not the next page
			lo := mc.read8(ptr)
			hi := mc.read8(ptr & 0xff00)
			address = (uint16(hi) << 8) | uint16(lo)
			mc.LastResult.CPUBug = "indirect JMP bug"
		} else {
			address = mc.read16(ptr)
			if mc.model == instructions.CMOS {
				// the 65C02 spends an extra cycle doing it correctly
				// +1 cycle
				mc.LastResult.Cycles++
			}
		}

	case instructions.IndexedIndirect:
		zp := mc.fetch8()
		mc.LastResult.InstructionData = uint16(zp)
		address = mc.read16zp(zp + mc.X.Value())

	case instructions.IndirectIndexed:
		zp := mc.fetch8()
		mc.LastResult.InstructionData = uint16(zp)
		base := mc.read16zp(zp)
		address = base + mc.Y.Address()
		pageCross = base&0xff00 != address&0xff00

	case instructions.ZeroPageIndirect:
		zp := mc.fetch8()
		mc.LastResult.InstructionData = uint16(zp)
		address = mc.read16zp(zp)

	case instructions.AbsoluteIndexedIndirect:
		base := mc.fetch16()
		mc.LastResult.InstructionData = base
		address = mc.read16(base + mc.X.Address())
	}

	// page crossing penalty applies to read instructions only. writes and
	// RMW instructions have the penalty baked into their base cycle count
	if pageCross && defn.PageSensitive && defn.Effect == instructions.Read {
		// +1 cycle
		mc.LastResult.Cycles++
		mc.LastResult.PageFault = true
	}

	// read value for instructions that consume data from memory
	switch defn.Effect {
	case instructions.Read:
		if defn.AddressingMode != instructions.Implied &&
			defn.AddressingMode != instructions.Accumulator &&
			defn.AddressingMode != instructions.Immediate {
			value = mc.read8(address)
		}
	case instructions.RMW:
		value = mc.read8(address)
	}

	switch defn.Operator {
	case instructions.Nop:
		// does nothing. undocumented opcodes funnel here with their own
		// byte and cycle counts

	case instructions.Cli:
		mc.Status.InterruptDisable = false

	case instructions.Sei:
		mc.Status.InterruptDisable = true

	case instructions.Clc:
		mc.Status.Carry = false

	case instructions.Sec:
		mc.Status.Carry = true

	case instructions.Cld:
		mc.Status.DecimalMode = false

	case instructions.Sed:
		mc.Status.DecimalMode = true

	case instructions.Clv:
		mc.Status.Overflow = false

	case instructions.Lda:
		mc.A.Load(value)
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.Ldx:
		mc.X.Load(value)
		mc.Status.Zero = mc.X.IsZero()
		mc.Status.Sign = mc.X.IsNegative()

	case instructions.Ldy:
		mc.Y.Load(value)
		mc.Status.Zero = mc.Y.IsZero()
		mc.Status.Sign = mc.Y.IsNegative()

	case instructions.Sta:
		mc.write8(address, mc.A.Value())

	case instructions.Stx:
		mc.write8(address, mc.X.Value())

	case instructions.Sty:
		mc.write8(address, mc.Y.Value())

	case instructions.Stz:
		mc.write8(address, 0)

	case instructions.And:
		mc.A.AND(value)
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.Ora:
		mc.A.ORA(value)
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.Eor:
		mc.A.EOR(value)
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.Adc:
		if mc.Status.DecimalMode {
			mc.Status.Carry,
				mc.Status.Zero,
				mc.Status.Overflow,
				mc.Status.Sign = mc.A.AddDecimal(value, mc.Status.Carry)
			mc.fixupDecimalFlags()
		} else {
			mc.Status.Carry, mc.Status.Overflow = mc.A.Add(value, mc.Status.Carry)
			mc.Status.Zero = mc.A.IsZero()
			mc.Status.Sign = mc.A.IsNegative()
		}

	case instructions.Sbc:
		if mc.Status.DecimalMode {
			mc.Status.Carry,
				mc.Status.Zero,
				mc.Status.Overflow,
				mc.Status.Sign = mc.A.SubtractDecimal(value, mc.Status.Carry)
			mc.fixupDecimalFlags()
		} else {
			mc.Status.Carry, mc.Status.Overflow = mc.A.Subtract(value, mc.Status.Carry)
			mc.Status.Zero = mc.A.IsZero()
			mc.Status.Sign = mc.A.IsNegative()
		}

	case instructions.Cmp:
		r := mc.acc8
		r.Load(mc.A.Value())

		// CMP is a binary subtract even when decimal mode is active
		mc.Status.Carry, _ = r.Subtract(value, true)
		mc.Status.Zero = r.IsZero()
		mc.Status.Sign = r.IsNegative()

	case instructions.Cpx:
		r := mc.acc8
		r.Load(mc.X.Value())
		mc.Status.Carry, _ = r.Subtract(value, true)
		mc.Status.Zero = r.IsZero()
		mc.Status.Sign = r.IsNegative()

	case instructions.Cpy:
		r := mc.acc8
		r.Load(mc.Y.Value())
		mc.Status.Carry, _ = r.Subtract(value, true)
		mc.Status.Zero = r.IsZero()
		mc.Status.Sign = r.IsNegative()

	case instructions.Bit:
		if defn.AddressingMode == instructions.Immediate {
			// BIT immediate (65C02 only) affects the zero flag alone
			mc.Status.Zero = value&mc.A.Value() == 0
		} else {
			r := mc.acc8
			r.Load(value)
			mc.Status.Sign = r.IsNegative()
			mc.Status.Overflow = r.IsBitV()
			r.AND(mc.A.Value())
			mc.Status.Zero = r.IsZero()
		}

	case instructions.Asl:
		if defn.AddressingMode == instructions.Accumulator {
			mc.Status.Carry = mc.A.ASL()
			mc.Status.Zero = mc.A.IsZero()
			mc.Status.Sign = mc.A.IsNegative()
		} else {
			r := mc.acc8
			r.Load(value)
			mc.Status.Carry = r.ASL()
			mc.Status.Zero = r.IsZero()
			mc.Status.Sign = r.IsNegative()
			value = r.Value()
		}

	case instructions.Lsr:
		if defn.AddressingMode == instructions.Accumulator {
			mc.Status.Carry = mc.A.LSR()
			mc.Status.Zero = mc.A.IsZero()
			mc.Status.Sign = mc.A.IsNegative()
		} else {
			r := mc.acc8
			r.Load(value)
			mc.Status.Carry = r.LSR()
			mc.Status.Zero = r.IsZero()
			mc.Status.Sign = r.IsNegative()
			value = r.Value()
		}

	case instructions.Rol:
		if defn.AddressingMode == instructions.Accumulator {
			mc.Status.Carry = mc.A.ROL(mc.Status.Carry)
			mc.Status.Zero = mc.A.IsZero()
			mc.Status.Sign = mc.A.IsNegative()
		} else {
			r := mc.acc8
			r.Load(value)
			mc.Status.Carry = r.ROL(mc.Status.Carry)
			mc.Status.Zero = r.IsZero()
			mc.Status.Sign = r.IsNegative()
			value = r.Value()
		}

	case instructions.Ror:
		if defn.AddressingMode == instructions.Accumulator {
			mc.Status.Carry = mc.A.ROR(mc.Status.Carry)
			mc.Status.Zero = mc.A.IsZero()
			mc.Status.Sign = mc.A.IsNegative()
		} else {
			r := mc.acc8
			r.Load(value)
			mc.Status.Carry = r.ROR(mc.Status.Carry)
			mc.Status.Zero = r.IsZero()
			mc.Status.Sign = r.IsNegative()
			value = r.Value()
		}

	case instructions.Inc:
		if defn.AddressingMode == instructions.Accumulator {
			mc.A.Add(1, false)
			mc.Status.Zero = mc.A.IsZero()
			mc.Status.Sign = mc.A.IsNegative()
		} else {
			r := mc.acc8
			r.Load(value)
			r.Add(1, false)
			mc.Status.Zero = r.IsZero()
			mc.Status.Sign = r.IsNegative()
			value = r.Value()
		}

	case instructions.Dec:
		if defn.AddressingMode == instructions.Accumulator {
			mc.A.Add(0xff, false)
			mc.Status.Zero = mc.A.IsZero()
			mc.Status.Sign = mc.A.IsNegative()
		} else {
			r := mc.acc8
			r.Load(value)
			r.Add(0xff, false)
			mc.Status.Zero = r.IsZero()
			mc.Status.Sign = r.IsNegative()
			value = r.Value()
		}

	case instructions.Inx:
		mc.X.Add(1, false)
		mc.Status.Zero = mc.X.IsZero()
		mc.Status.Sign = mc.X.IsNegative()

	case instructions.Iny:
		mc.Y.Add(1, false)
		mc.Status.Zero = mc.Y.IsZero()
		mc.Status.Sign = mc.Y.IsNegative()

	case instructions.Dex:
		mc.X.Add(0xff, false)
		mc.Status.Zero = mc.X.IsZero()
		mc.Status.Sign = mc.X.IsNegative()

	case instructions.Dey:
		mc.Y.Add(0xff, false)
		mc.Status.Zero = mc.Y.IsZero()
		mc.Status.Sign = mc.Y.IsNegative()

	case instructions.Trb:
		mc.Status.Zero = value&mc.A.Value() == 0
		value &= ^mc.A.Value()

	case instructions.Tsb:
		mc.Status.Zero = value&mc.A.Value() == 0
		value |= mc.A.Value()

	case instructions.Tax:
		mc.X.Load(mc.A.Value())
		mc.Status.Zero = mc.X.IsZero()
		mc.Status.Sign = mc.X.IsNegative()

	case instructions.Tay:
		mc.Y.Load(mc.A.Value())
		mc.Status.Zero = mc.Y.IsZero()
		mc.Status.Sign = mc.Y.IsNegative()

	case instructions.Txa:
		mc.A.Load(mc.X.Value())
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.Tya:
		mc.A.Load(mc.Y.Value())
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.Tsx:
		mc.X.Load(mc.SP.Value())
		mc.Status.Zero = mc.X.IsZero()
		mc.Status.Sign = mc.X.IsNegative()

	case instructions.Txs:
		mc.SP.Load(mc.X.Value())
		// does not affect status register

	case instructions.Pha:
		mc.push(mc.A.Value())

	case instructions.Pla:
		mc.A.Load(mc.pull())
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.Php:
		mc.push(mc.Status.Value(true))

	case instructions.Plp:
		mc.Status.FromValue(mc.pull())

	case instructions.Phx:
		mc.push(mc.X.Value())

	case instructions.Plx:
		mc.X.Load(mc.pull())
		mc.Status.Zero = mc.X.IsZero()
		mc.Status.Sign = mc.X.IsNegative()

	case instructions.Phy:
		mc.push(mc.Y.Value())

	case instructions.Ply:
		mc.Y.Load(mc.pull())
		mc.Status.Zero = mc.Y.IsZero()
		mc.Status.Sign = mc.Y.IsNegative()

	case instructions.Jmp:
		mc.PC.Load(address)

	case instructions.Bcc:
		mc.branch(!mc.Status.Carry, value)

	case instructions.Bcs:
		mc.branch(mc.Status.Carry, value)

	case instructions.Beq:
		mc.branch(mc.Status.Zero, value)

	case instructions.Bne:
		mc.branch(!mc.Status.Zero, value)

	case instructions.Bmi:
		mc.branch(mc.Status.Sign, value)

	case instructions.Bpl:
		mc.branch(!mc.Status.Sign, value)

	case instructions.Bvc:
		mc.branch(!mc.Status.Overflow, value)

	case instructions.Bvs:
		mc.branch(mc.Status.Overflow, value)

	case instructions.Bra:
		mc.branch(true, value)

	case instructions.Jsr:
		// the address pushed is that of the last byte of the JSR
		// instruction. RTS increments it when pulling
		ret := mc.PC.Address() - 1
		mc.push(uint8(ret >> 8))
		mc.push(uint8(ret))
		mc.PC.Load(address)

	case instructions.Rts:
		lo := mc.pull()
		hi := mc.pull()
		mc.PC.Load((uint16(hi) << 8) | uint16(lo))
		mc.PC.Add(1)

	case instructions.Brk:
		// BRK advances the PC by two despite being a one byte instruction.
		// the second byte is fetched and discarded
		ret := mc.PC.Address() + 1
		mc.push(uint8(ret >> 8))
		mc.push(uint8(ret))
		mc.push(mc.Status.Value(true))
		mc.Status.InterruptDisable = true
		if mc.model == instructions.CMOS {
			mc.Status.DecimalMode = false
		}
		mc.PC.Load(mc.read16(IRQVector))

	case instructions.Rti:
		mc.Status.FromValue(mc.pull())
		lo := mc.pull()
		hi := mc.pull()
		mc.PC.Load((uint16(hi) << 8) | uint16(lo))
		// unlike RTS there is no need to add one to the return address
	}

	// for RMW instructions: write altered value back to memory
	if defn.Effect == instructions.RMW {
		mc.write8(address, value)
	}

	mc.Cycles += uint64(mc.LastResult.Cycles)
}

// fixupDecimalFlags applies the 65C02 correction to the N and Z flags after
// a decimal mode operation: unlike the NMOS part, the 65C02 computes them
// from the corrected result. It also accounts for the extra cycle the 65C02
// spends on the correction.
func (mc *CPU) fixupDecimalFlags() {
	if mc.model != instructions.CMOS {
		return
	}
	mc.Status.Zero = mc.A.IsZero()
	mc.Status.Sign = mc.A.IsNegative()

	// +1 cycle
	mc.LastResult.Cycles++
}
