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

// Package cpu emulates the MOS 6502 and the 65C02. The CPU is cycle
// stepped: StepCycles(n) executes whole instructions until at least n cycles
// have elapsed, with cycle counts taken from the instruction table plus the
// page-crossing and branch penalties of the real part.
//
// Interrupts are modelled as pending flags checked between instructions
// rather than as control flow. NMI is edge triggered, IRQ is level triggered
// and masked by the interrupt disable flag.
//
// The CPU cannot fault at run time. Undocumented opcodes execute as NOPs of
// the documented length and cycle count and memory accesses always succeed.
package cpu
