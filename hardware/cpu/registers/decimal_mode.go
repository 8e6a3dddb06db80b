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

package registers

// these decimal functions return information about zero and sign bits in
// addition to the carry and overflow. the cpu can use these values to set
// the status flags. this is different to binary addition/subtraction which
// only returns information for the carry and overflow flags.
//
// the flag rules are those of the NMOS 6502, which computes the flags at
// odd moments of the decimal correction sequence (documented in Jorge
// Cwik's "Flags on Decimal mode in the NMOS 6502"). the 65C02 recomputes
// N and Z from the corrected result; the cpu package handles that
// difference.

// AddDecimal adds value to register, treating both operands as packed BCD.
// Returns new carry state, zero, overflow and sign bit information.
func (r *Register) AddDecimal(val uint8, carry bool) (bool, bool, bool, bool) {
	// add the two nibble columns separately, carry rippling between them
	lo := r.value&0x0f + val&0x0f
	if carry {
		lo++
	}
	loCarry := lo > 9

	hi := r.value>>4 + val>>4
	if loCarry {
		hi++
	}

	// Z reflects the uncorrected column sums
	zero := lo == 0 && hi == 0

	// correct the low column first. N and V are taken from the high
	// column at this point - after the low correction, before the high
	// one - which is where the silicon happens to latch them
	if loCarry {
		lo -= 10
	}
	overflow := hi&0x04 == 0x04
	sign := hi&0x08 == 0x08

	rcarry := hi > 9
	if rcarry {
		hi -= 10
	}

	r.value = (hi << 4) | lo

	return rcarry, zero, overflow, sign
}

func subtractDecimal(a, b uint8, carry bool) (r uint8, rcarry bool) {
	r = a - b
	if carry {
		r--
	}
	return r, b > a || carry && b == a
}

// SubtractDecimal subtracts value from register as though both values are
// BCD representations. Returns new carry state, zero, overflow and sign bit
// information.
func (r *Register) SubtractDecimal(val uint8, carry bool) (bool, bool, bool, bool) {
	var zero, overflow, sign bool
	var ucarry, tcarry bool

	// invert carry flag - the 6502 uses the carry flag opposite to what you
	// might expect when subtracting
	carry = !carry

	runits := r.value & 0x0f
	vunits := val & 0x0f
	runits, ucarry = subtractDecimal(runits, vunits, carry)

	rtens := (r.value & 0xf0) >> 4
	vtens := (val & 0xf0) >> 4
	rtens, tcarry = subtractDecimal(rtens, vtens, ucarry)

	// flags for decimal subtraction are those of the equivalent binary
	// subtraction on the NMOS 6502. carry has already been inverted so
	// invert it again for the binary operation
	bin := *r
	_, overflow = bin.Subtract(val, !carry)
	zero = bin.IsZero()
	sign = bin.IsNegative()

	// decimal correction for units
	if ucarry {
		runits += 10
	}

	// decimal correction for tens
	if tcarry {
		rtens += 10
	}

	// pack units/tens nibbles into register
	r.value = (rtens << 4) | runits

	return !tcarry, zero, overflow, sign
}
