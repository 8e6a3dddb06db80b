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

package mmu_test

import (
	"testing"

	"github.com/iflan/apple2go/hardware/io"
	"github.com/iflan/apple2go/hardware/mmu"
	"github.com/iflan/apple2go/test"
)

type mockClock struct {
	cycles uint64
}

func (c *mockClock) CurrentCycles() uint64 {
	return c.cycles
}

func newTestMMU() (*mmu.MMU, *mockClock) {
	clk := &mockClock{}
	ioPage := io.NewIO(clk)

	rom := make([]uint8, 0x3000)
	for i := range rom {
		rom[i] = 0xd5
	}

	return mmu.NewMMU(clk, ioPage, rom, nil), clk
}

// read and write through the page handler interface.
func read(m *mmu.MMU, address uint16) uint8 {
	return m.ReadPage(uint8(address>>8), uint8(address))
}

func write(m *mmu.MMU, address uint16, v uint8) {
	m.WritePage(uint8(address>>8), uint8(address), v)
}

func TestMainRAMReadBack(t *testing.T) {
	m, _ := newTestMMU()

	for _, a := range []uint16{0x0000, 0x01ff, 0x0300, 0x2000, 0xbfff} {
		write(m, a, 0x5a)
		test.Equate(t, read(m, a), 0x5a)
	}
}

func TestAuxRouting(t *testing.T) {
	m, _ := newTestMMU()

	write(m, 0x0300, 0x11)

	// RAMWRT on: writes go to aux, reads still from main
	write(m, 0xc005, 0)
	write(m, 0x0300, 0x22)
	test.Equate(t, read(m, 0x0300), 0x11)

	// RAMRD on: reads from aux
	write(m, 0xc003, 0)
	test.Equate(t, read(m, 0x0300), 0x22)

	// status reads report the latches in bit 7
	test.Equate(t, read(m, 0xc013)&0x80, 0x80)
	test.Equate(t, read(m, 0xc014)&0x80, 0x80)

	// back to main
	write(m, 0xc002, 0)
	write(m, 0xc004, 0)
	test.Equate(t, read(m, 0x0300), 0x11)
	test.Equate(t, read(m, 0xc013)&0x80, 0x00)
}

func TestAltZP(t *testing.T) {
	m, _ := newTestMMU()

	write(m, 0x0080, 0xaa)

	// ALTZP on: zero page and stack come from aux. RAMRD/RAMWRT do not
	// affect pages 0 and 1
	write(m, 0xc009, 0)
	test.Equate(t, read(m, 0xc016)&0x80, 0x80)
	write(m, 0x0080, 0xbb)
	test.Equate(t, read(m, 0x0080), 0xbb)

	write(m, 0xc008, 0)
	test.Equate(t, read(m, 0x0080), 0xaa)
}

func TestStore80Page2(t *testing.T) {
	m, _ := newTestMMU()

	write(m, 0x0400, 0x01)

	// with 80STORE set, PAGE2 redirects the text page to aux regardless of
	// RAMRD/RAMWRT
	write(m, 0xc001, 0)
	read(m, 0xc055) // PAGE2 on
	write(m, 0x0400, 0x02)
	test.Equate(t, read(m, 0x0400), 0x02)

	read(m, 0xc054) // PAGE2 off
	test.Equate(t, read(m, 0x0400), 0x01)

	// hires page follows only when HIRES is also set
	write(m, 0x2000, 0x01)
	read(m, 0xc055)
	write(m, 0x2000, 0x02)
	test.Equate(t, read(m, 0x2000), 0x02) // RAMRD/RAMWRT clear: main

	read(m, 0xc057) // HIRES on
	write(m, 0x2000, 0x03)
	read(m, 0xc054)
	test.Equate(t, read(m, 0x2000), 0x02)

	// without 80STORE, PAGE2 is display selection only
	write(m, 0xc000, 0)
	read(m, 0xc055)
	test.Equate(t, read(m, 0x0400), 0x01)
}

func TestLanguageCard(t *testing.T) {
	m, _ := newTestMMU()

	// power on: ROM reads, writes swallowed
	test.Equate(t, read(m, 0xd000), 0xd5)
	write(m, 0xd000, 0x42)
	test.Equate(t, read(m, 0xd000), 0xd5)

	// $c08b twice: read RAM bank 1, write enabled
	read(m, 0xc08b)
	read(m, 0xc08b)
	test.Equate(t, read(m, 0xc011)&0x80, 0x00) // bank 1
	test.Equate(t, read(m, 0xc012)&0x80, 0x80) // LC read

	write(m, 0xd000, 0x42)
	test.Equate(t, read(m, 0xd000), 0x42)
	write(m, 0xe000, 0x43)
	test.Equate(t, read(m, 0xe000), 0x43)

	// $c083 twice: bank 2. the $e000 region is common to both banks
	read(m, 0xc083)
	read(m, 0xc083)
	test.Equate(t, read(m, 0xc011)&0x80, 0x80)
	test.Equate(t, read(m, 0xd000), 0x00)
	test.Equate(t, read(m, 0xe000), 0x43)
	write(m, 0xd000, 0x44)

	// $c080: read bank 2 RAM, writes disabled
	read(m, 0xc080)
	test.Equate(t, read(m, 0xd000), 0x44)
	write(m, 0xd000, 0x55)
	test.Equate(t, read(m, 0xd000), 0x44)

	// $c081: back to ROM reads
	read(m, 0xc081)
	test.Equate(t, read(m, 0xd000), 0xd5)
}

func TestLanguageCardDoubleReadRequired(t *testing.T) {
	m, _ := newTestMMU()

	// a single read of $c089 selects ROM read but must not enable writes
	read(m, 0xc089)
	write(m, 0xd000, 0x42)
	read(m, 0xc088)
	read(m, 0xc088)
	test.Equate(t, read(m, 0xd000), 0x00)

	// a write access to the switch resets the arm. read-write-read must
	// not enable either
	read(m, 0xc089)
	write(m, 0xc089, 0)
	read(m, 0xc089)
	write(m, 0xd000, 0x42)
	read(m, 0xc088)
	read(m, 0xc088)
	test.Equate(t, read(m, 0xd000), 0x00)
}

func TestSoftSwitchParityVideo(t *testing.T) {
	m, _ := newTestMMU()

	// video switches pass through the MMU to the io latches and read back
	// through the status locations
	for _, sw := range []struct {
		set    uint16
		clear  uint16
		status uint16
	}{
		{0xc051, 0xc050, 0xc01a},
		{0xc053, 0xc052, 0xc01b},
		{0xc055, 0xc054, 0xc01c},
		{0xc057, 0xc056, 0xc01d},
	} {
		read(m, sw.set)
		test.Equate(t, read(m, sw.status)&0x80, 0x80)
		read(m, sw.clear)
		test.Equate(t, read(m, sw.status)&0x80, 0x00)
	}
}

func TestVBL(t *testing.T) {
	m, clk := newTestMMU()

	m.ResetVB()
	test.Equate(t, read(m, 0xc019)&0x80, 0x00)

	// past the visible portion of the frame
	clk.cycles += 65 * 200
	test.Equate(t, read(m, 0xc019)&0x80, 0x80)

	m.ResetVB()
	test.Equate(t, read(m, 0xc019)&0x80, 0x00)
}

func TestStateRoundTrip(t *testing.T) {
	m, _ := newTestMMU()

	write(m, 0x0300, 0x99)
	read(m, 0xc08b)
	read(m, 0xc08b)
	write(m, 0xd000, 0x42)
	write(m, 0xc003, 0) // RAMRD on

	s := m.GetState()

	write(m, 0xc002, 0)
	write(m, 0x0300, 0x00)
	read(m, 0xc081)

	m.SetState(s)
	test.Equate(t, m.Test(mmu.RAMRd), true)
	test.Equate(t, read(m, 0xc012)&0x80, 0x80)
	test.Equate(t, read(m, 0xd000), 0x42)

	write(m, 0xc002, 0)
	test.Equate(t, read(m, 0x0300), 0x99)
}
