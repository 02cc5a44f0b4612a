package mapper

import "github.com/hcarver/nesgo/internal/cartridge"

// mapper0 implements NROM (mapper 0): no bank switching. PRG ROM is either
// 16KiB, mirrored across both halves of the 0x8000-0xFFFF window, or a flat
// 32KiB window. CHR storage (ROM or RAM) is mapped directly, unbanked.
type mapper0 struct {
	data *cartridge.Data
	// prgMirrored is true for 16KiB PRG boards, where 0xC000-0xFFFF repeats
	// 0x8000-0xBFFF.
	prgMirrored bool
}

func newMapper0(data *cartridge.Data) *mapper0 {
	return &mapper0{
		data:        data,
		prgMirrored: data.Header.PrgBlocks == 1,
	}
}

const prgWindowBase = 0x8000

func (m *mapper0) PrgRead(addr uint16) (uint8, error) {
	if addr < prgWindowBase {
		return 0, &ErrBadAddress{Op: "PrgRead", Addr: addr}
	}
	off := addr - prgWindowBase
	if m.prgMirrored {
		off %= 0x4000
	}
	if int(off) >= m.data.PrgSize() {
		return 0, &ErrBadAddress{Op: "PrgRead", Addr: addr}
	}
	return m.data.PrgAt(int(off)), nil
}

// PrgWrite is a no-op: NROM carries no PRG RAM or bank-select registers.
// Writes in the cartridge's address window are silently dropped, matching
// real NROM boards wired without a PRG-RAM chip.
func (m *mapper0) PrgWrite(addr uint16, val uint8) error {
	if addr < prgWindowBase {
		return &ErrBadAddress{Op: "PrgWrite", Addr: addr}
	}
	return nil
}

func (m *mapper0) ChrRead(addr uint16) (uint8, error) {
	if int(addr) >= m.data.ChrSize() {
		return 0, &ErrBadAddress{Op: "ChrRead", Addr: addr}
	}
	return m.data.ChrAt(int(addr)), nil
}

func (m *mapper0) ChrWrite(addr uint16, val uint8) error {
	if int(addr) >= m.data.ChrSize() {
		return &ErrBadAddress{Op: "ChrWrite", Addr: addr}
	}
	m.data.SetChrAt(int(addr), val)
	return nil
}

func (m *mapper0) ChrPattern(base, idx uint16) []byte {
	return m.data.ChrPattern(base, idx)
}

func (m *mapper0) CurrentMirroring() cartridge.Mirroring {
	return m.data.Header.Mirroring()
}
