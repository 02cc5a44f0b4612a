package bus

import (
	"testing"

	"github.com/hcarver/nesgo/internal/cartridge"
)

type fakeMapper struct {
	prg       [0x8000]byte
	chr       [0x2000]byte
	mirroring cartridge.Mirroring
}

func (m *fakeMapper) PrgRead(addr uint16) (uint8, error) { return m.prg[addr-0x8000], nil }
func (m *fakeMapper) PrgWrite(addr uint16, val uint8) error {
	m.prg[addr-0x8000] = val
	return nil
}
func (m *fakeMapper) ChrRead(addr uint16) (uint8, error) { return m.chr[addr], nil }
func (m *fakeMapper) ChrWrite(addr uint16, val uint8) error {
	m.chr[addr] = val
	return nil
}
func (m *fakeMapper) ChrPattern(base, idx uint16) []byte {
	off := base + idx*16
	return m.chr[off : off+16]
}
func (m *fakeMapper) CurrentMirroring() cartridge.Mirroring { return m.mirroring }

func TestRAMMirroring(t *testing.T) {
	m := &fakeMapper{}
	b := New(m)
	b.Write(0x0000, 0x42)
	if got := b.Read(0x0800); got != 0x42 {
		t.Errorf("Read(0x0800) = %#02x, want 0x42 (mirrors 0x0000)", got)
	}
	if got := b.Read(0x1800); got != 0x42 {
		t.Errorf("Read(0x1800) = %#02x, want 0x42", got)
	}
}

func TestPrgWindowDelegatesToMapper(t *testing.T) {
	m := &fakeMapper{}
	b := New(m)
	b.Write(0x8000, 0x7E)
	if got := b.Read(0x8000); got != 0x7E {
		t.Errorf("Read(0x8000) = %#02x, want 0x7E", got)
	}
}

func TestPPURegisterMirroringEvery8Bytes(t *testing.T) {
	m := &fakeMapper{}
	b := New(m)
	b.Write(0x2000, 0x80) // PPUCTRL: enable NMI

	// $2008 mirrors $2000's register slot (PPUCTRL), not the mask register.
	b.Write(0x2008, 0x00)
	if b.PPU.NMIEnabled() {
		t.Error("writing the 0x2008 mirror of PPUCTRL should clear NMI enable")
	}
}

func TestOAMDMATriggersPending(t *testing.T) {
	m := &fakeMapper{}
	b := New(m)
	if b.PendingDMA() {
		t.Fatal("PendingDMA() true before any OAMDMA write")
	}
	b.Write(oamDMAAddr, 0x02)
	if !b.PendingDMA() {
		t.Fatal("PendingDMA() false after OAMDMA write")
	}
	b.Write(0x0200, 0x55)
	b.ServiceDMA()
	if b.PendingDMA() {
		t.Error("PendingDMA() still true after ServiceDMA")
	}
	if got := b.PPU.ReadAt(0); got != 0x55 {
		t.Errorf("OAM[0] = %#02x, want 0x55", got)
	}
}

func TestNametableHorizontalMirroring(t *testing.T) {
	m := &fakeMapper{mirroring: cartridge.MirrorHorizontal}
	b := New(m)
	b.WriteNametable(0x2000, 0x11)
	if got := b.ReadNametable(0x2400); got != 0x11 {
		t.Errorf("horizontal mirroring: 0x2400 = %#02x, want 0x11 (mirrors 0x2000)", got)
	}
	b.WriteNametable(0x2800, 0x22)
	if got := b.ReadNametable(0x2C00); got != 0x22 {
		t.Errorf("horizontal mirroring: 0x2C00 = %#02x, want 0x22 (mirrors 0x2800)", got)
	}
}

func TestNametableVerticalMirroring(t *testing.T) {
	m := &fakeMapper{mirroring: cartridge.MirrorVertical}
	b := New(m)
	b.WriteNametable(0x2000, 0x33)
	if got := b.ReadNametable(0x2800); got != 0x33 {
		t.Errorf("vertical mirroring: 0x2800 = %#02x, want 0x33 (mirrors 0x2000)", got)
	}
	b.WriteNametable(0x2400, 0x44)
	if got := b.ReadNametable(0x2C00); got != 0x44 {
		t.Errorf("vertical mirroring: 0x2C00 = %#02x, want 0x44 (mirrors 0x2400)", got)
	}
}

func TestControllerWriteMirrorsToBothPads(t *testing.T) {
	m := &fakeMapper{}
	b := New(m)
	b.Pad1.SetButtons(1) // A
	b.Pad2.SetButtons(0)
	b.Write(ctrl1Addr, 1)
	b.Write(ctrl1Addr, 0)
	if got := b.Read(ctrl1Addr); got != 1 {
		t.Errorf("Pad1 first bit = %d, want 1", got)
	}
	if got := b.Read(ctrl2Addr); got != 0 {
		t.Errorf("Pad2 first bit = %d, want 0", got)
	}
}

func TestPPUSTATUSWriteIsWriteThrough(t *testing.T) {
	m := &fakeMapper{}
	b := New(m)
	b.Write(0x2002, 0xA5)
	if got := b.PeekCPU(0x2002); got != 0xA5 {
		t.Errorf("PeekCPU(0x2002) = %#02x, want 0xA5 after write-through", got)
	}
}

func TestPeekStatusDoesNotClearVBlank(t *testing.T) {
	m := &fakeMapper{}
	b := New(m)
	b.PPU.SetVBlank(true)
	if got := b.PeekCPU(0x2002); got&0x80 == 0 {
		t.Fatal("PeekCPU(0x2002) should report VBlank set")
	}
	if !b.PPU.InVBlank() {
		t.Error("PeekCPU should not clear VBlank")
	}
}
