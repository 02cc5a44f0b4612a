package ppu

import "testing"

type fakeMemory struct {
	bgTile, spriteTile []byte
}

func (f *fakeMemory) ChrPattern(base, idx uint16) []byte {
	if idx == 0 {
		return f.bgTile
	}
	return f.spriteTile
}
func (f *fakeMemory) ChrRead(addr uint16) uint8        { return 0 }
func (f *fakeMemory) ChrWrite(addr uint16, val uint8)  {}
func (f *fakeMemory) ReadNametable(addr uint16) uint8  { return 0 }
func (f *fakeMemory) WriteNametable(addr uint16, v uint8) {}

type fakeFramebuffer struct {
	plotted map[[2]int]Color
}

func newFakeFramebuffer() *fakeFramebuffer {
	return &fakeFramebuffer{plotted: make(map[[2]int]Color)}
}

func (f *fakeFramebuffer) PlotPixel(x, y int, c Color) {
	f.plotted[[2]int{x, y}] = c
}

// solidTile returns a 16-byte CHR tile whose every pixel decodes to palette
// index 1 (low bitplane all set, high bitplane clear).
func solidTile() []byte {
	t := make([]byte, 16)
	for i := 0; i < 8; i++ {
		t[i] = 0xFF
	}
	return t
}

func TestStepSetsVBlankAndNMIAtScanline241Dot1(t *testing.T) {
	p := New()
	p.dot, p.scanline = 0, 240
	p.WriteCtrl(CtrlNMIEnable)

	mem := &fakeMemory{bgTile: solidTile(), spriteTile: solidTile()}
	fb := newFakeFramebuffer()

	for i := 0; i < DotsPerScanline+1; i++ {
		p.Step(fb, mem)
	}

	if !p.InVBlank() {
		t.Fatal("InVBlank() = false at scanline 241 dot 1, want true")
	}
	if !p.PendingNMI() {
		t.Error("PendingNMI() = false with NMI enabled, want true")
	}
}

func TestStepClearsStatusAtPreRender(t *testing.T) {
	p := New()
	p.dot, p.scanline = 0, 260
	p.SetVBlank(true)
	p.SetSprite0Hit(true)

	mem := &fakeMemory{bgTile: solidTile(), spriteTile: solidTile()}
	fb := newFakeFramebuffer()
	for i := 0; i < DotsPerScanline+1; i++ {
		p.Step(fb, mem)
	}

	if p.InVBlank() {
		t.Error("InVBlank() = true after pre-render dot 1, want false")
	}
	if p.PeekStatus()&StatusSprite0Hit != 0 {
		t.Error("Sprite0Hit still set after pre-render dot 1")
	}
}

func TestDrawScanlineSprite0Hit(t *testing.T) {
	p := New()
	p.dot, p.scanline = 0, 0
	p.secondary = []Sprite{{Y: 0, Tile: 1, Attr: 0, X: 0, Index: 0}}

	mem := &fakeMemory{bgTile: solidTile(), spriteTile: solidTile()}
	fb := newFakeFramebuffer()
	p.drawScanline(fb, mem)

	if p.PeekStatus()&StatusSprite0Hit == 0 {
		t.Error("Sprite0Hit not set when sprite 0 overlaps a non-transparent background pixel")
	}
}

func TestDrawScanlineNoSprite0HitWhenBGTransparent(t *testing.T) {
	p := New()
	p.dot, p.scanline = 0, 0
	p.secondary = []Sprite{{Y: 0, Tile: 1, Attr: 0, X: 0, Index: 0}}

	mem := &fakeMemory{bgTile: make([]byte, 16), spriteTile: solidTile()}
	fb := newFakeFramebuffer()
	p.drawScanline(fb, mem)

	if p.PeekStatus()&StatusSprite0Hit != 0 {
		t.Error("Sprite0Hit set despite transparent background pixel")
	}
}

func TestReadWriteDataRoundTripsPalette(t *testing.T) {
	p := New()
	p.WriteAddr(0x3F)
	p.WriteAddr(0x05)
	mem := &fakeMemory{bgTile: solidTile(), spriteTile: solidTile()}
	p.WriteData(mem, 0x16)

	p.WriteAddr(0x3F)
	p.WriteAddr(0x05)
	if got := p.ReadData(mem); got != 0x16 {
		t.Errorf("ReadData() = %#x, want 0x16", got)
	}
}

func TestOAMDataWriteAdvancesAddr(t *testing.T) {
	p := New()
	p.WriteOAMAddr(5)
	p.WriteOAMData(0xAB)
	if p.OAMAddr() != 6 {
		t.Errorf("OAMAddr() = %d, want 6 after write", p.OAMAddr())
	}
	if p.ReadAt(5) != 0xAB {
		t.Errorf("ReadAt(5) = %#x, want 0xAB", p.ReadAt(5))
	}
}
