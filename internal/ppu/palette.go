package ppu

// Color is a final RGB color resolved from a palette index, ready to hand to
// the framebuffer.
type Color struct {
	R, G, B uint8
}

// Palette is the PPU's 32-byte palette RAM: 4 background palettes of 4
// entries plus 4 sprite palettes of 4 entries, with the well known
// background-color mirroring of every palette's transparent (index 0) slot.
type Palette struct {
	entries [32]uint8
}

// writeAddr folds the four sprite-area mirror addresses (0x10, 0x14, 0x18,
// 0x1C) onto their background-palette counterparts (0x00, 0x04, 0x08, 0x0C);
// every other address stores to its own byte.
func writeAddr(a uint16) uint16 {
	a &= 0x1F
	switch a {
	case 0x10, 0x14, 0x18, 0x1C:
		return a - 0x10
	default:
		return a
	}
}

// Read implements the hardware quirk where every palette's transparent
// (index 0) slot reads back the universal background color at entry 0,
// rather than its own stored byte.
func (p *Palette) Read(addr uint16) uint8 {
	a := addr & 0x1F
	if a%4 == 0 {
		a = 0
	}
	return p.entries[a]
}

func (p *Palette) Write(addr uint16, val uint8) {
	p.entries[writeAddr(addr)] = val
}

// ColorByIndex resolves a (palette number 0-7, pixel index 0-3) pair to a
// palette RAM offset and looks up the final system color.
func (p *Palette) ColorByIndex(paletteNum, idx uint8) Color {
	entry := p.Read(0x3F00 + uint16(paletteNum)*4 + uint16(idx))
	return SystemPalette[entry&0x3F]
}

// IsTransparent reports whether a (palette number, pixel index) pair
// addresses a background-mirrored transparent slot.
func (p *Palette) IsTransparent(paletteNum, idx uint8) bool {
	return idx%4 == 0
}

// SystemPalette is the fixed 64-color NES master palette (NTSC values),
// indexed by the 6-bit color emphasis-free code stored in palette RAM.
var SystemPalette = [64]Color{
	{0x80, 0x80, 0x80}, {0x00, 0x3D, 0xA6}, {0x00, 0x12, 0xB0}, {0x44, 0x00, 0x96}, {0xA1, 0x00, 0x5E},
	{0xC7, 0x00, 0x28}, {0xBA, 0x06, 0x00}, {0x8C, 0x17, 0x00}, {0x5C, 0x2F, 0x00}, {0x10, 0x45, 0x00},
	{0x05, 0x4A, 0x00}, {0x00, 0x47, 0x2E}, {0x00, 0x41, 0x66}, {0x00, 0x00, 0x00}, {0x05, 0x05, 0x05},
	{0x05, 0x05, 0x05}, {0xC7, 0xC7, 0xC7}, {0x00, 0x77, 0xFF}, {0x21, 0x55, 0xFF}, {0x82, 0x37, 0xFA},
	{0xEB, 0x2F, 0xB5}, {0xFF, 0x29, 0x50}, {0xFF, 0x22, 0x00}, {0xD6, 0x32, 0x00}, {0xC4, 0x62, 0x00},
	{0x35, 0x80, 0x00}, {0x05, 0x8F, 0x00}, {0x00, 0x8A, 0x55}, {0x00, 0x99, 0xCC}, {0x21, 0x21, 0x21},
	{0x09, 0x09, 0x09}, {0x09, 0x09, 0x09}, {0xFF, 0xFF, 0xFF}, {0x0F, 0xD7, 0xFF}, {0x69, 0xA2, 0xFF},
	{0xD4, 0x80, 0xFF}, {0xFF, 0x45, 0xF3}, {0xFF, 0x61, 0x8B}, {0xFF, 0x88, 0x33}, {0xFF, 0x9C, 0x12},
	{0xFA, 0xBC, 0x20}, {0x9F, 0xE3, 0x0E}, {0x2B, 0xF0, 0x35}, {0x0C, 0xF0, 0xA4}, {0x05, 0xFB, 0xFF},
	{0x5E, 0x5E, 0x5E}, {0x0D, 0x0D, 0x0D}, {0x0D, 0x0D, 0x0D}, {0xFF, 0xFF, 0xFF}, {0xA6, 0xFC, 0xFF},
	{0xB3, 0xEC, 0xFF}, {0xDA, 0xAB, 0xEB}, {0xFF, 0xA8, 0xF9}, {0xFF, 0xAB, 0xB3}, {0xFF, 0xD2, 0xB0},
	{0xFF, 0xEF, 0xA6}, {0xFF, 0xF7, 0x9C}, {0xD7, 0xE8, 0x95}, {0xA6, 0xED, 0xAF}, {0xA2, 0xF2, 0xDA},
	{0x99, 0xFF, 0xFC}, {0xDD, 0xDD, 0xDD}, {0x11, 0x11, 0x11}, {0x11, 0x11, 0x11},
}
