package ppu

const (
	DotsPerScanline = 341
	NumScanlines    = 262
	VisibleWidth    = 256
	VisibleHeight   = 240
)

// Framebuffer is the host-supplied pixel sink the PPU has write-only access
// to, one plot call per rendered pixel.
type Framebuffer interface {
	PlotPixel(x, y int, c Color)
}

// Memory is the set of cartridge- and nametable-backed accessors the PPU
// needs from the bus: pattern-table tile data and single bytes (routed
// through the mapper), and mirrored nametable RAM. The bus owns the backing
// storage; the PPU only ever asks for bytes by address.
type Memory interface {
	ChrPattern(base, tileIdx uint16) []byte
	ChrRead(addr uint16) uint8
	ChrWrite(addr uint16, val uint8)
	ReadNametable(addr uint16) uint8
	WriteNametable(addr uint16, val uint8)
}

// ReadData implements a CPU read of PPUDATA (0x2007): CHR and nametable
// space are buffered one read behind, palette space is returned directly.
func (p *PPU) ReadData(mem Memory) uint8 {
	addr := p.VRAMAddr()
	var fresh uint8
	switch {
	case addr < 0x2000:
		fresh = mem.ChrRead(addr)
	case addr < 0x3F00:
		fresh = mem.ReadNametable(addr)
	default:
		v := p.Palette.Read(addr)
		p.AdvanceVRAMAddr()
		return v
	}
	v := p.BufferedRead(fresh)
	p.AdvanceVRAMAddr()
	return v
}

// WriteData implements a CPU write of PPUDATA (0x2007).
func (p *PPU) WriteData(mem Memory, val uint8) {
	addr := p.VRAMAddr()
	switch {
	case addr < 0x2000:
		mem.ChrWrite(addr, val)
	case addr < 0x3F00:
		mem.WriteNametable(addr, val)
	default:
		p.Palette.Write(addr, val)
	}
	p.AdvanceVRAMAddr()
}

// ReadOAMData implements a CPU read of OAMDATA (0x2004): no increment.
func (p *PPU) ReadOAMData() uint8 { return p.OAM.ReadAt(p.OAMAddr()) }

// WriteOAMData implements a CPU write of OAMDATA (0x2004): advances OAMADDR.
func (p *PPU) WriteOAMData(val uint8) {
	p.OAM.WriteAt(p.OAMAddr(), val)
	p.AdvanceOAMAddr()
}

// PPU is the scanline-grained picture processing unit. It embeds its
// register file, OAM, and palette RAM, and drives a dot/scanline counter
// that renders one full scanline at a time rather than dot by dot; this
// means mid-scanline register changes (used by a minority of games for
// split-screen effects) are not faithfully reproduced.
type PPU struct {
	Registers
	OAM
	Palette

	dot      int
	scanline int // 0..239 visible, 240 post-render, 241..260 vblank, 261 pre-render

	secondary []Sprite
	nmiLine   bool
}

// New returns a PPU with the power-up dot count NESdev documents (a short
// delay before the first visible dot).
func New() *PPU {
	return &PPU{dot: 21, scanline: 0}
}

// Step advances the PPU by one dot. It reports whether a full frame has just
// been completed (so the orchestrator knows to present the framebuffer).
func (p *PPU) Step(fb Framebuffer, mem Memory) bool {
	if p.dot == 0 {
		p.ReloadHorizontal()
	}

	p.dot++

	frameDone := false
	if p.dot == DotsPerScanline {
		if p.scanline <= 239 {
			p.drawScanline(fb, mem)
			p.stepSpriteEvaluation(p.scanline + 1)
			p.advanceCoarseYIfNeeded()
		}
		p.scanline++
		p.dot = 0

		if p.scanline >= NumScanlines {
			p.scanline = 0
			frameDone = true
		}
	}

	switch {
	case p.scanline == 241 && p.dot == 1:
		p.SetVBlank(true)
		p.nmiLine = p.NMIEnabled()
	case p.scanline == 261 && p.dot == 1:
		p.SetVBlank(false)
		p.SetSprite0Hit(false)
		p.SetOverflow(false)
	}

	return frameDone
}

// PendingNMI reports and clears whether the PPU has raised its interrupt
// line since the last call.
func (p *PPU) PendingNMI() bool {
	v := p.nmiLine
	p.nmiLine = false
	return v
}

func (p *PPU) stepSpriteEvaluation(nextScanline int) {
	hits, overflow := p.OAM.EvaluateScanline(nextScanline, p.SpriteHeight())
	p.secondary = hits
	if overflow {
		p.SetOverflow(true)
	}
}

func (p *PPU) advanceCoarseYIfNeeded() {
	fineY := p.Registers.v.fineY()
	if fineY == 7 {
		p.AdvanceCoarseY()
	}
	p.Registers.v.data = (p.Registers.v.data &^ 0x7000) | ((fineY + 1) % 8 << 12)
}

func (p *PPU) drawScanline(fb Framebuffer, mem Memory) {
	y := p.scanline
	fineX := int(p.FineX())
	height := p.SpriteHeight()

	for x := 0; x < VisibleWidth; x++ {
		coarseX, coarseY := p.CoarseXY()

		ntAddr := p.NametableAddr()
		atAddr := p.AttributeAddr()
		tileIdx := mem.ReadNametable(ntAddr)
		attrVal := mem.ReadNametable(atAddr)

		bgPaletteNum := bgPaletteNumber(attrVal, uint8(coarseX), uint8(coarseY))
		tile := mem.ChrPattern(p.BGPatternBase(), uint16(tileIdx))
		bgPixelIdx := tilePixel(tile, fineX, p.Registers.v.fineY(), false, false)

		bgColor := p.Palette.ColorByIndex(bgPaletteNum, bgPixelIdx)
		fb.PlotPixel(x, y, bgColor)
		bgTransparent := p.Palette.IsTransparent(bgPaletteNum, bgPixelIdx)

		p.drawSpritePixel(fb, mem, x, y, height, bgColor, bgTransparent)

		fineX++
		if fineX > 7 {
			fineX = 0
			p.AdvanceCoarseX()
		}
	}
}

func (p *PPU) drawSpritePixel(fb Framebuffer, mem Memory, x, y, height int, bgColor Color, bgTransparent bool) {
	for i := range p.secondary {
		s := &p.secondary[i]
		if x < int(s.X) || x >= int(s.X)+8 {
			continue
		}
		rowInSprite := y - int(s.Y)
		if rowInSprite < 0 || rowInSprite >= height {
			continue
		}

		base, tileNum, row := PatternRow(s.Tile, rowInSprite, height, s.FlipVert())
		patternBase := base
		if height == 8 {
			patternBase = p.SpritePatternBase()
		}
		tile := mem.ChrPattern(patternBase, tileNum)
		col := x - int(s.X)
		px := spritePixelIdx(tile, col, row, s.FlipHorz())
		if px == 0 {
			continue
		}

		spritePaletteNum := s.Palette() + 4
		spriteColor := p.Palette.ColorByIndex(spritePaletteNum, px)

		if s.Index == 0 && !bgTransparent {
			p.SetSprite0Hit(true)
		}

		if s.BehindBG() && !bgTransparent {
			fb.PlotPixel(x, y, bgColor)
		} else {
			fb.PlotPixel(x, y, spriteColor)
		}
	}
}

// bgPaletteNumber selects one of the four 2-bit palette-select fields packed
// into an attribute-table byte, based on which quadrant of the 32x32-pixel
// attribute cell the tile (coarseX, coarseY) falls in.
func bgPaletteNumber(attr uint8, coarseX, coarseY uint8) uint8 {
	shift := 0
	if coarseY&0x02 != 0 {
		shift += 4
	}
	if coarseX&0x02 != 0 {
		shift += 2
	}
	return (attr >> shift) & 0x03
}

// tilePixel reads the 2-bit palette index for one pixel out of a 16-byte
// background tile (two 8-byte bitplanes).
func tilePixel(tile []byte, x int, fineY uint16, flipX, flipY bool) uint8 {
	row := int(fineY) % 8
	if flipY {
		row = 7 - row
	}
	bit := x
	if !flipX {
		bit = 7 - x
	}
	lo := (tile[row] >> uint(bit)) & 1
	hi := (tile[row+8] >> uint(bit)) & 1
	return lo | (hi << 1)
}

func spritePixelIdx(tile []byte, x, row int, flipX bool) uint8 {
	bit := x
	if !flipX {
		bit = 7 - x
	}
	lo := (tile[row] >> uint(bit)) & 1
	hi := (tile[row+8] >> uint(bit)) & 1
	return lo | (hi << 1)
}
