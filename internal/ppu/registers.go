// Package ppu implements the picture processing unit: its memory-mapped
// register file, object attribute memory, palette memory, and the
// scanline-grained rendering algorithm.
package ppu

// Register addresses, as seen through the bus's 0x2000-0x2007 mirror window.
const (
	PPUCTRL   = 0
	PPUMASK   = 1
	PPUSTATUS = 2
	OAMADDR   = 3
	OAMDATA   = 4
	PPUSCROLL = 5
	PPUADDR   = 6
	PPUDATA   = 7
)

// PPUCTRL bits.
const (
	CtrlNametableLo    = 1 << 0
	CtrlNametableHi    = 1 << 1
	CtrlVRAMIncrement  = 1 << 2
	CtrlSpritePattern  = 1 << 3
	CtrlBGPattern      = 1 << 4
	CtrlSpriteSize     = 1 << 5
	CtrlMasterSlave    = 1 << 6
	CtrlNMIEnable      = 1 << 7
)

// PPUSTATUS bits.
const (
	StatusSpriteOverflow = 1 << 5
	StatusSprite0Hit     = 1 << 6
	StatusVBlank         = 1 << 7
)

// loopyAddr is the PPU's internal 15-bit scroll/VRAM-address register, named
// for Loopy's scrolling writeup: yyy NN YYYYY XXXXX (fine y, nametable
// select, coarse y, coarse x).
type loopyAddr struct {
	data uint16
}

func (l loopyAddr) coarseX() uint16   { return l.data & 0x001F }
func (l loopyAddr) coarseY() uint16   { return (l.data & 0x03E0) >> 5 }
func (l loopyAddr) nametable() uint16 { return (l.data & 0x0C00) >> 10 }
func (l loopyAddr) fineY() uint16     { return (l.data & 0x7000) >> 12 }

func (l *loopyAddr) setCoarseX(v uint16) { l.data = (l.data &^ 0x001F) | (v & 0x001F) }
func (l *loopyAddr) setCoarseY(v uint16) { l.data = (l.data &^ 0x03E0) | ((v & 0x001F) << 5) }
func (l *loopyAddr) setNametableBit0(v uint16) {
	l.data = (l.data &^ 0x0400) | ((v & 1) << 10)
}
func (l *loopyAddr) toggleNametableBit0() { l.data ^= 0x0400 }
func (l *loopyAddr) toggleNametableBit1() { l.data ^= 0x0800 }

// Registers is the PPU register file: the eight CPU-visible registers plus
// the derived internal state (write latch, loopy v/t, fine x, buffered
// PPUDATA read) per the NES's scroll/address-write protocol.
type Registers struct {
	ctrl   uint8
	mask   uint8
	status uint8

	oamAddr uint8

	v, t   loopyAddr
	fineX  uint8
	latch  bool // false = first write pending, true = second write pending
	buffer uint8
}

// NametableBase returns the base nametable address (0x2000, 0x2400, 0x2800,
// or 0x2C00) selected by PPUCTRL's nametable bits.
func (r *Registers) NametableBase() uint16 {
	return 0x2000 + 0x400*uint16(r.ctrl&0x03)
}

func (r *Registers) VRAMIncrement() uint16 {
	if r.ctrl&CtrlVRAMIncrement != 0 {
		return 32
	}
	return 1
}

func (r *Registers) BGPatternBase() uint16 {
	if r.ctrl&CtrlBGPattern != 0 {
		return 0x1000
	}
	return 0x0000
}

func (r *Registers) SpritePatternBase() uint16 {
	if r.ctrl&CtrlSpritePattern != 0 {
		return 0x1000
	}
	return 0x0000
}

func (r *Registers) SpriteHeight() int {
	if r.ctrl&CtrlSpriteSize != 0 {
		return 16
	}
	return 8
}

func (r *Registers) NMIEnabled() bool { return r.ctrl&CtrlNMIEnable != 0 }

func (r *Registers) SetVBlank(on bool)   { r.setStatus(StatusVBlank, on) }
func (r *Registers) SetSprite0Hit(on bool) { r.setStatus(StatusSprite0Hit, on) }
func (r *Registers) SetOverflow(on bool) { r.setStatus(StatusSpriteOverflow, on) }

func (r *Registers) setStatus(bit uint8, on bool) {
	if on {
		r.status |= bit
	} else {
		r.status &^= bit
	}
}

func (r *Registers) InVBlank() bool { return r.status&StatusVBlank != 0 }

// FineX returns the fine-x scroll value latched from PPUSCROLL's first write.
func (r *Registers) FineX() uint8 { return r.fineX }

// ReloadHorizontal implements the per-scanline loopy horizontal reload: v's
// coarse-x and nametable-select-bit-0 are copied from t/PPUCTRL.
func (r *Registers) ReloadHorizontal() {
	r.v.setCoarseX(r.t.coarseX())
	r.v.setNametableBit0(r.t.nametable() & 1)
}

// VRAMAddr returns the current internal VRAM address (loopy v).
func (r *Registers) VRAMAddr() uint16 { return r.v.data & 0x3FFF }

// CoarseXY returns v's coarse-x/coarse-y tile coordinates.
func (r *Registers) CoarseXY() (uint16, uint16) { return r.v.coarseX(), r.v.coarseY() }

// NametableAddr returns the tile-fetch address for the current v: the
// standard 0x2000 | (nametable select << 10) | (coarse y << 5) | coarse x
// layout.
func (r *Registers) NametableAddr() uint16 {
	return 0x2000 | (r.v.data & 0x0FFF)
}

// AttributeAddr returns the attribute-table byte address for the current v,
// per the well known wrapping-around formula.
func (r *Registers) AttributeAddr() uint16 {
	return 0x23C0 | (r.v.data & 0x0C00) | ((r.v.data >> 4) & 0x38) | ((r.v.data >> 2) & 0x07)
}

// AdvanceCoarseX increments v's coarse-x, wrapping at 31 and flipping the
// horizontal nametable-select bit on wrap.
func (r *Registers) AdvanceCoarseX() {
	if r.v.coarseX() == 31 {
		r.v.setCoarseX(0)
		r.v.toggleNametableBit0()
	} else {
		r.v.setCoarseX(r.v.coarseX() + 1)
	}
}

// AdvanceCoarseY increments v's coarse-y, wrapping at 29 with a vertical
// nametable flip; the unused row 30 advances to 31, and 31 resets to 0
// without a flip.
func (r *Registers) AdvanceCoarseY() {
	switch r.v.coarseY() {
	case 29:
		r.v.setCoarseY(0)
		r.v.toggleNametableBit1()
	case 31:
		r.v.setCoarseY(0)
	default:
		r.v.setCoarseY(r.v.coarseY() + 1)
	}
}

// WriteCtrl handles a CPU write to PPUCTRL (0x2000).
func (r *Registers) WriteCtrl(val uint8) {
	r.ctrl = val
	r.t.setNametableBit0(uint16(val) & 1)
	if val&CtrlNametableHi != 0 {
		r.t.data |= 0x0800
	} else {
		r.t.data &^= 0x0800
	}
}

func (r *Registers) WriteMask(val uint8) { r.mask = val }
func (r *Registers) Mask() uint8         { return r.mask }

// ReadStatus handles a modifying CPU read of PPUSTATUS: it clears VBLANK and
// the write latch.
func (r *Registers) ReadStatus() uint8 {
	v := r.status
	r.SetVBlank(false)
	r.latch = false
	return v
}

// PeekStatus returns PPUSTATUS without mutating latch or VBLANK state.
func (r *Registers) PeekStatus() uint8 { return r.status }

// WriteStatus handles a CPU write to PPUSTATUS (0x2002): real hardware
// treats this as open-bus, but this core models it as a non-standard
// write-through so a write is directly observable on the next read.
func (r *Registers) WriteStatus(val uint8) { r.status = val }

func (r *Registers) WriteOAMAddr(val uint8) { r.oamAddr = val }
func (r *Registers) OAMAddr() uint8         { return r.oamAddr }
func (r *Registers) AdvanceOAMAddr()        { r.oamAddr++ }

// WriteScroll handles a CPU write to PPUSCROLL (0x2005): the shared write
// latch determines whether this sets fine-x/coarse-x or fine-y/coarse-y.
func (r *Registers) WriteScroll(val uint8) {
	if !r.latch {
		r.t.setCoarseX(uint16(val >> 3))
		r.fineX = val & 0x07
		r.latch = true
		return
	}
	r.t.setCoarseY(uint16(val >> 3))
	r.t.data = (r.t.data &^ 0x7000) | (uint16(val&0x07) << 12)
	r.latch = false
}

// WriteAddr handles a CPU write to PPUADDR (0x2006).
func (r *Registers) WriteAddr(val uint8) {
	if !r.latch {
		r.t.data = (r.t.data & 0x00FF) | (uint16(val&0x3F) << 8)
		r.latch = true
		return
	}
	r.t.data = (r.t.data & 0xFF00) | uint16(val)
	r.v = r.t
	r.latch = false
}

// BufferedRead returns the current PPUDATA read buffer and replaces it with
// fresh, matching the one-read-behind semantics of non-palette VRAM reads.
func (r *Registers) BufferedRead(fresh uint8) uint8 {
	old := r.buffer
	r.buffer = fresh
	return old
}

// AdvanceVRAMAddr increments v by the PPUCTRL-selected step after a PPUDATA
// access.
func (r *Registers) AdvanceVRAMAddr() {
	r.v.data = (r.v.data + r.VRAMIncrement()) & 0x7FFF
}

// ResetLatch clears the write-toggle latch so the next PPUSCROLL/PPUADDR
// write is treated as the first of a pair.
func (r *Registers) ResetLatch() { r.latch = false }
