// Package bus implements the shared address fabric that wires CPU RAM, PPU
// registers, cartridge mapper space, and the controller ports into the
// single flat 16-bit CPU address space and the PPU's own 14-bit space.
// https://www.nesdev.org/wiki/CPU_memory_map
package bus

import (
	"github.com/hcarver/nesgo/internal/cartridge"
	"github.com/hcarver/nesgo/internal/controller"
	"github.com/hcarver/nesgo/internal/mapper"
	"github.com/hcarver/nesgo/internal/ppu"
)

const (
	ramSize    = 0x0800 // 2KiB internal RAM, mirrored through 0x1FFF
	vramSize   = 0x0800 // 2KiB nametable RAM, mirrored per cartridge mirroring
	oamDMAAddr = 0x4014
	ctrl1Addr  = 0x4016
	ctrl2Addr  = 0x4017
)

// Bus owns CPU RAM, nametable RAM, and wires the PPU and mapper together. It
// implements cpu.Bus (Read/Write) for the CPU and ppu.Memory (ChrPattern,
// ChrRead, ChrWrite, ReadNametable, WriteNametable) for the PPU, so neither
// package needs to import the other.
type Bus struct {
	PPU    *ppu.PPU
	mapper mapper.Mapper

	ram   [ramSize]byte
	vram  [vramSize]byte

	Pad1 controller.Controller
	Pad2 controller.Controller

	pendingDMA bool
	dmaPage    uint8
}

// New constructs a Bus wired to a freshly powered-up PPU and the cartridge's
// mapper.
func New(m mapper.Mapper) *Bus {
	return &Bus{PPU: ppu.New(), mapper: m}
}

// Read implements cpu.Bus: a modifying read, as the CPU always performs.
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x1FFF:
		return b.ram[addr%ramSize]
	case addr <= 0x3FFF:
		return b.readPPURegister(addr & 0x0007)
	case addr == ctrl1Addr:
		return b.Pad1.Read()
	case addr == ctrl2Addr:
		return b.Pad2.Read()
	case addr <= 0x4017:
		return 0 // APU and remaining I/O: not modeled
	case addr <= 0x401F:
		return 0 // APU/IO test mode, unused outside of self-test ROMs
	default:
		v, err := b.mapper.PrgRead(addr)
		if err != nil {
			return 0
		}
		return v
	}
}

// Write implements cpu.Bus.
func (b *Bus) Write(addr uint16, val uint8) {
	switch {
	case addr <= 0x1FFF:
		b.ram[addr%ramSize] = val
	case addr <= 0x3FFF:
		b.writePPURegister(addr&0x0007, val)
	case addr == oamDMAAddr:
		b.dmaPage = val
		b.pendingDMA = true
	case addr == ctrl1Addr:
		b.Pad1.Write(val)
		b.Pad2.Write(val)
	case addr == ctrl2Addr:
		// $4017 is APU frame-counter control on real hardware; only the
		// controller latch at $4016 is modeled.
	case addr <= 0x401F:
		// APU registers: not modeled.
	default:
		_ = b.mapper.PrgWrite(addr, val)
	}
}

// PeekCPU performs a non-modifying read for debug/inspector tooling: within
// the PPU register mirror it defers to PeekPPURegister so PPUSTATUS's latch
// and VBLANK-clearing side effect is skipped; RAM and mapper space reads are
// already side-effect-free. The controller ports ($4016/$4017) go through
// the ordinary read, so peeking them still advances the controller's shift
// register.
func (b *Bus) PeekCPU(addr uint16) uint8 {
	if addr >= 0x2000 && addr <= 0x3FFF {
		return b.PeekPPURegister(addr & 0x0007)
	}
	return b.Read(addr)
}

// PeekPPURegister returns a PPU register's value without the read side
// effects a real CPU access triggers (VBLANK/latch clear on PPUSTATUS,
// buffered-read advance and VRAM-address increment on PPUDATA). For PPUDATA
// it returns the byte at the current VRAM address, not the read buffer.
func (b *Bus) PeekPPURegister(reg uint16) uint8 {
	switch reg {
	case ppu.PPUSTATUS:
		return b.PPU.PeekStatus()
	case ppu.OAMDATA:
		return b.PPU.ReadOAMData()
	case ppu.PPUDATA:
		addr := b.PPU.VRAMAddr()
		switch {
		case addr < 0x2000:
			return b.ChrRead(addr)
		case addr < 0x3F00:
			return b.ReadNametable(addr)
		default:
			return b.PPU.Palette.Read(addr)
		}
	default:
		return b.readPPURegister(reg)
	}
}

func (b *Bus) readPPURegister(reg uint16) uint8 {
	switch reg {
	case ppu.PPUSTATUS:
		return b.PPU.ReadStatus()
	case ppu.OAMDATA:
		return b.PPU.ReadOAMData()
	case ppu.PPUDATA:
		return b.PPU.ReadData(b)
	default:
		return 0 // write-only registers read back as open bus
	}
}

func (b *Bus) writePPURegister(reg uint16, val uint8) {
	switch reg {
	case ppu.PPUCTRL:
		b.PPU.WriteCtrl(val)
	case ppu.PPUMASK:
		b.PPU.WriteMask(val)
	case ppu.PPUSTATUS:
		// Non-standard: real hardware ignores this, but this core treats it
		// as a write-through so the value is directly observable on read.
		b.PPU.WriteStatus(val)
	case ppu.OAMADDR:
		b.PPU.WriteOAMAddr(val)
	case ppu.OAMDATA:
		b.PPU.WriteOAMData(val)
	case ppu.PPUSCROLL:
		b.PPU.WriteScroll(val)
	case ppu.PPUADDR:
		b.PPU.WriteAddr(val)
	case ppu.PPUDATA:
		b.PPU.WriteData(b, val)
	}
}

// ChrPattern implements ppu.Memory.
func (b *Bus) ChrPattern(base, idx uint16) []byte { return b.mapper.ChrPattern(base, idx) }

// ChrRead implements ppu.Memory.
func (b *Bus) ChrRead(addr uint16) uint8 {
	v, err := b.mapper.ChrRead(addr)
	if err != nil {
		return 0
	}
	return v
}

// ChrWrite implements ppu.Memory.
func (b *Bus) ChrWrite(addr uint16, val uint8) { _ = b.mapper.ChrWrite(addr, val) }

// ReadNametable implements ppu.Memory: addr is a full PPU address in
// 0x2000-0x3EFF, translated to one of the two physical 1KiB nametables per
// the cartridge's mirroring mode.
func (b *Bus) ReadNametable(addr uint16) uint8 {
	return b.vram[b.nametableOffset(addr)]
}

// WriteNametable implements ppu.Memory.
func (b *Bus) WriteNametable(addr uint16, val uint8) {
	b.vram[b.nametableOffset(addr)] = val
}

// nametableOffset folds a 0x2000-0x3EFF PPU address into the four logical
// 1KiB nametables at 0x2000/0x2400/0x2800/0x2C00 (0x3000-0x3EFF mirrors
// 0x2000-0x2EFF) and maps that down to an offset into the two physical 1KiB
// tables backing vram, per the board's wiring.
// https://www.nesdev.org/wiki/Mirroring#Nametable_Mirroring
func (b *Bus) nametableOffset(addr uint16) uint16 {
	a := (addr - 0x2000) % 0x1000
	table := a / 0x0400
	offset := a % 0x0400

	switch b.mapper.CurrentMirroring() {
	case cartridge.MirrorVertical:
		return (table%2)*0x0400 + offset
	case cartridge.MirrorFourScreen:
		// No mapper in this build provides the extra 2KiB four-screen VRAM
		// calls for; fall back to vertical mirroring rather than panic.
		return (table%2)*0x0400 + offset
	default: // MirrorHorizontal
		return (table/2)*0x0400 + offset
	}
}

// PendingDMA reports whether a write to OAMDMA is awaiting service.
func (b *Bus) PendingDMA() bool { return b.pendingDMA }

// ServiceDMA copies the 256-byte page b.dmaPage<<8 into OAM starting at the
// current OAMADDR, as real OAM DMA does, and clears the pending flag. The
// caller (the orchestrator) is responsible for charging the stall cycles
// this consumes; it charges a flat 513.
func (b *Bus) ServiceDMA() {
	base := uint16(b.dmaPage) << 8
	for i := 0; i < 256; i++ {
		b.PPU.WriteOAMData(b.Read(base + uint16(i)))
	}
	b.pendingDMA = false
}
