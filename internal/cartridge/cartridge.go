package cartridge

import (
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	headerSize   = 16
	trainerSize  = 512
	prgBlockSize = 16384
	chrBlockSize = 8192
)

var magic = [4]byte{0x4E, 0x45, 0x53, 0x1A}

// ErrInvalidMagic is returned when a file does not begin with the iNES
// magic number.
var ErrInvalidMagic = errors.New("cartridge: invalid iNES magic number")

// chrKind tags whether Data's character storage is read-only ROM or
// writable RAM. Only RAM accepts writes.
type chrKind uint8

const (
	chrROM chrKind = iota
	chrRAM
)

// Data owns the immutable bytes of a loaded cartridge: the header, the
// optional trainer, PRG ROM, and CHR storage (ROM or RAM, tagged by kind).
type Data struct {
	Header  Header
	trainer []byte
	prg     []byte
	chr     []byte
	chrKind chrKind
}

// Load reads and validates an iNES file, returning its immutable Data.
func Load(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cartridge: open %q: %w", path, err)
	}
	defer f.Close()

	return load(f, path)
}

func load(r io.Reader, path string) (*Data, error) {
	raw := make([]byte, headerSize)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, fmt.Errorf("cartridge: read header of %q: %w", path, err)
	}
	if [4]byte{raw[0], raw[1], raw[2], raw[3]} != magic {
		return nil, fmt.Errorf("cartridge: %q: %w", path, ErrInvalidMagic)
	}

	h := Header{
		PrgBlocks: raw[4],
		ChrBlocks: raw[5],
		Flags1:    raw[6],
		Flags2:    raw[7],
		PrgRAM:    raw[8],
		TVSystem:  raw[9],
	}

	d := &Data{Header: h}

	if h.HasTrainer() {
		d.trainer = make([]byte, trainerSize)
		if _, err := io.ReadFull(r, d.trainer); err != nil {
			return nil, fmt.Errorf("cartridge: read trainer of %q: %w", path, err)
		}
	}

	prgLen := int(h.PrgBlocks) * prgBlockSize
	d.prg = make([]byte, prgLen)
	if _, err := io.ReadFull(r, d.prg); err != nil {
		return nil, fmt.Errorf("cartridge: read PRG ROM of %q: %w", path, err)
	}

	if h.ChrBlocks == 0 {
		d.chr = make([]byte, chrBlockSize)
		d.chrKind = chrRAM
	} else {
		d.chr = make([]byte, int(h.ChrBlocks)*chrBlockSize)
		d.chrKind = chrROM
		if _, err := io.ReadFull(r, d.chr); err != nil {
			return nil, fmt.Errorf("cartridge: read CHR ROM of %q: %w", path, err)
		}
	}

	return d, nil
}

// PrgSize returns the size of PRG ROM in bytes.
func (d *Data) PrgSize() int { return len(d.prg) }

// PrgAt returns the byte at the given offset into PRG ROM.
func (d *Data) PrgAt(off int) uint8 { return d.prg[off] }

// ChrSize returns the size of CHR storage in bytes.
func (d *Data) ChrSize() int { return len(d.chr) }

// ChrAt returns the byte at the given offset into CHR storage.
func (d *Data) ChrAt(off int) uint8 { return d.chr[off] }

// ChrWritable reports whether CHR storage is RAM (and therefore writable).
func (d *Data) ChrWritable() bool { return d.chrKind == chrRAM }

// SetChrAt writes to CHR storage; no-op if CHR is ROM.
func (d *Data) SetChrAt(off int, val uint8) {
	if d.chrKind == chrRAM {
		d.chr[off] = val
	}
}

// ChrPattern returns the 16-byte tile at the given base+idx offset into CHR
// storage.
func (d *Data) ChrPattern(base, idx uint16) []byte {
	start := int(base) + int(idx)*16
	return d.chr[start : start+16]
}
