// Package mapper implements cartridge mapper hardware: the polymorphic
// capability set the bus uses to translate CPU/PPU addresses into cartridge
// offsets and apply per-mapper bank switching and mirroring decisions.
package mapper

import (
	"fmt"

	"github.com/hcarver/nesgo/internal/cartridge"
)

// Mapper is the capability set every cartridge mapper variant implements.
// The set is intentionally small and closed per spec.md 4.1/9.1 — new
// variants are added as new types switched on by id in New, not by growing
// this interface.
type Mapper interface {
	PrgRead(addr uint16) (uint8, error)
	PrgWrite(addr uint16, val uint8) error
	ChrRead(addr uint16) (uint8, error)
	ChrWrite(addr uint16, val uint8) error
	// ChrPattern returns the 16-byte tile at pattern-table base (0x0000 or
	// 0x1000) plus tile index idx.
	ChrPattern(base, idx uint16) []byte
	CurrentMirroring() cartridge.Mirroring
}

// ErrUnsupportedMapper is returned by New when the cartridge requests a
// mapper id with no registered implementation.
type ErrUnsupportedMapper struct {
	ID uint8
}

func (e *ErrUnsupportedMapper) Error() string {
	return fmt.Sprintf("mapper: unsupported mapper id %d", e.ID)
}

// New constructs the Mapper variant matching the cartridge's header-encoded
// mapper id.
func New(data *cartridge.Data) (Mapper, error) {
	switch id := data.Header.MapperID(); id {
	case 0:
		return newMapper0(data), nil
	default:
		return nil, &ErrUnsupportedMapper{ID: id}
	}
}

// ErrBadAddress is returned when an address falls outside the range a
// mapper's PRG/CHR window is contracted to serve.
type ErrBadAddress struct {
	Op   string
	Addr uint16
}

func (e *ErrBadAddress) Error() string {
	return fmt.Sprintf("mapper: bad address for %s: %#04x", e.Op, e.Addr)
}
