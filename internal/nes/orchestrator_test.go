package nes

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/hcarver/nesgo/internal/cartridge"
	"github.com/hcarver/nesgo/internal/ppu"
)

type discardFramebuffer struct{}

func (discardFramebuffer) PlotPixel(x, y int, c ppu.Color) {}

func buildCartridge(t *testing.T, prg []uint8) *cartridge.Data {
	t.Helper()

	var buf bytes.Buffer
	buf.Write([]byte{0x4E, 0x45, 0x53, 0x1A})
	buf.WriteByte(2) // 32KiB PRG, flat window
	buf.WriteByte(1) // 8KiB CHR ROM
	buf.WriteByte(0)
	buf.WriteByte(0)
	buf.Write(make([]byte, 8)) // PRG RAM, TV system, padding

	prgRom := make([]byte, 0x8000)
	copy(prgRom, prg)
	prgRom[0x7FFC] = 0x00 // reset vector -> 0x8000
	prgRom[0x7FFD] = 0x80
	buf.Write(prgRom)
	buf.Write(make([]byte, 0x2000)) // CHR ROM

	tmp := filepath.Join(t.TempDir(), "test.nes")
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := cartridge.Load(tmp)
	if err != nil {
		t.Fatalf("cartridge.Load: %v", err)
	}
	return data
}

func TestRunFrameCompletesWithoutError(t *testing.T) {
	prg := []uint8{0xEA} // NOP at the reset vector target, 0x8000
	// Fill the rest of the bank with NOPs so the CPU never hits an
	// undefined opcode while a frame's worth of dots elapse.
	padded := make([]uint8, 0x8000)
	for i := range padded {
		padded[i] = 0xEA
	}
	copy(padded, prg)

	data := buildCartridge(t, padded)
	orch, err := New(data, log.New(os.Stderr, "", 0))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	orch.RunFrame(discardFramebuffer{})

	if orch.Halted() {
		t.Fatalf("orchestrator halted unexpectedly: %v", orch.LastError())
	}
}

func TestRunFrameHaltsOnInvalidOpcode(t *testing.T) {
	padded := make([]uint8, 0x8000)
	padded[0] = 0x02 // undefined opcode
	data := buildCartridge(t, padded)

	orch, err := New(data, log.New(os.Stderr, "", 0))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	orch.RunFrame(discardFramebuffer{})

	if !orch.Halted() {
		t.Fatal("orchestrator should have halted on an invalid opcode")
	}
	if orch.LastError() == nil {
		t.Error("LastError() = nil, want a wrapped decode error")
	}

	// A second RunFrame call while halted must not panic or advance the CPU.
	pc := orch.CPU.PC
	orch.RunFrame(discardFramebuffer{})
	if orch.CPU.PC != pc {
		t.Error("RunFrame advanced the CPU while halted")
	}
}

func TestUnsupportedMapperRejectedAtConstruction(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0x4E, 0x45, 0x53, 0x1A})
	buf.WriteByte(1)
	buf.WriteByte(1)
	buf.WriteByte(0x10) // mapper id 1 in the high nybble
	buf.WriteByte(0)
	buf.Write(make([]byte, 8))
	buf.Write(make([]byte, 0x4000))
	buf.Write(make([]byte, 0x2000))

	tmp := filepath.Join(t.TempDir(), "unsupported.nes")
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := cartridge.Load(tmp)
	if err != nil {
		t.Fatalf("cartridge.Load: %v", err)
	}

	if _, err := New(data, nil); err == nil {
		t.Fatal("New() = nil error, want unsupported-mapper error")
	}
}
