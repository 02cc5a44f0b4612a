package cpu

import "testing"

type fakeBus struct {
	mem [65536]uint8
}

func (b *fakeBus) Read(addr uint16) uint8     { return b.mem[addr] }
func (b *fakeBus) Write(addr uint16, v uint8) { b.mem[addr] = v }

func newTestCPU(reset uint16, program ...uint8) (*CPU, *fakeBus) {
	b := &fakeBus{}
	b.mem[VectorReset] = uint8(reset)
	b.mem[VectorReset+1] = uint8(reset >> 8)
	for i, v := range program {
		b.mem[int(reset)+i] = v
	}
	return New(b), b
}

func TestResetLoadsPCFromVector(t *testing.T) {
	c, _ := newTestCPU(0xC000)
	if c.PC != 0xC000 {
		t.Errorf("PC = %#04x, want 0xC000", c.PC)
	}
}

func TestLDAImmediateSetsFlags(t *testing.T) {
	c, _ := newTestCPU(0x8000, 0xA9, 0x00) // LDA #$00
	cycles, err := c.Step()
	if err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if cycles != 2 {
		t.Errorf("cycles = %d, want 2", cycles)
	}
	if !c.flag(FlagZero) {
		t.Error("FlagZero not set after loading 0")
	}
	if c.PC != 0x8002 {
		t.Errorf("PC = %#04x, want 0x8002", c.PC)
	}
}

func TestAbsoluteXPageCrossAddsCycle(t *testing.T) {
	c, b := newTestCPU(0x8000, 0xBD, 0xFF, 0x20) // LDA $20FF,X
	c.X = 1                                      // crosses into $2100
	b.mem[0x2100] = 0x42
	cycles, err := c.Step()
	if err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if cycles != 5 {
		t.Errorf("cycles = %d, want 5 (4 base + 1 page-cross)", cycles)
	}
	if c.A != 0x42 {
		t.Errorf("A = %#02x, want 0x42", c.A)
	}
}

func TestBranchTakenAddsCycle(t *testing.T) {
	c, _ := newTestCPU(0x8000, 0xF0, 0x02) // BEQ +2
	c.setFlag(FlagZero, true)
	cycles, _ := c.Step()
	if cycles != 3 {
		t.Errorf("cycles = %d, want 3 (2 base + 1 taken)", cycles)
	}
	if c.PC != 0x8004 {
		t.Errorf("PC = %#04x, want 0x8004", c.PC)
	}
}

func TestBranchNotTakenStaysBaseCycles(t *testing.T) {
	c, _ := newTestCPU(0x8000, 0xF0, 0x02) // BEQ +2
	c.setFlag(FlagZero, false)
	cycles, _ := c.Step()
	if cycles != 2 {
		t.Errorf("cycles = %d, want 2", cycles)
	}
	if c.PC != 0x8002 {
		t.Errorf("PC = %#04x, want 0x8002", c.PC)
	}
}

func TestJMPIndirectPageBoundaryBug(t *testing.T) {
	c, b := newTestCPU(0x8000, 0x6C, 0xFF, 0x20) // JMP ($20FF)
	b.mem[0x20FF] = 0x00
	b.mem[0x2000] = 0x12 // bug: high byte read from $2000, not $2100
	b.mem[0x2100] = 0x34
	_, err := c.Step()
	if err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if c.PC != 0x1200 {
		t.Errorf("PC = %#04x, want 0x1200 (indirect JMP page-wrap bug)", c.PC)
	}
}

func TestJSRAndRTSRoundTrip(t *testing.T) {
	c, b := newTestCPU(0x8000, 0x20, 0x00, 0x90) // JSR $9000
	b.mem[0x9000] = 0x60                         // RTS
	if _, err := c.Step(); err != nil {
		t.Fatalf("JSR Step() error = %v", err)
	}
	if c.PC != 0x9000 {
		t.Fatalf("PC = %#04x, want 0x9000 after JSR", c.PC)
	}
	if _, err := c.Step(); err != nil {
		t.Fatalf("RTS Step() error = %v", err)
	}
	if c.PC != 0x8003 {
		t.Errorf("PC = %#04x, want 0x8003 after RTS", c.PC)
	}
}

func TestADCSetsOverflowWithoutCarry(t *testing.T) {
	c, _ := newTestCPU(0x8000, 0x69, 0x01) // ADC #$01
	c.A = 0x7F
	c.Step()
	if c.A != 0x80 {
		t.Errorf("A = %#02x, want 0x80", c.A)
	}
	if !c.flag(FlagOverflow) {
		t.Error("FlagOverflow not set on signed overflow (0x7F+0x01)")
	}
	if c.flag(FlagCarry) {
		t.Error("FlagCarry set unexpectedly")
	}
}

func TestSBCBorrow(t *testing.T) {
	c, _ := newTestCPU(0x8000, 0xE9, 0x01) // SBC #$01
	c.A = 0x00
	c.setFlag(FlagCarry, true) // no borrow pending
	c.Step()
	if c.A != 0xFF {
		t.Errorf("A = %#02x, want 0xFF", c.A)
	}
	if c.flag(FlagCarry) {
		t.Error("FlagCarry set, want clear (borrow occurred)")
	}
}

func TestPHPSetsBreakAndUnused(t *testing.T) {
	c, b := newTestCPU(0x8000, 0x08) // PHP
	c.Step()
	pushed := b.mem[stackPage+uint16(c.SP)+1]
	if pushed&FlagBreak == 0 || pushed&FlagUnused == 0 {
		t.Errorf("pushed status = %#02x, want Break and Unused set", pushed)
	}
}

func TestNMIServicedBeforeNextInstruction(t *testing.T) {
	c, b := newTestCPU(0x8000, 0xEA) // NOP
	b.mem[VectorNMI] = 0x00
	b.mem[VectorNMI+1] = 0x90
	c.TriggerNMI()
	cycles, err := c.Step()
	if err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if cycles != 7 {
		t.Errorf("cycles = %d, want 7 for NMI service", cycles)
	}
	if c.PC != 0x9000 {
		t.Errorf("PC = %#04x, want 0x9000 (NMI vector)", c.PC)
	}
}

func TestInvalidOpcodeReturnsError(t *testing.T) {
	c, _ := newTestCPU(0x8000, 0x02) // unofficial/undefined opcode
	if _, err := c.Step(); err == nil {
		t.Fatal("Step() = nil error, want ErrInvalidOpcode")
	}
}
