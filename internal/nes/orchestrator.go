// Package nes implements the orchestrator: the per-frame loop that steps the
// CPU one instruction at a time, advances the PPU three dots per CPU cycle,
// services OAM DMA stalls, and presents the finished framebuffer.
package nes

import (
	"errors"
	"fmt"
	"log"

	"github.com/hcarver/nesgo/internal/bus"
	"github.com/hcarver/nesgo/internal/cartridge"
	"github.com/hcarver/nesgo/internal/controller"
	"github.com/hcarver/nesgo/internal/cpu"
	"github.com/hcarver/nesgo/internal/mapper"
	"github.com/hcarver/nesgo/internal/ppu"
)

// dotsPerFrame is PPU.NumScanlines * PPU.DotsPerScanline: the number of PPU
// dots a single frame always spans, used to defend against a runaway loop
// presenting more than one frame's worth of work.
const dotsPerFrame = ppu.NumScanlines * ppu.DotsPerScanline

// Orchestrator owns the wired CPU/PPU/Bus triple and the halted/error state
// the host observes between frames.
type Orchestrator struct {
	CPU *cpu.CPU
	PPU *ppu.PPU
	Bus *bus.Bus

	logger *log.Logger

	halted   bool
	lastErr  error
	dmaEven  bool // true on the next "read" half of the DMA-stall alternation
}

// ErrHalted is a sentinel naming the halted state. RunFrame returns no error
// and does not produce it; callers observe a halt through Halted and
// LastError.
var ErrHalted = errors.New("nes: orchestrator is halted")

// New constructs an Orchestrator for the given cartridge data, selecting a
// Mapper via the cartridge's header-encoded mapper id.
func New(data *cartridge.Data, logger *log.Logger) (*Orchestrator, error) {
	m, err := mapper.New(data)
	if err != nil {
		return nil, fmt.Errorf("nes: %w", err)
	}
	if logger == nil {
		logger = log.Default()
	}

	b := bus.New(m)
	c := cpu.New(b)

	return &Orchestrator{
		CPU:     c,
		PPU:     b.PPU,
		Bus:     b,
		logger:  logger,
		dmaEven: true,
	}, nil
}

// Halted reports whether a runtime error has stopped instruction stepping.
// Input is still sampled and the last framebuffer still presented while
// halted, per the propagation policy: halt and continue, never panic.
func (o *Orchestrator) Halted() bool { return o.halted }

// LastError returns the error that caused the halt, or nil.
func (o *Orchestrator) LastError() error { return o.lastErr }

// Pad1 and Pad2 expose the wired controller ports so the host can report
// sampled input once per frame.
func (o *Orchestrator) Pad1() *controller.Controller { return &o.Bus.Pad1 }
func (o *Orchestrator) Pad2() *controller.Controller { return &o.Bus.Pad2 }

// RunFrame steps the system until the PPU signals a completed frame,
// presenting pixels into fb as it renders. If the orchestrator is already
// halted, RunFrame returns immediately without stepping (inputs having
// already been sampled by the caller via Pad1/Pad2), matching the "continue
// to pump input/present the last frame" policy.
func (o *Orchestrator) RunFrame(fb ppu.Framebuffer) {
	if o.halted {
		return
	}

	dots := 0
	for dots < dotsPerFrame {
		if o.PPU.PendingNMI() {
			o.CPU.TriggerNMI()
		}

		var cycles int
		if o.dmaEven && o.Bus.PendingDMA() {
			o.Bus.ServiceDMA()
			cycles = 513
		} else {
			n, err := o.CPU.Step()
			if err != nil {
				o.halt(err)
				return
			}
			cycles = n
		}

		for i := 0; i < 3*cycles; i++ {
			if o.PPU.Step(fb, o.Bus) {
				return
			}
			dots++
		}

		o.dmaEven = !o.dmaEven
	}
}

func (o *Orchestrator) halt(err error) {
	o.halted = true
	o.lastErr = err
	o.logger.Printf("nes: halted at pc=%#04x: %v", o.CPU.PC, err)
}
