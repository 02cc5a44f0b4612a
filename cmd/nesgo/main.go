// Command nesgo runs the NES emulator core against a cartridge file.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hcarver/nesgo/internal/cartridge"
	"github.com/hcarver/nesgo/internal/config"
	"github.com/hcarver/nesgo/internal/host"
	"github.com/hcarver/nesgo/internal/nes"
	"github.com/hcarver/nesgo/internal/ppu"
)

var (
	romFile    = flag.String("nes_rom", "", "Path to the iNES cartridge file to run.")
	configFile = flag.String("config", "./nesgo.json", "Path to an optional JSON config file.")
	headless   = flag.Bool("headless", false, "Step frames without opening a window (for scripted runs).")
)

func main() {
	flag.Parse()

	if *romFile == "" {
		log.Fatal("nesgo: -nes_rom is required")
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("nesgo: loading config: %v", err)
	}

	data, err := cartridge.Load(*romFile)
	if err != nil {
		log.Fatalf("nesgo: loading cartridge: %v", err)
	}

	orch, err := nes.New(data, log.Default())
	if err != nil {
		log.Fatalf("nesgo: %v", err)
	}

	if *headless {
		runHeadless(orch)
		return
	}

	win := host.NewWindow(orch, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return waitForSignal(ctx) })

	// ebiten.RunGame must run on the main goroutine and blocks until the
	// window closes or the game errors; cancel afterward so the signal
	// watcher above unblocks and g.Wait() returns instead of hanging.
	runErr := ebiten.RunGame(win)
	cancel()

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("nesgo: %v", err)
	}
	if runErr != nil {
		log.Fatalf("nesgo: %v", runErr)
	}
}

// waitForSignal blocks until ctx is done (the main goroutine's RunGame
// returned and called cancel) or SIGINT/SIGTERM arrives.
func waitForSignal(ctx context.Context) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-sigCh:
		return context.Canceled
	}
}

// runHeadless steps a handful of frames with no window for scripted or
// CI-style runs, logging the halted state if one occurs.
func runHeadless(orch *nes.Orchestrator) {
	var fb discardFramebuffer
	const frames = 60
	for i := 0; i < frames && !orch.Halted(); i++ {
		orch.RunFrame(fb)
	}
	if orch.Halted() {
		log.Printf("nesgo: halted: %v", orch.LastError())
	}
}

type discardFramebuffer struct{}

func (discardFramebuffer) PlotPixel(x, y int, c ppu.Color) {}
