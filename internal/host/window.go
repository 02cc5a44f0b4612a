// Package host wires the emulation core to an on-screen window: it
// implements ebiten.Game, translating keyboard state into controller input
// each Update and presenting the PPU's framebuffer each Draw.
package host

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/hcarver/nesgo/internal/config"
	"github.com/hcarver/nesgo/internal/controller"
	"github.com/hcarver/nesgo/internal/nes"
	"github.com/hcarver/nesgo/internal/ppu"
)

// keymap is Player 1's keyboard layout, in the bit order controller.A,
// controller.B, ... controller.Right expects.
var keymap = []struct {
	key ebiten.Key
	bit uint8
}{
	{ebiten.KeyX, controller.A},
	{ebiten.KeyZ, controller.B},
	{ebiten.KeyShiftLeft, controller.Select},
	{ebiten.KeyEnter, controller.Start},
	{ebiten.KeyUp, controller.Up},
	{ebiten.KeyDown, controller.Down},
	{ebiten.KeyLeft, controller.Left},
	{ebiten.KeyRight, controller.Right},
}

// Window is an ebiten.Game driving one Orchestrator.
type Window struct {
	orch *nes.Orchestrator
	cfg  *config.Config

	fb      PixelBuffer
	surface *ebiten.Image

	showOverlay bool
}

// NewWindow constructs a Window around orch, sizing and titling the ebiten
// window per cfg.
func NewWindow(orch *nes.Orchestrator, cfg *config.Config) *Window {
	w, h := cfg.WindowResolution()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("nesgo")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	nw, nh := cfg.Resolution()
	return &Window{
		orch:        orch,
		cfg:         cfg,
		surface:     ebiten.NewImage(nw, nh),
		showOverlay: cfg.Debug.ShowOverlay,
	}
}

// Update samples input, toggles the debug overlay on F1's rising edge, and
// steps the orchestrator through exactly one frame.
func (w *Window) Update() error {
	var mask uint8
	for _, k := range keymap {
		if ebiten.IsKeyPressed(k.key) {
			mask |= k.bit
		}
	}
	w.orch.Pad1().SetButtons(mask)

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		w.showOverlay = !w.showOverlay
	}

	w.orch.RunFrame(&w.fb)
	return nil
}

// Draw uploads the finished frame to the GPU surface and draws it 1:1 onto
// screen at NES resolution geometry; ebiten scales the screen up to the
// window because Layout reports the fixed NES resolution.
func (w *Window) Draw(screen *ebiten.Image) {
	w.surface.WritePixels(w.fb.Pix())
	screen.DrawImage(w.surface, nil)

	if w.showOverlay {
		status := "running"
		if w.orch.Halted() {
			status = fmt.Sprintf("HALTED: %v", w.orch.LastError())
		}
		ebitenutil.DebugPrint(screen, status)
	}
}

// Layout returns the fixed NES resolution regardless of the outside window
// size, the same trick the teacher's console.Bus.Layout uses to make ebiten
// perform the up-scale itself instead of the game logic handling it.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.cfg.Resolution()
}

// PixelBuffer implements ppu.Framebuffer over a plain RGBA byte slice, the
// format ebiten.Image.WritePixels expects.
type PixelBuffer struct {
	pix [ppu.VisibleWidth * ppu.VisibleHeight * 4]byte
}

// PlotPixel implements ppu.Framebuffer.
func (p *PixelBuffer) PlotPixel(x, y int, c ppu.Color) {
	i := (y*ppu.VisibleWidth + x) * 4
	p.pix[i+0] = c.R
	p.pix[i+1] = c.G
	p.pix[i+2] = c.B
	p.pix[i+3] = 0xFF
}

// Pix returns the buffer in ebiten.Image.WritePixels's expected layout.
func (p *PixelBuffer) Pix() []byte { return p.pix[:] }

// Image returns the current frame as a standard library image, for the
// screenshot debug affordance in scale.go.
func (p *PixelBuffer) Image() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, ppu.VisibleWidth, ppu.VisibleHeight))
	copy(img.Pix, p.pix[:])
	return img
}
