package host

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"
)

// DumpScaledPNG writes the current frame to path, nearest-neighbor scaled by
// factor. It is the debug screenshot affordance: a quick way to check a
// frame's contents without a running window, the same role the one-off
// `cmd/*` screenshot tools play in the wider pack.
func DumpScaledPNG(path string, src image.Image, factor int) error {
	if factor <= 0 {
		factor = 1
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("host: create %q: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, dst); err != nil {
		return fmt.Errorf("host: encode %q: %w", path, err)
	}
	return nil
}
