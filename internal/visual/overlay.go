// Package visual renders inspection overlays: detected text regions
// drawn onto a copy of the original image.
package visual

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/disintegration/imaging"

	"github.com/shelfscan/labelscan/internal/regions"
)

// borderColor outlines detected regions.
var borderColor = color.NRGBA{R: 0, G: 200, B: 0, A: 255}

// DrawRegions returns a copy of img with a rectangle outlined around
// every region. The input image is not modified.
func DrawRegions(img image.Image, found []regions.Region) *image.NRGBA {
	out := imaging.Clone(img)
	bounds := out.Bounds()

	for _, r := range found {
		x1 := r.X
		y1 := r.Y
		x2 := r.X + r.Width - 1
		y2 := r.Y + r.Height - 1

		for x := x1; x <= x2; x++ {
			setPixel(out, bounds, x, y1)
			setPixel(out, bounds, x, y2)
		}
		for y := y1; y <= y2; y++ {
			setPixel(out, bounds, x1, y)
			setPixel(out, bounds, x2, y)
		}
	}
	return out
}

// SaveOverlay writes the region overlay for img as a PNG.
func SaveOverlay(path string, img image.Image, found []regions.Region) error {
	overlay := DrawRegions(img, found)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create overlay file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, overlay); err != nil {
		return fmt.Errorf("failed to encode overlay: %w", err)
	}
	return nil
}

func setPixel(img *image.NRGBA, bounds image.Rectangle, x, y int) {
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		img.SetNRGBA(x, y, borderColor)
	}
}
