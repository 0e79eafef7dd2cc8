package imaging

import (
	"image"
	"image/color"
)

// ToGray converts an image to 8-bit grayscale using ITU-R BT.601 luma
// weights (0.299*R + 0.587*G + 0.114*B). The source image is never
// modified; a new image is always returned, even when the input is
// already grayscale.
func ToGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return CloneGray(g)
	}

	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			lum := (299*(r>>8) + 587*(g>>8) + 114*(b>>8)) / 1000
			gray.SetGray(x, y, color.Gray{Y: uint8(lum)})
		}
	}
	return gray
}

// CloneGray returns a deep copy of a grayscale image.
func CloneGray(img *image.Gray) *image.Gray {
	out := image.NewGray(img.Bounds())
	copy(out.Pix, img.Pix)
	return out
}

// Histogram computes the 256-bin intensity histogram of a grayscale image.
func Histogram(img *image.Gray) [256]int {
	var hist [256]int
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			hist[img.GrayAt(x, y).Y]++
		}
	}
	return hist
}

// Invert returns a new grayscale image with every intensity flipped
// (v -> 255-v). Used to turn an edge map into a binary image with dark
// glyph boundaries on a white background.
func Invert(img *image.Gray) *image.Gray {
	out := image.NewGray(img.Bounds())
	for i, v := range img.Pix {
		out.Pix[i] = 255 - v
	}
	return out
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
