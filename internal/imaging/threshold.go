package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/segment"
)

// OtsuLevel computes the global threshold that maximizes between-class
// variance of the intensity histogram (Otsu's method). It assumes a
// roughly bimodal intensity distribution.
func OtsuLevel(img *image.Gray) uint8 {
	hist := Histogram(img)

	total := 0
	for _, c := range hist {
		total += c
	}
	if total == 0 {
		return 127
	}

	var sum float64
	for i, c := range hist {
		sum += float64(i) * float64(c)
	}

	var sumB, wB float64
	var maxVariance float64
	var level uint8

	for i := 0; i < 256; i++ {
		wB += float64(hist[i])
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(i) * float64(hist[i])

		mB := sumB / wB
		mF := (sum - sumB) / wF
		variance := wB * wF * (mB - mF) * (mB - mF)
		if variance > maxVariance {
			maxVariance = variance
			level = uint8(i)
		}
	}
	return level
}

// OtsuThreshold binarizes a grayscale image at the automatically selected
// Otsu level. Pixels strictly above the level become white (255), the
// rest black (0).
func OtsuThreshold(img *image.Gray) *image.Gray {
	level := OtsuLevel(img)
	if level < 255 {
		// segment.Threshold whitens pixels at or above the level; the
		// Otsu level itself belongs to the dark class.
		level++
	}
	return segment.Threshold(img, level)
}

// FixedThreshold binarizes a grayscale image at a caller-supplied level.
func FixedThreshold(img *image.Gray, level uint8) *image.Gray {
	return segment.Threshold(img, level)
}

// AdaptiveThreshold binarizes using a locally computed threshold: each
// pixel is compared against the mean of its block-sized neighborhood
// minus a constant c. Robust to uneven lighting where a single global
// level fails. block must be odd; even values are bumped up by one.
func AdaptiveThreshold(img *image.Gray, block int, c float64) *image.Gray {
	if block < 3 {
		block = 3
	}
	if block%2 == 0 {
		block++
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	out := image.NewGray(bounds)

	// Summed-area table with a one-row/column zero border.
	integral := make([]int64, (width+1)*(height+1))
	stride := width + 1
	for y := 0; y < height; y++ {
		var rowSum int64
		for x := 0; x < width; x++ {
			rowSum += int64(img.GrayAt(x+bounds.Min.X, y+bounds.Min.Y).Y)
			integral[(y+1)*stride+x+1] = integral[y*stride+x+1] + rowSum
		}
	}

	half := block / 2
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			x1 := clamp(x-half, 0, width-1)
			y1 := clamp(y-half, 0, height-1)
			x2 := clamp(x+half, 0, width-1)
			y2 := clamp(y+half, 0, height-1)

			area := int64(x2-x1+1) * int64(y2-y1+1)
			sum := integral[(y2+1)*stride+x2+1] - integral[y1*stride+x2+1] -
				integral[(y2+1)*stride+x1] + integral[y1*stride+x1]
			mean := float64(sum) / float64(area)

			v := float64(img.GrayAt(x+bounds.Min.X, y+bounds.Min.Y).Y)
			if v > mean-c {
				out.Pix[y*out.Stride+x] = 255
			}
		}
	}
	return out
}
