package preprocess

import (
	"image"
	"math"

	imgops "github.com/shelfscan/labelscan/internal/imaging"
)

// Deskew estimates the orientation of the foreground (text) pixels and
// rotates the image to level them.
//
// The image is binarized with an inverted Otsu threshold so text becomes
// foreground, and the orientation of the foreground mass is derived from
// its second-order central moments. The angle is normalized into the
// [-45, 45) convention; estimates under half a degree are skipped.
func Deskew(img image.Image) image.Image {
	gray := imgops.ToGray(img)
	level := imgops.OtsuLevel(gray)

	bounds := gray.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// Centroid of foreground (dark) pixels.
	var count, sumX, sumY float64
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if gray.Pix[y*gray.Stride+x] <= level {
				count++
				sumX += float64(x)
				sumY += float64(y)
			}
		}
	}
	if count == 0 {
		return img
	}
	cx := sumX / count
	cy := sumY / count

	// Second-order central moments give the principal axis angle.
	var mu11, mu20, mu02 float64
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if gray.Pix[y*gray.Stride+x] <= level {
				dx := float64(x) - cx
				dy := float64(y) - cy
				mu11 += dx * dy
				mu20 += dx * dx
				mu02 += dy * dy
			}
		}
	}

	angle := 0.5 * math.Atan2(2*mu11, mu20-mu02) * 180 / math.Pi
	for angle >= 45 {
		angle -= 90
	}
	for angle < -45 {
		angle += 90
	}

	if math.Abs(angle) < minRotationDegrees {
		return img
	}
	return rotate(img, angle)
}
