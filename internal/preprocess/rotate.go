package preprocess

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/disintegration/imaging"

	imgops "github.com/shelfscan/labelscan/internal/imaging"
)

const (
	// minRotationDegrees is the skew below which rotation is skipped.
	// Smaller estimates are treated as jitter, not real skew.
	minRotationDegrees = 0.5

	// houghVoteThreshold is the minimum accumulator count for a line to
	// contribute a candidate angle.
	houghVoteThreshold = 100
)

// AutoRotate estimates the dominant text-line skew from straight edges
// in the image and counter-rotates when it exceeds half a degree.
//
// Edges come from a Canny pass; a Hough transform votes for line
// orientations, candidate angles are restricted to (-45, 45) degrees and
// the median is taken. Returns the input unchanged (same value, not a
// copy) when no rotation is warranted.
func AutoRotate(img image.Image) image.Image {
	angle := estimateSkew(img)
	if math.Abs(angle) <= minRotationDegrees {
		return img
	}
	return rotate(img, angle)
}

// estimateSkew returns the median near-horizontal line angle in degrees,
// or 0 when no confident line is found.
func estimateSkew(img image.Image) float64 {
	edges := imgops.Canny(img, 50, 150)

	bounds := edges.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return 0
	}

	maxDist := int(math.Sqrt(float64(width*width + height*height)))
	const numAngles = 180
	accumulator := make([][]int, maxDist*2)
	for i := range accumulator {
		accumulator[i] = make([]int, numAngles)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if edges.Pix[y*edges.Stride+x] == 0 {
				continue
			}
			for theta := 0; theta < numAngles; theta++ {
				rad := float64(theta) * math.Pi / 180.0
				rho := float64(x)*math.Cos(rad) + float64(y)*math.Sin(rad)
				rhoIdx := int(rho) + maxDist
				if rhoIdx >= 0 && rhoIdx < maxDist*2 {
					accumulator[rhoIdx][theta]++
				}
			}
		}
	}

	var angles []float64
	for rhoIdx := 0; rhoIdx < maxDist*2; rhoIdx++ {
		for theta := 0; theta < numAngles; theta++ {
			if accumulator[rhoIdx][theta] < houghVoteThreshold {
				continue
			}
			angle := float64(theta) - 90
			if angle > -45 && angle < 45 {
				angles = append(angles, angle)
			}
		}
	}
	if len(angles) == 0 {
		return 0
	}

	sort.Float64s(angles)
	mid := len(angles) / 2
	if len(angles)%2 == 0 {
		return (angles[mid-1] + angles[mid]) / 2
	}
	return angles[mid]
}

// rotate turns the image counterclockwise by angle degrees, expanding
// the canvas so no content is clipped. The revealed background is white,
// matching typical label backgrounds.
func rotate(img image.Image, angle float64) image.Image {
	return imaging.Rotate(img, angle, color.White)
}
