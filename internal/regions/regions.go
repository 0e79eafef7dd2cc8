// Package regions finds candidate text-bearing rectangles in a binarized
// image. Detection is connected-component based: each white foreground
// component with sufficient area contributes its axis-aligned bounding
// box. Output order follows component discovery order; callers must not
// assume any spatial sort.
package regions

import (
	"image"

	"github.com/shelfscan/labelscan/internal/preprocess"
)

// Region is an axis-aligned rectangle in the coordinate space of the
// original (not resized) image. Immutable once created.
type Region struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Area returns the rectangle's area in pixels.
func (r Region) Area() int {
	return r.Width * r.Height
}

// Detector locates candidate text regions on a binary image.
type Detector struct {
	// MinArea is the smallest component pixel count kept. Components at
	// or below this size are treated as speckle.
	MinArea int
}

// NewDetector returns a Detector with the standard 100px² area floor.
func NewDetector() *Detector {
	return &Detector{MinArea: 100}
}

// Detect finds foreground connected components (8-connectivity, white
// pixels) on a binary image and returns a bounding rectangle for every
// component whose pixel count exceeds MinArea. Coordinates are in the
// binary image's own space.
func (d *Detector) Detect(binary *image.Gray) []Region {
	bounds := binary.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	visited := make([]bool, width*height)
	var found []Region

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if visited[y*width+x] || binary.Pix[y*binary.Stride+x] <= 127 {
				continue
			}

			// Flood fill with an explicit stack; recursion would
			// overflow on large components.
			minX, minY, maxX, maxY := x, y, x, y
			count := 0
			stack := []image.Point{{X: x, Y: y}}
			visited[y*width+x] = true

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				count++

				if p.X < minX {
					minX = p.X
				}
				if p.X > maxX {
					maxX = p.X
				}
				if p.Y < minY {
					minY = p.Y
				}
				if p.Y > maxY {
					maxY = p.Y
				}

				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := p.X+dx, p.Y+dy
						if nx < 0 || ny < 0 || nx >= width || ny >= height {
							continue
						}
						if visited[ny*width+nx] || binary.Pix[ny*binary.Stride+nx] <= 127 {
							continue
						}
						visited[ny*width+nx] = true
						stack = append(stack, image.Point{X: nx, Y: ny})
					}
				}
			}

			if count > d.MinArea {
				found = append(found, Region{
					X:      minX,
					Y:      minY,
					Width:  maxX - minX + 1,
					Height: maxY - minY + 1,
				})
			}
		}
	}
	return found
}

// DetectFromResult runs Detect on a preprocessing result and maps the
// rectangles back into the original image's coordinate space.
//
// When no component qualifies and the result came from the
// text_optimised mode, a single region spanning the full original image
// is synthesized: that mode is expected to sometimes produce a clean
// full-page binarization with no isolated components.
func (d *Detector) DetectFromResult(res *preprocess.Result) []Region {
	found := d.Detect(res.Binary)

	if res.Scale > 0 && res.Scale != 1.0 {
		for i := range found {
			found[i].X = int(float64(found[i].X) / res.Scale)
			found[i].Y = int(float64(found[i].Y) / res.Scale)
			found[i].Width = int(float64(found[i].Width) / res.Scale)
			found[i].Height = int(float64(found[i].Height) / res.Scale)
		}
	}

	if len(found) == 0 && res.Mode == preprocess.ModeTextOptimised {
		b := res.Original.Bounds()
		return []Region{{X: 0, Y: 0, Width: b.Dx(), Height: b.Dy()}}
	}
	return found
}
