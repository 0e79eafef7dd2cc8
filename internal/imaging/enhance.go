package imaging

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// CLAHE performs contrast-limited adaptive histogram equalization.
//
// The image is divided into a tilesX by tilesY grid. Each tile gets its
// own equalization mapping built from a histogram clipped at clipLimit
// (expressed as a multiple of the uniform bin height, the OpenCV
// convention); clipped excess is redistributed evenly across all bins.
// Per-pixel output bilinearly interpolates between the mappings of the
// four surrounding tile centers, which avoids visible tile seams.
func CLAHE(img *image.Gray, clipLimit float64, tilesX, tilesY int) *image.Gray {
	if tilesX < 1 {
		tilesX = 8
	}
	if tilesY < 1 {
		tilesY = 8
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return CloneGray(img)
	}

	tileW := (width + tilesX - 1) / tilesX
	tileH := (height + tilesY - 1) / tilesY

	// Build a clipped-equalization lookup table per tile.
	luts := make([][256]uint8, tilesX*tilesY)
	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			x1 := tx * tileW
			y1 := ty * tileH
			x2 := clamp(x1+tileW, 0, width)
			y2 := clamp(y1+tileH, 0, height)

			var hist [256]int
			count := 0
			for y := y1; y < y2; y++ {
				for x := x1; x < x2; x++ {
					hist[img.GrayAt(x+bounds.Min.X, y+bounds.Min.Y).Y]++
					count++
				}
			}
			if count == 0 {
				continue
			}

			clip := int(clipLimit * float64(count) / 256.0)
			if clip < 1 {
				clip = 1
			}
			excess := 0
			for i := range hist {
				if hist[i] > clip {
					excess += hist[i] - clip
					hist[i] = clip
				}
			}
			bonus := excess / 256
			for i := range hist {
				hist[i] += bonus
			}

			cdf := 0
			lut := &luts[ty*tilesX+tx]
			for i := 0; i < 256; i++ {
				cdf += hist[i]
				lut[i] = uint8(clamp(cdf*255/count, 0, 255))
			}
		}
	}

	out := image.NewGray(bounds)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := img.GrayAt(x+bounds.Min.X, y+bounds.Min.Y).Y

			// Position relative to tile centers.
			fx := (float64(x) - float64(tileW)/2) / float64(tileW)
			fy := (float64(y) - float64(tileH)/2) / float64(tileH)

			tx1 := clamp(int(fx), 0, tilesX-1)
			ty1 := clamp(int(fy), 0, tilesY-1)
			tx2 := clamp(tx1+1, 0, tilesX-1)
			ty2 := clamp(ty1+1, 0, tilesY-1)

			wx := fx - float64(tx1)
			wy := fy - float64(ty1)
			if wx < 0 {
				wx = 0
			}
			if wy < 0 {
				wy = 0
			}

			v11 := float64(luts[ty1*tilesX+tx1][v])
			v21 := float64(luts[ty1*tilesX+tx2][v])
			v12 := float64(luts[ty2*tilesX+tx1][v])
			v22 := float64(luts[ty2*tilesX+tx2][v])

			top := v11*(1-wx) + v21*wx
			bot := v12*(1-wx) + v22*wx
			out.Pix[y*out.Stride+x] = uint8(top*(1-wy) + bot*wy + 0.5)
		}
	}
	return out
}

// EqualizeGray applies global histogram equalization to a grayscale image.
func EqualizeGray(img *image.Gray) *image.Gray {
	hist := Histogram(img)
	total := 0
	for _, c := range hist {
		total += c
	}
	if total == 0 {
		return CloneGray(img)
	}

	var lut [256]uint8
	cdf := 0
	for i := 0; i < 256; i++ {
		cdf += hist[i]
		lut[i] = uint8(clamp(cdf*255/total, 0, 255))
	}

	out := image.NewGray(img.Bounds())
	for i, v := range img.Pix {
		out.Pix[i] = lut[v]
	}
	return out
}

// MapLightness applies fn to the perceptual lightness channel of a color
// image while preserving hue and chroma. The image is converted to CIE
// L*a*b*, the L channel is processed as an 8-bit plane, and the result is
// recombined with the original a/b channels. Output dimensions and
// channel count match the input.
func MapLightness(img image.Image, fn func(*image.Gray) *image.Gray) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	lightness := image.NewGray(bounds)
	chromaA := make([]float64, width*height)
	chromaB := make([]float64, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c, _ := colorful.MakeColor(img.At(x+bounds.Min.X, y+bounds.Min.Y))
			l, a, b := c.Lab()
			lightness.Pix[y*lightness.Stride+x] = uint8(clamp(int(l*255+0.5), 0, 255))
			chromaA[y*width+x] = a
			chromaB[y*width+x] = b
		}
	}

	mapped := fn(lightness)

	out := image.NewRGBA(bounds)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			l := float64(mapped.Pix[y*mapped.Stride+x]) / 255.0
			c := colorful.Lab(l, chromaA[y*width+x], chromaB[y*width+x]).Clamped()
			r, g, b := c.RGB255()
			out.SetRGBA(x+bounds.Min.X, y+bounds.Min.Y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return out
}

// Sharpen applies the classic 3x3 sharpening kernel (center 5, cross -1).
func Sharpen(img image.Image) *image.RGBA {
	return effect.Sharpen(img)
}

// AdjustGamma applies gamma correction. gamma > 1 brightens midtones.
func AdjustGamma(img image.Image, gamma float64) image.Image {
	return imaging.AdjustGamma(img, gamma)
}
