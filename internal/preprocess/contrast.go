package preprocess

import (
	"image"

	imgops "github.com/shelfscan/labelscan/internal/imaging"
)

// ContrastMethod names an EnhanceContrast strategy.
type ContrastMethod string

const (
	ContrastCLAHE    ContrastMethod = "clahe"
	ContrastEqualize ContrastMethod = "histogram_equalisation"
	ContrastGamma    ContrastMethod = "gamma_correction"
)

// RemoveShadows evens out illumination by applying contrast-limited
// equalization to the perceptual lightness channel, leaving hue and
// chroma untouched. Shape and channel count are preserved.
func RemoveShadows(img image.Image) image.Image {
	return imgops.MapLightness(img, func(l *image.Gray) *image.Gray {
		return imgops.CLAHE(l, 3.0, 8, 8)
	})
}

// EnhanceContrast boosts contrast using the selected method. Each method
// preserves the image's shape and channel count; an unrecognized method
// returns the input unchanged.
func EnhanceContrast(img image.Image, method ContrastMethod) image.Image {
	switch method {
	case ContrastCLAHE:
		return imgops.MapLightness(img, func(l *image.Gray) *image.Gray {
			return imgops.CLAHE(l, 3.0, 8, 8)
		})
	case ContrastEqualize:
		return imgops.MapLightness(img, func(l *image.Gray) *image.Gray {
			return imgops.EqualizeGray(l)
		})
	case ContrastGamma:
		return imgops.AdjustGamma(img, 1.5)
	default:
		return img
	}
}
