package extract

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"

	imgops "github.com/shelfscan/labelscan/internal/imaging"
	"github.com/shelfscan/labelscan/internal/regions"
)

// variants are the preprocessing strategies tried per region crop, in
// order: full OCR enhancement, plain grayscale, and the edge-masked text
// detection pass. Different strategies win on different label surfaces.
var variants = []func(image.Image) image.Image{
	enhanceForOCR,
	func(img image.Image) image.Image { return imgops.ToGray(img) },
	textDetectionMask,
}

// minOCRDimension is the smallest crop size fed to the engine without
// upscaling.
const minOCRDimension = 50

// enhanceForOCR prepares a crop for recognition: denoise, contrast
// equalization, sharpening, Otsu binarization, and an upscale when the
// crop is tiny.
func enhanceForOCR(img image.Image) image.Image {
	gray := imgops.ToGray(img)
	denoised := imgops.ToGray(effect.Median(gray, 3))
	enhanced := imgops.CLAHE(denoised, 2.0, 8, 8)
	sharpened := imgops.ToGray(imgops.Sharpen(enhanced))
	binary := imgops.OtsuThreshold(sharpened)

	bounds := binary.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width >= minOCRDimension && height >= minOCRDimension {
		return binary
	}
	if width == 0 || height == 0 {
		return binary
	}

	factor := float64(minOCRDimension) / float64(height)
	if f := float64(minOCRDimension) / float64(width); f > factor {
		factor = f
	}
	return imaging.Resize(binary, int(float64(width)*factor), int(float64(height)*factor), imaging.CatmullRom)
}

// textDetectionMask isolates probable text areas before the whole-image
// OCR pass: contrast-equalized grayscale is edge-detected, edges are
// dilated to merge glyphs into word blobs, and only blob areas above the
// speckle floor survive into the output; everything else goes black.
func textDetectionMask(img image.Image) image.Image {
	gray := imgops.ToGray(img)
	smoothed := imgops.ToGray(effect.Median(gray, 3))
	enhanced := imgops.CLAHE(smoothed, 2.0, 8, 8)

	edges := imgops.Canny(enhanced, 30, 200)
	dilated := imgops.Dilate(edges, 7, 7)

	detector := regions.NewDetector()
	blobs := detector.Detect(dilated)

	bounds := enhanced.Bounds()
	out := image.NewGray(bounds)
	for _, blob := range blobs {
		for y := blob.Y; y < blob.Y+blob.Height; y++ {
			for x := blob.X; x < blob.X+blob.Width; x++ {
				out.Pix[y*out.Stride+x] = enhanced.Pix[y*enhanced.Stride+x]
			}
		}
	}
	return out
}
