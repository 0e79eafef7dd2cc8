package preprocess

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"

	imgops "github.com/shelfscan/labelscan/internal/imaging"
)

const (
	// autoResizeTrigger is the width above which an image is downscaled
	// even without an explicit resize request.
	autoResizeTrigger = 2000

	// defaultResizeWidth is the target width for automatic downscaling.
	defaultResizeWidth = 1920

	// minTextDimension is the smallest dimension text_optimised accepts
	// before upscaling.
	minTextDimension = 300
)

// Options controls the preprocessing pipeline.
type Options struct {
	// Mode selects the binarization strategy.
	Mode Mode

	// ResizeWidth forces scaling to this width (aspect preserved).
	// Zero means resize only when the image is wider than 2000px, in
	// which case it is scaled to 1920px.
	ResizeWidth int

	// Denoise applies a noise-reduction filter before thresholding.
	Denoise bool
}

// Result is the output of preprocessing a single image.
type Result struct {
	// Binary is the 0/255 binarized image used for region detection.
	Binary *image.Gray

	// Original is the untouched decoded input. Region coordinates are
	// reported against this image so callers can crop and display it.
	Original image.Image

	// Scale is the factor from original to binary coordinate space.
	// Dividing binary-space coordinates by Scale maps them back onto
	// Original.
	Scale float64

	// Mode is the strategy that produced Binary.
	Mode Mode
}

// Preprocess loads an image from disk and binarizes it for text
// detection. Decode failures surface imaging.ErrLoad; everything after a
// successful load is total.
func Preprocess(path string, opts Options) (*Result, error) {
	img, err := imgops.Load(path)
	if err != nil {
		return nil, err
	}
	return PreprocessImage(img, opts), nil
}

// PreprocessImage binarizes an already decoded image.
//
// Auto-rotation runs unconditionally before any mode-specific step, then
// the image is optionally resized and converted to grayscale, denoised if
// requested, and dispatched to the selected mode. The caller's image is
// never modified.
func PreprocessImage(img image.Image, opts Options) *Result {
	working := AutoRotate(img)

	originalWidth := working.Bounds().Dx()
	if opts.ResizeWidth > 0 || originalWidth > autoResizeTrigger {
		target := opts.ResizeWidth
		if target <= 0 {
			target = defaultResizeWidth
		}
		working = imaging.Resize(working, target, 0, imaging.Lanczos)
	}

	gray := imgops.ToGray(working)
	if opts.Denoise {
		gray = imgops.ToGray(effect.Median(gray, 3))
	}

	var binary *image.Gray
	switch opts.Mode {
	case ModeAdaptiveThreshold:
		binary = adaptiveThreshold(gray)
	case ModeOtsu:
		binary = otsuThreshold(gray)
	case ModeMorphological:
		binary = morphological(gray)
	case ModeEdgeDetection:
		binary = edgeDetection(gray)
	case ModeCombined:
		binary = combined(gray)
	case ModeTextOptimised:
		binary = textOptimised(gray)
	default:
		binary = imgops.FixedThreshold(gray, 127)
	}

	// Derived from the binary output so mode-internal upscaling (the
	// text_optimised small-image path) is accounted for.
	scale := 1.0
	if w := img.Bounds().Dx(); w > 0 {
		scale = float64(binary.Bounds().Dx()) / float64(w)
	}

	return &Result{
		Binary:   binary,
		Original: img,
		Scale:    scale,
		Mode:     opts.Mode,
	}
}

func adaptiveThreshold(gray *image.Gray) *image.Gray {
	blurred := imgops.ToGray(blur.Gaussian(gray, 1.4))
	return imgops.AdaptiveThreshold(blurred, 11, 2)
}

func otsuThreshold(gray *image.Gray) *image.Gray {
	blurred := imgops.ToGray(blur.Gaussian(gray, 1.4))
	return imgops.OtsuThreshold(blurred)
}

func morphological(gray *image.Gray) *image.Gray {
	binary := imgops.OtsuThreshold(gray)
	binary = imgops.Close(binary, 2, 2)
	return imgops.Open(binary, 2, 2)
}

func edgeDetection(gray *image.Gray) *image.Gray {
	edges := imgops.Canny(gray, 100, 200)
	return imgops.Invert(edges)
}

func combined(gray *image.Gray) *image.Gray {
	enhanced := imgops.CLAHE(gray, 2.0, 8, 8)
	// Median smoothing stands in for an edge-preserving bilateral pass.
	smoothed := imgops.ToGray(effect.Median(enhanced, 3))
	binary := imgops.AdaptiveThreshold(smoothed, 11, 2)
	return imgops.Close(binary, 2, 2)
}

func textOptimised(gray *image.Gray) *image.Gray {
	bounds := gray.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if (width > 0 && width < minTextDimension) || (height > 0 && height < minTextDimension) {
		factor := float64(minTextDimension) / float64(height)
		if f := float64(minTextDimension) / float64(width); f > factor {
			factor = f
		}
		gray = imgops.ToGray(imaging.Resize(gray, int(float64(width)*factor), int(float64(height)*factor), imaging.CatmullRom))
	}

	sharpened := imgops.ToGray(imgops.Sharpen(gray))
	enhanced := imgops.CLAHE(sharpened, 3.0, 8, 8)
	binary := imgops.OtsuThreshold(enhanced)
	return imgops.Close(binary, 2, 2)
}
