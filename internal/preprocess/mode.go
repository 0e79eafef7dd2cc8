package preprocess

// Mode selects the binarization strategy applied to an image before text
// region detection. The zero value is ModeDefault, a plain fixed-level
// threshold used as the fallback for unrecognized mode names.
type Mode int

const (
	// ModeDefault binarizes at a fixed level of 127. Not selectable by
	// name; it is the fallback for unknown mode strings.
	ModeDefault Mode = iota

	// ModeAdaptiveThreshold uses a locally computed threshold after a
	// light Gaussian blur. Robust to uneven lighting.
	ModeAdaptiveThreshold

	// ModeOtsu uses global automatic threshold selection after a blur.
	// Fast; assumes roughly bimodal intensity.
	ModeOtsu

	// ModeMorphological applies an Otsu threshold then a close-open pass
	// to bridge broken strokes and remove speckle.
	ModeMorphological

	// ModeEdgeDetection inverts a Canny edge map. Emphasizes glyph
	// boundaries and drops filled regions.
	ModeEdgeDetection

	// ModeCombined chains CLAHE, edge-preserving smoothing, adaptive
	// thresholding and a light close. The most robust and most expensive
	// strategy.
	ModeCombined

	// ModeTextOptimised upscales small images, sharpens, applies strong
	// CLAHE and an Otsu threshold. The recommended default for label
	// photographs.
	ModeTextOptimised
)

var modeNames = map[Mode]string{
	ModeDefault:           "default",
	ModeAdaptiveThreshold: "adaptive_threshold",
	ModeOtsu:              "otsu",
	ModeMorphological:     "morphological",
	ModeEdgeDetection:     "edge_detection",
	ModeCombined:          "combined",
	ModeTextOptimised:     "text_optimised",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "default"
}

// ParseMode maps a mode name to its Mode value. Unrecognized names fall
// back to ModeDefault rather than erroring, so a bad configuration value
// degrades to the simplest binarization instead of failing the image.
func ParseMode(name string) Mode {
	for mode, n := range modeNames {
		if n == name && mode != ModeDefault {
			return mode
		}
	}
	return ModeDefault
}

// ModeNames lists the selectable preprocessing mode names.
func ModeNames() []string {
	return []string{
		"adaptive_threshold",
		"otsu",
		"morphological",
		"edge_detection",
		"combined",
		"text_optimised",
	}
}
