package extract

import (
	"context"
	"image"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/shelfscan/labelscan/internal/ocr"
	"github.com/shelfscan/labelscan/internal/regions"
)

const (
	// minRegionDimension filters out rectangles too small to OCR
	// reliably. Regions below this in either dimension never reach the
	// engine.
	minRegionDimension = 20

	// regionPadding expands each region's bounding box before cropping,
	// clamped to the image bounds. Tight crops cut off glyph edges.
	regionPadding = 10

	// wholeImageMinConfidence gates the full-image pass.
	wholeImageMinConfidence = 50

	// regionMinConfidence gates each region's best result.
	regionMinConfidence = 30

	// minTextLength is the shortest candidate text worth keeping, both
	// per attempt and after dedup normalization.
	minTextLength = 2
)

// Result is one accepted recognized snippet: the engine's text with the
// confidence it reported for it.
type Result struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// Extractor runs multi-strategy OCR over an image and its candidate
// regions. For each region it searches the cartesian product of
// preprocessing variants and page-segmentation modes, keeping the single
// best-confidence result; no one binarization strategy wins across all
// label typography and lighting, and best-confidence-wins avoids needing
// a learned selector.
type Extractor struct {
	engine   ocr.Engine
	language string

	// timeout bounds each individual engine call. Zero means no bound.
	// An expired call counts as a skipped attempt.
	timeout time.Duration
}

// New returns an Extractor using the given engine and language pack.
func New(engine ocr.Engine, language string, timeout time.Duration) *Extractor {
	return &Extractor{engine: engine, language: language, timeout: timeout}
}

// pageSegModes are the layout configurations tried per region, in order.
var pageSegModes = []ocr.PageSegMode{
	ocr.PSMSingleBlock,
	ocr.PSMSingleWord,
	ocr.PSMSingleLine,
	ocr.PSMSparseText,
	ocr.PSMRawLine,
}

// Extract OCRs the whole image and each detected region, returning
// deduplicated (text, confidence) pairs in first-discovery order with
// the whole-image result, if accepted, first.
//
// A failure of any single (variant, mode) attempt is swallowed and the
// search continues; per-attempt errors never abort a region, and a
// region producing nothing acceptable is simply skipped.
func (e *Extractor) Extract(ctx context.Context, img image.Image, found []regions.Region) []Result {
	var accepted []Result

	// Whole-image pass with the text-detection mask and a general
	// layout configuration.
	masked := textDetectionMask(img)
	if res, err := e.attempt(ctx, masked, ocr.PSMAuto); err == nil {
		if res.Text != "" && res.Confidence > wholeImageMinConfidence {
			accepted = append(accepted, Result{Text: res.Text, Confidence: res.Confidence})
		}
	}

	bounds := img.Bounds()
	for _, region := range found {
		if region.Width < minRegionDimension || region.Height < minRegionDimension {
			continue
		}

		x1 := maxInt(bounds.Min.X, bounds.Min.X+region.X-regionPadding)
		y1 := maxInt(bounds.Min.Y, bounds.Min.Y+region.Y-regionPadding)
		x2 := minInt(bounds.Max.X, bounds.Min.X+region.X+region.Width+regionPadding)
		y2 := minInt(bounds.Max.Y, bounds.Min.Y+region.Y+region.Height+regionPadding)
		if x2 <= x1 || y2 <= y1 {
			continue
		}
		crop := imaging.Crop(img, image.Rect(x1, y1, x2, y2))

		best := e.searchRegion(ctx, crop)
		if best.Text != "" && best.Confidence > regionMinConfidence {
			accepted = append(accepted, best)
		}
	}

	return dedupe(accepted)
}

// searchRegion tries every preprocessing variant against every page
// segmentation mode and returns the highest-confidence result whose text
// is long enough. Failed attempts are discarded silently.
func (e *Extractor) searchRegion(ctx context.Context, crop image.Image) Result {
	var best Result

	for _, variant := range variants {
		processed := variant(crop)
		for _, psm := range pageSegModes {
			res, err := e.attempt(ctx, processed, psm)
			if err != nil {
				continue
			}
			if res.Confidence > best.Confidence && len(res.Text) > minTextLength {
				best = Result{Text: res.Text, Confidence: res.Confidence}
			}
		}
	}
	return best
}

// attempt performs one engine call, applying the per-call timeout.
func (e *Extractor) attempt(ctx context.Context, img image.Image, psm ocr.PageSegMode) (ocr.Result, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	return e.engine.Recognize(ctx, img, ocr.Config{
		PageSegMode: psm,
		Language:    e.language,
	})
}

// dedupe keeps the first occurrence of each case-insensitive trimmed
// text, dropping entries whose normalized form is too short. Confidence
// travels with the originating, non-normalized text.
func dedupe(results []Result) []Result {
	seen := make(map[string]bool, len(results))
	unique := make([]Result, 0, len(results))

	for _, r := range results {
		normalized := strings.ToLower(strings.TrimSpace(r.Text))
		if len(normalized) <= minTextLength || seen[normalized] {
			continue
		}
		seen[normalized] = true
		unique = append(unique, r)
	}
	return unique
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
