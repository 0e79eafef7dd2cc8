package pipeline

import (
	"context"
	"time"

	"github.com/shelfscan/labelscan/internal/classify"
	"github.com/shelfscan/labelscan/internal/extract"
	"github.com/shelfscan/labelscan/internal/ocr"
	"github.com/shelfscan/labelscan/internal/preprocess"
	"github.com/shelfscan/labelscan/internal/regions"
)

// Options configures a pipeline run. The zero value is not useful; use
// DefaultOptions as a base.
type Options struct {
	Mode          preprocess.Mode
	MinConfidence float64
	ResizeWidth   int
	Denoise       bool
	Language      string

	// OCRTimeout bounds each engine call; zero disables the bound.
	OCRTimeout time.Duration
}

// DefaultOptions mirrors the standard configuration: text_optimised
// preprocessing, confidence floor 30, auto-resize, denoising on.
func DefaultOptions() Options {
	return Options{
		Mode:          preprocess.ModeTextOptimised,
		MinConfidence: classify.DefaultMinConfidence,
		ResizeWidth:   0,
		Denoise:       true,
		Language:      "eng",
	}
}

// ImageResult is the outcome of processing one image.
type ImageResult struct {
	// SourceFile is the input path.
	SourceFile string `json:"source_file"`

	// Regions are the detected text regions in original-image space.
	Regions []regions.Region `json:"regions"`

	// Extractions are the accepted OCR snippets, deduplicated.
	Extractions []extract.Result `json:"extractions"`

	// Info is the classified output. Always well-formed, never nil on a
	// non-error result.
	Info *classify.ProductInfo `json:"info"`

	// AverageConfidence is the mean confidence over Extractions, 0 when
	// there are none.
	AverageConfidence float64 `json:"average_confidence"`

	// NoTextDetected is set when region detection found nothing and the
	// preprocessing mode provides no full-image fallback. It is a
	// reported terminal outcome, not an error; the usual remedy is a
	// different mode or a better photograph.
	NoTextDetected bool `json:"no_text_detected"`
}

// Pipeline chains preprocessing, region detection, multi-strategy
// extraction and classification for single images. It is stateless
// across images apart from read-only configuration, so one Pipeline may
// be shared by concurrent workers.
type Pipeline struct {
	detector   *regions.Detector
	extractor  *extract.Extractor
	classifier *classify.Classifier
	opts       Options
}

// New builds a pipeline around the given OCR engine.
func New(engine ocr.Engine, opts Options) *Pipeline {
	return &Pipeline{
		detector:   regions.NewDetector(),
		extractor:  extract.New(engine, opts.Language, opts.OCRTimeout),
		classifier: classify.NewClassifier(classify.DefaultKeywords(), classify.DefaultPatterns(), opts.MinConfidence),
		opts:       opts,
	}
}

// NewWithClassifier builds a pipeline with a caller-supplied classifier,
// for configurations that override the default keyword sets.
func NewWithClassifier(engine ocr.Engine, classifier *classify.Classifier, opts Options) *Pipeline {
	return &Pipeline{
		detector:   regions.NewDetector(),
		extractor:  extract.New(engine, opts.Language, opts.OCRTimeout),
		classifier: classifier,
		opts:       opts,
	}
}

// ProcessFile runs the full pipeline on one image file.
//
// Image decode failure is the only error path (imaging.ErrLoad); every
// later stage is total. When no text regions are found and the mode has
// no fallback, the result reports NoTextDetected with empty but
// well-formed info.
func (p *Pipeline) ProcessFile(ctx context.Context, path string) (*ImageResult, error) {
	pre, err := preprocess.Preprocess(path, preprocess.Options{
		Mode:        p.opts.Mode,
		ResizeWidth: p.opts.ResizeWidth,
		Denoise:     p.opts.Denoise,
	})
	if err != nil {
		return nil, err
	}

	found := p.detector.DetectFromResult(pre)
	if len(found) == 0 {
		return &ImageResult{
			SourceFile:     path,
			Regions:        []regions.Region{},
			Extractions:    []extract.Result{},
			Info:           p.classifier.Classify(nil),
			NoTextDetected: true,
		}, nil
	}

	extractions := p.extractor.Extract(ctx, pre.Original, found)

	var sum float64
	for _, e := range extractions {
		sum += e.Confidence
	}
	avg := 0.0
	if len(extractions) > 0 {
		avg = sum / float64(len(extractions))
	}

	return &ImageResult{
		SourceFile:        path,
		Regions:           found,
		Extractions:       extractions,
		Info:              p.classifier.Classify(extractions),
		AverageConfidence: avg,
		NoTextDetected:    len(extractions) == 0,
	}, nil
}
