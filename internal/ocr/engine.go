package ocr

import (
	"context"
	"image"
	"strings"
)

// PageSegMode mirrors the engine's page-segmentation configuration: the
// assumed text layout of the image being recognized.
type PageSegMode int

const (
	PSMAuto        PageSegMode = 3  // fully automatic page segmentation
	PSMSingleBlock PageSegMode = 6  // uniform block of text
	PSMSingleLine  PageSegMode = 7  // single text line
	PSMSingleWord  PageSegMode = 8  // single word
	PSMSparseText  PageSegMode = 11 // sparse text in no particular order
	PSMRawLine     PageSegMode = 13 // raw line, no layout analysis
)

// Config selects engine behavior for one recognition call.
type Config struct {
	// PageSegMode is the layout assumption for this call.
	PageSegMode PageSegMode

	// Language is the engine language pack code (e.g. "eng").
	Language string
}

// Result is the aggregate outcome of one recognition call.
type Result struct {
	// Text is the recognized text, tokens joined by single spaces.
	Text string `json:"text"`

	// Confidence is the mean per-token confidence on a 0-100 scale, as
	// reported by the engine. Zero when nothing was recognized.
	Confidence float64 `json:"confidence"`
}

// Engine is the recognition boundary. Implementations receive an image
// and a configuration and return recognized text with a confidence
// score. The extraction pipeline treats the engine as a black box: any
// error or empty result is a skipped attempt, never a pipeline failure.
type Engine interface {
	Recognize(ctx context.Context, img image.Image, cfg Config) (Result, error)
}

// Token is a single recognized word with its confidence.
type Token struct {
	Text       string
	Confidence float64
}

// Aggregate folds per-token engine output into a Result. Tokens with
// non-positive confidence or single-character text are discarded before
// joining; confidence is the mean over the surviving tokens.
func Aggregate(tokens []Token) Result {
	var texts []string
	var sum float64

	for _, t := range tokens {
		text := strings.TrimSpace(t.Text)
		if t.Confidence <= 0 || len(text) <= 1 {
			continue
		}
		texts = append(texts, text)
		sum += t.Confidence
	}
	if len(texts) == 0 {
		return Result{}
	}

	return Result{
		Text:       strings.Join(texts, " "),
		Confidence: sum / float64(len(texts)),
	}
}
