package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract is the production Engine backed by the Tesseract OCR library
// via gosseract. Each call uses a fresh client, so a single Tesseract
// value is safe for concurrent use across pipeline workers.
type Tesseract struct{}

// NewTesseract returns a Tesseract-backed engine.
func NewTesseract() *Tesseract {
	return &Tesseract{}
}

// Recognize runs one OCR pass over the image with the given
// configuration and returns word tokens aggregated into a single text
// plus mean confidence.
//
// The underlying library has no cancellation hook, so ctx is honored by
// abandoning the call on expiry: the result is discarded and a zero
// Result is returned with ctx's error. The caller treats that like any
// other skipped attempt.
func (t *Tesseract) Recognize(ctx context.Context, img image.Image, cfg Config) (Result, error) {
	type outcome struct {
		result Result
		err    error
	}
	done := make(chan outcome, 1)

	go func() {
		result, err := recognize(img, cfg)
		done <- outcome{result: result, err: err}
	}()

	select {
	case out := <-done:
		return out.result, out.err
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

func recognize(img image.Image, cfg Config) (Result, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Result{}, fmt.Errorf("failed to encode image for OCR: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if cfg.Language != "" {
		if err := client.SetLanguage(cfg.Language); err != nil {
			return Result{}, fmt.Errorf("failed to set language: %w", err)
		}
	}
	if err := client.SetPageSegMode(gosseract.PageSegMode(cfg.PageSegMode)); err != nil {
		return Result{}, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return Result{}, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return Result{}, fmt.Errorf("OCR failed: %w", err)
	}

	tokens := make([]Token, 0, len(boxes))
	for _, box := range boxes {
		tokens = append(tokens, Token{
			Text:       box.Word,
			Confidence: box.Confidence,
		})
	}
	return Aggregate(tokens), nil
}

// Version reports the linked Tesseract library version.
func (t *Tesseract) Version() string {
	client := gosseract.NewClient()
	defer client.Close()
	return client.Version()
}
