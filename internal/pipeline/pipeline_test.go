package pipeline

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/shelfscan/labelscan/internal/ocr"
	"github.com/shelfscan/labelscan/internal/preprocess"
)

// scriptedEngine returns a fixed result for every recognition call.
type scriptedEngine struct {
	mu     sync.Mutex
	result ocr.Result
	err    error
}

func (s *scriptedEngine) Recognize(ctx context.Context, img image.Image, cfg ocr.Config) (ocr.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result, s.err
}

func writeLabelPNG(t *testing.T, dir, name string) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 120, 90))
	for y := 0; y < 90; y++ {
		for x := 0; x < 120; x++ {
			img.SetRGBA(x, y, color.RGBA{235, 235, 235, 255})
		}
	}
	for y := 30; y < 60; y++ {
		for x := 30; x < 90; x++ {
			img.SetRGBA(x, y, color.RGBA{15, 15, 15, 255})
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating test image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return path
}

func writeBlackPNG(t *testing.T, dir, name string) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 60, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			img.SetRGBA(x, y, color.RGBA{0, 0, 0, 255})
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating test image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return path
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.Mode = preprocess.ModeOtsu
	opts.Denoise = false
	return opts
}

func TestProcessFile_Success(t *testing.T) {
	path := writeLabelPNG(t, t.TempDir(), "label.png")
	engine := &scriptedEngine{result: ocr.Result{Text: "Tide Detergent", Confidence: 80}}
	p := New(engine, testOptions())

	res, err := p.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}

	if res.NoTextDetected {
		t.Error("text was recognized, NoTextDetected should be false")
	}
	if len(res.Extractions) != 1 {
		t.Fatalf("extractions: got %d, want 1 after dedup", len(res.Extractions))
	}
	if res.AverageConfidence != 80 {
		t.Errorf("average confidence: got %g, want 80", res.AverageConfidence)
	}
	if len(res.Info.ProductNames) != 1 {
		t.Errorf("product names: got %v", res.Info.ProductNames)
	}
	if res.SourceFile != path {
		t.Errorf("source file: got %q, want %q", res.SourceFile, path)
	}
}

func TestProcessFile_MissingFile(t *testing.T) {
	engine := &scriptedEngine{}
	p := New(engine, testOptions())

	if _, err := p.ProcessFile(context.Background(), "missing.png"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestProcessFile_NoRegions(t *testing.T) {
	path := writeBlackPNG(t, t.TempDir(), "black.png")
	engine := &scriptedEngine{result: ocr.Result{Text: "ghost", Confidence: 99}}
	p := New(engine, testOptions())

	res, err := p.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}

	if !res.NoTextDetected {
		t.Error("all-black image should report NoTextDetected")
	}
	if res.Info == nil || !res.Info.Empty() {
		t.Errorf("info should be empty but well-formed: %+v", res.Info)
	}
	if len(res.Regions) != 0 || len(res.Extractions) != 0 {
		t.Errorf("regions/extractions should be empty: %d/%d", len(res.Regions), len(res.Extractions))
	}
}

func TestProcessFile_NoAcceptedText(t *testing.T) {
	path := writeLabelPNG(t, t.TempDir(), "label.png")
	engine := &scriptedEngine{err: errors.New("engine unavailable")}
	p := New(engine, testOptions())

	res, err := p.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("engine failures must not fail the pipeline: %v", err)
	}
	if !res.NoTextDetected {
		t.Error("zero accepted extractions should report NoTextDetected")
	}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestBatch_Run(t *testing.T) {
	dir := t.TempDir()
	good := writeLabelPNG(t, dir, "good.png")
	blank := writeBlackPNG(t, dir, "blank.png")
	missing := filepath.Join(dir, "missing.png")

	engine := &scriptedEngine{result: ocr.Result{Text: "Tide Detergent", Confidence: 80}}
	p := New(engine, testOptions())
	b := NewBatch(p, 2, quietLogger())

	results, summary := b.Run(context.Background(), []string{good, blank, missing})

	if summary.TotalFiles != 3 || summary.Successful != 1 || summary.NoTextDetected != 1 || summary.Failed != 1 {
		t.Errorf("summary: %+v", summary)
	}

	// Results keep input order regardless of worker scheduling.
	if results[0].Filename != good || results[0].Status != StatusSuccess {
		t.Errorf("first result: %+v", results[0])
	}
	if results[1].Filename != blank || results[1].Status != StatusNoText {
		t.Errorf("second result: %+v", results[1])
	}
	if results[2].Filename != missing || !strings.HasPrefix(results[2].Status, "error: ") {
		t.Errorf("third result: %+v", results[2])
	}

	if results[0].Info == nil || len(results[0].Info.ProductNames) != 1 {
		t.Errorf("successful result should carry product info: %+v", results[0].Info)
	}
}

func TestBatch_EmptyInput(t *testing.T) {
	engine := &scriptedEngine{}
	b := NewBatch(New(engine, testOptions()), 0, quietLogger())

	results, summary := b.Run(context.Background(), nil)
	if len(results) != 0 || summary.TotalFiles != 0 {
		t.Errorf("empty input: results=%d summary=%+v", len(results), summary)
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.Mode != preprocess.ModeTextOptimised {
		t.Errorf("default mode: got %v", opts.Mode)
	}
	if opts.MinConfidence != 30 {
		t.Errorf("default min confidence: got %g", opts.MinConfidence)
	}
	if !opts.Denoise {
		t.Error("denoising should default on")
	}
	if opts.Language != "eng" {
		t.Errorf("default language: got %q", opts.Language)
	}
}
