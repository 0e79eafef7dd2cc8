package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/shelfscan/labelscan/internal/classify"
)

// Per-item batch statuses. Failures carry the error message appended to
// the "error: " prefix.
const (
	StatusSuccess = "success"
	StatusNoText  = "no_text_detected"
	statusError   = "error: %v"
)

// ItemResult records the outcome for one file of a batch run.
type ItemResult struct {
	Filename string                `json:"filename"`
	Status   string                `json:"status"`
	Info     *classify.ProductInfo `json:"product_info,omitempty"`
}

// Summary tallies a batch run.
type Summary struct {
	TotalFiles     int `json:"total_files"`
	Successful     int `json:"successful"`
	Failed         int `json:"failed"`
	NoTextDetected int `json:"no_text_detected"`
}

// Batch processes many images through a shared pipeline with a bounded
// worker pool. Images are independent: per-image failures are captured
// as that item's status and never abort the remaining items.
type Batch struct {
	pipeline *Pipeline
	workers  int
	log      logrus.FieldLogger
}

// NewBatch returns a batch runner. workers <= 0 selects the number of
// available CPU cores.
func NewBatch(p *Pipeline, workers int, log logrus.FieldLogger) *Batch {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Batch{pipeline: p, workers: workers, log: log}
}

// Run processes every path and returns per-item results in input order
// plus the tally. The shared keyword sets and pattern table are
// read-only, so workers share the pipeline without locking.
func (b *Batch) Run(ctx context.Context, paths []string) ([]ItemResult, Summary) {
	results := make([]ItemResult, len(paths))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < b.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = b.processOne(ctx, paths[i])
			}
		}()
	}

	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var summary Summary
	summary.TotalFiles = len(results)
	for _, r := range results {
		switch r.Status {
		case StatusSuccess:
			summary.Successful++
		case StatusNoText:
			summary.NoTextDetected++
		default:
			summary.Failed++
		}
	}
	return results, summary
}

func (b *Batch) processOne(ctx context.Context, path string) ItemResult {
	log := b.log.WithField("file", path)
	log.Info("processing image")

	res, err := b.pipeline.ProcessFile(ctx, path)
	if err != nil {
		log.WithError(err).Warn("image failed")
		return ItemResult{Filename: path, Status: fmt.Sprintf(statusError, err)}
	}
	if res.NoTextDetected {
		log.Info("no text detected")
		return ItemResult{Filename: path, Status: StatusNoText, Info: res.Info}
	}

	log.WithFields(logrus.Fields{
		"regions":        len(res.Regions),
		"extractions":    len(res.Extractions),
		"avg_confidence": res.AverageConfidence,
	}).Info("image processed")
	return ItemResult{Filename: path, Status: StatusSuccess, Info: res.Info}
}
