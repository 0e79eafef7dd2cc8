// Package pipeline wires preprocessing, region detection, OCR
// extraction and classification into a single-image processing chain,
// and runs batches of images across a bounded worker pool with
// per-item failure isolation.
package pipeline
