// Package ocr defines the recognition boundary between the extraction
// pipeline and the underlying OCR engine.
//
// The pipeline depends only on the Engine interface: give it an image
// and a page-segmentation configuration, get back text with a 0-100
// confidence score. The production implementation is Tesseract via
// gosseract; tests substitute scriptable fakes.
package ocr
