// Package imaging provides the low-level pixel operations behind label
// preprocessing: grayscale conversion, global and local thresholding,
// binary morphology, contrast enhancement (CLAHE, histogram equalization,
// gamma) and Canny edge detection.
//
// All operations treat their input as read-only and return new images.
// Binary images are *image.Gray with values restricted to 0 and 255.
package imaging
