// Package preprocess turns raw label photographs into binarized images
// ready for text region detection.
//
// Six named binarization strategies are available (see Mode); all of
// them share an unconditional auto-rotation step, optional downscaling
// of oversized inputs and optional denoising. Auxiliary operations for
// deskewing, shadow removal and contrast enhancement are exposed
// independently of the main pipeline.
package preprocess
