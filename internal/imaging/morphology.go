package imaging

import "image"

// Dilate expands white (foreground) areas of a binary image: a pixel
// becomes white if any pixel under the kernel window is white.
// kw and kh are the kernel width and height in pixels.
func Dilate(img *image.Gray, kw, kh int) *image.Gray {
	return morph(img, kw, kh, func(hit bool) bool { return hit })
}

// Erode shrinks white areas of a binary image: a pixel stays white only
// if every pixel under the kernel window is white.
func Erode(img *image.Gray, kw, kh int) *image.Gray {
	return morph(img, kw, kh, func(miss bool) bool { return !miss })
}

// Close performs dilation followed by erosion. Bridges small gaps and
// broken strokes without growing the overall foreground.
func Close(img *image.Gray, kw, kh int) *image.Gray {
	return Erode(Dilate(img, kw, kh), kw, kh)
}

// Open performs erosion followed by dilation. Removes speckle smaller
// than the kernel while preserving larger foreground shapes.
func Open(img *image.Gray, kw, kh int) *image.Gray {
	return Dilate(Erode(img, kw, kh), kw, kh)
}

// morph runs a rectangular sliding-window scan. For Dilate the predicate
// receives whether any window pixel is white; for Erode whether any
// window pixel is black.
func morph(img *image.Gray, kw, kh int, keep func(bool) bool) *image.Gray {
	if kw < 1 {
		kw = 1
	}
	if kh < 1 {
		kh = 1
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	out := image.NewGray(bounds)

	// Anchor at the window center, matching the usual rectangular
	// structuring element convention.
	ax := kw / 2
	ay := kh / 2

	dilating := keep(true)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			found := false
			for ky := 0; ky < kh && !found; ky++ {
				for kx := 0; kx < kw && !found; kx++ {
					px := clamp(x+kx-ax, 0, width-1)
					py := clamp(y+ky-ay, 0, height-1)
					v := img.GrayAt(px+bounds.Min.X, py+bounds.Min.Y).Y
					if dilating {
						found = v > 127
					} else {
						found = v <= 127
					}
				}
			}
			if keep(found) {
				out.Pix[y*out.Stride+x] = 255
			}
		}
	}
	return out
}
