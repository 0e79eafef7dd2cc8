package imaging

import (
	"image"
	"image/color"
	"testing"
)

func fillGray(w, h int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func TestToGray_LumaWeights(t *testing.T) {
	tests := []struct {
		name string
		c    color.RGBA
		want uint8
	}{
		{"pure red", color.RGBA{255, 0, 0, 255}, 76},
		{"pure green", color.RGBA{0, 255, 0, 255}, 149},
		{"pure blue", color.RGBA{0, 0, 255, 255}, 29},
		{"white", color.RGBA{255, 255, 255, 255}, 255},
		{"black", color.RGBA{0, 0, 0, 255}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewRGBA(image.Rect(0, 0, 2, 2))
			for y := 0; y < 2; y++ {
				for x := 0; x < 2; x++ {
					img.SetRGBA(x, y, tt.c)
				}
			}
			gray := ToGray(img)
			if got := gray.GrayAt(0, 0).Y; got != tt.want {
				t.Errorf("luma: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestToGray_CopiesGrayInput(t *testing.T) {
	src := fillGray(4, 4, 100)
	out := ToGray(src)

	out.Pix[0] = 200
	if src.Pix[0] != 100 {
		t.Error("modifying output mutated the source image")
	}
}

func TestHistogram(t *testing.T) {
	img := fillGray(4, 4, 10)
	img.Pix[0] = 250

	hist := Histogram(img)
	if hist[10] != 15 {
		t.Errorf("bin 10: got %d, want 15", hist[10])
	}
	if hist[250] != 1 {
		t.Errorf("bin 250: got %d, want 1", hist[250])
	}
}

func TestInvert(t *testing.T) {
	img := fillGray(2, 2, 30)
	out := Invert(img)
	if out.Pix[0] != 225 {
		t.Errorf("inverted value: got %d, want 225", out.Pix[0])
	}
	if img.Pix[0] != 30 {
		t.Error("input image was modified")
	}
}

func TestOtsuLevel_Bimodal(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 10, 10))
	for i := range img.Pix {
		if i%2 == 0 {
			img.Pix[i] = 50
		} else {
			img.Pix[i] = 200
		}
	}

	level := OtsuLevel(img)
	if level < 50 || level >= 200 {
		t.Errorf("level %d does not separate the two modes", level)
	}
}

func TestOtsuThreshold_SeparatesModes(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 10, 10))
	for i := range img.Pix {
		if i%2 == 0 {
			img.Pix[i] = 50
		} else {
			img.Pix[i] = 200
		}
	}

	out := OtsuThreshold(img)
	for i, v := range out.Pix {
		if v != 0 && v != 255 {
			t.Fatalf("pixel %d has non-binary value %d", i, v)
		}
		if img.Pix[i] == 50 && v != 0 {
			t.Fatalf("dark pixel %d mapped to white", i)
		}
		if img.Pix[i] == 200 && v != 255 {
			t.Fatalf("bright pixel %d mapped to black", i)
		}
	}
}

func TestOtsuLevel_EmptyImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 0, 0))
	if level := OtsuLevel(img); level != 127 {
		t.Errorf("empty image level: got %d, want 127", level)
	}
}

func TestAdaptiveThreshold_UniformImage(t *testing.T) {
	img := fillGray(20, 20, 128)
	out := AdaptiveThreshold(img, 11, 2)

	// Every pixel equals the local mean, so mean-c is always below it.
	for i, v := range out.Pix {
		if v != 255 {
			t.Fatalf("pixel %d: got %d, want 255", i, v)
		}
	}
}

func TestAdaptiveThreshold_DarkMark(t *testing.T) {
	img := fillGray(30, 30, 220)
	for y := 10; y < 20; y++ {
		for x := 10; x < 20; x++ {
			img.SetGray(x, y, color.Gray{Y: 0})
		}
	}

	out := AdaptiveThreshold(img, 11, 2)
	if out.GrayAt(15, 15).Y != 0 {
		t.Error("center of dark mark should be black")
	}
	if out.GrayAt(2, 2).Y != 255 {
		t.Error("bright background should be white")
	}
}

func TestDilate_GrowsSinglePixel(t *testing.T) {
	img := fillGray(11, 11, 0)
	img.SetGray(5, 5, color.Gray{Y: 255})

	out := Dilate(img, 3, 3)
	white := 0
	for _, v := range out.Pix {
		if v == 255 {
			white++
		}
	}
	if white != 9 {
		t.Errorf("white pixels after dilation: got %d, want 9", white)
	}
}

func TestOpen_RemovesSpeckle(t *testing.T) {
	img := fillGray(11, 11, 0)
	img.SetGray(5, 5, color.Gray{Y: 255})

	out := Open(img, 3, 3)
	for i, v := range out.Pix {
		if v != 0 {
			t.Fatalf("pixel %d survived opening, want all black", i)
		}
	}
}

func TestClose_FillsHole(t *testing.T) {
	img := fillGray(15, 15, 0)
	for y := 4; y < 11; y++ {
		for x := 4; x < 11; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	img.SetGray(7, 7, color.Gray{Y: 0})

	out := Close(img, 3, 3)
	if out.GrayAt(7, 7).Y != 255 {
		t.Error("interior hole should be filled by closing")
	}
}

func TestCLAHE_PreservesDimensions(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(100 + x/4)})
		}
	}

	out := CLAHE(img, 2.0, 8, 8)
	if out.Bounds() != img.Bounds() {
		t.Errorf("bounds: got %v, want %v", out.Bounds(), img.Bounds())
	}
}

func TestEqualizeGray_StretchesRange(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 16, 16))
	for i := range img.Pix {
		img.Pix[i] = uint8(100 + i%20)
	}

	out := EqualizeGray(img)
	minV, maxV := uint8(255), uint8(0)
	for _, v := range out.Pix {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	if int(maxV)-int(minV) <= 19 {
		t.Errorf("equalization did not widen range: [%d, %d]", minV, maxV)
	}
}

func TestMapLightness_KeepsShape(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(30 * x), G: 100, B: 50, A: 255})
		}
	}

	out := MapLightness(img, func(l *image.Gray) *image.Gray { return l })
	if out.Bounds() != img.Bounds() {
		t.Errorf("bounds: got %v, want %v", out.Bounds(), img.Bounds())
	}
}

func TestSupportedFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"label.jpg", true},
		{"label.JPEG", true},
		{"label.png", true},
		{"label.bmp", true},
		{"label.gif", false},
		{"label.txt", false},
		{"label", false},
	}

	for _, tt := range tests {
		if got := SupportedFile(tt.path); got != tt.want {
			t.Errorf("SupportedFile(%q): got %v, want %v", tt.path, got, tt.want)
		}
	}
}
