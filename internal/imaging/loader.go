package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp" // Register BMP format decoder
)

// ErrLoad marks an unreadable or undecodable input image. It is fatal for
// the image being processed: single-image callers surface it, batch
// callers record it per item and continue.
var ErrLoad = errors.New("image load failed")

// supportedExtensions are the input formats accepted from disk.
var supportedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".bmp":  true,
}

// SupportedFile reports whether path has a recognized image extension.
func SupportedFile(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

// Load reads and decodes an image from disk.
//
// Supported formats are JPEG, PNG and BMP. Open and decode failures are
// both reported as ErrLoad so callers can treat "corrupt file" and
// "missing file" uniformly.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrLoad, path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrLoad, path, err)
	}
	return img, nil
}
