package media

import (
	"image"
	"os"

	// Registered decoders for image.DecodeConfig. WebP has no stdlib
	// decoder; the x/image one fills the gap.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/jlaitio/kuvia/pkg/errors"
)

// Dimensions holds the pixel size of an image file.
type Dimensions struct {
	Width  int
	Height int
}

// Probe reads the dimensions of the image at path without decoding the
// pixel data.
func Probe(path string) (Dimensions, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Dimensions{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "probe %s", path)
	}
	if err != nil {
		return Dimensions{}, errors.Wrap(errors.ErrCodeInternal, err, "probe %s", path)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return Dimensions{}, errors.Wrap(errors.ErrCodeUnsupported, err, "decode image header of %s", path)
	}

	return Dimensions{Width: cfg.Width, Height: cfg.Height}, nil
}
