package processor

import (
	"errors"
	"image"
)

var (
	ErrUnsupportedImage = errors.New("invalid or unsupported image format")
	ErrReleasedImage    = errors.New("decoded image already released")
)

// DecodedImage is an in-memory decoded bitmap. It is single-owner: exactly
// one live instance exists per request, it is never shared across requests,
// and the owner must call Release on every exit path so the pixel buffer can
// be reclaimed promptly.
type DecodedImage struct {
	bmp image.Image
}

func (d *DecodedImage) Width() int {
	return d.bmp.Bounds().Dx()
}

func (d *DecodedImage) Height() int {
	return d.bmp.Bounds().Dy()
}

// Release drops the pixel buffer. Safe to call more than once; any codec
// operation on a released image fails with ErrReleasedImage.
func (d *DecodedImage) Release() {
	d.bmp = nil
}

// Codec is the decode/resize/encode capability consumed by the
// transformation pipeline.
type Codec interface {
	Decode(buf []byte) (*DecodedImage, error)
	Resize(img *DecodedImage, width, height int) (*DecodedImage, error)
	Encode(img *DecodedImage, format string, quality int) ([]byte, error)
}
