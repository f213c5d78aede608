package processor

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	_ "image/gif"

	"github.com/disintegration/gift"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"

	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"imageproxy/internal/options"
)

// ImageTransformer implements Codec on top of the stdlib decoders (plus the
// x/image webp and tiff decoders), gift for resampling and go-webp for webp
// encoding.
type ImageTransformer struct{}

func NewTransformer() *ImageTransformer {
	return &ImageTransformer{}
}

func (t *ImageTransformer) Decode(buf []byte) (*DecodedImage, error) {
	src, _, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	return &DecodedImage{bmp: src}, nil
}

func (t *ImageTransformer) Resize(img *DecodedImage, width, height int) (*DecodedImage, error) {
	if img.bmp == nil {
		return nil, ErrReleasedImage
	}

	g := gift.New(gift.Resize(width, height, gift.LanczosResampling))

	dst := image.NewNRGBA(g.Bounds(img.bmp.Bounds()))
	g.Draw(dst, img.bmp)

	return &DecodedImage{bmp: dst}, nil
}

func (t *ImageTransformer) Encode(img *DecodedImage, format string, quality int) ([]byte, error) {
	if img.bmp == nil {
		return nil, ErrReleasedImage
	}

	bufWriter := new(bytes.Buffer)

	switch format {
	case options.FormatJPEG:
		if err := jpeg.Encode(bufWriter, img.bmp, &jpeg.Options{Quality: quality}); err != nil {
			return nil, err
		}
	case options.FormatPNG:
		// lossless, quality does not apply
		if err := png.Encode(bufWriter, img.bmp); err != nil {
			return nil, err
		}
	case options.FormatWebP:
		encOpts, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, float32(quality))
		if err != nil {
			return nil, err
		}
		if err := webp.Encode(bufWriter, img.bmp, encOpts); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}

	return bufWriter.Bytes(), nil
}
