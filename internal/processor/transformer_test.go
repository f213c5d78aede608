package processor

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngFixture(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	codec := NewTransformer()

	decoded, err := codec.Decode(pngFixture(t, 80, 60))
	require.NoError(t, err)
	defer decoded.Release()

	assert.Equal(t, 80, decoded.Width())
	assert.Equal(t, 60, decoded.Height())
}

func TestDecodeGarbage(t *testing.T) {
	codec := NewTransformer()

	_, err := codec.Decode([]byte("definitely not an image"))

	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestResize(t *testing.T) {
	codec := NewTransformer()

	decoded, err := codec.Decode(pngFixture(t, 80, 60))
	require.NoError(t, err)
	defer decoded.Release()

	resized, err := codec.Resize(decoded, 40, 30)
	require.NoError(t, err)
	defer resized.Release()

	assert.Equal(t, 40, resized.Width())
	assert.Equal(t, 30, resized.Height())
}

func TestEncode(t *testing.T) {
	codec := NewTransformer()

	decoded, err := codec.Decode(pngFixture(t, 32, 32))
	require.NoError(t, err)
	defer decoded.Release()

	tests := []struct {
		format  string
		quality int
	}{
		{format: "jpeg", quality: 85},
		{format: "png", quality: 85},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			buf, err := codec.Encode(decoded, tt.format, tt.quality)
			require.NoError(t, err)
			require.NotEmpty(t, buf)

			roundTripped, format, err := image.Decode(bytes.NewReader(buf))
			require.NoError(t, err)
			assert.Equal(t, tt.format, format)
			assert.Equal(t, 32, roundTripped.Bounds().Dx())
		})
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	codec := NewTransformer()

	decoded, err := codec.Decode(pngFixture(t, 8, 8))
	require.NoError(t, err)
	defer decoded.Release()

	_, err = codec.Encode(decoded, "bmp", 85)

	assert.Error(t, err)
}

func TestReleasedImageRejected(t *testing.T) {
	codec := NewTransformer()

	decoded, err := codec.Decode(pngFixture(t, 8, 8))
	require.NoError(t, err)

	decoded.Release()
	decoded.Release() // double release is safe

	_, err = codec.Encode(decoded, "png", 85)
	assert.ErrorIs(t, err, ErrReleasedImage)

	_, err = codec.Resize(decoded, 4, 4)
	assert.ErrorIs(t, err, ErrReleasedImage)
}
