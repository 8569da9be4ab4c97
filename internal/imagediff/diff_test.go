package imagediff

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidPNG(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCompare_IdenticalImages(t *testing.T) {
	img := solidPNG(t, 8, 8, color.RGBA{R: 200, G: 10, B: 10, A: 255})

	res, err := Compare(img, img, 0)
	require.NoError(t, err)

	assert.Equal(t, 0, res.DiffPixels)
	assert.Equal(t, 64, res.TotalPixels)
	assert.Zero(t, res.MismatchRatio)
	assert.NotEmpty(t, res.DiffImage)
}

func TestCompare_FullyDifferentImages(t *testing.T) {
	white := solidPNG(t, 4, 4, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	black := solidPNG(t, 4, 4, color.RGBA{A: 255})

	res, err := Compare(white, black, 0)
	require.NoError(t, err)

	assert.Equal(t, 16, res.DiffPixels)
	assert.InDelta(t, 1.0, res.MismatchRatio, 0.001)
}

func TestCompare_SizeMismatch(t *testing.T) {
	a := solidPNG(t, 4, 4, color.RGBA{A: 255})
	b := solidPNG(t, 5, 4, color.RGBA{A: 255})

	_, err := Compare(a, b, 0)
	require.ErrorIs(t, err, ErrSizeMismatch)
}

func TestCompare_BadPNG(t *testing.T) {
	good := solidPNG(t, 2, 2, color.RGBA{A: 255})

	_, err := Compare([]byte("не png"), good, 0)
	require.Error(t, err)

	_, err = Compare(good, []byte("не png"), 0)
	require.Error(t, err)
}

func TestCompare_DiffImageIsDecodable(t *testing.T) {
	white := solidPNG(t, 4, 4, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	black := solidPNG(t, 4, 4, color.RGBA{A: 255})

	res, err := Compare(white, black, 0)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(res.DiffImage))
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, 4, img.Bounds().Dy())
}
