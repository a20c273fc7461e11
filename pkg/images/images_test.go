package images_test

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"offer-form-backend/pkg/images"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h)), nil))
	return buf.Bytes()
}

func TestDownscaleKeepsSmallImages(t *testing.T) {
	data := encodePNG(t, 100, 50)
	out, err := images.Downscale(data, 1200)
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestDownscaleLandscape(t *testing.T) {
	out, err := images.Downscale(encodePNG(t, 2400, 600), 1200)
	require.NoError(t, err)

	img, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 1200, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}

func TestDownscalePortraitJPEG(t *testing.T) {
	out, err := images.Downscale(encodeJPEG(t, 300, 2400), 1200)
	require.NoError(t, err)

	img, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 1200, img.Bounds().Dy())
	assert.Equal(t, 150, img.Bounds().Dx())
}

func TestDownscaleRejectsGarbage(t *testing.T) {
	_, err := images.Downscale([]byte("not an image"), 1200)
	assert.Error(t, err)
}
