package image

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	return img
}

func TestService_ToJPEGDataURL(t *testing.T) {
	svc := NewService(1<<20, 85)

	t.Run("should pass JPEG bytes through unchanged", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, jpeg.Encode(&buf, sampleImage(), nil))

		url, err := svc.ToJPEGDataURL(buf.Bytes())

		require.NoError(t, err)
		assert.Equal(t, "data:image/jpeg;base64,"+base64.StdEncoding.EncodeToString(buf.Bytes()), url)
	})

	t.Run("should re-encode PNG as JPEG", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, png.Encode(&buf, sampleImage()))

		url, err := svc.ToJPEGDataURL(buf.Bytes())

		require.NoError(t, err)
		require.True(t, strings.HasPrefix(url, "data:image/jpeg;base64,"))
		raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, "data:image/jpeg;base64,"))
		require.NoError(t, err)
		_, format, err := image.Decode(bytes.NewReader(raw))
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
	})

	t.Run("should reject oversized and garbage input", func(t *testing.T) {
		small := NewService(8, 85)
		_, err := small.ToJPEGDataURL(make([]byte, 16))
		assert.Error(t, err)

		_, err = svc.ToJPEGDataURL([]byte("not an image"))
		assert.Error(t, err)

		_, err = svc.ToJPEGDataURL(nil)
		assert.Error(t, err)
	})
}

func TestService_ValidateDataURL(t *testing.T) {
	svc := NewService(1<<20, 85)

	assert.NoError(t, svc.ValidateDataURL(""))
	assert.NoError(t, svc.ValidateDataURL("data:image/jpeg;base64,"+base64.StdEncoding.EncodeToString([]byte{0xff, 0xd8})))
	assert.ErrorIs(t, svc.ValidateDataURL("https://example.com/a.jpg"), ErrInvalidDataURL)
	assert.ErrorIs(t, svc.ValidateDataURL("data:image/jpeg,plain"), ErrInvalidDataURL)
	assert.ErrorIs(t, svc.ValidateDataURL("data:image/jpeg;base64,!!!"), ErrInvalidDataURL)
}
