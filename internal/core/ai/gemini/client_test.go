package gemini

import (
	"testing"

	"ranna-banna/internal/core/ai/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestContentConfig(t *testing.T) {
	schema := &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}

	cfg := contentConfig(&provider.StructuredRequest{
		SystemInstruction: "You are an expert recipe API.",
		Schema:            schema,
	})

	assert.Equal(t, "application/json", cfg.ResponseMIMEType)
	assert.Same(t, schema, cfg.ResponseSchema)
	require.NotNil(t, cfg.SystemInstruction)
	require.Len(t, cfg.SystemInstruction.Parts, 1)
	assert.Equal(t, "You are an expert recipe API.", cfg.SystemInstruction.Parts[0].Text)

	t.Run("should omit an empty system instruction", func(t *testing.T) {
		cfg := contentConfig(&provider.StructuredRequest{Schema: schema})
		assert.Nil(t, cfg.SystemInstruction)
	})
}

func TestImagesConfig(t *testing.T) {
	cfg := imagesConfig(&provider.ImageRequest{Count: 0, OutputFormat: "image/jpeg", AspectRatio: "1:1"})

	assert.EqualValues(t, 1, cfg.NumberOfImages)
	assert.Equal(t, "image/jpeg", cfg.OutputMIMEType)
	assert.Equal(t, "1:1", cfg.AspectRatio)
}

func TestImagesFromResponse(t *testing.T) {
	t.Run("should skip empty images and default the mime type", func(t *testing.T) {
		res := &genai.GenerateImagesResponse{
			GeneratedImages: []*genai.GeneratedImage{
				nil,
				{Image: nil},
				{Image: &genai.Image{ImageBytes: []byte{}}},
				{Image: &genai.Image{ImageBytes: []byte{0xff, 0xd8}}},
				{Image: &genai.Image{ImageBytes: []byte{0x89, 0x50}, MIMEType: "image/png"}},
			},
		}

		images := imagesFromResponse(res, "image/jpeg")

		require.Len(t, images, 2)
		assert.Equal(t, "image/jpeg", images[0].MIMEType)
		assert.Equal(t, "image/png", images[1].MIMEType)
	})

	t.Run("should tolerate a nil response", func(t *testing.T) {
		assert.Empty(t, imagesFromResponse(nil, "image/jpeg"))
	})
}
