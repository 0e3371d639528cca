package provider

import (
	"context"
	"errors"

	"google.golang.org/genai"
)

// ErrNoImage is returned when the backend answered without any image data
var ErrNoImage = errors.New("no image returned")

// StructuredRequest asks a text model for JSON conforming to Schema
type StructuredRequest struct {
	// Operation names the call for logs and cache keys
	Operation         string
	Model             string
	Prompt            string
	SystemInstruction string
	Schema            *genai.Schema
	// Cacheable allows a cached response to be reused for an identical request
	Cacheable bool
	// Validate, when set, must accept a response before it is cached
	Validate func(content string) error
}

// ImageRequest asks an image model for Count images
type ImageRequest struct {
	Model        string
	Prompt       string
	Count        int
	OutputFormat string
	AspectRatio  string
}

// Image one generated image
type Image struct {
	Data     []byte
	MIMEType string
}

// TextGenerator generates schema-constrained JSON text
type TextGenerator interface {
	GenerateStructuredText(ctx context.Context, req *StructuredRequest) (string, error)
}

// ImageGenerator generates images from a prompt
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req *ImageRequest) ([]Image, error)
}
