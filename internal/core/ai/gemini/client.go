package gemini

import (
	"context"
	"fmt"

	"ranna-banna/internal/core/ai/provider"
	"ranna-banna/internal/pkg/common"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Client serves both structured text and image generation from the Gemini API
type Client struct {
	genAI *genai.Client
}

var (
	_ provider.TextGenerator  = (*Client)(nil)
	_ provider.ImageGenerator = (*Client)(nil)
)

// NewClient creates a Gemini API client authenticated with apiKey
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	genAI, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: creating genai client: %w", err)
	}
	return &Client{genAI: genAI}, nil
}

// GenerateStructuredText requests JSON constrained by req.Schema and returns the raw text
func (c *Client) GenerateStructuredText(ctx context.Context, req *provider.StructuredRequest) (string, error) {
	res, err := c.genAI.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), contentConfig(req))
	if err != nil {
		return "", fmt.Errorf("gemini: generating content: %w", err)
	}
	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("gemini: empty response for %s", req.Operation)
	}

	common.LogDebug("Gemini structured response",
		zap.String("operation", req.Operation),
		zap.Int("content_length", len(text)),
	)
	return text, nil
}

// GenerateImage requests req.Count images and returns their bytes
func (c *Client) GenerateImage(ctx context.Context, req *provider.ImageRequest) ([]provider.Image, error) {
	res, err := c.genAI.Models.GenerateImages(ctx, req.Model, req.Prompt, imagesConfig(req))
	if err != nil {
		return nil, fmt.Errorf("gemini: generating images: %w", err)
	}
	images := imagesFromResponse(res, req.OutputFormat)
	if len(images) == 0 {
		return nil, provider.ErrNoImage
	}
	return images, nil
}

func contentConfig(req *provider.StructuredRequest) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   req.Schema,
	}
	if req.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}
	return cfg
}

func imagesConfig(req *provider.ImageRequest) *genai.GenerateImagesConfig {
	count := req.Count
	if count <= 0 {
		count = 1
	}
	return &genai.GenerateImagesConfig{
		NumberOfImages: int32(count),
		OutputMIMEType: req.OutputFormat,
		AspectRatio:    req.AspectRatio,
	}
}

func imagesFromResponse(res *genai.GenerateImagesResponse, fallbackMIME string) []provider.Image {
	if res == nil {
		return nil
	}
	var images []provider.Image
	for _, generated := range res.GeneratedImages {
		if generated == nil || generated.Image == nil || len(generated.Image.ImageBytes) == 0 {
			continue
		}
		mime := generated.Image.MIMEType
		if mime == "" {
			mime = fallbackMIME
		}
		images = append(images, provider.Image{
			Data:     generated.Image.ImageBytes,
			MIMEType: mime,
		})
	}
	return images
}
