package recipe

import (
	"context"
	"fmt"

	"ranna-banna/internal/core/ai/provider"
	"ranna-banna/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ImageEncoder turns generated image bytes into a data URL
type ImageEncoder interface {
	ToJPEGDataURL(data []byte) (string, error)
}

// Enricher attaches a generated image and an id to every raw recipe
type Enricher struct {
	images  provider.ImageGenerator
	encoder ImageEncoder
	model   string
	newID   func() string
}

// NewEnricher creates an enricher. An empty model leaves the choice to the generator.
func NewEnricher(images provider.ImageGenerator, encoder ImageEncoder, model string) *Enricher {
	return &Enricher{
		images:  images,
		encoder: encoder,
		model:   model,
		newID:   common.GenerateUUID,
	}
}

// Enrich generates one image per recipe concurrently. out[i] always corresponds to raw[i];
// a failed item keeps its id and gets an empty image.
func (e *Enricher) Enrich(ctx context.Context, raw []RawRecipe) []Recipe {
	out := make([]Recipe, len(raw))

	var g errgroup.Group
	for i := range raw {
		out[i] = Recipe{ID: e.newID(), RawRecipe: raw[i]}
		g.Go(func() error {
			img, err := e.generate(ctx, raw[i].NameEN)
			if err != nil {
				common.LogWarn("Failed to generate image",
					zap.String("recipe", raw[i].NameEN),
					zap.Error(err),
				)
				return nil
			}
			out[i].ImageBase64 = img
			return nil
		})
	}
	_ = g.Wait()

	return out
}

func (e *Enricher) generate(ctx context.Context, nameEN string) (string, error) {
	images, err := e.images.GenerateImage(ctx, &provider.ImageRequest{
		Model:        e.model,
		Prompt:       ImagePrompt(nameEN),
		Count:        1,
		OutputFormat: "image/jpeg",
		AspectRatio:  "1:1",
	})
	if err != nil {
		return "", err
	}
	if len(images) == 0 || len(images[0].Data) == 0 {
		return "", provider.ErrNoImage
	}

	dataURL, err := e.encoder.ToJPEGDataURL(images[0].Data)
	if err != nil {
		return "", fmt.Errorf("encoding image: %w", err)
	}
	return dataURL, nil
}
