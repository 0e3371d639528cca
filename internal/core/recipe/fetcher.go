package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"ranna-banna/internal/core/ai/provider"
	"ranna-banna/internal/pkg/common"

	"go.uber.org/zap"
)

// Fetcher runs the structured text step of a search
type Fetcher struct {
	text  provider.TextGenerator
	model string
}

// NewFetcher creates a fetcher. An empty model leaves the choice to the generator.
func NewFetcher(text provider.TextGenerator, model string) *Fetcher {
	return &Fetcher{text: text, model: model}
}

// Fetch asks the text model for recipes matching query and returns them in the order received
func (f *Fetcher) Fetch(ctx context.Context, query string) ([]RawRecipe, error) {
	common.LogInfo("Fetching recipe details", zap.String("query", query))

	content, err := f.text.GenerateStructuredText(ctx, &provider.StructuredRequest{
		Operation:         "search recipes",
		Model:             f.model,
		Prompt:            SearchPrompt(query),
		SystemInstruction: SearchSystemInstruction(),
		Schema:            RecipeListSchema,
		Cacheable:         true,
		Validate: func(content string) error {
			_, err := parseRecipes(content)
			return err
		},
	})
	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		common.LogError("Error fetching recipe details from AI",
			zap.String("query", query),
			zap.Error(err),
		)
		return nil, common.ErrAIServiceUnavailable.Wrap(err)
	}

	raw, err := parseRecipes(content)
	if err != nil {
		common.LogError("AI returned invalid recipe data",
			zap.String("query", query),
			zap.Error(err),
		)
		return nil, common.ErrInvalidAIResponse.Wrap(err)
	}

	common.LogInfo("Found recipe details",
		zap.String("query", query),
		zap.Int("count", len(raw)),
	)
	return raw, nil
}

// parseRecipes decodes the text step output after validating it against RecipeListSchema
func parseRecipes(content string) ([]RawRecipe, error) {
	text := common.ExtractJSON(strings.TrimSpace(content))

	var decoded interface{}
	if err := common.ParseJSON(text, &decoded); err != nil {
		return nil, err
	}
	if err := ValidateAgainstSchema(decoded, RecipeListSchema); err != nil {
		return nil, err
	}

	var raw []RawRecipe
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		raw = []RawRecipe{}
	}
	return raw, nil
}
