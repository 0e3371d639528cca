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

// Translator translates the ingredient and instruction lists of a recipe on demand
type Translator struct {
	text  provider.TextGenerator
	model string
}

// NewTranslator creates a translator
func NewTranslator(text provider.TextGenerator, model string) *Translator {
	return &Translator{text: text, model: model}
}

type translationPayload struct {
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// Translate returns an overlay with r's English lists translated into lang. r is never modified.
func (t *Translator) Translate(ctx context.Context, r Recipe, lang string) (*TranslatedRecipe, error) {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return nil, common.NewValidationError("target_language is required")
	}
	if len(r.IngredientsEN) == 0 && len(r.StepsEN) == 0 {
		return nil, common.NewValidationError("recipe has nothing to translate")
	}

	content, err := t.text.GenerateStructuredText(ctx, &provider.StructuredRequest{
		Operation:         "translate recipe",
		Model:             t.model,
		Prompt:            TranslationPrompt(r),
		SystemInstruction: TranslationSystemInstruction(lang),
		Schema:            TranslationSchema,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		common.LogError("Error translating recipe",
			zap.String("recipe_id", r.ID),
			zap.String("language", lang),
			zap.Error(err),
		)
		return nil, common.ErrTranslationFailed.Wrap(err)
	}

	payload, err := parseTranslation(content)
	if err != nil {
		common.LogError("AI returned invalid translation",
			zap.String("recipe_id", r.ID),
			zap.Error(err),
		)
		return nil, common.ErrInvalidTranslation.Wrap(err)
	}

	return &TranslatedRecipe{
		RecipeID:     r.ID,
		Language:     lang,
		Ingredients:  payload.Ingredients,
		Instructions: payload.Instructions,
	}, nil
}

func parseTranslation(content string) (*translationPayload, error) {
	text := common.ExtractJSON(content)

	var decoded interface{}
	if err := common.ParseJSON(text, &decoded); err != nil {
		return nil, err
	}
	if err := ValidateAgainstSchema(decoded, TranslationSchema); err != nil {
		return nil, err
	}

	var payload translationPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
