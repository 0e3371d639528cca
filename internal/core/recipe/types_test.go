package recipe

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipe_Localize(t *testing.T) {
	r := Recipe{ID: "r-1", RawRecipe: rawRecipe("Dal", "Bangladeshi"), ImageBase64: "img"}

	en := r.Localize(LanguageEnglish)
	assert.Equal(t, "Dal", en.Name)
	assert.Equal(t, r.StepsEN, en.Steps)
	assert.Equal(t, LanguageEnglish, en.Language)

	bn := r.Localize(LanguageBengali)
	assert.Equal(t, "Dal (bn)", bn.Name)
	assert.Equal(t, r.IngredientsBN, bn.Ingredients)
	assert.Equal(t, r.StepsBN, bn.Steps)
	assert.Equal(t, "img", bn.ImageBase64)

	t.Run("should fall back to English for missing Bengali fields", func(t *testing.T) {
		partial := r
		partial.NameBN = ""
		partial.StepsBN = nil

		out := partial.Localize(LanguageBengali)

		assert.Equal(t, "Dal", out.Name)
		assert.Equal(t, r.StepsEN, out.Steps)
	})
}

func TestRecipe_JSONShape(t *testing.T) {
	data, err := json.Marshal(Recipe{ID: "r-1", RawRecipe: rawRecipe("Dal", "x"), ImageBase64: "img"})
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))
	for _, key := range []string{"id", "imageBase64", "name_en", "name_bn", "category", "ingredients_en", "steps_bn", "youtube_link", "youtube_link_is_suggested"} {
		assert.Contains(t, fields, key)
	}
}

func TestParseLanguage(t *testing.T) {
	assert.Equal(t, LanguageBengali, ParseLanguage("bn"))
	assert.Equal(t, LanguageEnglish, ParseLanguage("en"))
	assert.Equal(t, LanguageEnglish, ParseLanguage(""))
	assert.Equal(t, LanguageEnglish, ParseLanguage("fr"))
}

func TestCategories(t *testing.T) {
	cats := Categories()
	require.Len(t, cats, 10)
	assert.Equal(t, "Breakfast", cats[0].Name)

	cats[0].Name = "changed"
	assert.Equal(t, "Breakfast", Categories()[0].Name)
}
