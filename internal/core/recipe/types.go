package recipe

// Language UI language hint
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageBengali Language = "bn"
)

// ParseLanguage maps a hint to a Language, defaulting to English
func ParseLanguage(s string) Language {
	if Language(s) == LanguageBengali {
		return LanguageBengali
	}
	return LanguageEnglish
}

// RawRecipe recipe data as returned by the text step, before enrichment
type RawRecipe struct {
	NameEN                 string   `json:"name_en"`
	NameBN                 string   `json:"name_bn"`
	Category               string   `json:"category"`
	IngredientsEN          []string `json:"ingredients_en"`
	IngredientsBN          []string `json:"ingredients_bn"`
	StepsEN                []string `json:"steps_en"`
	StepsBN                []string `json:"steps_bn"`
	YoutubeLink            string   `json:"youtube_link"`
	YoutubeLinkIsSuggested bool     `json:"youtube_link_is_suggested"`
}

// Recipe an enriched recipe. ID is assigned once at enrichment; ImageBase64 is empty when enrichment failed.
type Recipe struct {
	ID string `json:"id"`
	RawRecipe
	ImageBase64 string `json:"imageBase64"`
}

// LocalizedRecipe a single-language view of a Recipe for detail rendering
type LocalizedRecipe struct {
	ID                     string   `json:"id"`
	Language               Language `json:"language"`
	Name                   string   `json:"name"`
	Category               string   `json:"category"`
	Ingredients            []string `json:"ingredients"`
	Steps                  []string `json:"steps"`
	YoutubeLink            string   `json:"youtube_link"`
	YoutubeLinkIsSuggested bool     `json:"youtube_link_is_suggested"`
	ImageBase64            string   `json:"imageBase64"`
}

// Localize projects r into lang, falling back to English for empty Bengali fields
func (r Recipe) Localize(lang Language) LocalizedRecipe {
	out := LocalizedRecipe{
		ID:                     r.ID,
		Language:               lang,
		Name:                   r.NameEN,
		Category:               r.Category,
		Ingredients:            r.IngredientsEN,
		Steps:                  r.StepsEN,
		YoutubeLink:            r.YoutubeLink,
		YoutubeLinkIsSuggested: r.YoutubeLinkIsSuggested,
		ImageBase64:            r.ImageBase64,
	}
	if lang != LanguageBengali {
		out.Language = LanguageEnglish
		return out
	}
	if r.NameBN != "" {
		out.Name = r.NameBN
	}
	if len(r.IngredientsBN) > 0 {
		out.Ingredients = r.IngredientsBN
	}
	if len(r.StepsBN) > 0 {
		out.Steps = r.StepsBN
	}
	return out
}

// TranslatedRecipe a translation overlay for one recipe; never merged back into it
type TranslatedRecipe struct {
	RecipeID     string   `json:"recipe_id"`
	Language     string   `json:"language"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// SearchResult recipes found for one query
type SearchResult struct {
	Query    string   `json:"query"`
	Language Language `json:"language"`
	Recipes  []Recipe `json:"recipes"`
}
