package recipe

import (
	"fmt"
	"strings"
)

const searchSystemInstruction = `You are an expert recipe API. Your top priority is providing accurate, relevant recipes with consistent assets (image, video).

Rules:
- **Recipe Matching & Category Expansion**: Your goal is to return the most relevant recipes.
    - **For specific queries** (e.g., "Chicken Biryani", "lentil soup"): Return the most accurate and direct matches for that dish.
    - **For broad category queries** (e.g., "Lunch", "Breakfast", "Bangladeshi", "Dessert"): You MUST interpret this as a request for a *collection* of recipes. Return a diverse and comprehensive list of at least 10-12 popular and representative recipes from that category. For example, for "Lunch", you should return a mix of items like different curries, rice dishes, biryanis, etc. For "Dessert", provide a variety of sweets. Do not just return 2-3 items. The goal is to give the user a rich list to browse. If no relevant recipes are found at all, return an empty array.
- **YouTube Tutorial Link Accuracy (CRITICAL)**: You must adhere to these rules with extreme precision.
    - **Rule 1: Exact Match is Paramount.** Search for a high-quality YouTube tutorial whose title and content **exactly match** the recipe's 'name_en' and 'name_bn'. The video must clearly demonstrate how to cook the specific dish described in the recipe steps. If an exact match is found, provide its full URL in 'youtube_link' and set 'youtube_link_is_suggested' to false.
    - **Rule 2: Suggested Match as a Last Resort.** Only if an exact match is impossible to find, you may provide a link to a video for the **exact same dish** but perhaps from a different creator or with minor stylistic differences. This is a **suggestion**. You MUST set 'youtube_link_is_suggested' to true in this case.
    - **Rule 3: No Irrelevant Links.** If you cannot find a video for the exact dish, you **MUST** return an empty string ("") for 'youtube_link' and set 'youtube_link_is_suggested' to false. DO NOT provide a link to a *similar* but different dish (e.g., providing a 'Mutton Korma' video for a 'Chicken Korma' recipe is forbidden).
- **Image Consistency**: The 'name_en' field is used to generate a photorealistic image. It must be a precise, accurate name for the dish to ensure the generated image is correct.
- **Bilingual Content**: All text fields (names, ingredients, steps) must be accurately populated for both English and Bengali.
- Do NOT provide an image URL. Images will be generated in a separate step based on the recipe name.`

// SearchSystemInstruction the system directive for recipe search
func SearchSystemInstruction() string {
	return searchSystemInstruction
}

// SearchPrompt embeds the query in the search instruction
func SearchPrompt(query string) string {
	return fmt.Sprintf(`The user is searching for recipes related to: "%s". This could be a specific dish or a broad category. Follow your system instructions to provide a comprehensive and accurate list of recipes.`, query)
}

// ImagePrompt photorealistic single-dish template for the image step
func ImagePrompt(nameEN string) string {
	return fmt.Sprintf(`A stunning, professional, high-quality, photorealistic food photograph of "%s". The dish is presented beautifully on a simple, elegant plate or bowl with a clean, out-of-focus background. The lighting is bright and natural, highlighting the textures and colors of the food. It looks incredibly delicious and appetizing.`, nameEN)
}

var languageNames = map[string]string{
	"en": "English",
	"bn": "Bengali",
	"hi": "Hindi",
	"ur": "Urdu",
	"ar": "Arabic",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"zh": "Chinese",
	"ja": "Japanese",
}

// LanguageName resolves a language code to its English name; unknown values pass through
func LanguageName(lang string) string {
	if name, ok := languageNames[strings.ToLower(lang)]; ok {
		return name
	}
	return lang
}

// TranslationSystemInstruction the system directive for translating a recipe into lang
func TranslationSystemInstruction(lang string) string {
	return fmt.Sprintf(`You are a professional culinary translator. Translate the recipe ingredients and instructions you are given into %s.
Rules:
- Return exactly one translated entry per input line, in the same order.
- Keep quantities, units and numbers accurate.
- Do not add, merge, or drop items.`, LanguageName(lang))
}

// TranslationPrompt newline-joined ingredient and instruction lists of r
func TranslationPrompt(r Recipe) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Recipe: %s\n\n", r.NameEN)
	sb.WriteString("Ingredients:\n")
	sb.WriteString(strings.Join(r.IngredientsEN, "\n"))
	sb.WriteString("\n\nInstructions:\n")
	sb.WriteString(strings.Join(r.StepsEN, "\n"))
	return sb.String()
}
