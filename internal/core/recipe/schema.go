package recipe

import (
	"encoding/json"
	"fmt"

	"google.golang.org/genai"
)

func stringList(description string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeArray,
		Items:       &genai.Schema{Type: genai.TypeString},
		Description: description,
	}
}

// RecipeListSchema the structured output contract for a recipe search
var RecipeListSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name_en":        {Type: genai.TypeString, Description: "The full, exact name of the recipe in English."},
			"name_bn":        {Type: genai.TypeString, Description: "The full, exact name of the recipe in Bengali."},
			"category":       {Type: genai.TypeString, Description: "The cuisine category (e.g., Bangladeshi, Indian, Chinese)."},
			"ingredients_en": stringList("A list of all ingredients required, in English."),
			"ingredients_bn": stringList("A list of all ingredients required, in Bengali."),
			"steps_en":       stringList("Step-by-step cooking instructions, in English."),
			"steps_bn":       stringList("Step-by-step cooking instructions, in Bengali."),
			"youtube_link": {
				Type:        genai.TypeString,
				Description: "A full, direct YouTube URL for a video tutorial that EXACTLY matches the recipe name and content. If no exact match exists, it can be a close suggestion for the same dish. Must be an empty string if no relevant video is found.",
			},
			"youtube_link_is_suggested": {
				Type:        genai.TypeBoolean,
				Description: "Set to true if the YouTube link is a close suggestion, not an exact match. Set to false if it is an exact match or if no link is provided.",
			},
		},
		Required: []string{
			"name_en", "name_bn", "category",
			"ingredients_en", "ingredients_bn",
			"steps_en", "steps_bn",
			"youtube_link", "youtube_link_is_suggested",
		},
	},
}

// TranslationSchema the structured output contract for a recipe translation
var TranslationSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"ingredients":  stringList("The translated ingredient list, same order and length as the input."),
		"instructions": stringList("The translated instruction steps, same order and length as the input."),
	},
	Required: []string{"ingredients", "instructions"},
}

// ValidateAgainstSchema checks that a decoded JSON value carries every required field with the declared type.
// Numbers are expected as json.Number or float64.
func ValidateAgainstSchema(value interface{}, schema *genai.Schema) error {
	return validateValue(value, schema, "$")
}

func validateValue(value interface{}, schema *genai.Schema, path string) error {
	if schema == nil {
		return nil
	}

	switch schema.Type {
	case genai.TypeArray:
		items, ok := value.([]interface{})
		if !ok {
			return fmt.Errorf("%s: expected array, got %s", path, jsonKind(value))
		}
		for i, item := range items {
			if err := validateValue(item, schema.Items, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	case genai.TypeObject:
		obj, ok := value.(map[string]interface{})
		if !ok {
			return fmt.Errorf("%s: expected object, got %s", path, jsonKind(value))
		}
		for _, name := range schema.Required {
			if _, present := obj[name]; !present {
				return fmt.Errorf("%s: missing required field %q", path, name)
			}
		}
		for name, prop := range schema.Properties {
			field, present := obj[name]
			if !present {
				continue
			}
			if err := validateValue(field, prop, path+"."+name); err != nil {
				return err
			}
		}
	case genai.TypeString:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("%s: expected string, got %s", path, jsonKind(value))
		}
	case genai.TypeBoolean:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("%s: expected boolean, got %s", path, jsonKind(value))
		}
	case genai.TypeInteger, genai.TypeNumber:
		switch value.(type) {
		case json.Number, float64:
		default:
			return fmt.Errorf("%s: expected number, got %s", path, jsonKind(value))
		}
	}
	return nil
}

func jsonKind(value interface{}) string {
	switch value.(type) {
	case nil:
		return "null"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64:
		return "number"
	default:
		return fmt.Sprintf("%T", value)
	}
}
