// Package recipetext contains the text helpers shared by recipe creation and
// discovery: the searchable-text builder used for substring search, the
// ingredient list parser for plain-text form input, and the dish label
// cleaner applied to vision model output.
package recipetext

import (
	"strings"
)

// maxDishLabelWords bounds how much of a model response is used as a query.
const maxDishLabelWords = 4

// BuildSearchableText derives the lowercase search index for a recipe. The
// join order (title, description, ingredients, instructions) is fixed so the
// same recipe always produces the same text, and the result is recomputed on
// every write rather than stored independently.
func BuildSearchableText(title, description string, ingredients []string, instructions string) string {
	parts := make([]string, 0, len(ingredients)+3)
	parts = append(parts, title, description)
	parts = append(parts, ingredients...)
	parts = append(parts, instructions)
	return strings.ToLower(strings.Join(parts, " "))
}

// ParseIngredients splits a plain-text ingredient list on newlines and commas.
// Entries are trimmed, blank entries dropped, order and duplicates preserved.
func ParseIngredients(raw string) []string {
	items := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ','
	})

	ingredients := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			ingredients = append(ingredients, trimmed)
		}
	}
	return ingredients
}

// CleanDishLabel turns free-form model output into a short search query:
// lowercased, anything outside [a-z0-9], whitespace and hyphens replaced with
// a space, then capped at the first four words. Returns "" when the input has
// no usable tokens; callers must treat that as "no dish detected", not as an
// empty search.
func CleanDishLabel(raw string) string {
	lowered := strings.ToLower(raw)
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '-':
			return r
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			return r
		default:
			return ' '
		}
	}, lowered)

	words := strings.Fields(cleaned)
	if len(words) > maxDishLabelWords {
		words = words[:maxDishLabelWords]
	}
	return strings.Join(words, " ")
}
