package recipetext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSearchableText(t *testing.T) {
	t.Run("joins fields in fixed order and lowercases", func(t *testing.T) {
		got := BuildSearchableText(
			"Chicken Biryani",
			"Fragrant rice dish",
			[]string{"Basmati Rice", "Chicken Thighs"},
			"Marinate the chicken, then layer with rice.",
		)

		assert.Equal(t, "chicken biryani fragrant rice dish basmati rice chicken thighs marinate the chicken, then layer with rice.", got)
	})

	t.Run("missing description leaves an empty slot", func(t *testing.T) {
		got := BuildSearchableText("Toast", "", []string{"Bread"}, "Toast the bread.")
		assert.Equal(t, "toast  bread toast the bread.", got)
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		first := BuildSearchableText("Soup", "Warm", []string{"Water", "Salt"}, "Boil.")
		second := BuildSearchableText("Soup", "Warm", []string{"Water", "Salt"}, "Boil.")
		assert.Equal(t, first, second)
	})
}

func TestParseIngredients(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"mixed separators", "a, b\nc", []string{"a", "b", "c"}},
		{"windows newlines", "flour\r\nsugar\r\nbutter", []string{"flour", "sugar", "butter"}},
		{"blank entries dropped", "onion,, ,\n\ngarlic", []string{"onion", "garlic"}},
		{"whitespace trimmed", "  salt ,  pepper  ", []string{"salt", "pepper"}},
		{"duplicates preserved in order", "egg, egg, milk", []string{"egg", "egg", "milk"}},
		{"empty input", "   ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseIngredients(tt.raw))
		})
	}
}

func TestCleanDishLabel(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"punctuation and emoji stripped, capped at four words", "A delicious Bowl of Ramen!! 🍜", "a delicious bowl of"},
		{"short label kept as-is", "Pad Thai", "pad thai"},
		{"hyphens survive", "Stir-Fried Noodles", "stir-fried noodles"},
		{"digits survive", "5 spice duck", "5 spice duck"},
		{"whitespace collapsed", "  chicken \n  curry  ", "chicken curry"},
		{"all symbols yields empty", "!!! ??? 🍜", ""},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanDishLabel(tt.raw))
		})
	}
}
