package recipe

import (
	"regexp"
	"strings"
)

// synonyms maps regional or variant ingredient names onto their canonical
// form before they reach the prompt.
var synonyms = map[string]string{
	"cebola roxa":     "cebola",
	"batata inglesa":  "batata",
	"tomate italiano": "tomate",
}

var ingredientSplit = regexp.MustCompile(`[,\n]`)

// NormalizeIngredient lowercases and trims a raw ingredient name and applies
// the synonym table. Idempotent.
func NormalizeIngredient(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := synonyms[name]; ok {
		return canonical
	}
	return name
}

// ProcessInput splits the user-provided ingredient text on commas and
// newlines, discards blank segments, normalizes each survivor and removes
// duplicates keeping first-seen order. An empty result means the input had no
// usable ingredients; callers treat that as a validation failure.
func ProcessInput(raw string) []string {
	parts := ingredientSplit.Split(raw, -1)

	seen := make(map[string]struct{}, len(parts))
	var ingredients []string
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		normalized := NormalizeIngredient(part)
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		ingredients = append(ingredients, normalized)
	}
	return ingredients
}
