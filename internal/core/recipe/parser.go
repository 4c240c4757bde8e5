package recipe

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Caro-cyber/sistema-iareceita/internal/pkg/common"

	"go.uber.org/zap"
)

// recipeSeparator is the delimiter the prompt asks the model to place
// between recipes. Split on the line-isolated form only, so stray "---"
// inside a recipe body does not break a segment apart.
const recipeSeparator = "\n---\n"

// The three template markers the prompt instructs the model to emit. All
// matching is case-insensitive and spans newlines.
var (
	namePattern         = regexp.MustCompile(`(?is)\*\*Nome da Receita:\*\*\s*(.*?)\s*\*\*Ingredientes:\*\*`)
	ingredientsPattern  = regexp.MustCompile(`(?is)\*\*Ingredientes:\*\*\s*(.*?)\s*\*\*Modo de Preparo:\*\*`)
	instructionsPattern = regexp.MustCompile(`(?is)\*\*Modo de Preparo:\*\*\s*(.*)`)
)

// extractRecipe runs the three marker patterns over a candidate segment.
// Returns ok=false when any marker is missing.
func extractRecipe(segment string) (name, ingredients, instructions string, ok bool) {
	nameMatch := namePattern.FindStringSubmatch(segment)
	ingredientsMatch := ingredientsPattern.FindStringSubmatch(segment)
	instructionsMatch := instructionsPattern.FindStringSubmatch(segment)

	if nameMatch == nil || ingredientsMatch == nil || instructionsMatch == nil {
		return "", "", "", false
	}

	return strings.TrimSpace(nameMatch[1]),
		strings.TrimSpace(ingredientsMatch[1]),
		strings.TrimSpace(instructionsMatch[1]),
		true
}

// ParseRecipes extracts structured recipes from a raw generation response.
//
// The response is split on the recipe separator and each segment is matched
// against the template markers. Segments that fail extraction become
// degraded entries carrying the original text; they never abort the
// remaining segments. When the split yields no recipes at all and the
// response is non-blank, the whole text is re-parsed as a single recipe —
// models frequently drop the separator on single-recipe replies.
func ParseRecipes(responseText string) []Recipe {
	var recipes []Recipe

	for i, segment := range strings.Split(responseText, recipeSeparator) {
		if strings.TrimSpace(segment) == "" {
			continue
		}

		name, ingredients, instructions, ok := extractRecipe(segment)
		if !ok {
			common.LogWarn("failed to parse recipe segment",
				zap.Int("segment", i),
				zap.String("preview", preview(segment, 100)),
			)
			recipes = append(recipes, Recipe{
				ID:      fmt.Sprintf("unparsed_recipe_%d", i),
				Name:    fmt.Sprintf("Receita não processada %d", i+1),
				RawText: strings.TrimSpace(segment),
			})
			continue
		}

		recipes = append(recipes, Recipe{
			ID:               fmt.Sprintf("recipe_%d", i),
			Name:             name,
			IngredientsText:  ingredients,
			InstructionsText: instructions,
		})
	}

	if len(recipes) == 0 && strings.TrimSpace(responseText) != "" {
		if name, ingredients, instructions, ok := extractRecipe(responseText); ok {
			recipes = append(recipes, Recipe{
				ID:               "recipe_0",
				Name:             name,
				IngredientsText:  ingredients,
				InstructionsText: instructions,
			})
		}
	}

	return recipes
}

func preview(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
