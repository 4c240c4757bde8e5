package recipe

// Recipe is one suggestion extracted from a generation response.
//
// A recipe is either fully parsed (Name, IngredientsText and InstructionsText
// all set, RawText empty) or degraded (RawText holds the original segment for
// diagnostics). Degraded entries are still surfaced to callers.
type Recipe struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	IngredientsText  string `json:"ingredients_text,omitempty"`
	InstructionsText string `json:"instructions_text,omitempty"`
	RawText          string `json:"raw_text,omitempty"`
}

// Parsed reports whether the recipe survived structured extraction.
func (r Recipe) Parsed() bool {
	return r.RawText == ""
}
