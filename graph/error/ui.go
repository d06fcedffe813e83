package grapherror

import (
	"fmt"
	"sort"
	"time"
)

// categoryMessages is the fallback text per category
var categoryMessages = map[Category]string{
	CategoryPopulation: "Population unavailable - generate at least 2 persons",
	CategoryScoring:    "Relationships could not be scored",
	CategoryGraph:      "Failed to build graph from the shown population",
	CategoryLayout:     "Layout simulation unavailable - rebuild the graph",
	CategoryConfig:     "Invalid configuration - check aura.toml",
	CategoryInternal:   "An internal error occurred - please try again",
}

// subcategoryMessages refine the category text where the cause is known
var subcategoryMessages = map[Category]map[string]string{
	CategoryPopulation: {
		SubcategoryPopulationEmpty:    "No persons are shown - generate or widen the filter",
		SubcategoryPopulationTooSmall: "A population needs at least 2 persons",
	},
	CategoryScoring: {
		SubcategoryScoringModel: "Unknown scoring model - use similarity or attraction",
	},
	CategoryGraph: {
		SubcategoryGraphFocalNotFound: "The focal person is not in the shown population - focus another person",
	},
	CategoryLayout: {
		SubcategoryLayoutStopped:     "The simulation was stopped - rebuild the graph to continue",
		SubcategoryLayoutUnknownNode: "That node is not part of the current graph",
	},
	CategoryConfig: {
		SubcategoryConfigReload: "The changed config file was rejected - the previous settings stay active",
	},
}

// ToUIMessage returns the text a user should see: the explicit UserMessage,
// else the subcategory text, else the category text.
func (e *GraphError) ToUIMessage() string {
	if e.UserMessage != "" {
		return e.UserMessage
	}
	if msg, ok := subcategoryMessages[e.Category][e.Subcategory]; ok {
		return msg
	}
	if msg, ok := categoryMessages[e.Category]; ok {
		return msg
	}
	return "An error occurred"
}

// ToGraphMeta formats the error for graph.Meta.Error, so a renderer can
// explain an empty graph.
func (e *GraphError) ToGraphMeta() map[string]string {
	meta := map[string]string{
		"error":       e.Error(),
		"category":    e.Category.String(),
		"description": e.ToUIMessage(),
		"timestamp":   e.Timestamp.Format(time.RFC3339),
	}
	if e.Subcategory != "" {
		meta["subcategory"] = e.Subcategory
	}
	if len(e.Context) > 0 {
		meta["context"] = fmt.Sprintf("%v", e.Context)
	}
	return meta
}

// ToLogFields returns key/value pairs for a SugaredLogger, context keys sorted.
func (e *GraphError) ToLogFields() []interface{} {
	fields := []interface{}{
		"error_category", e.Category,
		"error_message", e.Error(),
		"user_message", e.ToUIMessage(),
	}
	if e.Subcategory != "" {
		fields = append(fields, "error_subcategory", e.Subcategory)
	}

	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fields = append(fields, k, e.Context[k])
	}
	return fields
}

// IsCategory reports whether the error belongs to any of cats
func (e *GraphError) IsCategory(cats ...Category) bool {
	for _, c := range cats {
		if e.Category == c {
			return true
		}
	}
	return false
}

// IsSubcategory checks if the error matches a specific subcategory
func (e *GraphError) IsSubcategory(sub string) bool {
	return e.Subcategory == sub
}
