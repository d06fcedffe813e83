package grapherror

import (
	stderrors "errors"
	"testing"
	"time"
)

func TestGraphError_ToUIMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *GraphError
		want string
	}{
		{
			name: "explicit user message wins",
			err:  &GraphError{Category: CategoryGraph, Subcategory: SubcategoryGraphFocalNotFound, UserMessage: "Person 4 is filtered out"},
			want: "Person 4 is filtered out",
		},
		{
			name: "subcategory text refines the category",
			err:  &GraphError{Category: CategoryGraph, Subcategory: SubcategoryGraphFocalNotFound},
			want: "The focal person is not in the shown population - focus another person",
		},
		{
			name: "same subcategory name resolves per category",
			err:  &GraphError{Category: CategoryPopulation, Subcategory: SubcategoryPopulationEmpty},
			want: "No persons are shown - generate or widen the filter",
		},
		{
			name: "unknown subcategory falls back to category",
			err:  &GraphError{Category: CategoryLayout, Subcategory: "bogus"},
			want: "Layout simulation unavailable - rebuild the graph",
		},
		{
			name: "unknown category",
			err:  &GraphError{Category: Category("unknown")},
			want: "An error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.ToUIMessage(); got != tt.want {
				t.Errorf("ToUIMessage() = %q, want %q", got, tt.want)
			}
		})
	}

	for _, cat := range []Category{CategoryPopulation, CategoryScoring, CategoryGraph, CategoryLayout, CategoryConfig, CategoryInternal} {
		if (&GraphError{Category: cat}).ToUIMessage() == "An error occurred" {
			t.Errorf("category %q has no message", cat)
		}
	}
}

func TestGraphError_ToGraphMeta(t *testing.T) {
	err := &GraphError{
		Err:         stderrors.New("focal person 9 not shown"),
		Category:    CategoryGraph,
		Subcategory: SubcategoryGraphFocalNotFound,
		Timestamp:   time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Context:     map[string]interface{}{"focal_id": 9},
	}

	meta := err.ToGraphMeta()
	want := map[string]string{
		"error":       "focal person 9 not shown",
		"category":    "graph",
		"subcategory": "focal_not_found",
		"description": "The focal person is not in the shown population - focus another person",
		"timestamp":   "2024-01-15T10:30:00Z",
		"context":     "map[focal_id:9]",
	}
	for key, v := range want {
		if meta[key] != v {
			t.Errorf("ToGraphMeta()[%q] = %q, want %q", key, meta[key], v)
		}
	}

	bare := (&GraphError{Err: stderrors.New("x"), Category: CategoryInternal}).ToGraphMeta()
	if _, ok := bare["subcategory"]; ok {
		t.Error("ToGraphMeta() should omit an empty subcategory")
	}
	if _, ok := bare["context"]; ok {
		t.Error("ToGraphMeta() should omit empty context")
	}
}

func TestGraphError_ToLogFields(t *testing.T) {
	err := &GraphError{
		Err:         stderrors.New("node 3_humor not in simulation"),
		Category:    CategoryLayout,
		Subcategory: SubcategoryLayoutUnknownNode,
		Context:     map[string]interface{}{"node_id": "3_humor", "alpha": 0.5},
	}

	fields := err.ToLogFields()
	if len(fields) != 12 {
		t.Fatalf("ToLogFields() returned %d fields, want 12", len(fields))
	}
	if fields[8] != "alpha" || fields[10] != "node_id" {
		t.Errorf("context keys not sorted: %v, %v", fields[8], fields[10])
	}

	got := make(map[string]interface{})
	for i := 0; i < len(fields); i += 2 {
		got[fields[i].(string)] = fields[i+1]
	}
	if got["error_category"] != CategoryLayout {
		t.Errorf("error_category = %v", got["error_category"])
	}
	if got["error_subcategory"] != SubcategoryLayoutUnknownNode {
		t.Errorf("error_subcategory = %v", got["error_subcategory"])
	}
	if got["user_message"] != "That node is not part of the current graph" {
		t.Errorf("user_message = %v", got["user_message"])
	}
}

func TestGraphError_IsCategory(t *testing.T) {
	err := &GraphError{Category: CategoryConfig, Subcategory: SubcategoryConfigReload}
	if !err.IsCategory(CategoryLayout, CategoryConfig) {
		t.Error("IsCategory() should match any listed category")
	}
	if err.IsCategory(CategoryGraph) || err.IsCategory() {
		t.Error("IsCategory() matched an unlisted category")
	}
	if !err.IsSubcategory(SubcategoryConfigReload) {
		t.Error("IsSubcategory() = false")
	}
}
