package grapherror

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/teranos/auragraph/errors"
)

func TestGraphError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *GraphError
		want string
	}{
		{
			name: "returns underlying error message when Err is not nil",
			err:  &GraphError{Err: stderrors.New("focal person 7 missing"), UserMessage: "Pick another person"},
			want: "focal person 7 missing",
		},
		{
			name: "returns UserMessage when Err is nil",
			err:  &GraphError{UserMessage: "Graph is empty"},
			want: "Graph is empty",
		},
		{
			name: "returns empty string when both are empty",
			err:  &GraphError{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("GraphError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	underlying := stderrors.New("no persons shown")
	err := New(CategoryPopulation, underlying, "Generate a population first")

	if err.Err != underlying {
		t.Errorf("New().Err = %v, want %v", err.Err, underlying)
	}
	if err.Category != CategoryPopulation {
		t.Errorf("New().Category = %v, want %v", err.Category, CategoryPopulation)
	}
	if err.Context == nil || len(err.Context) != 0 {
		t.Errorf("New().Context should be empty and non-nil, got %v", err.Context)
	}
	if time.Since(err.Timestamp) > time.Second {
		t.Errorf("New().Timestamp is too old: %v", err.Timestamp)
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryGraph, "Edge dropped", "edge %s -> %s has no target", "0", "9_trust")

	want := "edge 0 -> 9_trust has no target"
	if err.Err == nil || err.Err.Error() != want {
		t.Fatalf("Newf().Err = %v, want %q", err.Err, want)
	}
	if err.UserMessage != "Edge dropped" {
		t.Errorf("Newf().UserMessage = %q", err.UserMessage)
	}
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		category    Category
		subcategory string
	}{
		{"focal", errors.Wrapf(errors.ErrFocalNotFound, "id %d", 4), CategoryGraph, SubcategoryGraphFocalNotFound},
		{"too small", errors.ErrPopulationTooSmall, CategoryPopulation, SubcategoryPopulationTooSmall},
		{"unknown person", errors.Wrap(errors.ErrPersonNotFound, "id 3"), CategoryPopulation, ""},
		{"stopped", errors.ErrSimulationStopped, CategoryLayout, SubcategoryLayoutStopped},
		{"unknown node", errors.ErrUnknownNode, CategoryLayout, SubcategoryLayoutUnknownNode},
		{"config", errors.NewInvalidConfigError("count %d", 1), CategoryConfig, SubcategoryConfigInvalid},
		{"other", stderrors.New("boom"), CategoryInternal, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ge := FromError(tt.err)
			if !ge.IsCategory(tt.category) {
				t.Errorf("FromError().Category = %v, want %v", ge.Category, tt.category)
			}
			if ge.Subcategory != tt.subcategory {
				t.Errorf("FromError().Subcategory = %q, want %q", ge.Subcategory, tt.subcategory)
			}
			if !errors.Is(ge, tt.err) {
				t.Error("FromError() should keep the original error in the chain")
			}
		})
	}

	if FromError(nil) != nil {
		t.Error("FromError(nil) should be nil")
	}

	existing := New(CategoryLayout, nil, "already categorized")
	if got := FromError(errors.Wrap(existing, "context")); got != existing {
		t.Error("FromError() should return an existing GraphError from the chain")
	}
}

func TestGraphError_MethodChaining(t *testing.T) {
	err := New(CategoryGraph, stderrors.New("missing focal"), "").
		WithSubcategory(SubcategoryGraphFocalNotFound).
		WithContext("focal_id", 12).
		WithContextMap(map[string]interface{}{"shown": 10, "scoring": "similarity"})

	if !err.IsSubcategory(SubcategoryGraphFocalNotFound) {
		t.Errorf("Subcategory = %q", err.Subcategory)
	}
	if len(err.Context) != 3 {
		t.Errorf("Context has %d items, want 3", len(err.Context))
	}
	if err.Context["focal_id"] != 12 {
		t.Errorf("Context[focal_id] = %v", err.Context["focal_id"])
	}
}
