// Package grapherror categorizes errors raised while producing a graph
// snapshot, so the CLI and renderers can show a useful message next to an
// empty graph instead of failing the pipeline.
package grapherror

import (
	"time"

	"github.com/teranos/auragraph/errors"
)

// GraphError represents an error in the graph pipeline with structured context
type GraphError struct {
	Err         error                  // Underlying error
	Category    Category               // Main category
	Subcategory string                 // Optional subcategory
	UserMessage string                 // User-friendly message for display
	Context     map[string]interface{} // Additional context for debugging
	Timestamp   time.Time              // When the error occurred
}

// Error implements the error interface
func (e *GraphError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.UserMessage
}

// Unwrap returns the underlying error for errors.Is/As compatibility
func (e *GraphError) Unwrap() error {
	return e.Err
}

// New creates a new GraphError with the specified category and messages
func New(category Category, err error, userMsg string) *GraphError {
	return &GraphError{
		Err:         err,
		Category:    category,
		UserMessage: userMsg,
		Context:     make(map[string]interface{}),
		Timestamp:   time.Now(),
	}
}

// Newf creates a new GraphError with a formatted error message
func Newf(category Category, userMsg, format string, args ...interface{}) *GraphError {
	return New(category, errors.Newf(format, args...), userMsg)
}

// FromError classifies err by the sentinel it wraps. An existing GraphError
// is returned as is; nil stays nil.
func FromError(err error) *GraphError {
	if err == nil {
		return nil
	}
	var ge *GraphError
	if errors.As(err, &ge) {
		return ge
	}

	switch {
	case errors.Is(err, errors.ErrFocalNotFound):
		return New(CategoryGraph, err, "").WithSubcategory(SubcategoryGraphFocalNotFound)
	case errors.Is(err, errors.ErrPopulationTooSmall):
		return New(CategoryPopulation, err, "").WithSubcategory(SubcategoryPopulationTooSmall)
	case errors.IsAny(err, errors.ErrPersonNotFound, errors.ErrNoAttributes, errors.ErrUnknownAttribute):
		return New(CategoryPopulation, err, "")
	case errors.Is(err, errors.ErrSimulationStopped):
		return New(CategoryLayout, err, "").WithSubcategory(SubcategoryLayoutStopped)
	case errors.Is(err, errors.ErrUnknownNode):
		return New(CategoryLayout, err, "").WithSubcategory(SubcategoryLayoutUnknownNode)
	case errors.Is(err, errors.ErrNotDragging):
		return New(CategoryLayout, err, "")
	case errors.Is(err, errors.ErrInvalidConfig):
		return New(CategoryConfig, err, "").WithSubcategory(SubcategoryConfigInvalid)
	}
	return New(CategoryInternal, err, "")
}

// WithSubcategory adds a subcategory to the error
func (e *GraphError) WithSubcategory(sub string) *GraphError {
	e.Subcategory = sub
	return e
}

// WithContext adds a context key-value pair for debugging
func (e *GraphError) WithContext(key string, value interface{}) *GraphError {
	e.Context[key] = value
	return e
}

// WithContextMap adds multiple context key-value pairs
func (e *GraphError) WithContextMap(ctx map[string]interface{}) *GraphError {
	for k, v := range ctx {
		e.Context[k] = v
	}
	return e
}
