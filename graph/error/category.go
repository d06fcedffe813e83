package grapherror

// Category represents the main error category for graph operations
type Category string

const (
	// CategoryPopulation indicates population generation or filtering errors
	CategoryPopulation Category = "population"

	// CategoryScoring indicates relationship scoring errors
	CategoryScoring Category = "scoring"

	// CategoryGraph indicates graph building errors
	CategoryGraph Category = "graph"

	// CategoryLayout indicates force simulation errors
	CategoryLayout Category = "layout"

	// CategoryConfig indicates configuration errors
	CategoryConfig Category = "config"

	// CategoryInternal indicates internal errors
	CategoryInternal Category = "internal"
)

// String returns the string representation of the category
func (c Category) String() string {
	return string(c)
}

// Population Subcategories
const (
	// SubcategoryPopulationEmpty indicates there are no shown persons
	SubcategoryPopulationEmpty = "empty"

	// SubcategoryPopulationTooSmall indicates fewer than two persons were requested
	SubcategoryPopulationTooSmall = "too_small"
)

// Scoring Subcategories
const (
	// SubcategoryScoringModel indicates an unknown scoring model
	SubcategoryScoringModel = "model"
)

// Graph Subcategories
const (
	// SubcategoryGraphFocalNotFound indicates the focal id is not in the shown population
	SubcategoryGraphFocalNotFound = "focal_not_found"

	// SubcategoryGraphDanglingEdge indicates an edge referenced a node that was not emitted
	SubcategoryGraphDanglingEdge = "dangling_edge"

	// SubcategoryGraphEmpty indicates graph is empty (not necessarily an error)
	SubcategoryGraphEmpty = "empty"
)

// Layout Subcategories
const (
	// SubcategoryLayoutStopped indicates a command reached a stopped simulation
	SubcategoryLayoutStopped = "stopped"

	// SubcategoryLayoutUnknownNode indicates a drag targeted a node outside the simulation
	SubcategoryLayoutUnknownNode = "unknown_node"
)

// Config Subcategories
const (
	// SubcategoryConfigInvalid indicates a value failed validation
	SubcategoryConfigInvalid = "invalid"

	// SubcategoryConfigReload indicates a watched config file failed to reload
	SubcategoryConfigReload = "reload"
)

// Internal Subcategories
const (
	// SubcategoryInternalPanic indicates a panic was recovered
	SubcategoryInternalPanic = "panic"

	// SubcategoryInternalState indicates invalid internal state
	SubcategoryInternalState = "invalid_state"
)
