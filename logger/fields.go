package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across auragraph.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Identity
	FieldSessionID    = "session_id"
	FieldSimulationID = "simulation_id"
	FieldPersonID     = "person_id"
	FieldFocalID      = "focal_id"
	FieldNodeID       = "node_id"
	FieldAttribute    = "attribute"

	// Components
	FieldComponent = "component"
	FieldOperation = "operation"

	// Simulation state
	FieldTick  = "tick"
	FieldAlpha = "alpha"
	FieldState = "state"
	FieldFPS   = "fps"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts and sizes
	FieldCount   = "count"
	FieldNodes   = "nodes"
	FieldEdges   = "edges"
	FieldDropped = "dropped"
	FieldPercent = "percent"

	// Files
	FieldFile = "file"

	// Glyph marker (꩜, ⋈, ●, ...)
	FieldSymbol = "symbol"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	func NewGenerator(...) *Generator {
//	    return &Generator{
//	        logger: logger.ComponentLogger("population"),
//	    }
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
//
//	simLogger := logger.ChildLogger(baseLogger, logger.FieldSimulationID, sim.ID())
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}

// OrComponent returns l, or the named global component logger when l is nil.
func OrComponent(l *zap.SugaredLogger, name string) *zap.SugaredLogger {
	if l != nil {
		return l
	}
	return ComponentLogger(name)
}
