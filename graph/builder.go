package graph

import (
	"github.com/teranos/auragraph/config"
	"github.com/teranos/auragraph/logger"
	"go.uber.org/zap"
)

// Options are the inputs a build reads besides the shown population.
type Options struct {
	Graph                config.GraphConfig
	Proportion           float64 // responsive multiplier
	RangeAttributes      int
	IndirectLinkStrength float64 // strength of indirect and person links, 0 = default
}

// Builder builds graph snapshots from the shown population.
// It holds no state between builds; every call returns new slices.
type Builder struct {
	logger *zap.SugaredLogger
}

// NewBuilder creates a graph builder.
func NewBuilder(log *zap.SugaredLogger) *Builder {
	return &Builder{
		logger: logger.AddGraphSymbol(logger.OrComponent(log, "graph.builder")),
	}
}
