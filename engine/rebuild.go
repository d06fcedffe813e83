package engine

import (
	grapherr "github.com/teranos/auragraph/graph/error"
	"github.com/teranos/auragraph/layout"
	"github.com/teranos/auragraph/logger"
)

// Rebuild runs the pipeline on the current population and configuration:
// build a new graph, create a simulation warm-started from the live one's
// positions, stop the live one, and energize the successor.
//
// A focal id outside the shown population still installs the empty graph
// and returns its GraphError, so the session stays usable.
func (e *Engine) Rebuild() (*layout.Simulation, error) {
	snap := e.store.Snapshot()
	g, buildErr := e.build(snap.Graph.FocalPersonID, snap)
	if g == nil {
		return e.Simulation(), buildErr
	}

	e.mu.Lock()
	prev := e.sim
	var positions map[string]layout.Point
	if prev != nil {
		positions = prev.Positions()
	}
	width, height := e.width, e.height
	e.mu.Unlock()

	next := layout.New(g, e.simOptions(width, height, positions))

	e.mu.Lock()
	if e.sim != prev {
		// a concurrent rebuild installed first
		next.Stop()
		sim := e.sim
		e.mu.Unlock()
		return sim, buildErr
	}
	e.graph = g
	e.sim = next
	e.rebuilds++
	rebuilds := e.rebuilds
	e.mu.Unlock()

	if prev != nil {
		prev.Stop()
	}
	if err := next.Restart(); err != nil {
		return next, err
	}

	fields := []interface{}{
		logger.FieldSimulationID, next.ID(),
		logger.FieldFocalID, snap.Graph.FocalPersonID,
		logger.FieldNodes, len(g.Nodes),
		logger.FieldEdges, len(g.Links),
		"warm_start", len(positions),
		"rebuild", rebuilds,
	}
	if buildErr != nil {
		e.logger.Warnw("Rebuilt with empty graph", append(fields, grapherr.FromError(buildErr).ToLogFields()...)...)
	} else {
		e.logger.Debugw("Rebuilt", fields...)
	}

	e.subs.Publish(next)
	return next, buildErr
}

// Rebuilds returns how many simulations this session has installed.
func (e *Engine) Rebuilds() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rebuilds
}
