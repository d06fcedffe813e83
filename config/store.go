package config

import (
	"strconv"
	"strings"
	"sync"

	"github.com/teranos/auragraph/errors"
	"github.com/teranos/auragraph/internal/notify"
	"github.com/teranos/auragraph/internal/util"
)

// Snapshot is a consistent read of the store.
type Snapshot struct {
	Graph      GraphConfig
	Proportion float64
	Breakpoint string
}

// Store holds the live GraphConfig and responsive proportion.
// Every write is clamped, so readers only ever observe valid values.
type Store struct {
	mu         sync.RWMutex
	graph      GraphConfig
	proportion float64
	breakpoint string
	subs       notify.Registry[Snapshot]
}

// NewStore creates a store from a graph config and breakpoint name.
// An unknown breakpoint falls back to DefaultBreakpoint.
func NewStore(graph GraphConfig, breakpoint string) *Store {
	graph.Clamp()
	p, err := BreakpointProportion(breakpoint)
	if err != nil {
		breakpoint = DefaultBreakpoint
		p = Breakpoints[DefaultBreakpoint]
	}
	return &Store{graph: graph, proportion: p, breakpoint: strings.ToUpper(breakpoint)}
}

// Snapshot returns the current values.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Graph: s.graph, Proportion: s.proportion, Breakpoint: s.breakpoint}
}

// Graph returns the current graph configuration.
func (s *Store) Graph() GraphConfig {
	return s.Snapshot().Graph
}

// Proportion returns the current responsive multiplier.
func (s *Store) Proportion() float64 {
	return s.Snapshot().Proportion
}

// Update mutates a copy of the graph config, clamps it, stores it and notifies subscribers.
func (s *Store) Update(fn func(*GraphConfig)) Snapshot {
	s.mu.Lock()
	next := s.graph
	fn(&next)
	next.Clamp()
	s.graph = next
	snap := Snapshot{Graph: s.graph, Proportion: s.proportion, Breakpoint: s.breakpoint}
	s.mu.Unlock()

	s.subs.Publish(snap)
	return snap
}

// Replace swaps in a whole graph config, typically after a file reload.
func (s *Store) Replace(graph GraphConfig) Snapshot {
	return s.Update(func(g *GraphConfig) { *g = graph })
}

// SetProportion sets the responsive multiplier directly, bounded to [0.1, 1].
func (s *Store) SetProportion(p float64) Snapshot {
	s.mu.Lock()
	s.proportion = util.ClampFloat(p, 0.1, 1)
	s.breakpoint = ""
	snap := Snapshot{Graph: s.graph, Proportion: s.proportion}
	s.mu.Unlock()

	s.subs.Publish(snap)
	return snap
}

// SetBreakpoint sets the proportion from the breakpoint table.
func (s *Store) SetBreakpoint(name string) (Snapshot, error) {
	p, err := BreakpointProportion(name)
	if err != nil {
		return s.Snapshot(), err
	}

	s.mu.Lock()
	s.proportion = p
	s.breakpoint = strings.ToUpper(strings.TrimSpace(name))
	snap := Snapshot{Graph: s.graph, Proportion: s.proportion, Breakpoint: s.breakpoint}
	s.mu.Unlock()

	s.subs.Publish(snap)
	return snap, nil
}

// Subscribe registers fn for every change. The returned function unsubscribes.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	return s.subs.Subscribe(fn)
}

// Set assigns one graph field by its config key (e.g. "strength_graph", "graph.show_names").
func (s *Store) Set(key, value string) (Snapshot, error) {
	key = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(key)), "graph.")
	setter, ok := graphSetters[key]
	if !ok {
		return s.Snapshot(), errors.Wrapf(errors.ErrInvalidRequest, "unknown graph setting %q", key)
	}

	next := s.Graph()
	if err := setter(&next, strings.TrimSpace(value)); err != nil {
		return s.Snapshot(), errors.Wrapf(errors.ErrInvalidRequest, "graph.%s: %v", key, err)
	}
	return s.Replace(next), nil
}

// GraphKeys lists the keys accepted by Set.
func GraphKeys() []string {
	return util.SortedKeys(graphSetters)
}

type graphSetter func(*GraphConfig, string) error

func floatSetter(field func(*GraphConfig) *float64) graphSetter {
	return func(g *GraphConfig, raw string) error {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return err
		}
		*field(g) = v
		return nil
	}
}

func boolSetter(field func(*GraphConfig) *bool) graphSetter {
	return func(g *GraphConfig, raw string) error {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		*field(g) = v
		return nil
	}
}

var graphSetters = map[string]graphSetter{
	"focal_person_id": func(g *GraphConfig, raw string) error {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return err
		}
		g.FocalPersonID = v
		return nil
	},
	"scoring": func(g *GraphConfig, raw string) error {
		raw = strings.ToLower(strings.TrimSpace(raw))
		switch raw {
		case ScoringSimilarity, ScoringAttraction:
			g.Scoring = raw
			return nil
		}
		return errors.Newf("want %s or %s", ScoringSimilarity, ScoringAttraction)
	},
	"persons_distance_proportion":    floatSetter(func(g *GraphConfig) *float64 { return &g.PersonsDistanceProportion }),
	"attributes_distance_proportion": floatSetter(func(g *GraphConfig) *float64 { return &g.AttributesDistanceProportion }),
	"opacity_aura":                   floatSetter(func(g *GraphConfig) *float64 { return &g.OpacityAura }),
	"max_aura_radius":                floatSetter(func(g *GraphConfig) *float64 { return &g.MaxAuraRadius }),
	"value_attribute_node":           floatSetter(func(g *GraphConfig) *float64 { return &g.ValueAttributeNode }),
	"strength_graph":                 floatSetter(func(g *GraphConfig) *float64 { return &g.StrengthGraph }),
	"stiffness_graph":                floatSetter(func(g *GraphConfig) *float64 { return &g.StiffnessGraph }),
	"cluster_affinity":               floatSetter(func(g *GraphConfig) *float64 { return &g.ClusterAffinity }),
	"full_color_attribute_nodes":     boolSetter(func(g *GraphConfig) *bool { return &g.FullColorAttributeNodes }),
	"show_names":                     boolSetter(func(g *GraphConfig) *bool { return &g.ShowNames }),
	"person_links":                   boolSetter(func(g *GraphConfig) *bool { return &g.PersonLinks }),
}
