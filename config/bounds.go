package config

import (
	"sort"
	"strings"

	"github.com/teranos/auragraph/errors"
	"github.com/teranos/auragraph/internal/util"
)

// Population bounds
const (
	MinPopulation         = 2
	MaxPopulation         = 50
	MinPercentDefined     = 10
	MaxPercentDefined     = 100
	MinSelectedAttributes = 3
)

// Bound is an inclusive numeric range.
type Bound struct {
	Min float64
	Max float64
}

// GraphBounds are the accepted ranges for every numeric GraphConfig field, keyed by config key.
var GraphBounds = map[string]Bound{
	"persons_distance_proportion":    {0, 5},
	"attributes_distance_proportion": {0, 1},
	"opacity_aura":                   {0, 1},
	"max_aura_radius":                {20, 250},
	"value_attribute_node":           {4, 10},
	"strength_graph":                 {5, 100},
	"stiffness_graph":                {0, 10},
	"cluster_affinity":               {0, 1},
}

func clampTo(v float64, key string) float64 {
	b := GraphBounds[key]
	return util.ClampFloat(v, b.Min, b.Max)
}

// Clamp forces every numeric field into GraphBounds and normalizes the scoring model.
// Focal ids below zero become 0.
func (g *GraphConfig) Clamp() {
	g.PersonsDistanceProportion = clampTo(g.PersonsDistanceProportion, "persons_distance_proportion")
	g.AttributesDistanceProportion = clampTo(g.AttributesDistanceProportion, "attributes_distance_proportion")
	g.OpacityAura = clampTo(g.OpacityAura, "opacity_aura")
	g.MaxAuraRadius = clampTo(g.MaxAuraRadius, "max_aura_radius")
	g.ValueAttributeNode = clampTo(g.ValueAttributeNode, "value_attribute_node")
	g.StrengthGraph = clampTo(g.StrengthGraph, "strength_graph")
	g.StiffnessGraph = clampTo(g.StiffnessGraph, "stiffness_graph")
	g.ClusterAffinity = clampTo(g.ClusterAffinity, "cluster_affinity")
	if g.FocalPersonID < 0 {
		g.FocalPersonID = 0
	}
	g.Scoring = strings.ToLower(strings.TrimSpace(g.Scoring))
	if g.Scoring != ScoringAttraction {
		g.Scoring = ScoringSimilarity
	}
}

// ClampPopulation bounds a requested count and percentage to the accepted ranges.
func ClampPopulation(count, percent int) (int, int) {
	return util.Clamp(count, MinPopulation, MaxPopulation), util.Clamp(percent, MinPercentDefined, MaxPercentDefined)
}

// Breakpoints maps responsive breakpoint names to their proportion multiplier.
var Breakpoints = map[string]float64{
	"XS": 0.5,
	"S":  0.6,
	"M":  0.7,
	"L":  0.8,
	"XL": 1,
}

// BreakpointProportion returns the proportion for a breakpoint name (case-insensitive).
func BreakpointProportion(name string) (float64, error) {
	p, ok := Breakpoints[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, errors.NewInvalidConfigError("unknown breakpoint %q (supported: %s)", name, strings.Join(BreakpointNames(), ", "))
	}
	return p, nil
}

// BreakpointNames returns breakpoint names from smallest to largest.
func BreakpointNames() []string {
	names := make([]string, 0, len(Breakpoints))
	for name := range Breakpoints {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return Breakpoints[names[i]] < Breakpoints[names[j]] })
	return names
}
