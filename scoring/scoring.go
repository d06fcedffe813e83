// Package scoring turns attribute and preference data into relation strengths,
// resting distances and colors.
//
// Two models exist and are not interchangeable:
//
//   - Similarity compares the attribute values two persons share. It is symmetric.
//   - Attraction evaluates the focal person's preference rules against the
//     attribute values of others. It is directional.
//
// Both are exposed through the Scorer interface and selected by name.
package scoring

import (
	"github.com/teranos/auragraph/errors"
	"github.com/teranos/auragraph/population"
)

// Model names accepted by New.
const (
	ModelSimilarity = "similarity"
	ModelAttraction = "attraction"
)

// Params are the inputs every model reads.
type Params struct {
	RangeAttributes int
	MaxAuraRadius   float64
	Proportion      float64 // responsive multiplier
	OpacityAura     float64
	FullColor       bool // color attribute nodes by value instead of by owner
}

// Span is the largest resting distance a direct edge may have.
func (p Params) Span() float64 {
	return p.MaxAuraRadius * p.Proportion
}

// Relations is everything a scorer derives for one focal person and population.
type Relations struct {
	Model   string
	FocalID int
	Persons map[int]PersonRelation
}

// PersonRelation holds one person's scores relative to the focal person.
type PersonRelation struct {
	// Distance is the resting distance to the focal person, before the
	// persons-distance proportion is applied. Zero for the focal person.
	Distance   float64
	Strength   float64 // model-specific relation strength toward the focal person
	Color      string
	AuraColor  string
	Attributes map[string]AttributeRelation
}

// AttributeRelation holds the score of one defined attribute.
type AttributeRelation struct {
	Distance  float64 // resting distance from the owning person, in [0, Params.Span()]
	Strength  float64
	Color     string
	AuraColor string
}

// Scorer derives Relations from a shown population around a focal person.
// focal must be a member of shown.
type Scorer interface {
	Model() string
	Relate(focal population.Person, shown []population.Person) Relations
}

// New returns the scorer for a model name.
func New(model string, params Params) (Scorer, error) {
	switch model {
	case ModelSimilarity, "":
		return Similarity{Params: params}, nil
	case ModelAttraction:
		return Attraction{Params: params}, nil
	}
	return nil, errors.WithHintf(
		errors.Wrapf(errors.ErrInvalidRequest, "unknown scoring model %q", model),
		"use %q or %q", ModelSimilarity, ModelAttraction)
}

// Models lists the accepted model names.
func Models() []string {
	return []string{ModelSimilarity, ModelAttraction}
}

// minMax returns the bounds of values, or (0, 0) when empty.
func minMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}
