package scoring

import (
	"github.com/teranos/auragraph/internal/util"
	"github.com/teranos/auragraph/population"
)

// Focal and peer person colors of the similarity model.
const (
	focalRGB = "255, 0, 166"
	peerRGB  = "100, 100, 100"
)

// Similarity scores persons by how close their shared attribute values are.
type Similarity struct {
	Params Params
}

func (Similarity) Model() string { return ModelSimilarity }

// Relate scores every shown person against focal. Attribute distances grow
// with the attribute value; person distances are SimilarityDistance.
func (s Similarity) Relate(focal population.Person, shown []population.Person) Relations {
	rel := Relations{Model: ModelSimilarity, FocalID: focal.ID, Persons: make(map[int]PersonRelation, len(shown))}
	span := s.Params.Span()

	for _, p := range shown {
		rgb := peerRGB
		if p.ID == focal.ID {
			rgb = focalRGB
		}
		pr := PersonRelation{
			Color:      RGBA(rgb, 1),
			AuraColor:  RGBA(rgb, s.Params.OpacityAura),
			Attributes: make(map[string]AttributeRelation, len(p.Attributes)),
		}
		if p.ID != focal.ID {
			pr.Distance = SimilarityDistance(focal, p, s.Params.RangeAttributes, s.Params.MaxAuraRadius, s.Params.Proportion)
			pr.Strength = span - pr.Distance
		}

		for _, name := range p.Attributes.Names() {
			v := float64(p.Attributes[name])
			ar := AttributeRelation{
				Distance: util.ClampFloat(ratio(v, float64(s.Params.RangeAttributes))*span, 0, span),
				Strength: v,
			}
			if s.Params.FullColor {
				ar.Color = HueColor(v, float64(s.Params.RangeAttributes))
				ar.AuraColor = ar.Color
			} else {
				ar.Color, ar.AuraColor = pr.Color, pr.AuraColor
			}
			pr.Attributes[name] = ar
		}
		rel.Persons[p.ID] = pr
	}
	return rel
}

// SimilarityDistance is the symmetric distance between two persons.
//
// Each attribute defined on both contributes (rangeAttributes - |a-b|) / rangeAttributes.
// The mean contribution is the similarity, and the distance is
// (1 - similarity) * maxAuraRadius * proportion. With no shared attributes
// the similarity is 0.
func SimilarityDistance(a, b population.Person, rangeAttributes int, maxAuraRadius, proportion float64) float64 {
	span := maxAuraRadius * proportion
	if rangeAttributes <= 0 {
		return span
	}

	r := float64(rangeAttributes)
	var sum float64
	shared := 0
	for _, name := range a.Attributes.Names() {
		bv, ok := b.Attributes[name]
		if !ok {
			continue
		}
		sum += (r - float64(util.AbsInt(a.Attributes[name]-bv))) / r
		shared++
	}

	similarity := 0.0
	if shared > 0 {
		similarity = sum / float64(shared)
	}
	return util.Finite((1-similarity)*span, span)
}

// ratio returns v/d, or 0 when d is zero.
func ratio(v, d float64) float64 {
	if d == 0 {
		return 0
	}
	return util.Finite(v/d, 0)
}
