package scoring

import (
	"math"

	"github.com/teranos/auragraph/internal/util"
	"github.com/teranos/auragraph/population"
)

// Attraction scores persons by the focal person's preference rules.
//
// The focal person's attribute nodes are scored by AggregateAttraction, every
// other person's attribute nodes by the focal person's attraction to that
// value. Attribute distances shrink as attraction grows, normalized within
// each person's own attributes.
type Attraction struct {
	Params Params
}

func (Attraction) Model() string { return ModelAttraction }

// Relate scores every shown person against focal.
func (a Attraction) Relate(focal population.Person, shown []population.Person) Relations {
	rel := Relations{Model: ModelAttraction, FocalID: focal.ID, Persons: make(map[int]PersonRelation, len(shown))}
	span := a.Params.Span()
	r := a.Params.RangeAttributes

	totals := make([]float64, 0, len(shown))
	for _, p := range shown {
		if p.ID != focal.ID {
			totals = append(totals, TotalAttraction(focal, p, r))
		}
	}
	tMin, tMax := minMax(totals)

	for _, p := range shown {
		isFocal := p.ID == focal.ID
		pr := PersonRelation{Attributes: make(map[string]AttributeRelation, len(p.Attributes))}

		if isFocal {
			pr.Color = RGBA(focalRGB, 1)
			pr.AuraColor = RGBA(focalRGB, a.Params.OpacityAura)
		} else {
			pr.Strength = TotalAttraction(focal, p, r)
			pr.Distance = (1 - Normalize(pr.Strength, tMin, tMax)) * span
			pr.Color = PersonColor(pr.Strength, tMin, tMax, 1)
			pr.AuraColor = PersonColor(pr.Strength, tMin, tMax, a.Params.OpacityAura)
		}

		names := p.Attributes.Names()
		strengths := make([]float64, len(names))
		for i, name := range names {
			if isFocal {
				strengths[i] = AggregateAttraction(focal, shown, name, r)
			} else {
				strengths[i] = AttractionTo(focal, p, name, r)
			}
		}
		lo, hi := minMax(strengths)

		for i, name := range names {
			ar := AttributeRelation{
				Strength: strengths[i],
				Distance: util.ClampFloat((1-Normalize(strengths[i], lo, hi))*span, 0, span),
			}
			if a.Params.FullColor {
				ar.Color = AttributeColor(strengths[i], lo, hi, isFocal, 1)
				ar.AuraColor = AttributeColor(strengths[i], lo, hi, isFocal, a.Params.OpacityAura)
			} else {
				ar.Color, ar.AuraColor = pr.Color, pr.AuraColor
			}
			pr.Attributes[name] = ar
		}
		rel.Persons[p.ID] = pr
	}
	return rel
}

// AttractionTo is the focal person's attraction toward other's value of attribute.
// It is 0 when other has not defined the attribute or focal has no preference for it.
//
// With pv the preferred value, ov the other's value and w the weight:
//
//	GREATER  w if pv < ov
//	LESSER   w if pv > ov
//	EXACT    w if pv == ov
//	CLOSER   floor((w - |pv-ov| * w/(range-1)) * 100) / 100
//
// CLOSER is not clamped and goes negative for distant values.
func AttractionTo(focal, other population.Person, attribute string, rangeAttributes int) float64 {
	pref, ok := focal.Preferences[attribute]
	if !ok {
		return 0
	}
	ov, ok := other.Attributes[attribute]
	if !ok {
		return 0
	}
	return SignAttraction(pref, ov, rangeAttributes)
}

// SignAttraction applies one preference to a value.
func SignAttraction(pref population.Preference, value, rangeAttributes int) float64 {
	pv, w := pref.Value, float64(pref.Weight)

	switch pref.Sign {
	case population.SignGreater:
		if pv < value {
			return w
		}
	case population.SignLesser:
		if pv > value {
			return w
		}
	case population.SignExact:
		if pv == value {
			return w
		}
	case population.SignCloser:
		unit := w
		if rangeAttributes > 1 {
			unit = w / float64(rangeAttributes-1)
		}
		return math.Floor((w-float64(util.AbsInt(pv-value))*unit)*100) / 100
	}
	return 0
}

// AggregateAttraction sums the focal person's attraction toward attribute over
// every non-focal member of persons.
func AggregateAttraction(focal population.Person, persons []population.Person, attribute string, rangeAttributes int) float64 {
	var sum float64
	for _, p := range persons {
		if p.ID == focal.ID {
			continue
		}
		sum += AttractionTo(focal, p, attribute, rangeAttributes)
	}
	return sum
}

// TotalAttraction sums the focal person's attraction toward other over every
// attribute the focal person has a preference for.
func TotalAttraction(focal, other population.Person, rangeAttributes int) float64 {
	var sum float64
	for _, name := range focal.Preferences.Names() {
		sum += AttractionTo(focal, other, name, rangeAttributes)
	}
	return sum
}
