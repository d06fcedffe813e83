// Package population generates persons with randomized attributes and
// preference rules, and maintains the created and shown populations.
package population

import (
	"github.com/teranos/auragraph/internal/util"
)

// Sign is the comparison a preference applies to another person's attribute value.
type Sign string

const (
	SignGreater Sign = "GREATER" // attracted to values above the preferred value
	SignLesser  Sign = "LESSER"  // attracted to values below the preferred value
	SignExact   Sign = "EXACT"   // attracted only to the preferred value
	SignCloser  Sign = "CLOSER"  // attraction falls off with distance from the preferred value
)

// Signs lists every sign in a stable order for uniform random choice.
var Signs = []Sign{SignGreater, SignLesser, SignExact, SignCloser}

// Preference is one person's rule for a single attribute.
type Preference struct {
	Value  int  `json:"value"`
	Sign   Sign `json:"sign"`
	Weight int  `json:"weight"`
}

// AttributeSet maps attribute name to value for the attributes a person has defined.
type AttributeSet map[string]int

// Names returns the defined attribute names in sorted order.
func (a AttributeSet) Names() []string {
	return util.SortedKeys(a)
}

// Get returns the value and whether the attribute is defined.
func (a AttributeSet) Get(name string) (int, bool) {
	v, ok := a[name]
	return v, ok
}

// PreferenceSet maps attribute name to preference. It covers every selected attribute.
type PreferenceSet map[string]Preference

// Names returns the preference names in sorted order.
func (p PreferenceSet) Names() []string {
	return util.SortedKeys(p)
}

// Person is one member of the population.
type Person struct {
	ID                 int           `json:"id"`
	Name               string        `json:"name"`
	Attributes         AttributeSet  `json:"attributes"`
	Preferences        PreferenceSet `json:"preferences"`
	PersonalAuraRadius float64       `json:"personal_aura_radius"`
}

// DefinedCount returns how many attributes the person has defined.
func (p Person) DefinedCount() int {
	return len(p.Attributes)
}

// CountDefined returns how many of names the person has defined.
func (p Person) CountDefined(names []string) int {
	n := 0
	for _, name := range util.Dedupe(names) {
		if _, ok := p.Attributes[name]; ok {
			n++
		}
	}
	return n
}

// Clone returns a deep copy so callers cannot mutate generator state.
func (p Person) Clone() Person {
	out := p
	out.Attributes = make(AttributeSet, len(p.Attributes))
	for k, v := range p.Attributes {
		out.Attributes[k] = v
	}
	out.Preferences = make(PreferenceSet, len(p.Preferences))
	for k, v := range p.Preferences {
		out.Preferences[k] = v
	}
	return out
}

// auraRadius scales maxAura by the fraction of selected attributes that are defined.
func auraRadius(maxAura float64, defined, selected int) float64 {
	if selected == 0 {
		return 0
	}
	return maxAura * float64(defined) / float64(selected)
}

func clonePersons(in []*Person) []Person {
	out := make([]Person, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}
