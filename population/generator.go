package population

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/teranos/auragraph/errors"
	"github.com/teranos/auragraph/internal/notify"
	"github.com/teranos/auragraph/internal/util"
	"github.com/teranos/auragraph/logger"
	"go.uber.org/zap"
)

// Params are the ranges generation draws from.
type Params struct {
	RangeAttributes int     // values are drawn from [1, RangeAttributes]
	RangeWeight     int     // weights are drawn from [1, RangeWeight]
	MaxAuraRadius   float64 // aura of a person with every attribute defined
}

// Options configures a Generator.
type Options struct {
	Catalog Catalog
	Params  Params
	Seed    int64 // 0 = seed from clock

	// Attributes and Percent are the selection remembered before the first Generate.
	// Empty Attributes means the catalog qualities.
	Attributes []string
	Percent    int

	Logger *zap.SugaredLogger
}

// Generator owns the created population and the shown view over it.
// Persons are held by pointer so the shown view and the created superset
// observe the same attribute edits.
type Generator struct {
	mu        sync.Mutex
	rng       *rand.Rand
	catalog   Catalog
	params    Params
	created   []*Person
	shown     []*Person
	baseCount int // size of the shown set after the last Generate, before filters
	selected  []string
	percent   int
	subs      notify.Registry[[]Person]
	logger    *zap.SugaredLogger
}

// NewGenerator creates an empty generator.
func NewGenerator(opts Options) *Generator {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if len(opts.Catalog.Names) == 0 || len(opts.Catalog.Qualities) == 0 {
		opts.Catalog = DefaultCatalog()
	}
	selected := util.Dedupe(opts.Attributes)
	if len(selected) == 0 {
		selected = append([]string(nil), opts.Catalog.Qualities...)
	}
	if opts.Params.RangeAttributes < 1 {
		opts.Params.RangeAttributes = 1
	}
	if opts.Params.RangeWeight < 1 {
		opts.Params.RangeWeight = 1
	}

	return &Generator{
		rng:      rand.New(rand.NewSource(seed)),
		catalog:  opts.Catalog,
		params:   opts.Params,
		selected: selected,
		percent:  util.Clamp(opts.Percent, 0, 100),
		logger:   logger.AddPopulationSymbol(logger.OrComponent(opts.Logger, "population")),
	}
}

// SetParams changes the ranges used by subsequent generation.
// Existing persons keep their values.
func (g *Generator) SetParams(p Params) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if p.RangeAttributes < 1 {
		p.RangeAttributes = 1
	}
	if p.RangeWeight < 1 {
		p.RangeWeight = 1
	}
	g.params = p
}

// Params returns the current generation ranges.
func (g *Generator) Params() Params {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.params
}

// Generate produces the shown population for count persons.
//
// Existing persons are reused when possible:
//  1. a different attribute set regenerates everything with ids 0..count-1
//  2. a different percent regenerates everything
//  3. count equal to the created size shows all created persons
//  4. a larger count appends count-len(created) new persons with continuing ids
//  5. a smaller count shows the first count created persons
//
// A count below 2 or an empty attribute list leaves all state untouched.
func (g *Generator) Generate(count, percent int, attributes []string) ([]Person, error) {
	g.mu.Lock()

	if count < 2 {
		shown := clonePersons(g.shown)
		g.mu.Unlock()
		return shown, errors.WithHintf(errors.Wrapf(errors.ErrPopulationTooSmall, "requested %d", count), "request 2 or more persons")
	}
	attributes = util.Dedupe(attributes)
	if len(attributes) == 0 {
		shown := clonePersons(g.shown)
		g.mu.Unlock()
		return shown, errors.ErrNoAttributes
	}
	percent = util.Clamp(percent, 0, 100)

	var mode string
	switch {
	case !util.SameSet(attributes, g.selected):
		mode = "regenerate_attributes"
		g.regenerate(count, percent, attributes)
	case percent != g.percent:
		mode = "regenerate_percent"
		g.regenerate(count, percent, attributes)
	case count == len(g.created):
		mode = "reuse"
		g.shown = append([]*Person(nil), g.created...)
	case count > len(g.created):
		mode = "append"
		for i := len(g.created); i < count; i++ {
			g.created = append(g.created, g.newPerson(i, percent, g.selected))
		}
		g.shown = append([]*Person(nil), g.created...)
	default:
		mode = "truncate"
		g.shown = append([]*Person(nil), g.created[:count]...)
	}
	g.baseCount = count

	g.logger.Debugw("Population generated",
		logger.FieldOperation, mode,
		logger.FieldCount, count,
		logger.FieldPercent, percent,
		"created", len(g.created))

	shown := clonePersons(g.shown)
	g.mu.Unlock()

	g.subs.Publish(copyPersons(shown))
	return shown, nil
}

// regenerate replaces the created population. Callers hold g.mu.
func (g *Generator) regenerate(count, percent int, attributes []string) {
	g.selected = append([]string(nil), attributes...)
	g.percent = percent
	g.created = make([]*Person, 0, count)
	for i := 0; i < count; i++ {
		g.created = append(g.created, g.newPerson(i, percent, g.selected))
	}
	g.shown = append([]*Person(nil), g.created...)
}

// newPerson draws one person. Callers hold g.mu.
func (g *Generator) newPerson(id, percent int, attributes []string) *Person {
	name := g.catalog.Names[g.rng.Intn(len(g.catalog.Names))]
	p := &Person{
		ID:          id,
		Name:        fmt.Sprintf("%s (%d)", name, g.randomNumber(10)+18),
		Attributes:  make(AttributeSet),
		Preferences: make(PreferenceSet, len(attributes)),
	}

	for _, attr := range attributes {
		if g.randomChance(percent) {
			p.Attributes[attr] = g.randomNumber(g.params.RangeAttributes)
		}
		p.Preferences[attr] = Preference{
			Value:  g.randomNumber(g.params.RangeAttributes),
			Sign:   Signs[g.rng.Intn(len(Signs))],
			Weight: g.randomNumber(g.params.RangeWeight),
		}
	}

	p.PersonalAuraRadius = auraRadius(g.params.MaxAuraRadius, len(p.Attributes), len(attributes))
	return p
}

// randomNumber returns a uniform integer in [1, n].
func (g *Generator) randomNumber(n int) int {
	if n < 1 {
		return 1
	}
	return g.rng.Intn(n) + 1
}

// randomChance returns true with probability percent/100.
func (g *Generator) randomChance(percent int) bool {
	return g.rng.Intn(100) < percent
}

// ApplyFilter narrows the shown population to persons having at least
// minMatching of the given attributes defined. The filter always applies to
// the population from the last Generate, so filters do not compound.
func (g *Generator) ApplyFilter(minMatching int, attributes []string) []Person {
	g.mu.Lock()

	base := g.created
	if g.baseCount < len(base) {
		base = base[:g.baseCount]
	}

	shown := make([]*Person, 0, len(base))
	for _, p := range base {
		if p.CountDefined(attributes) >= minMatching {
			shown = append(shown, p)
		}
	}
	g.shown = shown

	g.logger.Debugw("Population filtered",
		"min_matching", minMatching,
		"attributes", attributes,
		logger.FieldCount, len(shown))

	out := clonePersons(g.shown)
	g.mu.Unlock()

	g.subs.Publish(copyPersons(out))
	return out
}

// UpdatePersonAttribute sets one attribute value on a created person.
// The value is clamped to [0, RangeAttributes]; the attribute must be selected.
func (g *Generator) UpdatePersonAttribute(id int, attribute string, value int) (Person, error) {
	g.mu.Lock()

	if id < 0 || id >= len(g.created) {
		g.mu.Unlock()
		return Person{}, errors.Wrapf(errors.ErrPersonNotFound, "id %d", id)
	}
	p := g.created[id]
	if _, ok := p.Preferences[attribute]; !ok {
		g.mu.Unlock()
		return Person{}, errors.Wrapf(errors.ErrUnknownAttribute, "%q is not selected", attribute)
	}

	p.Attributes[attribute] = util.Clamp(value, 0, g.params.RangeAttributes)
	p.PersonalAuraRadius = auraRadius(g.params.MaxAuraRadius, len(p.Attributes), len(p.Preferences))

	g.logger.Debugw("Person attribute updated",
		logger.FieldPersonID, id,
		logger.FieldAttribute, attribute,
		"value", p.Attributes[attribute])

	updated := p.Clone()
	shown := clonePersons(g.shown)
	g.mu.Unlock()

	g.subs.Publish(shown)
	return updated, nil
}

// Shown returns a copy of the shown population.
func (g *Generator) Shown() []Person {
	g.mu.Lock()
	defer g.mu.Unlock()
	return clonePersons(g.shown)
}

// Created returns a copy of the created superset.
func (g *Generator) Created() []Person {
	g.mu.Lock()
	defer g.mu.Unlock()
	return clonePersons(g.created)
}

// Person returns a copy of one created person.
func (g *Generator) Person(id int) (Person, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if id < 0 || id >= len(g.created) {
		return Person{}, false
	}
	return g.created[id].Clone(), true
}

// Selected returns the remembered attribute selection.
func (g *Generator) Selected() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.selected...)
}

// Percent returns the remembered percentage of defined attributes.
func (g *Generator) Percent() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.percent
}

// Catalog returns the vocabulary in use.
func (g *Generator) Catalog() Catalog {
	return g.catalog
}

// Subscribe registers fn to receive the shown population after every change.
func (g *Generator) Subscribe(fn func([]Person)) func() {
	return g.subs.Subscribe(fn)
}

// copyPersons deep-copies an already detached slice so subscribers and the
// caller never share maps.
func copyPersons(in []Person) []Person {
	out := make([]Person, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}
