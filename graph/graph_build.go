package graph

import (
	"strconv"
	"time"

	"github.com/teranos/auragraph/errors"
	grapherr "github.com/teranos/auragraph/graph/error"
	"github.com/teranos/auragraph/internal/util"
	"github.com/teranos/auragraph/logger"
	"github.com/teranos/auragraph/population"
	"github.com/teranos/auragraph/scoring"
)

// Build converts the shown population into nodes and links around the focal person.
//
// Persons come first in shown order, then attribute nodes in person order and
// sorted attribute order. Links follow the same order: direct links, then
// indirect links between same-named attributes, then person links.
//
// A focal id missing from shown is recoverable: the returned graph is empty,
// carries the error in Meta.Error, and the error is a *grapherror.GraphError.
func (b *Builder) Build(shown []population.Person, focalID int, opts Options) (*Graph, error) {
	start := time.Now()
	g := newGraph(focalID, opts)

	focalIdx := -1
	for i, p := range shown {
		if p.ID == focalID {
			focalIdx = i
			break
		}
	}
	if focalIdx < 0 {
		ge := grapherr.FromError(errors.Wrapf(errors.ErrFocalNotFound, "id %d", focalID)).
			WithContext(logger.FieldFocalID, focalID).
			WithContext("shown", len(shown))
		if len(shown) == 0 {
			ge = ge.WithContext("reason", grapherr.SubcategoryPopulationEmpty)
		}
		g.Meta.Error = ge.ToGraphMeta()
		b.logger.Warnw("Focal person not in shown population", ge.ToLogFields()...)
		return g, ge
	}
	focal := shown[focalIdx]

	scorer, err := scoring.New(opts.Graph.Scoring, scoring.Params{
		RangeAttributes: opts.RangeAttributes,
		MaxAuraRadius:   opts.Graph.MaxAuraRadius,
		Proportion:      opts.Proportion,
		OpacityAura:     opts.Graph.OpacityAura,
		FullColor:       opts.Graph.FullColorAttributeNodes,
	})
	if err != nil {
		ge := grapherr.FromError(err).WithSubcategory(grapherr.SubcategoryScoringModel)
		ge.Category = grapherr.CategoryScoring
		g.Meta.Error = ge.ToGraphMeta()
		return g, ge
	}
	rel := scorer.Relate(focal, shown)
	g.Meta.Config["scoring"] = rel.Model

	b.addPersonNodes(g, shown, focalID, rel, opts)
	b.addAttributeNodes(g, shown, rel, opts)
	b.addDirectLinks(g, shown, rel)
	b.addIndirectLinks(g, opts)
	if opts.Graph.PersonLinks {
		b.addPersonLinks(g, shown, focalID, rel, opts)
	}

	dropped := dropDanglingLinks(g)
	if dropped > 0 {
		b.logger.Warnw("Dropped links with unknown endpoints", logger.FieldDropped, dropped)
	}

	g.Meta.Stats.DroppedEdges = dropped
	g.Meta.Stats.TotalNodes = len(g.Nodes)
	g.Meta.Stats.TotalEdges = len(g.Links)
	g.Meta.NodeTypes = collectNodeTypeInfo(g.Nodes)
	g.Meta.RelationshipTypes = collectRelationshipTypeInfo(g.Links)

	b.logger.Debugw("Graph built",
		logger.FieldFocalID, focalID,
		logger.FieldNodes, len(g.Nodes),
		logger.FieldEdges, len(g.Links),
		"scoring", rel.Model,
		logger.FieldDurationMS, time.Since(start).Milliseconds())

	return g, nil
}

func newGraph(focalID int, opts Options) *Graph {
	return &Graph{
		Nodes: []Node{},
		Links: []Link{},
		Meta: Meta{
			GeneratedAt: time.Now(),
			Config: map[string]string{
				"scoring":    opts.Graph.Scoring,
				"focal_id":   strconv.Itoa(focalID),
				"proportion": strconv.FormatFloat(opts.Proportion, 'f', -1, 64),
			},
			NodeTypes:         []NodeTypeInfo{},
			RelationshipTypes: []RelationshipTypeInfo{},
		},
	}
}

func (b *Builder) addPersonNodes(g *Graph, shown []population.Person, focalID int, rel scoring.Relations, opts Options) {
	full := opts.Graph.MaxAuraRadius * opts.Proportion
	for _, p := range shown {
		pr := rel.Persons[p.ID]
		n := Node{
			ID:        PersonNodeID(p.ID),
			Kind:      KindPerson,
			Value:     full * peerSizeFactor,
			Color:     pr.Color,
			AuraColor: pr.AuraColor,
			PersonID:  util.Ptr(p.ID),
		}
		if p.ID == focalID {
			n.Value = full
			n.Focal = true
		}
		if opts.Graph.ShowNames {
			n.Label = p.Name
		}
		g.Nodes = append(g.Nodes, n)
	}
	g.Meta.Stats.Persons = len(shown)
}

func (b *Builder) addAttributeNodes(g *Graph, shown []population.Person, rel scoring.Relations, opts Options) {
	size := opts.Graph.ValueAttributeNode * opts.Proportion
	for _, p := range shown {
		pr := rel.Persons[p.ID]
		for _, name := range p.Attributes.Names() {
			ar := pr.Attributes[name]
			n := Node{
				ID:             AttributeNodeID(p.ID, name),
				Kind:           KindAttribute,
				Value:          size,
				Color:          ar.Color,
				AuraColor:      ar.AuraColor,
				Group:          name,
				OwnerPersonID:  util.Ptr(p.ID),
				Attribute:      name,
				AttributeValue: p.Attributes[name],
			}
			if opts.Graph.ShowNames {
				n.Label = name
			}
			g.Nodes = append(g.Nodes, n)
			g.Meta.Stats.AttributeNodes++
		}
	}
}

func (b *Builder) addDirectLinks(g *Graph, shown []population.Person, rel scoring.Relations) {
	for _, p := range shown {
		pr := rel.Persons[p.ID]
		for _, name := range p.Attributes.Names() {
			g.Links = append(g.Links, Link{
				Source:   PersonNodeID(p.ID),
				Target:   AttributeNodeID(p.ID, name),
				Type:     LinkDirect,
				Distance: pr.Attributes[name].Distance,
				Strength: directLinkStrength,
			})
			g.Meta.Stats.DirectEdges++
		}
	}
}

// addIndirectLinks connects every pair of same-named attribute nodes owned by
// different persons.
func (b *Builder) addIndirectLinks(g *Graph, opts Options) {
	distance := opts.Graph.AttributesDistanceProportion * opts.Graph.MaxAuraRadius * opts.Proportion
	strength := indirectStrength(opts)

	for i := range g.Nodes {
		a := &g.Nodes[i]
		if a.Kind != KindAttribute {
			continue
		}
		for j := i + 1; j < len(g.Nodes); j++ {
			c := &g.Nodes[j]
			if c.Kind != KindAttribute || c.Attribute != a.Attribute || *c.OwnerPersonID == *a.OwnerPersonID {
				continue
			}
			g.Links = append(g.Links, Link{
				Source:   a.ID,
				Target:   c.ID,
				Type:     LinkIndirect,
				Distance: distance,
				Indirect: true,
				Strength: strength,
			})
			g.Meta.Stats.IndirectEdges++
		}
	}
}

func (b *Builder) addPersonLinks(g *Graph, shown []population.Person, focalID int, rel scoring.Relations, opts Options) {
	strength := indirectStrength(opts)
	for _, p := range shown {
		if p.ID == focalID {
			continue
		}
		g.Links = append(g.Links, Link{
			Source:   PersonNodeID(focalID),
			Target:   PersonNodeID(p.ID),
			Type:     LinkPerson,
			Distance: rel.Persons[p.ID].Distance * opts.Graph.PersonsDistanceProportion,
			Indirect: true,
			Strength: strength,
		})
		g.Meta.Stats.PersonEdges++
	}
}

func indirectStrength(opts Options) float64 {
	if opts.IndirectLinkStrength > 0 {
		return opts.IndirectLinkStrength
	}
	return defaultIndirectLinkStrength
}

// dropDanglingLinks removes links whose endpoints are not emitted nodes and
// returns how many were removed. Distances that are not finite become 0.
func dropDanglingLinks(g *Graph) int {
	ids := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		ids[n.ID] = struct{}{}
	}

	kept := g.Links[:0]
	for _, l := range g.Links {
		_, okSource := ids[l.Source]
		_, okTarget := ids[l.Target]
		if !okSource || !okTarget || l.Source == l.Target {
			continue
		}
		l.Distance = util.Finite(l.Distance, 0)
		kept = append(kept, l)
	}
	dropped := len(g.Links) - len(kept)
	g.Links = kept
	return dropped
}
