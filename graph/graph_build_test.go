package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/auragraph/config"
	"github.com/teranos/auragraph/errors"
	grapherr "github.com/teranos/auragraph/graph/error"
	"github.com/teranos/auragraph/population"
	"go.uber.org/zap/zaptest"
)

func testOptions() Options {
	opts := Options{
		Graph:           config.Default().Graph,
		Proportion:      1,
		RangeAttributes: 10,
	}
	opts.Graph.PersonLinks = true
	return opts
}

func testPersons() []population.Person {
	prefs := population.PreferenceSet{
		"trust":    {Value: 3, Sign: population.SignGreater, Weight: 2},
		"humor":    {Value: 5, Sign: population.SignCloser, Weight: 4},
		"ambition": {Value: 2, Sign: population.SignExact, Weight: 3},
	}
	return []population.Person{
		{ID: 0, Name: "Ada (21)", Attributes: population.AttributeSet{"trust": 4, "humor": 6}, Preferences: prefs},
		{ID: 1, Name: "Bruno (25)", Attributes: population.AttributeSet{"trust": 8, "humor": 5, "ambition": 2}, Preferences: prefs},
		{ID: 2, Name: "Chen (19)", Attributes: population.AttributeSet{"trust": 1}, Preferences: prefs},
		{ID: 3, Name: "Dario (28)", Attributes: population.AttributeSet{}, Preferences: prefs},
	}
}

func assertLinksResolve(t *testing.T, g *Graph) {
	t.Helper()
	ids := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		require.False(t, ids[n.ID], "duplicate node id %s", n.ID)
		ids[n.ID] = true
	}
	for _, l := range g.Links {
		assert.True(t, ids[l.Source], "source %s resolves", l.Source)
		assert.True(t, ids[l.Target], "target %s resolves", l.Target)
	}
}

func TestBuild_NodesAndLinks(t *testing.T) {
	b := NewBuilder(zaptest.NewLogger(t).Sugar())
	opts := testOptions()
	opts.Graph.PersonLinks = false

	g, err := b.Build(testPersons(), 0, opts)
	require.NoError(t, err)

	// 4 persons + 2 + 3 + 1 attributes
	require.Len(t, g.Nodes, 10)
	assertLinksResolve(t, g)

	assert.Equal(t, []string{"0", "1", "2", "3", "0_humor", "0_trust", "1_ambition", "1_humor", "1_trust", "2_trust"}, g.NodeIDs())

	focal, ok := g.Node("0")
	require.True(t, ok)
	assert.True(t, focal.Focal)
	assert.Equal(t, KindPerson, focal.Kind)
	assert.Equal(t, 200.0, focal.Value)
	assert.Equal(t, "Ada (21)", focal.Label)
	assert.Equal(t, "rgba(255, 0, 166, 1)", focal.Color)

	peer, _ := g.Node("2")
	assert.Equal(t, 100.0, peer.Value)
	assert.False(t, peer.Focal)

	attr, ok := g.Node("1_trust")
	require.True(t, ok)
	assert.Equal(t, KindAttribute, attr.Kind)
	assert.Equal(t, 4.0, attr.Value)
	require.NotNil(t, attr.OwnerPersonID)
	assert.Equal(t, 1, *attr.OwnerPersonID)
	assert.Equal(t, "trust", attr.Group)
	assert.Equal(t, 8, attr.AttributeValue)
	assert.Nil(t, attr.PersonID)

	// direct: 6, indirect: trust 3 pairs, humor 1 pair
	assert.Equal(t, 6, g.Meta.Stats.DirectEdges)
	assert.Equal(t, 4, g.Meta.Stats.IndirectEdges)
	assert.Zero(t, g.Meta.Stats.PersonEdges)
	assert.Equal(t, 10, g.Meta.Stats.TotalEdges)
	assert.Equal(t, 6, g.Meta.Stats.AttributeNodes)

	for _, l := range g.Links {
		switch l.Type {
		case LinkDirect:
			assert.False(t, l.Indirect)
			assert.Equal(t, 1.0, l.Strength)
			assert.GreaterOrEqual(t, l.Distance, 0.0)
			assert.LessOrEqual(t, l.Distance, 200.0)
		case LinkIndirect:
			assert.True(t, l.Indirect)
			assert.Equal(t, 0.1, l.Strength)
			assert.InDelta(t, 0.7*200, l.Distance, 1e-9)
		}
	}

	direct := g.Links[0]
	assert.Equal(t, "0", direct.Source)
	assert.Equal(t, "0_humor", direct.Target)
	assert.InDelta(t, 120.0, direct.Distance, 1e-9, "humor 6 of 10")
}

func TestBuild_PersonLinks(t *testing.T) {
	b := NewBuilder(zaptest.NewLogger(t).Sugar())
	opts := testOptions()
	opts.IndirectLinkStrength = 0.2

	g, err := b.Build(testPersons(), 1, opts)
	require.NoError(t, err)
	assertLinksResolve(t, g)

	var personLinks []Link
	for _, l := range g.Links {
		if l.Type == LinkPerson {
			personLinks = append(personLinks, l)
		}
	}
	require.Len(t, personLinks, 3)
	for _, l := range personLinks {
		assert.Equal(t, "1", l.Source)
		assert.True(t, l.Indirect)
		assert.Equal(t, 0.2, l.Strength)
	}
	// Dario shares nothing with Bruno: (1 - 0) * 200 * 2.5
	assert.InDelta(t, 500.0, personLinks[2].Distance, 1e-9)
	assert.Equal(t, 3, g.Meta.Stats.PersonEdges)
}

func TestBuild_ProportionScalesEverything(t *testing.T) {
	b := NewBuilder(zaptest.NewLogger(t).Sugar())
	opts := testOptions()
	opts.Proportion = 0.5

	g, err := b.Build(testPersons(), 0, opts)
	require.NoError(t, err)

	focal, _ := g.Node("0")
	assert.Equal(t, 100.0, focal.Value)
	attr, _ := g.Node("0_trust")
	assert.Equal(t, 2.0, attr.Value)
	for _, l := range g.Links {
		if l.Type == LinkDirect {
			assert.LessOrEqual(t, l.Distance, 100.0)
		}
	}
	assert.Equal(t, "0.5", g.Meta.Config["proportion"])
}

func TestBuild_HiddenNames(t *testing.T) {
	b := NewBuilder(zaptest.NewLogger(t).Sugar())
	opts := testOptions()
	opts.Graph.ShowNames = false

	g, err := b.Build(testPersons(), 0, opts)
	require.NoError(t, err)
	for _, n := range g.Nodes {
		assert.Empty(t, n.Label)
	}
	assert.Equal(t, 4, g.Meta.Stats.IndirectEdges, "indirect links match on attribute, not label")
}

func TestBuild_AttractionModel(t *testing.T) {
	b := NewBuilder(zaptest.NewLogger(t).Sugar())
	opts := testOptions()
	opts.Graph.Scoring = config.ScoringAttraction

	g, err := b.Build(testPersons(), 0, opts)
	require.NoError(t, err)
	assertLinksResolve(t, g)
	assert.Equal(t, "attraction", g.Meta.Config["scoring"])

	bruno, _ := g.Node("1")
	assert.Equal(t, "rgba(255, 0, 0, 1)", bruno.Color, "strongest attraction")
	for _, l := range g.Links {
		assert.GreaterOrEqual(t, l.Distance, 0.0)
	}
}

func TestBuild_MissingFocal(t *testing.T) {
	b := NewBuilder(zaptest.NewLogger(t).Sugar())

	g, err := b.Build(testPersons(), 42, testOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrFocalNotFound))

	var ge *grapherr.GraphError
	require.True(t, errors.As(err, &ge))
	assert.True(t, ge.IsSubcategory(grapherr.SubcategoryGraphFocalNotFound))

	require.NotNil(t, g)
	assert.True(t, g.Empty())
	assert.Empty(t, g.Links)
	assert.Equal(t, "graph", g.Meta.Error["category"])

	g, err = b.Build(nil, 0, testOptions())
	assert.Error(t, err)
	assert.True(t, g.Empty())
}

func TestBuild_MetaTypes(t *testing.T) {
	b := NewBuilder(zaptest.NewLogger(t).Sugar())
	g, err := b.Build(testPersons(), 0, testOptions())
	require.NoError(t, err)

	require.Len(t, g.Meta.NodeTypes, 2)
	assert.Equal(t, KindPerson, g.Meta.NodeTypes[0].Type)
	assert.Equal(t, 4, g.Meta.NodeTypes[0].Count)
	assert.Equal(t, 6, g.Meta.NodeTypes[1].Count)

	counts := map[string]int{}
	for _, rt := range g.Meta.RelationshipTypes {
		counts[rt.Type] = rt.Count
	}
	assert.Equal(t, map[string]int{LinkDirect: 6, LinkIndirect: 4, LinkPerson: 3}, counts)
	assert.Equal(t, LinkDirect, g.Meta.RelationshipTypes[0].Type, "most common first")
}

func TestBuild_GeneratedPopulation(t *testing.T) {
	gen := population.NewGenerator(population.Options{
		Params: population.Params{RangeAttributes: 10, RangeWeight: 5, MaxAuraRadius: 200},
		Seed:   99,
	})
	attrs := []string{"trust", "humor", "ambition"}
	persons, err := gen.Generate(10, 70, attrs)
	require.NoError(t, err)
	require.Len(t, persons, 10)

	b := NewBuilder(zaptest.NewLogger(t).Sugar())
	for _, model := range []string{config.ScoringSimilarity, config.ScoringAttraction} {
		opts := testOptions()
		opts.Graph.Scoring = model

		g, err := b.Build(persons, 0, opts)
		require.NoError(t, err, model)

		want := len(persons)
		for _, p := range persons {
			want += len(p.Attributes)
		}
		assert.Len(t, g.Nodes, want, model)
		assertLinksResolve(t, g)
		assert.Zero(t, g.Meta.Stats.DroppedEdges)

		_, ok := g.Node("0")
		assert.True(t, ok)
		for name := range persons[0].Attributes {
			_, ok := g.Node(AttributeNodeID(0, name))
			assert.True(t, ok, "%s node for person 0", name)
		}
		for _, l := range g.Links {
			if l.Source == "0" && l.Type == LinkDirect {
				assert.GreaterOrEqual(t, l.Distance, 0.0)
				assert.LessOrEqual(t, l.Distance, 200.0)
			}
		}
	}
}

func TestDropDanglingLinks(t *testing.T) {
	g := &Graph{
		Nodes: []Node{{ID: "0"}, {ID: "0_trust"}},
		Links: []Link{
			{Source: "0", Target: "0_trust", Distance: 5},
			{Source: "0", Target: "9_trust"},
			{Source: "0", Target: "0"},
		},
	}
	assert.Equal(t, 2, dropDanglingLinks(g))
	require.Len(t, g.Links, 1)
	assert.Equal(t, 5.0, g.Links[0].Distance)
}

func TestParseNodeID(t *testing.T) {
	id, attr, ok := ParseNodeID(AttributeNodeID(12, "trust"))
	assert.True(t, ok)
	assert.Equal(t, 12, id)
	assert.Equal(t, "trust", attr)

	id, attr, ok = ParseNodeID(PersonNodeID(3))
	assert.True(t, ok)
	assert.Equal(t, 3, id)
	assert.Empty(t, attr)

	_, _, ok = ParseNodeID("x_trust")
	assert.False(t, ok)
	_, _, ok = ParseNodeID("4_")
	assert.False(t, ok)
}
