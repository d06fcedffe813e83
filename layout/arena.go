package layout

import (
	"github.com/teranos/auragraph/graph"
	"github.com/teranos/auragraph/internal/util"
)

type pin uint8

const (
	pinNone pin = iota
	pinRest     // set at creation, released by Restart or DragStart
	pinDrag     // follows the pointer
)

// Body is one node in the arena.
type Body struct {
	ID     string
	Kind   graph.NodeKind
	Group  string  // cluster group, empty for persons
	Radius float64 // node display value

	X, Y   float64
	VX, VY float64
	FX, FY float64 // pin position, meaningful when Fixed
	Fixed  bool

	pin pin
}

// Edge connects two bodies by index.
type Edge struct {
	Source   int
	Target   int
	Distance float64
	Strength float64
	Indirect bool
	bias     float64
}

// Arena holds the bodies and edges of one simulation. Edges address bodies
// by index; nothing holds a pointer into Nodes across ticks.
type Arena struct {
	Nodes  []Body
	Links  []Edge
	Width  float64
	Height float64

	index     map[string]int
	neighbors [][]int
}

func newArena(g *graph.Graph, width, height float64) (*Arena, int) {
	a := &Arena{
		Nodes:  make([]Body, len(g.Nodes)),
		Links:  make([]Edge, 0, len(g.Links)),
		Width:  width,
		Height: height,
		index:  make(map[string]int, len(g.Nodes)),
	}
	for i, n := range g.Nodes {
		a.Nodes[i] = Body{ID: n.ID, Kind: n.Kind, Group: n.Group, Radius: n.Value}
		a.index[n.ID] = i
	}

	dropped := 0
	degree := make([]int, len(a.Nodes))
	for _, l := range g.Links {
		s, okS := a.index[l.Source]
		t, okT := a.index[l.Target]
		if !okS || !okT || s == t {
			dropped++
			continue
		}
		a.Links = append(a.Links, Edge{Source: s, Target: t, Distance: l.Distance, Strength: l.Strength, Indirect: l.Indirect})
		degree[s]++
		degree[t]++
	}

	a.neighbors = make([][]int, len(a.Nodes))
	for i := range a.Links {
		e := &a.Links[i]
		e.bias = float64(degree[e.Source]) / float64(degree[e.Source]+degree[e.Target])
		a.neighbors[e.Source] = append(a.neighbors[e.Source], e.Target)
		a.neighbors[e.Target] = append(a.neighbors[e.Target], e.Source)
	}
	return a, dropped
}

// Index returns the arena index of a node id.
func (a *Arena) Index(id string) (int, bool) {
	i, ok := a.index[id]
	return i, ok
}

// Neighbors returns the indices linked to node i.
func (a *Arena) Neighbors(i int) []int {
	return a.neighbors[i]
}

func (a *Arena) clamp(b *Body) {
	b.X = clampCoord(b.X, a.Width)
	b.Y = clampCoord(b.Y, a.Height)
}

func clampCoord(v, limit float64) float64 {
	return util.Clamp(util.Finite(v, limit/2), 0, limit)
}
