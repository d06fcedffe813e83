package layout

import (
	"math"

	"github.com/teranos/auragraph/graph"
)

// Force accumulates into body velocities, or shifts positions, once per tick.
type Force interface {
	Apply(a *Arena, alpha float64)
}

// ForceFunc adapts a function to Force.
type ForceFunc func(a *Arena, alpha float64)

func (f ForceFunc) Apply(a *Arena, alpha float64) { f(a, alpha) }

// Registered force names, in registration order.
const (
	ForceLink       = "link"
	ForceCharge     = "charge"
	ForceCluster    = "cluster"
	ForceStiffness  = "stiffness"
	ForceCollide    = "collide"
	ForceCenter     = "center"
	ForceAttributes = "attribute"
)

type namedForce struct {
	name  string
	force Force
}

// jiggler returns a tiny random offset for coincident nodes.
type jiggler func() float64

// LinkForce pulls linked bodies toward each edge's resting distance. The
// correction is split between the endpoints by degree, as in d3-force.
type LinkForce struct {
	jiggle jiggler
}

func (f LinkForce) Apply(a *Arena, alpha float64) {
	for _, e := range a.Links {
		s, t := &a.Nodes[e.Source], &a.Nodes[e.Target]
		x := t.X + t.VX - s.X - s.VX
		y := t.Y + t.VY - s.Y - s.VY
		if x == 0 {
			x = f.jiggle()
		}
		if y == 0 {
			y = f.jiggle()
		}
		l := math.Sqrt(x*x + y*y)
		l = (l - e.Distance) / l * alpha * e.Strength
		x *= l
		y *= l
		t.VX -= x * e.bias
		t.VY -= y * e.bias
		s.VX += x * (1 - e.bias)
		s.VY += y * (1 - e.bias)
	}
}

// ManyBody applies a pairwise inverse-distance force to every pair of bodies.
// Negative strength repels. The pairwise pass is quadratic, which is fine for
// populations of at most a few hundred nodes.
type ManyBody struct {
	Strength    float64
	DistanceMin float64
	jiggle      jiggler
}

func (f ManyBody) Apply(a *Arena, alpha float64) {
	if f.Strength == 0 {
		return
	}
	dmin2 := f.DistanceMin * f.DistanceMin
	for i := range a.Nodes {
		n := &a.Nodes[i]
		for j := range a.Nodes {
			if i == j {
				continue
			}
			o := &a.Nodes[j]
			x, y := o.X-n.X, o.Y-n.Y
			if x == 0 {
				x = f.jiggle()
			}
			if y == 0 {
				y = f.jiggle()
			}
			l := x*x + y*y
			if l < dmin2 {
				l = math.Sqrt(dmin2 * l)
			}
			w := f.Strength * alpha / l
			n.VX += x * w
			n.VY += y * w
		}
	}
}

// ClusterForce pulls bodies of the same group toward the group centroid.
type ClusterForce struct {
	Strength float64
}

func (f ClusterForce) Apply(a *Arena, alpha float64) {
	if f.Strength == 0 {
		return
	}
	type centroid struct{ x, y, n float64 }
	groups := make(map[string]*centroid)
	for i := range a.Nodes {
		n := &a.Nodes[i]
		if n.Group == "" {
			continue
		}
		c := groups[n.Group]
		if c == nil {
			c = &centroid{}
			groups[n.Group] = c
		}
		c.x += n.X
		c.y += n.Y
		c.n++
	}

	k := f.Strength * alpha
	for i := range a.Nodes {
		n := &a.Nodes[i]
		c := groups[n.Group]
		if c == nil || c.n < 2 {
			continue
		}
		n.VX += (c.x/c.n - n.X) * k
		n.VY += (c.y/c.n - n.Y) * k
	}
}

// CollideForce keeps bodies from overlapping. Each body's radius is its
// display value times RadiusFactor.
type CollideForce struct {
	RadiusFactor float64
	Strength     float64
	jiggle       jiggler
}

func (f CollideForce) Apply(a *Arena, _ float64) {
	if f.RadiusFactor <= 0 {
		return
	}
	for i := range a.Nodes {
		n := &a.Nodes[i]
		ri := n.Radius * f.RadiusFactor
		ri2 := ri * ri
		xi, yi := n.X+n.VX, n.Y+n.VY

		for j := i + 1; j < len(a.Nodes); j++ {
			o := &a.Nodes[j]
			rj := o.Radius * f.RadiusFactor
			r := ri + rj
			x := xi - o.X - o.VX
			y := yi - o.Y - o.VY
			l := x*x + y*y
			if l >= r*r {
				continue
			}
			if x == 0 {
				x = f.jiggle()
				l += x * x
			}
			if y == 0 {
				y = f.jiggle()
				l += y * y
			}
			l = math.Sqrt(l)
			l = (r - l) / l * f.Strength
			x *= l
			y *= l
			rj2 := rj * rj
			share := rj2 / (ri2 + rj2)
			n.VX += x * share
			n.VY += y * share
			o.VX -= x * (1 - share)
			o.VY -= y * (1 - share)
		}
	}
}

// CenterForce translates every body so the mean position moves toward the
// viewport center. It shifts positions, not velocities.
type CenterForce struct {
	Strength float64
}

func (f CenterForce) Apply(a *Arena, _ float64) {
	if len(a.Nodes) == 0 {
		return
	}
	var sx, sy float64
	for i := range a.Nodes {
		sx += a.Nodes[i].X
		sy += a.Nodes[i].Y
	}
	n := float64(len(a.Nodes))
	sx = (sx/n - a.Width/2) * f.Strength
	sy = (sy/n - a.Height/2) * f.Strength
	for i := range a.Nodes {
		a.Nodes[i].X -= sx
		a.Nodes[i].Y -= sy
	}
}

// AttributePull nudges every person toward the centroid of its linked
// attribute nodes by (centroid - position) * alpha * Strength.
type AttributePull struct {
	Strength float64
}

func (f AttributePull) Apply(a *Arena, alpha float64) {
	for i := range a.Nodes {
		n := &a.Nodes[i]
		if n.Kind != graph.KindPerson {
			continue
		}
		var fx, fy float64
		count := 0
		for _, j := range a.neighbors[i] {
			o := &a.Nodes[j]
			if o.Kind != graph.KindAttribute {
				continue
			}
			fx += o.X
			fy += o.Y
			count++
		}
		if count == 0 {
			continue
		}
		n.VX += (fx/float64(count) - n.X) * alpha * f.Strength
		n.VY += (fy/float64(count) - n.Y) * alpha * f.Strength
	}
}
