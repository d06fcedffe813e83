package layout

import (
	"github.com/teranos/auragraph/config"
	"go.uber.org/zap"
)

// Point is a position in viewport coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Options configure a Simulation.
type Options struct {
	Width  float64
	Height float64

	AlphaDecay      float64 // per-tick multiplier of the distance to the alpha target
	AlphaMin        float64 // integration halts below this alpha
	VelocityDecay   float64 // fraction of velocity lost per tick
	DragAlphaTarget float64

	StrengthGraph   float64
	StiffnessGraph  float64
	ClusterAffinity float64
	ChargeFactor    float64
	StiffnessFactor float64
	ClusterFactor   float64
	CenterStrength  float64
	AttributePull   float64

	PinOnCreate bool
	Seed        int64 // 0 = seed from clock

	// Previous holds positions from an earlier simulation, by node id.
	Previous map[string]Point

	Logger *zap.SugaredLogger
}

// DefaultOptions returns the d3-force defaults for a viewport.
func DefaultOptions(width, height float64) Options {
	return Options{
		Width:           width,
		Height:          height,
		AlphaDecay:      0.99,
		AlphaMin:        0.01,
		VelocityDecay:   0.4,
		DragAlphaTarget: 0.05,
		StrengthGraph:   30,
		StiffnessGraph:  1,
		ClusterAffinity: 0.5,
		ChargeFactor:    1.5,
		StiffnessFactor: 0.8,
		ClusterFactor:   1.2,
		CenterStrength:  1,
		AttributePull:   0.1,
		PinOnCreate:     true,
	}
}

// OptionsFromConfig combines the layout and graph tuning with a viewport.
func OptionsFromConfig(l config.LayoutConfig, g config.GraphConfig, width, height float64) Options {
	return Options{
		Width:           width,
		Height:          height,
		AlphaDecay:      l.AlphaDecay,
		AlphaMin:        l.AlphaMin,
		VelocityDecay:   l.VelocityDecay,
		DragAlphaTarget: l.DragAlphaTarget,
		StrengthGraph:   g.StrengthGraph,
		StiffnessGraph:  g.StiffnessGraph,
		ClusterAffinity: g.ClusterAffinity,
		ChargeFactor:    l.ChargeFactor,
		StiffnessFactor: l.StiffnessFactor,
		ClusterFactor:   l.ClusterFactor,
		CenterStrength:  l.CenterStrength,
		AttributePull:   l.AttributePull,
		PinOnCreate:     l.PinOnCreate,
		Seed:            l.Seed,
	}
}

// sanitize replaces out-of-range values with defaults.
func (o Options) sanitize() Options {
	d := DefaultOptions(o.Width, o.Height)
	if o.Width <= 0 {
		o.Width = 1
	}
	if o.Height <= 0 {
		o.Height = 1
	}
	if o.AlphaDecay <= 0 || o.AlphaDecay >= 1 {
		o.AlphaDecay = d.AlphaDecay
	}
	if o.AlphaMin <= 0 {
		o.AlphaMin = d.AlphaMin
	}
	if o.VelocityDecay < 0 || o.VelocityDecay > 1 {
		o.VelocityDecay = d.VelocityDecay
	}
	if o.DragAlphaTarget < 0 || o.DragAlphaTarget > 1 {
		o.DragAlphaTarget = d.DragAlphaTarget
	}
	return o
}
