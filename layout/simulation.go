// Package layout positions graph nodes with an iterative force-directed
// simulation in the manner of d3-force: named forces accumulate into
// velocities, positions are integrated with velocity decay, free nodes are
// clamped to the viewport, and alpha cools toward a target every tick.
//
// A Simulation is driven externally, one Tick per frame. Every method is
// safe for concurrent use and a tick always runs to completion before any
// other call observes or mutates node state.
package layout

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/teranos/auragraph/errors"
	"github.com/teranos/auragraph/graph"
	"github.com/teranos/auragraph/logger"
	"go.uber.org/zap"
)

// State is the simulation lifecycle state.
type State string

const (
	StateIdle     State = "idle"     // cooled or not yet energized, ticks are no-ops
	StateRunning  State = "running"  // integrating
	StateDragging State = "dragging" // integrating with a node pinned to the pointer
	StateStopped  State = "stopped"  // terminal, every command fails
)

const (
	initialRadius = 10
	jiggleScale   = 1e-6
)

var initialAngle = math.Pi * (3 - math.Sqrt(5))

// Simulation owns the arena of one graph snapshot.
type Simulation struct {
	mu sync.Mutex

	id    string
	arena *Arena
	opts  Options

	forces []namedForce

	alpha       float64
	alphaTarget float64
	tick        int
	state       State
	dragging    int // arena index, -1 when no drag is active

	rng    *rand.Rand
	logger *zap.SugaredLogger
}

// New creates an idle simulation for g. Nodes whose id appears in
// opts.Previous start at that position; the rest are seeded on a
// phyllotaxis spiral around the viewport center. With PinOnCreate every
// node starts pinned where it was placed, so nothing moves until Restart
// or DragStart.
func New(g *graph.Graph, opts Options) *Simulation {
	opts = opts.sanitize()
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	arena, dropped := newArena(g, opts.Width, opts.Height)
	s := &Simulation{
		id:       uuid.NewString(),
		arena:    arena,
		opts:     opts,
		state:    StateIdle,
		dragging: -1,
		rng:      rand.New(rand.NewSource(seed)),
	}
	s.logger = logger.ChildLogger(logger.OrComponent(opts.Logger, "layout"), logger.FieldSimulationID, s.id)

	warm := s.seedPositions(opts.Previous, opts.PinOnCreate)
	s.registerDefaultForces()

	s.logger.Debugw("Simulation created",
		logger.FieldNodes, len(arena.Nodes),
		logger.FieldEdges, len(arena.Links),
		logger.FieldDropped, dropped,
		"warm_started", warm)
	return s
}

// seedPositions places every body and returns how many were warm-started.
func (s *Simulation) seedPositions(previous map[string]Point, pinOnCreate bool) int {
	a := s.arena
	cx, cy := a.Width/2, a.Height/2
	warm := 0
	for i := range a.Nodes {
		b := &a.Nodes[i]
		if p, ok := previous[b.ID]; ok {
			b.X, b.Y = p.X, p.Y
			warm++
		} else {
			r := initialRadius * math.Sqrt(0.5+float64(i))
			angle := float64(i) * initialAngle
			b.X = cx + r*math.Cos(angle)
			b.Y = cy + r*math.Sin(angle)
		}
		a.clamp(b)
		if pinOnCreate {
			b.FX, b.FY, b.Fixed, b.pin = b.X, b.Y, true, pinRest
		}
	}
	return warm
}

func (s *Simulation) registerDefaultForces() {
	o := s.opts
	j := s.jiggle
	s.forces = []namedForce{
		{ForceLink, LinkForce{jiggle: j}},
		{ForceCharge, ManyBody{Strength: -o.StrengthGraph * o.ChargeFactor, DistanceMin: 1, jiggle: j}},
		{ForceCluster, ClusterForce{Strength: o.ClusterAffinity * o.ClusterFactor}},
		{ForceStiffness, ManyBody{Strength: -o.StiffnessGraph * o.StiffnessFactor, DistanceMin: 1, jiggle: j}},
		{ForceCollide, CollideForce{RadiusFactor: o.ClusterAffinity, Strength: 1, jiggle: j}},
		{ForceCenter, CenterForce{Strength: o.CenterStrength}},
		{ForceAttributes, AttributePull{Strength: o.AttributePull}},
	}
}

func (s *Simulation) jiggle() float64 {
	return (s.rng.Float64() - 0.5) * jiggleScale
}

// ID identifies this simulation in logs.
func (s *Simulation) ID() string {
	return s.id
}

// Force registers f under name. A force already registered under the same
// name is replaced in place, keeping its position in the order. A nil force
// removes the name.
func (s *Simulation) Force(name string, f Force) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateStopped {
		return errors.ErrSimulationStopped
	}

	for i, nf := range s.forces {
		if nf.name != name {
			continue
		}
		if f == nil {
			s.forces = append(s.forces[:i], s.forces[i+1:]...)
		} else {
			s.forces[i].force = f
		}
		return nil
	}
	if f != nil {
		s.forces = append(s.forces, namedForce{name, f})
	}
	return nil
}

// Forces returns the registered force names in application order.
func (s *Simulation) Forces() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, len(s.forces))
	for i, nf := range s.forces {
		names[i] = nf.name
	}
	return names
}

// Tick advances the simulation one step. It reports whether a step was
// integrated; an idle simulation does nothing. After the step, the
// simulation goes idle once alpha and the alpha target are both below
// AlphaMin.
func (s *Simulation) Tick() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateStopped:
		return false, errors.ErrSimulationStopped
	case StateIdle:
		return false, nil
	}

	s.step()

	if s.alpha < s.opts.AlphaMin && s.alphaTarget < s.opts.AlphaMin && s.dragging < 0 {
		s.state = StateIdle
		s.logger.Debugw("Simulation settled", logger.FieldTick, s.tick, logger.FieldAlpha, s.alpha)
	}
	return true, nil
}

// step runs every force, then integrates and clamps. Callers hold s.mu.
func (s *Simulation) step() {
	s.alpha += (s.alphaTarget - s.alpha) * (1 - s.opts.AlphaDecay)
	s.tick++

	a := s.arena
	for _, nf := range s.forces {
		nf.force.Apply(a, s.alpha)
	}

	keep := 1 - s.opts.VelocityDecay
	for i := range a.Nodes {
		b := &a.Nodes[i]
		if b.Fixed {
			b.X, b.Y = b.FX, b.FY
			b.VX, b.VY = 0, 0
			continue
		}
		b.VX *= keep
		b.VY *= keep
		if math.IsNaN(b.VX) || math.IsInf(b.VX, 0) {
			b.VX = 0
		}
		if math.IsNaN(b.VY) || math.IsInf(b.VY, 0) {
			b.VY = 0
		}
		b.X += b.VX
		b.Y += b.VY
		a.clamp(b)
	}
}

// Restart re-energizes the simulation: alpha returns to 1 and the rest pins
// set at creation are released. A drag in progress keeps its pin.
func (s *Simulation) Restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateStopped {
		return errors.ErrSimulationStopped
	}

	s.releaseRestPins()
	s.alpha = 1
	if s.dragging >= 0 {
		s.state = StateDragging
	} else {
		s.state = StateRunning
	}
	s.logger.Debugw("Simulation restarted", logger.FieldState, s.state)
	return nil
}

// SetAlpha sets the current energy, clamped to [0, 1].
func (s *Simulation) SetAlpha(alpha float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateStopped {
		return errors.ErrSimulationStopped
	}
	s.alpha = max(0, min(alpha, 1))
	return nil
}

func (s *Simulation) releaseRestPins() {
	for i := range s.arena.Nodes {
		b := &s.arena.Nodes[i]
		if b.pin == pinRest {
			b.Fixed, b.pin = false, pinNone
		}
	}
}

// Stop halts the simulation permanently. Further commands return
// ErrSimulationStopped; Frame still reports the last positions.
func (s *Simulation) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateStopped {
		return
	}
	s.state = StateStopped
	s.dragging = -1
	s.logger.Debugw("Simulation stopped", logger.FieldTick, s.tick)
}

// Resize changes the viewport. Center and clamp bounds follow on the next tick.
func (s *Simulation) Resize(width, height float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateStopped {
		return errors.ErrSimulationStopped
	}
	if width <= 0 || height <= 0 {
		return errors.Wrapf(errors.ErrInvalidRequest, "viewport %gx%g", width, height)
	}
	s.arena.Width, s.arena.Height = width, height
	s.opts.Width, s.opts.Height = width, height

	// Settled nodes would otherwise stay outside a smaller arena until the
	// next restart. The pointer owns a dragged node.
	for i := range s.arena.Nodes {
		b := &s.arena.Nodes[i]
		switch b.pin {
		case pinDrag:
			continue
		case pinRest:
			b.FX = clampCoord(b.FX, width)
			b.FY = clampCoord(b.FY, height)
			b.X, b.Y = b.FX, b.FY
		default:
			s.arena.clamp(b)
		}
	}
	return nil
}

// State returns the lifecycle state.
func (s *Simulation) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Alpha returns the current energy.
func (s *Simulation) Alpha() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alpha
}

// AlphaTarget returns the energy floor alpha cools toward.
func (s *Simulation) AlphaTarget() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alphaTarget
}

// Ticks returns how many steps have been integrated.
func (s *Simulation) Ticks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick
}

// Positions returns every node position by id, for warm-starting a successor.
func (s *Simulation) Positions() map[string]Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Point, len(s.arena.Nodes))
	for _, b := range s.arena.Nodes {
		out[b.ID] = Point{X: b.X, Y: b.Y}
	}
	return out
}

// Position returns one node's position.
func (s *Simulation) Position(id string) (Point, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.arena.index[id]
	if !ok {
		return Point{}, false
	}
	b := s.arena.Nodes[i]
	return Point{X: b.X, Y: b.Y}, true
}

// Size returns the viewport.
func (s *Simulation) Size() (float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.arena.Width, s.arena.Height
}
