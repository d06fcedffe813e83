package layout

// Frame is a snapshot of one tick, detached from the simulation.
type Frame struct {
	SimulationID string      `json:"simulation_id"`
	Tick         int         `json:"tick"`
	Alpha        float64     `json:"alpha"`
	State        State       `json:"state"`
	Width        float64     `json:"width"`
	Height       float64     `json:"height"`
	Nodes        []FrameNode `json:"nodes"`
	Links        []FrameLink `json:"links"`
}

// FrameNode is a node position.
type FrameNode struct {
	ID    string  `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Fixed bool    `json:"fixed,omitempty"`
}

// FrameLink is an edge with endpoints read after the tick's positions are final.
type FrameLink struct {
	Source   string  `json:"source"`
	Target   string  `json:"target"`
	X1       float64 `json:"x1"`
	Y1       float64 `json:"y1"`
	X2       float64 `json:"x2"`
	Y2       float64 `json:"y2"`
	Indirect bool    `json:"is_indirect,omitempty"`
}

// Frame returns the current positions.
func (s *Simulation) Frame() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.arena
	f := Frame{
		SimulationID: s.id,
		Tick:         s.tick,
		Alpha:        s.alpha,
		State:        s.state,
		Width:        a.Width,
		Height:       a.Height,
		Nodes:        make([]FrameNode, len(a.Nodes)),
		Links:        make([]FrameLink, len(a.Links)),
	}
	for i, b := range a.Nodes {
		f.Nodes[i] = FrameNode{ID: b.ID, X: b.X, Y: b.Y, Fixed: b.Fixed}
	}
	for i, e := range a.Links {
		src, dst := a.Nodes[e.Source], a.Nodes[e.Target]
		f.Links[i] = FrameLink{
			Source: src.ID, Target: dst.ID,
			X1: src.X, Y1: src.Y, X2: dst.X, Y2: dst.Y,
			Indirect: e.Indirect,
		}
	}
	return f
}

// Settled reports whether the frame was taken from a cooled simulation.
func (f Frame) Settled() bool {
	return f.State == StateIdle || f.State == StateStopped
}
