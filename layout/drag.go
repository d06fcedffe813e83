package layout

import (
	"math"

	"github.com/teranos/auragraph/errors"
	"github.com/teranos/auragraph/logger"
)

// DragStart pins a node to the pointer and keeps the simulation hot while
// the pointer is held: the alpha target rises to DragAlphaTarget and alpha
// is raised to at least that target. Rest pins are released.
// Only one node can be dragged at a time.
func (s *Simulation) DragStart(id string, pointer Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.lookup(id)
	if err != nil {
		return err
	}
	if err := checkPointer(pointer); err != nil {
		return err
	}
	if s.dragging >= 0 && s.dragging != i {
		return errors.Wrapf(errors.ErrInvalidRequest, "node %s is already being dragged", s.arena.Nodes[s.dragging].ID)
	}

	s.releaseRestPins()
	b := &s.arena.Nodes[i]
	b.FX, b.FY, b.Fixed, b.pin = pointer.X, pointer.Y, true, pinDrag
	s.dragging = i
	s.alphaTarget = s.opts.DragAlphaTarget
	s.alpha = max(s.alpha, s.alphaTarget)
	s.state = StateDragging

	s.logger.Debugw("Drag started", logger.FieldNodeID, id, "x", pointer.X, "y", pointer.Y)
	return nil
}

// DragMove moves the pin of the dragged node.
func (s *Simulation) DragMove(id string, pointer Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.lookupDragged(id)
	if err != nil {
		return err
	}
	if err := checkPointer(pointer); err != nil {
		return err
	}
	b := &s.arena.Nodes[i]
	b.FX, b.FY = pointer.X, pointer.Y
	s.alpha = max(s.alpha, s.alphaTarget)
	return nil
}

// DragEnd releases the dragged node and lowers the alpha target to 0 so the
// cooling schedule resumes.
func (s *Simulation) DragEnd(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.lookupDragged(id)
	if err != nil {
		return err
	}
	b := &s.arena.Nodes[i]
	b.Fixed, b.pin = false, pinNone
	s.dragging = -1
	s.alphaTarget = 0
	s.state = StateRunning

	s.logger.Debugw("Drag ended", logger.FieldNodeID, id, logger.FieldAlpha, s.alpha)
	return nil
}

// Dragging returns the id of the node being dragged, if any.
func (s *Simulation) Dragging() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dragging < 0 {
		return "", false
	}
	return s.arena.Nodes[s.dragging].ID, true
}

// lookup resolves a node id on a live simulation. Callers hold s.mu.
func (s *Simulation) lookup(id string) (int, error) {
	if s.state == StateStopped {
		return -1, errors.ErrSimulationStopped
	}
	i, ok := s.arena.index[id]
	if !ok {
		return -1, errors.Wrapf(errors.ErrUnknownNode, "%q", id)
	}
	return i, nil
}

func (s *Simulation) lookupDragged(id string) (int, error) {
	i, err := s.lookup(id)
	if err != nil {
		return -1, err
	}
	if s.dragging != i {
		return -1, errors.Wrapf(errors.ErrNotDragging, "%q", id)
	}
	return i, nil
}

// checkPointer rejects coordinates a pin could never be placed at.
func checkPointer(p Point) error {
	if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
		return errors.Wrapf(errors.ErrInvalidRequest, "pointer (%g, %g) is not finite", p.X, p.Y)
	}
	return nil
}
