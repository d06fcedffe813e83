package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/auragraph/config"
	"github.com/teranos/auragraph/engine"
	"github.com/teranos/auragraph/errors"
	"github.com/teranos/auragraph/layout"
	"go.uber.org/zap/zaptest"
)

func newTestShell(t *testing.T) (*Shell, *engine.Engine, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.Population.Seed = 11
	cfg.Layout.Seed = 3

	eng, err := engine.New(engine.Options{Config: cfg, Logger: zaptest.NewLogger(t).Sugar()})
	require.NoError(t, err)
	t.Cleanup(eng.Stop)

	var out bytes.Buffer
	return NewShell(eng, cfg, &out), eng, &out
}

func mustExec(t *testing.T, s *Shell, line string) {
	t.Helper()
	quit, err := s.Exec(line)
	require.NoError(t, err, line)
	require.False(t, quit, line)
}

func TestShell_GenerateAndTick(t *testing.T) {
	s, eng, out := newTestShell(t)

	mustExec(t, s, "generate 6 70 trust humor ambition")
	assert.Len(t, eng.Shown(), 6)
	assert.Equal(t, []string{"trust", "humor", "ambition"}, eng.Generator().Selected())
	require.NotNil(t, eng.Simulation())

	mustExec(t, s, "tick 3")
	assert.Equal(t, 3, eng.Simulation().Ticks())
	assert.Contains(t, out.String(), "tick 3")
}

func TestShell_GenerateTooSmall(t *testing.T) {
	s, eng, _ := newTestShell(t)

	_, err := s.Exec("generate 1")
	assert.True(t, errors.Is(err, errors.ErrPopulationTooSmall))
	assert.Nil(t, eng.Simulation())
}

func TestShell_UnknownCommandAndQuit(t *testing.T) {
	s, _, _ := newTestShell(t)

	_, err := s.Exec("teleport 3")
	assert.True(t, errors.IsInvalidRequestError(err))

	quit, err := s.Exec("  ")
	assert.NoError(t, err)
	assert.False(t, quit)

	for _, line := range []string{"quit", "exit", "QUIT"} {
		quit, err := s.Exec(line)
		assert.NoError(t, err)
		assert.True(t, quit, line)
	}
}

func TestShell_QuotedArguments(t *testing.T) {
	s, eng, _ := newTestShell(t)
	mustExec(t, s, "generate 4")

	mustExec(t, s, `set scoring "attraction"`)
	assert.Equal(t, config.ScoringAttraction, eng.Store().Graph().Scoring)

	_, err := s.Exec(`set scoring "unterminated`)
	assert.True(t, errors.IsInvalidRequestError(err))
}

func TestShell_FocusOutsidePopulation(t *testing.T) {
	s, eng, out := newTestShell(t)
	mustExec(t, s, "generate 4")

	mustExec(t, s, "focus 99")
	assert.Contains(t, out.String(), "warning:")
	assert.True(t, eng.CurrentGraph().Empty())

	mustExec(t, s, "focus 1")
	assert.False(t, eng.CurrentGraph().Empty())
}

func TestShell_Drag(t *testing.T) {
	s, eng, _ := newTestShell(t)
	mustExec(t, s, "generate 4")
	sim := eng.Simulation()

	mustExec(t, s, "drag 0 100 120")
	id, ok := sim.Dragging()
	require.True(t, ok)
	assert.Equal(t, "0", id)

	mustExec(t, s, "move 0 200 150")
	mustExec(t, s, "tick")
	p, ok := sim.Position("0")
	require.True(t, ok)
	assert.Equal(t, layout.Point{X: 200, Y: 150}, p)

	_, err := s.Exec("release 1")
	assert.True(t, errors.Is(err, errors.ErrNotDragging))

	mustExec(t, s, "release 0")
	_, ok = sim.Dragging()
	assert.False(t, ok)
}

func TestShell_ArgumentErrors(t *testing.T) {
	s, _, _ := newTestShell(t)

	_, err := s.Exec("tick")
	assert.True(t, errors.IsInvalidRequestError(err), "no simulation yet")

	mustExec(t, s, "generate 4")
	for _, line := range []string{"filter", "tick many", "drag 0 1", "resize 0 10", "proportion wide"} {
		_, err := s.Exec(line)
		assert.True(t, errors.IsInvalidRequestError(err), line)
	}

	_, err = s.Exec("person 40")
	assert.True(t, errors.IsNotFoundError(err))

	mustExec(t, s, "person 2.9")
}

func TestShell_StopIsInert(t *testing.T) {
	s, eng, _ := newTestShell(t)
	mustExec(t, s, "generate 4")
	mustExec(t, s, "stop")

	_, err := s.Exec("tick")
	assert.True(t, errors.Is(err, errors.ErrSimulationStopped))

	mustExec(t, s, "focus 2")
	assert.Equal(t, layout.StateRunning, eng.Simulation().State())
}

func TestShell_Run(t *testing.T) {
	s, eng, out := newTestShell(t)

	in := strings.NewReader("generate 4\nbogus\nhelp\nquit\ntick\n")
	require.NoError(t, s.Run(context.Background(), in))

	assert.Contains(t, out.String(), `unknown command "bogus"`)
	assert.Contains(t, out.String(), "type help for the command list")
	assert.Contains(t, out.String(), "leave the shell")
	assert.Equal(t, 0, eng.Simulation().Ticks(), "lines after quit are not run")
}
