package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/teranos/auragraph/config"
	"github.com/teranos/auragraph/display"
	"github.com/teranos/auragraph/engine"
	"github.com/teranos/auragraph/errors"
	grapherr "github.com/teranos/auragraph/graph/error"
	"github.com/teranos/auragraph/layout"
	"github.com/teranos/auragraph/sym"
)

// ShellCmd represents the shell command
var ShellCmd = &cobra.Command{
	Use:   "shell",
	Short: sym.Shell + " Interactive session",
	Long: sym.Shell + ` shell - Drive one session interactively

Every command that changes the population or the graph configuration
rebuilds the graph and warm-starts a new simulation. The simulation only
advances on "tick". With --watch, saving the active config file rebuilds
the graph as well. Type "help" for the command list.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, cfg, err := newSession()
		if err != nil {
			return err
		}
		defer eng.Stop()

		if shellWatch {
			watcher, err := watchConfig(eng)
			if err != nil {
				return err
			}
			defer watcher.Stop()
		}

		pterm.DefaultHeader.Println(sym.Shell + " auragraph shell")
		return NewShell(eng, cfg, os.Stdout).Run(cmd.Context(), os.Stdin)
	},
}

// Shell executes one command line at a time against an engine.
type Shell struct {
	eng *engine.Engine
	cfg *config.Config
	out io.Writer
}

type shellCommand struct {
	usage string
	help  string
	run   func(s *Shell, args []string) error
}

var (
	shellCommands map[string]shellCommand
	shellWatch    bool
)

func init() {
	ShellCmd.Flags().BoolVar(&shellWatch, "watch", false, "Rebuild when the active config file changes")

	shellCommands = map[string]shellCommand{
		"generate":   {"generate [count] [percent] [attribute...]", "generate a new population", (*Shell).generate},
		"filter":     {"filter <min> [attribute...]", "show persons defining at least min of the attributes", (*Shell).filter},
		"persons":    {"persons", "list the shown population", (*Shell).persons},
		"person":     {"person <id>", "show one person's preferences", (*Shell).person},
		"update":     {"update <id> <attribute> <value>", "set one attribute value of a person", (*Shell).update},
		"focus":      {"focus <id>", "move the focal person", (*Shell).focus},
		"set":        {"set <key> <value>", "change a graph setting: " + strings.Join(config.GraphKeys(), ", "), (*Shell).set},
		"proportion": {"proportion <p>", "set the distance proportion", (*Shell).proportion},
		"breakpoint": {"breakpoint <name>", "set the proportion from " + strings.Join(config.BreakpointNames(), ", "), (*Shell).breakpoint},
		"resize":     {"resize <width> <height>", "change the viewport", (*Shell).resize},
		"graph":      {"graph", "show the current graph", (*Shell).graph},
		"tick":       {"tick [n]", "advance the simulation n frames", (*Shell).tick},
		"restart":    {"restart", "re-energize the simulation", (*Shell).restart},
		"drag":       {"drag <node> <x> <y>", "grab a node at a pointer position", (*Shell).drag},
		"move":       {"move <node> <x> <y>", "move the grabbed node", (*Shell).move},
		"release":    {"release <node>", "let go of the grabbed node", (*Shell).release},
		"frame":      {"frame", "show current positions", (*Shell).frame},
		"stop":       {"stop", "stop the simulation", (*Shell).stop},
		"help":       {"help", "show this list", (*Shell).help},
	}
}

// NewShell creates a shell writing to out.
func NewShell(eng *engine.Engine, cfg *config.Config, out io.Writer) *Shell {
	return &Shell{eng: eng, cfg: cfg, out: out}
}

// Run reads commands from in until EOF, quit, or ctx is done.
// Command errors are printed and the loop continues.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, sym.Shell+" ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		quit, err := s.Exec(scanner.Text())
		if err != nil {
			s.printError(err)
		}
		if quit {
			return nil
		}
	}
}

// Exec runs one command line. It reports quit for "quit" and "exit".
func (s *Shell) Exec(line string) (quit bool, err error) {
	args, err := shellquote.Split(line)
	if err != nil {
		return false, errors.Wrap(errors.ErrInvalidRequest, err.Error())
	}
	if len(args) == 0 {
		return false, nil
	}

	name := strings.ToLower(args[0])
	switch name {
	case "quit", "exit":
		return true, nil
	}

	c, ok := shellCommands[name]
	if !ok {
		return false, errors.WithHint(
			errors.Wrapf(errors.ErrInvalidRequest, "unknown command %q", args[0]),
			"type help for the command list")
	}
	return false, c.run(s, args[1:])
}

func (s *Shell) printError(err error) {
	fmt.Fprintf(s.out, "error: %v\n", err)
	if ge := grapherr.FromError(err); !ge.IsCategory(grapherr.CategoryInternal) {
		fmt.Fprintf(s.out, "  %s\n", ge.ToUIMessage())
	}
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(s.out, "  hint: %s\n", hint)
	}
}

// rebuilt reports the outcome of a command that rebuilt the graph.
// A missing focal person leaves an empty graph and is only a warning.
func (s *Shell) rebuilt(err error) error {
	if err != nil && errors.Is(err, errors.ErrFocalNotFound) {
		fmt.Fprintf(s.out, "warning: %v\n", err)
		return nil
	}
	if err != nil {
		return err
	}
	if g := s.eng.CurrentGraph(); g != nil {
		fmt.Fprintf(s.out, "%s %d nodes, %d links\n", sym.Graph, len(g.Nodes), len(g.Links))
	}
	return nil
}

func (s *Shell) sim() (*layout.Simulation, error) {
	sim := s.eng.Simulation()
	if sim == nil {
		return nil, errors.WithHint(errors.Wrap(errors.ErrInvalidRequest, "no simulation"), "generate a population first")
	}
	return sim, nil
}

func needArgs(args []string, n int, usage string) error {
	if len(args) < n {
		return errors.Wrapf(errors.ErrInvalidRequest, "usage: %s", usage)
	}
	return nil
}

func (s *Shell) generate(args []string) error {
	count, percent := s.cfg.Population.Count, s.cfg.Population.PercentDefinedAttributes
	var err error
	if len(args) > 0 {
		if count, err = parseCount(args[0]); err != nil {
			return err
		}
	}
	if len(args) > 1 {
		if percent, err = parseCount(args[1]); err != nil {
			return err
		}
	}
	var attributes []string
	if len(args) > 2 {
		attributes = args[2:]
	}

	_, err = s.eng.GeneratePopulation(count, percent, attributes)
	if err = s.rebuilt(err); err != nil {
		return err
	}
	return s.persons(nil)
}

func (s *Shell) filter(args []string) error {
	if err := needArgs(args, 1, shellCommands["filter"].usage); err != nil {
		return err
	}
	minMatching, err := parseCount(args[0])
	if err != nil {
		return err
	}
	attributes := args[1:]
	if len(attributes) == 0 {
		attributes = s.eng.Generator().Selected()
	}
	_, err = s.eng.ApplyFilter(minMatching, attributes)
	if err = s.rebuilt(err); err != nil {
		return err
	}
	return s.persons(nil)
}

func (s *Shell) persons(_ []string) error {
	return display.RenderTableTo(s.out, display.PersonsTable(s.eng.Shown(), s.eng.Generator().Selected()))
}

func (s *Shell) person(args []string) error {
	if err := needArgs(args, 1, shellCommands["person"].usage); err != nil {
		return err
	}
	id, err := parseCount(args[0])
	if err != nil {
		return err
	}
	p, err := s.eng.Person(id)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s %s (#%d)\n", sym.Person, p.Name, p.ID)
	return display.RenderTableTo(s.out, display.PreferencesTable(p))
}

func (s *Shell) update(args []string) error {
	if err := needArgs(args, 3, shellCommands["update"].usage); err != nil {
		return err
	}
	id, err := parseCount(args[0])
	if err != nil {
		return err
	}
	value, err := parseCount(args[2])
	if err != nil {
		return err
	}
	_, err = s.eng.UpdatePersonAttribute(id, args[1], value)
	return s.rebuilt(err)
}

func (s *Shell) focus(args []string) error {
	if err := needArgs(args, 1, shellCommands["focus"].usage); err != nil {
		return err
	}
	id, err := parseCount(args[0])
	if err != nil {
		return err
	}
	_, err = s.eng.Focus(id)
	return s.rebuilt(err)
}

func (s *Shell) set(args []string) error {
	if err := needArgs(args, 2, shellCommands["set"].usage); err != nil {
		return err
	}
	_, err := s.eng.Set(args[0], strings.Join(args[1:], " "))
	return s.rebuilt(err)
}

func (s *Shell) proportion(args []string) error {
	if err := needArgs(args, 1, shellCommands["proportion"].usage); err != nil {
		return err
	}
	p, err := parseFloat(args[0])
	if err != nil {
		return err
	}
	_, err = s.eng.SetProportion(p)
	return s.rebuilt(err)
}

func (s *Shell) breakpoint(args []string) error {
	if err := needArgs(args, 1, shellCommands["breakpoint"].usage); err != nil {
		return err
	}
	_, err := s.eng.SetBreakpoint(args[0])
	return s.rebuilt(err)
}

func (s *Shell) resize(args []string) error {
	if err := needArgs(args, 2, shellCommands["resize"].usage); err != nil {
		return err
	}
	w, err := parseFloat(args[0])
	if err != nil {
		return err
	}
	h, err := parseFloat(args[1])
	if err != nil {
		return err
	}
	return s.eng.Resize(w, h)
}

func (s *Shell) graph(_ []string) error {
	g := s.eng.CurrentGraph()
	if g == nil {
		return errors.WithHint(errors.Wrap(errors.ErrInvalidRequest, "no graph"), "generate a population first")
	}
	if err := display.RenderTableTo(s.out, display.StatsTable(g)); err != nil {
		return err
	}
	return display.RenderTableTo(s.out, display.NodesTable(g))
}

func (s *Shell) tick(args []string) error {
	sim, err := s.sim()
	if err != nil {
		return err
	}
	n := 1
	if len(args) > 0 {
		if n, err = parseCount(args[0]); err != nil {
			return err
		}
	}
	for i := 0; i < n; i++ {
		stepped, err := sim.Tick()
		if err != nil {
			return err
		}
		if !stepped {
			break
		}
	}
	fmt.Fprintln(s.out, display.FrameLine(sim.Frame()))
	return nil
}

func (s *Shell) restart(_ []string) error {
	sim, err := s.sim()
	if err != nil {
		return err
	}
	return sim.Restart()
}

func (s *Shell) pointer(args []string, usage string) (string, layout.Point, error) {
	if err := needArgs(args, 3, usage); err != nil {
		return "", layout.Point{}, err
	}
	x, err := parseFloat(args[1])
	if err != nil {
		return "", layout.Point{}, err
	}
	y, err := parseFloat(args[2])
	if err != nil {
		return "", layout.Point{}, err
	}
	return args[0], layout.Point{X: x, Y: y}, nil
}

func (s *Shell) drag(args []string) error {
	sim, err := s.sim()
	if err != nil {
		return err
	}
	id, p, err := s.pointer(args, shellCommands["drag"].usage)
	if err != nil {
		return err
	}
	return sim.DragStart(id, p)
}

func (s *Shell) move(args []string) error {
	sim, err := s.sim()
	if err != nil {
		return err
	}
	id, p, err := s.pointer(args, shellCommands["move"].usage)
	if err != nil {
		return err
	}
	return sim.DragMove(id, p)
}

func (s *Shell) release(args []string) error {
	sim, err := s.sim()
	if err != nil {
		return err
	}
	if err := needArgs(args, 1, shellCommands["release"].usage); err != nil {
		return err
	}
	return sim.DragEnd(args[0])
}

func (s *Shell) frame(_ []string) error {
	sim, err := s.sim()
	if err != nil {
		return err
	}
	f := sim.Frame()
	fmt.Fprintln(s.out, display.FrameLine(f))
	return display.RenderTableTo(s.out, display.PositionsTable(f))
}

func (s *Shell) stop(_ []string) error {
	s.eng.Stop()
	return nil
}

func (s *Shell) help(_ []string) error {
	names := make([]string, 0, len(shellCommands))
	for name := range shellCommands {
		names = append(names, name)
	}
	sort.Strings(names)

	data := pterm.TableData{{"Command", "Description"}}
	for _, name := range names {
		c := shellCommands[name]
		data = append(data, []string{c.usage, c.help})
	}
	data = append(data, []string{"quit", "leave the shell"})
	return display.RenderTableTo(s.out, data)
}
