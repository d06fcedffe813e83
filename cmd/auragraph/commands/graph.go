package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/teranos/auragraph/config"
	"github.com/teranos/auragraph/display"
	"github.com/teranos/auragraph/engine"
	"github.com/teranos/auragraph/errors"
	"github.com/teranos/auragraph/sym"
)

// GraphCmd represents the graph command
var GraphCmd = &cobra.Command{
	Use:   "graph",
	Short: sym.Graph + " Build the relationship graph around a focal person",
	Long: sym.Graph + ` graph - Score every shown person against the focal person and build
the node-link graph: one person node per person, one attribute node per
defined attribute, direct links person to attribute and indirect links
between attribute nodes of the same name.

Examples:
  auragraph graph --focal 2
  auragraph graph --set scoring=attraction --set strength_graph=60
  auragraph graph --breakpoint XL --format json`,
	RunE: runGraph,
}

var (
	graphPopulation populationFlags
	graphFocal      int
	graphSettings   []string
	graphBreakpoint string
	graphFormat     string
)

func init() {
	graphPopulation.register(GraphCmd.Flags())
	GraphCmd.Flags().IntVar(&graphFocal, "focal", 0, "Focal person id (default from graph.focal_person_id)")
	GraphCmd.Flags().StringArrayVar(&graphSettings, "set", nil, "Graph setting as key=value, repeatable")
	GraphCmd.Flags().StringVar(&graphBreakpoint, "breakpoint", "", "Viewport breakpoint: "+strings.Join(config.BreakpointNames(), ", "))
	GraphCmd.Flags().StringVar(&graphFormat, "format", "table", "Output format: table, json, yaml, toml")
}

func runGraph(cmd *cobra.Command, args []string) error {
	format, err := display.OutputFormat(cmd, graphFormat)
	if err != nil {
		return err
	}

	eng, cfg, err := newSession()
	if err != nil {
		return err
	}
	defer eng.Stop()

	if err := applyGraphFlags(cmd, eng); err != nil {
		return err
	}
	if _, err := graphPopulation.generate(eng, cfg); err != nil && !errors.Is(err, errors.ErrFocalNotFound) {
		return err
	}

	focal := eng.Store().Graph().FocalPersonID
	g, err := eng.Graph(focal)
	if err != nil {
		return errors.WithHint(err, "pick a focal id listed by `auragraph population` with the same flags")
	}

	if format != display.FormatTable {
		return display.Encode(os.Stdout, g, format)
	}

	display.Section(fmt.Sprintf("%s Graph around person %d (%s)", sym.Graph, focal, g.Meta.Config["scoring"]))
	if err := display.RenderTable(display.StatsTable(g)); err != nil {
		return err
	}
	return display.RenderTable(display.NodesTable(g))
}

// applyGraphFlags changes the graph configuration before the first build.
func applyGraphFlags(cmd *cobra.Command, eng *engine.Engine) error {
	store := eng.Store()
	if cmd.Flags().Changed("focal") {
		store.Update(func(g *config.GraphConfig) { g.FocalPersonID = graphFocal })
	}
	for _, kv := range graphSettings {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return errors.Wrapf(errors.ErrInvalidRequest, "setting %q is not key=value", kv)
		}
		if _, err := store.Set(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return err
		}
	}
	if graphBreakpoint != "" {
		if _, err := store.SetBreakpoint(graphBreakpoint); err != nil {
			return err
		}
	}
	eng.SyncParams()
	return nil
}
