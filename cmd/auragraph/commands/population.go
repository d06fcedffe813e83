package commands

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/teranos/auragraph/display"
	"github.com/teranos/auragraph/errors"
	"github.com/teranos/auragraph/logger"
	"github.com/teranos/auragraph/population"
	"github.com/teranos/auragraph/sym"
)

// PopulationCmd represents the population command
var PopulationCmd = &cobra.Command{
	Use:   "population",
	Short: sym.Population + " Generate and inspect a population",
	Long: sym.Population + ` population - Generate persons with attributes and preferences

Each person defines every selected attribute with probability --percent and
holds a preference with a sign and weight for every attribute it defines.

Examples:
  auragraph population                                # Configured defaults
  auragraph population --count 20 --percent 40
  auragraph population --attributes trust,humor --min-match 2
  auragraph population --format yaml
  auragraph population show 3                         # Preferences of person 3`,
	RunE: runPopulation,
}

var populationShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one person's attributes and preferences",
	Args:  cobra.ExactArgs(1),
	RunE:  runPopulationShow,
}

var (
	populationOpts   populationFlags
	populationFormat string
)

func init() {
	populationOpts.register(PopulationCmd.PersistentFlags())
	PopulationCmd.PersistentFlags().StringVar(&populationFormat, "format", "table", "Output format: table, json, yaml, toml")

	PopulationCmd.AddCommand(populationShowCmd)
}

func runPopulation(cmd *cobra.Command, args []string) error {
	format, err := display.OutputFormat(cmd, populationFormat)
	if err != nil {
		return err
	}

	eng, cfg, err := newSession()
	if err != nil {
		return err
	}
	defer eng.Stop()

	shown, err := populationOpts.generate(eng, cfg)
	if err = tolerateFocal(err); err != nil {
		return err
	}

	if format != display.FormatTable {
		return display.Encode(os.Stdout, shown, format)
	}

	if logger.ShouldOutput(verbosity(cmd), logger.OutputProgress) {
		pterm.Info.Printfln("%d shown of %d created (session %s)", len(shown), len(eng.Generator().Created()), eng.ID())
	}
	display.Section(fmt.Sprintf("%s Population (%d)", sym.Population, len(shown)))
	return display.RenderTable(display.PersonsTable(shown, eng.Generator().Selected()))
}

func runPopulationShow(cmd *cobra.Command, args []string) error {
	id, err := parseCount(args[0])
	if err != nil {
		return err
	}
	format, err := display.OutputFormat(cmd, populationFormat)
	if err != nil {
		return err
	}

	eng, cfg, err := newSession()
	if err != nil {
		return err
	}
	defer eng.Stop()

	if _, err := populationOpts.generate(eng, cfg); err != nil && !errors.Is(err, errors.ErrFocalNotFound) {
		return err
	}
	p, err := eng.Person(id)
	if err != nil {
		return err
	}

	if format != display.FormatTable {
		return display.Encode(os.Stdout, p, format)
	}

	display.Section(fmt.Sprintf("%s %s (#%d)", sym.Person, p.Name, p.ID))
	if err := display.RenderTable(display.PersonsTable([]population.Person{p}, eng.Generator().Selected())); err != nil {
		return err
	}
	return display.RenderTable(display.PreferencesTable(p))
}
