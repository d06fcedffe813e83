package commands

import (
	"math"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/teranos/auragraph/config"
	"github.com/teranos/auragraph/engine"
	"github.com/teranos/auragraph/errors"
	grapherr "github.com/teranos/auragraph/graph/error"
	"github.com/teranos/auragraph/population"
)

// newSession loads configuration and creates an engine with an empty population.
func newSession() (*engine.Engine, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	eng, err := engine.New(engine.Options{Config: cfg})
	if err != nil {
		return nil, nil, err
	}
	return eng, cfg, nil
}

// populationFlags are shared by every command that generates a population.
type populationFlags struct {
	count      int
	percent    int
	attributes string
	minMatch   int
	match      string
}

func (f *populationFlags) register(fs *pflag.FlagSet) {
	fs.IntVar(&f.count, "count", 0, "Number of persons (default from population.count)")
	fs.IntVar(&f.percent, "percent", 0, "Percent of attributes each person defines (default from population.percent_defined_attributes)")
	fs.StringVar(&f.attributes, "attributes", "", "Comma-separated attribute names (default from population.attributes)")
	fs.IntVar(&f.minMatch, "min-match", 0, "Only show persons defining at least this many of --match-attributes")
	fs.StringVar(&f.match, "match-attributes", "", "Comma-separated attributes counted by --min-match (default: all selected)")
}

// generate fills eng's population from flags, falling back to cfg.
// A focal person missing from the result is returned as
// errors.ErrFocalNotFound after the population is in place.
func (f *populationFlags) generate(eng *engine.Engine, cfg *config.Config) ([]population.Person, error) {
	count, percent := f.count, f.percent
	if count == 0 {
		count = cfg.Population.Count
	}
	if percent == 0 {
		percent = cfg.Population.PercentDefinedAttributes
	}
	attributes := splitList(f.attributes)
	if len(attributes) == 0 {
		attributes = cfg.Population.Attributes
	}

	shown, err := eng.GeneratePopulation(count, percent, attributes)
	if err != nil && !errors.Is(err, errors.ErrFocalNotFound) {
		return shown, err
	}
	if f.minMatch > 0 {
		match := splitList(f.match)
		if len(match) == 0 {
			match = eng.Generator().Selected()
		}
		shown, err = eng.ApplyFilter(f.minMatch, match)
	}
	return shown, err
}

// tolerateFocal downgrades a missing focal person to a warning.
func tolerateFocal(err error) error {
	if err != nil && errors.Is(err, errors.ErrFocalNotFound) {
		pterm.Warning.Printfln("%s: %v", grapherr.FromError(err).ToUIMessage(), err)
		return nil
	}
	return err
}

func verbosity(cmd *cobra.Command) int {
	v, _ := cmd.Flags().GetCount("verbose")
	return v
}

// splitList parses "trust, humor,ambition" into its trimmed, non-empty items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// parseCount accepts any number and floors it, so "3.7" is 3.
func parseCount(s string) (int, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.Wrapf(errors.ErrInvalidRequest, "%q is not a number", s)
	}
	return int(math.Floor(f)), nil
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.Wrapf(errors.ErrInvalidRequest, "%q is not a number", s)
	}
	return f, nil
}
