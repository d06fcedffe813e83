package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/teranos/auragraph/cmd/auragraph/commands"
	"github.com/teranos/auragraph/config"
	"github.com/teranos/auragraph/logger"
	"github.com/teranos/auragraph/sym"
)

var rootCmd = &cobra.Command{
	Use:   "auragraph",
	Short: "auragraph - person and attribute relationship graphs",
	Long: `auragraph - generate a population of persons with attributes and
preferences, score their relationships around a focal person, and lay the
resulting graph out with a force-directed simulation.

Available commands:
  ` + sym.Population + ` population - generate, filter and inspect persons
  ` + sym.Graph + ` graph      - build the graph around a focal person
  ` + sym.Simulate + ` simulate   - run the layout until it settles
  ` + sym.Config + ` config     - show and validate configuration
  ` + sym.Shell + ` shell      - interactive session

Examples:
  auragraph population --count 12 --percent 60
  auragraph graph --focal 3 --format json
  auragraph simulate --watch
  auragraph shell`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		if configPath != "" {
			config.SetConfigFile(configPath)
		}

		cfg, err := config.Load()
		if err != nil {
			// config commands report load errors themselves
			if cmd.Parent() != nil && cmd.Parent().Name() == "config" {
				return logger.Initialize(false)
			}
			return err
		}

		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonOutput, _ := cmd.Flags().GetBool("json")
		opts := cfg.Logging.Options()
		opts.JSON = opts.JSON || jsonOutput
		if verbosity > 0 || config.SourceOf("logging.level").Source == config.SourceDefault {
			opts.Level = logger.VerbosityToLevel(verbosity).String()
		}
		if err := logger.InitializeWithOptions(opts); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json", false, "Output JSON")
	rootCmd.PersistentFlags().String("config", "", "Config file read after the discovered aura.toml cascade")

	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.PopulationCmd)
	rootCmd.AddCommand(commands.GraphCmd)
	rootCmd.AddCommand(commands.SimulateCmd)
	rootCmd.AddCommand(commands.ShellCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
