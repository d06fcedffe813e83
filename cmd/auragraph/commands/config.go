package commands

import (
	"fmt"
	"os"
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/teranos/auragraph/config"
	"github.com/teranos/auragraph/display"
	"github.com/teranos/auragraph/sym"
)

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: sym.Config + " Show and validate configuration",
	Long: sym.Config + ` config - Show and validate auragraph configuration

Configuration sources (later overrides earlier):
1. Built-in defaults
2. System config (/etc/auragraph/aura.toml)
3. User config (~/.auragraph/aura.toml)
4. Project config (aura.toml, searched upward from the working directory)
5. --config file
6. Environment variables (AURA_* prefix, e.g. AURA_GRAPH_STRENGTH_GRAPH=50)

Examples:
  auragraph config show                 # Show current configuration
  auragraph config show --format json   # Show configuration in JSON format
  auragraph config get graph.scoring    # Get specific config value
  auragraph config validate             # Validate current configuration`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific configuration value",
	Long:  "Get a specific configuration value using dot notation (e.g., graph.scoring, layout.alpha_decay)",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current configuration",
	RunE:  runConfigValidate,
}

var configWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration is loaded from",
	RunE:  runConfigWhere,
}

var configFormat string

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configGetCmd)
	ConfigCmd.AddCommand(configValidateCmd)
	ConfigCmd.AddCommand(configWhereCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	format, err := display.OutputFormat(cmd, configFormat)
	if err != nil {
		return err
	}
	if format == display.FormatTable {
		format = display.FormatTOML
	}
	if format != display.FormatJSON {
		fmt.Println("# auragraph configuration")
	}
	return display.Encode(os.Stdout, cfg, format)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value, ok, err := config.Get(key)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !ok {
		return fmt.Errorf("configuration key %q not found", key)
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(map[string]interface{}{
			"key":    key,
			"value":  value,
			"source": config.SourceOf(key),
		})
	}
	fmt.Println(value)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	pterm.Success.Println("Configuration is valid")
	return nil
}

func runConfigWhere(cmd *cobra.Command, args []string) error {
	if _, err := config.Load(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	type fileStatus struct {
		Source config.ConfigSource `json:"source"`
		Path   string              `json:"path"`
		Exists bool                `json:"exists"`
		Keys   []string            `json:"keys,omitempty"`
	}

	byPath := map[string][]string{}
	for key, info := range config.ConfigSources {
		byPath[info.Path] = append(byPath[info.Path], key)
	}

	var files []fileStatus
	for _, c := range config.CandidateFiles() {
		_, statErr := os.Stat(c.Path)
		keys := byPath[c.Path]
		sort.Strings(keys)
		files = append(files, fileStatus{Source: c.Source, Path: c.Path, Exists: statErr == nil, Keys: keys})
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(map[string]interface{}{"files": files, "active": config.ActiveFile()})
	}

	fmt.Println("Configuration cascade (later overrides earlier):")
	data := pterm.TableData{{"Source", "Path", "Status", "Keys"}}
	data = append(data, []string{string(config.SourceDefault), "built-in", "loaded", ""})
	for _, f := range files {
		status := "missing"
		if f.Exists {
			status = "loaded"
		}
		data = append(data, []string{string(f.Source), f.Path, status, fmt.Sprint(len(f.Keys))})
	}
	data = append(data, []string{string(config.SourceEnvironment), config.EnvPrefix + "_*", "", ""})
	return display.RenderTable(data)
}
