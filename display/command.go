package display

import (
	"os"

	"github.com/spf13/cobra"
)

// ShouldOutputJSON reports whether the --json flag is set on cmd or the root.
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}

	// Check if --json flag was explicitly set
	if cmd.Flags().Changed("json") {
		jsonFlag, _ := cmd.Flags().GetBool("json")
		return jsonFlag
	}

	// Check global --json flag
	globalFlag, _ := cmd.Root().PersistentFlags().GetBool("json")
	return globalFlag
}

// OutputFormat resolves the format for cmd: --json wins, then --format.
func OutputFormat(cmd *cobra.Command, format string) (Format, error) {
	if ShouldOutputJSON(cmd) {
		return FormatJSON, nil
	}
	return ParseFormat(format)
}

// OutputJSON marshals and prints JSON using display.MarshalJSON
func OutputJSON(v interface{}) error {
	return Encode(os.Stdout, v, FormatJSON)
}
