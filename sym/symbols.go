// Package sym defines canonical glyphs for auragraph commands and log markers.
// These symbols are stable across CLI help, shell prompts and structured logs.
package sym

// Command glyphs - each has a CLI command.
const (
	Population = "●" // population - persons, attributes, preferences
	Graph      = "⋈" // graph - nodes and edges around a focal person
	Simulate   = "✦" // simulate - force-directed layout
	Config     = "≡" // config - configuration and system settings
	Shell      = "⌬" // shell - interactive session
)

// Node markers used in tables and shell output.
const (
	Person    = "○"
	Focal     = "◉"
	Attribute = "◆"
	Indirect  = "⋯"
)

// System infrastructure symbols.
const (
	Pulse      = "꩜" // frame driver
	PulseOpen  = "✿" // driver startup
	PulseClose = "❀" // driver shutdown
)

// PaletteOrder defines the canonical ordering of command glyphs in help output.
var PaletteOrder = []string{Population, Graph, Simulate, Config, Shell}

// SymbolToCommand maps glyph strings to their text command equivalents.
var SymbolToCommand = map[string]string{
	Population: "population",
	Graph:      "graph",
	Simulate:   "simulate",
	Config:     "config",
	Shell:      "shell",
}

// CommandToSymbol maps text commands to their canonical glyph strings.
var CommandToSymbol = map[string]string{
	"population": Population,
	"graph":      Graph,
	"simulate":   Simulate,
	"config":     Config,
	"shell":      Shell,
}

// CommandDescriptions provides one-line explanations for help output.
var CommandDescriptions = map[string]string{
	"population": "Population - generate, filter and inspect persons",
	"graph":      "Graph - nodes and edges around a focal person",
	"simulate":   "Simulate - run the force-directed layout",
	"config":     "Configuration - settings and their sources",
	"shell":      "Shell - interactive session over one engine",
}

// NodeMarker returns the marker glyph for a node kind.
func NodeMarker(kind string, focal bool) string {
	switch {
	case kind == "ATTRIBUTE":
		return Attribute
	case focal:
		return Focal
	default:
		return Person
	}
}
