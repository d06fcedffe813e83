package logger

// OutputCategory controls WHAT types of CLI output are displayed,
// independent of log severity.
type OutputCategory int

const (
	// Level 0 (default) - always shown
	OutputResults OutputCategory = iota // command output: tables, graphs, positions
	OutputErrors                        // errors with hints

	// Level 1 (-v)
	OutputProgress // driver start/stop, rebuilds

	// Level 2 (-vv)
	OutputConfig // config values loaded/applied
	OutputFrames // per-frame alpha and state lines

	// Level 3 (-vvv)
	OutputDataDump // full frame positions on every tick
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputResults:  VerbosityUser,
	OutputErrors:   VerbosityUser,
	OutputProgress: VerbosityInfo,
	OutputConfig:   VerbosityDebug,
	OutputFrames:   VerbosityDebug,
	OutputDataDump: VerbosityTrace,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		return verbosity >= VerbosityTrace
	}
	return verbosity >= minLevel
}
