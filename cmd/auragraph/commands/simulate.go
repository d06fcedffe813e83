package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/teranos/auragraph/config"
	"github.com/teranos/auragraph/display"
	"github.com/teranos/auragraph/engine"
	"github.com/teranos/auragraph/errors"
	"github.com/teranos/auragraph/layout"
	"github.com/teranos/auragraph/logger"
	"github.com/teranos/auragraph/pulse"
	"github.com/teranos/auragraph/sym"
)

// SimulateCmd represents the simulate command
var SimulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: sym.Simulate + " Run the force layout",
	Long: sym.Simulate + ` simulate - Build the graph and run the force-directed layout

The simulation cools from alpha 1 and stops once it settles, or after --ticks
frames. With --watch the active config file is watched: every saved change
rebuilds the graph, warm-starts a new simulation from the current positions
and keeps running until interrupted.

Examples:
  auragraph simulate                     # Run until settled, print positions
  auragraph simulate --fps 0 --ticks 50  # Unpaced, 50 frames
  auragraph simulate -vv                 # Print one line per frame
  auragraph simulate --watch --fps 30`,
	RunE: runSimulate,
}

var (
	simulatePopulation populationFlags
	simulateTicks      int
	simulateFPS        float64
	simulateWidth      float64
	simulateHeight     float64
	simulateWatch      bool
	simulateFormat     string
)

func init() {
	simulatePopulation.register(SimulateCmd.Flags())
	SimulateCmd.Flags().IntVar(&simulateTicks, "ticks", 0, "Stop after this many frames (default from pulse.max_ticks)")
	SimulateCmd.Flags().Float64Var(&simulateFPS, "fps", 0, "Frames per second, 0 runs unpaced (default from pulse.fps)")
	SimulateCmd.Flags().Float64Var(&simulateWidth, "width", 0, "Viewport width (default from viewport.width)")
	SimulateCmd.Flags().Float64Var(&simulateHeight, "height", 0, "Viewport height (default from viewport.height)")
	SimulateCmd.Flags().BoolVar(&simulateWatch, "watch", false, "Rebuild on config file changes and keep running")
	SimulateCmd.Flags().StringVar(&simulateFormat, "format", "table", "Final frame format: table, json, yaml, toml")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	format, err := display.OutputFormat(cmd, simulateFormat)
	if err != nil {
		return err
	}

	eng, cfg, err := newSession()
	if err != nil {
		return err
	}
	defer eng.Stop()

	if simulateWidth > 0 || simulateHeight > 0 {
		w, h := eng.Viewport()
		if simulateWidth > 0 {
			w = simulateWidth
		}
		if simulateHeight > 0 {
			h = simulateHeight
		}
		if err := eng.Resize(w, h); err != nil {
			return err
		}
	}

	if _, err := simulatePopulation.generate(eng, cfg); tolerateFocal(err) != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rebuilt := make(chan *layout.Simulation, 1)
	if simulateWatch {
		watcher, err := watchConfig(eng)
		if err != nil {
			return err
		}
		defer watcher.Stop()

		unsubscribe := eng.OnRebuild(func(sim *layout.Simulation) {
			select {
			case <-rebuilt:
			default:
			}
			rebuilt <- sim
		})
		defer unsubscribe()
	}

	v := verbosity(cmd)
	sim := eng.Simulation()
	if sim == nil {
		return errors.Wrap(errors.ErrPopulationTooSmall, "nothing to simulate")
	}
	reason, err := drive(ctx, cmd, eng, sim, rebuilt, v)
	if err != nil {
		return err
	}
	if logger.ShouldOutput(v, logger.OutputProgress) {
		pterm.Info.Printfln("%s driver stopped: %s", sym.PulseClose, reason)
	}

	frame := eng.Simulation().Frame()
	if format != display.FormatTable {
		return display.Encode(os.Stdout, frame, format)
	}
	display.Section(display.FrameLine(frame))
	return display.RenderTable(display.PositionsTable(frame))
}

// drive runs a pulse driver on sim and, when rebuilt delivers a successor,
// moves the driver to it. It returns once a driver stops on its own outside
// watch mode, or when ctx is done.
func drive(ctx context.Context, cmd *cobra.Command, eng *engine.Engine, sim *layout.Simulation, rebuilt <-chan *layout.Simulation, v int) (pulse.StopReason, error) {
	for {
		driver := pulse.NewDriver(sim, driverConfig(cmd, eng.Config().Pulse), nil)
		unsubscribe := driver.OnFrame(func(f layout.Frame) {
			if logger.ShouldOutput(v, logger.OutputFrames) {
				fmt.Fprintln(os.Stderr, display.FrameLine(f))
			}
			if logger.ShouldOutput(v, logger.OutputDataDump) {
				_ = display.RenderTableTo(os.Stderr, display.PositionsTable(f))
			}
		})
		if err := driver.Start(ctx); err != nil {
			unsubscribe()
			return pulse.ReasonError, err
		}

		done := make(chan struct{})
		go func() {
			driver.Wait()
			close(done)
		}()

		var next *layout.Simulation
		select {
		case <-done:
			reason, err := driver.Result()
			unsubscribe()
			if err != nil {
				return reason, err
			}
			if !simulateWatch {
				return reason, nil
			}
			// settled; idle until the config changes
			select {
			case next = <-rebuilt:
			case <-ctx.Done():
				return pulse.ReasonCanceled, nil
			}
		case next = <-rebuilt:
			driver.Stop()
			unsubscribe()
		case <-ctx.Done():
			driver.Stop()
			unsubscribe()
			return pulse.ReasonCanceled, nil
		}

		if logger.ShouldOutput(v, logger.OutputProgress) {
			pterm.Info.Printfln("%s graph rebuilt, restarting on simulation %s", sym.PulseOpen, next.ID())
		}
		sim = next
	}
}

// driverConfig applies the command flags over the pulse configuration.
// Outside watch mode the driver always stops once the layout settles.
func driverConfig(cmd *cobra.Command, p config.PulseConfig) pulse.DriverConfig {
	dc := pulse.ConfigFromPulse(p)
	if cmd.Flags().Changed("fps") {
		dc.FPS = simulateFPS
	}
	if cmd.Flags().Changed("ticks") {
		dc.MaxTicks = simulateTicks
	}
	if !simulateWatch {
		dc.StopWhenSettled = true
	}
	return dc
}

func watchConfig(eng *engine.Engine) (*config.ConfigWatcher, error) {
	path := config.ActiveFile()
	if path == "" {
		return nil, errors.WithHint(
			errors.Wrap(errors.ErrInvalidRequest, "--watch needs a config file"),
			"create aura.toml in the working directory or pass --config")
	}

	watcher, err := config.NewConfigWatcher(path, config.DefaultDebounce, nil)
	if err != nil {
		return nil, err
	}
	watcher.OnReload(func(cfg *config.Config) error {
		_, err := eng.Reload(cfg)
		return err
	})
	watcher.Start()
	pterm.Info.Printfln("%s watching %s", sym.Config, path)
	return watcher, nil
}
