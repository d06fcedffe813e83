// Package pulse drives a layout simulation one tick per frame on its own
// goroutine, paced to a frame rate, until it settles or is stopped.
package pulse

import (
	"context"
	"sync"
	"time"

	"github.com/teranos/auragraph/config"
	"github.com/teranos/auragraph/errors"
	"github.com/teranos/auragraph/internal/notify"
	"github.com/teranos/auragraph/layout"
	"github.com/teranos/auragraph/logger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Simulation is the part of a layout simulation the driver needs.
type Simulation interface {
	Tick() (bool, error)
	Frame() layout.Frame
}

// StopReason records why the driver loop exited.
type StopReason string

const (
	ReasonNone              StopReason = ""
	ReasonCanceled          StopReason = "canceled"
	ReasonSettled           StopReason = "settled"
	ReasonMaxTicks          StopReason = "max_ticks"
	ReasonSimulationStopped StopReason = "simulation_stopped"
	ReasonError             StopReason = "error"
)

// DriverConfig contains configuration for the frame driver
type DriverConfig struct {
	FPS             float64 // frames per second, 0 = unpaced
	MaxTicks        int     // 0 = unbounded
	HeartbeatFrames int     // 0 = no heartbeat
	StopWhenSettled bool
}

// DefaultDriverConfig returns 60 fps until settled.
func DefaultDriverConfig() DriverConfig {
	return DriverConfig{
		FPS:             60,
		HeartbeatFrames: 300,
		StopWhenSettled: true,
	}
}

// ConfigFromPulse converts the pulse section of the loaded configuration.
func ConfigFromPulse(c config.PulseConfig) DriverConfig {
	return DriverConfig{
		FPS:             c.FPS,
		MaxTicks:        c.MaxTicks,
		HeartbeatFrames: c.HeartbeatFrames,
		StopWhenSettled: c.StopWhenSettled,
	}
}

// IdlePoll is how often an idle simulation is polled when the driver keeps
// running after it settles.
const IdlePoll = 50 * time.Millisecond

// Driver calls Tick once per frame and publishes every integrated frame.
type Driver struct {
	sim     Simulation
	cfg     DriverConfig
	limiter *rate.Limiter
	frames  notify.Registry[layout.Frame]

	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger   *zap.SugaredLogger
	pulseLog *zap.SugaredLogger // logger with the Pulse symbol pre-attached

	mu            sync.Mutex
	started       bool
	frameCount    int
	reason        StopReason
	err           error
	lastBeatAt    time.Time
	lastBeatFrame int

	memStats func() (MemoryStats, error)
}

// NewDriver creates a driver for sim. Nothing runs until Start.
func NewDriver(sim Simulation, cfg DriverConfig, log *zap.SugaredLogger) *Driver {
	log = logger.OrComponent(log, "pulse")
	limit := rate.Inf
	if cfg.FPS > 0 {
		limit = rate.Limit(cfg.FPS)
	}
	return &Driver{
		sim:      sim,
		cfg:      cfg,
		limiter:  rate.NewLimiter(limit, 1),
		logger:   log,
		pulseLog: logger.AddPulseSymbol(log),
		memStats: SampleMemory,
	}
}

// OnFrame registers fn to receive every integrated frame, in tick order,
// on the driver goroutine. The returned func unsubscribes.
// fn must not call Stop; cancel the Start context instead.
func (d *Driver) OnFrame(fn func(layout.Frame)) (unsubscribe func()) {
	return d.frames.Subscribe(fn)
}

// Start begins the frame loop. The loop exits when ctx is canceled, Stop is
// called, the simulation stops, MaxTicks frames have run, or the simulation
// settles with StopWhenSettled.
func (d *Driver) Start(ctx context.Context) error {
	d.mu.Lock()
	if d.started {
		d.mu.Unlock()
		return errors.Wrap(errors.ErrInvalidRequest, "driver already started")
	}
	runCtx, cancel := context.WithCancel(ctx)
	d.started = true
	d.cancel = cancel
	d.lastBeatAt = time.Now()
	d.mu.Unlock()

	d.wg.Add(1)
	go d.run(runCtx)
	d.pulseLog.Infow("Pulse driver started",
		"fps", d.cfg.FPS,
		"max_ticks", d.cfg.MaxTicks,
		"stop_when_settled", d.cfg.StopWhenSettled)
	return nil
}

// Stop halts the loop and waits for it to exit. The simulation is left as
// it was after the last completed tick.
func (d *Driver) Stop() {
	d.mu.Lock()
	cancel := d.cancel
	d.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	d.wg.Wait()
}

// Wait blocks until the loop exits.
func (d *Driver) Wait() {
	d.wg.Wait()
}

// Frames returns how many frames have been integrated.
func (d *Driver) Frames() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frameCount
}

// Result returns why the loop exited and the simulation error, if any.
// The reason is empty while the loop is running.
func (d *Driver) Result() (StopReason, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reason, d.err
}

func (d *Driver) run(ctx context.Context) {
	defer d.wg.Done()
	d.mu.Lock()
	cancel := d.cancel
	d.mu.Unlock()
	defer cancel()

	idle := time.NewTimer(IdlePoll)
	idle.Stop()
	defer idle.Stop()

	for {
		if ctx.Err() != nil {
			d.finish(ReasonCanceled, nil)
			return
		}
		if err := d.limiter.Wait(ctx); err != nil {
			d.finish(ReasonCanceled, nil)
			return
		}

		stepped, err := d.sim.Tick()
		switch {
		case errors.Is(err, errors.ErrSimulationStopped):
			d.finish(ReasonSimulationStopped, nil)
			return
		case err != nil:
			d.finish(ReasonError, err)
			return
		}

		if !stepped {
			if d.cfg.StopWhenSettled {
				d.finish(ReasonSettled, nil)
				return
			}
			idle.Reset(IdlePoll)
			select {
			case <-ctx.Done():
				d.finish(ReasonCanceled, nil)
				return
			case <-idle.C:
			}
			continue
		}

		frame := d.sim.Frame()
		d.mu.Lock()
		d.frameCount++
		count := d.frameCount
		d.mu.Unlock()

		d.frames.Publish(frame)
		d.heartbeat(count, frame)

		if d.cfg.MaxTicks > 0 && count >= d.cfg.MaxTicks {
			d.finish(ReasonMaxTicks, nil)
			return
		}
	}
}

func (d *Driver) finish(reason StopReason, err error) {
	d.mu.Lock()
	d.reason = reason
	d.err = err
	frames := d.frameCount
	d.mu.Unlock()

	if err != nil {
		d.pulseLog.Warnw("Pulse driver stopped on error", logger.FieldError, err, "frames", frames)
		return
	}
	d.pulseLog.Infow("Pulse driver stopped", "reason", reason, "frames", frames)
}

func (d *Driver) heartbeat(count int, frame layout.Frame) {
	if d.cfg.HeartbeatFrames <= 0 || count%d.cfg.HeartbeatFrames != 0 {
		return
	}

	now := time.Now()
	d.mu.Lock()
	elapsed := now.Sub(d.lastBeatAt).Seconds()
	frames := count - d.lastBeatFrame
	d.lastBeatAt, d.lastBeatFrame = now, count
	d.mu.Unlock()

	fps := 0.0
	if elapsed > 0 {
		fps = float64(frames) / elapsed
	}

	fields := []interface{}{
		logger.FieldTick, frame.Tick,
		logger.FieldAlpha, frame.Alpha,
		logger.FieldState, frame.State,
		logger.FieldFPS, fps,
	}
	if m, err := d.memStats(); err == nil {
		fields = append(fields, "mem_used_gb", m.UsedGB, "mem_total_gb", m.TotalGB, "mem_percent", m.Percent)
	}
	d.pulseLog.Infow("Pulse heartbeat", fields...)
}
