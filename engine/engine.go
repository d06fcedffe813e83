// Package engine wires the population generator, relationship scoring,
// graph builder and layout simulation into one session, the surface a
// renderer or the CLI shell drives.
//
// Commands are synchronous. Every command that changes the population or
// the graph configuration ends with an explicit Rebuild, which replaces the
// live simulation with a warm-started successor.
package engine

import (
	"sync"

	"github.com/google/uuid"
	"github.com/teranos/auragraph/config"
	"github.com/teranos/auragraph/errors"
	"github.com/teranos/auragraph/graph"
	"github.com/teranos/auragraph/internal/notify"
	"github.com/teranos/auragraph/layout"
	"github.com/teranos/auragraph/logger"
	"github.com/teranos/auragraph/population"
	"go.uber.org/zap"
)

// Options configures an Engine.
type Options struct {
	// Config is the loaded configuration. Nil means config.Default().
	Config *config.Config

	// Catalog overrides the catalog named by Config.Population.Catalog.
	Catalog *population.Catalog

	Logger *zap.SugaredLogger
}

// Engine is one visualization session.
type Engine struct {
	id      string
	store   *config.Store
	gen     *population.Generator
	builder *graph.Builder
	logger  *zap.SugaredLogger

	mu       sync.Mutex
	cfg      config.Config // non-graph sections; graph values live in store
	graph    *graph.Graph
	sim      *layout.Simulation
	width    float64
	height   float64
	rebuilds int

	subs notify.Registry[*layout.Simulation]
}

// New creates an engine with an empty population.
func New(opts Options) (*Engine, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	catalog := population.DefaultCatalog()
	switch {
	case opts.Catalog != nil:
		catalog = *opts.Catalog
	case cfg.Population.Catalog != "":
		c, err := population.LoadCatalog(cfg.Population.Catalog)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load population catalog")
		}
		catalog = c
	}

	id := uuid.NewString()
	log := logger.ChildLogger(logger.OrComponent(opts.Logger, "engine"), logger.FieldSessionID, id)

	e := &Engine{
		id:    id,
		store: config.NewStore(cfg.Graph, cfg.Viewport.Breakpoint),
		gen: population.NewGenerator(population.Options{
			Catalog:    catalog,
			Params:     generatorParams(cfg.Population, cfg.Graph),
			Seed:       cfg.Population.Seed,
			Attributes: cfg.Population.Attributes,
			Percent:    cfg.Population.PercentDefinedAttributes,
			Logger:     log.Named("population"),
		}),
		builder: graph.NewBuilder(log.Named("graph")),
		logger:  log,
		cfg:     *cfg,
		width:   cfg.Viewport.Width,
		height:  cfg.Viewport.Height,
	}

	e.logger.Debugw("Engine created",
		"catalog_names", len(catalog.Names),
		"catalog_qualities", len(catalog.Qualities),
		"scoring", e.store.Graph().Scoring)
	return e, nil
}

func generatorParams(p config.PopulationConfig, g config.GraphConfig) population.Params {
	return population.Params{
		RangeAttributes: p.RangeAttributes,
		RangeWeight:     p.RangeWeight,
		MaxAuraRadius:   g.MaxAuraRadius,
	}
}

// ID identifies this session in logs.
func (e *Engine) ID() string {
	return e.id
}

// Store returns the live configuration store.
func (e *Engine) Store() *config.Store {
	return e.store
}

// Generator returns the population generator.
func (e *Engine) Generator() *population.Generator {
	return e.gen
}

// Config returns the configuration with the live graph section.
func (e *Engine) Config() config.Config {
	e.mu.Lock()
	cfg := e.cfg
	e.mu.Unlock()
	cfg.Graph = e.store.Graph()
	return cfg
}

// GeneratePopulation generates the shown population and rebuilds.
// Counts of 2 or more are bounded to the accepted population range; smaller
// counts leave the population untouched and return ErrPopulationTooSmall.
func (e *Engine) GeneratePopulation(count, percent int, attributes []string) ([]population.Person, error) {
	if count >= config.MinPopulation {
		count, percent = config.ClampPopulation(count, percent)
	}
	if len(attributes) == 0 {
		attributes = e.gen.Selected()
	}

	shown, err := e.gen.Generate(count, percent, attributes)
	if err != nil {
		return shown, err
	}
	if _, err := e.Rebuild(); err != nil {
		return shown, err
	}
	return shown, nil
}

// ApplyFilter narrows the shown population to persons with at least
// minMatching of attributes defined, then rebuilds.
func (e *Engine) ApplyFilter(minMatching int, attributes []string) ([]population.Person, error) {
	shown := e.gen.ApplyFilter(minMatching, attributes)
	if _, err := e.Rebuild(); err != nil {
		return shown, err
	}
	return shown, nil
}

// UpdatePersonAttribute sets one attribute value on a created person, then rebuilds.
func (e *Engine) UpdatePersonAttribute(id int, attribute string, value int) (population.Person, error) {
	p, err := e.gen.UpdatePersonAttribute(id, attribute, value)
	if err != nil {
		return p, err
	}
	if _, err := e.Rebuild(); err != nil {
		return p, err
	}
	return p, nil
}

// Person returns one created person.
func (e *Engine) Person(id int) (population.Person, error) {
	p, ok := e.gen.Person(id)
	if !ok {
		return population.Person{}, errors.Wrapf(errors.ErrPersonNotFound, "id %d", id)
	}
	return p, nil
}

// Shown returns the shown population.
func (e *Engine) Shown() []population.Person {
	return e.gen.Shown()
}

// Graph builds a graph snapshot of the shown population around focalID
// with the current configuration. It does not touch the live simulation.
func (e *Engine) Graph(focalID int) (*graph.Graph, error) {
	return e.build(focalID, e.store.Snapshot())
}

func (e *Engine) build(focalID int, snap config.Snapshot) (*graph.Graph, error) {
	e.mu.Lock()
	indirect := e.cfg.Layout.IndirectLinkStrength
	rangeAttributes := e.cfg.Population.RangeAttributes
	e.mu.Unlock()

	return e.builder.Build(e.gen.Shown(), focalID, graph.Options{
		Graph:                snap.Graph,
		Proportion:           snap.Proportion,
		RangeAttributes:      rangeAttributes,
		IndirectLinkStrength: indirect,
	})
}

// CreateSimulation creates an idle simulation for g sized to the viewport.
// The simulation is not installed as the live one; see Rebuild.
func (e *Engine) CreateSimulation(g *graph.Graph, width, height float64) *layout.Simulation {
	return layout.New(g, e.simOptions(width, height, nil))
}

func (e *Engine) simOptions(width, height float64, previous map[string]layout.Point) layout.Options {
	e.mu.Lock()
	lc := e.cfg.Layout
	e.mu.Unlock()

	opts := layout.OptionsFromConfig(lc, e.store.Graph(), width, height)
	opts.Previous = previous
	opts.Logger = e.logger.Named("layout")
	return opts
}

// Focus moves the focal person and rebuilds.
func (e *Engine) Focus(id int) (*layout.Simulation, error) {
	e.store.Update(func(g *config.GraphConfig) { g.FocalPersonID = id })
	return e.Rebuild()
}

// Configure mutates the graph configuration, clamping every value, and rebuilds.
func (e *Engine) Configure(fn func(*config.GraphConfig)) (*layout.Simulation, error) {
	snap := e.store.Update(fn)
	e.gen.SetParams(e.params(snap.Graph))
	return e.Rebuild()
}

// Set assigns one graph setting by key and rebuilds.
func (e *Engine) Set(key, value string) (*layout.Simulation, error) {
	snap, err := e.store.Set(key, value)
	if err != nil {
		return e.Simulation(), err
	}
	e.gen.SetParams(e.params(snap.Graph))
	return e.Rebuild()
}

// SyncParams pushes graph settings changed directly on Store to the
// generator, without rebuilding.
func (e *Engine) SyncParams() {
	e.gen.SetParams(e.params(e.store.Graph()))
}

func (e *Engine) params(g config.GraphConfig) population.Params {
	e.mu.Lock()
	defer e.mu.Unlock()
	return generatorParams(e.cfg.Population, g)
}

// SetProportion sets the responsive multiplier and rebuilds.
func (e *Engine) SetProportion(p float64) (*layout.Simulation, error) {
	e.store.SetProportion(p)
	return e.Rebuild()
}

// SetBreakpoint sets the proportion from a breakpoint name and rebuilds.
func (e *Engine) SetBreakpoint(name string) (*layout.Simulation, error) {
	if _, err := e.store.SetBreakpoint(name); err != nil {
		return e.Simulation(), err
	}
	return e.Rebuild()
}

// Reload applies a reloaded configuration file: the graph section replaces
// the live one, layout tuning applies to the next simulation, and the graph
// is rebuilt. The population is kept.
func (e *Engine) Reload(cfg *config.Config) (*layout.Simulation, error) {
	e.mu.Lock()
	e.cfg.Layout = cfg.Layout
	e.cfg.Pulse = cfg.Pulse
	e.mu.Unlock()

	snap := e.store.Replace(cfg.Graph)
	e.gen.SetParams(e.params(snap.Graph))
	e.logger.Infow("Configuration reloaded", "scoring", snap.Graph.Scoring, "proportion", snap.Proportion)
	return e.Rebuild()
}

// Resize changes the viewport of the live simulation and of later ones.
func (e *Engine) Resize(width, height float64) error {
	if width <= 0 || height <= 0 {
		return errors.Wrapf(errors.ErrInvalidRequest, "viewport %gx%g", width, height)
	}
	e.mu.Lock()
	e.width, e.height = width, height
	sim := e.sim
	e.mu.Unlock()

	if sim == nil {
		return nil
	}
	err := sim.Resize(width, height)
	if errors.Is(err, errors.ErrSimulationStopped) {
		return nil
	}
	return err
}

// Viewport returns the current drawing area.
func (e *Engine) Viewport() (float64, float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.width, e.height
}

// Simulation returns the live simulation, nil before the first Rebuild.
func (e *Engine) Simulation() *layout.Simulation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sim
}

// CurrentGraph returns the graph the live simulation was built from.
func (e *Engine) CurrentGraph() *graph.Graph {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.graph
}

// OnRebuild registers fn to receive every newly installed simulation.
func (e *Engine) OnRebuild(fn func(*layout.Simulation)) (unsubscribe func()) {
	return e.subs.Subscribe(fn)
}

// Stop stops the live simulation. Later commands still rebuild a new one.
func (e *Engine) Stop() {
	e.mu.Lock()
	sim := e.sim
	e.mu.Unlock()
	if sim != nil {
		sim.Stop()
	}
}
