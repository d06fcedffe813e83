package config

import (
	"github.com/Masterminds/semver/v3"
	"github.com/teranos/auragraph/errors"
)

// Validate checks that the configuration is structurally valid.
// Out-of-range graph tunables are not errors, they are clamped by Store.
func (c *Config) Validate() error {
	if err := c.validateSchema(); err != nil {
		return err
	}

	p := c.Population
	if p.Count < MinPopulation {
		return errors.NewInvalidConfigError("population.count must be >= %d, got %d", MinPopulation, p.Count)
	}
	if p.PercentDefinedAttributes < 0 || p.PercentDefinedAttributes > 100 {
		return errors.NewInvalidConfigError("population.percent_defined_attributes must be in [0, 100], got %d", p.PercentDefinedAttributes)
	}
	if len(p.Attributes) < MinSelectedAttributes {
		return errors.NewInvalidConfigError("population.attributes needs at least %d entries, got %d", MinSelectedAttributes, len(p.Attributes))
	}
	seen := make(map[string]bool, len(p.Attributes))
	for _, attr := range p.Attributes {
		if attr == "" {
			return errors.NewInvalidConfigError("population.attributes contains an empty name")
		}
		if seen[attr] {
			return errors.NewInvalidConfigError("population.attributes lists %q twice", attr)
		}
		seen[attr] = true
	}
	if p.RangeAttributes < 2 {
		return errors.NewInvalidConfigError("population.range_attributes must be >= 2, got %d", p.RangeAttributes)
	}
	if p.RangeWeight < 1 {
		return errors.NewInvalidConfigError("population.range_weight must be >= 1, got %d", p.RangeWeight)
	}

	switch c.Graph.Scoring {
	case ScoringSimilarity, ScoringAttraction:
	default:
		return errors.NewInvalidConfigError("graph.scoring must be %q or %q, got %q", ScoringSimilarity, ScoringAttraction, c.Graph.Scoring)
	}
	if c.Graph.FocalPersonID < 0 {
		return errors.NewInvalidConfigError("graph.focal_person_id must be >= 0, got %d", c.Graph.FocalPersonID)
	}

	l := c.Layout
	if l.AlphaDecay <= 0 || l.AlphaDecay >= 1 {
		return errors.NewInvalidConfigError("layout.alpha_decay must be in (0, 1), got %g", l.AlphaDecay)
	}
	if l.AlphaMin <= 0 {
		return errors.NewInvalidConfigError("layout.alpha_min must be > 0, got %g", l.AlphaMin)
	}
	if l.VelocityDecay < 0 || l.VelocityDecay > 1 {
		return errors.NewInvalidConfigError("layout.velocity_decay must be in [0, 1], got %g", l.VelocityDecay)
	}

	// Pulse: 0 ticks = unbounded, 0 heartbeat = disabled, negative = invalid
	if c.Pulse.FPS <= 0 {
		return errors.NewInvalidConfigError("pulse.fps must be > 0, got %g", c.Pulse.FPS)
	}
	if c.Pulse.MaxTicks < 0 {
		return errors.NewInvalidConfigError("pulse.max_ticks must be >= 0, got %d", c.Pulse.MaxTicks)
	}
	if c.Pulse.HeartbeatFrames < 0 {
		return errors.NewInvalidConfigError("pulse.heartbeat_frames must be >= 0, got %d", c.Pulse.HeartbeatFrames)
	}

	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return errors.NewInvalidConfigError("viewport must be positive, got %gx%g", c.Viewport.Width, c.Viewport.Height)
	}
	if _, err := BreakpointProportion(c.Viewport.Breakpoint); err != nil {
		return err
	}

	return nil
}

// validateSchema checks the optional schema constraint against SchemaVersion.
func (c *Config) validateSchema() error {
	if c.Schema == "" {
		return nil
	}

	constraint, err := semver.NewConstraint(c.Schema)
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidConfig, "schema %q is not a valid version constraint: %v", c.Schema, err)
	}

	current := semver.MustParse(SchemaVersion)
	if !constraint.Check(current) {
		return errors.WithHintf(
			errors.Wrapf(errors.ErrIncompatibleSchema, "config requires schema %s, binary provides %s", c.Schema, SchemaVersion),
			"update the schema key or upgrade auragraph")
	}
	return nil
}
