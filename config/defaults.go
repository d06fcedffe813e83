package config

import (
	"github.com/spf13/viper"
	"github.com/teranos/auragraph/population"
)

// Default values shared by SetDefaults and Default.
const (
	DefaultCount                    = 10
	DefaultPercentDefinedAttributes = 70
	DefaultRangeAttributes          = 10
	DefaultRangeWeight              = 5
	DefaultBreakpoint               = "XL"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Population defaults
	v.SetDefault("population.count", DefaultCount)
	v.SetDefault("population.percent_defined_attributes", DefaultPercentDefinedAttributes)
	v.SetDefault("population.attributes", population.DefaultQualities)
	v.SetDefault("population.range_attributes", DefaultRangeAttributes)
	v.SetDefault("population.range_weight", DefaultRangeWeight)
	v.SetDefault("population.seed", 0)
	v.SetDefault("population.catalog", "")

	// Graph defaults
	v.SetDefault("graph.focal_person_id", 0)
	v.SetDefault("graph.persons_distance_proportion", 2.5)
	v.SetDefault("graph.attributes_distance_proportion", 0.7)
	v.SetDefault("graph.opacity_aura", 1.0)
	v.SetDefault("graph.max_aura_radius", 200.0)
	v.SetDefault("graph.value_attribute_node", 4.0)
	v.SetDefault("graph.strength_graph", 30.0)
	v.SetDefault("graph.stiffness_graph", 1.0)
	v.SetDefault("graph.cluster_affinity", 0.5)
	v.SetDefault("graph.full_color_attribute_nodes", true)
	v.SetDefault("graph.show_names", true)
	v.SetDefault("graph.person_links", false)
	v.SetDefault("graph.scoring", ScoringSimilarity)

	// Layout defaults (d3-force conventions)
	v.SetDefault("layout.alpha_decay", 0.99)
	v.SetDefault("layout.alpha_min", 0.01)
	v.SetDefault("layout.velocity_decay", 0.4)
	v.SetDefault("layout.drag_alpha_target", 0.05)
	v.SetDefault("layout.indirect_link_strength", 0.1)
	v.SetDefault("layout.attribute_pull", 0.1)
	v.SetDefault("layout.charge_factor", 1.5)
	v.SetDefault("layout.cluster_factor", 1.2)
	v.SetDefault("layout.stiffness_factor", 0.8)
	v.SetDefault("layout.center_strength", 1.0)
	v.SetDefault("layout.pin_on_create", true)
	v.SetDefault("layout.seed", 0)

	// Pulse defaults
	v.SetDefault("pulse.fps", 60.0)
	v.SetDefault("pulse.max_ticks", 0)
	v.SetDefault("pulse.heartbeat_frames", 300)
	v.SetDefault("pulse.stop_when_settled", true)

	// Viewport defaults
	v.SetDefault("viewport.width", 960.0)
	v.SetDefault("viewport.height", 640.0)
	v.SetDefault("viewport.breakpoint", DefaultBreakpoint)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.json", false)
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age_days", 7)
	v.SetDefault("logging.compress", false)
}

// Default returns the configuration built from defaults alone,
// without reading files or environment.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		// Defaults are static and always decode.
		panic(err)
	}
	return cfg
}
