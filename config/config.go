package config

// Config represents the auragraph configuration
type Config struct {
	Schema     string           `mapstructure:"schema" json:"schema,omitempty" toml:"schema,omitempty"`
	Population PopulationConfig `mapstructure:"population" json:"population" toml:"population"`
	Graph      GraphConfig      `mapstructure:"graph" json:"graph" toml:"graph"`
	Layout     LayoutConfig     `mapstructure:"layout" json:"layout" toml:"layout"`
	Pulse      PulseConfig      `mapstructure:"pulse" json:"pulse" toml:"pulse"`
	Viewport   ViewportConfig   `mapstructure:"viewport" json:"viewport" toml:"viewport"`
	Logging    LoggingConfig    `mapstructure:"logging" json:"logging" toml:"logging"`
}

// SchemaVersion is the configuration schema this binary understands.
// A config file may pin a semver constraint against it in its `schema` key.
const SchemaVersion = "1.1.0"

// PopulationConfig configures person generation
type PopulationConfig struct {
	Count                    int      `mapstructure:"count" json:"count" toml:"count"`
	PercentDefinedAttributes int      `mapstructure:"percent_defined_attributes" json:"percent_defined_attributes" toml:"percent_defined_attributes"`
	Attributes               []string `mapstructure:"attributes" json:"attributes" toml:"attributes"`
	RangeAttributes          int      `mapstructure:"range_attributes" json:"range_attributes" toml:"range_attributes"` // attribute and preference values are drawn from [1, range]
	RangeWeight              int      `mapstructure:"range_weight" json:"range_weight" toml:"range_weight"`
	Seed                     int64    `mapstructure:"seed" json:"seed" toml:"seed"`          // 0 = seed from clock
	Catalog                  string   `mapstructure:"catalog" json:"catalog" toml:"catalog"` // optional TOML name/quality catalog
}

// GraphConfig holds the tunable graph parameters.
// Every field is independently bounded, see Clamp.
type GraphConfig struct {
	FocalPersonID                int     `mapstructure:"focal_person_id" json:"focal_person_id" toml:"focal_person_id"`
	PersonsDistanceProportion    float64 `mapstructure:"persons_distance_proportion" json:"persons_distance_proportion" toml:"persons_distance_proportion"`
	AttributesDistanceProportion float64 `mapstructure:"attributes_distance_proportion" json:"attributes_distance_proportion" toml:"attributes_distance_proportion"`
	OpacityAura                  float64 `mapstructure:"opacity_aura" json:"opacity_aura" toml:"opacity_aura"`
	MaxAuraRadius                float64 `mapstructure:"max_aura_radius" json:"max_aura_radius" toml:"max_aura_radius"`
	ValueAttributeNode           float64 `mapstructure:"value_attribute_node" json:"value_attribute_node" toml:"value_attribute_node"`
	StrengthGraph                float64 `mapstructure:"strength_graph" json:"strength_graph" toml:"strength_graph"`
	StiffnessGraph               float64 `mapstructure:"stiffness_graph" json:"stiffness_graph" toml:"stiffness_graph"`
	ClusterAffinity              float64 `mapstructure:"cluster_affinity" json:"cluster_affinity" toml:"cluster_affinity"`
	FullColorAttributeNodes      bool    `mapstructure:"full_color_attribute_nodes" json:"full_color_attribute_nodes" toml:"full_color_attribute_nodes"`
	ShowNames                    bool    `mapstructure:"show_names" json:"show_names" toml:"show_names"`
	PersonLinks                  bool    `mapstructure:"person_links" json:"person_links" toml:"person_links"` // focal to every other person
	Scoring                      string  `mapstructure:"scoring" json:"scoring" toml:"scoring"`                // similarity or attraction
}

// LayoutConfig configures the force simulation
type LayoutConfig struct {
	AlphaDecay           float64 `mapstructure:"alpha_decay" json:"alpha_decay" toml:"alpha_decay"` // per-tick multiplier toward the alpha target
	AlphaMin             float64 `mapstructure:"alpha_min" json:"alpha_min" toml:"alpha_min"`
	VelocityDecay        float64 `mapstructure:"velocity_decay" json:"velocity_decay" toml:"velocity_decay"`
	DragAlphaTarget      float64 `mapstructure:"drag_alpha_target" json:"drag_alpha_target" toml:"drag_alpha_target"`
	IndirectLinkStrength float64 `mapstructure:"indirect_link_strength" json:"indirect_link_strength" toml:"indirect_link_strength"`
	AttributePull        float64 `mapstructure:"attribute_pull" json:"attribute_pull" toml:"attribute_pull"`
	ChargeFactor         float64 `mapstructure:"charge_factor" json:"charge_factor" toml:"charge_factor"`
	ClusterFactor        float64 `mapstructure:"cluster_factor" json:"cluster_factor" toml:"cluster_factor"`
	StiffnessFactor      float64 `mapstructure:"stiffness_factor" json:"stiffness_factor" toml:"stiffness_factor"`
	CenterStrength       float64 `mapstructure:"center_strength" json:"center_strength" toml:"center_strength"`
	PinOnCreate          bool    `mapstructure:"pin_on_create" json:"pin_on_create" toml:"pin_on_create"`
	Seed                 int64   `mapstructure:"seed" json:"seed" toml:"seed"`
}

// PulseConfig configures the frame driver
type PulseConfig struct {
	FPS             float64 `mapstructure:"fps" json:"fps" toml:"fps"`
	MaxTicks        int     `mapstructure:"max_ticks" json:"max_ticks" toml:"max_ticks"`                      // 0 = unbounded
	HeartbeatFrames int     `mapstructure:"heartbeat_frames" json:"heartbeat_frames" toml:"heartbeat_frames"` // 0 = no heartbeat
	StopWhenSettled bool    `mapstructure:"stop_when_settled" json:"stop_when_settled" toml:"stop_when_settled"`
}

// ViewportConfig is the initial drawing area
type ViewportConfig struct {
	Width      float64 `mapstructure:"width" json:"width" toml:"width"`
	Height     float64 `mapstructure:"height" json:"height" toml:"height"`
	Breakpoint string  `mapstructure:"breakpoint" json:"breakpoint" toml:"breakpoint"` // XS, S, M, L, XL
}

// LoggingConfig configures the global logger
type LoggingConfig struct {
	Level      string `mapstructure:"level" json:"level" toml:"level"`
	JSON       bool   `mapstructure:"json" json:"json" toml:"json"`
	File       string `mapstructure:"file" json:"file" toml:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" json:"max_size_mb" toml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" json:"max_backups" toml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" json:"max_age_days" toml:"max_age_days"`
	Compress   bool   `mapstructure:"compress" json:"compress" toml:"compress"`
}

// Scoring model names
const (
	ScoringSimilarity = "similarity"
	ScoringAttraction = "attraction"
)
