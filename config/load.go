package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
	"github.com/teranos/auragraph/errors"
)

// EnvPrefix prefixes every environment override (AURA_GRAPH_STRENGTH_GRAPH=50)
const EnvPrefix = "AURA"

// ProjectConfigName is the file searched for from the working directory upward
const ProjectConfigName = "aura.toml"

var (
	globalConfig  *Config
	viperInstance *viper.Viper
	loadMu        sync.Mutex
)

// ConfigSource represents where a configuration value came from
type ConfigSource string

const (
	SourceDefault     ConfigSource = "default"
	SourceSystem      ConfigSource = "system"      // /etc/auragraph/aura.toml
	SourceUser        ConfigSource = "user"        // ~/.auragraph/aura.toml
	SourceProject     ConfigSource = "project"     // aura.toml found upward from cwd
	SourceExplicit    ConfigSource = "explicit"    // --config flag
	SourceEnvironment ConfigSource = "environment" // AURA_* env vars
)

// SourceInfo tracks where a configuration value originated
type SourceInfo struct {
	Source ConfigSource `json:"source"`
	Path   string       `json:"path,omitempty"`
}

// ConfigSources records, per dotted key, the last file that set it during Load.
var ConfigSources = map[string]SourceInfo{}

// explicitPath is set by SetConfigFile and takes precedence over discovered files.
var explicitPath string

// SetConfigFile makes Load read path after the discovered cascade.
// Passing "" restores discovery only.
func SetConfigFile(path string) {
	loadMu.Lock()
	defer loadMu.Unlock()
	explicitPath = path
	globalConfig = nil
	viperInstance = nil
}

// Load reads the configuration cascade using Viper
func Load() (*Config, error) {
	loadMu.Lock()
	defer loadMu.Unlock()

	if globalConfig != nil {
		return globalConfig, nil
	}

	v, err := initViper()
	if err != nil {
		return nil, err
	}

	config, err := LoadWithViper(v)
	if err != nil {
		return nil, err
	}

	globalConfig = config
	return globalConfig, nil
}

// GetViper returns the Viper instance for key-level access
func GetViper() (*viper.Viper, error) {
	loadMu.Lock()
	defer loadMu.Unlock()
	return initViper()
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path over the defaults
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	config, err := LoadWithViper(v)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal config from %s", configPath)
	}
	return config, nil
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	loadMu.Lock()
	defer loadMu.Unlock()
	globalConfig = nil
	viperInstance = nil
	ConfigSources = map[string]SourceInfo{}
}

// initViper initializes Viper with configuration sources and defaults.
// Callers hold loadMu.
func initViper() (*viper.Viper, error) {
	if viperInstance != nil {
		return viperInstance, nil
	}

	v := viper.New()
	v.SetConfigType("toml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if err := mergeConfigFiles(v, CandidateFiles()); err != nil {
		return nil, err
	}

	viperInstance = v
	return v, nil
}

// Reload re-reads the whole cascade, environment included, without touching
// the cached configuration. watched is merged last when the cascade does not
// already consult it.
func Reload(watched string) (*Config, error) {
	loadMu.Lock()
	defer loadMu.Unlock()

	files := CandidateFiles()
	if watched != "" && !consults(files, watched) {
		files = append(files, SourceInfo{Source: SourceExplicit, Path: watched})
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if err := mergeConfigFiles(v, files); err != nil {
		return nil, err
	}
	return LoadWithViper(v)
}

func consults(files []SourceInfo, path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	for _, f := range files {
		if candidate, err := filepath.Abs(f.Path); err == nil && candidate == abs {
			return true
		}
	}
	return false
}

// CandidateFiles returns every file the cascade consults, lowest precedence first.
func CandidateFiles() []SourceInfo {
	var files []SourceInfo
	files = append(files, SourceInfo{Source: SourceSystem, Path: "/etc/auragraph/" + ProjectConfigName})
	if home, err := os.UserHomeDir(); err == nil {
		files = append(files, SourceInfo{Source: SourceUser, Path: filepath.Join(home, ".auragraph", ProjectConfigName)})
	}
	if project := findProjectConfig(); project != "" {
		files = append(files, SourceInfo{Source: SourceProject, Path: project})
	}
	if explicitPath != "" {
		files = append(files, SourceInfo{Source: SourceExplicit, Path: explicitPath})
	}
	return files
}

// findProjectConfig searches for aura.toml by walking up the directory tree
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, ProjectConfigName)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// mergeConfigFiles merges existing files into the config layer in precedence order.
// Environment variables stay above every file.
func mergeConfigFiles(v *viper.Viper, files []SourceInfo) error {
	sources := map[string]SourceInfo{}

	for _, candidate := range files {
		if _, err := os.Stat(candidate.Path); err != nil {
			if candidate.Source == SourceExplicit {
				return errors.Wrapf(err, "config file %s", candidate.Path)
			}
			continue
		}

		fileViper := viper.New()
		fileViper.SetConfigFile(candidate.Path)
		fileViper.SetConfigType("toml")
		if err := fileViper.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "failed to read config file %s", candidate.Path)
		}

		if err := v.MergeConfigMap(fileViper.AllSettings()); err != nil {
			return errors.Wrapf(err, "failed to merge config file %s", candidate.Path)
		}

		for _, key := range fileViper.AllKeys() {
			sources[key] = candidate
		}
	}

	ConfigSources = sources
	return nil
}

// ActiveFile returns the highest-precedence config file that exists, or "".
func ActiveFile() string {
	loadMu.Lock()
	defer loadMu.Unlock()

	files := CandidateFiles()
	for i := len(files) - 1; i >= 0; i-- {
		if _, err := os.Stat(files[i].Path); err == nil {
			return files[i].Path
		}
	}
	return ""
}

// Get returns a configuration value using dot notation
func Get(key string) (interface{}, bool, error) {
	v, err := GetViper()
	if err != nil {
		return nil, false, err
	}
	if !v.IsSet(key) {
		return nil, false, nil
	}
	return v.Get(key), true, nil
}

// SourceOf reports where key was set, checking the environment last.
func SourceOf(key string) SourceInfo {
	envKey := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	if _, ok := os.LookupEnv(envKey); ok {
		return SourceInfo{Source: SourceEnvironment, Path: envKey}
	}
	if info, ok := ConfigSources[key]; ok {
		return info
	}
	return SourceInfo{Source: SourceDefault, Path: "built-in default"}
}
