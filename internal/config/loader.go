package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source is a layered configuration provider: higher Priority wins when
// sources are merged.
type Source interface {
	Load() (Config, error)
	Priority() int
	Name() string
}

// Loader merges configuration from an ordered set of Sources, highest
// priority applied last.
type Loader struct {
	sources []Source
}

// NewLoader constructs an empty loader with the built-in default source
// already registered.
func NewLoader() *Loader {
	return &Loader{sources: []Source{DefaultSource{}}}
}

// AddSource registers an additional configuration source.
func (l *Loader) AddSource(s Source) {
	l.sources = append(l.sources, s)
}

// Load merges every registered source, lowest priority first, so later
// (higher-priority) sources override earlier fields.
func (l *Loader) Load() (Config, error) {
	sorted := make([]Source, len(l.sources))
	copy(sorted, l.sources)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Priority() < sorted[j].Priority() })

	cfg := defaults()
	for _, s := range sorted {
		next, err := s.Load()
		if err != nil {
			return Config{}, fmt.Errorf("config source %s: %w", s.Name(), err)
		}
		cfg = merge(cfg, next)
	}
	return cfg, nil
}

// merge overlays non-zero fields of override onto base.
func merge(base, override Config) Config {
	merged := base
	if override.DefaultUnit != "" {
		merged.DefaultUnit = override.DefaultUnit
	}
	if override.DefaultCellSize != 0 {
		merged.DefaultCellSize = override.DefaultCellSize
	}
	if override.IDWNeighbors != 0 {
		merged.IDWNeighbors = override.IDWNeighbors
	}
	if override.RDPTolerance != 0 {
		merged.RDPTolerance = override.RDPTolerance
	}
	if override.WatchInterval != 0 {
		merged.WatchInterval = override.WatchInterval
	}
	return merged
}

// DefaultSource supplies the built-in defaults at the lowest priority.
type DefaultSource struct{}

func (DefaultSource) Load() (Config, error) { return defaults(), nil }
func (DefaultSource) Priority() int         { return 0 }
func (DefaultSource) Name() string          { return "default" }

// FileSource loads a YAML configuration file.
type FileSource struct {
	Path     string
	priority int
}

// NewFileSource constructs a file-backed source at the given priority.
func NewFileSource(path string, priority int) FileSource {
	return FileSource{Path: path, priority: priority}
}

func (f FileSource) Load() (Config, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", f.Path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", f.Path, err)
	}
	return cfg, nil
}

func (f FileSource) Priority() int { return f.priority }
func (f FileSource) Name() string  { return "file:" + f.Path }

// EnvSource loads configuration from environment variables prefixed with
// Prefix, e.g. TAKEOFF_IDW_NEIGHBORS.
type EnvSource struct {
	Prefix   string
	priority int
}

// NewEnvSource constructs an environment-backed source at the given
// priority.
func NewEnvSource(prefix string, priority int) EnvSource {
	return EnvSource{Prefix: prefix, priority: priority}
}

func (e EnvSource) Load() (Config, error) {
	var cfg Config
	cfg.DefaultUnit = os.Getenv(e.Prefix + "DEFAULT_UNIT")
	if v := os.Getenv(e.Prefix + "DEFAULT_CELL_SIZE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.DefaultCellSize = f
		}
	}
	if v := os.Getenv(e.Prefix + "IDW_NEIGHBORS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.IDWNeighbors = n
		}
	}
	if v := os.Getenv(e.Prefix + "RDP_TOLERANCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RDPTolerance = f
		}
	}
	return cfg, nil
}

func (e EnvSource) Priority() int { return e.priority }
func (e EnvSource) Name() string  { return "env:" + strings.TrimSuffix(e.Prefix, "_") }
