// Package config loads engine-tuning parameters (default unit, volumetric
// grid cell size, IDW neighbor count, RDP simplification tolerance) from a
// layered set of sources, following the same priority-merge pattern used
// elsewhere in this codebase's service configuration.
package config

import "time"

// Config holds the tunables the engine reads at startup; none of it affects
// correctness, only defaults and performance knobs.
type Config struct {
	// DefaultUnit is used when a host constructs a ScaleDefinition without
	// specifying one explicitly (the engine itself never defaults a unit on
	// its own — this only feeds convenience constructors in internal/engine).
	DefaultUnit string `json:"default_unit" yaml:"default_unit"`

	// DefaultCellSize is the fallback Riemann-sum cell size for
	// volume_against when the caller supplies none or a non-positive one.
	DefaultCellSize float64 `json:"default_cell_size" yaml:"default_cell_size"`

	// IDWNeighbors is loaded and merged like the other fields. z_at does not
	// read it: pkg/contour uses a fixed k of 8 for inverse-distance-weighted
	// interpolation.
	IDWNeighbors int `json:"idw_neighbors" yaml:"idw_neighbors"`

	// RDPTolerance is the default simplify_polyline tolerance when a host
	// doesn't specify one.
	RDPTolerance float64 `json:"rdp_tolerance" yaml:"rdp_tolerance"`

	// WatchInterval is loaded from a file source and merged like the other
	// fields. Watcher does not read it: it reloads on fsnotify write/create
	// events, with no polling interval.
	WatchInterval time.Duration `json:"watch_interval" yaml:"watch_interval"`
}

func defaults() Config {
	return Config{
		DefaultUnit:     "Feet",
		DefaultCellSize: 1.0,
		IDWNeighbors:    8,
		RDPTolerance:    0.5,
		WatchInterval:   0,
	}
}
