// Package engine wires internal/config, internal/logger, and internal/metrics
// around pkg/takeoff.State, the way internal/infrastructure/container wires a
// database, logger, and repositories around this codebase's use cases. A host
// process constructs one Engine and drives everything through it; pkg/takeoff
// itself stays free of config/logging/metrics concerns.
package engine

import (
	"context"

	"github.com/arx-os/takeoff/internal/config"
	"github.com/arx-os/takeoff/internal/logger"
	"github.com/arx-os/takeoff/internal/metrics"
	"github.com/arx-os/takeoff/pkg/contour"
	"github.com/arx-os/takeoff/pkg/geometry"
	"github.com/arx-os/takeoff/pkg/measurement"
	"github.com/arx-os/takeoff/pkg/scale"
	"github.com/arx-os/takeoff/pkg/takeoff"
	"github.com/arx-os/takeoff/pkg/units"
	"github.com/prometheus/client_golang/prometheus"
)

// Engine bundles the process-wide State with the config it was built from
// and the logger/metrics every operation reports through.
type Engine struct {
	State  *takeoff.State
	Config config.Config

	log *logger.Logger
}

// Option customizes New.
type Option func(*options)

type options struct {
	cfg      *config.Config
	registry prometheus.Registerer
	log      *logger.Logger
}

// WithConfig overrides the loaded config (bypassing internal/config.Loader).
func WithConfig(cfg config.Config) Option {
	return func(o *options) { o.cfg = &cfg }
}

// WithRegistry registers metrics against reg instead of the default
// prometheus registry.
func WithRegistry(reg prometheus.Registerer) Option {
	return func(o *options) { o.registry = reg }
}

// WithLogger overrides the default stdlib-backed logger.
func WithLogger(log *logger.Logger) Option {
	return func(o *options) { o.log = log }
}

// New builds an Engine. With no options it loads config.defaults(), logs to
// a "takeoff" logger, and registers metrics against prometheus.DefaultRegisterer.
func New(opts ...Option) (*Engine, error) {
	o := &options{}
	for _, apply := range opts {
		apply(o)
	}

	cfg := o.cfg
	if cfg == nil {
		loaded, err := config.NewLoader().Load()
		if err != nil {
			return nil, err
		}
		cfg = &loaded
	}

	log := o.log
	if log == nil {
		log = logger.New("takeoff")
	}

	registry := o.registry
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	collector := metrics.NewCollector(registry)

	return &Engine{
		State:  takeoff.New(collector, log),
		Config: *cfg,
		log:    log,
	}, nil
}

// defaultUnit resolves the engine's configured default unit, falling back to
// Feet if the configured string doesn't parse.
func (e *Engine) defaultUnit() units.Unit {
	u, err := units.ParseUnit(e.Config.DefaultUnit)
	if err != nil {
		return units.Feet
	}
	return u
}

// NewDefaultScaleDefinition builds a ScaleDefinition in the engine's
// configured default unit.
func (e *Engine) NewDefaultScaleDefinition(pixelDistance, realDistance float64) scale.ScaleDefinition {
	return scale.ScaleDefinition{
		PixelDistance: pixelDistance,
		RealDistance:  realDistance,
		Unit:          e.defaultUnit(),
	}
}

// SimplifyPolyline simplifies points at the engine's configured RDP
// tolerance.
func (e *Engine) SimplifyPolyline(points []geometry.Point2D) []geometry.Point2D {
	return geometry.SimplifyPolyline(points, e.Config.RDPTolerance)
}

// AddMeasurement registers a measurement, simplifying Polyline/Polygon
// vertices at the configured RDP tolerance first — mirroring the host
// workflow of drawing a path, then committing a cleaned-up trace.
func (e *Engine) AddMeasurement(m measurement.Measurement) (*takeoff.MeasurementHandle, error) {
	if m.Kind == measurement.KindPolyline || m.Kind == measurement.KindPolygon {
		m.Points = e.SimplifyPolyline(m.Points)
	}
	return e.State.AddMeasurement(m)
}

// VolumeAgainst runs cut/fill integration using the engine's configured
// default cell size when cellSize is non-positive.
func (e *Engine) VolumeAgainst(ctx context.Context, pageID, contourID string, reference takeoff.ReferenceInput, cellSize float64) (takeoff.VolumeOutcome, error) {
	if cellSize <= 0 {
		cellSize = e.Config.DefaultCellSize
	}
	return e.State.VolumeAgainst(ctx, pageID, contourID, reference, cellSize)
}

// AddContour registers a contour. Present as a thin pass-through so callers
// only need to import internal/engine, not pkg/contour, for the common path.
func (e *Engine) AddContour(c contour.ContourInput) (*takeoff.ContourHandle, error) {
	return e.State.AddContour(c)
}
