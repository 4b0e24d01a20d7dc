package physics

import (
	"log/slog"

	"github.com/silt-engine/impulse3d/lin"
)

// config.go reduces World's construction footprint using functional
// options.
// See: http://dave.cheney.net/2014/10/17/functional-options-for-friendly-apis

// Config holds the attributes an application can set before Simulate is
// ever called. The solver's iteration cap, convergence tolerance, and SPOOK
// stiffness/relaxation are fixed simulation-wide constants (see solver.go),
// not configuration attributes — a caller wanting a softer or harder
// constraint response adjusts body material properties instead.
type Config struct {
	gravity lin.Vec3
	logger  *slog.Logger
}

// configDefaults provides reasonable defaults so a World simulates sensibly
// even if no configuration attributes are set.
var configDefaults = Config{
	gravity: lin.Vec3{Y: -9.81},
}

// Attr defines optional World attributes.
//
//	w := physics.NewWorld(
//	    physics.Gravity(0, -9.81, 0),
//	)
type Attr func(*Config)

// Gravity sets the uniform acceleration applied to every dynamic body each
// Simulate call. For use in NewWorld.
func Gravity(x, y, z float64) Attr {
	return func(c *Config) { c.gravity = lin.Vec3{X: x, Y: y, Z: z} }
}

// Logger replaces the World's default logger, used only for diagnostic
// detail (simulation-island counts and the like) at debug level. For use in
// NewWorld.
func Logger(logger *slog.Logger) Attr {
	return func(c *Config) { c.logger = logger }
}

// NewWorld returns an Empty World configured by opts, in order.
func NewWorld(opts ...Attr) *World {
	cfg := configDefaults
	cfg.logger = slog.Default()
	for _, opt := range opts {
		opt(&cfg)
	}
	return Empty().WithGravity(&cfg.gravity).WithLogger(cfg.logger)
}
