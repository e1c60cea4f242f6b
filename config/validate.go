package config

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap/zapcore"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return errors.WithHint(
			errors.Newf("log.level %q is not a log level", c.Log.Level),
			"use debug, info, warn or error",
		)
	}

	// Batch workers: 0 = single worker, negative = invalid
	if c.Batch.Workers < 0 {
		return errors.Newf("batch.workers must be >= 0, got %d", c.Batch.Workers)
	}

	if c.Scene.AberrationCorrection == "" {
		return errors.WithHint(
			errors.New("scene.aberration_correction cannot be empty"),
			"use NONE for geometric states",
		)
	}
	if c.Scene.SPICEObject != "" && c.Scene.SPICEFrame == "" {
		return errors.New("scene.spice_frame cannot be empty when scene.spice_object is set")
	}

	if c.Example.Steps < 0 {
		return errors.Newf("example.steps must be >= 0, got %d", c.Example.Steps)
	}
	if c.Example.StepSeconds <= 0 {
		return errors.Newf("example.step_seconds must be > 0, got %g", c.Example.StepSeconds)
	}

	return nil
}
