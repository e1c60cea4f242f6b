package config

import (
	"github.com/spf13/viper"

	"github.com/akmonengine/frames/ephemeris"
)

// EnvPrefix is the prefix of environment overrides, e.g. FRAMES_LOG_LEVEL.
const EnvPrefix = "FRAMES"

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)

	v.SetDefault("scene.name", "scene")
	v.SetDefault("scene.spice_object", "")
	v.SetDefault("scene.spice_frame", "")
	v.SetDefault("scene.aberration_correction", ephemeris.NoCorrection)

	v.SetDefault("batch.workers", 1)

	v.SetDefault("example.start_et", 0.0)
	v.SetDefault("example.step_seconds", 3600.0) // one hour
	v.SetDefault("example.steps", 24)
}
