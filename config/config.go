// Package config loads scene and logging settings with viper.
package config

// Config is the full configuration of a scene and the tools driving it.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Scene   SceneConfig   `mapstructure:"scene"`
	Batch   BatchConfig   `mapstructure:"batch"`
	Example ExampleConfig `mapstructure:"example"`
}

// LogConfig selects the zap logger built by NewLogger
type LogConfig struct {
	Level string `mapstructure:"level"` // debug, info, warn, error
	JSON  bool   `mapstructure:"json"`  // production JSON encoder instead of console
}

// SceneConfig describes the scene root
type SceneConfig struct {
	Name                 string `mapstructure:"name"`
	SPICEObject          string `mapstructure:"spice_object"`          // NAIF name of the root body, empty = unconfigured
	SPICEFrame           string `mapstructure:"spice_frame"`           // orientation frame of the root
	AberrationCorrection string `mapstructure:"aberration_correction"` // passed to every state query
}

// BatchConfig configures batch point conversion
type BatchConfig struct {
	Workers int `mapstructure:"workers"` // 0 = one worker
}

// ExampleConfig drives the orbit example
type ExampleConfig struct {
	StartET     float64 `mapstructure:"start_et"`     // ephemeris time of the first step, seconds
	StepSeconds float64 `mapstructure:"step_seconds"` // time between steps
	Steps       int     `mapstructure:"steps"`
}
