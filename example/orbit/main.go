// Command orbit steps a small Sun/Earth/Moon scene through an analytic
// ephemeris and prints the resulting frame states.
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/akmonengine/frames"
	"github.com/akmonengine/frames/config"
	"github.com/akmonengine/frames/ephemeris"
)

const (
	earthOrbitRadius = 1.496e11 // m
	earthYear        = 365.25 * 86400
	moonOrbitRadius  = 3.844e8
	moonMonth        = 27.32 * 86400
	earthSiderealDay = 86164.1
	moonRadius       = 1.7374e6
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "orbit",
	Short: "Step a Sun/Earth/Moon frame tree through an analytic ephemeris",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := config.New()
		if configPath != "" {
			v.SetConfigFile(configPath)
			v.SetConfigType("toml")
			if err := v.ReadInConfig(); err != nil {
				return errors.Wrapf(err, "failed to read config file %s", configPath)
			}
		}
		if err := v.BindPFlag("example.steps", cmd.Flags().Lookup("steps")); err != nil {
			return err
		}
		if err := v.BindPFlag("example.step_seconds", cmd.Flags().Lookup("step")); err != nil {
			return err
		}

		cfg, err := config.LoadWithViper(v)
		if err != nil {
			return err
		}
		logger, err := config.NewLogger(cfg.Log)
		if err != nil {
			return err
		}
		defer logger.Sync()

		return run(cfg, logger)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML configuration file")
	rootCmd.Flags().Int("steps", 24, "number of steps")
	rootCmd.Flags().Float64("step", 3600, "seconds between steps")
}

func newEphemeris() *ephemeris.Table {
	table := ephemeris.NewTable("J2000")
	sun := ephemeris.Fixed(mgl64.Vec3{})
	earth := ephemeris.CircularOrbit(sun, earthOrbitRadius, earthYear, 0)
	table.AddBody("SUN", sun)
	table.AddBody("EARTH", earth)
	table.AddBody("MOON", ephemeris.CircularOrbit(earth, moonOrbitRadius, moonMonth, math.Pi/3))
	table.AddFrame("IAU_EARTH", ephemeris.Spin(mgl64.Vec3{0, 0, 1}, 2*math.Pi/earthSiderealDay, 0))
	table.AddFrame("MOON_ME", ephemeris.Spin(mgl64.Vec3{0, 0, 1}, 2*math.Pi/moonMonth, math.Pi/3))
	return table
}

func run(cfg *config.Config, logger *zap.Logger) error {
	sceneCfg := cfg.Scene
	if sceneCfg.SPICEObject == "" {
		sceneCfg.SPICEObject, sceneCfg.SPICEFrame = "SUN", "J2000"
	}

	scene, err := frames.NewScene(
		frames.WithConfig(sceneCfg),
		frames.WithLogger(logger),
		frames.WithWorkers(cfg.Batch.Workers),
	)
	if err != nil {
		return err
	}

	earthID, err := scene.NewFrame(frames.RootID, "earth")
	if err != nil {
		return err
	}
	moonID, err := scene.NewFrame(earthID, "moon")
	if err != nil {
		return err
	}
	earth, err := scene.Frame(earthID)
	if err != nil {
		return err
	}
	moon, err := scene.Frame(moonID)
	if err != nil {
		return err
	}
	if err := earth.ConfigureSPICE("EARTH", "IAU_EARTH"); err != nil {
		return err
	}
	if err := moon.ConfigureSPICE("MOON", "MOON_ME"); err != nil {
		return err
	}

	updated := 0
	scene.Subscribe(frames.SPICE_UPDATED, func(frames.Event) { updated++ })

	// Sub-observer point and two limb points on the Moon.
	surface := []mgl64.Vec3{
		{-moonRadius, 0, 0},
		{0, moonRadius, 0},
		{0, -moonRadius, 0},
	}

	table := newEphemeris()
	for step := 0; step <= cfg.Example.Steps; step++ {
		et := cfg.Example.StartET + float64(step)*cfg.Example.StepSeconds
		if err := scene.UpdateSPICE(table, et); err != nil {
			return err
		}
		scene.Flush()

		points, err := scene.LocalToGlobalPoints(moonID, surface, 0)
		if err != nil {
			return err
		}

		local := moon.LocalTRS()
		fmt.Printf("et=%10.0f  earth=%v m  moon(earth)=%v m  |v_moon|=%.1f m/s  limb=%v m\n",
			et,
			earth.GlobalPosition(),
			local.Position,
			moon.GlobalVelocity().Len(),
			points[1])
	}

	logger.Info("orbit finished",
		zap.Int("steps", cfg.Example.Steps),
		zap.Int("spice_updates", updated))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
