// Package config loads plotter configuration from JSON and maps it onto
// the core machine configuration. Fields absent from the file keep their
// defaults, so a config file only needs to name what differs from the
// stock wiring.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"goplot/core"
)

// AxisConfig describes one axis' wiring and homing behavior.
type AxisConfig struct {
	CoilPins    [4]uint32 `json:"coil_pins"`
	InvertDir   bool      `json:"invert_dir"`
	LimitPin    uint32    `json:"limit_pin"`
	InvertLimit bool      `json:"invert_limit"`
	HomeDir     int       `json:"home_dir"`
	Backoff     int       `json:"backoff_steps"`
}

// Config is the full plotter configuration.
type Config struct {
	Device        string                `json:"device"`
	Baud          int                   `json:"baud"`
	StepDelayUs   int                   `json:"step_delay_us"`
	HomingDelayUs int                   `json:"homing_delay_us"`
	Axes          map[string]AxisConfig `json:"axes"`
}

// axisNames fixes the axis order used by the machine mapping.
var axisNames = [core.NumAxes]string{"x", "y", "z"}

// Default returns the stock configuration: 28BYJ-48 steppers on
// consecutive GPIO banks, X and Y with inverted winding order, and the
// pen axis backing off 750 half-steps after homing.
func Default() Config {
	return Config{
		Device:        "/dev/ttyACM0",
		Baud:          9600,
		StepDelayUs:   2000,
		HomingDelayUs: 4000,
		Axes: map[string]AxisConfig{
			"x": {CoilPins: [4]uint32{2, 3, 4, 5}, InvertDir: true, LimitPin: 14, HomeDir: -1},
			"y": {CoilPins: [4]uint32{6, 7, 8, 9}, InvertDir: true, LimitPin: 15, HomeDir: 1},
			"z": {CoilPins: [4]uint32{10, 11, 12, 13}, LimitPin: 16, HomeDir: -1, Backoff: 750},
		},
	}
}

// Load parses a JSON configuration. Missing fields keep their defaults;
// axes present in the file replace the default axis wholesale.
func Load(data []byte) (Config, error) {
	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads and parses a JSON configuration file.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Load(data)
}

func (c Config) validate() error {
	if c.Baud <= 0 {
		return fmt.Errorf("baud must be positive, got %d", c.Baud)
	}
	if c.StepDelayUs <= 0 || c.HomingDelayUs <= 0 {
		return fmt.Errorf("step delays must be positive")
	}
	for _, name := range axisNames {
		ax, ok := c.Axes[name]
		if !ok {
			return fmt.Errorf("axis %q missing from config", name)
		}
		if ax.HomeDir != 1 && ax.HomeDir != -1 {
			return fmt.Errorf("axis %q: home_dir must be 1 or -1, got %d", name, ax.HomeDir)
		}
		if ax.Backoff < 0 {
			return fmt.Errorf("axis %q: backoff_steps must not be negative", name)
		}
	}
	return nil
}

// Machine maps the configuration onto the motion core.
func (c Config) Machine() (core.Config, error) {
	if err := c.validate(); err != nil {
		return core.Config{}, err
	}
	mc := core.Config{
		StepDelay:   time.Duration(c.StepDelayUs) * time.Microsecond,
		HomingDelay: time.Duration(c.HomingDelayUs) * time.Microsecond,
	}
	for i, name := range axisNames {
		ax := c.Axes[name]
		mc.Axes[i] = core.AxisConfig{
			Coils: [4]core.Pin{
				core.Pin(ax.CoilPins[0]),
				core.Pin(ax.CoilPins[1]),
				core.Pin(ax.CoilPins[2]),
				core.Pin(ax.CoilPins[3]),
			},
			InvertDir:   ax.InvertDir,
			LimitPin:    core.Pin(ax.LimitPin),
			InvertLimit: ax.InvertLimit,
			HomeDir:     ax.HomeDir,
			Backoff:     ax.Backoff,
		}
	}
	return mc, nil
}
