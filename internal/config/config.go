// Package config holds the runtime knobs of the test application.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"gles2test/internal/input"
	"gles2test/internal/render"
)

// Window defaults.
const (
	DefaultTitle  = "OpenGL ES 2.0 Test"
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Timing defaults.
const (
	DefaultFrameRate      = 60.0
	DefaultSensorInterval = 20 * time.Millisecond
)

// Policy names accepted in YAML.
const (
	StationaryIgnore = "ignore"
	StationaryUpdate = "update"

	ShaderFailureFatal = "fatal"
	ShaderFailureRetry = "retry"
)

type Window struct {
	Title      string `yaml:"title"`
	Fullscreen bool   `yaml:"fullscreen"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
}

type Config struct {
	Window         Window        `yaml:"window"`
	FrameRate      float64       `yaml:"frame_rate"`
	Accelerometer  bool          `yaml:"accelerometer"`
	SensorInterval time.Duration `yaml:"sensor_interval"`
	Stationary     string        `yaml:"stationary"`
	ClampGauges    bool          `yaml:"clamp_gauges"`
	ShaderFailure  string        `yaml:"shader_failure"`
	TouchFeedback  bool          `yaml:"touch_feedback"`
	ShowFPS        bool          `yaml:"show_fps"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Window: Window{
			Title:      DefaultTitle,
			Fullscreen: true,
			Width:      DefaultWidth,
			Height:     DefaultHeight,
		},
		FrameRate:      DefaultFrameRate,
		Accelerometer:  true,
		SensorInterval: DefaultSensorInterval,
		Stationary:     StationaryIgnore,
		ClampGauges:    true,
		ShaderFailure:  ShaderFailureFatal,
	}
}

// Parse decodes YAML on top of Default. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses the file at path. An empty path yields Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

func (c Config) Validate() error {
	if c.FrameRate <= 0 || math.IsNaN(c.FrameRate) || math.IsInf(c.FrameRate, 0) {
		return fmt.Errorf("frame_rate must be positive and finite, got %v", c.FrameRate)
	}
	if c.TickPeriod() <= 0 {
		return fmt.Errorf("frame_rate %v is too high for a tick period", c.FrameRate)
	}
	if !c.Window.Fullscreen && (c.Window.Width <= 0 || c.Window.Height <= 0) {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.SensorInterval < 0 {
		return fmt.Errorf("sensor_interval must not be negative, got %v", c.SensorInterval)
	}
	if _, err := c.StationaryPolicy(); err != nil {
		return err
	}
	if _, err := c.FailurePolicy(); err != nil {
		return err
	}
	return nil
}

// TickPeriod is the interval between two periodic renders.
func (c Config) TickPeriod() time.Duration {
	return time.Duration(float64(time.Second) / c.FrameRate)
}

func (c Config) StationaryPolicy() (input.StationaryPolicy, error) {
	switch c.Stationary {
	case StationaryIgnore, "":
		return input.StationaryIgnore, nil
	case StationaryUpdate:
		return input.StationaryUpdate, nil
	}
	return 0, fmt.Errorf("unknown stationary policy %q", c.Stationary)
}

func (c Config) FailurePolicy() (render.FailurePolicy, error) {
	switch c.ShaderFailure {
	case ShaderFailureFatal, "":
		return render.FailFatal, nil
	case ShaderFailureRetry:
		return render.FailRetry, nil
	}
	return 0, fmt.Errorf("unknown shader failure policy %q", c.ShaderFailure)
}
