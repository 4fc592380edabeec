package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"gles2test/internal/input"
	"gles2test/internal/render"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, cfg.Validate(), nil)
	assert.Equal(t, cfg.Window.Fullscreen, true)
	assert.Equal(t, cfg.FrameRate, 60.0)
	assert.Equal(t, cfg.ClampGauges, true)

	p, err := cfg.StationaryPolicy()
	assert.Equal(t, err, nil)
	assert.Equal(t, p, input.StationaryIgnore)

	f, err := cfg.FailurePolicy()
	assert.Equal(t, err, nil)
	assert.Equal(t, f, render.FailFatal)
}

func TestTickPeriod(t *testing.T) {
	cfg := Default()
	p := cfg.TickPeriod()
	assert.Equal(t, p > 16*time.Millisecond, true)
	assert.Equal(t, p < 17*time.Millisecond, true)
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
window:
  title: bench
  fullscreen: false
  width: 640
  height: 480
frame_rate: 30
sensor_interval: 50ms
stationary: update
clamp_gauges: false
shader_failure: retry
touch_feedback: true
`))
	assert.Equal(t, err, nil)
	assert.Equal(t, cfg.Window, Window{Title: "bench", Width: 640, Height: 480})
	assert.Equal(t, cfg.FrameRate, 30.0)
	assert.Equal(t, cfg.SensorInterval, 50*time.Millisecond)
	assert.Equal(t, cfg.ClampGauges, false)
	assert.Equal(t, cfg.TouchFeedback, true)
	// untouched keys keep their defaults
	assert.Equal(t, cfg.Accelerometer, true)

	p, _ := cfg.StationaryPolicy()
	assert.Equal(t, p, input.StationaryUpdate)
	f, _ := cfg.FailurePolicy()
	assert.Equal(t, f, render.FailRetry)
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	assert.Equal(t, err, nil)
	assert.Equal(t, cfg, Default())
}

func TestParseErrors(t *testing.T) {
	bad := []string{
		"frame_rate: 0",
		"frame_rate: -30",
		"frame_rate: .inf",
		"frame_rate: .nan",
		"frame_rate: 1e12",
		"stationary: sometimes",
		"shader_failure: ignore",
		"window: {fullscreen: false, width: 0, height: 10}",
		"unknown_key: 1",
		"sensor_interval: -1s",
	}
	for _, doc := range bad {
		_, err := Parse([]byte(doc))
		assert.NotEqual(t, err, nil)
	}
}

func TestValidateTickPeriod(t *testing.T) {
	for _, rate := range []float64{1, 60, 240, 1e6} {
		cfg := Default()
		cfg.FrameRate = rate
		assert.Equal(t, cfg.Validate(), nil)
		assert.Equal(t, cfg.TickPeriod() > 0, true)
	}

	cfg := Default()
	cfg.FrameRate = 1e12
	assert.NotEqual(t, cfg.Validate(), nil)
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	assert.Equal(t, err, nil)
	assert.Equal(t, cfg, Default())

	path := filepath.Join(t.TempDir(), "gles2test.yaml")
	assert.Equal(t, os.WriteFile(path, []byte("show_fps: true\n"), 0o644), nil)
	cfg, err = Load(path)
	assert.Equal(t, err, nil)
	assert.Equal(t, cfg.ShowFPS, true)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NotEqual(t, err, nil)
}
