package config

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, RendererWindow, cfg.Renderer)
	assert.Equal(t, 600, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, "60 Seconds Timer", cfg.Window.Title)
	assert.True(t, cfg.Window.ErrorDialog)
	assert.Equal(t, 250.0, cfg.Clock.Radius)
	assert.Equal(t, 7.0, cfg.Clock.MarkerRadius)
	assert.Equal(t, 10.0, cfg.Clock.QuarterMarkerRadius)
	assert.Equal(t, "#EAB638", cfg.Colors.Marker)
	assert.Equal(t, "#EA313F", cfg.Colors.Past)
	assert.Equal(t, "#F1FFFA", cfg.Colors.Label)
	assert.Equal(t, "#2F3D4C", cfg.Colors.Background)
	assert.Equal(t, "60 Seconds Timer", cfg.Label.Text)
	assert.Equal(t, "Go Bold", cfg.Label.Font)
	assert.Equal(t, 16.0, cfg.Label.Size)
	assert.Equal(t, 30, cfg.Terminal.FPS)
	assert.False(t, cfg.Audio.Enabled)
	assert.Equal(t, -1.5, cfg.Audio.Volume)
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "timer.json")
	cfg := `{
		"logLevel": "debug",
		"renderer": "terminal",
		"clock": { "radius": 200 },
		"colors": { "past": "#112233" },
		"terminal": { "fps": 20 }
	}`
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0644))

	c, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, RendererTerminal, c.Renderer)
	assert.Equal(t, 200.0, c.Clock.Radius)
	assert.Equal(t, 7.0, c.Clock.MarkerRadius)
	assert.Equal(t, "#112233", c.Colors.Past)
	assert.Equal(t, 20, c.Terminal.FPS)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "timer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window:\n  width: 800\n  height: 700\nlabel:\n  text: Egg timer\n"), 0644))

	c, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, 800, c.Window.Width)
	assert.Equal(t, 700, c.Window.Height)
	assert.Equal(t, "Egg timer", c.Label.Text)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(viper.New(), "/nonexistent/path/timer.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("TIMER_RENDERER", "terminal")
	t.Setenv("TIMER_CLOCK_RADIUS", "120")

	c, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, RendererTerminal, c.Renderer)
	assert.Equal(t, 120.0, c.Clock.Radius)
}

func TestLoad_FlagOverride(t *testing.T) {
	v := viper.New()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	require.NoError(t, BindFlags(v, fs))
	require.NoError(t, fs.Parse([]string{"--renderer=terminal", "--log-level=warn", "--audio"}))

	c, err := Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, RendererTerminal, c.Renderer)
	assert.Equal(t, "warn", c.LogLevel)
	assert.True(t, c.Audio.Enabled)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
	}{
		{"zero width", "window.width", 0},
		{"radius too large", "clock.radius", 295},
		{"negative marker radius", "clock.markerRadius", -1},
		{"unknown renderer", "renderer", "opengl"},
		{"bad color", "colors.background", "grey"},
		{"fps too high", "terminal.fps", 1000},
		{"no label size", "label.size", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set(tt.key, tt.val)
			_, err := Load(v, "")
			require.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#EA313F")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 234, G: 49, B: 63, A: 255}, c)

	_, err = ParseColor("red")
	require.ErrorIs(t, err, ErrInvalid)
}

func TestTimerOptions(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	o, err := cfg.TimerOptions()
	require.NoError(t, err)

	assert.Equal(t, 600, o.Width)
	assert.Equal(t, 250.0, o.ClockRadius)
	assert.Equal(t, color.RGBA{R: 234, G: 182, B: 56, A: 255}, o.Palette.Marker)
	assert.Equal(t, color.RGBA{R: 234, G: 49, B: 63, A: 255}, o.Palette.Past)
	assert.Equal(t, color.RGBA{R: 241, G: 255, B: 250, A: 255}, o.Palette.Label)
	assert.Equal(t, color.RGBA{R: 47, G: 61, B: 76, A: 255}, o.Palette.Background)
	assert.Equal(t, "60 Seconds Timer", o.LabelText)
}

func TestWriteYAML(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, cfg.WriteYAML(&buf))

	var back Config
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, *cfg, back)
	assert.Contains(t, buf.String(), "renderer: window")
}
