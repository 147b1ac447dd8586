package config

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/timer-visualization/internal/timer"
)

const (
	WindowWidth  = 600
	WindowHeight = 600
	WindowTitle  = "60 Seconds Timer"

	// Clock face
	ClockRadius         = 250
	MarkerRadius        = 7
	QuarterMarkerRadius = 10

	// Colors
	Red    = "#EA313F"
	Yellow = "#EAB638"
	Cream  = "#F1FFFA"
	Grey   = "#2F3D4C"

	// Title label
	LabelText = "60 Seconds Timer"
	LabelFont = "Go Bold"
	LabelSize = 16

	RendererWindow   = "window"
	RendererTerminal = "terminal"

	TerminalFPS = 30

	// Audio tick, volume is in beep's base-2 scale
	AudioVolume = -1.5
)

// WindowConfig holds window renderer settings.
type WindowConfig struct {
	Width       int    `mapstructure:"width" yaml:"width"`
	Height      int    `mapstructure:"height" yaml:"height"`
	Title       string `mapstructure:"title" yaml:"title"`
	ErrorDialog bool   `mapstructure:"errorDialog" yaml:"errorDialog"`
}

// ClockConfig holds the clock face geometry.
type ClockConfig struct {
	Radius              float64 `mapstructure:"radius" yaml:"radius"`
	MarkerRadius        float64 `mapstructure:"markerRadius" yaml:"markerRadius"`
	QuarterMarkerRadius float64 `mapstructure:"quarterMarkerRadius" yaml:"quarterMarkerRadius"`
}

// ColorConfig holds hex colors (#RRGGBB).
type ColorConfig struct {
	Marker     string `mapstructure:"marker" yaml:"marker"`
	Past       string `mapstructure:"past" yaml:"past"`
	Label      string `mapstructure:"label" yaml:"label"`
	Background string `mapstructure:"background" yaml:"background"`
}

// LabelConfig holds the title label settings.
type LabelConfig struct {
	Text string  `mapstructure:"text" yaml:"text"`
	Font string  `mapstructure:"font" yaml:"font"`
	Size float64 `mapstructure:"size" yaml:"size"`
}

type TerminalConfig struct {
	FPS int `mapstructure:"fps" yaml:"fps"`
}

type AudioConfig struct {
	Enabled bool    `mapstructure:"enabled" yaml:"enabled"`
	Volume  float64 `mapstructure:"volume" yaml:"volume"`
}

// Config is the complete application configuration.
type Config struct {
	LogLevel string         `mapstructure:"logLevel" yaml:"logLevel"`
	Renderer string         `mapstructure:"renderer" yaml:"renderer"`
	Window   WindowConfig   `mapstructure:"window" yaml:"window"`
	Clock    ClockConfig    `mapstructure:"clock" yaml:"clock"`
	Colors   ColorConfig    `mapstructure:"colors" yaml:"colors"`
	Label    LabelConfig    `mapstructure:"label" yaml:"label"`
	Terminal TerminalConfig `mapstructure:"terminal" yaml:"terminal"`
	Audio    AudioConfig    `mapstructure:"audio" yaml:"audio"`
}

var ErrInvalid = errors.New("invalid configuration")

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("renderer", RendererWindow)

	v.SetDefault("window.width", WindowWidth)
	v.SetDefault("window.height", WindowHeight)
	v.SetDefault("window.title", WindowTitle)
	v.SetDefault("window.errorDialog", true)

	v.SetDefault("clock.radius", ClockRadius)
	v.SetDefault("clock.markerRadius", MarkerRadius)
	v.SetDefault("clock.quarterMarkerRadius", QuarterMarkerRadius)

	v.SetDefault("colors.marker", Yellow)
	v.SetDefault("colors.past", Red)
	v.SetDefault("colors.label", Cream)
	v.SetDefault("colors.background", Grey)

	v.SetDefault("label.text", LabelText)
	v.SetDefault("label.font", LabelFont)
	v.SetDefault("label.size", LabelSize)

	v.SetDefault("terminal.fps", TerminalFPS)

	v.SetDefault("audio.enabled", false)
	v.SetDefault("audio.volume", AudioVolume)
}

// BindFlags registers the command line overrides on fs and binds them to v.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	fs.String("renderer", RendererWindow, "renderer to use: window or terminal")
	fs.String("log-level", "info", "log level: trace, debug, info, warn, error")
	fs.Bool("audio", false, "play a tick every second")

	for key, flag := range map[string]string{
		"renderer":      "renderer",
		"logLevel":      "log-level",
		"audio.enabled": "audio",
	} {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return fmt.Errorf("error binding flag %s: %w", flag, err)
		}
	}
	return nil
}

// Load reads the configuration from v. If path is not empty the file is read
// first; its format follows the extension. TIMER_ environment variables
// override file values, e.g. TIMER_CLOCK_RADIUS.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix("timer")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values Load cannot check on its own.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Clock.Radius <= 0 || c.Clock.MarkerRadius <= 0 || c.Clock.QuarterMarkerRadius <= 0 {
		return fmt.Errorf("%w: clock radii must be positive", ErrInvalid)
	}
	half := float64(min(c.Window.Width, c.Window.Height)) / 2
	if c.Clock.Radius+c.Clock.QuarterMarkerRadius > half {
		return fmt.Errorf("%w: clock radius %v does not fit a %dx%d window",
			ErrInvalid, c.Clock.Radius, c.Window.Width, c.Window.Height)
	}
	if c.Label.Size <= 0 {
		return fmt.Errorf("%w: label size %v", ErrInvalid, c.Label.Size)
	}

	switch c.Renderer {
	case RendererWindow, RendererTerminal:
	default:
		return fmt.Errorf("%w: unknown renderer %q", ErrInvalid, c.Renderer)
	}

	if c.Terminal.FPS < 1 || c.Terminal.FPS > 240 {
		return fmt.Errorf("%w: terminal fps %d not in 1..240", ErrInvalid, c.Terminal.FPS)
	}

	if _, err := c.Palette(); err != nil {
		return err
	}
	return nil
}

// ParseColor parses a #RRGGBB hex color into an opaque color.RGBA.
func ParseColor(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: color %q: %v", ErrInvalid, s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Palette parses the configured colors.
func (c *Config) Palette() (timer.Palette, error) {
	var p timer.Palette
	for _, f := range []struct {
		hex string
		dst *color.RGBA
	}{
		{c.Colors.Marker, &p.Marker},
		{c.Colors.Past, &p.Past},
		{c.Colors.Label, &p.Label},
		{c.Colors.Background, &p.Background},
	} {
		rgba, err := ParseColor(f.hex)
		if err != nil {
			return timer.Palette{}, err
		}
		*f.dst = rgba
	}
	return p, nil
}

// TimerOptions converts the configuration into timer options.
func (c *Config) TimerOptions() (timer.Options, error) {
	p, err := c.Palette()
	if err != nil {
		return timer.Options{}, err
	}
	return timer.Options{
		Width:               c.Window.Width,
		Height:              c.Window.Height,
		ClockRadius:         c.Clock.Radius,
		MarkerRadius:        c.Clock.MarkerRadius,
		QuarterMarkerRadius: c.Clock.QuarterMarkerRadius,
		Palette:             p,
		LabelText:           c.Label.Text,
		LabelFont:           c.Label.Font,
		LabelSize:           c.Label.Size,
	}, nil
}

// WriteYAML writes the effective configuration to w.
func (c *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	return enc.Close()
}
