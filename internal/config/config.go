package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"ovals/internal/palette"
)

// Config holds application configuration.
type Config struct {
	Surface SurfaceConfig
	Shape   ShapeConfig
	Mirror  MirrorConfig
}

// SurfaceConfig sizes the drawing surface.
type SurfaceConfig struct {
	Width      int
	Height     int
	Background string
}

// ShapeConfig holds the defaults of newly drawn ellipses.
type ShapeConfig struct {
	DefaultWidth  float64 `mapstructure:"default_width"`
	DefaultHeight float64 `mapstructure:"default_height"`
	BorderWidth   float64 `mapstructure:"border_width"`
	FillColor     string  `mapstructure:"fill_color"`
	BorderColor   string  `mapstructure:"border_color"`
}

// MirrorConfig controls the on-disk copy of the description panel.
type MirrorConfig struct {
	Enabled bool
	Path    string
}

// Load reads configuration from file and env. Env var overrides use prefix OVALS_.
func Load() (Config, error) {
	v := viper.New()

	home, _ := os.UserHomeDir()
	v.SetDefault("surface.width", 567)
	v.SetDefault("surface.height", 567)
	v.SetDefault("surface.background", "lavender")
	v.SetDefault("shape.default_width", 1.0)
	v.SetDefault("shape.default_height", 1.0)
	v.SetDefault("shape.border_width", 1.0)
	v.SetDefault("shape.fill_color", "green")
	v.SetDefault("shape.border_color", "midnightblue")
	v.SetDefault("mirror.enabled", false)
	v.SetDefault("mirror.path", filepath.Join(home, ".local", "share", "ovals", "canvas.ovals"))

	v.SetConfigType("toml")

	cfgPath := os.Getenv("OVALS_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "ovals"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("OVALS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicitly named file must exist; the default location is optional.
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the editor cannot work with.
func (c Config) Validate() error {
	if c.Surface.Width <= 0 || c.Surface.Height <= 0 {
		return fmt.Errorf("surface size must be positive, got %dx%d", c.Surface.Width, c.Surface.Height)
	}
	if c.Shape.DefaultWidth < 0 || c.Shape.DefaultHeight < 0 || c.Shape.BorderWidth < 0 {
		return fmt.Errorf("shape defaults must not be negative")
	}
	for _, col := range []string{c.Surface.Background, c.Shape.FillColor, c.Shape.BorderColor} {
		if !palette.Valid(col) {
			return fmt.Errorf("unknown color %q", col)
		}
	}
	if c.Mirror.Enabled && c.Mirror.Path == "" {
		return fmt.Errorf("mirror.path is required when the mirror is enabled")
	}
	return nil
}
