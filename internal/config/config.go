package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/jask/termface/theme"
	"github.com/jask/termface/timepicker"
	"github.com/jask/termface/timespinner"
)

// EnvPrefix prefixes every environment override, e.g. TERMFACE_UI_THEME.
const EnvPrefix = "TERMFACE"

var ErrInvalidConfig = errors.New("invalid config")

// Config holds application configuration.
type Config struct {
	Picker PickerConfig `mapstructure:"picker"`
	UI     UIConfig     `mapstructure:"ui"`
	Lang   LangConfig   `mapstructure:"lang"`
	Log    LogConfig    `mapstructure:"log"`
}

// PickerConfig holds time picker defaults.
type PickerConfig struct {
	TimeFormat  string `mapstructure:"time_format"`
	HourFormat  string `mapstructure:"hour_format"`
	ShowSeconds bool   `mapstructure:"show_seconds"`

	// Theme pins popups to their own palette; empty follows ui.theme.
	Theme string `mapstructure:"theme"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme  string  `mapstructure:"theme"`
	Locale string  `mapstructure:"locale"`
	Scale  float64 `mapstructure:"scale"`
}

// LangConfig points at extra label catalogs.
type LangConfig struct {
	Dir string `mapstructure:"dir"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("picker.time_format", timepicker.DefaultTimeFormat)
	v.SetDefault("picker.hour_format", string(timespinner.Hour24))
	v.SetDefault("picker.show_seconds", true)
	v.SetDefault("picker.theme", "")
	v.SetDefault("ui.theme", "dark")
	v.SetDefault("ui.locale", "en")
	v.SetDefault("ui.scale", 1.0)
	v.SetDefault("lang.dir", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// Path returns the config file location: $TERMFACE_CONFIG, otherwise
// config.toml under the user config dir.
func Path() (string, error) {
	if p := os.Getenv(EnvPrefix + "_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "termface", "config.toml"), nil
}

// Load reads configuration from the default path and env.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Config{}, err
	}
	return LoadFile(path)
}

// LoadFile reads configuration from path, which may not exist, with env
// overrides applied on top.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	v.SetConfigFile(path)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
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

// Validate rejects values the picker cannot use.
func (c Config) Validate() error {
	if _, err := timespinner.ParseHourFormat(c.Picker.HourFormat); err != nil {
		return fmt.Errorf("%w: picker.hour_format: %w", ErrInvalidConfig, err)
	}
	if strings.TrimSpace(c.Picker.TimeFormat) == "" {
		return fmt.Errorf("%w: picker.time_format is empty", ErrInvalidConfig)
	}
	if c.UI.Scale <= 0 {
		return fmt.Errorf("%w: ui.scale must be positive, got %v", ErrInvalidConfig, c.UI.Scale)
	}
	if _, err := theme.Lookup(c.UI.Theme); err != nil {
		return fmt.Errorf("%w: ui.theme: %w", ErrInvalidConfig, err)
	}
	if c.Picker.Theme != "" {
		if _, err := theme.Lookup(c.Picker.Theme); err != nil {
			return fmt.Errorf("%w: picker.theme: %w", ErrInvalidConfig, err)
		}
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Level returns the parsed log level, defaulting to info.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// TimePicker builds the picker configuration these settings describe.
func (c Config) TimePicker() timepicker.Config {
	pc := timepicker.DefaultConfig()
	pc.TimeFormat = c.Picker.TimeFormat
	pc.HourFormat = timespinner.HourFormat(c.Picker.HourFormat)
	pc.ShowSeconds = c.Picker.ShowSeconds
	pc.Theme = c.Picker.Theme
	pc.Locale = c.UI.Locale
	return pc
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("picker.time_format", cfg.Picker.TimeFormat)
	v.Set("picker.hour_format", cfg.Picker.HourFormat)
	v.Set("picker.show_seconds", cfg.Picker.ShowSeconds)
	v.Set("picker.theme", cfg.Picker.Theme)
	v.Set("ui.theme", cfg.UI.Theme)
	v.Set("ui.locale", cfg.UI.Locale)
	v.Set("ui.scale", cfg.UI.Scale)
	v.Set("lang.dir", cfg.Lang.Dir)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
