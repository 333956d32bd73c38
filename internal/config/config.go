package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/tanyabudhrani/Task-Management-System/internal/criteria"
	"github.com/tanyabudhrani/Task-Management-System/internal/logger"
	"github.com/tanyabudhrani/Task-Management-System/internal/state"
)

// Config represents the complete tms configuration
type Config struct {
	// StatePath is the JSON snapshot the CLI loads and saves
	StatePath string `mapstructure:"state_path"`
	// Fold selects how && and || are folded: "corrected" or "literal"
	Fold string        `mapstructure:"fold"`
	Log  LoggingConfig `mapstructure:"log"`
}

// LoggingConfig controls diagnostic output
type LoggingConfig struct {
	// Level is one of debug, info, warn, error
	Level string `mapstructure:"level"`
	// JSON switches the log formatter from text to JSON
	JSON bool `mapstructure:"json"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		StatePath: state.DefaultPath(),
		Fold:      criteria.FoldCorrected.String(),
		Log: LoggingConfig{
			Level: string(logger.WarnLevel),
			JSON:  false,
		},
	}
}

// SetDefaults registers every default on v
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("state_path", defaults.StatePath)
	v.SetDefault("fold", defaults.Fold)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.json", defaults.Log.JSON)
}

// New returns a viper instance with defaults, environment binding and, when
// present, the config file. An explicit cfgFile must exist.
func New(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("tms")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(ConfigDir())
	}

	v.SetEnvPrefix("TMS")
	// TMS_LOG_LEVEL for log.level
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// Load reads the configuration from v into a Config struct and validates it
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// FoldMode returns the parsed fold mode. Call after Validate.
func (c *Config) FoldMode() criteria.FoldMode {
	mode, err := criteria.ParseFoldMode(c.Fold)
	if err != nil {
		return criteria.FoldCorrected
	}
	return mode
}

// LoggerConfig builds the logger configuration writing to out.
func (c *Config) LoggerConfig(out io.Writer) *logger.Config {
	level, ok := logger.ParseLevel(c.Log.Level)
	if !ok {
		level = logger.WarnLevel
	}
	return &logger.Config{Level: level, Output: out, JSON: c.Log.JSON}
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tms")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tms"
	}
	return filepath.Join(home, ".config", "tms")
}
