// Package config handles configuration loading using viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"firestige.xyz/bitpacket/internal/core"
)

// Config represents the top-level configuration.
// Maps to the `bitpacket:` root key in YAML.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Decoder DecoderConfig `mapstructure:"decoder"`
	Output  OutputConfig  `mapstructure:"output"`
}

// ─── Log ───

// LogConfig contains logging settings.
type LogConfig struct {
	Level        string           `mapstructure:"level"`         // trace / debug / info / warn / error
	Format       string           `mapstructure:"format"`        // pattern / text / json
	Pattern      string           `mapstructure:"pattern"`       // used when format = pattern
	TimeFormat   string           `mapstructure:"time_format"`   // Go time layout
	ReportCaller bool             `mapstructure:"report_caller"` // fills %caller and %func
	Outputs      LogOutputsConfig `mapstructure:"outputs"`
}

// LogOutputsConfig contains log output destinations. Stderr is always on.
type LogOutputsConfig struct {
	File FileOutputConfig `mapstructure:"file"`
}

// FileOutputConfig configures file log output.
type FileOutputConfig struct {
	Enabled  bool           `mapstructure:"enabled"`
	Path     string         `mapstructure:"path"`
	Rotation RotationConfig `mapstructure:"rotation"`
}

// RotationConfig configures log file rotation.
type RotationConfig struct {
	MaxSizeMB  int  `mapstructure:"max_size_mb"`  // MB
	MaxAgeDays int  `mapstructure:"max_age_days"` // Days
	MaxBackups int  `mapstructure:"max_backups"`
	Compress   bool `mapstructure:"compress"`
}

// ─── Decoder ───

// DecoderConfig configures packet decoding.
type DecoderConfig struct {
	MaxDepth int  `mapstructure:"max_depth"` // 0 = unlimited operator nesting
	Strict   bool `mapstructure:"strict"`    // reject trees with bad operand counts before evaluating
}

// ─── Output ───

// OutputConfig configures how results are printed.
type OutputConfig struct {
	Format string `mapstructure:"format"` // text / json / yaml
}

// ─── Loading ───

// configRoot is the top-level wrapper matching the YAML structure `bitpacket: ...`.
type configRoot struct {
	Bitpacket Config `mapstructure:"bitpacket"`
}

// Load loads configuration from file.
// The YAML file uses `bitpacket:` as root key; env vars use the BITPACKET_ prefix
// (e.g., BITPACKET_LOG_LEVEL, BITPACKET_DECODER_MAX_DEPTH).
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return load(v)
}

// Default returns the built-in defaults with environment overrides applied.
func Default() (*Config, error) {
	return load(viper.New())
}

// LoadOrDefault loads path when it names an existing file and falls back to
// Default otherwise.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default()
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default()
	}
	return Load(path)
}

func load(v *viper.Viper) (*Config, error) {
	// The `bitpacket.` key prefix maps to `BITPACKET_` in env vars via the key replacer
	// (e.g., key "bitpacket.log.level" → env "BITPACKET_LOG_LEVEL").
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	var root configRoot
	if err := v.Unmarshal(&root); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg := root.Bitpacket

	if err := cfg.ValidateAndApplyDefaults(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets default values for configuration.
// All keys use "bitpacket." prefix to match the YAML root wrapper.
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("bitpacket.log.level", "info")
	v.SetDefault("bitpacket.log.format", "pattern")
	v.SetDefault("bitpacket.log.pattern", "%time [%level] %msg %field%n")
	v.SetDefault("bitpacket.log.time_format", "2006-01-02 15:04:05")
	v.SetDefault("bitpacket.log.report_caller", false)
	v.SetDefault("bitpacket.log.outputs.file.enabled", false)
	v.SetDefault("bitpacket.log.outputs.file.path", "bitpacket.log")
	v.SetDefault("bitpacket.log.outputs.file.rotation.max_size_mb", 10)
	v.SetDefault("bitpacket.log.outputs.file.rotation.max_age_days", 7)
	v.SetDefault("bitpacket.log.outputs.file.rotation.max_backups", 3)
	v.SetDefault("bitpacket.log.outputs.file.rotation.compress", false)

	// Decoder defaults
	v.SetDefault("bitpacket.decoder.max_depth", 512)
	v.SetDefault("bitpacket.decoder.strict", true)

	// Output defaults
	v.SetDefault("bitpacket.output.format", "text")
}

// ValidateAndApplyDefaults validates configuration and normalises enum fields.
func (cfg *Config) ValidateAndApplyDefaults() error {
	// ── Log validation ──
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	validLevels := map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Log.Level] {
		return fmt.Errorf("%w: log level %q (must be trace/debug/info/warn/error)", core.ErrConfigInvalid, cfg.Log.Level)
	}
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)
	switch cfg.Log.Format {
	case "pattern", "text", "json":
	default:
		return fmt.Errorf("%w: log format %q (must be pattern/text/json)", core.ErrConfigInvalid, cfg.Log.Format)
	}
	if cfg.Log.Format == "pattern" && cfg.Log.Pattern == "" {
		return fmt.Errorf("%w: log.pattern is required when log.format=pattern", core.ErrConfigInvalid)
	}
	if cfg.Log.Outputs.File.Enabled && cfg.Log.Outputs.File.Path == "" {
		return fmt.Errorf("%w: log.outputs.file.path is required when file output is enabled", core.ErrConfigInvalid)
	}

	// ── Decoder validation ──
	if cfg.Decoder.MaxDepth < 0 {
		return fmt.Errorf("%w: decoder.max_depth %d (must be >= 0)", core.ErrConfigInvalid, cfg.Decoder.MaxDepth)
	}

	// ── Output validation ──
	cfg.Output.Format = strings.ToLower(cfg.Output.Format)
	switch cfg.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("%w: output format %q (must be text/json/yaml)", core.ErrConfigInvalid, cfg.Output.Format)
	}

	return nil
}
