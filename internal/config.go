package internal

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/tuannm99/reflected/internal/random"
)

const EnvPrefix = "REFLECTED"

type ReflectedConfig struct {
	AppName string `mapstructure:"app_name"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	Generator random.Config `mapstructure:"generator"`

	Compare struct {
		FloatTolerance float64 `mapstructure:"float_tolerance"`
	} `mapstructure:"compare"`

	Store struct {
		Dir string `mapstructure:"dir"`
	} `mapstructure:"store"`
}

func setDefaults(v *viper.Viper) {
	def := random.DefaultConfig()

	v.SetDefault("app_name", "reflected")
	v.SetDefault("log.level", "info")
	v.SetDefault("generator.seed", 0)
	v.SetDefault("generator.text_length", def.TextLength)
	v.SetDefault("generator.null_ratio", def.NullRatio)
	v.SetDefault("generator.max_number", def.MaxNumber)
	v.SetDefault("generator.max_duration", def.MaxDuration)
	v.SetDefault("compare.float_tolerance", 0.001)
	v.SetDefault("store.dir", "./data")
}

// LoadConfig reads the YAML file at path on top of the defaults. An empty
// path skips the file. REFLECTED_* environment variables override both,
// e.g. REFLECTED_GENERATOR_SEED=7.
func LoadConfig(path string) (*ReflectedConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg ReflectedConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Generator.NullRatio < 0 || cfg.Generator.NullRatio > 1 {
		return nil, errors.New("config: generator.null_ratio must be within [0, 1]")
	}
	if cfg.Compare.FloatTolerance < 0 {
		return nil, errors.New("config: compare.float_tolerance must not be negative")
	}

	return &cfg, nil
}

// GeneratorConfig returns the random generator settings.
func (c *ReflectedConfig) GeneratorConfig() random.Config { return c.Generator }

// LogLevel parses log.level; unknown names fall back to info.
func (c *ReflectedConfig) LogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
