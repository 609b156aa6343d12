package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/Veraticus/bill-autoreader/internal/common"
	"github.com/Veraticus/bill-autoreader/internal/model"
)

// Config is the resolved autoreader configuration.
type Config struct {
	Database   DatabaseConfig   `mapstructure:"database"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
	Log        LogConfig        `mapstructure:"log"`
	Evaluation EvaluationConfig `mapstructure:"evaluation"`
	Demand     DemandConfig     `mapstructure:"demand"`
}

// DatabaseConfig locates the run database.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// ClassifierConfig selects the rule set and default tariff group.
type ClassifierConfig struct {
	RulesFile    string `mapstructure:"rules_file"`
	DefaultGroup string `mapstructure:"default_group"`
}

// DemandConfig tunes unit inference.
type DemandConfig struct {
	Tolerance  float64 `mapstructure:"tolerance"`
	LossFactor float64 `mapstructure:"loss_factor"`
}

// EvaluationConfig holds the fuzzy matching thresholds.
type EvaluationConfig struct {
	NameThreshold        float64 `mapstructure:"name_threshold"`
	LabelThreshold       float64 `mapstructure:"label_threshold"`
	AdditionalLabelScore float64 `mapstructure:"additional_label_threshold"`
	MaxDistance          int     `mapstructure:"max_distance"`
}

// LogConfig controls slog output.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", filepath.Join(DataDir(), "autoreader.db"))
	v.SetDefault("classifier.rules_file", "")
	v.SetDefault("classifier.default_group", string(model.EnergyConsumption))
	v.SetDefault("demand.tolerance", 0.01)
	v.SetDefault("demand.loss_factor", 1.0)
	v.SetDefault("evaluation.name_threshold", 95.0)
	v.SetDefault("evaluation.max_distance", 3)
	v.SetDefault("evaluation.label_threshold", 80.0)
	v.SetDefault("evaluation.additional_label_threshold", 90.0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Load reads the configuration from v, filling defaults, and validates it.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}

	cfg.Database.Path = ExpandPath(cfg.Database.Path)
	cfg.Classifier.RulesFile = ExpandPath(cfg.Classifier.RulesFile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Database.Path == "" {
		errs = append(errs, fmt.Errorf("%w: database.path", common.ErrMissingConfig))
	}
	if c.Classifier.DefaultGroup == "" {
		errs = append(errs, fmt.Errorf("%w: classifier.default_group", common.ErrMissingConfig))
	}
	if c.Demand.Tolerance < 0 {
		errs = append(errs, fmt.Errorf("%w: demand.tolerance must not be negative", common.ErrInvalidConfig))
	}
	if c.Demand.LossFactor <= 0 {
		errs = append(errs, fmt.Errorf("%w: demand.loss_factor must be positive", common.ErrInvalidConfig))
	}
	if c.Evaluation.MaxDistance < 0 {
		errs = append(errs, fmt.Errorf("%w: evaluation.max_distance must not be negative", common.ErrInvalidConfig))
	}

	for key, score := range map[string]float64{
		"evaluation.name_threshold":             c.Evaluation.NameThreshold,
		"evaluation.label_threshold":            c.Evaluation.LabelThreshold,
		"evaluation.additional_label_threshold": c.Evaluation.AdditionalLabelScore,
	} {
		if score < 0 || score > 100 {
			errs = append(errs, fmt.Errorf("%w: %s must be within [0, 100], got %v", common.ErrInvalidConfig, key, score))
		}
	}

	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: log.format must be console or json, got %q", common.ErrInvalidConfig, c.Log.Format))
	}
	if _, err := common.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
