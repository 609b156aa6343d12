package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/bill-autoreader/internal/common"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "/tmp/xdg-data/autoreader/autoreader.db", cfg.Database.Path)
	assert.Empty(t, cfg.Classifier.RulesFile)
	assert.Equal(t, "energy_consumption", cfg.Classifier.DefaultGroup)
	assert.InDelta(t, 0.01, cfg.Demand.Tolerance, 1e-12)
	assert.InDelta(t, 1.0, cfg.Demand.LossFactor, 1e-12)
	assert.InDelta(t, 95, cfg.Evaluation.NameThreshold, 1e-12)
	assert.Equal(t, 3, cfg.Evaluation.MaxDistance)
	assert.InDelta(t, 80, cfg.Evaluation.LabelThreshold, 1e-12)
	assert.InDelta(t, 90, cfg.Evaluation.AdditionalLabelScore, 1e-12)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  path: $AUTOREADER_TEST_DIR/runs.db
classifier:
  default_group: market_tariff
demand:
  tolerance: 0.05
evaluation:
  max_distance: 2
log:
  format: json
`), 0o600))
	t.Setenv("AUTOREADER_TEST_DIR", dir)

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "runs.db"), cfg.Database.Path)
	assert.Equal(t, "market_tariff", cfg.Classifier.DefaultGroup)
	assert.InDelta(t, 0.05, cfg.Demand.Tolerance, 1e-12)
	assert.Equal(t, 2, cfg.Evaluation.MaxDistance)
	assert.Equal(t, "json", cfg.Log.Format)
	// untouched keys keep their defaults
	assert.InDelta(t, 1.0, cfg.Demand.LossFactor, 1e-12)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value any
	}{
		{"demand.tolerance", -0.1},
		{"demand.loss_factor", 0.0},
		{"evaluation.name_threshold", 101.0},
		{"evaluation.label_threshold", -1.0},
		{"evaluation.max_distance", -1},
		{"log.format", "xml"},
		{"log.level", "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v := viper.New()
			v.Set(tt.key, tt.value)

			_, err := Load(v)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
			assert.Contains(t, err.Error(), lastSegment(tt.key))
		})
	}
}

func TestLoad_MissingGroup(t *testing.T) {
	v := viper.New()
	v.Set("classifier.default_group", "")

	_, err := Load(v)
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("AUTOREADER_TEST_VAR", "value")

	assert.Empty(t, ExpandPath(""))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "bills"), ExpandPath("~/bills"))
	assert.Equal(t, "/data/value", ExpandPath("/data/$AUTOREADER_TEST_VAR"))
}

func TestDirs(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	assert.Equal(t, "/cfg/autoreader", ConfigDir())
	assert.Equal(t, "/data/autoreader", DataDir())
}

func lastSegment(key string) string {
	for i := len(key) - 1; i >= 0; i-- {
		if key[i] == '.' {
			return key[i+1:]
		}
	}
	return key
}
