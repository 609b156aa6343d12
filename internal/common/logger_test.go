package common

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "INFO", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "loud", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetupLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	require.NoError(t, SetupLogger(&buf, slog.LevelInfo, "json"))

	LogDebug("hidden", Fields{"labels": 3})
	LogInfo("classified tariff labels", Fields{"group": "energy_consumption"})
	LogError(errors.New("boom"), "bill failed", Fields{"bill": "march"})

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var info map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &info))
	assert.Equal(t, "classified tariff labels", info["msg"])
	assert.Equal(t, "energy_consumption", info["group"])

	var failed map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &failed))
	assert.Equal(t, "boom", failed["error"])
	assert.Equal(t, "march", failed["bill"])

	assert.ErrorIs(t, SetupLogger(&buf, slog.LevelInfo, "xml"), ErrInvalidConfig)
}

func TestUserError(t *testing.T) {
	err := NewUserError("see `autoreader groups`", ErrUnknownGroup)
	assert.Equal(t, "see `autoreader groups`: unknown tariff group", err.Error())
	assert.ErrorIs(t, err, ErrUnknownGroup)
	assert.True(t, IsLookupError(err))
	assert.False(t, IsLookupError(ErrNotFound))

	assert.Equal(t, "no labels to classify", NewUserError("no labels to classify", nil).Error())
}
