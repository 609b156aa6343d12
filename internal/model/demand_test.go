package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSeries_UnmarshalJSON(t *testing.T) {
	var rec DemandRecord
	err := json.Unmarshal([]byte(`{"usage": 100, "price": [10, 12], "subtotal": null}`), &rec)
	require.NoError(t, err)

	assert.False(t, rec.Usage.IsList())
	assert.Equal(t, []float64{100}, rec.Usage.Values())
	assert.True(t, rec.Price.IsList())
	assert.Equal(t, []float64{10, 12}, rec.Price.Values())
	assert.True(t, rec.Subtotal.IsNone())
	assert.Empty(t, rec.Subtotal.Values())
}

func TestSeries_UnmarshalYAML(t *testing.T) {
	var rec DemandRecord
	err := yaml.Unmarshal([]byte("usage: [150, 10]\nprice: 15\nsubtotal: ~\n"), &rec)
	require.NoError(t, err)

	assert.Equal(t, []float64{150, 10}, rec.Usage.Values())
	assert.Equal(t, []float64{15}, rec.Price.Values())
	assert.False(t, rec.Price.IsList())
	assert.True(t, rec.Subtotal.IsNone())
}

func TestSeries_MarshalJSON(t *testing.T) {
	rec := DemandRecord{Usage: Scalar(100), Price: List(10), Subtotal: Series{}}
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"usage": 100, "price": [10], "subtotal": null}`, string(data))
}

func TestConcat(t *testing.T) {
	combined := Concat(Scalar(100), List(150, 10))
	assert.True(t, combined.IsList())
	assert.Equal(t, []float64{100, 150, 10}, combined.Values())

	empty := Concat(Series{}, Series{})
	assert.True(t, empty.IsList())
	assert.Equal(t, 0, empty.Len())
}

func TestDemandRecord_IsNone(t *testing.T) {
	assert.True(t, DemandRecord{}.IsNone())
	assert.False(t, DemandRecord{Usage: Scalar(1)}.IsNone())
}
