package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuantityString(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		scaled int64
	}{
		{name: "integer", in: "5", scaled: 50_000},
		{name: "four digits exact", in: "0.2500", scaled: 2_500},
		{name: "short fraction padded", in: "1.5", scaled: 15_000},
		{name: "negative", in: "-2.75", scaled: -27_500},
		{name: "leading plus", in: "+3", scaled: 30_000},
		{name: "fifth digit rounds up", in: "0.99995", scaled: 10_000},
		{name: "fifth digit rounds down", in: "0.99994", scaled: 9_999},
		{name: "half rounds away from zero", in: "-0.00005", scaled: -1},
		{name: "long tail", in: "0.1234567", scaled: 1_235},
		{name: "exponent form", in: "1e-4", scaled: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := parseQuantityString(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.scaled, q.Int64Scaled())
		})
	}
}

func TestParseQuantityStringRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "abc", "1.2x", "1..2"} {
		_, err := parseQuantityString(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestQuantityJSONRoundTrip(t *testing.T) {
	q := NewQuantityFromFloat64(12.5)

	data, err := json.Marshal(q)
	require.NoError(t, err)
	assert.Equal(t, "12.5000", string(data))

	var back Quantity
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, q, back)

	// String input is accepted too.
	require.NoError(t, json.Unmarshal([]byte(`"0.12345"`), &back))
	assert.Equal(t, int64(1_235), back.Int64Scaled())
}
