package transform_test

import (
	"testing"

	"github.com/arthur-debert/outparse/pkg/errors"
	"github.com/arthur-debert/outparse/pkg/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind string
		want interface{}
	}{
		{"number integer", "2048", transform.Number, 2048.0},
		{"number decimal", "1.5", transform.Number, 1.5},
		{"number negative", "-3", transform.Number, -3.0},
		{"boolean true", "true", transform.Boolean, true},
		{"boolean false", "false", transform.Boolean, false},
		{"array trims and drops empties", " a, b ,,c , ", transform.Array, []interface{}{"a", "b", "c"}},
		{"array of nothing", "", transform.Array, []interface{}{}},
		{"mac lowercases", "08:00:27:AB:CD:EF", transform.MAC, "08:00:27:ab:cd:ef"},
		{"default passes through", "  Running  ", transform.None, "  Running  "},
		{"unknown kind passes through", "X", "uppercase", "X"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := transform.Value(tt.raw, tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValueConversionErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind string
	}{
		{"number with unit", "2048MB", transform.Number},
		{"number empty", "", transform.Number},
		{"number nan", "NaN", transform.Number},
		{"boolean yes", "yes", transform.Boolean},
		{"boolean uppercase", "TRUE", transform.Boolean},
		{"boolean one", "1", transform.Boolean},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := transform.Value(tt.raw, tt.kind)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrValueConversion), "got %v", err)

			details := errors.GetErrorDetails(err)
			assert.Equal(t, tt.kind, details["kind"])
			assert.Equal(t, tt.raw, details["value"])
		})
	}
}

func TestIsKnown(t *testing.T) {
	for _, k := range transform.Kinds() {
		assert.True(t, transform.IsKnown(k), k)
	}
	assert.True(t, transform.IsKnown(""))
	assert.False(t, transform.IsKnown("uppercase"))
}
