package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestData_Clone_IsDeep(t *testing.T) {
	original := Data{
		"title": "Intro",
		"sections": []any{
			map[string]any{"title": "Nested"},
		},
		"tags": []string{"a"},
	}

	clone := original.Clone()
	clone["title"] = "Changed"
	sections, err := clone.List("sections")
	require.NoError(t, err)
	sections[0].(map[string]any)["title"] = "Mutated"
	clone["tags"].([]string)[0] = "b"

	assert.Equal(t, "Intro", original["title"])
	assert.Equal(t, "Nested", original["sections"].([]any)[0].(map[string]any)["title"])
	assert.Equal(t, "a", original["tags"].([]string)[0])
}

func TestData_Int(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  int
		ok    bool
	}{
		{"int", 3, 3, true},
		{"int64 from toml", int64(4), 4, true},
		{"float64 from json", float64(5), 5, true},
		{"fractional float", 1.5, 0, false},
		{"string", "6", 0, false},
		{"missing", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Data{"n": tt.value}
			got, ok := d.Int("n")
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestData_IntOr(t *testing.T) {
	d := Data{"maxDepth": int64(2), "bad": "x"}

	n, err := d.IntOr("maxDepth", -1)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = d.IntOr("minDepth", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = d.IntOr("bad", 0)
	assert.True(t, errors.Is(err, ErrConfig))
}

func TestData_Strings(t *testing.T) {
	d := Data{
		"single": "a.svg",
		"list":   []any{"a.svg", "b.svg"},
		"typed":  []string{"c.svg"},
		"mixed":  []any{"a", 1},
		"blank":  "  ",
	}

	got, err := d.Strings("single")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.svg"}, got)

	got, err = d.Strings("list")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.svg", "b.svg"}, got)

	got, err = d.Strings("typed")
	require.NoError(t, err)
	assert.Equal(t, []string{"c.svg"}, got)

	got, err = d.Strings("blank")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = d.Strings("mixed")
	assert.ErrorIs(t, err, ErrConfig)
}

func TestIsEmptyValue(t *testing.T) {
	assert.True(t, IsEmptyValue(nil))
	assert.True(t, IsEmptyValue(false))
	assert.True(t, IsEmptyValue(""))
	assert.True(t, IsEmptyValue(map[string]any{}))
	assert.True(t, IsEmptyValue([]any{}))
	assert.False(t, IsEmptyValue(true))
	assert.False(t, IsEmptyValue(map[string]any{"type": "toc"}))
	assert.False(t, IsEmptyValue(0))
}

func TestAsData(t *testing.T) {
	d, ok := AsData(map[any]any{"type": "root"})
	require.True(t, ok)
	assert.Equal(t, "root", d.String("type"))

	_, ok = AsData("root")
	assert.False(t, ok)
}
