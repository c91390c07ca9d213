package gopolya_test

import (
	"testing"

	"github.com/polyasystems/gopolya/gopolya"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorSpec(t *testing.T) {
	spec, err := gopolya.NewColorSpec([]string{"red", "blue", "green"}, []int{9, 6, 5})
	require.NoError(t, err)

	assert.Equal(t, 3, spec.NumColors())
	assert.Equal(t, 20, spec.Total())
	assert.Equal(t, []int{9, 6, 5}, spec.Budget())
	assert.Equal(t, []string{"red", "blue", "green"}, spec.Labels())
	assert.Equal(t, "red:9, blue:6, green:5", spec.String())
	assert.NoError(t, spec.Validate(20))

	// Budget is a copy
	spec.Budget()[0] = 0
	assert.Equal(t, 9, spec.Colors[0].Count)

	_, err = gopolya.NewColorSpec([]string{"red"}, []int{1, 2})
	assert.ErrorIs(t, err, gopolya.ErrBadColorSpec)
}

func TestColorSpecValidate(t *testing.T) {
	tests := []struct {
		name string
		spec gopolya.ColorSpec
		n    int
	}{
		{"empty", gopolya.ColorSpec{}, 0},
		{"wrong total", gopolya.ColorSpec{Colors: []gopolya.ColorCount{{"a", 3}, {"b", 2}}}, 6},
		{"negative", gopolya.ColorSpec{Colors: []gopolya.ColorCount{{"a", 7}, {"b", -1}}}, 6},
		{"duplicate", gopolya.ColorSpec{Colors: []gopolya.ColorCount{{"a", 3}, {"a", 3}}}, 6},
		{"no label", gopolya.ColorSpec{Colors: []gopolya.ColorCount{{"", 6}}}, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.spec.Validate(tt.n), gopolya.ErrBadColorSpec)
		})
	}

	// Zero counts are allowed
	spec := gopolya.ColorSpec{Colors: []gopolya.ColorCount{{"a", 6}, {"b", 0}}}
	assert.NoError(t, spec.Validate(6))
}
