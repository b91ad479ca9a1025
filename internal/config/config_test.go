package config_test

import (
	"testing"

	"github.com/budhip/go-autosave/internal/config"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAutosaveConfigKeywords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "empty list",
			input: "",
			want:  nil,
		},
		{
			name:  "single keyword",
			input: "coffee",
			want:  []string{"coffee"},
		},
		{
			name:  "trims whitespace and drops empties",
			input: " coffee , rent ,,refund",
			want:  []string{"coffee", "rent", "refund"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.AutosaveConfig{ExcludeKeywords: tc.input}
			assert.Equal(t, tc.want, cfg.Keywords())
		})
	}
}

func TestAutosaveConfigDecimals(t *testing.T) {
	t.Parallel()

	cfg := config.AutosaveConfig{RoundingUnit: "20", MinimumBalance: "12.50"}
	assert.True(t, decimal.RequireFromString("20").Equal(cfg.RoundingUnitDecimal()))
	assert.True(t, decimal.RequireFromString("12.50").Equal(cfg.MinimumBalanceDecimal()))

	// unset values disable their checks rather than failing
	empty := config.AutosaveConfig{}
	assert.True(t, empty.RoundingUnitDecimal().IsZero())
	assert.True(t, empty.MinimumBalanceDecimal().IsZero())
}
