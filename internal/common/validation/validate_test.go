package validation_test

import (
	"testing"

	"github.com/budhip/go-autosave/internal/common/validation"

	"github.com/stretchr/testify/assert"
)

type sampleConfig struct {
	BaseURL string `json:"base_url" validate:"required,url"`
	Token   string `json:"token" validate:"required"`
	Amount  string `json:"amount" validate:"decimalString"`
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        sampleConfig
		wantErr      bool
		wantContains []string
	}{
		{
			name: "valid",
			input: sampleConfig{
				BaseURL: "https://ledger.example.com",
				Token:   "secret",
				Amount:  "20.50",
			},
			wantErr: false,
		},
		{
			name: "empty decimal is allowed",
			input: sampleConfig{
				BaseURL: "https://ledger.example.com",
				Token:   "secret",
			},
			wantErr: false,
		},
		{
			name:    "all violations reported at once",
			input:   sampleConfig{Amount: "not-a-number"},
			wantErr: true,
			wantContains: []string{
				"base_url",
				"token",
				"amount",
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := validation.ValidateStruct(tc.input)
			if !tc.wantErr {
				assert.NoError(t, err)
				return
			}

			assert.Error(t, err)
			for _, fragment := range tc.wantContains {
				assert.Contains(t, err.Error(), fragment)
			}
		})
	}
}
