package config

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type (
	// Config is built once at startup and passed by value into the services;
	// nothing mutates it after setup.
	Config struct {
		App      App            `json:"app"`
		Ledger   LedgerConfig   `json:"ledger"`
		Autosave AutosaveConfig `json:"autosave"`
	}

	App struct {
		Env             string        `json:"env"`
		Name            string        `json:"name"`
		LogLevel        string        `json:"log_level"`
		GracefulTimeout time.Duration `json:"graceful_timeout"`

		// MetricsTextfile, when set, receives the run's metrics in
		// prometheus exposition format at shutdown.
		MetricsTextfile string `json:"metrics_textfile"`
	}

	LedgerConfig struct {
		BaseURL       string        `json:"base_url" validate:"required,url"`
		Token         string        `json:"token" validate:"required"`
		Timeout       time.Duration `json:"timeout"`
		RetryCount    int           `json:"retry_count"`
		RetryWaitTime int           `json:"retry_wait_time"`
	}

	AutosaveConfig struct {
		SourceAccountID      int64 `json:"source_account_id" validate:"required"`
		DestinationAccountID int64 `json:"destination_account_id" validate:"required"`

		// RoundingUnit is the "round up to" amount; zero or negative disables
		// every autosave. MinimumBalance is the liquidity floor the
		// post-transaction balance must strictly exceed.
		RoundingUnit   string `json:"rounding_unit" validate:"decimalString"`
		MinimumBalance string `json:"minimum_balance" validate:"decimalString"`

		// LookbackDays of 0 scans from a fixed distant start date to today.
		LookbackDays int  `json:"lookback_days" validate:"gte=0"`
		DryRun       bool `json:"dry_run"`

		// ExcludeKeywords is a comma-separated list matched exactly against
		// transaction tags, never against descriptions.
		ExcludeKeywords string `json:"exclude_keywords"`

		TransactionType string `json:"transaction_type"`
		Tag             string `json:"tag"`
		LinkTypeID      int64  `json:"link_type_id" validate:"required"`
	}
)

// RoundingUnitDecimal returns the parsed rounding unit; validation guarantees
// the string parses, an empty value means "disabled".
func (a AutosaveConfig) RoundingUnitDecimal() decimal.Decimal {
	return parseDecimalOrZero(a.RoundingUnit)
}

func (a AutosaveConfig) MinimumBalanceDecimal() decimal.Decimal {
	return parseDecimalOrZero(a.MinimumBalance)
}

// Keywords splits the configured comma-separated exclude list, dropping empty
// entries.
func (a AutosaveConfig) Keywords() []string {
	if a.ExcludeKeywords == "" {
		return nil
	}

	var keywords []string
	for _, kw := range strings.Split(a.ExcludeKeywords, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

func parseDecimalOrZero(value string) decimal.Decimal {
	if value == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return d
}
