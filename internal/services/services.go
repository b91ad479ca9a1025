package services

import (
	"github.com/budhip/go-autosave/internal/common/metrics"
	"github.com/budhip/go-autosave/internal/config"
	"github.com/budhip/go-autosave/internal/ledger"

	"github.com/shopspring/decimal"
)

type service struct {
	srv *Services
}

type Services struct {
	conf config.Config

	ledger  ledger.Client
	metrics metrics.Metrics

	// derived once from config, read-only afterwards
	roundingUnit    decimal.Decimal
	minimumBalance  decimal.Decimal
	excludeKeywords []string

	common service

	Autosave *autosave
}

func New(conf config.Config, ledgerClient ledger.Client, mtc metrics.Metrics) *Services {
	srv := &Services{
		conf:    conf,
		ledger:  ledgerClient,
		metrics: mtc,

		roundingUnit:    conf.Autosave.RoundingUnitDecimal(),
		minimumBalance:  conf.Autosave.MinimumBalanceDecimal(),
		excludeKeywords: conf.Autosave.Keywords(),
	}
	srv.common.srv = srv
	srv.Autosave = (*autosave)(&srv.common)

	return srv
}
