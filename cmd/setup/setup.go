package setup

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/budhip/go-autosave/internal/common"
	"github.com/budhip/go-autosave/internal/common/graceful"
	"github.com/budhip/go-autosave/internal/common/log"
	cMetrics "github.com/budhip/go-autosave/internal/common/metrics"
	"github.com/budhip/go-autosave/internal/common/validation"
	"github.com/budhip/go-autosave/internal/config"
	"github.com/budhip/go-autosave/internal/ledger"
	"github.com/budhip/go-autosave/internal/services"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Setup struct {
	Config  config.Config
	Metrics cMetrics.Metrics
	Ledger  ledger.Client
	Service *services.Services
}

// Overrides carries CLI flag values that take precedence over the config
// file and environment.
type Overrides struct {
	DryRun       *bool
	LookbackDays *int
}

func Init(ov Overrides) (setup *Setup, stopper []graceful.ProcessStopper, err error) {
	cfg, err := loadConfig(ov)
	if err != nil {
		return nil, nil, &common.ConfigError{Err: err}
	}

	if err := validation.ValidateStruct(cfg); err != nil {
		return nil, nil, &common.ConfigError{Err: err}
	}

	logLevel := cfg.App.LogLevel
	if logLevel == "" && config.StringToEnvironment(cfg.App.Env) == config.LOCAL_ENV {
		logLevel = "debug"
	}

	log.Init(cfg.App.Name,
		log.WithEnv(cfg.App.Env),
		log.WithLevel(logLevel),
		log.WithCaller(true))

	stopper = append(stopper, func(ctx context.Context) error {
		log.Sync()
		return nil
	})

	mtc := cMetrics.New()
	if path := cfg.App.MetricsTextfile; path != "" {
		stopper = append(stopper, func(ctx context.Context) error {
			return mtc.WriteTextfile(path)
		})
	}

	ledgerClient := ledger.New(cfg.Ledger, mtc)

	setup = &Setup{
		Config:  cfg,
		Metrics: mtc,
		Ledger:  ledgerClient,
		Service: services.New(cfg, ledgerClient, mtc),
	}

	return setup, stopper, nil
}

func loadConfig(ov Overrides) (config.Config, error) {
	var cfg config.Config

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/config")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.SetEnvPrefix("AUTOSAVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// env-only configuration is fine, a broken file is not
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "json"
	}); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if ov.DryRun != nil {
		cfg.Autosave.DryRun = *ov.DryRun
	}
	if ov.LookbackDays != nil {
		cfg.Autosave.LookbackDays = *ov.LookbackDays
	}

	return cfg, nil
}

func applyDefaults(cfg *config.Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "go-autosave"
	}
	if cfg.App.GracefulTimeout == 0 {
		cfg.App.GracefulTimeout = 5 * time.Second
	}
	if cfg.Ledger.Timeout == 0 {
		cfg.Ledger.Timeout = 30 * time.Second
	}
	if cfg.Autosave.TransactionType == "" {
		cfg.Autosave.TransactionType = "withdrawal"
	}
	if cfg.Autosave.Tag == "" {
		cfg.Autosave.Tag = "autosave"
	}
}
