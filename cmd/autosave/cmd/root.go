package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/budhip/go-autosave/cmd/setup"
	"github.com/budhip/go-autosave/internal/common"
	"github.com/budhip/go-autosave/internal/common/graceful"
	"github.com/budhip/go-autosave/internal/common/log"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// Distinct exit statuses per error kind so operators and schedulers can tell
// a bad config from a mid-run ledger failure.
const (
	exitCodeGeneric = 1
	exitCodeConfig  = 2
	exitCodeFetch   = 3
	exitCodeWrite   = 4
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "autosave",
	Short: "Round-up savings engine for a remote ledger",
	Long:  ``,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(exitCodeGeneric)
	}
}

var (
	runCmd = &cobra.Command{
		Use:     "run",
		Short:   "Scan the account window and create round-up transfers",
		Long:    ``,
		Example: "autosave run --dry-run --days=30",
		Run:     runAutosave,
	}
	runCmdDryRun = "dry-run"
	runCmdDays   = "days"
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP(runCmdDryRun, "n", false, "log candidates without issuing any write")
	runCmd.Flags().IntP(runCmdDays, "d", 0, "lookback window in days, overrides config")
}

func runAutosave(ccmd *cobra.Command, args []string) {
	ctx := log.WithCorrelationID(context.Background(), uuid.NewString())

	var ov setup.Overrides
	if ccmd.Flags().Changed(runCmdDryRun) {
		dryRun, _ := ccmd.Flags().GetBool(runCmdDryRun)
		ov.DryRun = &dryRun
	}
	if ccmd.Flags().Changed(runCmdDays) {
		days, _ := ccmd.Flags().GetInt(runCmdDays)
		ov.LookbackDays = &days
	}

	s, stoppers, err := setup.Init(ov)
	if err != nil {
		// the logger may not exist yet on a config failure
		fmt.Fprintf(os.Stderr, "failed to setup app: %v\n", err)
		os.Exit(exitCodeFor(err))
	}

	summary, err := s.Service.Autosave.Run(ctx)
	if err != nil {
		log.Error(ctx, "[AUTOSAVE]", log.String("message", "run aborted"), log.Err(err))
		graceful.StopProcess(s.Config.App.GracefulTimeout, stoppers...)
		os.Exit(exitCodeFor(err))
	}

	log.Info(ctx, "[AUTOSAVE]",
		log.String("message", "run completed"),
		log.Int("created", summary.Created),
		log.Int("dryRunCandidates", summary.DryRunCandidates))

	graceful.StopProcess(s.Config.App.GracefulTimeout, stoppers...)
}

func exitCodeFor(err error) int {
	var configErr *common.ConfigError
	if errors.As(err, &configErr) {
		return exitCodeConfig
	}

	var fetchErr *common.FetchError
	if errors.As(err, &fetchErr) {
		return exitCodeFetch
	}

	var writeErr *common.WriteError
	if errors.As(err, &writeErr) {
		return exitCodeWrite
	}

	return exitCodeGeneric
}
