package services

import (
	"context"
	"errors"
	"time"

	"github.com/budhip/go-autosave/internal/common"
	"github.com/budhip/go-autosave/internal/common/log"
	"github.com/budhip/go-autosave/internal/models"

	"github.com/shopspring/decimal"
)

var autosaveLogMessage = "[AUTOSAVE]"

// distantStart is the window start used when no lookback is configured.
var distantStart = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

const (
	outcomeCreated    = "created"
	outcomeDryRun     = "dry_run_candidate"
	outcomeExcluded   = "skipped_excluded"
	outcomeZeroDelta  = "skipped_zero_delta"
	outcomeBelowFloor = "skipped_below_floor"
	outcomeLinked     = "skipped_already_linked"
)

type AutosaveService interface {
	// Run scans the configured account window once and creates one linked
	// transfer per qualifying transaction. Transactions are processed
	// strictly one at a time; the first write failure aborts the run.
	Run(ctx context.Context) (models.RunSummary, error)
}

type autosave service

var _ AutosaveService = (*autosave)(nil)

func (a *autosave) Run(ctx context.Context) (summary models.RunSummary, err error) {
	cfg := a.srv.conf.Autosave

	if a.srv.roundingUnit.LessThanOrEqual(decimal.Zero) {
		log.Info(ctx, autosaveLogMessage,
			log.String("message", "rounding unit is not positive, autosave is disabled"))
		return summary, nil
	}

	start, end := a.runWindow(time.Now().UTC())

	log.Info(ctx, autosaveLogMessage,
		log.String("message", "scanning account"),
		log.Int64("accountId", cfg.SourceAccountID),
		log.String("start", start.Format(common.DateFormatYYYYMMDD)),
		log.String("end", end.Format(common.DateFormatYYYYMMDD)),
		log.String("type", cfg.TransactionType),
		log.Bool("dryRun", cfg.DryRun))

	groups, err := a.srv.ledger.FetchTransactions(ctx, cfg.SourceAccountID, start, end, cfg.TransactionType)
	if err != nil {
		return summary, err
	}

	links, err := a.srv.ledger.FetchLinks(ctx)
	if err != nil {
		return summary, err
	}

	// idempotency snapshot, taken once and never refreshed mid-run
	linked := NewLinkedJournals(links)

	for _, group := range groups {
		for _, trx := range group.Transactions {
			outcome, delta, err := a.processTransaction(ctx, trx, linked)
			if err != nil {
				return summary, err
			}
			a.record(outcome, delta, &summary)
		}
	}

	log.Info(ctx, autosaveLogMessage,
		log.String("message", "run finished"),
		log.Int("transactions", summary.Total()),
		log.Int("created", summary.Created),
		log.Int("dryRunCandidates", summary.DryRunCandidates),
		log.Int("skippedExcluded", summary.SkippedExcluded),
		log.Int("skippedZeroDelta", summary.SkippedZeroDelta),
		log.Int("skippedBelowFloor", summary.SkippedBelowFloor),
		log.Int("skippedLinked", summary.SkippedLinked))

	return summary, nil
}

// processTransaction applies the policy checks in fixed order: exclusion
// filter, round-up delta, balance floor, idempotency guard. Only then does it
// write, and a dry run returns strictly before any write call.
func (a *autosave) processTransaction(ctx context.Context, trx models.Transaction, linked LinkedJournals) (string, decimal.Decimal, error) {
	cfg := a.srv.conf.Autosave

	logFields := []log.Field{
		log.Int64("journalId", trx.JournalID),
		log.String("description", trx.Description),
	}

	if keyword, excluded := IsExcluded(trx.Tags, a.srv.excludeKeywords); excluded {
		log.Info(ctx, autosaveLogMessage, append(logFields,
			log.String("message", "skip: tag matches exclude keyword"),
			log.String("keyword", keyword))...)
		return outcomeExcluded, decimal.Zero, nil
	}

	delta := ComputeDelta(trx.Amount.Abs(), a.srv.roundingUnit)
	if delta.IsZero() {
		// not actionable, skip without notice
		return outcomeZeroDelta, decimal.Zero, nil
	}

	if trx.BalanceAfter != nil && trx.BalanceAfter.LessThanOrEqual(a.srv.minimumBalance) {
		log.Info(ctx, autosaveLogMessage, append(logFields,
			log.String("message", "skip: balance at or below minimum"),
			log.String("balance", trx.BalanceAfter.StringFixed(2)),
			log.String("minimum", a.srv.minimumBalance.StringFixed(2)))...)
		return outcomeBelowFloor, decimal.Zero, nil
	}

	if trx.JournalID == 0 || linked.IsLinked(trx.JournalID) {
		log.Info(ctx, autosaveLogMessage, append(logFields,
			log.String("message", "skip: journal missing or already linked"))...)
		return outcomeLinked, decimal.Zero, nil
	}

	req := models.NewAutosaveTransfer(trx, delta, cfg.SourceAccountID, cfg.DestinationAccountID, cfg.Tag)

	logFields = append(logFields,
		log.String("delta", delta.StringFixed(2)),
		log.String("date", req.Date.Format(common.DateFormatYYYYMMDDWithTimeAndOffset)))

	if cfg.DryRun {
		log.Info(ctx, autosaveLogMessage, append(logFields,
			log.String("message", "dry run: autosave candidate, no write issued"))...)
		return outcomeDryRun, decimal.Zero, nil
	}

	newID, err := a.srv.ledger.CreateTransfer(ctx, req)
	if err != nil {
		log.Error(ctx, autosaveLogMessage, append(logFields, log.Err(err))...)
		return "", decimal.Zero, err
	}

	if err := a.srv.ledger.CreateLink(ctx, trx.JournalID, newID, cfg.LinkTypeID); err != nil {
		// The transfer is already committed in the ledger. There is no
		// compensation; surface the orphaned journal id for manual
		// reconciliation.
		werr := &common.WriteError{Op: "create-link", JournalID: trx.JournalID, OrphanJournalID: newID}
		var inner *common.WriteError
		if errors.As(err, &inner) {
			werr.Err = inner.Err
		} else {
			werr.Err = err
		}

		log.Error(ctx, autosaveLogMessage, append(logFields,
			log.String("message", "transfer committed without link, manual reconciliation required"),
			log.Int64("newJournalId", newID),
			log.Err(werr))...)
		return "", decimal.Zero, werr
	}

	log.Info(ctx, autosaveLogMessage, append(logFields,
		log.String("message", "autosave transfer created and linked"),
		log.Int64("newJournalId", newID))...)

	return outcomeCreated, delta, nil
}

func (a *autosave) runWindow(now time.Time) (time.Time, time.Time) {
	if days := a.srv.conf.Autosave.LookbackDays; days > 0 {
		return now.AddDate(0, 0, -days), now
	}
	return distantStart, now
}

func (a *autosave) record(outcome string, delta decimal.Decimal, summary *models.RunSummary) {
	switch outcome {
	case outcomeCreated:
		summary.Created++
	case outcomeDryRun:
		summary.DryRunCandidates++
	case outcomeExcluded:
		summary.SkippedExcluded++
	case outcomeZeroDelta:
		summary.SkippedZeroDelta++
	case outcomeBelowFloor:
		summary.SkippedBelowFloor++
	case outcomeLinked:
		summary.SkippedLinked++
	}

	if a.srv.metrics != nil {
		a.srv.metrics.GetDecisionPrometheus().Record(outcome, delta)
	}
}
