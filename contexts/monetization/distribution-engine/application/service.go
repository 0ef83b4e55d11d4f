package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"timepay/contexts/monetization/distribution-engine/domain/entities"
	domainerrors "timepay/contexts/monetization/distribution-engine/domain/errors"
	"timepay/contexts/monetization/distribution-engine/ports"
)

const zeroActivityNotes = "No premium usage recorded for this period"

type Service struct {
	Repo                       ports.Repository
	Usage                      ports.UsageSource
	Settings                   ports.SettingsSource
	Developers                 ports.DeveloperDirectory
	Outbox                     ports.OutboxWriter
	Clock                      ports.Clock
	IDGen                      ports.IDGenerator
	DisableRunEventEmission    bool
	DisablePayoutEventEmission bool
	Logger                     *slog.Logger
}

// CalculateMonthlyRevenue runs one distribution for the given YYYY-MM month,
// defaulting to the previous calendar month. A month that already has a run
// log is rejected with ErrDuplicateRun; force supersedes the prior run by
// replacing its rows inside the same transaction that writes the new ones.
func (s Service) CalculateMonthlyRevenue(
	ctx context.Context,
	month string,
	force bool,
) (ports.RunSummary, error) {
	now := s.now()
	month, err := resolveMonth(month, now)
	if err != nil {
		return ports.RunSummary{}, err
	}
	windowStart, windowEnd := monthWindow(month)

	settings, err := s.Settings.SettingsSnapshot(ctx)
	if err != nil {
		return ports.RunSummary{}, err
	}
	if !validSettings(settings) {
		return ports.RunSummary{}, domainerrors.ErrInvalidSettings
	}

	usage, err := s.Usage.AggregatePremiumUsage(ctx, windowStart, windowEnd)
	if err != nil {
		return ports.RunSummary{}, err
	}

	if usage.TotalPremiumSeconds == 0 {
		return s.recordZeroActivityRun(ctx, month, force, now)
	}

	premiumUsers, err := s.Usage.CountPremiumUsers(ctx)
	if err != nil {
		return ports.RunSummary{}, err
	}
	pool := ComputePool(premiumUsers, settings)

	allocations, err := AllocatePool(usage, pool.DistributableCents, settings)
	if err != nil {
		return ports.RunSummary{}, err
	}
	rollups := RollupDevelopers(allocations, settings.MinimumPayoutCents)

	developerIDs := make([]string, 0, len(rollups))
	for _, rollup := range rollups {
		developerIDs = append(developerIDs, rollup.DeveloperID)
	}
	paymentMethods, err := s.Developers.PaymentMethods(ctx, developerIDs)
	if err != nil {
		return ports.RunSummary{}, err
	}

	record, distributed, err := s.buildRunRecord(ctx, month, allocations, rollups, paymentMethods, pool, force, now)
	if err != nil {
		return ports.RunSummary{}, err
	}

	if err := s.Repo.RecordRun(ctx, record); err != nil {
		return ports.RunSummary{}, err
	}
	if err := s.appendRunOutbox(ctx, record.Log, record.Payouts); err != nil {
		return ports.RunSummary{}, err
	}

	ResolveLogger(s.Logger).Info("monthly revenue distributed",
		"event", "revenue_distributed",
		"module", "monetization/distribution-engine",
		"layer", "application",
		"month", month,
		"total_revenue_cents", pool.TotalRevenueCents,
		"total_distributed_cents", distributed,
		"developer_count", len(rollups),
		"payout_count", len(record.Payouts),
		"forced", force,
	)

	return ports.RunSummary{
		Month:                 month,
		TotalRevenueCents:     pool.TotalRevenueCents,
		TotalDistributedCents: distributed,
		PlatformFeeCents:      pool.PlatformFeeCents,
		DeveloperCount:        len(rollups),
		Status:                entities.RunStatusCompleted,
		Notes:                 record.Log.Notes,
	}, nil
}

func (s Service) GetRunLog(ctx context.Context, month string) (entities.RunLog, error) {
	month = strings.TrimSpace(month)
	if _, err := time.Parse("2006-01", month); err != nil {
		return entities.RunLog{}, domainerrors.ErrInvalidMonth
	}
	return s.Repo.GetRunLog(ctx, month)
}

// UpdatePayoutStatus advances a payout through the external payment workflow.
// The engine owns the record; the money movement happens elsewhere.
func (s Service) UpdatePayoutStatus(
	ctx context.Context,
	payoutID string,
	status string,
	referenceID string,
	notes string,
) (entities.Payout, error) {
	payoutID = strings.TrimSpace(payoutID)
	if payoutID == "" {
		return entities.Payout{}, domainerrors.ErrPayoutNotFound
	}
	if !entities.ValidPayoutStatus(status) {
		return entities.Payout{}, domainerrors.ErrInvalidPayoutStatus
	}

	payout, err := s.Repo.GetPayout(ctx, payoutID)
	if err != nil {
		return entities.Payout{}, err
	}
	if !entities.ValidPayoutTransition(payout.Status, status) {
		return entities.Payout{}, domainerrors.ErrInvalidPayoutTransition
	}

	payout.Status = status
	if strings.TrimSpace(referenceID) != "" {
		payout.ReferenceID = strings.TrimSpace(referenceID)
	}
	if strings.TrimSpace(notes) != "" {
		payout.Notes = strings.TrimSpace(notes)
	}
	if status == entities.PayoutStatusCompleted || status == entities.PayoutStatusFailed {
		processedAt := s.now()
		payout.ProcessedAt = &processedAt
	}

	if err := s.Repo.UpdatePayout(ctx, payout); err != nil {
		return entities.Payout{}, err
	}

	ResolveLogger(s.Logger).Info("payout status updated",
		"event", "payout_status_updated",
		"module", "monetization/distribution-engine",
		"layer", "application",
		"payout_id", payout.PayoutID,
		"developer_id", payout.DeveloperID,
		"status", payout.Status,
	)
	return payout, nil
}

func (s Service) buildRunRecord(
	ctx context.Context,
	month string,
	allocations []entities.WebsiteAllocation,
	rollups []entities.DeveloperRollup,
	paymentMethods map[string]string,
	pool entities.RevenuePool,
	force bool,
	now time.Time,
) (ports.RunRecord, int64, error) {
	earnings := make([]entities.DeveloperEarning, 0, len(allocations))
	var distributed int64
	for _, allocation := range allocations {
		earningID, err := s.IDGen.NewID(ctx)
		if err != nil {
			return ports.RunRecord{}, 0, err
		}
		distributed += allocation.AmountCents
		earnings = append(earnings, entities.DeveloperEarning{
			EarningID:      earningID,
			DeveloperID:    allocation.DeveloperID,
			WebsiteID:      allocation.WebsiteID,
			Month:          month,
			AmountCents:    allocation.AmountCents,
			PremiumMinutes: allocation.PremiumMinutes,
			CalculatedAt:   now,
		})
	}

	revenues := make([]entities.Revenue, 0, len(rollups))
	payouts := make([]entities.Payout, 0)
	for _, rollup := range rollups {
		revenueID, err := s.IDGen.NewID(ctx)
		if err != nil {
			return ports.RunRecord{}, 0, err
		}
		revenues = append(revenues, entities.Revenue{
			RevenueID:      revenueID,
			DeveloperID:    rollup.DeveloperID,
			Month:          month,
			AmountCents:    rollup.AmountCents,
			PremiumMinutes: rollup.PremiumMinutes,
			WebsitesCount:  rollup.WebsitesCount,
			CalculatedAt:   now,
		})

		if !rollup.PayoutEligible {
			// Below-threshold developers keep a revenue row only; the balance
			// is not carried forward into a later month.
			continue
		}
		payoutID, err := s.IDGen.NewID(ctx)
		if err != nil {
			return ports.RunRecord{}, 0, err
		}
		method := paymentMethods[rollup.DeveloperID]
		if method == "" {
			method = entities.PaymentMethodBankTransfer
		}
		payouts = append(payouts, entities.Payout{
			PayoutID:      payoutID,
			DeveloperID:   rollup.DeveloperID,
			AmountCents:   rollup.AmountCents,
			Month:         month,
			Status:        entities.PayoutStatusPending,
			PaymentMethod: method,
			Notes:         fmt.Sprintf("Automatic payout for %s", month),
			CreatedAt:     now,
		})
	}

	runID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.RunRecord{}, 0, err
	}
	return ports.RunRecord{
		Month:    month,
		Earnings: earnings,
		Revenues: revenues,
		Payouts:  payouts,
		Log: entities.RunLog{
			RunID:                 runID,
			Month:                 month,
			TotalRevenueCents:     pool.TotalRevenueCents,
			TotalDistributedCents: distributed,
			PlatformFeeCents:      pool.PlatformFeeCents,
			DeveloperCount:        len(rollups),
			Status:                entities.RunStatusCompleted,
			Notes:                 fmt.Sprintf("Processed on %s", now.UTC().Format(time.RFC3339)),
			RunAt:                 now,
		},
		Supersede: force,
	}, distributed, nil
}

// recordZeroActivityRun persists a completed zero-distribution log. Zero
// premium seconds is a valid outcome, not a failure, but the month is still
// marked as run so a later duplicate trigger is caught.
func (s Service) recordZeroActivityRun(
	ctx context.Context,
	month string,
	force bool,
	now time.Time,
) (ports.RunSummary, error) {
	runID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.RunSummary{}, err
	}
	log := entities.RunLog{
		RunID:  runID,
		Month:  month,
		Status: entities.RunStatusCompleted,
		Notes:  zeroActivityNotes,
		RunAt:  now,
	}
	if err := s.Repo.RecordRun(ctx, ports.RunRecord{
		Month:     month,
		Log:       log,
		Supersede: force,
	}); err != nil {
		return ports.RunSummary{}, err
	}

	ResolveLogger(s.Logger).Info("monthly revenue run had no premium usage",
		"event", "revenue_distribution_no_activity",
		"module", "monetization/distribution-engine",
		"layer", "application",
		"month", month,
	)
	return ports.RunSummary{
		Month:  month,
		Status: entities.RunStatusCompleted,
		Notes:  zeroActivityNotes,
	}, nil
}

func (s Service) appendRunOutbox(
	ctx context.Context,
	log entities.RunLog,
	payouts []entities.Payout,
) error {
	if s.Outbox == nil {
		return nil
	}

	if !s.DisableRunEventEmission {
		data, err := json.Marshal(map[string]any{
			"run_id":                  log.RunID,
			"month":                   log.Month,
			"total_revenue_cents":     log.TotalRevenueCents,
			"total_distributed_cents": log.TotalDistributedCents,
			"platform_fee_cents":      log.PlatformFeeCents,
			"developer_count":         log.DeveloperCount,
		})
		if err != nil {
			return err
		}
		if err := s.appendEnvelope(ctx, "revenue.distributed", "month", log.Month, log.RunAt, data); err != nil {
			return err
		}
	}

	if s.DisablePayoutEventEmission {
		return nil
	}
	for _, payout := range payouts {
		data, err := json.Marshal(map[string]any{
			"payout_id":      payout.PayoutID,
			"developer_id":   payout.DeveloperID,
			"month":          payout.Month,
			"amount_cents":   payout.AmountCents,
			"payment_method": payout.PaymentMethod,
		})
		if err != nil {
			return err
		}
		if err := s.appendEnvelope(ctx, "payout.created", "developer_id", payout.DeveloperID, payout.CreatedAt, data); err != nil {
			return err
		}
	}
	return nil
}

func (s Service) appendEnvelope(
	ctx context.Context,
	eventType string,
	partitionKeyPath string,
	partitionKey string,
	occurredAt time.Time,
	data json.RawMessage,
) error {
	eventID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	return s.Outbox.AppendOutbox(ctx, ports.EventEnvelope{
		EventID:          strings.TrimSpace(eventID),
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    "distribution-engine",
		TraceID:          strings.TrimSpace(eventID),
		SchemaVersion:    1,
		PartitionKeyPath: partitionKeyPath,
		PartitionKey:     partitionKey,
		Data:             data,
	})
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func resolveMonth(month string, now time.Time) (string, error) {
	month = strings.TrimSpace(month)
	if month == "" {
		// Anchor to the first of the month before stepping back, otherwise
		// late-month dates normalize into the wrong month.
		firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return firstOfMonth.AddDate(0, -1, 0).Format("2006-01"), nil
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		return "", domainerrors.ErrInvalidMonth
	}
	return month, nil
}

func monthWindow(month string) (time.Time, time.Time) {
	start, _ := time.Parse("2006-01", month)
	start = start.UTC()
	return start, start.AddDate(0, 1, 0)
}
