package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"timepay/contexts/monetization/reporting-service/domain/entities"
	domainerrors "timepay/contexts/monetization/reporting-service/domain/errors"
	"timepay/contexts/monetization/reporting-service/ports"
)

const (
	earningsHistoryLimit = 12
	payoutHistoryLimit   = 10
	runHistoryLimit      = 12
	topDevelopersLimit   = 10
)

// Service is the read-only reporting facade over the distribution output.
// It never mutates anything; every operation resolves the caller first.
type Service struct {
	Developers ports.DeveloperDirectory
	Earnings   ports.EarningsReader
	Runs       ports.RunReader
	Logger     *slog.Logger
}

func (s Service) GetEarningsHistory(ctx context.Context, userID string) ([]entities.MonthlyEarning, error) {
	developerID, err := s.resolveDeveloper(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Earnings.MonthlyEarnings(ctx, developerID, earningsHistoryLimit)
}

func (s Service) GetEarningsBreakdown(
	ctx context.Context,
	userID string,
	month string,
) ([]entities.WebsiteEarning, error) {
	month, err := validMonth(month)
	if err != nil {
		return nil, err
	}
	developerID, err := s.resolveDeveloper(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Earnings.WebsiteBreakdown(ctx, developerID, month)
}

func (s Service) GetPayoutHistory(ctx context.Context, userID string) ([]entities.PayoutRecord, error) {
	developerID, err := s.resolveDeveloper(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Earnings.PayoutHistory(ctx, developerID, payoutHistoryLimit)
}

// GetPlatformStats folds the run history into the aggregate the admin
// dashboard renders.
func (s Service) GetPlatformStats(ctx context.Context) (entities.PlatformStats, error) {
	runs, err := s.Runs.RecentRuns(ctx, runHistoryLimit)
	if err != nil {
		return entities.PlatformStats{}, err
	}

	stats := entities.PlatformStats{Runs: runs}
	for _, run := range runs {
		stats.TotalRuns++
		stats.TotalRevenueCents += run.TotalRevenueCents
		stats.TotalDistributedCents += run.TotalDistributedCents
		stats.PlatformFeeCents += run.PlatformFeeCents
	}
	if len(runs) > 0 {
		last := runs[0].RunAt
		stats.LastRunAt = &last
	}
	return stats, nil
}

func (s Service) GetTopDevelopers(ctx context.Context, month string) ([]entities.TopDeveloper, error) {
	month, err := validMonth(month)
	if err != nil {
		return nil, err
	}
	return s.Runs.TopDevelopers(ctx, month, topDevelopersLimit)
}

func (s Service) resolveDeveloper(ctx context.Context, userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", domainerrors.ErrDeveloperNotFound
	}
	return s.Developers.ResolveDeveloperByUser(ctx, userID)
}

func validMonth(month string) (string, error) {
	month = strings.TrimSpace(month)
	if _, err := time.Parse("2006-01", month); err != nil {
		return "", domainerrors.ErrInvalidMonth
	}
	return month, nil
}
