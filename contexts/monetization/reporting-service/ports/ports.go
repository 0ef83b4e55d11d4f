package ports

import (
	"context"

	"timepay/contexts/monetization/reporting-service/domain/entities"
)

// DeveloperDirectory maps an authenticated user to their developer record.
type DeveloperDirectory interface {
	ResolveDeveloperByUser(ctx context.Context, userID string) (string, error)
}

// EarningsReader serves the developer-facing read side of the distribution
// output tables.
type EarningsReader interface {
	MonthlyEarnings(ctx context.Context, developerID string, limit int) ([]entities.MonthlyEarning, error)
	WebsiteBreakdown(ctx context.Context, developerID string, month string) ([]entities.WebsiteEarning, error)
	PayoutHistory(ctx context.Context, developerID string, limit int) ([]entities.PayoutRecord, error)
}

// RunReader serves the admin-facing run history and leaderboard.
type RunReader interface {
	RecentRuns(ctx context.Context, limit int) ([]entities.RunEntry, error)
	TopDevelopers(ctx context.Context, month string, limit int) ([]entities.TopDeveloper, error)
}
