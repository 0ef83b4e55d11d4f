package ports

import (
	"context"
	"time"

	"timepay/contexts/monetization/distribution-engine/domain/entities"
	contractsv1 "timepay/contracts/gen/events/v1"
)

// SettingsSnapshot is the engine's one-shot read of the revenue configuration.
// A run reads it once at the start and never re-reads mid-calculation, so an
// admin update cannot produce an internally inconsistent allocation.
type SettingsSnapshot struct {
	PlatformFeePercentage    float64
	DeveloperSharePercentage float64
	MinimumPayoutCents       int64
	PayoutSchedule           string
	PremiumPriceCents        int64
	BonusThresholdMinutes    int64
	BonusMultiplier          float64
}

type SettingsSource interface {
	SettingsSnapshot(ctx context.Context) (SettingsSnapshot, error)
}

// WebsiteUsage is one website's premium engagement inside the month window.
type WebsiteUsage struct {
	DeveloperID    string
	WebsiteID      string
	WebsiteName    string
	PremiumSeconds int64
}

type UsageTotals struct {
	TotalPremiumSeconds int64
	PerWebsite          []WebsiteUsage
}

// UsageSource reads the time-tracking store the ingestion side appends to.
// The engine never writes samples.
type UsageSource interface {
	AggregatePremiumUsage(ctx context.Context, from time.Time, to time.Time) (UsageTotals, error)
	CountPremiumUsers(ctx context.Context) (int64, error)
}

// DeveloperDirectory resolves payout preferences from developer payment
// details. Paypal wins when present, bank transfer otherwise.
type DeveloperDirectory interface {
	PaymentMethods(ctx context.Context, developerIDs []string) (map[string]string, error)
}

// RunRecord is everything one successful run persists. The repository must
// write it atomically: partial earnings with no run log (or vice versa) would
// corrupt reporting and risk double payouts.
type RunRecord struct {
	Month     string
	Earnings  []entities.DeveloperEarning
	Revenues  []entities.Revenue
	Payouts   []entities.Payout
	Log       entities.RunLog
	Supersede bool
}

type Repository interface {
	RecordRun(ctx context.Context, record RunRecord) error
	GetRunLog(ctx context.Context, month string) (entities.RunLog, error)
	GetPayout(ctx context.Context, payoutID string) (entities.Payout, error)
	UpdatePayout(ctx context.Context, payout entities.Payout) error
}

// RunSummary is what the admin trigger gets back.
type RunSummary struct {
	Month                 string
	TotalRevenueCents     int64
	TotalDistributedCents int64
	PlatformFeeCents      int64
	DeveloperCount        int
	Status                string
	Notes                 string
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type EventEnvelope = contractsv1.Envelope

type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, envelope EventEnvelope) error
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}
