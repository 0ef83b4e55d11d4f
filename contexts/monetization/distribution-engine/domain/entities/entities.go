package entities

import "time"

const (
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

const (
	PayoutStatusPending    = "pending"
	PayoutStatusProcessing = "processing"
	PayoutStatusCompleted  = "completed"
	PayoutStatusFailed     = "failed"
)

const (
	PaymentMethodPaypal       = "paypal"
	PaymentMethodBankTransfer = "bank_transfer"
)

// RevenuePool is one month's subscription revenue split into the platform fee
// and the amount divided among developers.
type RevenuePool struct {
	PremiumUserCount   int64
	TotalRevenueCents  int64
	PlatformFeeCents   int64
	DistributableCents int64
}

// WebsiteAllocation is one website's slice of the distributable pool.
// Amounts are integer cents, floor-rounded at each step.
type WebsiteAllocation struct {
	DeveloperID       string
	WebsiteID         string
	WebsiteName       string
	PremiumSeconds    int64
	PremiumMinutes    int64
	PercentageOfTotal float64
	BonusMultiplier   float64
	AmountCents       int64
}

// DeveloperRollup aggregates a developer's website allocations for one month.
type DeveloperRollup struct {
	DeveloperID    string
	AmountCents    int64
	PremiumMinutes int64
	WebsitesCount  int
	PaymentMethod  string
	PayoutEligible bool
}

// DeveloperEarning is the append-only per-website fact written by a run.
type DeveloperEarning struct {
	EarningID      string
	DeveloperID    string
	WebsiteID      string
	Month          string
	AmountCents    int64
	PremiumMinutes int64
	CalculatedAt   time.Time
}

// Revenue is the per-developer monthly aggregate fact written by a run.
type Revenue struct {
	RevenueID      string
	DeveloperID    string
	Month          string
	AmountCents    int64
	PremiumMinutes int64
	WebsitesCount  int
	CalculatedAt   time.Time
}

// Payout is the pending-money-movement record. Only Status, ReferenceID,
// Notes and ProcessedAt change after creation, and only through the payout
// workflow; the engine never mutates a payout it already wrote.
type Payout struct {
	PayoutID      string
	DeveloperID   string
	AmountCents   int64
	Month         string
	Status        string
	PaymentMethod string
	ReferenceID   string
	Notes         string
	CreatedAt     time.Time
	ProcessedAt   *time.Time
}

// RunLog is the audit record of one distribution run. One row per month.
type RunLog struct {
	RunID                 string
	Month                 string
	TotalRevenueCents     int64
	TotalDistributedCents int64
	PlatformFeeCents      int64
	DeveloperCount        int
	Status                string
	Notes                 string
	RunAt                 time.Time
}

func ValidPayoutStatus(status string) bool {
	switch status {
	case PayoutStatusPending, PayoutStatusProcessing, PayoutStatusCompleted, PayoutStatusFailed:
		return true
	default:
		return false
	}
}

// ValidPayoutTransition encodes the workflow: pending may start processing or
// settle directly; processing settles; terminal states never move.
func ValidPayoutTransition(from string, to string) bool {
	switch from {
	case PayoutStatusPending:
		return to == PayoutStatusProcessing || to == PayoutStatusCompleted || to == PayoutStatusFailed
	case PayoutStatusProcessing:
		return to == PayoutStatusCompleted || to == PayoutStatusFailed
	default:
		return false
	}
}
