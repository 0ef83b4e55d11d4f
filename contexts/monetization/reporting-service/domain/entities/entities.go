package entities

import "time"

// MonthlyEarning is one developer's rollup for one distribution month.
type MonthlyEarning struct {
	Month          string
	AmountCents    int64
	PremiumMinutes int64
	WebsitesCount  int
	CalculatedAt   time.Time
}

type WebsiteEarning struct {
	WebsiteID      string
	WebsiteName    string
	AmountCents    int64
	PremiumMinutes int64
}

type PayoutRecord struct {
	PayoutID      string
	DeveloperID   string
	AmountCents   int64
	Month         string
	Status        string
	PaymentMethod string
	ReferenceID   string
	CreatedAt     time.Time
	ProcessedAt   *time.Time
}

type RunEntry struct {
	Month                 string
	TotalRevenueCents     int64
	TotalDistributedCents int64
	PlatformFeeCents      int64
	DeveloperCount        int
	Status                string
	RunAt                 time.Time
}

// PlatformStats aggregates the run history for the admin dashboard.
type PlatformStats struct {
	TotalRuns             int
	TotalRevenueCents     int64
	TotalDistributedCents int64
	PlatformFeeCents      int64
	LastRunAt             *time.Time
	Runs                  []RunEntry
}

type TopDeveloper struct {
	Rank           int
	DeveloperID    string
	AmountCents    int64
	PremiumMinutes int64
	WebsitesCount  int
}
