package entities

import "time"

const (
	ScheduleWeekly   = "weekly"
	ScheduleBiweekly = "biweekly"
	ScheduleMonthly  = "monthly"
)

// RevenueSettings is the platform-wide singleton that parameterizes the
// monthly distribution run. Monetary amounts are cents.
type RevenueSettings struct {
	PlatformFeePercentage    float64
	DeveloperSharePercentage float64
	MinimumPayoutCents       int64
	PremiumPriceCents        int64
	BonusThresholdMinutes    int64
	BonusMultiplier          float64
	PayoutSchedule           string
	UpdatedAt                time.Time
}

// DefaultSettings are served whenever no row has been written yet.
func DefaultSettings() RevenueSettings {
	return RevenueSettings{
		PlatformFeePercentage:    30,
		DeveloperSharePercentage: 70,
		MinimumPayoutCents:       1000,
		PremiumPriceCents:        999,
		BonusThresholdMinutes:    120,
		BonusMultiplier:          1.5,
		PayoutSchedule:           ScheduleMonthly,
	}
}

func ValidSchedule(schedule string) bool {
	switch schedule {
	case ScheduleWeekly, ScheduleBiweekly, ScheduleMonthly:
		return true
	default:
		return false
	}
}
