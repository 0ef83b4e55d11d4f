package ports

import (
	"context"
	"time"

	"timepay/contexts/monetization/settings-service/domain/entities"
)

// SettingsRepository persists the singleton settings row. Load reports
// found=false when no row has ever been written.
type SettingsRepository interface {
	Load(ctx context.Context) (entities.RevenueSettings, bool, error)
	Save(ctx context.Context, settings entities.RevenueSettings) error
}

type Clock interface {
	Now() time.Time
}

// SettingsPatch carries the fields an update names. Nil means "keep the
// current value".
type SettingsPatch struct {
	PlatformFeePercentage    *float64
	DeveloperSharePercentage *float64
	MinimumPayoutCents       *int64
	PremiumPriceCents        *int64
	BonusThresholdMinutes    *int64
	BonusMultiplier          *float64
	PayoutSchedule           *string
}
