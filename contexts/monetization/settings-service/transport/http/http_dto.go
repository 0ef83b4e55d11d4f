package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type SettingsDTO struct {
	PlatformFeePercentage    float64 `json:"platform_fee_percentage"`
	DeveloperSharePercentage float64 `json:"developer_share_percentage"`
	MinimumPayoutCents       int64   `json:"minimum_payout_cents"`
	PremiumPriceCents        int64   `json:"premium_price_cents"`
	BonusThresholdMinutes    int64   `json:"bonus_threshold_minutes"`
	BonusMultiplier          float64 `json:"bonus_multiplier"`
	PayoutSchedule           string  `json:"payout_schedule"`
	UpdatedAt                string  `json:"updated_at,omitempty"`
}

type SettingsResponse struct {
	Status string      `json:"status"`
	Data   SettingsDTO `json:"data"`
}

// UpdateSettingsRequest is a partial update: omitted fields keep their
// current values. Bounds are enforced before the patch reaches the service.
type UpdateSettingsRequest struct {
	PlatformFeePercentage    *float64 `json:"platform_fee_percentage,omitempty" validate:"omitempty,gte=0,lte=100"`
	DeveloperSharePercentage *float64 `json:"developer_share_percentage,omitempty" validate:"omitempty,gte=0,lte=100"`
	MinimumPayoutCents       *int64   `json:"minimum_payout_cents,omitempty" validate:"omitempty,gte=0"`
	PremiumPriceCents        *int64   `json:"premium_price_cents,omitempty" validate:"omitempty,gte=0"`
	BonusThresholdMinutes    *int64   `json:"bonus_threshold_minutes,omitempty" validate:"omitempty,gte=0"`
	BonusMultiplier          *float64 `json:"bonus_multiplier,omitempty" validate:"omitempty,gte=1"`
	PayoutSchedule           *string  `json:"payout_schedule,omitempty" validate:"omitempty,oneof=weekly biweekly monthly"`
}
