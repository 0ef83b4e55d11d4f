package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"timepay/contexts/monetization/settings-service/domain/entities"
	domainerrors "timepay/contexts/monetization/settings-service/domain/errors"
	"timepay/contexts/monetization/settings-service/ports"
)

type Service struct {
	Repo   ports.SettingsRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

// GetSettings never fails on absence: an empty table yields the defaults.
func (s Service) GetSettings(ctx context.Context) (entities.RevenueSettings, error) {
	settings, found, err := s.Repo.Load(ctx)
	if err != nil {
		return entities.RevenueSettings{}, err
	}
	if !found {
		return entities.DefaultSettings(), nil
	}
	return settings, nil
}

// UpdateSettings applies a partial update on top of the current (or default)
// record and persists the merged result. An out-of-bounds field rejects the
// whole patch; nothing is partially applied.
func (s Service) UpdateSettings(ctx context.Context, patch ports.SettingsPatch) (entities.RevenueSettings, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return entities.RevenueSettings{}, err
	}

	if patch.PlatformFeePercentage != nil {
		settings.PlatformFeePercentage = *patch.PlatformFeePercentage
	}
	if patch.DeveloperSharePercentage != nil {
		settings.DeveloperSharePercentage = *patch.DeveloperSharePercentage
	}
	if patch.MinimumPayoutCents != nil {
		settings.MinimumPayoutCents = *patch.MinimumPayoutCents
	}
	if patch.PremiumPriceCents != nil {
		settings.PremiumPriceCents = *patch.PremiumPriceCents
	}
	if patch.BonusThresholdMinutes != nil {
		settings.BonusThresholdMinutes = *patch.BonusThresholdMinutes
	}
	if patch.BonusMultiplier != nil {
		settings.BonusMultiplier = *patch.BonusMultiplier
	}
	if patch.PayoutSchedule != nil {
		settings.PayoutSchedule = strings.ToLower(strings.TrimSpace(*patch.PayoutSchedule))
	}

	if !validSettings(settings) {
		return entities.RevenueSettings{}, domainerrors.ErrInvalidSettings
	}

	settings.UpdatedAt = s.now()
	if err := s.Repo.Save(ctx, settings); err != nil {
		return entities.RevenueSettings{}, err
	}

	resolveLogger(s.Logger).Info("revenue settings updated",
		"event", "revenue_settings_updated",
		"module", "monetization/settings-service",
		"layer", "application",
		"platform_fee_percentage", settings.PlatformFeePercentage,
		"developer_share_percentage", settings.DeveloperSharePercentage,
		"payout_schedule", settings.PayoutSchedule,
	)
	return settings, nil
}

func validSettings(settings entities.RevenueSettings) bool {
	if settings.PlatformFeePercentage < 0 || settings.PlatformFeePercentage > 100 {
		return false
	}
	if settings.DeveloperSharePercentage < 0 || settings.DeveloperSharePercentage > 100 {
		return false
	}
	if settings.MinimumPayoutCents < 0 || settings.PremiumPriceCents < 0 || settings.BonusThresholdMinutes < 0 {
		return false
	}
	if settings.BonusMultiplier < 1 {
		return false
	}
	return entities.ValidSchedule(settings.PayoutSchedule)
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
