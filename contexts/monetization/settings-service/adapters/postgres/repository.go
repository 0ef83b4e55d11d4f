package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"timepay/contexts/monetization/settings-service/domain/entities"
	"timepay/contexts/monetization/settings-service/ports"
)

// Repository persists the singleton revenue_settings row. The distribution
// engine reads the same table through its own adapter.
type Repository struct {
	DB     *gorm.DB
	Logger *slog.Logger
}

type settingsModel struct {
	SettingsID            string    `gorm:"column:id;primaryKey"`
	PlatformFeePercentage float64   `gorm:"column:platform_fee_percentage"`
	DeveloperShare        float64   `gorm:"column:developer_share"`
	MinimumPayoutAmount   int64     `gorm:"column:minimum_payout_amount"`
	SubscriptionPrice     int64     `gorm:"column:premium_subscription_price"`
	BonusThreshold        int64     `gorm:"column:high_performance_bonus_threshold"`
	BonusMultiplier       float64   `gorm:"column:high_performance_bonus_multiplier"`
	PayoutSchedule        string    `gorm:"column:payout_schedule"`
	UpdatedAt             time.Time `gorm:"column:updated_at"`
}

func (settingsModel) TableName() string {
	return "revenue_settings"
}

func (r Repository) Load(ctx context.Context) (entities.RevenueSettings, bool, error) {
	var row settingsModel
	err := r.DB.WithContext(ctx).Order("updated_at DESC").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.RevenueSettings{}, false, nil
	}
	if err != nil {
		r.logError("settings_load_failed", err)
		return entities.RevenueSettings{}, false, err
	}
	return toEntity(row), true, nil
}

func (r Repository) Save(ctx context.Context, settings entities.RevenueSettings) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row settingsModel
		err := tx.First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(modelFromEntity(uuid.NewString(), settings)).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&settingsModel{}).
			Where("id = ?", row.SettingsID).
			Updates(updatesFromEntity(settings)).Error
	})
	if err != nil {
		r.logError("settings_save_failed", err)
	}
	return err
}

func modelFromEntity(settingsID string, settings entities.RevenueSettings) *settingsModel {
	return &settingsModel{
		SettingsID:            settingsID,
		PlatformFeePercentage: settings.PlatformFeePercentage,
		DeveloperShare:        settings.DeveloperSharePercentage,
		MinimumPayoutAmount:   settings.MinimumPayoutCents,
		SubscriptionPrice:     settings.PremiumPriceCents,
		BonusThreshold:        settings.BonusThresholdMinutes,
		BonusMultiplier:       settings.BonusMultiplier,
		PayoutSchedule:        settings.PayoutSchedule,
		UpdatedAt:             settings.UpdatedAt.UTC(),
	}
}

func updatesFromEntity(settings entities.RevenueSettings) map[string]any {
	return map[string]any{
		"platform_fee_percentage":           settings.PlatformFeePercentage,
		"developer_share":                   settings.DeveloperSharePercentage,
		"minimum_payout_amount":             settings.MinimumPayoutCents,
		"premium_subscription_price":        settings.PremiumPriceCents,
		"high_performance_bonus_threshold":  settings.BonusThresholdMinutes,
		"high_performance_bonus_multiplier": settings.BonusMultiplier,
		"payout_schedule":                   settings.PayoutSchedule,
		"updated_at":                        settings.UpdatedAt.UTC(),
	}
}

func toEntity(row settingsModel) entities.RevenueSettings {
	return entities.RevenueSettings{
		PlatformFeePercentage:    row.PlatformFeePercentage,
		DeveloperSharePercentage: row.DeveloperShare,
		MinimumPayoutCents:       row.MinimumPayoutAmount,
		PremiumPriceCents:        row.SubscriptionPrice,
		BonusThresholdMinutes:    row.BonusThreshold,
		BonusMultiplier:          row.BonusMultiplier,
		PayoutSchedule:           row.PayoutSchedule,
		UpdatedAt:                row.UpdatedAt,
	}
}

func (r Repository) logError(event string, err error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Error("settings repository operation failed",
		"event", event,
		"module", "monetization/settings-service",
		"layer", "adapters/postgres",
		"error", err,
	)
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

var _ ports.SettingsRepository = Repository{}
var _ ports.Clock = SystemClock{}
