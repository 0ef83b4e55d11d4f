package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"timepay/contexts/monetization/distribution-engine/domain/entities"
	domainerrors "timepay/contexts/monetization/distribution-engine/domain/errors"
	"timepay/contexts/monetization/distribution-engine/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// ports.SettingsSource

func (r *Repository) SettingsSnapshot(ctx context.Context) (ports.SettingsSnapshot, error) {
	var row revenueSettingsModel
	err := r.db.WithContext(ctx).Order("updated_at DESC").First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Absence of configuration is the default state, not an error.
			return defaultSettings(), nil
		}
		return ports.SettingsSnapshot{}, r.logError("distribution_repo_settings_read_failed", err)
	}
	return ports.SettingsSnapshot{
		PlatformFeePercentage:    row.PlatformFeePercentage,
		DeveloperSharePercentage: row.DeveloperShare,
		MinimumPayoutCents:       row.MinimumPayoutAmount,
		PayoutSchedule:           row.PayoutSchedule,
		PremiumPriceCents:        row.PremiumSubscriptionPrice,
		BonusThresholdMinutes:    row.BonusThresholdMinutes,
		BonusMultiplier:          row.BonusMultiplier,
	}, nil
}

func defaultSettings() ports.SettingsSnapshot {
	return ports.SettingsSnapshot{
		PlatformFeePercentage:    30,
		DeveloperSharePercentage: 70,
		MinimumPayoutCents:       1000,
		PayoutSchedule:           "monthly",
		PremiumPriceCents:        999,
		BonusThresholdMinutes:    120,
		BonusMultiplier:          1.5,
	}
}

// ports.UsageSource

type usageRow struct {
	DeveloperID    string `gorm:"column:developer_id"`
	WebsiteID      string `gorm:"column:website_id"`
	WebsiteName    string `gorm:"column:website_name"`
	PremiumSeconds int64  `gorm:"column:premium_seconds"`
}

func (r *Repository) AggregatePremiumUsage(
	ctx context.Context,
	from time.Time,
	to time.Time,
) (ports.UsageTotals, error) {
	var rows []usageRow
	err := r.db.WithContext(ctx).
		Model(&timeSampleModel{}).
		Select("api_keys.developer_id AS developer_id, websites.id AS website_id, websites.name AS website_name, COALESCE(SUM(time_samples.duration_seconds), 0) AS premium_seconds").
		Joins("JOIN users ON users.id = time_samples.user_id").
		Joins("JOIN websites ON websites.id = time_samples.website_id").
		Joins("JOIN api_keys ON api_keys.id = websites.api_key_id").
		Where("time_samples.occurred_at >= ? AND time_samples.occurred_at < ?", from.UTC(), to.UTC()).
		Where("users.is_subscribed = ?", true).
		Group("api_keys.developer_id, websites.id, websites.name").
		Order("api_keys.developer_id, websites.id").
		Scan(&rows).Error
	if err != nil {
		return ports.UsageTotals{}, r.logError("distribution_repo_usage_aggregate_failed", err,
			"from", from.UTC().Format(time.RFC3339),
			"to", to.UTC().Format(time.RFC3339),
		)
	}

	totals := ports.UsageTotals{PerWebsite: make([]ports.WebsiteUsage, 0, len(rows))}
	for _, row := range rows {
		totals.TotalPremiumSeconds += row.PremiumSeconds
		totals.PerWebsite = append(totals.PerWebsite, ports.WebsiteUsage{
			DeveloperID:    row.DeveloperID,
			WebsiteID:      row.WebsiteID,
			WebsiteName:    row.WebsiteName,
			PremiumSeconds: row.PremiumSeconds,
		})
	}
	return totals, nil
}

func (r *Repository) CountPremiumUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("is_subscribed = ?", true).
		Count(&count).Error
	if err != nil {
		return 0, r.logError("distribution_repo_premium_user_count_failed", err)
	}
	return count, nil
}

// ports.DeveloperDirectory

func (r *Repository) PaymentMethods(ctx context.Context, developerIDs []string) (map[string]string, error) {
	methods := make(map[string]string, len(developerIDs))
	if len(developerIDs) == 0 {
		return methods, nil
	}

	var rows []developerModel
	err := r.db.WithContext(ctx).
		Where("id IN ?", developerIDs).
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("distribution_repo_payment_methods_failed", err)
	}

	for _, row := range rows {
		methods[row.ID] = resolvePaymentMethod(row.PaymentDetails)
	}
	for _, developerID := range developerIDs {
		if _, ok := methods[developerID]; !ok {
			methods[developerID] = entities.PaymentMethodBankTransfer
		}
	}
	return methods, nil
}

func resolvePaymentMethod(detailsJSON string) string {
	if strings.TrimSpace(detailsJSON) == "" {
		return entities.PaymentMethodBankTransfer
	}
	var details map[string]any
	if err := json.Unmarshal([]byte(detailsJSON), &details); err != nil {
		return entities.PaymentMethodBankTransfer
	}
	if paypal, ok := details["paypal"]; ok && paypal != nil && paypal != "" {
		return entities.PaymentMethodPaypal
	}
	return entities.PaymentMethodBankTransfer
}

// ports.Repository

func (r *Repository) RecordRun(ctx context.Context, record ports.RunRecord) error {
	month := strings.TrimSpace(record.Month)
	if month == "" {
		return domainerrors.ErrInvalidMonth
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&runLogModel{}).
			Where("month = ?", month).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			if !record.Supersede {
				return domainerrors.ErrDuplicateRun
			}
			for _, model := range []any{
				&developerEarningModel{},
				&revenueModel{},
				&payoutModel{},
				&runLogModel{},
			} {
				if err := tx.Where("month = ?", month).Delete(model).Error; err != nil {
					return err
				}
			}
		}

		// The log row goes first: its unique month index is the guard that
		// turns two concurrent runs into one winner and one clean conflict.
		logRow := runLogModelFromEntity(record.Log)
		if err := tx.Create(&logRow).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrDuplicateRun
			}
			return err
		}

		if len(record.Earnings) > 0 {
			rows := make([]developerEarningModel, 0, len(record.Earnings))
			for _, earning := range record.Earnings {
				rows = append(rows, developerEarningModelFromEntity(earning))
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		if len(record.Revenues) > 0 {
			rows := make([]revenueModel, 0, len(record.Revenues))
			for _, revenue := range record.Revenues {
				rows = append(rows, revenueModelFromEntity(revenue))
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		if len(record.Payouts) > 0 {
			rows := make([]payoutModel, 0, len(record.Payouts))
			for _, payout := range record.Payouts {
				rows = append(rows, payoutModelFromEntity(payout))
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateRun) {
			r.logWarn("distribution_repo_duplicate_run", "month", month)
			return err
		}
		return r.logError("distribution_repo_record_run_failed", err, "month", month)
	}
	return nil
}

func (r *Repository) GetRunLog(ctx context.Context, month string) (entities.RunLog, error) {
	var row runLogModel
	err := r.db.WithContext(ctx).
		Where("month = ?", strings.TrimSpace(month)).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.RunLog{}, domainerrors.ErrRunNotFound
		}
		return entities.RunLog{}, r.logError("distribution_repo_get_run_log_failed", err,
			"month", strings.TrimSpace(month),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) GetPayout(ctx context.Context, payoutID string) (entities.Payout, error) {
	var row payoutModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(payoutID)).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Payout{}, domainerrors.ErrPayoutNotFound
		}
		return entities.Payout{}, r.logError("distribution_repo_get_payout_failed", err,
			"payout_id", strings.TrimSpace(payoutID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdatePayout(ctx context.Context, payout entities.Payout) error {
	result := r.db.WithContext(ctx).
		Model(&payoutModel{}).
		Where("id = ?", strings.TrimSpace(payout.PayoutID)).
		Updates(payoutUpdatesFromEntity(payout))
	if result.Error != nil {
		return r.logError("distribution_repo_update_payout_failed", result.Error,
			"payout_id", strings.TrimSpace(payout.PayoutID),
		)
	}
	if result.RowsAffected == 0 {
		r.logWarn("distribution_repo_update_payout_not_found",
			"payout_id", strings.TrimSpace(payout.PayoutID),
		)
		return domainerrors.ErrPayoutNotFound
	}
	return nil
}

// ports.OutboxWriter / ports.OutboxRepository

func (r *Repository) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	row := outboxModel{
		ID:           strings.TrimSpace(envelope.EventID),
		EventType:    envelope.EventType,
		PartitionKey: envelope.PartitionKey,
		Payload:      payload,
		Status:       outboxStatusPending,
		CreatedAt:    envelope.OccurredAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return r.logError("distribution_repo_append_outbox_failed", err,
			"event_id", row.ID,
			"event_type", row.EventType,
		)
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("distribution_repo_list_outbox_failed", err)
	}

	messages := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, ports.OutboxMessage{
			OutboxID:     row.ID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      row.Payload,
			CreatedAt:    row.CreatedAt,
		})
	}
	return messages, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	ts := publishedAt.UTC()
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": &ts,
		})
	if result.Error != nil {
		return r.logError("distribution_repo_mark_outbox_failed", result.Error,
			"outbox_id", strings.TrimSpace(outboxID),
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrRunNotFound
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "monetization/distribution-engine",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("distribution repository operation failed", fields...)
	return err
}

func (r *Repository) logWarn(event string, args ...any) {
	fields := append([]any{
		"event", event,
		"module", "monetization/distribution-engine",
		"layer", "adapter",
	}, args...)
	r.logger.Warn("distribution repository operation rejected", fields...)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.Repository = (*Repository)(nil)
var _ ports.UsageSource = (*Repository)(nil)
var _ ports.SettingsSource = (*Repository)(nil)
var _ ports.DeveloperDirectory = (*Repository)(nil)
var _ ports.OutboxWriter = (*Repository)(nil)
var _ ports.OutboxRepository = (*Repository)(nil)
