package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"timepay/contexts/monetization/reporting-service/domain/entities"
	domainerrors "timepay/contexts/monetization/reporting-service/domain/errors"
	"timepay/contexts/monetization/reporting-service/ports"
)

// Repository reads the tables the distribution engine writes. It owns no
// table of its own.
type Repository struct {
	DB     *gorm.DB
	Logger *slog.Logger
}

type developerModel struct {
	ID     string `gorm:"column:id;primaryKey"`
	UserID string `gorm:"column:user_id"`
}

func (developerModel) TableName() string {
	return "developers"
}

type revenueModel struct {
	DeveloperID    string    `gorm:"column:developer_id"`
	Month          string    `gorm:"column:month"`
	AmountCents    int64     `gorm:"column:amount_cents"`
	PremiumMinutes int64     `gorm:"column:premium_minutes"`
	WebsitesCount  int       `gorm:"column:websites_count"`
	CalculatedAt   time.Time `gorm:"column:calculated_at"`
}

func (revenueModel) TableName() string {
	return "revenue"
}

type websiteEarningRow struct {
	WebsiteID      string `gorm:"column:website_id"`
	WebsiteName    string `gorm:"column:website_name"`
	AmountCents    int64  `gorm:"column:amount_cents"`
	PremiumMinutes int64  `gorm:"column:premium_minutes"`
}

type payoutModel struct {
	ID            string     `gorm:"column:id;primaryKey"`
	DeveloperID   string     `gorm:"column:developer_id"`
	AmountCents   int64      `gorm:"column:amount_cents"`
	Month         string     `gorm:"column:month"`
	Status        string     `gorm:"column:status"`
	PaymentMethod string     `gorm:"column:payment_method"`
	ReferenceID   string     `gorm:"column:reference_id"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	ProcessedAt   *time.Time `gorm:"column:processed_at"`
}

func (payoutModel) TableName() string {
	return "payouts"
}

type runLogModel struct {
	Month                 string    `gorm:"column:month"`
	TotalRevenueCents     int64     `gorm:"column:total_revenue_cents"`
	TotalDistributedCents int64     `gorm:"column:total_distributed_cents"`
	PlatformFeeCents      int64     `gorm:"column:platform_fee_cents"`
	DeveloperCount        int       `gorm:"column:developer_count"`
	Status                string    `gorm:"column:status"`
	RunAt                 time.Time `gorm:"column:run_at"`
}

func (runLogModel) TableName() string {
	return "revenue_distribution_logs"
}

// ports.DeveloperDirectory

func (r Repository) ResolveDeveloperByUser(ctx context.Context, userID string) (string, error) {
	var row developerModel
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", domainerrors.ErrDeveloperNotFound
	}
	if err != nil {
		r.logError("reporting_resolve_developer_failed", err)
		return "", err
	}
	return row.ID, nil
}

// ports.EarningsReader

func (r Repository) MonthlyEarnings(
	ctx context.Context,
	developerID string,
	limit int,
) ([]entities.MonthlyEarning, error) {
	var rows []revenueModel
	err := r.DB.WithContext(ctx).
		Where("developer_id = ?", developerID).
		Order("month DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		r.logError("reporting_monthly_earnings_failed", err)
		return nil, err
	}

	earnings := make([]entities.MonthlyEarning, 0, len(rows))
	for _, row := range rows {
		earnings = append(earnings, entities.MonthlyEarning{
			Month:          row.Month,
			AmountCents:    row.AmountCents,
			PremiumMinutes: row.PremiumMinutes,
			WebsitesCount:  row.WebsitesCount,
			CalculatedAt:   row.CalculatedAt,
		})
	}
	return earnings, nil
}

func (r Repository) WebsiteBreakdown(
	ctx context.Context,
	developerID string,
	month string,
) ([]entities.WebsiteEarning, error) {
	var rows []websiteEarningRow
	err := r.DB.WithContext(ctx).
		Table("developer_earnings").
		Select("developer_earnings.website_id AS website_id, websites.name AS website_name, developer_earnings.amount_cents AS amount_cents, developer_earnings.premium_minutes AS premium_minutes").
		Joins("JOIN websites ON websites.id = developer_earnings.website_id").
		Where("developer_earnings.developer_id = ? AND developer_earnings.month = ?", developerID, month).
		Order("developer_earnings.amount_cents DESC, developer_earnings.website_id ASC").
		Scan(&rows).Error
	if err != nil {
		r.logError("reporting_website_breakdown_failed", err)
		return nil, err
	}

	breakdown := make([]entities.WebsiteEarning, 0, len(rows))
	for _, row := range rows {
		breakdown = append(breakdown, entities.WebsiteEarning{
			WebsiteID:      row.WebsiteID,
			WebsiteName:    row.WebsiteName,
			AmountCents:    row.AmountCents,
			PremiumMinutes: row.PremiumMinutes,
		})
	}
	return breakdown, nil
}

func (r Repository) PayoutHistory(
	ctx context.Context,
	developerID string,
	limit int,
) ([]entities.PayoutRecord, error) {
	var rows []payoutModel
	err := r.DB.WithContext(ctx).
		Where("developer_id = ?", developerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		r.logError("reporting_payout_history_failed", err)
		return nil, err
	}

	payouts := make([]entities.PayoutRecord, 0, len(rows))
	for _, row := range rows {
		payouts = append(payouts, entities.PayoutRecord{
			PayoutID:      row.ID,
			DeveloperID:   row.DeveloperID,
			AmountCents:   row.AmountCents,
			Month:         row.Month,
			Status:        row.Status,
			PaymentMethod: row.PaymentMethod,
			ReferenceID:   row.ReferenceID,
			CreatedAt:     row.CreatedAt,
			ProcessedAt:   row.ProcessedAt,
		})
	}
	return payouts, nil
}

// ports.RunReader

func (r Repository) RecentRuns(ctx context.Context, limit int) ([]entities.RunEntry, error) {
	var rows []runLogModel
	err := r.DB.WithContext(ctx).
		Order("run_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		r.logError("reporting_recent_runs_failed", err)
		return nil, err
	}

	runs := make([]entities.RunEntry, 0, len(rows))
	for _, row := range rows {
		runs = append(runs, entities.RunEntry{
			Month:                 row.Month,
			TotalRevenueCents:     row.TotalRevenueCents,
			TotalDistributedCents: row.TotalDistributedCents,
			PlatformFeeCents:      row.PlatformFeeCents,
			DeveloperCount:        row.DeveloperCount,
			Status:                row.Status,
			RunAt:                 row.RunAt,
		})
	}
	return runs, nil
}

func (r Repository) TopDevelopers(
	ctx context.Context,
	month string,
	limit int,
) ([]entities.TopDeveloper, error) {
	var rows []revenueModel
	err := r.DB.WithContext(ctx).
		Where("month = ?", month).
		Order("amount_cents DESC, developer_id ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		r.logError("reporting_top_developers_failed", err)
		return nil, err
	}

	top := make([]entities.TopDeveloper, 0, len(rows))
	for i, row := range rows {
		top = append(top, entities.TopDeveloper{
			Rank:           i + 1,
			DeveloperID:    row.DeveloperID,
			AmountCents:    row.AmountCents,
			PremiumMinutes: row.PremiumMinutes,
			WebsitesCount:  row.WebsitesCount,
		})
	}
	return top, nil
}

func (r Repository) logError(event string, err error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Error("reporting repository operation failed",
		"event", event,
		"module", "monetization/reporting-service",
		"layer", "adapters/postgres",
		"error", err,
	)
}

var _ ports.DeveloperDirectory = Repository{}
var _ ports.EarningsReader = Repository{}
var _ ports.RunReader = Repository{}
