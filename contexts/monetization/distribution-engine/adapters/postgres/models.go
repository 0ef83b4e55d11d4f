package postgresadapter

import (
	"strings"
	"time"

	"timepay/contexts/monetization/distribution-engine/domain/entities"
)

// Read-side models. These tables are owned by the tracking/identity side;
// the engine only joins across them.

type userModel struct {
	ID           string `gorm:"column:id;primaryKey"`
	IsSubscribed bool   `gorm:"column:is_subscribed"`
}

func (userModel) TableName() string {
	return "users"
}

type developerModel struct {
	ID             string `gorm:"column:id;primaryKey"`
	PaymentDetails string `gorm:"column:payment_details"`
}

func (developerModel) TableName() string {
	return "developers"
}

type timeSampleModel struct {
	ID              string    `gorm:"column:id;primaryKey"`
	UserID          string    `gorm:"column:user_id"`
	WebsiteID       string    `gorm:"column:website_id"`
	DurationSeconds int64     `gorm:"column:duration_seconds"`
	OccurredAt      time.Time `gorm:"column:occurred_at"`
}

func (timeSampleModel) TableName() string {
	return "time_samples"
}

type revenueSettingsModel struct {
	ID                       string    `gorm:"column:id;primaryKey"`
	PlatformFeePercentage    float64   `gorm:"column:platform_fee_percentage"`
	DeveloperShare           float64   `gorm:"column:developer_share"`
	MinimumPayoutAmount      int64     `gorm:"column:minimum_payout_amount"`
	PayoutSchedule           string    `gorm:"column:payout_schedule"`
	PremiumSubscriptionPrice int64     `gorm:"column:premium_subscription_price"`
	BonusThresholdMinutes    int64     `gorm:"column:high_performance_bonus_threshold"`
	BonusMultiplier          float64   `gorm:"column:high_performance_bonus_multiplier"`
	UpdatedAt                time.Time `gorm:"column:updated_at"`
}

func (revenueSettingsModel) TableName() string {
	return "revenue_settings"
}

// Write-side models owned by the engine.

type developerEarningModel struct {
	ID             string    `gorm:"column:id;primaryKey"`
	DeveloperID    string    `gorm:"column:developer_id"`
	WebsiteID      string    `gorm:"column:website_id"`
	Month          string    `gorm:"column:month"`
	AmountCents    int64     `gorm:"column:amount_cents"`
	PremiumMinutes int64     `gorm:"column:premium_minutes"`
	CalculatedAt   time.Time `gorm:"column:calculated_at"`
}

func (developerEarningModel) TableName() string {
	return "developer_earnings"
}

func developerEarningModelFromEntity(earning entities.DeveloperEarning) developerEarningModel {
	return developerEarningModel{
		ID:             strings.TrimSpace(earning.EarningID),
		DeveloperID:    strings.TrimSpace(earning.DeveloperID),
		WebsiteID:      strings.TrimSpace(earning.WebsiteID),
		Month:          strings.TrimSpace(earning.Month),
		AmountCents:    earning.AmountCents,
		PremiumMinutes: earning.PremiumMinutes,
		CalculatedAt:   earning.CalculatedAt.UTC(),
	}
}

type revenueModel struct {
	ID             string    `gorm:"column:id;primaryKey"`
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

func revenueModelFromEntity(revenue entities.Revenue) revenueModel {
	return revenueModel{
		ID:             strings.TrimSpace(revenue.RevenueID),
		DeveloperID:    strings.TrimSpace(revenue.DeveloperID),
		Month:          strings.TrimSpace(revenue.Month),
		AmountCents:    revenue.AmountCents,
		PremiumMinutes: revenue.PremiumMinutes,
		WebsitesCount:  revenue.WebsitesCount,
		CalculatedAt:   revenue.CalculatedAt.UTC(),
	}
}

type payoutModel struct {
	ID            string     `gorm:"column:id;primaryKey"`
	DeveloperID   string     `gorm:"column:developer_id"`
	AmountCents   int64      `gorm:"column:amount_cents"`
	Month         string     `gorm:"column:month"`
	Status        string     `gorm:"column:status"`
	PaymentMethod string     `gorm:"column:payment_method"`
	ReferenceID   string     `gorm:"column:reference_id"`
	Notes         string     `gorm:"column:notes"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	ProcessedAt   *time.Time `gorm:"column:processed_at"`
}

func (payoutModel) TableName() string {
	return "payouts"
}

func payoutModelFromEntity(payout entities.Payout) payoutModel {
	return payoutModel{
		ID:            strings.TrimSpace(payout.PayoutID),
		DeveloperID:   strings.TrimSpace(payout.DeveloperID),
		AmountCents:   payout.AmountCents,
		Month:         strings.TrimSpace(payout.Month),
		Status:        payout.Status,
		PaymentMethod: payout.PaymentMethod,
		ReferenceID:   payout.ReferenceID,
		Notes:         payout.Notes,
		CreatedAt:     payout.CreatedAt.UTC(),
		ProcessedAt:   normalizedTimePtr(payout.ProcessedAt),
	}
}

func payoutUpdatesFromEntity(payout entities.Payout) map[string]any {
	return map[string]any{
		"status":       payout.Status,
		"reference_id": payout.ReferenceID,
		"notes":        payout.Notes,
		"processed_at": normalizedTimePtr(payout.ProcessedAt),
	}
}

func (m payoutModel) toEntity() entities.Payout {
	return entities.Payout{
		PayoutID:      m.ID,
		DeveloperID:   m.DeveloperID,
		AmountCents:   m.AmountCents,
		Month:         m.Month,
		Status:        m.Status,
		PaymentMethod: m.PaymentMethod,
		ReferenceID:   m.ReferenceID,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
		ProcessedAt:   m.ProcessedAt,
	}
}

type runLogModel struct {
	ID                    string    `gorm:"column:id;primaryKey"`
	Month                 string    `gorm:"column:month;uniqueIndex"`
	TotalRevenueCents     int64     `gorm:"column:total_revenue_cents"`
	TotalDistributedCents int64     `gorm:"column:total_distributed_cents"`
	PlatformFeeCents      int64     `gorm:"column:platform_fee_cents"`
	DeveloperCount        int       `gorm:"column:developer_count"`
	Status                string    `gorm:"column:status"`
	Notes                 string    `gorm:"column:notes"`
	RunAt                 time.Time `gorm:"column:run_at"`
}

func (runLogModel) TableName() string {
	return "revenue_distribution_logs"
}

func runLogModelFromEntity(log entities.RunLog) runLogModel {
	return runLogModel{
		ID:                    strings.TrimSpace(log.RunID),
		Month:                 strings.TrimSpace(log.Month),
		TotalRevenueCents:     log.TotalRevenueCents,
		TotalDistributedCents: log.TotalDistributedCents,
		PlatformFeeCents:      log.PlatformFeeCents,
		DeveloperCount:        log.DeveloperCount,
		Status:                log.Status,
		Notes:                 log.Notes,
		RunAt:                 log.RunAt.UTC(),
	}
}

func (m runLogModel) toEntity() entities.RunLog {
	return entities.RunLog{
		RunID:                 m.ID,
		Month:                 m.Month,
		TotalRevenueCents:     m.TotalRevenueCents,
		TotalDistributedCents: m.TotalDistributedCents,
		PlatformFeeCents:      m.PlatformFeeCents,
		DeveloperCount:        m.DeveloperCount,
		Status:                m.Status,
		Notes:                 m.Notes,
		RunAt:                 m.RunAt,
	}
}

type outboxModel struct {
	ID           string     `gorm:"column:id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "distribution_outbox"
}

func normalizedTimePtr(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	ts := value.UTC()
	return &ts
}
