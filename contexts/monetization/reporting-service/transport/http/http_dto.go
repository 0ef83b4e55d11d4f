package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type MonthlyEarningDTO struct {
	Month          string `json:"month"`
	AmountCents    int64  `json:"amount_cents"`
	PremiumMinutes int64  `json:"premium_minutes"`
	WebsitesCount  int    `json:"websites_count"`
	CalculatedAt   string `json:"calculated_at"`
}

type EarningsHistoryResponse struct {
	Status string              `json:"status"`
	Data   []MonthlyEarningDTO `json:"data"`
}

type WebsiteEarningDTO struct {
	WebsiteID      string `json:"website_id"`
	WebsiteName    string `json:"website_name"`
	AmountCents    int64  `json:"amount_cents"`
	PremiumMinutes int64  `json:"premium_minutes"`
}

type EarningsBreakdownResponse struct {
	Status string              `json:"status"`
	Month  string              `json:"month"`
	Data   []WebsiteEarningDTO `json:"data"`
}

type PayoutRecordDTO struct {
	PayoutID      string `json:"payout_id"`
	AmountCents   int64  `json:"amount_cents"`
	Month         string `json:"month"`
	Status        string `json:"status"`
	PaymentMethod string `json:"payment_method"`
	ReferenceID   string `json:"reference_id,omitempty"`
	CreatedAt     string `json:"created_at"`
	ProcessedAt   string `json:"processed_at,omitempty"`
}

type PayoutHistoryResponse struct {
	Status string            `json:"status"`
	Data   []PayoutRecordDTO `json:"data"`
}

type RunEntryDTO struct {
	Month                 string `json:"month"`
	TotalRevenueCents     int64  `json:"total_revenue_cents"`
	TotalDistributedCents int64  `json:"total_distributed_cents"`
	PlatformFeeCents      int64  `json:"platform_fee_cents"`
	DeveloperCount        int    `json:"developer_count"`
	Status                string `json:"status"`
	RunAt                 string `json:"run_at"`
}

type PlatformStatsDTO struct {
	TotalRuns             int           `json:"total_runs"`
	TotalRevenueCents     int64         `json:"total_revenue_cents"`
	TotalDistributedCents int64         `json:"total_distributed_cents"`
	PlatformFeeCents      int64         `json:"platform_fee_cents"`
	LastRunAt             string        `json:"last_run_at,omitempty"`
	Runs                  []RunEntryDTO `json:"runs"`
}

type PlatformStatsResponse struct {
	Status string           `json:"status"`
	Data   PlatformStatsDTO `json:"data"`
}

type TopDeveloperDTO struct {
	Rank           int    `json:"rank"`
	DeveloperID    string `json:"developer_id"`
	AmountCents    int64  `json:"amount_cents"`
	PremiumMinutes int64  `json:"premium_minutes"`
	WebsitesCount  int    `json:"websites_count"`
}

type TopDevelopersResponse struct {
	Status string            `json:"status"`
	Month  string            `json:"month"`
	Data   []TopDeveloperDTO `json:"data"`
}
