package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CalculateRevenueRequest struct {
	Month string `json:"month,omitempty"`
	Force bool   `json:"force,omitempty"`
}

type RunSummaryDTO struct {
	Month                 string `json:"month"`
	TotalRevenueCents     int64  `json:"total_revenue_cents"`
	TotalDistributedCents int64  `json:"total_distributed_cents"`
	PlatformFeeCents      int64  `json:"platform_fee_cents"`
	DeveloperCount        int    `json:"developer_count"`
	Status                string `json:"status"`
	Notes                 string `json:"notes,omitempty"`
}

type CalculateRevenueResponse struct {
	Status string        `json:"status"`
	Data   RunSummaryDTO `json:"data"`
}

type RunLogDTO struct {
	RunID                 string `json:"run_id"`
	Month                 string `json:"month"`
	TotalRevenueCents     int64  `json:"total_revenue_cents"`
	TotalDistributedCents int64  `json:"total_distributed_cents"`
	PlatformFeeCents      int64  `json:"platform_fee_cents"`
	DeveloperCount        int    `json:"developer_count"`
	Status                string `json:"status"`
	Notes                 string `json:"notes,omitempty"`
	RunAt                 string `json:"run_at"`
}

type RunLogResponse struct {
	Status string    `json:"status"`
	Data   RunLogDTO `json:"data"`
}

type UpdatePayoutRequest struct {
	Status      string `json:"status"`
	ReferenceID string `json:"reference_id,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

type PayoutDTO struct {
	PayoutID      string `json:"payout_id"`
	DeveloperID   string `json:"developer_id"`
	AmountCents   int64  `json:"amount_cents"`
	Month         string `json:"month"`
	Status        string `json:"status"`
	PaymentMethod string `json:"payment_method"`
	ReferenceID   string `json:"reference_id,omitempty"`
	Notes         string `json:"notes,omitempty"`
	CreatedAt     string `json:"created_at"`
	ProcessedAt   string `json:"processed_at,omitempty"`
}

type UpdatePayoutResponse struct {
	Status string    `json:"status"`
	Data   PayoutDTO `json:"data"`
}
