package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateAPIKeyRequest struct {
	Name        string `json:"name"`
	Website     string `json:"website,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
}

type APIKeyDTO struct {
	KeyID     string `json:"key_id"`
	Name      string `json:"name"`
	Key       string `json:"key"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
}

type APIKeyResponse struct {
	Status string    `json:"status"`
	Data   APIKeyDTO `json:"data"`
}

type APIKeyListResponse struct {
	Status string      `json:"status"`
	Data   []APIKeyDTO `json:"data"`
}

type DeleteAPIKeyResponse struct {
	Status string `json:"status"`
}

type RecordSampleRequest struct {
	APIKey          string `json:"api_key"`
	WebsiteID       string `json:"website_id"`
	DurationSeconds int64  `json:"duration_seconds"`
	Path            string `json:"path,omitempty"`
	UserID          string `json:"user_id"`
	OccurredAt      string `json:"occurred_at,omitempty"`
}

type SampleDTO struct {
	SampleID        string `json:"sample_id"`
	UserID          string `json:"user_id"`
	WebsiteID       string `json:"website_id"`
	DurationSeconds int64  `json:"duration_seconds"`
	Path            string `json:"path,omitempty"`
	OccurredAt      string `json:"occurred_at"`
}

type RecordSampleResponse struct {
	Status string    `json:"status"`
	Data   SampleDTO `json:"data"`
}
