package entities

import "time"

type Developer struct {
	DeveloperID string
	UserID      string
	CompanyName string
	Website     string
	CreatedAt   time.Time
}

type APIKey struct {
	KeyID       string
	DeveloperID string
	Name        string
	Secret      string
	Active      bool
	CreatedAt   time.Time
}

type Website struct {
	WebsiteID string
	APIKeyID  string
	URL       string
	Name      string
	CreatedAt time.Time
}

// TimeSample is the immutable usage fact the distribution engine aggregates.
type TimeSample struct {
	SampleID        string
	UserID          string
	WebsiteID       string
	DurationSeconds int64
	Path            string
	OccurredAt      time.Time
}
