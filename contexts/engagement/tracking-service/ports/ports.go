package ports

import (
	"context"
	"time"

	"timepay/contexts/engagement/tracking-service/domain/entities"
)

type Repository interface {
	DeveloperByUser(ctx context.Context, userID string) (entities.Developer, bool, error)
	CreateDeveloper(ctx context.Context, developer entities.Developer) error

	APIKeysByDeveloper(ctx context.Context, developerID string) ([]entities.APIKey, error)
	GetAPIKey(ctx context.Context, keyID string) (entities.APIKey, error)
	FindAPIKeyBySecret(ctx context.Context, secret string) (entities.APIKey, error)
	CreateAPIKey(ctx context.Context, key entities.APIKey) error
	DeleteAPIKey(ctx context.Context, keyID string) error

	CreateWebsite(ctx context.Context, website entities.Website) error
	AppendSample(ctx context.Context, sample entities.TimeSample) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// KeyGenerator mints the opaque secret handed to integrators.
type KeyGenerator interface {
	NewKey() (string, error)
}
