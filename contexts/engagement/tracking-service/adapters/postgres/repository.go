package postgres

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"timepay/contexts/engagement/tracking-service/domain/entities"
	domainerrors "timepay/contexts/engagement/tracking-service/domain/errors"
	"timepay/contexts/engagement/tracking-service/ports"
)

type Repository struct {
	DB     *gorm.DB
	Logger *slog.Logger
}

type developerModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	UserID      string    `gorm:"column:user_id;uniqueIndex"`
	CompanyName string    `gorm:"column:company_name"`
	Website     string    `gorm:"column:website"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (developerModel) TableName() string {
	return "developers"
}

type apiKeyModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	DeveloperID string    `gorm:"column:developer_id"`
	Name        string    `gorm:"column:name"`
	Key         string    `gorm:"column:key;uniqueIndex"`
	Active      bool      `gorm:"column:active"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (apiKeyModel) TableName() string {
	return "api_keys"
}

type websiteModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	APIKeyID  string    `gorm:"column:api_key_id"`
	URL       string    `gorm:"column:url"`
	Name      string    `gorm:"column:name"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (websiteModel) TableName() string {
	return "websites"
}

type timeSampleModel struct {
	ID              string    `gorm:"column:id;primaryKey"`
	UserID          string    `gorm:"column:user_id"`
	WebsiteID       string    `gorm:"column:website_id"`
	DurationSeconds int64     `gorm:"column:duration_seconds"`
	Path            string    `gorm:"column:path"`
	OccurredAt      time.Time `gorm:"column:occurred_at"`
}

func (timeSampleModel) TableName() string {
	return "time_samples"
}

func (r Repository) DeveloperByUser(ctx context.Context, userID string) (entities.Developer, bool, error) {
	var row developerModel
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Developer{}, false, nil
	}
	if err != nil {
		r.logError("tracking_developer_lookup_failed", err)
		return entities.Developer{}, false, err
	}
	return entities.Developer{
		DeveloperID: row.ID,
		UserID:      row.UserID,
		CompanyName: row.CompanyName,
		Website:     row.Website,
		CreatedAt:   row.CreatedAt,
	}, true, nil
}

func (r Repository) CreateDeveloper(ctx context.Context, developer entities.Developer) error {
	err := r.DB.WithContext(ctx).Create(&developerModel{
		ID:          developer.DeveloperID,
		UserID:      developer.UserID,
		CompanyName: developer.CompanyName,
		Website:     developer.Website,
		CreatedAt:   developer.CreatedAt.UTC(),
	}).Error
	if err != nil {
		r.logError("tracking_developer_create_failed", err)
	}
	return err
}

func (r Repository) APIKeysByDeveloper(ctx context.Context, developerID string) ([]entities.APIKey, error) {
	var rows []apiKeyModel
	err := r.DB.WithContext(ctx).
		Where("developer_id = ?", developerID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		r.logError("tracking_api_key_list_failed", err)
		return nil, err
	}

	keys := make([]entities.APIKey, 0, len(rows))
	for _, row := range rows {
		keys = append(keys, row.toEntity())
	}
	return keys, nil
}

func (r Repository) GetAPIKey(ctx context.Context, keyID string) (entities.APIKey, error) {
	var row apiKeyModel
	err := r.DB.WithContext(ctx).Where("id = ?", keyID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.APIKey{}, domainerrors.ErrAPIKeyNotFound
	}
	if err != nil {
		r.logError("tracking_api_key_get_failed", err)
		return entities.APIKey{}, err
	}
	return row.toEntity(), nil
}

func (r Repository) FindAPIKeyBySecret(ctx context.Context, secret string) (entities.APIKey, error) {
	var row apiKeyModel
	err := r.DB.WithContext(ctx).Where("key = ?", secret).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.APIKey{}, domainerrors.ErrAPIKeyNotFound
	}
	if err != nil {
		r.logError("tracking_api_key_find_failed", err)
		return entities.APIKey{}, err
	}
	return row.toEntity(), nil
}

func (r Repository) CreateAPIKey(ctx context.Context, key entities.APIKey) error {
	err := r.DB.WithContext(ctx).Create(&apiKeyModel{
		ID:          key.KeyID,
		DeveloperID: key.DeveloperID,
		Name:        key.Name,
		Key:         key.Secret,
		Active:      key.Active,
		CreatedAt:   key.CreatedAt.UTC(),
	}).Error
	if err != nil {
		r.logError("tracking_api_key_create_failed", err)
	}
	return err
}

func (r Repository) DeleteAPIKey(ctx context.Context, keyID string) error {
	result := r.DB.WithContext(ctx).Where("id = ?", keyID).Delete(&apiKeyModel{})
	if result.Error != nil {
		r.logError("tracking_api_key_delete_failed", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrAPIKeyNotFound
	}
	return nil
}

func (r Repository) CreateWebsite(ctx context.Context, website entities.Website) error {
	err := r.DB.WithContext(ctx).Create(&websiteModel{
		ID:        website.WebsiteID,
		APIKeyID:  website.APIKeyID,
		URL:       website.URL,
		Name:      website.Name,
		CreatedAt: website.CreatedAt.UTC(),
	}).Error
	if err != nil {
		r.logError("tracking_website_create_failed", err)
	}
	return err
}

func (r Repository) AppendSample(ctx context.Context, sample entities.TimeSample) error {
	err := r.DB.WithContext(ctx).Create(&timeSampleModel{
		ID:              sample.SampleID,
		UserID:          sample.UserID,
		WebsiteID:       sample.WebsiteID,
		DurationSeconds: sample.DurationSeconds,
		Path:            sample.Path,
		OccurredAt:      sample.OccurredAt.UTC(),
	}).Error
	if err != nil {
		r.logError("tracking_sample_append_failed", err)
	}
	return err
}

func (m apiKeyModel) toEntity() entities.APIKey {
	return entities.APIKey{
		KeyID:       m.ID,
		DeveloperID: m.DeveloperID,
		Name:        m.Name,
		Secret:      m.Key,
		Active:      m.Active,
		CreatedAt:   m.CreatedAt,
	}
}

func (r Repository) logError(event string, err error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Error("tracking repository operation failed",
		"event", event,
		"module", "engagement/tracking-service",
		"layer", "adapters/postgres",
		"error", err,
	)
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

// SecretGenerator mints the `jag_k1_` keys handed to integrators.
type SecretGenerator struct{}

func (SecretGenerator) NewKey() (string, error) {
	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return "jag_k1_" + hex.EncodeToString(raw), nil
}

var _ ports.Repository = Repository{}
var _ ports.Clock = SystemClock{}
var _ ports.IDGenerator = UUIDGenerator{}
var _ ports.KeyGenerator = SecretGenerator{}
