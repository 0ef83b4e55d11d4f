package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"timepay/contexts/engagement/tracking-service/domain/entities"
	domainerrors "timepay/contexts/engagement/tracking-service/domain/errors"
	"timepay/contexts/engagement/tracking-service/ports"
)

type Service struct {
	Repo   ports.Repository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	KeyGen ports.KeyGenerator
	Logger *slog.Logger
}

// CreateAPIKey provisions the developer record on first use, mints a key and
// optionally registers the website the key will report for. A failed website
// registration does not fail the key: the key already exists and is usable.
func (s Service) CreateAPIKey(
	ctx context.Context,
	userID string,
	name string,
	websiteURL string,
	companyName string,
) (entities.APIKey, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return entities.APIKey{}, domainerrors.ErrInvalidKeyName
	}
	now := s.now()

	developer, err := s.ensureDeveloper(ctx, userID, companyName, websiteURL, now)
	if err != nil {
		return entities.APIKey{}, err
	}

	keyID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.APIKey{}, err
	}
	secret, err := s.KeyGen.NewKey()
	if err != nil {
		return entities.APIKey{}, err
	}
	key := entities.APIKey{
		KeyID:       keyID,
		DeveloperID: developer.DeveloperID,
		Name:        name,
		Secret:      secret,
		Active:      true,
		CreatedAt:   now,
	}
	if err := s.Repo.CreateAPIKey(ctx, key); err != nil {
		return entities.APIKey{}, err
	}

	if url := normalizeURL(websiteURL); url != "" {
		websiteID, err := s.IDGen.NewID(ctx)
		if err == nil {
			err = s.Repo.CreateWebsite(ctx, entities.Website{
				WebsiteID: websiteID,
				APIKeyID:  key.KeyID,
				URL:       url,
				Name:      name,
				CreatedAt: now,
			})
		}
		if err != nil {
			s.logger().Warn("website registration failed, key kept",
				"event", "tracking_website_registration_failed",
				"module", "engagement/tracking-service",
				"layer", "application",
				"key_id", key.KeyID,
				"error", err,
			)
		}
	}

	s.logger().Info("api key created",
		"event", "tracking_api_key_created",
		"module", "engagement/tracking-service",
		"layer", "application",
		"developer_id", developer.DeveloperID,
		"key_id", key.KeyID,
	)
	return key, nil
}

// ListAPIKeys returns an empty list for users without a developer record;
// a fresh account is not an error.
func (s Service) ListAPIKeys(ctx context.Context, userID string) ([]entities.APIKey, error) {
	developer, found, err := s.Repo.DeveloperByUser(ctx, strings.TrimSpace(userID))
	if err != nil {
		return nil, err
	}
	if !found {
		return []entities.APIKey{}, nil
	}
	return s.Repo.APIKeysByDeveloper(ctx, developer.DeveloperID)
}

// DeleteAPIKey is ownership-checked: a key belonging to another developer is
// indistinguishable from a missing one.
func (s Service) DeleteAPIKey(ctx context.Context, userID string, keyID string) error {
	developer, found, err := s.Repo.DeveloperByUser(ctx, strings.TrimSpace(userID))
	if err != nil {
		return err
	}
	if !found {
		return domainerrors.ErrDeveloperNotFound
	}

	key, err := s.Repo.GetAPIKey(ctx, strings.TrimSpace(keyID))
	if err != nil {
		return err
	}
	if key.DeveloperID != developer.DeveloperID {
		return domainerrors.ErrAPIKeyNotFound
	}
	if err := s.Repo.DeleteAPIKey(ctx, key.KeyID); err != nil {
		return err
	}

	s.logger().Info("api key deleted",
		"event", "tracking_api_key_deleted",
		"module", "engagement/tracking-service",
		"layer", "application",
		"developer_id", developer.DeveloperID,
		"key_id", key.KeyID,
	)
	return nil
}

// RecordSample appends an immutable usage fact. The key must exist and be
// active; the duration must not be negative.
func (s Service) RecordSample(
	ctx context.Context,
	apiKeySecret string,
	websiteID string,
	durationSeconds int64,
	path string,
	userID string,
	occurredAt time.Time,
) (entities.TimeSample, error) {
	key, err := s.Repo.FindAPIKeyBySecret(ctx, strings.TrimSpace(apiKeySecret))
	if err != nil {
		return entities.TimeSample{}, err
	}
	if !key.Active {
		return entities.TimeSample{}, domainerrors.ErrAPIKeyNotFound
	}

	websiteID = strings.TrimSpace(websiteID)
	userID = strings.TrimSpace(userID)
	if websiteID == "" || userID == "" || durationSeconds < 0 {
		return entities.TimeSample{}, domainerrors.ErrInvalidSample
	}
	if occurredAt.IsZero() {
		occurredAt = s.now()
	}

	sampleID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.TimeSample{}, err
	}
	sample := entities.TimeSample{
		SampleID:        sampleID,
		UserID:          userID,
		WebsiteID:       websiteID,
		DurationSeconds: durationSeconds,
		Path:            strings.TrimSpace(path),
		OccurredAt:      occurredAt.UTC(),
	}
	if err := s.Repo.AppendSample(ctx, sample); err != nil {
		return entities.TimeSample{}, err
	}
	return sample, nil
}

func (s Service) ensureDeveloper(
	ctx context.Context,
	userID string,
	companyName string,
	websiteURL string,
	now time.Time,
) (entities.Developer, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return entities.Developer{}, domainerrors.ErrDeveloperNotFound
	}

	developer, found, err := s.Repo.DeveloperByUser(ctx, userID)
	if err != nil {
		return entities.Developer{}, err
	}
	if found {
		return developer, nil
	}

	developerID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Developer{}, err
	}
	developer = entities.Developer{
		DeveloperID: developerID,
		UserID:      userID,
		CompanyName: strings.TrimSpace(companyName),
		Website:     normalizeURL(websiteURL),
		CreatedAt:   now,
	}
	if err := s.Repo.CreateDeveloper(ctx, developer); err != nil {
		return entities.Developer{}, err
	}
	return developer, nil
}

// normalizeURL defaults bare hosts to https.
func normalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func (s Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
