package application

import (
	"context"
	"strings"
	"testing"
	"time"

	"timepay/contexts/engagement/tracking-service/adapters/memory"
	"timepay/contexts/engagement/tracking-service/domain/errors"
)

func newTestService() (*memory.Store, Service) {
	store := memory.NewStore()
	return store, Service{Repo: store, Clock: store, IDGen: store, KeyGen: store}
}

func TestCreateAPIKeyProvisionsDeveloperAndWebsite(t *testing.T) {
	store, service := newTestService()

	key, err := service.CreateAPIKey(context.Background(), "user-1", "My Game", "example.com", "Acme")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if !strings.HasPrefix(key.Secret, "jag_k1_") {
		t.Fatalf("secret should carry the jag_k1_ prefix, got %q", key.Secret)
	}
	if len(key.Secret) != len("jag_k1_")+48 {
		t.Fatalf("secret should have 48 hex chars, got %d", len(key.Secret)-len("jag_k1_"))
	}
	if !key.Active {
		t.Fatalf("new keys start active")
	}

	developer, found, err := store.DeveloperByUser(context.Background(), "user-1")
	if err != nil || !found {
		t.Fatalf("developer not auto-provisioned: found=%v err=%v", found, err)
	}
	if developer.Website != "https://example.com" {
		t.Fatalf("developer website should normalize to https, got %q", developer.Website)
	}

	websites := store.Websites()
	if len(websites) != 1 {
		t.Fatalf("website count: got %d, want 1", len(websites))
	}
	if websites[0].URL != "https://example.com" || websites[0].APIKeyID != key.KeyID {
		t.Fatalf("website record unexpected: %+v", websites[0])
	}

	// A second key reuses the developer record.
	key2, err := service.CreateAPIKey(context.Background(), "user-1", "Other Game", "", "")
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if key2.DeveloperID != key.DeveloperID {
		t.Fatalf("second key should belong to the same developer")
	}
	if key2.Secret == key.Secret {
		t.Fatalf("secrets must be unique")
	}
	if len(store.Websites()) != 1 {
		t.Fatalf("blank website URL must not register a website")
	}
}

func TestCreateAPIKeyRejectsBlankName(t *testing.T) {
	_, service := newTestService()

	if _, err := service.CreateAPIKey(context.Background(), "user-1", "   ", "", ""); err != errors.ErrInvalidKeyName {
		t.Fatalf("expected ErrInvalidKeyName, got %v", err)
	}
}

func TestListAPIKeysEmptyForFreshUser(t *testing.T) {
	_, service := newTestService()

	keys, err := service.ListAPIKeys(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(keys) != 0 {
		t.Fatalf("fresh user should get an empty list, got %d keys", len(keys))
	}
}

func TestDeleteAPIKeyOwnershipChecked(t *testing.T) {
	_, service := newTestService()

	mine, err := service.CreateAPIKey(context.Background(), "user-1", "Mine", "", "")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	theirs, err := service.CreateAPIKey(context.Background(), "user-2", "Theirs", "", "")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := service.DeleteAPIKey(context.Background(), "user-1", theirs.KeyID); err != errors.ErrAPIKeyNotFound {
		t.Fatalf("foreign key delete: expected ErrAPIKeyNotFound, got %v", err)
	}
	if err := service.DeleteAPIKey(context.Background(), "user-1", mine.KeyID); err != nil {
		t.Fatalf("own key delete failed: %v", err)
	}

	keys, err := service.ListAPIKeys(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(keys) != 0 {
		t.Fatalf("deleted key still listed")
	}

	if err := service.DeleteAPIKey(context.Background(), "ghost", mine.KeyID); err != errors.ErrDeveloperNotFound {
		t.Fatalf("unknown user delete: expected ErrDeveloperNotFound, got %v", err)
	}
}

func TestRecordSample(t *testing.T) {
	store, service := newTestService()

	key, err := service.CreateAPIKey(context.Background(), "user-1", "My Game", "example.com", "")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	websiteID := store.Websites()[0].WebsiteID
	occurredAt := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)

	sample, err := service.RecordSample(context.Background(), key.Secret, websiteID, 300, "/play", "viewer-1", occurredAt)
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if sample.DurationSeconds != 300 || !sample.OccurredAt.Equal(occurredAt) {
		t.Fatalf("sample unexpected: %+v", sample)
	}
	if len(store.Samples()) != 1 {
		t.Fatalf("sample not persisted")
	}

	if _, err := service.RecordSample(context.Background(), "jag_k1_bogus", websiteID, 300, "", "viewer-1", occurredAt); err != errors.ErrAPIKeyNotFound {
		t.Fatalf("unknown key: expected ErrAPIKeyNotFound, got %v", err)
	}
	if _, err := service.RecordSample(context.Background(), key.Secret, websiteID, -1, "", "viewer-1", occurredAt); err != errors.ErrInvalidSample {
		t.Fatalf("negative duration: expected ErrInvalidSample, got %v", err)
	}
	if _, err := service.RecordSample(context.Background(), key.Secret, "", 300, "", "viewer-1", occurredAt); err != errors.ErrInvalidSample {
		t.Fatalf("blank website: expected ErrInvalidSample, got %v", err)
	}
}
