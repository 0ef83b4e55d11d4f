package memory

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sort"
	"strings"
	"sync"
	"time"

	"timepay/contexts/engagement/tracking-service/domain/entities"
	domainerrors "timepay/contexts/engagement/tracking-service/domain/errors"
	"timepay/contexts/engagement/tracking-service/ports"

	"github.com/google/uuid"
)

const keyPrefix = "jag_k1_"

type Store struct {
	mu sync.RWMutex

	developersByUser map[string]entities.Developer
	keys             map[string]entities.APIKey
	websites         map[string]entities.Website
	samples          []entities.TimeSample
}

func NewStore() *Store {
	return &Store{
		developersByUser: make(map[string]entities.Developer),
		keys:             make(map[string]entities.APIKey),
		websites:         make(map[string]entities.Website),
	}
}

func (s *Store) DeveloperByUser(_ context.Context, userID string) (entities.Developer, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	developer, ok := s.developersByUser[userID]
	return developer, ok, nil
}

func (s *Store) CreateDeveloper(_ context.Context, developer entities.Developer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.developersByUser[developer.UserID] = developer
	return nil
}

func (s *Store) APIKeysByDeveloper(_ context.Context, developerID string) ([]entities.APIKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]entities.APIKey, 0)
	for _, key := range s.keys {
		if key.DeveloperID == developerID {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].CreatedAt.Before(keys[j].CreatedAt)
	})
	return keys, nil
}

func (s *Store) GetAPIKey(_ context.Context, keyID string) (entities.APIKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key, ok := s.keys[strings.TrimSpace(keyID)]
	if !ok {
		return entities.APIKey{}, domainerrors.ErrAPIKeyNotFound
	}
	return key, nil
}

func (s *Store) FindAPIKeyBySecret(_ context.Context, secret string) (entities.APIKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, key := range s.keys {
		if key.Secret == secret {
			return key, nil
		}
	}
	return entities.APIKey{}, domainerrors.ErrAPIKeyNotFound
}

func (s *Store) CreateAPIKey(_ context.Context, key entities.APIKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[key.KeyID] = key
	return nil
}

func (s *Store) DeleteAPIKey(_ context.Context, keyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.keys[keyID]; !ok {
		return domainerrors.ErrAPIKeyNotFound
	}
	delete(s.keys, keyID)
	return nil
}

func (s *Store) CreateWebsite(_ context.Context, website entities.Website) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.websites[website.WebsiteID] = website
	return nil
}

func (s *Store) AppendSample(_ context.Context, sample entities.TimeSample) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples = append(s.samples, sample)
	return nil
}

// Read helpers used by tests.

func (s *Store) Websites() []entities.Website {
	s.mu.RLock()
	defer s.mu.RUnlock()

	websites := make([]entities.Website, 0, len(s.websites))
	for _, website := range s.websites {
		websites = append(websites, website)
	}
	sort.Slice(websites, func(i, j int) bool {
		return websites[i].WebsiteID < websites[j].WebsiteID
	})
	return websites
}

func (s *Store) Samples() []entities.TimeSample {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.TimeSample(nil), s.samples...)
}

// ports.Clock / ports.IDGenerator / ports.KeyGenerator

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) NewKey() (string, error) {
	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return keyPrefix + hex.EncodeToString(raw), nil
}

var _ ports.Repository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
var _ ports.KeyGenerator = (*Store)(nil)
