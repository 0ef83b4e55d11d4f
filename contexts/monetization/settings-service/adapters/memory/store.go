package memory

import (
	"context"
	"sync"
	"time"

	"timepay/contexts/monetization/settings-service/domain/entities"
	"timepay/contexts/monetization/settings-service/ports"
)

type Store struct {
	mu       sync.RWMutex
	settings entities.RevenueSettings
	has      bool
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Load(_ context.Context) (entities.RevenueSettings, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings, s.has, nil
}

func (s *Store) Save(_ context.Context, settings entities.RevenueSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	s.has = true
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

var _ ports.SettingsRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
