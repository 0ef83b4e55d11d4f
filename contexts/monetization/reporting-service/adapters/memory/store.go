package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"timepay/contexts/monetization/reporting-service/domain/entities"
	domainerrors "timepay/contexts/monetization/reporting-service/domain/errors"
	"timepay/contexts/monetization/reporting-service/ports"
)

type Store struct {
	mu sync.RWMutex

	developersByUser map[string]string
	earnings         map[string][]entities.MonthlyEarning
	breakdowns       map[string]map[string][]entities.WebsiteEarning
	payouts          map[string][]entities.PayoutRecord
	runs             []entities.RunEntry
	leaderboards     map[string][]entities.TopDeveloper
}

func NewStore() *Store {
	return &Store{
		developersByUser: make(map[string]string),
		earnings:         make(map[string][]entities.MonthlyEarning),
		breakdowns:       make(map[string]map[string][]entities.WebsiteEarning),
		payouts:          make(map[string][]entities.PayoutRecord),
		leaderboards:     make(map[string][]entities.TopDeveloper),
	}
}

// Seed helpers

func (s *Store) SeedDeveloper(userID string, developerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.developersByUser[userID] = developerID
}

func (s *Store) AddMonthlyEarning(developerID string, earning entities.MonthlyEarning) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.earnings[developerID] = append(s.earnings[developerID], earning)
}

func (s *Store) AddWebsiteEarning(developerID string, month string, earning entities.WebsiteEarning) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byMonth, ok := s.breakdowns[developerID]
	if !ok {
		byMonth = make(map[string][]entities.WebsiteEarning)
		s.breakdowns[developerID] = byMonth
	}
	byMonth[month] = append(byMonth[month], earning)
}

func (s *Store) AddPayout(payout entities.PayoutRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payouts[payout.DeveloperID] = append(s.payouts[payout.DeveloperID], payout)
}

func (s *Store) AddRun(run entities.RunEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, run)
}

func (s *Store) SeedLeaderboard(month string, entries []entities.TopDeveloper) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leaderboards[month] = append([]entities.TopDeveloper(nil), entries...)
}

// ports.DeveloperDirectory

func (s *Store) ResolveDeveloperByUser(_ context.Context, userID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	developerID, ok := s.developersByUser[strings.TrimSpace(userID)]
	if !ok {
		return "", domainerrors.ErrDeveloperNotFound
	}
	return developerID, nil
}

// ports.EarningsReader

func (s *Store) MonthlyEarnings(
	_ context.Context,
	developerID string,
	limit int,
) ([]entities.MonthlyEarning, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	earnings := append([]entities.MonthlyEarning(nil), s.earnings[developerID]...)
	sort.Slice(earnings, func(i, j int) bool {
		return earnings[i].Month > earnings[j].Month
	})
	return clamp(earnings, limit), nil
}

func (s *Store) WebsiteBreakdown(
	_ context.Context,
	developerID string,
	month string,
) ([]entities.WebsiteEarning, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	breakdown := append([]entities.WebsiteEarning(nil), s.breakdowns[developerID][month]...)
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].AmountCents == breakdown[j].AmountCents {
			return breakdown[i].WebsiteID < breakdown[j].WebsiteID
		}
		return breakdown[i].AmountCents > breakdown[j].AmountCents
	})
	return breakdown, nil
}

func (s *Store) PayoutHistory(
	_ context.Context,
	developerID string,
	limit int,
) ([]entities.PayoutRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payouts := append([]entities.PayoutRecord(nil), s.payouts[developerID]...)
	sort.Slice(payouts, func(i, j int) bool {
		return payouts[i].CreatedAt.After(payouts[j].CreatedAt)
	})
	return clamp(payouts, limit), nil
}

// ports.RunReader

func (s *Store) RecentRuns(_ context.Context, limit int) ([]entities.RunEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := append([]entities.RunEntry(nil), s.runs...)
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].RunAt.After(runs[j].RunAt)
	})
	return clamp(runs, limit), nil
}

func (s *Store) TopDevelopers(
	_ context.Context,
	month string,
	limit int,
) ([]entities.TopDeveloper, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return clamp(append([]entities.TopDeveloper(nil), s.leaderboards[month]...), limit), nil
}

func clamp[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

var _ ports.DeveloperDirectory = (*Store)(nil)
var _ ports.EarningsReader = (*Store)(nil)
var _ ports.RunReader = (*Store)(nil)
