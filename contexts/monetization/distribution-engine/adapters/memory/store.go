package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"timepay/contexts/monetization/distribution-engine/domain/entities"
	domainerrors "timepay/contexts/monetization/distribution-engine/domain/errors"
	"timepay/contexts/monetization/distribution-engine/ports"

	"github.com/google/uuid"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

// Store backs the whole engine in memory: the time-tracking read side, the
// settings snapshot, and the run recorder. Tests and the in-memory module
// wiring use it in place of postgres.
type Store struct {
	mu sync.RWMutex

	settings    ports.SettingsSnapshot
	hasSettings bool

	subscribed      map[string]bool
	websites        map[string]websiteRecord
	paymentDetails  map[string]string
	samples         []sampleRecord
	runLogs         map[string]entities.RunLog
	earningsByMonth map[string][]entities.DeveloperEarning
	revenuesByMonth map[string][]entities.Revenue
	payouts         map[string]entities.Payout
	outbox          map[string]outboxRecord
}

type websiteRecord struct {
	DeveloperID string
	Name        string
}

type sampleRecord struct {
	UserID     string
	WebsiteID  string
	Seconds    int64
	OccurredAt time.Time
}

type outboxRecord struct {
	Message     ports.OutboxMessage
	Status      string
	PublishedAt *time.Time
}

func NewStore() *Store {
	return &Store{
		subscribed:      make(map[string]bool),
		websites:        make(map[string]websiteRecord),
		paymentDetails:  make(map[string]string),
		runLogs:         make(map[string]entities.RunLog),
		earningsByMonth: make(map[string][]entities.DeveloperEarning),
		revenuesByMonth: make(map[string][]entities.Revenue),
		payouts:         make(map[string]entities.Payout),
		outbox:          make(map[string]outboxRecord),
	}
}

// Seed helpers

func (s *Store) SeedSettings(settings ports.SettingsSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	s.hasSettings = true
}

func (s *Store) SeedUser(userID string, subscribed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribed[userID] = subscribed
}

func (s *Store) SeedWebsite(developerID string, websiteID string, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.websites[websiteID] = websiteRecord{DeveloperID: developerID, Name: name}
}

func (s *Store) SeedPaymentDetails(developerID string, detailsJSON string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paymentDetails[developerID] = detailsJSON
}

func (s *Store) AddSample(userID string, websiteID string, seconds int64, occurredAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples = append(s.samples, sampleRecord{
		UserID:     userID,
		WebsiteID:  websiteID,
		Seconds:    seconds,
		OccurredAt: occurredAt.UTC(),
	})
}

// ports.SettingsSource

func (s *Store) SettingsSnapshot(_ context.Context) (ports.SettingsSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasSettings {
		return ports.SettingsSnapshot{
			PlatformFeePercentage:    30,
			DeveloperSharePercentage: 70,
			MinimumPayoutCents:       1000,
			PayoutSchedule:           "monthly",
			PremiumPriceCents:        999,
			BonusThresholdMinutes:    120,
			BonusMultiplier:          1.5,
		}, nil
	}
	return s.settings, nil
}

// ports.UsageSource

func (s *Store) AggregatePremiumUsage(
	_ context.Context,
	from time.Time,
	to time.Time,
) (ports.UsageTotals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type key struct {
		DeveloperID string
		WebsiteID   string
	}
	grouped := make(map[key]*ports.WebsiteUsage)
	totals := ports.UsageTotals{}

	for _, sample := range s.samples {
		if sample.OccurredAt.Before(from) || !sample.OccurredAt.Before(to) {
			continue
		}
		if !s.subscribed[sample.UserID] {
			continue
		}
		site, ok := s.websites[sample.WebsiteID]
		if !ok {
			continue
		}

		totals.TotalPremiumSeconds += sample.Seconds
		k := key{DeveloperID: site.DeveloperID, WebsiteID: sample.WebsiteID}
		usage, ok := grouped[k]
		if !ok {
			usage = &ports.WebsiteUsage{
				DeveloperID: site.DeveloperID,
				WebsiteID:   sample.WebsiteID,
				WebsiteName: site.Name,
			}
			grouped[k] = usage
		}
		usage.PremiumSeconds += sample.Seconds
	}

	for _, usage := range grouped {
		totals.PerWebsite = append(totals.PerWebsite, *usage)
	}
	sort.Slice(totals.PerWebsite, func(i, j int) bool {
		if totals.PerWebsite[i].DeveloperID == totals.PerWebsite[j].DeveloperID {
			return totals.PerWebsite[i].WebsiteID < totals.PerWebsite[j].WebsiteID
		}
		return totals.PerWebsite[i].DeveloperID < totals.PerWebsite[j].DeveloperID
	})
	return totals, nil
}

func (s *Store) CountPremiumUsers(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, subscribed := range s.subscribed {
		if subscribed {
			count++
		}
	}
	return count, nil
}

// ports.DeveloperDirectory

func (s *Store) PaymentMethods(_ context.Context, developerIDs []string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	methods := make(map[string]string, len(developerIDs))
	for _, developerID := range developerIDs {
		methods[developerID] = resolvePaymentMethod(s.paymentDetails[developerID])
	}
	return methods, nil
}

func resolvePaymentMethod(detailsJSON string) string {
	if strings.TrimSpace(detailsJSON) == "" {
		return entities.PaymentMethodBankTransfer
	}
	var details map[string]any
	if err := json.Unmarshal([]byte(detailsJSON), &details); err != nil {
		return entities.PaymentMethodBankTransfer
	}
	if paypal, ok := details["paypal"]; ok && paypal != nil && paypal != "" {
		return entities.PaymentMethodPaypal
	}
	return entities.PaymentMethodBankTransfer
}

// ports.Repository

func (s *Store) RecordRun(_ context.Context, record ports.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	month := strings.TrimSpace(record.Month)
	if month == "" {
		return domainerrors.ErrInvalidMonth
	}
	if _, exists := s.runLogs[month]; exists {
		if !record.Supersede {
			return domainerrors.ErrDuplicateRun
		}
		delete(s.runLogs, month)
		delete(s.earningsByMonth, month)
		delete(s.revenuesByMonth, month)
		for payoutID, payout := range s.payouts {
			if payout.Month == month {
				delete(s.payouts, payoutID)
			}
		}
	}

	s.runLogs[month] = record.Log
	s.earningsByMonth[month] = append([]entities.DeveloperEarning(nil), record.Earnings...)
	s.revenuesByMonth[month] = append([]entities.Revenue(nil), record.Revenues...)
	for _, payout := range record.Payouts {
		s.payouts[payout.PayoutID] = payout
	}
	return nil
}

func (s *Store) GetRunLog(_ context.Context, month string) (entities.RunLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log, ok := s.runLogs[strings.TrimSpace(month)]
	if !ok {
		return entities.RunLog{}, domainerrors.ErrRunNotFound
	}
	return log, nil
}

func (s *Store) GetPayout(_ context.Context, payoutID string) (entities.Payout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payout, ok := s.payouts[strings.TrimSpace(payoutID)]
	if !ok {
		return entities.Payout{}, domainerrors.ErrPayoutNotFound
	}
	return payout, nil
}

func (s *Store) UpdatePayout(_ context.Context, payout entities.Payout) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.payouts[payout.PayoutID]; !ok {
		return domainerrors.ErrPayoutNotFound
	}
	s.payouts[payout.PayoutID] = payout
	return nil
}

// Read-side helpers used by tests and the in-memory module.

func (s *Store) EarningsForMonth(month string) []entities.DeveloperEarning {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.DeveloperEarning(nil), s.earningsByMonth[month]...)
}

func (s *Store) RevenuesForMonth(month string) []entities.Revenue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Revenue(nil), s.revenuesByMonth[month]...)
}

func (s *Store) PayoutsForMonth(month string) []entities.Payout {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payouts := make([]entities.Payout, 0)
	for _, payout := range s.payouts {
		if payout.Month == month {
			payouts = append(payouts, payout)
		}
	}
	sort.Slice(payouts, func(i, j int) bool {
		return payouts[i].DeveloperID < payouts[j].DeveloperID
	})
	return payouts
}

// ports.OutboxWriter / ports.OutboxRepository

func (s *Store) AppendOutbox(_ context.Context, envelope ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	outboxID := strings.TrimSpace(envelope.EventID)
	if outboxID == "" {
		return domainerrors.ErrInvalidUsage
	}

	if _, ok := s.outbox[outboxID]; ok {
		return nil
	}
	s.outbox[outboxID] = outboxRecord{
		Message: ports.OutboxMessage{
			OutboxID:     outboxID,
			EventType:    envelope.EventType,
			PartitionKey: envelope.PartitionKey,
			Payload:      payload,
			CreatedAt:    envelope.OccurredAt.UTC(),
		},
		Status: outboxStatusPending,
	}
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	items := make([]ports.OutboxMessage, 0)
	for _, row := range s.outbox {
		if row.Status == outboxStatusPending {
			items = append(items, row.Message)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.outbox[strings.TrimSpace(outboxID)]
	if !ok {
		return domainerrors.ErrRunNotFound
	}
	ts := publishedAt.UTC()
	row.Status = outboxStatusPublished
	row.PublishedAt = &ts
	s.outbox[strings.TrimSpace(outboxID)] = row
	return nil
}

// ports.Clock / ports.IDGenerator

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.Repository = (*Store)(nil)
var _ ports.UsageSource = (*Store)(nil)
var _ ports.SettingsSource = (*Store)(nil)
var _ ports.DeveloperDirectory = (*Store)(nil)
var _ ports.OutboxWriter = (*Store)(nil)
var _ ports.OutboxRepository = (*Store)(nil)
