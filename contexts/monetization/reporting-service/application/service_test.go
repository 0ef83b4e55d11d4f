package application

import (
	"context"
	"fmt"
	"testing"
	"time"

	"timepay/contexts/monetization/reporting-service/adapters/memory"
	"timepay/contexts/monetization/reporting-service/domain/entities"
	"timepay/contexts/monetization/reporting-service/domain/errors"
)

func newSeededService() (*memory.Store, Service) {
	store := memory.NewStore()
	store.SeedDeveloper("user-1", "dev-1")
	return store, Service{Developers: store, Earnings: store, Runs: store}
}

func TestGetEarningsHistoryNewestFirstAndLimited(t *testing.T) {
	store, service := newSeededService()
	for i := 1; i <= 15; i++ {
		store.AddMonthlyEarning("dev-1", entities.MonthlyEarning{
			Month:       fmt.Sprintf("2024-%02d", (i-1)%12+1),
			AmountCents: int64(i * 100),
		})
	}

	earnings, err := service.GetEarningsHistory(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(earnings) != 12 {
		t.Fatalf("history length: got %d, want 12", len(earnings))
	}
	for i := 1; i < len(earnings); i++ {
		if earnings[i-1].Month < earnings[i].Month {
			t.Fatalf("history not newest first at %d: %s before %s", i, earnings[i-1].Month, earnings[i].Month)
		}
	}
}

func TestGetEarningsHistoryUnknownDeveloper(t *testing.T) {
	_, service := newSeededService()

	if _, err := service.GetEarningsHistory(context.Background(), "stranger"); err != errors.ErrDeveloperNotFound {
		t.Fatalf("expected ErrDeveloperNotFound, got %v", err)
	}
	if _, err := service.GetEarningsHistory(context.Background(), ""); err != errors.ErrDeveloperNotFound {
		t.Fatalf("blank user: expected ErrDeveloperNotFound, got %v", err)
	}
}

func TestGetEarningsBreakdownSortsByAmount(t *testing.T) {
	store, service := newSeededService()
	store.AddWebsiteEarning("dev-1", "2025-02", entities.WebsiteEarning{WebsiteID: "site-a", AmountCents: 100})
	store.AddWebsiteEarning("dev-1", "2025-02", entities.WebsiteEarning{WebsiteID: "site-b", AmountCents: 900})
	store.AddWebsiteEarning("dev-1", "2025-03", entities.WebsiteEarning{WebsiteID: "site-c", AmountCents: 500})

	breakdown, err := service.GetEarningsBreakdown(context.Background(), "user-1", "2025-02")
	if err != nil {
		t.Fatalf("breakdown failed: %v", err)
	}
	if len(breakdown) != 2 {
		t.Fatalf("breakdown length: got %d, want 2", len(breakdown))
	}
	if breakdown[0].WebsiteID != "site-b" || breakdown[1].WebsiteID != "site-a" {
		t.Fatalf("breakdown not sorted by amount desc: %+v", breakdown)
	}

	if _, err := service.GetEarningsBreakdown(context.Background(), "user-1", "February"); err != errors.ErrInvalidMonth {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
}

func TestGetPayoutHistoryLimited(t *testing.T) {
	store, service := newSeededService()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 14; i++ {
		store.AddPayout(entities.PayoutRecord{
			PayoutID:    fmt.Sprintf("p-%02d", i),
			DeveloperID: "dev-1",
			CreatedAt:   base.AddDate(0, 0, i),
		})
	}

	payouts, err := service.GetPayoutHistory(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("payout history failed: %v", err)
	}
	if len(payouts) != 10 {
		t.Fatalf("payout history length: got %d, want 10", len(payouts))
	}
	if payouts[0].PayoutID != "p-13" {
		t.Fatalf("payout history should start with the newest, got %s", payouts[0].PayoutID)
	}
}

func TestGetPlatformStatsAggregatesRuns(t *testing.T) {
	store, service := newSeededService()
	store.AddRun(entities.RunEntry{
		Month:                 "2025-01",
		TotalRevenueCents:     9990,
		TotalDistributedCents: 6993,
		PlatformFeeCents:      2997,
		RunAt:                 time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	store.AddRun(entities.RunEntry{
		Month:                 "2025-02",
		TotalRevenueCents:     19980,
		TotalDistributedCents: 13986,
		PlatformFeeCents:      5994,
		RunAt:                 time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	})

	stats, err := service.GetPlatformStats(context.Background())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalRuns != 2 {
		t.Fatalf("total runs: got %d, want 2", stats.TotalRuns)
	}
	if stats.TotalRevenueCents != 29970 || stats.TotalDistributedCents != 20979 || stats.PlatformFeeCents != 8991 {
		t.Fatalf("aggregates unexpected: %+v", stats)
	}
	if stats.LastRunAt == nil || stats.Runs[0].Month != "2025-02" {
		t.Fatalf("stats should lead with the newest run: %+v", stats)
	}
}

func TestGetPlatformStatsEmptyHistory(t *testing.T) {
	_, service := newSeededService()

	stats, err := service.GetPlatformStats(context.Background())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalRuns != 0 || stats.LastRunAt != nil {
		t.Fatalf("empty history should produce zero stats: %+v", stats)
	}
}

func TestGetTopDevelopers(t *testing.T) {
	store, service := newSeededService()
	store.SeedLeaderboard("2025-02", []entities.TopDeveloper{
		{Rank: 1, DeveloperID: "dev-1", AmountCents: 4662},
		{Rank: 2, DeveloperID: "dev-2", AmountCents: 2331},
	})

	top, err := service.GetTopDevelopers(context.Background(), "2025-02")
	if err != nil {
		t.Fatalf("top developers failed: %v", err)
	}
	if len(top) != 2 || top[0].DeveloperID != "dev-1" {
		t.Fatalf("leaderboard unexpected: %+v", top)
	}

	if _, err := service.GetTopDevelopers(context.Background(), "02-2025"); err != errors.ErrInvalidMonth {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
}
