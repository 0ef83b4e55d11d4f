package application

import (
	"context"
	"testing"
	"time"

	"timepay/contexts/monetization/distribution-engine/adapters/memory"
	"timepay/contexts/monetization/distribution-engine/domain/entities"
	"timepay/contexts/monetization/distribution-engine/domain/errors"
	"timepay/contexts/monetization/distribution-engine/ports"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func newTestService(store *memory.Store, now time.Time) Service {
	return Service{
		Repo:       store,
		Usage:      store,
		Settings:   store,
		Developers: store,
		Outbox:     store,
		Clock:      fixedClock{now: now},
		IDGen:      store,
	}
}

// seedTwoDeveloperMonth builds the canonical scenario: ten premium users,
// dev-1 with two websites and dev-2 with one, each website watched for
// 3600 premium seconds during February 2025.
func seedTwoDeveloperMonth(store *memory.Store) {
	for _, userID := range []string{"u-1", "u-2", "u-3", "u-4", "u-5", "u-6", "u-7", "u-8", "u-9", "u-10"} {
		store.SeedUser(userID, true)
	}
	store.SeedUser("u-free", false)

	store.SeedWebsite("dev-1", "site-a", "Site A")
	store.SeedWebsite("dev-1", "site-b", "Site B")
	store.SeedWebsite("dev-2", "site-c", "Site C")
	store.SeedPaymentDetails("dev-1", `{"paypal":"dev1@example.com"}`)
	store.SeedPaymentDetails("dev-2", `{"iban":"DE00"}`)

	feb := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)
	store.AddSample("u-1", "site-a", 3600, feb)
	store.AddSample("u-2", "site-b", 3600, feb)
	store.AddSample("u-3", "site-c", 3600, feb)

	// Outside the window and from a free user: both must be ignored.
	store.AddSample("u-1", "site-a", 9999, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	store.AddSample("u-free", "site-c", 9999, feb)
}

func TestCalculateMonthlyRevenueEndToEnd(t *testing.T) {
	store := memory.NewStore()
	seedTwoDeveloperMonth(store)
	service := newTestService(store, time.Date(2025, 3, 31, 10, 0, 0, 0, time.UTC))

	// Empty month resolves to the previous calendar month, even on the 31st.
	summary, err := service.CalculateMonthlyRevenue(context.Background(), "", false)
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}

	if summary.Month != "2025-02" {
		t.Fatalf("month: got %q, want 2025-02", summary.Month)
	}
	if summary.TotalRevenueCents != 9990 {
		t.Fatalf("total revenue: got %d, want 9990", summary.TotalRevenueCents)
	}
	if summary.PlatformFeeCents != 2997 {
		t.Fatalf("platform fee: got %d, want 2997", summary.PlatformFeeCents)
	}
	// floor(6993/3) per website, no bonus at 60 minutes each.
	if summary.TotalDistributedCents != 6993 {
		t.Fatalf("distributed: got %d, want 6993", summary.TotalDistributedCents)
	}
	if summary.DeveloperCount != 2 {
		t.Fatalf("developer count: got %d, want 2", summary.DeveloperCount)
	}
	if summary.Status != entities.RunStatusCompleted {
		t.Fatalf("status: got %q, want %q", summary.Status, entities.RunStatusCompleted)
	}

	earnings := store.EarningsForMonth("2025-02")
	if len(earnings) != 3 {
		t.Fatalf("earnings rows: got %d, want 3", len(earnings))
	}
	for _, earning := range earnings {
		if earning.AmountCents != 2331 {
			t.Fatalf("earning for %s: got %d cents, want 2331", earning.WebsiteID, earning.AmountCents)
		}
		if earning.PremiumMinutes != 60 {
			t.Fatalf("earning minutes for %s: got %d, want 60", earning.WebsiteID, earning.PremiumMinutes)
		}
	}

	revenues := store.RevenuesForMonth("2025-02")
	if len(revenues) != 2 {
		t.Fatalf("revenue rows: got %d, want 2", len(revenues))
	}
	if revenues[0].DeveloperID != "dev-1" || revenues[0].AmountCents != 4662 || revenues[0].WebsitesCount != 2 {
		t.Fatalf("dev-1 revenue unexpected: %+v", revenues[0])
	}
	if revenues[1].DeveloperID != "dev-2" || revenues[1].AmountCents != 2331 {
		t.Fatalf("dev-2 revenue unexpected: %+v", revenues[1])
	}

	payouts := store.PayoutsForMonth("2025-02")
	if len(payouts) != 2 {
		t.Fatalf("payout rows: got %d, want 2", len(payouts))
	}
	if payouts[0].Status != entities.PayoutStatusPending {
		t.Fatalf("payout status: got %q, want pending", payouts[0].Status)
	}
	if payouts[0].PaymentMethod != entities.PaymentMethodPaypal {
		t.Fatalf("dev-1 payment method: got %q, want paypal", payouts[0].PaymentMethod)
	}
	if payouts[1].PaymentMethod != entities.PaymentMethodBankTransfer {
		t.Fatalf("dev-2 payment method: got %q, want bank_transfer", payouts[1].PaymentMethod)
	}
	if payouts[0].Notes != "Automatic payout for 2025-02" {
		t.Fatalf("payout notes unexpected: %q", payouts[0].Notes)
	}

	log, err := store.GetRunLog(context.Background(), "2025-02")
	if err != nil {
		t.Fatalf("run log missing: %v", err)
	}
	if log.TotalDistributedCents != 6993 || log.DeveloperCount != 2 {
		t.Fatalf("run log unexpected: %+v", log)
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list outbox failed: %v", err)
	}
	if len(pending) != 3 {
		t.Fatalf("outbox messages: got %d, want 1 run + 2 payout events", len(pending))
	}
}

func TestCalculateMonthlyRevenuePayoutAtExactMinimum(t *testing.T) {
	store := memory.NewStore()
	seedTwoDeveloperMonth(store)
	service := newTestService(store, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC))

	// dev-1 earns exactly the minimum, dev-2 stays below it.
	settings := ports.SettingsSnapshot{
		PlatformFeePercentage:    30,
		DeveloperSharePercentage: 70,
		MinimumPayoutCents:       4662,
		PayoutSchedule:           "monthly",
		PremiumPriceCents:        999,
		BonusThresholdMinutes:    120,
		BonusMultiplier:          1.5,
	}
	store.SeedSettings(settings)

	if _, err := service.CalculateMonthlyRevenue(context.Background(), "2025-02", false); err != nil {
		t.Fatalf("calculate failed: %v", err)
	}

	revenues := store.RevenuesForMonth("2025-02")
	if len(revenues) != 2 {
		t.Fatalf("revenue rows: got %d, want 2", len(revenues))
	}

	payouts := store.PayoutsForMonth("2025-02")
	if len(payouts) != 1 {
		t.Fatalf("payout rows: got %d, want only dev-1 at the exact minimum", len(payouts))
	}
	if payouts[0].DeveloperID != "dev-1" || payouts[0].AmountCents != 4662 {
		t.Fatalf("payout unexpected: %+v", payouts[0])
	}
	if payouts[0].Status != entities.PayoutStatusPending {
		t.Fatalf("payout status: got %q, want pending", payouts[0].Status)
	}
}

func TestCalculateMonthlyRevenueZeroActivity(t *testing.T) {
	store := memory.NewStore()
	store.SeedUser("u-1", true)
	service := newTestService(store, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC))

	summary, err := service.CalculateMonthlyRevenue(context.Background(), "2025-02", false)
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}

	if summary.Status != entities.RunStatusCompleted {
		t.Fatalf("status: got %q, want completed", summary.Status)
	}
	if summary.TotalRevenueCents != 0 || summary.TotalDistributedCents != 0 {
		t.Fatalf("zero-activity run should distribute nothing: %+v", summary)
	}
	if summary.Notes == "" {
		t.Fatalf("zero-activity run should carry explanatory notes")
	}

	if len(store.EarningsForMonth("2025-02")) != 0 {
		t.Fatalf("zero-activity run must not write earnings")
	}
	if len(store.PayoutsForMonth("2025-02")) != 0 {
		t.Fatalf("zero-activity run must not write payouts")
	}
	if _, err := store.GetRunLog(context.Background(), "2025-02"); err != nil {
		t.Fatalf("zero-activity run must still write the log: %v", err)
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list outbox failed: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("zero-activity run must not emit events, got %d", len(pending))
	}
}

func TestCalculateMonthlyRevenueDuplicateAndForce(t *testing.T) {
	store := memory.NewStore()
	seedTwoDeveloperMonth(store)
	service := newTestService(store, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC))

	if _, err := service.CalculateMonthlyRevenue(context.Background(), "2025-02", false); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	firstPayouts := store.PayoutsForMonth("2025-02")

	if _, err := service.CalculateMonthlyRevenue(context.Background(), "2025-02", false); err != errors.ErrDuplicateRun {
		t.Fatalf("second run: expected ErrDuplicateRun, got %v", err)
	}

	if _, err := service.CalculateMonthlyRevenue(context.Background(), "2025-02", true); err != nil {
		t.Fatalf("forced rerun failed: %v", err)
	}
	secondPayouts := store.PayoutsForMonth("2025-02")
	if len(secondPayouts) != len(firstPayouts) {
		t.Fatalf("forced rerun payout count changed: got %d, want %d", len(secondPayouts), len(firstPayouts))
	}
	for i := range secondPayouts {
		if secondPayouts[i].PayoutID == firstPayouts[i].PayoutID {
			t.Fatalf("forced rerun must replace prior payout rows, kept %s", firstPayouts[i].PayoutID)
		}
	}
}

func TestCalculateMonthlyRevenueValidation(t *testing.T) {
	store := memory.NewStore()
	service := newTestService(store, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC))

	if _, err := service.CalculateMonthlyRevenue(context.Background(), "Feb 2025", false); err != errors.ErrInvalidMonth {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}

	bad := ports.SettingsSnapshot{
		PlatformFeePercentage:    150,
		DeveloperSharePercentage: 70,
		MinimumPayoutCents:       1000,
		PremiumPriceCents:        999,
		BonusMultiplier:          1.5,
	}
	store.SeedSettings(bad)
	if _, err := service.CalculateMonthlyRevenue(context.Background(), "2025-02", false); err != errors.ErrInvalidSettings {
		t.Fatalf("expected ErrInvalidSettings, got %v", err)
	}
}

func TestUpdatePayoutStatusWorkflow(t *testing.T) {
	store := memory.NewStore()
	seedTwoDeveloperMonth(store)
	now := time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC)
	service := newTestService(store, now)

	if _, err := service.CalculateMonthlyRevenue(context.Background(), "2025-02", false); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	payoutID := store.PayoutsForMonth("2025-02")[0].PayoutID

	payout, err := service.UpdatePayoutStatus(context.Background(), payoutID, entities.PayoutStatusProcessing, "", "")
	if err != nil {
		t.Fatalf("pending -> processing failed: %v", err)
	}
	if payout.ProcessedAt != nil {
		t.Fatalf("processing is not terminal, ProcessedAt must stay nil")
	}

	payout, err = service.UpdatePayoutStatus(context.Background(), payoutID, entities.PayoutStatusCompleted, "wise-123", "paid out")
	if err != nil {
		t.Fatalf("processing -> completed failed: %v", err)
	}
	if payout.ReferenceID != "wise-123" || payout.Notes != "paid out" {
		t.Fatalf("reference/notes not applied: %+v", payout)
	}
	if payout.ProcessedAt == nil || !payout.ProcessedAt.Equal(now) {
		t.Fatalf("completed payout must record ProcessedAt %v, got %v", now, payout.ProcessedAt)
	}

	if _, err := service.UpdatePayoutStatus(context.Background(), payoutID, entities.PayoutStatusPending, "", ""); err != errors.ErrInvalidPayoutTransition {
		t.Fatalf("completed is terminal, expected ErrInvalidPayoutTransition, got %v", err)
	}
	if _, err := service.UpdatePayoutStatus(context.Background(), payoutID, "refunded", "", ""); err != errors.ErrInvalidPayoutStatus {
		t.Fatalf("expected ErrInvalidPayoutStatus, got %v", err)
	}
	if _, err := service.UpdatePayoutStatus(context.Background(), "missing", entities.PayoutStatusProcessing, "", ""); err != errors.ErrPayoutNotFound {
		t.Fatalf("expected ErrPayoutNotFound, got %v", err)
	}
}

func TestGetRunLogRejectsMalformedMonth(t *testing.T) {
	store := memory.NewStore()
	service := newTestService(store, time.Now())

	if _, err := service.GetRunLog(context.Background(), "2025/02"); err != errors.ErrInvalidMonth {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
	if _, err := service.GetRunLog(context.Background(), "2025-02"); err != errors.ErrRunNotFound {
		t.Fatalf("expected ErrRunNotFound for a month with no run, got %v", err)
	}
}
