package application

import (
	"testing"

	"timepay/contexts/monetization/distribution-engine/domain/errors"
	"timepay/contexts/monetization/distribution-engine/ports"
)

func baseSettings() ports.SettingsSnapshot {
	return ports.SettingsSnapshot{
		PlatformFeePercentage:    30,
		DeveloperSharePercentage: 70,
		MinimumPayoutCents:       1000,
		PayoutSchedule:           "monthly",
		PremiumPriceCents:        999,
		BonusThresholdMinutes:    120,
		BonusMultiplier:          1.5,
	}
}

func TestComputePoolSplitsFeeAndDistributable(t *testing.T) {
	pool := ComputePool(10, baseSettings())

	if pool.TotalRevenueCents != 9990 {
		t.Fatalf("total revenue: got %d, want 9990", pool.TotalRevenueCents)
	}
	if pool.PlatformFeeCents != 2997 {
		t.Fatalf("platform fee: got %d, want 2997", pool.PlatformFeeCents)
	}
	if pool.DistributableCents != 6993 {
		t.Fatalf("distributable: got %d, want 6993", pool.DistributableCents)
	}
}

func TestAllocatePoolConservesPoolWithoutBonus(t *testing.T) {
	usage := ports.UsageTotals{
		TotalPremiumSeconds: 10000,
		PerWebsite: []ports.WebsiteUsage{
			{DeveloperID: "dev-1", WebsiteID: "site-a", PremiumSeconds: 3333},
			{DeveloperID: "dev-1", WebsiteID: "site-b", PremiumSeconds: 3333},
			{DeveloperID: "dev-2", WebsiteID: "site-c", PremiumSeconds: 3334},
		},
	}
	settings := baseSettings()
	settings.BonusThresholdMinutes = 100000 // nobody crosses it

	allocations, err := AllocatePool(usage, 6993, settings)
	if err != nil {
		t.Fatalf("allocate failed: %v", err)
	}

	var sum int64
	for _, allocation := range allocations {
		sum += allocation.AmountCents
	}
	if sum > 6993 {
		t.Fatalf("allocated %d cents, more than the 6993 pool", sum)
	}
	if shortfall := 6993 - sum; shortfall >= int64(len(allocations)) {
		t.Fatalf("floor-rounding shortfall %d should be below website count %d", shortfall, len(allocations))
	}
}

// The bonus multiplier is funded from platform margin, so the allocated sum
// legitimately exceeds the distributable pool when a site crosses the
// threshold. This is policy, not a rounding defect.
func TestAllocatePoolBonusCanExceedPool(t *testing.T) {
	usage := ports.UsageTotals{
		TotalPremiumSeconds: 10800,
		PerWebsite: []ports.WebsiteUsage{
			// 7200s = 120 minutes: exactly at the bonus threshold.
			{DeveloperID: "dev-1", WebsiteID: "site-a", PremiumSeconds: 7200},
			{DeveloperID: "dev-2", WebsiteID: "site-b", PremiumSeconds: 3600},
		},
	}

	allocations, err := AllocatePool(usage, 6993, baseSettings())
	if err != nil {
		t.Fatalf("allocate failed: %v", err)
	}

	// base floor(6993*2/3)=4662, bonus floor(4662*1.5)=6993
	if allocations[0].BonusMultiplier != 1.5 {
		t.Fatalf("site-a multiplier: got %v, want 1.5", allocations[0].BonusMultiplier)
	}
	if allocations[0].AmountCents != 6993 {
		t.Fatalf("site-a amount: got %d, want 6993", allocations[0].AmountCents)
	}
	if allocations[1].BonusMultiplier != 1.0 {
		t.Fatalf("site-b multiplier: got %v, want 1.0", allocations[1].BonusMultiplier)
	}

	sum := allocations[0].AmountCents + allocations[1].AmountCents
	if sum != 9324 {
		t.Fatalf("allocated sum: got %d, want 9324 (6993 + site-a bonus)", sum)
	}
	// The overshoot is exactly site-a's bonus portion: 6993 - 4662.
	if excess := sum - 6993; excess != 2331 {
		t.Fatalf("excess over the pool: got %d, want 2331", excess)
	}
}

func TestAllocatePoolProportionality(t *testing.T) {
	usage := ports.UsageTotals{
		TotalPremiumSeconds: 5400,
		PerWebsite: []ports.WebsiteUsage{
			{DeveloperID: "dev-1", WebsiteID: "site-a", PremiumSeconds: 3600},
			{DeveloperID: "dev-2", WebsiteID: "site-b", PremiumSeconds: 1800},
		},
	}
	settings := baseSettings()
	settings.BonusThresholdMinutes = 100000

	allocations, err := AllocatePool(usage, 10000, settings)
	if err != nil {
		t.Fatalf("allocate failed: %v", err)
	}

	a, b := allocations[0].AmountCents, allocations[1].AmountCents
	diff := a - 2*b
	if diff < -2 || diff > 2 {
		t.Fatalf("2:1 seconds should give 2:1 cents within rounding, got %d and %d", a, b)
	}
}

func TestAllocatePoolOrdersDeterministically(t *testing.T) {
	usage := ports.UsageTotals{
		TotalPremiumSeconds: 300,
		PerWebsite: []ports.WebsiteUsage{
			{DeveloperID: "dev-2", WebsiteID: "site-c", PremiumSeconds: 100},
			{DeveloperID: "dev-1", WebsiteID: "site-b", PremiumSeconds: 100},
			{DeveloperID: "dev-1", WebsiteID: "site-a", PremiumSeconds: 100},
		},
	}

	allocations, err := AllocatePool(usage, 999, baseSettings())
	if err != nil {
		t.Fatalf("allocate failed: %v", err)
	}

	got := []string{allocations[0].WebsiteID, allocations[1].WebsiteID, allocations[2].WebsiteID}
	want := []string{"site-a", "site-b", "site-c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("allocation order: got %v, want %v", got, want)
		}
	}
}

func TestAllocatePoolRejectsNegativeDurations(t *testing.T) {
	usage := ports.UsageTotals{
		TotalPremiumSeconds: 100,
		PerWebsite: []ports.WebsiteUsage{
			{DeveloperID: "dev-1", WebsiteID: "site-a", PremiumSeconds: -1},
		},
	}

	if _, err := AllocatePool(usage, 1000, baseSettings()); err != errors.ErrInvalidUsage {
		t.Fatalf("expected ErrInvalidUsage, got %v", err)
	}
}

func TestRollupDevelopersMarksEligibility(t *testing.T) {
	usage := ports.UsageTotals{
		TotalPremiumSeconds: 10800,
		PerWebsite: []ports.WebsiteUsage{
			{DeveloperID: "dev-1", WebsiteID: "site-a", PremiumSeconds: 3600},
			{DeveloperID: "dev-1", WebsiteID: "site-b", PremiumSeconds: 3600},
			{DeveloperID: "dev-2", WebsiteID: "site-c", PremiumSeconds: 3600},
		},
	}
	settings := baseSettings()
	settings.BonusThresholdMinutes = 100000

	allocations, err := AllocatePool(usage, 6993, settings)
	if err != nil {
		t.Fatalf("allocate failed: %v", err)
	}
	rollups := RollupDevelopers(allocations, 2332)

	if len(rollups) != 2 {
		t.Fatalf("rollup count: got %d, want 2", len(rollups))
	}
	if rollups[0].DeveloperID != "dev-1" || rollups[0].AmountCents != 4662 || rollups[0].WebsitesCount != 2 {
		t.Fatalf("dev-1 rollup unexpected: %+v", rollups[0])
	}
	if !rollups[0].PayoutEligible {
		t.Fatalf("dev-1 at 4662 cents should clear a 2332 minimum")
	}
	if rollups[1].DeveloperID != "dev-2" || rollups[1].AmountCents != 2331 {
		t.Fatalf("dev-2 rollup unexpected: %+v", rollups[1])
	}
	if rollups[1].PayoutEligible {
		t.Fatalf("dev-2 at 2331 cents is one cent below the 2332 minimum")
	}

	// Exactly at the minimum is eligible. The threshold is inclusive.
	atMinimum := RollupDevelopers(allocations, 2331)
	if !atMinimum[1].PayoutEligible {
		t.Fatalf("dev-2 at 2331 cents should clear a 2331 minimum exactly")
	}
}
