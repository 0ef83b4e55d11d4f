package application

import (
	"math"
	"sort"

	"timepay/contexts/monetization/distribution-engine/domain/entities"
	domainerrors "timepay/contexts/monetization/distribution-engine/domain/errors"
	"timepay/contexts/monetization/distribution-engine/ports"
)

// ComputePool derives the month's revenue split from the current premium
// subscriber count. The count is point-in-time, not a historical snapshot for
// the target month; months calculated late inherit today's subscriber base.
func ComputePool(premiumUserCount int64, settings ports.SettingsSnapshot) entities.RevenuePool {
	total := premiumUserCount * settings.PremiumPriceCents
	fee := int64(math.Floor(float64(total) * settings.PlatformFeePercentage / 100))
	return entities.RevenuePool{
		PremiumUserCount:   premiumUserCount,
		TotalRevenueCents:  total,
		PlatformFeeCents:   fee,
		DistributableCents: total - fee,
	}
}

// AllocatePool converts each website's share of premium time into cents.
//
// Floor rounding at both steps keeps the base split conservative, but the
// bonus multiplier can push the sum of allocations above DistributableCents.
// That excess is policy: bonuses are funded from platform margin, not clawed
// back from other developers. Do not "fix" it.
func AllocatePool(
	usage ports.UsageTotals,
	distributableCents int64,
	settings ports.SettingsSnapshot,
) ([]entities.WebsiteAllocation, error) {
	if usage.TotalPremiumSeconds < 0 {
		return nil, domainerrors.ErrInvalidUsage
	}
	if usage.TotalPremiumSeconds == 0 {
		return []entities.WebsiteAllocation{}, nil
	}

	allocations := make([]entities.WebsiteAllocation, 0, len(usage.PerWebsite))
	for _, site := range usage.PerWebsite {
		if site.PremiumSeconds < 0 {
			return nil, domainerrors.ErrInvalidUsage
		}

		premiumMinutes := int64(math.Round(float64(site.PremiumSeconds) / 60))
		percentage := float64(site.PremiumSeconds) / float64(usage.TotalPremiumSeconds)

		multiplier := 1.0
		if premiumMinutes >= settings.BonusThresholdMinutes {
			multiplier = settings.BonusMultiplier
		}

		baseCents := int64(math.Floor(float64(distributableCents) * percentage))
		amountCents := int64(math.Floor(float64(baseCents) * multiplier))

		allocations = append(allocations, entities.WebsiteAllocation{
			DeveloperID:       site.DeveloperID,
			WebsiteID:         site.WebsiteID,
			WebsiteName:       site.WebsiteName,
			PremiumSeconds:    site.PremiumSeconds,
			PremiumMinutes:    premiumMinutes,
			PercentageOfTotal: percentage,
			BonusMultiplier:   multiplier,
			AmountCents:       amountCents,
		})
	}

	// Each amount depends only on global totals, so ordering never changes
	// the math; sorting keeps run logs and tests reproducible.
	sort.Slice(allocations, func(i, j int) bool {
		if allocations[i].DeveloperID == allocations[j].DeveloperID {
			return allocations[i].WebsiteID < allocations[j].WebsiteID
		}
		return allocations[i].DeveloperID < allocations[j].DeveloperID
	})
	return allocations, nil
}

// RollupDevelopers sums website allocations per developer and marks payout
// eligibility against the configured minimum.
func RollupDevelopers(
	allocations []entities.WebsiteAllocation,
	minimumPayoutCents int64,
) []entities.DeveloperRollup {
	byDeveloper := make(map[string]*entities.DeveloperRollup)
	order := make([]string, 0)
	for _, allocation := range allocations {
		rollup, ok := byDeveloper[allocation.DeveloperID]
		if !ok {
			rollup = &entities.DeveloperRollup{DeveloperID: allocation.DeveloperID}
			byDeveloper[allocation.DeveloperID] = rollup
			order = append(order, allocation.DeveloperID)
		}
		rollup.AmountCents += allocation.AmountCents
		rollup.PremiumMinutes += allocation.PremiumMinutes
		rollup.WebsitesCount++
	}

	sort.Strings(order)
	rollups := make([]entities.DeveloperRollup, 0, len(order))
	for _, developerID := range order {
		rollup := byDeveloper[developerID]
		rollup.PayoutEligible = rollup.AmountCents >= minimumPayoutCents
		rollups = append(rollups, *rollup)
	}
	return rollups
}

func validSettings(settings ports.SettingsSnapshot) bool {
	return settings.PlatformFeePercentage >= 0 &&
		settings.PlatformFeePercentage <= 100 &&
		settings.DeveloperSharePercentage >= 0 &&
		settings.DeveloperSharePercentage <= 100 &&
		settings.MinimumPayoutCents >= 0 &&
		settings.PremiumPriceCents >= 0 &&
		settings.BonusThresholdMinutes >= 0 &&
		settings.BonusMultiplier >= 1
}
