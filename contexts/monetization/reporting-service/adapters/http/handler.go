package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"timepay/contexts/monetization/reporting-service/application"
	"timepay/contexts/monetization/reporting-service/domain/entities"
	httptransport "timepay/contexts/monetization/reporting-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) EarningsHistoryHandler(
	ctx context.Context,
	userID string,
) (httptransport.EarningsHistoryResponse, error) {
	earnings, err := h.Service.GetEarningsHistory(ctx, userID)
	if err != nil {
		return httptransport.EarningsHistoryResponse{}, err
	}

	data := make([]httptransport.MonthlyEarningDTO, 0, len(earnings))
	for _, earning := range earnings {
		data = append(data, httptransport.MonthlyEarningDTO{
			Month:          earning.Month,
			AmountCents:    earning.AmountCents,
			PremiumMinutes: earning.PremiumMinutes,
			WebsitesCount:  earning.WebsitesCount,
			CalculatedAt:   earning.CalculatedAt.UTC().Format(time.RFC3339),
		})
	}
	return httptransport.EarningsHistoryResponse{Status: "success", Data: data}, nil
}

func (h Handler) EarningsBreakdownHandler(
	ctx context.Context,
	userID string,
	month string,
) (httptransport.EarningsBreakdownResponse, error) {
	breakdown, err := h.Service.GetEarningsBreakdown(ctx, userID, month)
	if err != nil {
		return httptransport.EarningsBreakdownResponse{}, err
	}

	data := make([]httptransport.WebsiteEarningDTO, 0, len(breakdown))
	for _, earning := range breakdown {
		data = append(data, httptransport.WebsiteEarningDTO{
			WebsiteID:      earning.WebsiteID,
			WebsiteName:    earning.WebsiteName,
			AmountCents:    earning.AmountCents,
			PremiumMinutes: earning.PremiumMinutes,
		})
	}
	return httptransport.EarningsBreakdownResponse{Status: "success", Month: month, Data: data}, nil
}

func (h Handler) PayoutHistoryHandler(
	ctx context.Context,
	userID string,
) (httptransport.PayoutHistoryResponse, error) {
	payouts, err := h.Service.GetPayoutHistory(ctx, userID)
	if err != nil {
		return httptransport.PayoutHistoryResponse{}, err
	}

	data := make([]httptransport.PayoutRecordDTO, 0, len(payouts))
	for _, payout := range payouts {
		data = append(data, toPayoutRecordDTO(payout))
	}
	return httptransport.PayoutHistoryResponse{Status: "success", Data: data}, nil
}

func (h Handler) PlatformStatsHandler(ctx context.Context) (httptransport.PlatformStatsResponse, error) {
	stats, err := h.Service.GetPlatformStats(ctx)
	if err != nil {
		return httptransport.PlatformStatsResponse{}, err
	}

	dto := httptransport.PlatformStatsDTO{
		TotalRuns:             stats.TotalRuns,
		TotalRevenueCents:     stats.TotalRevenueCents,
		TotalDistributedCents: stats.TotalDistributedCents,
		PlatformFeeCents:      stats.PlatformFeeCents,
		Runs:                  make([]httptransport.RunEntryDTO, 0, len(stats.Runs)),
	}
	if stats.LastRunAt != nil {
		dto.LastRunAt = stats.LastRunAt.UTC().Format(time.RFC3339)
	}
	for _, run := range stats.Runs {
		dto.Runs = append(dto.Runs, httptransport.RunEntryDTO{
			Month:                 run.Month,
			TotalRevenueCents:     run.TotalRevenueCents,
			TotalDistributedCents: run.TotalDistributedCents,
			PlatformFeeCents:      run.PlatformFeeCents,
			DeveloperCount:        run.DeveloperCount,
			Status:                run.Status,
			RunAt:                 run.RunAt.UTC().Format(time.RFC3339),
		})
	}
	return httptransport.PlatformStatsResponse{Status: "success", Data: dto}, nil
}

func (h Handler) TopDevelopersHandler(
	ctx context.Context,
	month string,
) (httptransport.TopDevelopersResponse, error) {
	top, err := h.Service.GetTopDevelopers(ctx, month)
	if err != nil {
		return httptransport.TopDevelopersResponse{}, err
	}

	data := make([]httptransport.TopDeveloperDTO, 0, len(top))
	for _, entry := range top {
		data = append(data, httptransport.TopDeveloperDTO{
			Rank:           entry.Rank,
			DeveloperID:    entry.DeveloperID,
			AmountCents:    entry.AmountCents,
			PremiumMinutes: entry.PremiumMinutes,
			WebsitesCount:  entry.WebsitesCount,
		})
	}
	return httptransport.TopDevelopersResponse{Status: "success", Month: month, Data: data}, nil
}

func toPayoutRecordDTO(payout entities.PayoutRecord) httptransport.PayoutRecordDTO {
	dto := httptransport.PayoutRecordDTO{
		PayoutID:      payout.PayoutID,
		AmountCents:   payout.AmountCents,
		Month:         payout.Month,
		Status:        payout.Status,
		PaymentMethod: payout.PaymentMethod,
		ReferenceID:   payout.ReferenceID,
		CreatedAt:     payout.CreatedAt.UTC().Format(time.RFC3339),
	}
	if payout.ProcessedAt != nil {
		dto.ProcessedAt = payout.ProcessedAt.UTC().Format(time.RFC3339)
	}
	return dto
}
