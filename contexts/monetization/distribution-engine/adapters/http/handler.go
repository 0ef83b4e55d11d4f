package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"timepay/contexts/monetization/distribution-engine/application"
	"timepay/contexts/monetization/distribution-engine/domain/entities"
	httptransport "timepay/contexts/monetization/distribution-engine/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CalculateRevenueHandler(
	ctx context.Context,
	req httptransport.CalculateRevenueRequest,
) (httptransport.CalculateRevenueResponse, error) {
	summary, err := h.Service.CalculateMonthlyRevenue(ctx, req.Month, req.Force)
	if err != nil {
		return httptransport.CalculateRevenueResponse{}, err
	}
	return httptransport.CalculateRevenueResponse{
		Status: "success",
		Data: httptransport.RunSummaryDTO{
			Month:                 summary.Month,
			TotalRevenueCents:     summary.TotalRevenueCents,
			TotalDistributedCents: summary.TotalDistributedCents,
			PlatformFeeCents:      summary.PlatformFeeCents,
			DeveloperCount:        summary.DeveloperCount,
			Status:                summary.Status,
			Notes:                 summary.Notes,
		},
	}, nil
}

func (h Handler) GetRunLogHandler(
	ctx context.Context,
	month string,
) (httptransport.RunLogResponse, error) {
	log, err := h.Service.GetRunLog(ctx, month)
	if err != nil {
		return httptransport.RunLogResponse{}, err
	}
	return httptransport.RunLogResponse{
		Status: "success",
		Data: httptransport.RunLogDTO{
			RunID:                 log.RunID,
			Month:                 log.Month,
			TotalRevenueCents:     log.TotalRevenueCents,
			TotalDistributedCents: log.TotalDistributedCents,
			PlatformFeeCents:      log.PlatformFeeCents,
			DeveloperCount:        log.DeveloperCount,
			Status:                log.Status,
			Notes:                 log.Notes,
			RunAt:                 log.RunAt.UTC().Format(time.RFC3339),
		},
	}, nil
}

func (h Handler) UpdatePayoutHandler(
	ctx context.Context,
	payoutID string,
	req httptransport.UpdatePayoutRequest,
) (httptransport.UpdatePayoutResponse, error) {
	payout, err := h.Service.UpdatePayoutStatus(ctx, payoutID, req.Status, req.ReferenceID, req.Notes)
	if err != nil {
		return httptransport.UpdatePayoutResponse{}, err
	}
	return httptransport.UpdatePayoutResponse{
		Status: "success",
		Data:   toPayoutDTO(payout),
	}, nil
}

func toPayoutDTO(payout entities.Payout) httptransport.PayoutDTO {
	dto := httptransport.PayoutDTO{
		PayoutID:      payout.PayoutID,
		DeveloperID:   payout.DeveloperID,
		AmountCents:   payout.AmountCents,
		Month:         payout.Month,
		Status:        payout.Status,
		PaymentMethod: payout.PaymentMethod,
		ReferenceID:   payout.ReferenceID,
		Notes:         payout.Notes,
		CreatedAt:     payout.CreatedAt.UTC().Format(time.RFC3339),
	}
	if payout.ProcessedAt != nil {
		dto.ProcessedAt = payout.ProcessedAt.UTC().Format(time.RFC3339)
	}
	return dto
}
