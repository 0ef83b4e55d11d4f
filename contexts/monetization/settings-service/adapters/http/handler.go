package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"timepay/contexts/monetization/settings-service/application"
	"timepay/contexts/monetization/settings-service/domain/entities"
	domainerrors "timepay/contexts/monetization/settings-service/domain/errors"
	"timepay/contexts/monetization/settings-service/ports"
	httptransport "timepay/contexts/monetization/settings-service/transport/http"
)

type Handler struct {
	Service  application.Service
	Logger   *slog.Logger
	Validate *validator.Validate
}

func NewHandler(service application.Service, logger *slog.Logger) Handler {
	return Handler{
		Service:  service,
		Logger:   logger,
		Validate: validator.New(),
	}
}

func (h Handler) GetSettingsHandler(ctx context.Context) (httptransport.SettingsResponse, error) {
	settings, err := h.Service.GetSettings(ctx)
	if err != nil {
		return httptransport.SettingsResponse{}, err
	}
	return httptransport.SettingsResponse{
		Status: "success",
		Data:   toSettingsDTO(settings),
	}, nil
}

func (h Handler) UpdateSettingsHandler(
	ctx context.Context,
	req httptransport.UpdateSettingsRequest,
) (httptransport.SettingsResponse, error) {
	if h.Validate != nil {
		if err := h.Validate.Struct(req); err != nil {
			return httptransport.SettingsResponse{}, domainerrors.ErrInvalidSettings
		}
	}
	settings, err := h.Service.UpdateSettings(ctx, ports.SettingsPatch{
		PlatformFeePercentage:    req.PlatformFeePercentage,
		DeveloperSharePercentage: req.DeveloperSharePercentage,
		MinimumPayoutCents:       req.MinimumPayoutCents,
		PremiumPriceCents:        req.PremiumPriceCents,
		BonusThresholdMinutes:    req.BonusThresholdMinutes,
		BonusMultiplier:          req.BonusMultiplier,
		PayoutSchedule:           req.PayoutSchedule,
	})
	if err != nil {
		return httptransport.SettingsResponse{}, err
	}
	return httptransport.SettingsResponse{
		Status: "success",
		Data:   toSettingsDTO(settings),
	}, nil
}

func toSettingsDTO(settings entities.RevenueSettings) httptransport.SettingsDTO {
	dto := httptransport.SettingsDTO{
		PlatformFeePercentage:    settings.PlatformFeePercentage,
		DeveloperSharePercentage: settings.DeveloperSharePercentage,
		MinimumPayoutCents:       settings.MinimumPayoutCents,
		PremiumPriceCents:        settings.PremiumPriceCents,
		BonusThresholdMinutes:    settings.BonusThresholdMinutes,
		BonusMultiplier:          settings.BonusMultiplier,
		PayoutSchedule:           settings.PayoutSchedule,
	}
	if !settings.UpdatedAt.IsZero() {
		dto.UpdatedAt = settings.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return dto
}
