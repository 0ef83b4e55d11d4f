package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"timepay/contexts/engagement/tracking-service/application"
	"timepay/contexts/engagement/tracking-service/domain/entities"
	domainerrors "timepay/contexts/engagement/tracking-service/domain/errors"
	httptransport "timepay/contexts/engagement/tracking-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateAPIKeyHandler(
	ctx context.Context,
	userID string,
	req httptransport.CreateAPIKeyRequest,
) (httptransport.APIKeyResponse, error) {
	key, err := h.Service.CreateAPIKey(ctx, userID, req.Name, req.Website, req.CompanyName)
	if err != nil {
		return httptransport.APIKeyResponse{}, err
	}
	return httptransport.APIKeyResponse{
		Status: "success",
		Data:   toAPIKeyDTO(key),
	}, nil
}

func (h Handler) ListAPIKeysHandler(
	ctx context.Context,
	userID string,
) (httptransport.APIKeyListResponse, error) {
	keys, err := h.Service.ListAPIKeys(ctx, userID)
	if err != nil {
		return httptransport.APIKeyListResponse{}, err
	}

	data := make([]httptransport.APIKeyDTO, 0, len(keys))
	for _, key := range keys {
		data = append(data, toAPIKeyDTO(key))
	}
	return httptransport.APIKeyListResponse{Status: "success", Data: data}, nil
}

func (h Handler) DeleteAPIKeyHandler(
	ctx context.Context,
	userID string,
	keyID string,
) (httptransport.DeleteAPIKeyResponse, error) {
	if err := h.Service.DeleteAPIKey(ctx, userID, keyID); err != nil {
		return httptransport.DeleteAPIKeyResponse{}, err
	}
	return httptransport.DeleteAPIKeyResponse{Status: "success"}, nil
}

func (h Handler) RecordSampleHandler(
	ctx context.Context,
	req httptransport.RecordSampleRequest,
) (httptransport.RecordSampleResponse, error) {
	var occurredAt time.Time
	if req.OccurredAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.OccurredAt)
		if err != nil {
			return httptransport.RecordSampleResponse{}, domainerrors.ErrInvalidSample
		}
		occurredAt = parsed
	}

	sample, err := h.Service.RecordSample(
		ctx,
		req.APIKey,
		req.WebsiteID,
		req.DurationSeconds,
		req.Path,
		req.UserID,
		occurredAt,
	)
	if err != nil {
		return httptransport.RecordSampleResponse{}, err
	}
	return httptransport.RecordSampleResponse{
		Status: "success",
		Data: httptransport.SampleDTO{
			SampleID:        sample.SampleID,
			UserID:          sample.UserID,
			WebsiteID:       sample.WebsiteID,
			DurationSeconds: sample.DurationSeconds,
			Path:            sample.Path,
			OccurredAt:      sample.OccurredAt.UTC().Format(time.RFC3339),
		},
	}, nil
}

func toAPIKeyDTO(key entities.APIKey) httptransport.APIKeyDTO {
	return httptransport.APIKeyDTO{
		KeyID:     key.KeyID,
		Name:      key.Name,
		Key:       key.Secret,
		Active:    key.Active,
		CreatedAt: key.CreatedAt.UTC().Format(time.RFC3339),
	}
}
