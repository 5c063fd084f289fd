package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/pickemlab/tournament-pickem/internal/usecase"
)

type pointsSyncJobRequest struct {
	UserIDs    []string `json:"userIds" validate:"required,min=1,dive,required"`
	MaxWorkers int      `json:"maxWorkers" validate:"min=0"`
	DryRun     bool     `json:"dryRun"`
}

func (h *Handler) RunPointsSyncJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunPointsSyncJob")
	defer span.End()

	var req pointsSyncJobRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.pointsSyncService.Sync(ctx, usecase.PointsSyncInput{
		UserIDs:    req.UserIDs,
		MaxWorkers: req.MaxWorkers,
		DryRun:     req.DryRun,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "points sync job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
