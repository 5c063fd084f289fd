package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/pickemlab/tournament-pickem/internal/usecase"
)

func (h *Handler) GetThirdPlaceReconciliation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetThirdPlaceReconciliation")
	defer span.End()

	userID, ok := h.requireUser(ctx, w)
	if !ok {
		return
	}

	view, err := h.thirdPlaceService.Reconcile(ctx, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "third place reconciliation failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, thirdPlaceViewToDTO(ctx, view))
}

type toggleThirdPlaceRequest struct {
	TeamID string `json:"teamId" validate:"required"`
}

func (h *Handler) ToggleThirdPlaceTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ToggleThirdPlaceTeam")
	defer span.End()

	userID, ok := h.requireUser(ctx, w)
	if !ok {
		return
	}

	var req toggleThirdPlaceRequest
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

	view, err := h.thirdPlaceService.Toggle(ctx, userID, req.TeamID)
	if err != nil {
		h.logger.WarnContext(ctx, "toggle third place team failed", "user_id", userID, "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, thirdPlaceViewToDTO(ctx, view))
}

func (h *Handler) CancelThirdPlaceEdit(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelThirdPlaceEdit")
	defer span.End()

	userID, ok := h.requireUser(ctx, w)
	if !ok {
		return
	}

	if err := h.thirdPlaceService.CancelEdit(ctx, userID); err != nil {
		h.logger.WarnContext(ctx, "cancel third place edit failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "cancelled"})
}

func (h *Handler) CommitThirdPlace(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CommitThirdPlace")
	defer span.End()

	userID, ok := h.requireUser(ctx, w)
	if !ok {
		return
	}

	prediction, err := h.thirdPlaceService.Commit(ctx, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "commit third place failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, thirdPlacePredictionToDTO(ctx, prediction))
}
