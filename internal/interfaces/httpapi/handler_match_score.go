package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/pickemlab/tournament-pickem/internal/domain/matchforecast"
	"github.com/pickemlab/tournament-pickem/internal/usecase"
)

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	userID, ok := h.requireUser(ctx, w)
	if !ok {
		return
	}

	views, err := h.matchScoreService.List(ctx, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchViewDTO, 0, len(views))
	for _, v := range views {
		items = append(items, matchViewToDTO(ctx, v))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type setDraftScoreRequest struct {
	Side  string `json:"side" validate:"required,oneof=home away"`
	Value int    `json:"value" validate:"min=0"`
}

func (h *Handler) SetDraftScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetDraftScore")
	defer span.End()

	userID, ok := h.requireUser(ctx, w)
	if !ok {
		return
	}

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	var req setDraftScoreRequest
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

	if err := h.matchScoreService.SetDraftScore(ctx, userID, matchID, matchforecast.Side(req.Side), req.Value); err != nil {
		h.logger.WarnContext(ctx, "set draft score failed", "match_id", matchID, "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "drafted"})
}

func (h *Handler) CancelDraftScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelDraftScore")
	defer span.End()

	userID, ok := h.requireUser(ctx, w)
	if !ok {
		return
	}

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	if err := h.matchScoreService.CancelEdit(ctx, userID, matchID); err != nil {
		h.logger.WarnContext(ctx, "cancel draft score failed", "match_id", matchID, "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "cancelled"})
}

func (h *Handler) CommitMatchScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CommitMatchScore")
	defer span.End()

	userID, ok := h.requireUser(ctx, w)
	if !ok {
		return
	}

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	prediction, err := h.matchScoreService.CommitSingle(ctx, userID, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "commit match score failed", "match_id", matchID, "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchPredictionToDTO(ctx, prediction))
}

func (h *Handler) CommitAllMatchScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CommitAllMatchScores")
	defer span.End()

	userID, ok := h.requireUser(ctx, w)
	if !ok {
		return
	}

	predictions, err := h.matchScoreService.CommitAllDrafts(ctx, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "commit all match scores failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchPredictionDTO, 0, len(predictions))
	for _, p := range predictions {
		items = append(items, matchPredictionToDTO(ctx, p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
