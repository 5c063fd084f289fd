package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/pickemlab/tournament-pickem/internal/usecase"
)

func (h *Handler) ListGroups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGroups")
	defer span.End()

	groups, err := h.groupOrderService.ListGroups(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list groups failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]groupDTO, 0, len(groups))
	for _, g := range groups {
		items = append(items, groupSummaryToDTO(ctx, g))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetGroupBoard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGroupBoard")
	defer span.End()

	userID, ok := h.requireUser(ctx, w)
	if !ok {
		return
	}

	groupID := strings.TrimSpace(r.PathValue("groupID"))
	board, err := h.groupOrderService.Board(ctx, userID, groupID)
	if err != nil {
		h.logger.WarnContext(ctx, "get group board failed", "group_id", groupID, "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, groupBoardToDTO(ctx, board))
}

func (h *Handler) BeginGroupOrderEdit(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BeginGroupOrderEdit")
	defer span.End()

	userID, ok := h.requireUser(ctx, w)
	if !ok {
		return
	}

	groupID := strings.TrimSpace(r.PathValue("groupID"))
	board, err := h.groupOrderService.BeginEdit(ctx, userID, groupID)
	if err != nil {
		h.logger.WarnContext(ctx, "begin group order edit failed", "group_id", groupID, "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, groupBoardToDTO(ctx, board))
}

func (h *Handler) CancelGroupOrderEdit(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelGroupOrderEdit")
	defer span.End()

	userID, ok := h.requireUser(ctx, w)
	if !ok {
		return
	}

	groupID := strings.TrimSpace(r.PathValue("groupID"))
	if err := h.groupOrderService.CancelEdit(ctx, userID, groupID); err != nil {
		h.logger.WarnContext(ctx, "cancel group order edit failed", "group_id", groupID, "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "cancelled"})
}

type moveTeamRequest struct {
	From int `json:"from" validate:"min=0"`
	To   int `json:"to" validate:"min=0"`
}

func (h *Handler) MoveGroupOrderTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MoveGroupOrderTeam")
	defer span.End()

	userID, ok := h.requireUser(ctx, w)
	if !ok {
		return
	}

	groupID := strings.TrimSpace(r.PathValue("groupID"))
	var req moveTeamRequest
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

	board, err := h.groupOrderService.MoveTeam(ctx, userID, groupID, req.From, req.To)
	if err != nil {
		h.logger.WarnContext(ctx, "move team failed", "group_id", groupID, "user_id", userID, "from", req.From, "to", req.To, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, groupBoardToDTO(ctx, board))
}

type proposeOrderRequest struct {
	Positions []string `json:"positions" validate:"required,len=4,dive,required"`
}

func (h *Handler) ProposeGroupOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ProposeGroupOrder")
	defer span.End()

	userID, ok := h.requireUser(ctx, w)
	if !ok {
		return
	}

	groupID := strings.TrimSpace(r.PathValue("groupID"))
	var req proposeOrderRequest
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

	board, err := h.groupOrderService.ProposeOrder(ctx, userID, groupID, req.Positions)
	if err != nil {
		h.logger.WarnContext(ctx, "propose order failed", "group_id", groupID, "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, groupBoardToDTO(ctx, board))
}

func (h *Handler) CommitGroupOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CommitGroupOrder")
	defer span.End()

	userID, ok := h.requireUser(ctx, w)
	if !ok {
		return
	}

	groupID := strings.TrimSpace(r.PathValue("groupID"))
	prediction, err := h.groupOrderService.Commit(ctx, userID, groupID)
	if err != nil {
		h.logger.WarnContext(ctx, "commit group order failed", "group_id", groupID, "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, groupPredictionToDTO(ctx, prediction))
}
