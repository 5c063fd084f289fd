package httpapi

import "net/http"

func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOverview")
	defer span.End()

	userID, ok := h.requireUser(ctx, w)
	if !ok {
		return
	}

	overview, err := h.overviewService.Build(ctx, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "build overview failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, overviewToDTO(ctx, overview))
}
