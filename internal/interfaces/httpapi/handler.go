package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/pickemlab/tournament-pickem/internal/platform/logging"
	"github.com/pickemlab/tournament-pickem/internal/usecase"
)

type Handler struct {
	groupOrderService *usecase.GroupOrderService
	thirdPlaceService *usecase.ThirdPlaceService
	matchScoreService *usecase.MatchScoreService
	overviewService   *usecase.OverviewService
	pointsSyncService *usecase.PointsSyncService
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	groupOrderService *usecase.GroupOrderService,
	thirdPlaceService *usecase.ThirdPlaceService,
	matchScoreService *usecase.MatchScoreService,
	overviewService *usecase.OverviewService,
	pointsSyncService *usecase.PointsSyncService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		groupOrderService: groupOrderService,
		thirdPlaceService: thirdPlaceService,
		matchScoreService: matchScoreService,
		overviewService:   overviewService,
		pointsSyncService: pointsSyncService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// requireUser extracts the resolved principal and writes the error response
// itself when it is missing; callers just return on !ok.
func (h *Handler) requireUser(ctx context.Context, w http.ResponseWriter) (string, bool) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return "", false
	}

	return principal.UserID, true
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
