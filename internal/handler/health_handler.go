package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/BrandonWrob/ExtendedManager/pkg/logger"
)

const healthTimeout = 2 * time.Second

// HealthChecker is implemented by every store.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type HealthHandler struct {
	responder
	checker HealthChecker
}

func NewHealthHandler(checker HealthChecker, logger *logger.Logger) *HealthHandler {
	return &HealthHandler{
		responder: responder{logger: logger.WithComponent("health_handler")},
		checker:   checker,
	}
}

type healthResponse struct {
	Status string `json:"status"`
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.checker.HealthCheck(ctx); err != nil {
		h.logger.ForContext(r.Context()).Error("Health check failed", "error", err)
		h.writeJSONResponse(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}
	h.writeJSONResponse(w, http.StatusOK, healthResponse{Status: "ok"})
}
