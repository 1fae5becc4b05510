package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"solar-system-server/internal/shared/response"
)

// StoreChecker reports which scene store is in use and whether it answers.
type StoreChecker interface {
	Backend() string
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Store     string `json:"store"`
	Backend   string `json:"backend"`
}

type HealthHandler struct {
	store StoreChecker
}

func NewHealthHandler(store StoreChecker) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "health")

	ctx, cancel := context.WithTimeout(r.Context(), time.Second)
	defer cancel()

	status := "healthy"
	storeStatus := "connected"
	if err := h.store.Ping(ctx); err != nil {
		logger.Warn("Scene store ping failed", "backend", h.store.Backend(), "error", err)
		status = "degraded"
		storeStatus = "disconnected"
	}

	resp := HealthResponse{
		Status:    status,
		Timestamp: time.Now().Format(time.RFC3339),
		Store:     storeStatus,
		Backend:   h.store.Backend(),
	}

	response.Success(w, http.StatusOK, resp)
}
