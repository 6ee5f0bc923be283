package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Lixing-Zhang/menu-board/internal/service"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// menuStatus reports the menu load state
type menuStatus interface {
	Status(ctx context.Context) service.Status
}

// HealthHandler provides health check endpoint
type HealthHandler struct {
	status menuStatus
	logger *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(status menuStatus, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		status: status,
		logger: logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Version   string         `json:"version"`
	Menu      service.Status `json:"menu"`
}

// ServeHTTP handles health check requests. The server is always up; a menu
// that never loaded only degrades it.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	menu := h.status.Status(r.Context())

	status := "healthy"
	if !menu.Loaded {
		status = "degraded"
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Version:   Version,
		Menu:      menu,
	}

	WriteJSON(w, http.StatusOK, response, h.logger)
}
