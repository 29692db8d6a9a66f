package handlers

import (
	"net/http"
	"taskFileTracker/internal/handlers/dto"
	"taskFileTracker/internal/logger"

	"go.uber.org/zap"
)

const serviceName = "task-tracker"

type HealthHandler struct {
	checkers []HealthChecker
}

func NewHealthHandler(checkers ...HealthChecker) *HealthHandler {
	return &HealthHandler{checkers: checkers}
}

func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	for _, checker := range h.checkers {
		if err := checker.HealthCheck(r.Context()); err != nil {
			logger.FromContext(r.Context()).Error("HTTP: Health check не пройден", zap.Error(err))
			responseWithBody(w, http.StatusServiceUnavailable, dto.HealthResponse{Status: "unavailable", Service: serviceName})
			return
		}
	}

	responseWithBody(w, http.StatusOK, dto.HealthResponse{Status: "ok", Service: serviceName})
}
