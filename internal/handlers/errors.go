package handlers

import (
	"net/http"
	"taskFileTracker/internal/logger"
	"taskFileTracker/internal/service"

	"go.uber.org/zap"
)

const codeInternal = "INTERNAL_ERROR"

func handleBusinessError(w http.ResponseWriter, r *http.Request, err error) bool {
	businessErr, ok := service.AsBusinessError(err)
	if !ok {
		return false
	}

	statusCode := mapBusinessErrorToHTTP(businessErr.Code)

	logger.FromContext(r.Context()).Warn("HTTP: Бизнес-ошибка",
		zap.String("error_code", businessErr.Code),
		zap.Any("details", businessErr.Details),
		zap.Int("http_status", statusCode))

	responseWithError(w, statusCode, businessErr.Code, businessErr.Message)
	return true
}

// handleServiceError отвечает клиенту по ошибке сервиса: бизнес-ошибки по коду, остальное 500
func handleServiceError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	if handleBusinessError(w, r, err) {
		return
	}

	logger.FromContext(r.Context()).Error("HTTP: Ошибка Service",
		zap.Error(err),
		zap.String("operation", operation),
		zap.String("client_ip", r.RemoteAddr))

	responseWithError(w, http.StatusInternalServerError, codeInternal, "internal server error")
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeValidation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func validationFailed(w http.ResponseWriter, r *http.Request, field, reason string) {
	logger.FromContext(r.Context()).Warn("HTTP: Ошибка валидации",
		zap.String("field", field),
		zap.String("error", reason),
		zap.String("client_ip", r.RemoteAddr))

	handleBusinessError(w, r, service.NewValidationError(field, reason))
}
