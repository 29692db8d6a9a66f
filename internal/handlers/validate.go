package handlers

import (
	"mime"
	"net/http"
	"strings"
	"taskFileTracker/internal/logger"

	"go.uber.org/zap"
)

const (
	contentTypeJSON      = "application/json"
	contentTypeMultipart = "multipart/form-data"
)

func checkContentType(r *http.Request, target string) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return false
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == target
}

func unsupportedMediaType(w http.ResponseWriter, r *http.Request, expected ...string) {
	logger.FromContext(r.Context()).Warn("HTTP: Неверный тип контента",
		zap.Strings("expected", expected),
		zap.String("received", r.Header.Get("Content-Type")),
		zap.String("client_ip", r.RemoteAddr))

	responseWithError(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE",
		"Content-Type must be one of: "+strings.Join(expected, ", "))
}
