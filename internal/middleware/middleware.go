package middleware

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"sync"
	"taskFileTracker/internal/logger"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type contextKey string

const RequestIdKey contextKey = "request_id"

const RequestIdHeader = "X-Request-ID"

// RequestID выдаёт id запросу и кладёт в контекст логгер с этим id
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestId := r.Header.Get(RequestIdHeader)
		if requestId == "" {
			requestId = uuid.New().String()
		}
		w.Header().Set(RequestIdHeader, requestId)

		ctx := context.WithValue(r.Context(), RequestIdKey, requestId)
		ctx = logger.IntoContext(ctx, logger.Logger.With(zap.String("request_id", requestId)))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIdKey).(string); ok {
		return id
	}
	return ""
}

func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.HttpRequestInfo(r, "HTTP_IN: Начало запроса")

		metrics := httpsnoop.CaptureMetrics(next, w, r)

		logger.FromContext(r.Context()).Log(
			levelForStatus(metrics.Code),
			"HTTP_OUT: Завершение запроса",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", metrics.Code),
			zap.Int64("bytes_written", metrics.Written),
			zap.Duration("ms", metrics.Duration),
		)
	})
}

func levelForStatus(code int) zapcore.Level {
	switch {
	case code >= 500:
		return zapcore.ErrorLevel
	case code >= 400:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}

type clientInfo struct {
	count   int
	resetAt time.Time
}

// limiter - окно фиксированной длины на каждый ip,
// клиенты с истёкшим окном удаляются не реже раза в окно
type limiter struct {
	rpm       int
	window    time.Duration
	mtx       sync.Mutex
	clients   map[string]*clientInfo
	nextSweep time.Time
}

func newLimiter(rpm int, window time.Duration) *limiter {
	return &limiter{
		rpm:     rpm,
		window:  window,
		clients: make(map[string]*clientInfo),
	}
}

// allow учитывает запрос и возвращает остаток лимита и конец окна
func (l *limiter) allow(ip string, now time.Time) (int, time.Time, bool) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	if now.After(l.nextSweep) {
		l.sweep(now)
	}

	info, exists := l.clients[ip]
	if !exists || now.After(info.resetAt) {
		info = &clientInfo{resetAt: now.Add(l.window)}
		l.clients[ip] = info
	}

	if info.count >= l.rpm {
		return 0, info.resetAt, false
	}
	info.count++
	return l.rpm - info.count, info.resetAt, true
}

func (l *limiter) sweep(now time.Time) {
	for ip, info := range l.clients {
		if now.After(info.resetAt) {
			delete(l.clients, ip)
		}
	}
	l.nextSweep = now.Add(l.window)
}

// RateLimit ограничивает число запросов с одного ip за минуту, rpm <= 0 выключает лимит
func RateLimit(rpm int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rpm <= 0 {
			return next
		}
		lim := newLimiter(rpm, time.Minute)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := getIp(r)
			now := time.Now()

			remaining, resetAt, ok := lim.allow(ip, now)
			if !ok {
				retryAfter := int(resetAt.Sub(now).Seconds())
				logger.FromContext(r.Context()).Warn("HTTP: Превышен лимит запросов",
					zap.String("client_ip", ip),
					zap.Int("limit", rpm))

				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]any{
					"error":       "RATE_LIMIT_EXCEEDED",
					"detail":      "Too many requests, try again later",
					"retry_after": retryAfter,
					"request_id":  GetRequestID(r.Context()),
				})
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rpm))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))
			next.ServeHTTP(w, r)
		})
	}
}

func getIp(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
