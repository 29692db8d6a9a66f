package app

import (
	"net/http"
	"taskFileTracker/internal/config"
	"taskFileTracker/internal/handlers"
	"taskFileTracker/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func NewRouter(
	cfg *config.Config,
	taskHandler *handlers.TaskHandler,
	fileHandler *handlers.TaskWithFileHandler,
	healthHandler *handlers.HealthHandler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIdHeader},
		ExposedHeaders: []string{middleware.RequestIdHeader},
		MaxAge:         300,
	}))
	if cfg.Server.RequestTimeout > 0 {
		r.Use(chimw.Timeout(cfg.Server.RequestTimeout))
	}
	r.Use(middleware.RateLimit(cfg.RateLimit.RequestsPerMinute))

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", taskHandler.GetTasks)  // GET /tasks/
		r.Post("/", taskHandler.PostTask) // POST /tasks/

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", taskHandler.GetTaskByID)       // GET /tasks/{id}
			r.Put("/", taskHandler.UpdateTaskByID)    // PUT /tasks/{id}
			r.Delete("/", taskHandler.DeleteTaskByID) // DELETE /tasks/{id}
		})
	})

	r.Route("/tasks_with_file", func(r chi.Router) {
		r.Get("/", fileHandler.GetTasks)  // GET /tasks_with_file/?title=&min_creation_date=
		r.Post("/", fileHandler.PostTask) // POST /tasks_with_file/

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", fileHandler.GetTaskByID)       // GET /tasks_with_file/{id}
			r.Put("/", fileHandler.UpdateTaskByID)    // PUT /tasks_with_file/{id}
			r.Delete("/", fileHandler.DeleteTaskByID) // DELETE /tasks_with_file/{id}
		})
	})

	r.Get("/health", healthHandler.HealthCheck)

	if cfg.Tracing.Enabled {
		return otelhttp.NewHandler(r, cfg.Tracing.ServiceName)
	}
	return r
}
