package portal

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/magabrotheeeer/mayukh-auth/docs" // swagger spec
	"github.com/magabrotheeeer/mayukh-auth/internal/config"
	"github.com/magabrotheeeer/mayukh-auth/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/mayukh-auth/internal/http/handlers/auth/signup"
	"github.com/magabrotheeeer/mayukh-auth/internal/http/handlers/health"
	"github.com/magabrotheeeer/mayukh-auth/internal/http/handlers/static"
	"github.com/magabrotheeeer/mayukh-auth/internal/http/metrics"
	"github.com/magabrotheeeer/mayukh-auth/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/mayukh-auth/internal/services/auth"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, authService *authservice.Service, collector *metrics.Collector) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.CORS(cfg.AllowedOrigin),
		collector.Middleware,
	)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", signup.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)
		r.Get("/health", health.New().ServeHTTP)
	})

	r.Handle("/metrics", collector.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)

	// Всё остальное отдаёт фронтенд.
	r.Get("/*", static.New(logger, cfg.StaticDir).ServeHTTP)
}
