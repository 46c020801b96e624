package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/staffing-backend-go/internal/config"
	"github.com/cmlabs-hris/staffing-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/staffing-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/staffing-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	app config.AppConfig,
	JWTService jwt.Service,
	recommendationHandler RecommendationHandler,
	notificationHandler NotificationHandler,
	settingHandler NotificationSettingHandler,
	monitorHandler MonitorHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(app.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "staffing-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", app.Env),
	)

	requestLevel := slog.LevelDebug
	if app.Env == "production" {
		requestLevel = slog.LevelInfo
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", monitorTokenHeader},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  requestLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Token-guarded trigger for external schedulers
		r.Post("/monitor/run", monitorHandler.Run)

		// SSE authenticates through its own query token
		r.Get("/notifications/stream", notificationHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Get("/unread-count", notificationHandler.UnreadCount)
				r.Post("/read", notificationHandler.MarkAsRead)
				r.Post("/read-all", notificationHandler.MarkAllAsRead)
				r.Post("/sse-token", notificationHandler.GetSSEToken)
				r.Delete("/{id}", notificationHandler.Delete)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireBusiness)
				r.Use(middleware.RequireManager)

				r.Route("/recommendations", func(r chi.Router) {
					r.Post("/", recommendationHandler.Recommend)
					r.Get("/weights", recommendationHandler.GetWeights)
					r.Put("/weights", recommendationHandler.UpdateWeights)
					r.Delete("/weights", recommendationHandler.ResetWeights)
				})

				r.Route("/notification-settings", func(r chi.Router) {
					r.Get("/", settingHandler.List)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireOwner)
						r.Put("/", settingHandler.Upsert)
						r.Put("/bulk", settingHandler.BulkUpsert)
					})
				})
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	return r
}
