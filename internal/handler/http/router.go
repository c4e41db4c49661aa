package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/peoplepulse/perform-backend-go/internal/handler/http/middleware"
	"github.com/peoplepulse/perform-backend-go/internal/pkg/jwt"
)

type RouterConfig struct {
	Env         string
	FrontendURL string
}

func NewRouter(
	cfg RouterConfig,
	jwtService jwt.Service,
	kpiHandler KPIHandler,
	reviewHandler ReviewHandler,
	draftHandler DraftHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "peoplepulse-perform"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/kpis", func(r chi.Router) {
				r.Get("/", kpiHandler.List)
				r.Get("/{id}", kpiHandler.Get)
				r.Post("/{id}/acknowledge", kpiHandler.Acknowledge)
				r.Put("/{id}/items/{itemID}/status", kpiHandler.UpdateItemStatus)

				// Managers only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", kpiHandler.Set)
				})

				r.Route("/templates", func(r chi.Router) {
					r.Get("/", kpiHandler.ListTemplates)
					r.With(middleware.RequireManager).Post("/", kpiHandler.CreateTemplate)
				})
			})

			r.Route("/kpi-review", func(r chi.Router) {
				r.Get("/rating-options", reviewHandler.RatingOptions)
				r.Post("/validate/{kpiID}", reviewHandler.Validate)
				r.Post("/initiate/{kpiID}", reviewHandler.Initiate)
				r.Get("/{id}", reviewHandler.Get)
				r.Post("/{id}/manager-review", reviewHandler.SubmitManagerReview)
				r.Post("/{id}/confirm", reviewHandler.Confirm)
				r.Post("/{id}/reject", reviewHandler.Reject)

				// HR / owner only
				r.With(middleware.RequireOwner).Post("/{id}/resolve", reviewHandler.Resolve)
			})

			r.Route("/drafts", func(r chi.Router) {
				r.Get("/{key}", draftHandler.Get)
				r.Put("/{key}", draftHandler.Save)
				r.Delete("/{key}", draftHandler.Delete)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Post("/mark-read", notificationHandler.MarkAsRead)
			})
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})

	return r
}
