package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/qssun/attendance-backend-go/internal/config"
	"github.com/qssun/attendance-backend-go/internal/handler/http/middleware"
	"github.com/qssun/attendance-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth         AuthHandler
	User         UserHandler
	Attendance   AttendanceHandler
	Location     LocationHandler
	Request      RequestHandler
	Notification NotificationHandler
	Settings     SettingsHandler
	Report       ReportHandler
	Chat         ChatHandler
	Device       DeviceHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
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

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Route("/oauth", func(r chi.Router) {
				r.Get("/google", h.Auth.LoginWithGoogle)
				r.Route("/callback", func(r chi.Router) {
					r.Get("/google", h.Auth.OAuthCallbackGoogle)
				})
			})
		})

		// SSE stream authenticates through its own short-lived token,
		// EventSource cannot set an Authorization header.
		r.Get("/notifications/stream", h.Notification.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", h.User.Me)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.User.List)
					r.Post("/", h.User.Create)
					r.Get("/{id}", h.User.Get)
					r.Put("/{id}", h.User.Update)
					r.Delete("/{id}", h.User.Delete)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", h.Attendance.CheckIn)
				r.Post("/check-out", h.Attendance.CheckOut)
				r.Get("/today", h.Attendance.Today)
				r.Get("/me", h.Attendance.ListMine)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Attendance.List)
				})
			})

			r.Route("/locations", func(r chi.Router) {
				r.Get("/", h.Location.List)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Location.Create)
					r.Put("/{id}", h.Location.Update)
					r.Delete("/{id}", h.Location.Delete)
				})
			})

			r.Route("/requests", func(r chi.Router) {
				r.Post("/", h.Request.Submit)
				r.Get("/me", h.Request.ListMine)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Request.List)
					r.Post("/{id}/decide", h.Request.Decide)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Get("/unread-count", h.Notification.UnreadCount)
				r.Post("/mark-read", h.Notification.MarkAsRead)
				r.Post("/mark-all-read", h.Notification.MarkAllAsRead)
				r.Get("/sse-token", h.Notification.GetSSEToken)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Notification.Send)
				})
			})

			r.Route("/chat", func(r chi.Router) {
				r.Post("/", h.Chat.Send)
				r.Get("/unread-count", h.Chat.UnreadCount)
				r.Get("/{userId}", h.Chat.Conversation)
				r.Post("/{userId}/read", h.Chat.MarkRead)
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/settings", func(r chi.Router) {
					r.Get("/", h.Settings.Get)
					r.Put("/", h.Settings.Update)
					r.Post("/test-fingerprint", h.Settings.TestFingerprint)
				})

				r.Route("/reports", func(r chi.Router) {
					r.Post("/", h.Report.Generate)
					r.Get("/monthly", h.Report.Monthly)
					r.Route("/archive", func(r chi.Router) {
						r.Get("/", h.Report.ListArchived)
						r.Get("/{period}", h.Report.GetArchived)
					})
				})

				r.Route("/device", func(r chi.Router) {
					r.Post("/events", h.Device.IngestEvents)
					r.Get("/employees", h.Device.Employees)
					r.Get("/departments", h.Device.Departments)
					r.Get("/areas", h.Device.Areas)
					r.Get("/positions", h.Device.Positions)
				})
			})
		})
	})
	return r
}
