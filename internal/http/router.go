package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Anu1650/team-mange-sam/internal/handlers"
	"github.com/Anu1650/team-mange-sam/internal/models"
)

// RouterOptions はルーターの任意設定です
type RouterOptions struct {
	AllowedOrigins []string // CORSで許可するオリジン（空ならCORSミドルウェアなし）
	StaticDir      string   // フロントエンドの静的ファイル（空なら配信しない）
}

func NewRouter(h *handlers.APIHandler, wsHandler *handlers.WebSocketHandler, health *handlers.HealthHandler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)

	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/healthz", health.Healthz)
		r.Get("/roles", h.Roles)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.List(models.Users))
			r.Post("/", h.CreateUser())
			r.Put("/{id}", h.UpdateUser())
		})
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", h.List(models.Tasks))
			r.Post("/", h.CreateTask())
			r.Put("/{id}", h.UpdateTask())
			r.Delete("/{id}", h.DeleteTask)
		})
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", h.List(models.Projects))
			r.Post("/", h.CreateProject())
			r.Put("/{id}", h.UpdateProject())
			r.Post("/{id}/milestones", h.AddMilestone())
		})
		r.Route("/clients", func(r chi.Router) {
			r.Get("/", h.List(models.Clients))
			r.Post("/", h.CreateClient())
			r.Put("/{id}", h.UpdateClient())
		})
		r.Route("/approvals", func(r chi.Router) {
			r.Get("/", h.List(models.Approvals))
			r.Post("/", h.CreateApproval())
			r.Post("/{id}/respond", h.RespondApproval())
		})
		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", h.List(models.Expenses))
			r.Post("/", h.CreateExpense())
			r.Put("/{id}", h.UpdateExpense())
		})
		r.Get("/income", h.List(models.Incomes))
		r.Post("/income", h.CreateIncome())

		r.Route("/decisions", func(r chi.Router) {
			r.Get("/", h.List(models.Decisions))
			r.Post("/", h.CreateDecision())
			r.Post("/{id}/vote", h.Vote())
			r.Post("/{id}/comment", h.Comment())
		})
		r.Get("/messages", h.List(models.Messages))
		r.Post("/messages", h.PostMessage())
		r.Get("/announcements", h.List(models.Announcements))
		r.Post("/announcements", h.PostAnnouncement())

		r.Route("/meetings", func(r chi.Router) {
			r.Get("/", h.List(models.Meetings))
			r.Post("/", h.CreateMeeting())
			r.Put("/{id}", h.UpdateMeeting())
		})
		r.Get("/files", h.List(models.Files))
		r.Post("/files", h.UploadFile())

		r.Get("/reports/dashboard", h.Dashboard)
		r.Get("/reports/audit", h.Audit)
	})

	// WebSocketエンドポイント
	r.Get("/ws", wsHandler.HandleWebSocket)

	if opts.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(opts.StaticDir)))
	}

	return r
}
