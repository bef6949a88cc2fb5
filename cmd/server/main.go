package main

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/medtrabalho/cotador/internal/config"
	"github.com/medtrabalho/cotador/internal/db"
	"github.com/medtrabalho/cotador/internal/logging"
	"github.com/medtrabalho/cotador/internal/middleware"
	"github.com/medtrabalho/cotador/internal/migrations"
	"github.com/medtrabalho/cotador/internal/seed"
)

type server struct {
	db        *sql.DB
	log       *zap.Logger
	jwtSecret []byte
}

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, cfg.IsDev())
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer database.Close()

	if err := migrations.Up(database, "migrations"); err != nil {
		logger.Fatal("failed to run database migrations", zap.Error(err))
	}

	stats, err := seed.Run(database, seed.Config{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
	})
	if err != nil {
		logger.Fatal("failed to run startup seed", zap.Error(err))
	}
	logger.Info("startup seed finished", zap.Int("inserts", stats.Inserts))

	srv := &server{db: database, log: logger, jwtSecret: []byte(cfg.JWTSecret)}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/api/health", srv.handleHealth)
	r.Post("/api/auth/register", srv.handleRegister)
	r.With(middleware.RateLimit(rate.Every(12*time.Second), 5)).
		Post("/api/auth/login", srv.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret))

		r.Get("/api/auth/me", srv.handleMe)

		r.Get("/api/reference/tiers", srv.handleReferenceTiers)
		r.Get("/api/reference/units", srv.handleReferenceUnits)
		r.Get("/api/reference/exams", srv.handleReferenceExams)

		r.With(middleware.RequireCapability(database, middleware.CapStandard)).
			Post("/api/quotes/standard", srv.handleQuoteStandard)
		r.With(middleware.RequireCapability(database, middleware.CapInCompany)).
			Post("/api/quotes/incompany", srv.handleQuoteInCompany)
		r.With(middleware.RequireCapability(database, middleware.CapCredenciador)).
			Post("/api/quotes/credenciador", srv.handleQuoteCredenciador)
		r.With(middleware.RequireCapability(database, middleware.CapPsychosocial)).
			Post("/api/quotes/psychosocial", srv.handleQuotePsychosocial)

		r.Post("/api/history", srv.handleHistorySave)
		r.Get("/api/history", srv.handleHistoryList)
		r.Get("/api/history/{id}", srv.handleHistoryDetail)
		r.Delete("/api/history/{id}", srv.handleHistoryDelete)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Get("/api/admin/settings", srv.handleSettingsGet)
			r.Put("/api/admin/settings", srv.handleSettingsUpdate)

			r.Get("/api/admin/users", srv.handleUsersList)
			r.Patch("/api/admin/users/{id}/approve", srv.handleUserApprove)
			r.Patch("/api/admin/users/{id}/access", srv.handleUserAccess)
			r.Delete("/api/admin/users/{id}", srv.handleUserDelete)
		})
	})

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(); err != nil {
		writeError(w, http.StatusServiceUnavailable, "banco de dados indisponível")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
