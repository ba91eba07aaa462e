package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dukerupert/questboard/internal/handler"
	"github.com/dukerupert/questboard/internal/household"
	"github.com/dukerupert/questboard/internal/middleware"
	"github.com/dukerupert/questboard/internal/store"
	ws "github.com/dukerupert/questboard/internal/websocket"
)

type Server struct {
	db       *sql.DB
	hub      *ws.Hub
	state    *household.State
	questH   *handler.QuestHandler
	rewardH  *handler.RewardHandler
	goalH    *handler.GoalHandler
	statsH   *handler.StatsHandler
	adminH   *handler.AdminHandler
	catalogH *handler.CatalogHandler
	backupH  *handler.BackupHandler
	logger   *slog.Logger
}

// New wires the HTTP handlers around an opened household state. The hub must
// be the one the state notifies.
func New(db *sql.DB, state *household.State, hub *ws.Hub, backupDir string, logger *slog.Logger) *Server {
	return &Server{
		db:       db,
		hub:      hub,
		state:    state,
		questH:   handler.NewQuestHandler(state, logger.With("component", "quest")),
		rewardH:  handler.NewRewardHandler(state, logger.With("component", "reward")),
		goalH:    handler.NewGoalHandler(state, logger.With("component", "goal")),
		statsH:   handler.NewStatsHandler(state, logger.With("component", "stats")),
		adminH:   handler.NewAdminHandler(state, logger.With("component", "admin")),
		catalogH: handler.NewCatalogHandler(state, logger.With("component", "catalog")),
		backupH:  handler.NewBackupHandler(state, store.NewBackupStore(db), backupDir, logger.With("component", "backup")),
		logger:   logger,
	}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)

	// Participant routes
	mux.HandleFunc("GET /api/dashboard", s.questH.Dashboard)
	mux.HandleFunc("GET /api/participants/{name}/quest", s.questH.Get)
	mux.HandleFunc("PUT /api/participants/{name}/quest", s.questH.Save)
	mux.HandleFunc("GET /api/participants/{name}/store", s.rewardH.Store)
	mux.HandleFunc("POST /api/participants/{name}/redeem", s.rewardH.Redeem)
	mux.HandleFunc("GET /api/stats", s.statsH.List)
	mux.HandleFunc("GET /api/goals", s.goalH.Board)
	mux.HandleFunc("POST /api/admin/verify", s.adminH.Verify)

	// Administrative routes, behind the access code
	admin := middleware.RequireAccessCode(s.state, s.logger.With("component", "auth"))
	mux.Handle("POST /api/participants/{name}/goals", admin(http.HandlerFunc(s.goalH.Approve)))
	mux.Handle("POST /api/participants/{name}/credits", admin(http.HandlerFunc(s.adminH.AdjustCredits)))
	mux.Handle("PUT /api/admin/override", admin(http.HandlerFunc(s.adminH.Override)))
	mux.Handle("GET /api/admin/schedule", admin(http.HandlerFunc(s.adminH.GetSchedule)))
	mux.Handle("PUT /api/admin/schedule", admin(http.HandlerFunc(s.adminH.UpdateSchedule)))
	mux.Handle("PUT /api/admin/access-code", admin(http.HandlerFunc(s.adminH.ChangeAccessCode)))
	mux.Handle("POST /api/admin/reset", admin(http.HandlerFunc(s.adminH.Reset)))

	mux.Handle("GET /api/admin/catalog", admin(http.HandlerFunc(s.catalogH.Get)))
	mux.Handle("POST /api/admin/catalog/reload", admin(http.HandlerFunc(s.catalogH.Reload)))
	mux.Handle("PUT /api/admin/catalog/tasks", admin(http.HandlerFunc(s.catalogH.UpdateTasks)))
	mux.Handle("PUT /api/admin/catalog/food", admin(http.HandlerFunc(s.catalogH.UpdateFood)))
	mux.Handle("PUT /api/admin/catalog/rewards", admin(http.HandlerFunc(s.catalogH.UpdateRewards)))
	mux.Handle("PUT /api/admin/catalog/goals", admin(http.HandlerFunc(s.catalogH.UpdateGoals)))

	mux.Handle("GET /api/admin/backups", admin(http.HandlerFunc(s.backupH.List)))
	mux.Handle("POST /api/admin/backups", admin(http.HandlerFunc(s.backupH.Create)))
	mux.Handle("POST /api/admin/backups/{id}/restore", admin(http.HandlerFunc(s.backupH.Restore)))

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.greeting))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

// greeting tells a newly connected board which mode is showing.
func (s *Server) greeting() ws.Message {
	d := s.state.Dashboard()
	return ws.NewMessage("mode", "current", map[string]any{
		"effective": d.Mode,
		"computed":  d.Computed,
		"override":  d.Override,
	})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if err := s.db.PingContext(r.Context()); err != nil {
		s.logger.Warn("health check failed", "error", err)
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{
		"status":  status,
		"mode":    s.state.Mode(),
		"clients": s.hub.ClientCount(),
	})
}
