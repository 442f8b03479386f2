package http

import (
	"defi_quest/internal/config"
	"defi_quest/internal/http/handlers"
	"defi_quest/internal/http/middleware"
	"defi_quest/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, rdb *redis.Client, cfg *config.Config, version string) {
	h := handlers.NewHandler(db, rdb, cfg)
	healthHandler := handlers.NewHealthHandler(db, rdb, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	// API v1 routes
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(cfg.APIRateLimit, cfg.APIRateWindow))
	registerAPIRoutes(v1, h, cfg)

	// WebSocket chat
	hub := ws.NewHub()
	r.GET("/ws/chat", ws.HandleWS(hub, h.UserRepo))
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler, cfg *config.Config) {
	// Auth (более жёсткий лимит, чем на остальном API)
	authRL := middleware.RedisRateLimit(cfg.AuthRateLimit, cfg.AuthRateWindow)
	api.POST("/auth/signup", authRL, h.Signup)
	api.POST("/auth/login", authRL, h.Login)
	api.POST("/auth/wallet", authRL, h.WalletConnect)

	// User profile
	api.GET("/me", middleware.JWT(), h.Me)
	api.GET("/users/:id", h.GetUser)

	// Goals
	api.GET("/goals", middleware.JWT(), h.ListGoals)
	api.POST("/goals", middleware.JWT(), h.CreateGoal)
	api.PATCH("/goals/:id/progress", middleware.JWT(), h.UpdateGoalProgress)
	api.POST("/goals/:id/complete", middleware.JWT(), h.CompleteGoal)

	// Quests
	api.GET("/quests", middleware.JWT(), h.ListQuests)
	api.PATCH("/quests/:id/progress", middleware.JWT(), h.QuestProgress)
	api.POST("/quests/:id/complete", middleware.JWT(), h.CompleteQuest)

	// Achievements
	api.GET("/achievements", h.ListAchievements)
	api.GET("/me/achievements", middleware.JWT(), h.ListMyAchievements)
	api.POST("/me/achievements/check", middleware.JWT(), h.CheckAchievements)

	// Leaderboard
	api.GET("/leaderboard", h.Leaderboard)
	api.GET("/leaderboard/rank", middleware.JWT(), h.MyRank)

	// ZK proofs
	api.POST("/proofs", middleware.JWT(), h.SubmitProof)
	api.GET("/proofs", middleware.JWT(), h.ListProofs)

	// Social feed
	api.GET("/feed", h.GetFeed)
	api.POST("/feed", middleware.JWT(), h.CreatePost)
	api.POST("/feed/:id/interact", middleware.JWT(), h.Interact)

	// Accountability partners
	api.GET("/partners", middleware.JWT(), h.ListPartners)
	api.POST("/partners", middleware.JWT(), h.RequestPartner)
	api.POST("/partners/:id/accept", middleware.JWT(), h.AcceptPartner)
}
