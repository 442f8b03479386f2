package handlers

import (
	"defi_quest/internal/config"
	"defi_quest/internal/relayer"
	"defi_quest/internal/repository"
	"defi_quest/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	DB           *pgxpool.Pool
	WalletDomain string

	UserRepo    *repository.UserRepository
	SocialRepo  *repository.SocialRepository
	PartnerRepo *repository.PartnerRepository

	GoalService        *service.GoalService
	QuestService       *service.QuestService
	AchievementService *service.AchievementService
	ProofService       *service.ProofService
	LeaderboardService *service.LeaderboardService
}

func NewHandler(db *pgxpool.Pool, rdb *redis.Client, cfg *config.Config) *Handler {
	rc := relayer.NewClient(cfg.RelayerURL, cfg.RelayerTimeout)

	return &Handler{
		DB:           db,
		WalletDomain: cfg.WalletDomain,

		UserRepo:    repository.NewUserRepository(db),
		SocialRepo:  repository.NewSocialRepository(db),
		PartnerRepo: repository.NewPartnerRepository(db),

		GoalService:        service.NewGoalService(db),
		QuestService:       service.NewQuestService(db),
		AchievementService: service.NewAchievementService(db),
		ProofService:       service.NewProofService(db, rc),
		LeaderboardService: service.NewLeaderboardService(db, rdb, cfg.LeaderboardCacheTTL),
	}
}

// getUserID извлекает user_id из контекста Gin
func getUserID(c interface{ Get(any) (any, bool) }) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
