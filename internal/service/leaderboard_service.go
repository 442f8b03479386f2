package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"defi_quest/internal/logger"
	"defi_quest/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	redis "github.com/redis/go-redis/v9"
)

// LeaderboardService отдаёт топы по xp/streak/consistency. Горячие топы
// кешируются в Redis с коротким TTL; без Redis запросы идут напрямую в БД
// (fail-open, как и rate limiter).
type LeaderboardService struct {
	userRepo *repository.UserRepository
	redis    *redis.Client
	cacheTTL time.Duration
}

func NewLeaderboardService(db *pgxpool.Pool, rdb *redis.Client, cacheTTL time.Duration) *LeaderboardService {
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	return &LeaderboardService{
		userRepo: repository.NewUserRepository(db),
		redis:    rdb,
		cacheTTL: cacheTTL,
	}
}

func normalizeType(lbType string) string {
	switch lbType {
	case "streak", "consistency":
		return lbType
	default:
		return "xp"
	}
}

// GetTop возвращает первые limit записей лидерборда выбранного типа
func (s *LeaderboardService) GetTop(ctx context.Context, lbType string, limit int) ([]repository.LeaderboardEntry, error) {
	lbType = normalizeType(lbType)
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	key := fmt.Sprintf("lb:%s:%d", lbType, limit)

	if s.redis != nil {
		cached, err := s.redis.Get(ctx, key).Bytes()
		if err == nil {
			var entries []repository.LeaderboardEntry
			if json.Unmarshal(cached, &entries) == nil {
				return entries, nil
			}
		}
	}

	entries, err := s.userRepo.GetTop(ctx, lbType, limit)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(entries); err == nil {
			if err := s.redis.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
				logger.Warn("leaderboard cache write failed", "error", err)
			}
		}
	}

	return entries, nil
}

// GetRank возвращает место пользователя в лидерборде выбранного типа
func (s *LeaderboardService) GetRank(ctx context.Context, userID int64, lbType string) (int, error) {
	rank, err := s.userRepo.GetUserRank(ctx, userID, normalizeType(lbType))
	if err == repository.ErrNotFound {
		return 0, ErrUserNotFound
	}
	return rank, err
}
