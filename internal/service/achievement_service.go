package service

import (
	"context"
	"errors"

	"defi_quest/internal/domain"
	"defi_quest/internal/progression"
	"defi_quest/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AchievementService проверяет критерии и разблокирует достижения.
// Разблокировка идемпотентна: уникальный индекс (user_id, achievement_id)
// плюс ON CONFLICT DO NOTHING гарантируют, что XP не начислится дважды.
type AchievementService struct {
	db              *pgxpool.Pool
	achievementRepo *repository.AchievementRepository
	userRepo        *repository.UserRepository
}

func NewAchievementService(db *pgxpool.Pool) *AchievementService {
	return &AchievementService{
		db:              db,
		achievementRepo: repository.NewAchievementRepository(db),
		userRepo:        repository.NewUserRepository(db),
	}
}

// ListAll возвращает все активные достижения
func (s *AchievementService) ListAll(ctx context.Context) ([]*domain.Achievement, error) {
	return s.achievementRepo.GetActive(ctx)
}

// ListUnlocked возвращает достижения пользователя
func (s *AchievementService) ListUnlocked(ctx context.Context, userID int64) ([]*domain.Achievement, error) {
	return s.achievementRepo.GetUnlocked(ctx, userID)
}

// CheckAndUnlock прогоняет критерии по текущим агрегатам пользователя и
// разблокирует новые достижения, начисляя их XP ровно один раз. Возвращает
// только что разблокированные достижения; повторный вызов без изменения
// агрегатов вернёт пустой список.
func (s *AchievementService) CheckAndUnlock(ctx context.Context, userID int64) ([]*domain.Achievement, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	all, err := s.achievementRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	unlocked, err := s.achievementRepo.GetUnlockedIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	goalsCreated, _, err := s.userRepo.GoalCounts(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := progression.UserStats{
		TotalXP:        user.TotalXP,
		CurrentStreak:  user.CurrentStreak,
		GoalsCreated:   goalsCreated,
		GoalsCompleted: user.GoalsCompleted,
	}

	rules := make([]progression.AchievementRule, 0, len(all))
	byID := make(map[int64]*domain.Achievement, len(all))
	for _, a := range all {
		rules = append(rules, a.Rule())
		byID[a.ID] = a
	}

	newlyIDs := progression.CheckAchievements(stats, rules, unlocked)

	var newly []*domain.Achievement
	for _, id := range newlyIDs {
		achievement := byID[id]
		ok, err := s.unlock(ctx, userID, achievement)
		if err != nil {
			return nil, err
		}
		if ok {
			newly = append(newly, achievement)
		}
	}
	return newly, nil
}

// unlock вставляет запись разблокировки и начисляет XP одной транзакцией.
// Возвращает false, если достижение уже было разблокировано (гонка двух
// запросов): тогда XP не трогается.
func (s *AchievementService) unlock(ctx context.Context, userID int64, a *domain.Achievement) (bool, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx,
		`INSERT INTO user_achievements (user_id, achievement_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, achievement_id) DO NOTHING`,
		userID, a.ID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	if _, _, err := awardXP(ctx, tx, userID, a.XPReward); err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}
