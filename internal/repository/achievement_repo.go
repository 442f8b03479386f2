package repository

import (
	"context"
	"errors"

	"defi_quest/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const achievementColumns = `id, title, description, type, rarity, icon,
	xp_reward, criteria_type, criteria_target, is_active`

type AchievementRepository struct {
	db *pgxpool.Pool
}

func NewAchievementRepository(db *pgxpool.Pool) *AchievementRepository {
	return &AchievementRepository{db: db}
}

func scanAchievement(row pgx.Row) (*domain.Achievement, error) {
	var a domain.Achievement
	err := row.Scan(&a.ID, &a.Title, &a.Description, &a.Type, &a.Rarity, &a.Icon,
		&a.XPReward, &a.CriteriaType, &a.CriteriaTarget, &a.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// GetActive возвращает все активные достижения
func (r *AchievementRepository) GetActive(ctx context.Context) ([]*domain.Achievement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+achievementColumns+` FROM achievements WHERE is_active = true ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Achievement
	for rows.Next() {
		a, err := scanAchievement(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

// GetUnlocked возвращает разблокированные пользователем достижения
func (r *AchievementRepository) GetUnlocked(ctx context.Context, userID int64) ([]*domain.Achievement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.title, a.description, a.type, a.rarity, a.icon,
				a.xp_reward, a.criteria_type, a.criteria_target, a.is_active
		 FROM achievements a
		 JOIN user_achievements ua ON ua.achievement_id = a.id
		 WHERE ua.user_id = $1
		 ORDER BY ua.unlocked_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Achievement
	for rows.Next() {
		a, err := scanAchievement(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

// GetUnlockedIDs возвращает множество ID разблокированных достижений
func (r *AchievementRepository) GetUnlockedIDs(ctx context.Context, userID int64) (map[int64]bool, error) {
	rows, err := r.db.Query(ctx,
		`SELECT achievement_id FROM user_achievements WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	unlocked := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		unlocked[id] = true
	}
	return unlocked, rows.Err()
}
