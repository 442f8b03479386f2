package repository

import (
	"context"
	"errors"

	"defi_quest/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const goalColumns = `id, user_id, title, description, type, start_date, end_date,
	target_amount, progress, xp_reward, completed, difficulty, created_at, completed_at`

type GoalRepository struct {
	db *pgxpool.Pool
}

func NewGoalRepository(db *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{db: db}
}

func scanGoal(row pgx.Row) (*domain.Goal, error) {
	var g domain.Goal
	err := row.Scan(
		&g.ID, &g.UserID, &g.Title, &g.Description, &g.Type, &g.StartDate, &g.EndDate,
		&g.TargetAmount, &g.Progress, &g.XPReward, &g.Completed, &g.Difficulty,
		&g.CreatedAt, &g.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *GoalRepository) GetByID(ctx context.Context, id int64) (*domain.Goal, error) {
	return scanGoal(r.db.QueryRow(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE id = $1`, id))
}

// GetByUser возвращает все цели пользователя, активные первыми
func (r *GoalRepository) GetByUser(ctx context.Context, userID int64) ([]*domain.Goal, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+goalColumns+` FROM goals
		 WHERE user_id = $1
		 ORDER BY completed, created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, g)
	}
	return res, rows.Err()
}

// UpdateProgress выставляет прогресс активной цели (уже ограниченный [0,100]).
// Завершённые цели неизменяемы.
func (r *GoalRepository) UpdateProgress(ctx context.Context, id int64, progress int) (*domain.Goal, error) {
	return scanGoal(r.db.QueryRow(ctx,
		`UPDATE goals SET progress = $1
		 WHERE id = $2 AND completed = false
		 RETURNING `+goalColumns, progress, id))
}
