package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"defi_quest/internal/domain"
	"defi_quest/internal/progression"
	"defi_quest/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	minGoalDurationDays = 1
	maxGoalDurationDays = 365
)

// GoalService владеет жизненным циклом целей: создание с фиксацией награды,
// прогресс и однократное завершение с начислением XP.
type GoalService struct {
	db       *pgxpool.Pool
	goalRepo *repository.GoalRepository
}

func NewGoalService(db *pgxpool.Pool) *GoalService {
	return &GoalService{
		db:       db,
		goalRepo: repository.NewGoalRepository(db),
	}
}

// CreateGoalInput - данные для создания цели
type CreateGoalInput struct {
	Title        string               `json:"title"`
	Description  *string              `json:"description,omitempty"`
	Type         progression.GoalType `json:"type"`
	DurationDays int                  `json:"duration_days"`
	TargetAmount *float64             `json:"target_amount,omitempty"`
}

func (in *CreateGoalInput) validate() error {
	if len(strings.TrimSpace(in.Title)) < 3 {
		return fmt.Errorf("%w: title must be at least 3 characters", ErrInvalidInput)
	}
	switch in.Type {
	case progression.GoalHolding, progression.GoalDCA, progression.GoalStaking, progression.GoalTrading:
	default:
		return fmt.Errorf("%w: unknown goal type %q", ErrInvalidInput, in.Type)
	}
	if in.DurationDays < minGoalDurationDays || in.DurationDays > maxGoalDurationDays {
		return fmt.Errorf("%w: duration must be between %d and %d days", ErrInvalidInput, minGoalDurationDays, maxGoalDurationDays)
	}
	if in.Description != nil && len(*in.Description) > 500 {
		return fmt.Errorf("%w: description must be less than 500 characters", ErrInvalidInput)
	}
	if in.TargetAmount != nil && *in.TargetAmount < 0 {
		return fmt.Errorf("%w: target amount must be non-negative", ErrInvalidInput)
	}
	return nil
}

// CreateGoal создаёт цель: сложность и награда вычисляются один раз при
// создании и дальше не пересчитываются. Счётчик созданных целей и
// consistency score обновляются той же транзакцией.
func (s *GoalService) CreateGoal(ctx context.Context, userID int64, in CreateGoalInput) (*domain.Goal, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	difficulty := progression.ClassifyDifficulty(in.Type, in.DurationDays, in.TargetAmount)
	xpReward := progression.GoalXPReward(difficulty, in.DurationDays)

	now := time.Now()
	g := &domain.Goal{
		UserID:       userID,
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		Type:         in.Type,
		StartDate:    now,
		EndDate:      now.AddDate(0, 0, in.DurationDays),
		TargetAmount: in.TargetAmount,
		XPReward:     xpReward,
		Difficulty:   difficulty,
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx,
		`INSERT INTO goals (user_id, title, description, type, start_date, end_date, target_amount, xp_reward, difficulty)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, progress, completed, created_at`,
		g.UserID, g.Title, g.Description, g.Type, g.StartDate, g.EndDate,
		g.TargetAmount, g.XPReward, g.Difficulty,
	).Scan(&g.ID, &g.Progress, &g.Completed, &g.CreatedAt)
	if err != nil {
		return nil, err
	}

	var created, completed int
	err = tx.QueryRow(ctx,
		`UPDATE users SET goals_created = goals_created + 1 WHERE id = $1
		 RETURNING goals_created, goals_completed`, userID,
	).Scan(&created, &completed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	score := progression.ConsistencyScore(completed, created)
	if _, err := tx.Exec(ctx,
		`UPDATE users SET consistency_score = $1 WHERE id = $2`, score, userID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return g, nil
}

// ListGoals возвращает цели пользователя
func (s *GoalService) ListGoals(ctx context.Context, userID int64) ([]*domain.Goal, error) {
	return s.goalRepo.GetByUser(ctx, userID)
}

// UpdateProgress выставляет прогресс цели, ограничивая его [0,100].
// Прогресс 100 завершает цель со всеми начислениями.
func (s *GoalService) UpdateProgress(ctx context.Context, userID, goalID int64, progress int) (*domain.Goal, error) {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	g, err := s.goalRepo.GetByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	if g.UserID != userID {
		return nil, ErrForbidden
	}
	if g.Completed {
		return nil, ErrAlreadyCompleted
	}

	if progress >= 100 {
		completed, _, err := s.CompleteGoal(ctx, userID, goalID)
		return completed, err
	}

	return s.goalRepo.UpdateProgress(ctx, goalID, progress)
}

// CompleteGoal завершает цель ровно один раз: защёлка completed, начисление
// xp_reward, goals_completed, consistency score и streak обновляются одной
// транзакцией (atomic read-modify-write). Повторное завершение - no-op с
// ErrAlreadyCompleted, XP не начисляется дважды.
func (s *GoalService) CompleteGoal(ctx context.Context, userID, goalID int64) (*domain.Goal, int, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := time.Now()
	var g domain.Goal
	err = tx.QueryRow(ctx,
		`UPDATE goals SET completed = true, progress = 100, completed_at = $1
		 WHERE id = $2 AND user_id = $3 AND completed = false
		 RETURNING id, user_id, title, description, type, start_date, end_date,
				   target_amount, progress, xp_reward, completed, difficulty, created_at, completed_at`,
		now, goalID, userID,
	).Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.Type, &g.StartDate, &g.EndDate,
		&g.TargetAmount, &g.Progress, &g.XPReward, &g.Completed, &g.Difficulty,
		&g.CreatedAt, &g.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// либо цели нет, либо защёлка уже сработала
			existing, repoErr := s.goalRepo.GetByID(ctx, goalID)
			if repoErr != nil || existing.UserID != userID {
				return nil, 0, ErrGoalNotFound
			}
			return nil, 0, ErrAlreadyCompleted
		}
		return nil, 0, err
	}

	newTotal, _, err := awardXP(ctx, tx, userID, g.XPReward)
	if err != nil {
		return nil, 0, err
	}

	var created, completed int
	err = tx.QueryRow(ctx,
		`UPDATE users SET goals_completed = goals_completed + 1 WHERE id = $1
		 RETURNING goals_created, goals_completed`, userID,
	).Scan(&created, &completed)
	if err != nil {
		return nil, 0, err
	}

	score := progression.ConsistencyScore(completed, created)
	if _, err := tx.Exec(ctx,
		`UPDATE users SET consistency_score = $1 WHERE id = $2`, score, userID); err != nil {
		return nil, 0, err
	}

	if err := touchStreak(ctx, tx, userID, now); err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, err
	}
	return &g, newTotal, nil
}
