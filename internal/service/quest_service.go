package service

import (
	"context"
	"errors"
	"time"

	"defi_quest/internal/domain"
	"defi_quest/internal/progression"
	"defi_quest/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// QuestService ведёт прогресс по квестам: ленивое создание записей на период,
// инкременты с защёлкой completed и атомарным начислением XP.
type QuestService struct {
	db        *pgxpool.Pool
	questRepo *repository.QuestRepository
}

func NewQuestService(db *pgxpool.Pool) *QuestService {
	return &QuestService{
		db:        db,
		questRepo: repository.NewQuestRepository(db),
	}
}

// ListActive возвращает активные шаблоны квестов
func (s *QuestService) ListActive(ctx context.Context) ([]*domain.Quest, error) {
	return s.questRepo.GetActive(ctx)
}

// ListWithProgress возвращает квесты с прогрессом пользователя за текущий
// период, лениво создавая недостающие записи (как и хранилище оригинала).
func (s *QuestService) ListWithProgress(ctx context.Context, userID int64) ([]*domain.UserQuestWithDetails, error) {
	quests, err := s.questRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for _, q := range quests {
		periodStart := repository.PeriodStart(q.QuestType, now)
		if _, err := s.questRepo.GetOrCreateUserQuest(ctx, userID, q.ID, periodStart); err != nil {
			return nil, err
		}
	}

	return s.questRepo.GetUserQuests(ctx, userID,
		repository.PeriodStart(domain.QuestTypeDaily, now),
		repository.PeriodStart(domain.QuestTypeWeekly, now))
}

// QuestResult - итог изменения прогресса квеста
type QuestResult struct {
	UserQuest  *domain.UserQuest `json:"user_quest"`
	Quest      *domain.Quest     `json:"quest"`
	XPAwarded  int               `json:"xp_awarded"`
	NewTotalXP int               `json:"new_total_xp,omitempty"`
}

// IncrementProgress прибавляет к прогрессу квеста, ограничивая его target.
// Достижение target завершает квест с начислением награды.
func (s *QuestService) IncrementProgress(ctx context.Context, userID, questID int64, increment int) (*QuestResult, error) {
	if increment <= 0 {
		return nil, ErrInvalidInput
	}
	return s.progress(ctx, userID, questID, increment, false)
}

// CompleteQuest сразу доводит квест до target и начисляет награду
func (s *QuestService) CompleteQuest(ctx context.Context, userID, questID int64) (*QuestResult, error) {
	return s.progress(ctx, userID, questID, 0, true)
}

func (s *QuestService) progress(ctx context.Context, userID, questID int64, increment int, forceComplete bool) (*QuestResult, error) {
	quest, err := s.questRepo.GetByID(ctx, questID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuestNotFound
		}
		return nil, err
	}
	if !quest.IsActive {
		return nil, ErrQuestNotFound
	}

	now := time.Now()
	periodStart := repository.PeriodStart(quest.QuestType, now)
	uq, err := s.questRepo.GetOrCreateUserQuest(ctx, userID, quest.ID, periodStart)
	if err != nil {
		return nil, err
	}
	if uq.Completed {
		return nil, ErrAlreadyCompleted
	}

	newProgress := uq.Progress + increment
	if forceComplete || newProgress >= quest.Target {
		newProgress = quest.Target
	}

	if newProgress < quest.Target {
		uq.Progress = newProgress
		if err := s.questRepo.UpdateProgress(ctx, uq); err != nil {
			return nil, err
		}
		return &QuestResult{UserQuest: uq, Quest: quest}, nil
	}

	// Завершение: защёлка и начисление XP одной транзакцией
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx,
		`UPDATE user_quests SET progress = $1, completed = true, completed_at = $2
		 WHERE id = $3 AND completed = false
		 RETURNING id`,
		quest.Target, now, uq.ID,
	).Scan(&uq.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAlreadyCompleted
		}
		return nil, err
	}
	uq.Progress = quest.Target
	uq.Completed = true
	uq.CompletedAt = &now

	// Daily-квесты получают streak-бонус, weekly - плоскую награду
	award := quest.XPReward
	if quest.QuestType == domain.QuestTypeDaily {
		var streak int
		if err := tx.QueryRow(ctx,
			`SELECT current_streak FROM users WHERE id = $1`, userID).Scan(&streak); err != nil {
			return nil, err
		}
		award = progression.StreakBonus(quest.XPReward, streak)
	}

	newTotal, _, err := awardXP(ctx, tx, userID, award)
	if err != nil {
		return nil, err
	}

	if err := touchStreak(ctx, tx, userID, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &QuestResult{
		UserQuest:  uq,
		Quest:      quest,
		XPAwarded:  award,
		NewTotalXP: newTotal,
	}, nil
}
