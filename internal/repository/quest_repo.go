package repository

import (
	"context"
	"errors"
	"time"

	"defi_quest/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const questColumns = `id, title, description, quest_type, category, target,
	xp_reward, difficulty, is_active, created_at`

type QuestRepository struct {
	db *pgxpool.Pool
}

func NewQuestRepository(db *pgxpool.Pool) *QuestRepository {
	return &QuestRepository{db: db}
}

func scanQuest(row pgx.Row) (*domain.Quest, error) {
	var q domain.Quest
	err := row.Scan(&q.ID, &q.Title, &q.Description, &q.QuestType, &q.Category,
		&q.Target, &q.XPReward, &q.Difficulty, &q.IsActive, &q.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &q, nil
}

// GetActive возвращает все активные квесты
func (r *QuestRepository) GetActive(ctx context.Context) ([]*domain.Quest, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+questColumns+` FROM quests WHERE is_active = true ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Quest
	for rows.Next() {
		q, err := scanQuest(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, q)
	}
	return res, rows.Err()
}

func (r *QuestRepository) GetByID(ctx context.Context, id int64) (*domain.Quest, error) {
	return scanQuest(r.db.QueryRow(ctx,
		`SELECT `+questColumns+` FROM quests WHERE id = $1`, id))
}

// GetOrCreateUserQuest лениво создаёт запись прогресса на текущий период
func (r *QuestRepository) GetOrCreateUserQuest(ctx context.Context, userID, questID int64, periodStart time.Time) (*domain.UserQuest, error) {
	var uq domain.UserQuest

	err := r.db.QueryRow(ctx,
		`INSERT INTO user_quests (user_id, quest_id, period_start)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, quest_id, period_start) DO UPDATE SET user_id = EXCLUDED.user_id
		 RETURNING id, user_id, quest_id, progress, completed, completed_at, period_start, created_at`,
		userID, questID, periodStart,
	).Scan(&uq.ID, &uq.UserID, &uq.QuestID, &uq.Progress, &uq.Completed,
		&uq.CompletedAt, &uq.PeriodStart, &uq.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &uq, nil
}

// UpdateProgress сохраняет прогресс квеста
func (r *QuestRepository) UpdateProgress(ctx context.Context, uq *domain.UserQuest) error {
	_, err := r.db.Exec(ctx,
		`UPDATE user_quests
		 SET progress = $1, completed = $2, completed_at = $3
		 WHERE id = $4`,
		uq.Progress, uq.Completed, uq.CompletedAt, uq.ID)
	return err
}

// GetUserQuests возвращает прогресс пользователя по всем квестам текущего периода
func (r *QuestRepository) GetUserQuests(ctx context.Context, userID int64, dailyStart, weeklyStart time.Time) ([]*domain.UserQuestWithDetails, error) {
	rows, err := r.db.Query(ctx,
		`SELECT
			uq.id, uq.user_id, uq.quest_id, uq.progress, uq.completed, uq.completed_at,
			uq.period_start, uq.created_at,
			q.id, q.title, q.description, q.quest_type, q.category, q.target,
			q.xp_reward, q.difficulty, q.is_active, q.created_at
		 FROM user_quests uq
		 JOIN quests q ON uq.quest_id = q.id
		 WHERE uq.user_id = $1
		   AND q.is_active = true
		   AND ((q.quest_type = 'daily' AND uq.period_start = $2)
		     OR (q.quest_type = 'weekly' AND uq.period_start = $3))
		 ORDER BY uq.completed, q.id`,
		userID, dailyStart, weeklyStart)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.UserQuestWithDetails
	for rows.Next() {
		var d domain.UserQuestWithDetails
		err := rows.Scan(
			&d.ID, &d.UserID, &d.QuestID, &d.Progress, &d.Completed, &d.CompletedAt,
			&d.PeriodStart, &d.CreatedAt,
			&d.Quest.ID, &d.Quest.Title, &d.Quest.Description, &d.Quest.QuestType,
			&d.Quest.Category, &d.Quest.Target, &d.Quest.XPReward, &d.Quest.Difficulty,
			&d.Quest.IsActive, &d.Quest.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		res = append(res, &d)
	}
	return res, rows.Err()
}

// PeriodStart возвращает начало текущего периода для типа квеста:
// полночь для daily, понедельник для weekly.
func PeriodStart(questType domain.QuestType, now time.Time) time.Time {
	switch questType {
	case domain.QuestTypeWeekly:
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		return time.Date(now.Year(), now.Month(), now.Day()-weekday+1, 0, 0, 0, 0, now.Location())
	default:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}
}
