package repository

import (
	"context"
	"errors"

	"defi_quest/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SocialRepository struct {
	db *pgxpool.Pool
}

func NewSocialRepository(db *pgxpool.Pool) *SocialRepository {
	return &SocialRepository{db: db}
}

// CreatePost сохраняет публикацию со счётчиками в нуле
func (r *SocialRepository) CreatePost(ctx context.Context, p *domain.SocialPost) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO social_posts (user_id, content, type)
		 VALUES ($1, $2, $3)
		 RETURNING id, likes, comments, shares, created_at`,
		p.UserID, p.Content, p.Type,
	).Scan(&p.ID, &p.Likes, &p.Comments, &p.Shares, &p.CreatedAt)
}

// GetFeed возвращает ленту с авторами, новые первыми
func (r *SocialRepository) GetFeed(ctx context.Context, limit, offset int) ([]*domain.PostWithAuthor, error) {
	rows, err := r.db.Query(ctx,
		`SELECT p.id, p.user_id, p.content, p.type, p.likes, p.comments, p.shares, p.created_at,
				u.username, u.level
		 FROM social_posts p
		 JOIN users u ON u.id = p.user_id
		 ORDER BY p.created_at DESC
		 LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.PostWithAuthor
	for rows.Next() {
		var p domain.PostWithAuthor
		if err := rows.Scan(&p.ID, &p.UserID, &p.Content, &p.Type, &p.Likes,
			&p.Comments, &p.Shares, &p.CreatedAt, &p.Username, &p.Level); err != nil {
			return nil, err
		}
		res = append(res, &p)
	}
	return res, rows.Err()
}

// AddInteraction записывает взаимодействие и инкрементит счётчик поста
// одной транзакцией. Возвращает обновлённый пост.
func (r *SocialRepository) AddInteraction(ctx context.Context, in *domain.SocialInteraction) (*domain.SocialPost, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var counter string
	switch in.Type {
	case domain.InteractionLike:
		counter = "likes"
	case domain.InteractionComment:
		counter = "comments"
	case domain.InteractionShare:
		counter = "shares"
	default:
		return nil, errors.New("unknown interaction type")
	}

	var p domain.SocialPost
	err = tx.QueryRow(ctx,
		`UPDATE social_posts SET `+counter+` = `+counter+` + 1
		 WHERE id = $1
		 RETURNING id, user_id, content, type, likes, comments, shares, created_at`,
		in.PostID,
	).Scan(&p.ID, &p.UserID, &p.Content, &p.Type, &p.Likes, &p.Comments, &p.Shares, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO social_interactions (user_id, post_id, type, content)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		in.UserID, in.PostID, in.Type, in.Content,
	).Scan(&in.ID, &in.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &p, nil
}
