package repository

import (
	"context"
	"errors"

	"defi_quest/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrPartnerExists = errors.New("partner request already exists")

type PartnerRepository struct {
	db *pgxpool.Pool
}

func NewPartnerRepository(db *pgxpool.Pool) *PartnerRepository {
	return &PartnerRepository{db: db}
}

// Create создаёт заявку на партнёрство в статусе pending
func (r *PartnerRepository) Create(ctx context.Context, p *domain.AccountabilityPartner) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO accountability_partners (user_id, partner_id)
		 VALUES ($1, $2)
		 RETURNING id, status, created_at`,
		p.UserID, p.PartnerID,
	).Scan(&p.ID, &p.Status, &p.CreatedAt)
	if err != nil && isUniqueViolation(err) {
		return ErrPartnerExists
	}
	return err
}

// Accept переводит заявку pending -> accepted; принять может только адресат
func (r *PartnerRepository) Accept(ctx context.Context, id, partnerID int64) (*domain.AccountabilityPartner, error) {
	var p domain.AccountabilityPartner
	err := r.db.QueryRow(ctx,
		`UPDATE accountability_partners
		 SET status = 'accepted', accepted_at = now()
		 WHERE id = $1 AND partner_id = $2 AND status = 'pending'
		 RETURNING id, user_id, partner_id, status, created_at, accepted_at`,
		id, partnerID,
	).Scan(&p.ID, &p.UserID, &p.PartnerID, &p.Status, &p.CreatedAt, &p.AcceptedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByUser возвращает партнёрства, где пользователь - инициатор или адресат
func (r *PartnerRepository) GetByUser(ctx context.Context, userID int64) ([]*domain.AccountabilityPartner, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, partner_id, status, created_at, accepted_at
		 FROM accountability_partners
		 WHERE user_id = $1 OR partner_id = $1
		 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.AccountabilityPartner
	for rows.Next() {
		var p domain.AccountabilityPartner
		if err := rows.Scan(&p.ID, &p.UserID, &p.PartnerID, &p.Status,
			&p.CreatedAt, &p.AcceptedAt); err != nil {
			return nil, err
		}
		res = append(res, &p)
	}
	return res, rows.Err()
}
