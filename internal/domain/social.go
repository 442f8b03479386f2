package domain

import "time"

// PostType - тип публикации в ленте
type PostType string

const (
	PostAchievement PostType = "achievement"
	PostGoal        PostType = "goal"
	PostMilestone   PostType = "milestone"
	PostUpdate      PostType = "update"
)

// SocialPost - публикация пользователя; счётчики только растут
type SocialPost struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Content   string    `db:"content" json:"content"`
	Type      PostType  `db:"type" json:"type"`
	Likes     int       `db:"likes" json:"likes"`
	Comments  int       `db:"comments" json:"comments"`
	Shares    int       `db:"shares" json:"shares"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PostWithAuthor - публикация с данными автора (для ленты)
type PostWithAuthor struct {
	SocialPost
	Username string `json:"username"`
	Level    int    `json:"level"`
}

// InteractionType - тип взаимодействия с публикацией
type InteractionType string

const (
	InteractionLike    InteractionType = "like"
	InteractionComment InteractionType = "comment"
	InteractionShare   InteractionType = "share"
)

// SocialInteraction - лайк/комментарий/репост
type SocialInteraction struct {
	ID        int64           `db:"id" json:"id"`
	UserID    int64           `db:"user_id" json:"user_id"`
	PostID    int64           `db:"post_id" json:"post_id"`
	Type      InteractionType `db:"type" json:"type"`
	Content   *string         `db:"content" json:"content,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// PartnerStatus - статус заявки на партнёрство
type PartnerStatus string

const (
	PartnerPending  PartnerStatus = "pending"
	PartnerAccepted PartnerStatus = "accepted"
	PartnerDeclined PartnerStatus = "declined"
)

// AccountabilityPartner - связка двух пользователей, следящих за целями друг друга
type AccountabilityPartner struct {
	ID         int64         `db:"id" json:"id"`
	UserID     int64         `db:"user_id" json:"user_id"`
	PartnerID  int64         `db:"partner_id" json:"partner_id"`
	Status     PartnerStatus `db:"status" json:"status"`
	CreatedAt  time.Time     `db:"created_at" json:"created_at"`
	AcceptedAt *time.Time    `db:"accepted_at" json:"accepted_at,omitempty"`
}
