package exchange

import (
	"context"

	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Migrate() error {
	return r.db.AutoMigrate(&Exchange{})
}

func (r *Repo) Insert(ctx context.Context, e *Exchange) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// List returns exchanges in DESC id order (newest -> oldest), starting below beforeID when set.
func (r *Repo) List(ctx context.Context, limit int, beforeID uint64) ([]Exchange, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	q := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit)

	if beforeID > 0 {
		q = q.Where("id < ?", beforeID)
	}

	var out []Exchange
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) GetByMessageID(ctx context.Context, messageID string) (*Exchange, error) {
	var e Exchange
	if err := r.db.WithContext(ctx).
		Where("message_id = ?", messageID).
		First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}
