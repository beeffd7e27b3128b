package mysql

import (
	"context"

	"gorm.io/gorm"

	"m42hub/internal/model"
)

type OutboxRepository struct {
	DB *gorm.DB
}

// Insert writes an event row; call it inside the transaction that changed the member.
func (r *OutboxRepository) Insert(ctx context.Context, ob *model.MemberOutbox) error {
	return conn(ctx, r.DB).Create(ob).Error
}

// ListPending returns up to batchSize unsent or failed events, oldest first.
func (r *OutboxRepository) ListPending(ctx context.Context, batchSize, maxRetry int) ([]model.MemberOutbox, error) {
	var list []model.MemberOutbox
	if err := conn(ctx, r.DB).
		Where("status = ? OR (status = ? AND retry < ?)", model.OutboxPending, model.OutboxFailed, maxRetry).
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *OutboxRepository) MarkFailed(ctx context.Context, id uint64) error {
	return conn(ctx, r.DB).Model(&model.MemberOutbox{}).Where("id = ?", id).
		Updates(map[string]any{"status": model.OutboxFailed, "retry": gorm.Expr("retry + 1")}).Error
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id uint64) error {
	return conn(ctx, r.DB).Model(&model.MemberOutbox{}).Where("id = ?", id).
		Update("status", model.OutboxSent).Error
}
