package mysql

import (
	"context"

	"gorm.io/gorm"

	"m42hub/internal/model"
)

// LookupRepository serves the small reference tables (status, complexity, tool, role, topic).
type LookupRepository[T any] struct {
	DB *gorm.DB
}

func (r *LookupRepository[T]) List(ctx context.Context) ([]T, error) {
	var list []T
	err := conn(ctx, r.DB).Order("id asc").Find(&list).Error
	return list, err
}

func (r *LookupRepository[T]) FindByID(ctx context.Context, id uint64) (*T, bool, error) {
	var v T
	err := conn(ctx, r.DB).First(&v, id).Error
	if notFound(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &v, true, nil
}

// FindByIDs returns the rows that exist among ids; unknown ids are skipped.
func (r *LookupRepository[T]) FindByIDs(ctx context.Context, ids []uint64) ([]T, error) {
	list := make([]T, 0, len(ids))
	if len(ids) == 0 {
		return list, nil
	}
	err := conn(ctx, r.DB).Where("id IN ?", ids).Order("id asc").Find(&list).Error
	return list, err
}

func (r *LookupRepository[T]) Create(ctx context.Context, v *T) error {
	return conn(ctx, r.DB).Create(v).Error
}

type TopicRepository struct {
	LookupRepository[model.Topic]
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{LookupRepository[model.Topic]{DB: db}}
}

func (r *TopicRepository) UpdateColor(ctx context.Context, id uint64, hexColor string) (*model.Topic, bool, error) {
	res := conn(ctx, r.DB).Model(&model.Topic{}).Where("id = ?", id).Update("hex_color", hexColor)
	if res.Error != nil {
		return nil, false, res.Error
	}
	return r.FindByID(ctx, id)
}
