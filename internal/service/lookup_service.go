package service

import (
	"context"

	"m42hub/internal/model"
)

// LookupService serves one reference table.
type LookupService[T any] struct {
	store LookupStore[T]
}

func NewLookupService[T any](store LookupStore[T]) *LookupService[T] {
	return &LookupService[T]{store: store}
}

func (s *LookupService[T]) List(ctx context.Context) ([]T, error) {
	return s.store.List(ctx)
}

func (s *LookupService[T]) FindByID(ctx context.Context, id uint64) (*T, bool, error) {
	return s.store.FindByID(ctx, id)
}

func (s *LookupService[T]) Save(ctx context.Context, v *T) (*T, error) {
	if err := s.store.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

type TopicService struct {
	*LookupService[model.Topic]
	topics TopicStore
}

func NewTopicService(topics TopicStore) *TopicService {
	return &TopicService{LookupService: NewLookupService[model.Topic](topics), topics: topics}
}

func (s *TopicService) ChangeColor(ctx context.Context, id uint64, hexColor string) (*model.Topic, bool, error) {
	return s.topics.UpdateColor(ctx, id, hexColor)
}
