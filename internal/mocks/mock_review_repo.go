package mocks

import (
	"context"

	"github.com/metinatakli/movie-catalog-service/internal/domain"
)

type MockReviewRepo struct {
	domain.ReviewRepository
	CreateFunc func(ctx context.Context, review *domain.Review) error
}

func (m *MockReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	return m.CreateFunc(ctx, review)
}
