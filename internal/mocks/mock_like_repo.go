package mocks

import (
	"context"

	"github.com/metinatakli/movie-catalog-service/internal/domain"
)

type MockLikeRepo struct {
	domain.LikeRepository
	AddFunc          func(ctx context.Context, userID, movieID int) error
	RemoveFunc       func(ctx context.Context, userID, movieID int) error
	MoviesByUserFunc func(ctx context.Context, userID int) ([]*domain.Movie, error)
}

func (m *MockLikeRepo) Add(ctx context.Context, userID, movieID int) error {
	return m.AddFunc(ctx, userID, movieID)
}

func (m *MockLikeRepo) Remove(ctx context.Context, userID, movieID int) error {
	return m.RemoveFunc(ctx, userID, movieID)
}

func (m *MockLikeRepo) MoviesByUser(ctx context.Context, userID int) ([]*domain.Movie, error) {
	return m.MoviesByUserFunc(ctx, userID)
}
