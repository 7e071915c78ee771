package mocks

import (
	"context"

	"github.com/metinatakli/movie-catalog-service/internal/domain"
)

type MockMovieRepo struct {
	domain.MovieRepository
	GetAllFunc        func(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, *domain.Metadata, error)
	GetByIdFunc       func(ctx context.Context, id int) (*domain.Movie, error)
	GetByCategoryFunc func(ctx context.Context, category string, limit int) ([]*domain.Movie, error)
	GetTopByLikedFunc func(ctx context.Context, limit int) ([]*domain.Movie, error)
	GetTopByRateFunc  func(ctx context.Context, limit int) ([]*domain.Movie, error)
	ListFunc          func(ctx context.Context, limit int) ([]*domain.Movie, error)
	CreateFunc        func(ctx context.Context, movie *domain.Movie) error
	DeleteFunc        func(ctx context.Context, id int) error
	StatsFunc         func(ctx context.Context) (*domain.MovieStats, error)
	UpdateAssetsFunc  func(ctx context.Context, movie *domain.Movie, assets domain.MovieAssets) error
}

func (m *MockMovieRepo) GetAll(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, *domain.Metadata, error) {
	return m.GetAllFunc(ctx, filters)
}

func (m *MockMovieRepo) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockMovieRepo) GetByCategory(ctx context.Context, category string, limit int) ([]*domain.Movie, error) {
	return m.GetByCategoryFunc(ctx, category, limit)
}

func (m *MockMovieRepo) GetTopByLiked(ctx context.Context, limit int) ([]*domain.Movie, error) {
	return m.GetTopByLikedFunc(ctx, limit)
}

func (m *MockMovieRepo) GetTopByRate(ctx context.Context, limit int) ([]*domain.Movie, error) {
	return m.GetTopByRateFunc(ctx, limit)
}

func (m *MockMovieRepo) List(ctx context.Context, limit int) ([]*domain.Movie, error) {
	return m.ListFunc(ctx, limit)
}

func (m *MockMovieRepo) Create(ctx context.Context, movie *domain.Movie) error {
	return m.CreateFunc(ctx, movie)
}

func (m *MockMovieRepo) Delete(ctx context.Context, id int) error {
	return m.DeleteFunc(ctx, id)
}

func (m *MockMovieRepo) Stats(ctx context.Context) (*domain.MovieStats, error) {
	return m.StatsFunc(ctx)
}

func (m *MockMovieRepo) UpdateAssets(ctx context.Context, movie *domain.Movie, assets domain.MovieAssets) error {
	return m.UpdateAssetsFunc(ctx, movie, assets)
}
