package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Movie struct {
	ID              int
	Name            string
	Category        string
	Language        string
	Year            int
	ImageUrl        string
	VideoUrl        string
	Rate            decimal.Decimal
	NumberOfReviews int
	Liked           int
	Casts           []CastMember
	Reviews         []Review
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Version         int
}

// CastMember is a single cast photo attached to a movie. The order of
// Movie.Casts matches the order the photos were uploaded in.
type CastMember struct {
	ImageUrl string
}

// MovieAssets carries the object store URLs produced by one complete upload
// run. All fields are committed to the movie record together.
type MovieAssets struct {
	ImageUrl      string
	VideoUrl      string
	CastImageUrls []string
}

type MovieStats struct {
	TotalMovies     int
	TotalCategories int
}

type MovieRepository interface {
	GetAll(ctx context.Context, filters MovieFilters) ([]*Movie, *Metadata, error)
	GetById(ctx context.Context, id int) (*Movie, error)
	GetByCategory(ctx context.Context, category string, limit int) ([]*Movie, error)
	GetTopByLiked(ctx context.Context, limit int) ([]*Movie, error)
	GetTopByRate(ctx context.Context, limit int) ([]*Movie, error)
	List(ctx context.Context, limit int) ([]*Movie, error)
	Create(ctx context.Context, movie *Movie) error
	Delete(ctx context.Context, id int) error
	Stats(ctx context.Context) (*MovieStats, error)
	UpdateAssets(ctx context.Context, movie *Movie, assets MovieAssets) error
}
