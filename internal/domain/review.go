package domain

import (
	"context"
	"time"
)

type Review struct {
	ID        int
	MovieID   int
	UserID    int
	Rating    int
	Comment   string
	CreatedAt time.Time

	// Denormalized reviewer fields, populated when a movie is fetched with
	// its reviews.
	UserName     string
	UserImageUrl string
}

// ReviewRepository persists a review and the movie's rating aggregate as one
// atomic unit. The running average is recomputed inside the same transaction
// that inserts the review row, so concurrent submissions cannot lose updates.
type ReviewRepository interface {
	Create(ctx context.Context, review *Review) error
}
