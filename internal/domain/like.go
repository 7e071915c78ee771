package domain

import "context"

// LikeRepository maintains the liked-movies relationship: the per-user
// membership set and the denormalized liked counter on the movie. Add and
// Remove mutate both records in a single transaction.
type LikeRepository interface {
	Add(ctx context.Context, userID, movieID int) error
	Remove(ctx context.Context, userID, movieID int) error
	MoviesByUser(ctx context.Context, userID int) ([]*Movie, error)
}
