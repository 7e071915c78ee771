package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-catalog-service/internal/domain"
)

type PostgresReviewRepository struct {
	db *pgxpool.Pool
}

func NewPostgresReviewRepository(db *pgxpool.Pool) *PostgresReviewRepository {
	return &PostgresReviewRepository{
		db: db,
	}
}

// Create inserts the review and folds its rating into the movie's running
// average in a single transaction. The average is recomputed as an atomic
// SQL delta, so two concurrent submissions for the same movie serialize on
// the row update instead of racing on a stale in-memory aggregate.
func (p *PostgresReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `INSERT INTO reviews (movie_id, user_id, rating, comment)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at`

		err := tx.QueryRow(ctx,
			query,
			review.MovieID,
			review.UserID,
			review.Rating,
			review.Comment).Scan(&review.ID, &review.CreatedAt)

		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) {
				switch pgErr.Code {
				case pgerrcode.UniqueViolation:
					return domain.ErrAlreadyReviewed
				case pgerrcode.ForeignKeyViolation:
					return domain.ErrRecordNotFound
				}
			}

			return err
		}

		query = `UPDATE movies
			SET rate = (rate * number_of_reviews + $2) / (number_of_reviews + 1),
				number_of_reviews = number_of_reviews + 1,
				updated_at = now(),
				version = version + 1
			WHERE id = $1`

		tag, err := tx.Exec(ctx, query, review.MovieID, review.Rating)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return domain.ErrRecordNotFound
		}

		return nil
	})
}
