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

type PostgresLikeRepository struct {
	db *pgxpool.Pool
}

func NewPostgresLikeRepository(db *pgxpool.Pool) *PostgresLikeRepository {
	return &PostgresLikeRepository{
		db: db,
	}
}

// Add inserts the membership row and increments the movie's liked counter in
// one transaction, so the counter can never drift from the set under a crash
// between the two writes.
func (p *PostgresLikeRepository) Add(ctx context.Context, userID, movieID int) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `INSERT INTO liked_movies (user_id, movie_id) VALUES ($1, $2)`

		_, err := tx.Exec(ctx, query, userID, movieID)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) {
				switch pgErr.Code {
				case pgerrcode.UniqueViolation:
					return domain.ErrAlreadyLiked
				case pgerrcode.ForeignKeyViolation:
					return domain.ErrRecordNotFound
				}
			}

			return err
		}

		tag, err := tx.Exec(ctx, `UPDATE movies SET liked = liked + 1 WHERE id = $1`, movieID)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return domain.ErrRecordNotFound
		}

		return nil
	})
}

func (p *PostgresLikeRepository) Remove(ctx context.Context, userID, movieID int) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM liked_movies WHERE user_id = $1 AND movie_id = $2`, userID, movieID)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return domain.ErrMovieNotLiked
		}

		// GREATEST keeps the counter at zero if it ever drifted low; the
		// transactional writes above are the actual correctness guarantee.
		_, err = tx.Exec(ctx, `UPDATE movies SET liked = GREATEST(liked - 1, 0) WHERE id = $1`, movieID)

		return err
	})
}

// MoviesByUser returns the user's liked movies in the order they were liked.
func (p *PostgresLikeRepository) MoviesByUser(ctx context.Context, userID int) ([]*domain.Movie, error) {
	query := `SELECT m.id, m.name, m.category, m.language, m.year, m.image_url, m.video_url,
			m.rate, m.number_of_reviews, m.liked, m.created_at, m.updated_at, m.version
		FROM movies m
		JOIN liked_movies lm ON lm.movie_id = m.id
		WHERE lm.user_id = $1
		ORDER BY lm.id`

	rows, err := p.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := []*domain.Movie{}

	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}

		movies = append(movies, movie)
	}

	return movies, rows.Err()
}
