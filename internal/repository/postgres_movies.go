package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-catalog-service/internal/domain"
)

const movieColumns = `id, name, category, language, year, image_url, video_url, rate, number_of_reviews, liked, created_at, updated_at, version`

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func scanMovie(row pgx.Row) (*domain.Movie, error) {
	var movie domain.Movie
	var rate pgtype.Numeric

	err := row.Scan(
		&movie.ID,
		&movie.Name,
		&movie.Category,
		&movie.Language,
		&movie.Year,
		&movie.ImageUrl,
		&movie.VideoUrl,
		&rate,
		&movie.NumberOfReviews,
		&movie.Liked,
		&movie.CreatedAt,
		&movie.UpdatedAt,
		&movie.Version,
	)
	if err != nil {
		return nil, err
	}

	movie.Rate = toDecimal(rate)

	return &movie, nil
}

func (p *PostgresMovieRepository) queryMovies(ctx context.Context, query string, args ...any) ([]*domain.Movie, error) {
	rows, err := p.db.Query(ctx, query, args...)
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

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return movies, nil
}

func (p *PostgresMovieRepository) GetAll(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, *domain.Metadata, error) {
	query := `SELECT count(*) OVER(), ` + movieColumns + `
		FROM movies
		WHERE (name ILIKE '%' || $1 || '%' OR $1 = '')
		ORDER BY id
		LIMIT $2 OFFSET $3`

	rows, err := p.db.Query(ctx, query, filters.Term, filters.Limit(), filters.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	movies := []*domain.Movie{}

	for rows.Next() {
		var movie domain.Movie
		var rate pgtype.Numeric

		err := rows.Scan(
			&totalRecords,
			&movie.ID,
			&movie.Name,
			&movie.Category,
			&movie.Language,
			&movie.Year,
			&movie.ImageUrl,
			&movie.VideoUrl,
			&rate,
			&movie.NumberOfReviews,
			&movie.Liked,
			&movie.CreatedAt,
			&movie.UpdatedAt,
			&movie.Version,
		)
		if err != nil {
			return nil, nil, err
		}

		movie.Rate = toDecimal(rate)
		movies = append(movies, &movie)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, filters.Page, filters.PageSize)

	return movies, metadata, nil
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`

	movie, err := scanMovie(p.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	casts, err := p.getCasts(ctx, id)
	if err != nil {
		return nil, err
	}
	movie.Casts = casts

	reviews, err := p.getReviews(ctx, id)
	if err != nil {
		return nil, err
	}
	movie.Reviews = reviews

	return movie, nil
}

func (p *PostgresMovieRepository) getCasts(ctx context.Context, movieID int) ([]domain.CastMember, error) {
	query := `SELECT image_url FROM movie_casts WHERE movie_id = $1 ORDER BY position`

	rows, err := p.db.Query(ctx, query, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	casts := []domain.CastMember{}

	for rows.Next() {
		var cast domain.CastMember

		if err := rows.Scan(&cast.ImageUrl); err != nil {
			return nil, err
		}

		casts = append(casts, cast)
	}

	return casts, rows.Err()
}

func (p *PostgresMovieRepository) getReviews(ctx context.Context, movieID int) ([]domain.Review, error) {
	query := `SELECT r.id, r.movie_id, r.user_id, u.name, u.image_url, r.rating, r.comment, r.created_at
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.movie_id = $1
		ORDER BY r.id`

	rows, err := p.db.Query(ctx, query, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []domain.Review{}

	for rows.Next() {
		var review domain.Review

		err := rows.Scan(
			&review.ID,
			&review.MovieID,
			&review.UserID,
			&review.UserName,
			&review.UserImageUrl,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		reviews = append(reviews, review)
	}

	return reviews, rows.Err()
}

func (p *PostgresMovieRepository) GetByCategory(ctx context.Context, category string, limit int) ([]*domain.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE category = $1 ORDER BY id LIMIT $2`

	return p.queryMovies(ctx, query, category, limit)
}

func (p *PostgresMovieRepository) GetTopByLiked(ctx context.Context, limit int) ([]*domain.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies ORDER BY liked DESC, id LIMIT $1`

	return p.queryMovies(ctx, query, limit)
}

func (p *PostgresMovieRepository) GetTopByRate(ctx context.Context, limit int) ([]*domain.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies ORDER BY rate DESC, id LIMIT $1`

	return p.queryMovies(ctx, query, limit)
}

func (p *PostgresMovieRepository) List(ctx context.Context, limit int) ([]*domain.Movie, error) {
	if limit <= 0 {
		query := `SELECT ` + movieColumns + ` FROM movies ORDER BY id`
		return p.queryMovies(ctx, query)
	}

	query := `SELECT ` + movieColumns + ` FROM movies ORDER BY id LIMIT $1`

	return p.queryMovies(ctx, query, limit)
}

func (p *PostgresMovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	query := `INSERT INTO movies (name, category, language, year)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at, version`

	return p.db.QueryRow(ctx,
		query,
		movie.Name,
		movie.Category,
		movie.Language,
		movie.Year).Scan(&movie.ID, &movie.CreatedAt, &movie.UpdatedAt, &movie.Version)
}

func (p *PostgresMovieRepository) Delete(ctx context.Context, id int) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresMovieRepository) Stats(ctx context.Context) (*domain.MovieStats, error) {
	query := `SELECT count(*), count(DISTINCT category) FROM movies`

	var stats domain.MovieStats

	err := p.db.QueryRow(ctx, query).Scan(&stats.TotalMovies, &stats.TotalCategories)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

// UpdateAssets commits the asset URLs produced by one upload run. The movie
// row update is guarded by the optimistic version check, and the cast rows
// are replaced wholesale, all inside one transaction. A concurrent commit on
// the same movie surfaces as ErrEditConflict rather than interleaved asset
// fields.
func (p *PostgresMovieRepository) UpdateAssets(ctx context.Context, movie *domain.Movie, assets domain.MovieAssets) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `UPDATE movies
			SET image_url = $1, video_url = $2, updated_at = now(), version = version + 1
			WHERE id = $3 AND version = $4
			RETURNING version, updated_at`

		err := tx.QueryRow(ctx,
			query,
			assets.ImageUrl,
			assets.VideoUrl,
			movie.ID,
			movie.Version).Scan(&movie.Version, &movie.UpdatedAt)

		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrEditConflict
			}

			return err
		}

		_, err = tx.Exec(ctx, `DELETE FROM movie_casts WHERE movie_id = $1`, movie.ID)
		if err != nil {
			return err
		}

		rows := make([][]any, 0, len(assets.CastImageUrls))
		for i, url := range assets.CastImageUrls {
			rows = append(rows, []any{movie.ID, i, url})
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"movie_casts"},
			[]string{"movie_id", "position", "image_url"},
			pgx.CopyFromRows(rows),
		)

		return err
	})
}
