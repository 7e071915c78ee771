package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/metinatakli/movie-catalog-service/api"
	"github.com/metinatakli/movie-catalog-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	BannerMoviesLimit   = 3
	CategoryMoviesLimit = 6
	PopularMoviesLimit  = 8
	TopRatedMoviesLimit = 8

	movieListCacheTTL = time.Minute
)

func (app *Application) GetMovies(w http.ResponseWriter, r *http.Request) {
	params, err := parseGetMoviesParams(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	filters := toMovieFilters(params)

	movies, metadata, err := app.movieRepo.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.MovieListResponse{
		Movies:   toMovieResponses(movies),
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ListAllMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := app.movieRepo.List(r.Context(), 0)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.MovieListResponse{Movies: toMovieResponses(movies)}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovieById(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	movie, err := app.movieRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMoviesByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if category == "" {
		app.badRequestResponse(w, r, fmt.Errorf("invalid category parameter"))
		return
	}

	movies, err := app.movieRepo.GetByCategory(r.Context(), category, CategoryMoviesLimit)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.MovieListResponse{Movies: toMovieResponses(movies)}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetBannerMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := app.movieRepo.List(r.Context(), BannerMoviesLimit)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.BannerResponse{Banner: toMovieResponses(movies)}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetPopularMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := cachedMovieList(app, r, "movies:popular", func(ctx context.Context) ([]*domain.Movie, error) {
		return app.movieRepo.GetTopByLiked(ctx, PopularMoviesLimit)
	})
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.PopularMoviesResponse{PopularMovies: toMovieResponses(movies)}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetTopRatedMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := cachedMovieList(app, r, "movies:top-rated", func(ctx context.Context) ([]*domain.Movie, error) {
		return app.movieRepo.GetTopByRate(ctx, TopRatedMoviesLimit)
	})
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.TopRatedMoviesResponse{TopRateMovies: toMovieResponses(movies)}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// cachedMovieList serves short browse lists through a redis read-through
// cache. Cache errors are logged and fall through to the repository, so a
// redis outage degrades to slower reads instead of failures.
func cachedMovieList(app *Application, r *http.Request, key string, fetch func(context.Context) ([]*domain.Movie, error)) ([]*domain.Movie, error) {
	logger := app.contextGetLogger(r)
	ctx := r.Context()

	cached, err := app.redis.Get(ctx, key).Result()
	if err == nil {
		var movies []*domain.Movie
		if err := json.Unmarshal([]byte(cached), &movies); err == nil {
			return movies, nil
		}

		logger.Warn("discarding malformed cache entry", "key", key)
	} else if err != redis.Nil {
		logger.Warn("cache read failed", "key", key, "error", err)
	}

	movies, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(movies)
	if err == nil {
		if err := app.redis.Set(ctx, key, payload, movieListCacheTTL).Err(); err != nil {
			logger.Warn("cache write failed", "key", key, "error", err)
		}
	}

	return movies, nil
}

func (app *Application) GetMovieStats(w http.ResponseWriter, r *http.Request) {
	stats, err := app.movieRepo.Stats(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.MovieStatsResponse{
		TotalMovies:     stats.TotalMovies,
		TotalCategories: stats.TotalCategories,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var input api.CreateMovieRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	movie := domain.Movie{
		Name:     input.Name,
		Category: input.Category,
		Language: input.Language,
		Year:     input.Year,
	}

	err = app.movieRepo.Create(r.Context(), &movie)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toMovieResponse(&movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.movieRepo.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, api.MessageResponse{Message: "Movie deleted successfully"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func parseGetMoviesParams(r *http.Request) (api.GetMoviesParams, error) {
	var params api.GetMoviesParams

	query := r.URL.Query()

	if page := query.Get("page"); page != "" {
		pageNum, err := strconv.Atoi(page)
		if err != nil {
			return params, fmt.Errorf("invalid page parameter")
		}
		params.Page = &pageNum
	}

	if pageSize := query.Get("pageSize"); pageSize != "" {
		pageSizeNum, err := strconv.Atoi(pageSize)
		if err != nil {
			return params, fmt.Errorf("invalid pageSize parameter")
		}
		params.PageSize = &pageSizeNum
	}

	if term := query.Get("moviesName"); term != "" {
		params.Term = &term
	}

	return params, nil
}

func (app *Application) readFilters(r *http.Request) (domain.Filters, error) {
	filters := domain.Filters{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}

	query := r.URL.Query()

	if page := query.Get("page"); page != "" {
		pageNum, err := strconv.Atoi(page)
		if err != nil || pageNum < 1 {
			return filters, fmt.Errorf("invalid page parameter")
		}
		filters.Page = pageNum
	}

	if pageSize := query.Get("pageSize"); pageSize != "" {
		pageSizeNum, err := strconv.Atoi(pageSize)
		if err != nil || pageSizeNum < 1 || pageSizeNum > 100 {
			return filters, fmt.Errorf("invalid pageSize parameter")
		}
		filters.PageSize = pageSizeNum
	}

	return filters, nil
}

func toMovieFilters(params api.GetMoviesParams) domain.MovieFilters {
	filters := domain.MovieFilters{
		Filters: domain.Filters{
			Page:     DefaultPage,
			PageSize: DefaultPageSize,
		},
	}

	if params.Page != nil {
		filters.Page = *params.Page
	}
	if params.PageSize != nil {
		filters.PageSize = *params.PageSize
	}
	if params.Term != nil {
		filters.Term = *params.Term
	}

	return filters
}

func toMovieResponses(movies []*domain.Movie) []api.MovieResponse {
	responses := make([]api.MovieResponse, len(movies))
	for i, movie := range movies {
		responses[i] = toMovieResponse(movie)
	}

	return responses
}

func toMovieResponse(movie *domain.Movie) api.MovieResponse {
	if movie == nil {
		return api.MovieResponse{}
	}

	resp := api.MovieResponse{
		Id:              movie.ID,
		Name:            movie.Name,
		Category:        movie.Category,
		Language:        movie.Language,
		Year:            movie.Year,
		Image:           movie.ImageUrl,
		Video:           movie.VideoUrl,
		Rate:            movie.Rate.InexactFloat64(),
		NumberOfReviews: movie.NumberOfReviews,
		Liked:           movie.Liked,
		CreatedAt:       movie.CreatedAt,
		Version:         movie.Version,
	}

	for _, cast := range movie.Casts {
		resp.Casts = append(resp.Casts, api.CastResponse{Image: cast.ImageUrl})
	}

	for _, review := range movie.Reviews {
		resp.Reviews = append(resp.Reviews, api.ReviewResponse{
			UserId:    review.UserID,
			UserName:  review.UserName,
			UserImage: review.UserImageUrl,
			Rating:    review.Rating,
			Comment:   review.Comment,
			CreatedAt: review.CreatedAt,
		})
	}

	return resp
}
