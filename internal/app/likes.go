package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/movie-catalog-service/api"
	"github.com/metinatakli/movie-catalog-service/internal/domain"
)

func (app *Application) LikeMovie(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)
	userId := app.contextGetUserId(r)

	var input api.LikeRequest

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

	err = app.likeRepo.Add(r.Context(), userId, input.MovieId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyLiked):
			logger.Warn("duplicate like rejected", "movieId", input.MovieId)
			app.conflictResponse(w, r, "Movie already liked")
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.metrics.likesChanged.Add(r.Context(), 1)

	err = app.writeJSON(w, http.StatusOK, api.MessageResponse{Message: "Like successfully"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UnlikeMovie(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	movieId, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.likeRepo.Remove(r.Context(), userId, movieId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMovieNotLiked):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.metrics.likesChanged.Add(r.Context(), 1)

	err = app.writeJSON(w, http.StatusOK, api.MessageResponse{Message: "Unlike successfully"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// GetLikedMovies lists the user's liked movies in the order they were liked.
func (app *Application) GetLikedMovies(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	movies, err := app.likeRepo.MoviesByUser(r.Context(), userId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.LikedMoviesResponse{
		ListLiked: toMovieResponses(movies),
		Total:     len(movies),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
