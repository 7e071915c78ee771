package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/movie-catalog-service/api"
	"github.com/metinatakli/movie-catalog-service/internal/domain"
)

// CreateMovieReview submits a review and folds its rating into the movie's
// running average. The review insert and the aggregate update happen in one
// storage transaction, so a failure leaves the prior rate and review count
// untouched.
func (app *Application) CreateMovieReview(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)
	userId := app.contextGetUserId(r)

	movieId, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.CreateReviewRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	review := domain.Review{
		MovieID: movieId,
		UserID:  userId,
		Rating:  input.Rating,
		Comment: input.Comment,
	}

	err = app.reviewRepo.Create(r.Context(), &review)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyReviewed):
			logger.Warn("duplicate review rejected", "movieId", movieId)
			app.conflictResponse(w, r, "You already reviewed this movie")
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.metrics.reviewsSubmitted.Add(r.Context(), 1)

	movie, err := app.movieRepo.GetById(r.Context(), movieId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
