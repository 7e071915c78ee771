package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/metinatakli/movie-catalog-service/api"
	"github.com/metinatakli/movie-catalog-service/internal/domain"
	"github.com/metinatakli/movie-catalog-service/internal/mocks"
)

func TestLikeMovie(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		addFunc        func(context.Context, int, int) error
		wantStatus     int
		wantErrMessage string
	}{
		{
			name: "successful like",
			body: api.LikeRequest{MovieId: 1},
			addFunc: func(ctx context.Context, userID, movieID int) error {
				if userID != 7 {
					return fmt.Errorf("unexpected user id: %d", userID)
				}
				if movieID != 1 {
					return fmt.Errorf("unexpected movie id: %d", movieID)
				}
				return nil
			},
			wantStatus: http.StatusOK,
		},
		{
			name:           "validation error - missing movie id",
			body:           api.LikeRequest{},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "is required",
		},
		{
			name: "movie already liked",
			body: api.LikeRequest{MovieId: 1},
			addFunc: func(ctx context.Context, userID, movieID int) error {
				return domain.ErrAlreadyLiked
			},
			wantStatus:     http.StatusConflict,
			wantErrMessage: "Movie already liked",
		},
		{
			name: "movie not found",
			body: api.LikeRequest{MovieId: 99},
			addFunc: func(ctx context.Context, userID, movieID int) error {
				return domain.ErrRecordNotFound
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: "The requested resource not found",
		},
		{
			name: "database error",
			body: api.LikeRequest{MovieId: 1},
			addFunc: func(ctx context.Context, userID, movieID int) error {
				return fmt.Errorf("database connection error")
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: "The server encountered a problem and could not process your request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(func(a *Application) {
				a.likeRepo = &mocks.MockLikeRepo{
					AddFunc: tt.addFunc,
				}
			})

			w, r := executeRequest(t, http.MethodPost, "/users/me/likes", tt.body)
			r = setupUserContext(r, 7)

			app.LikeMovie(w, r)

			if got := w.Code; got != tt.wantStatus {
				t.Errorf("LikeMovie() status = %v, want %v", got, tt.wantStatus)
			}

			if tt.wantStatus == http.StatusOK {
				var response api.MessageResponse
				if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}

				if response.Message != "Like successfully" {
					t.Errorf("LikeMovie() message = %q, want %q", response.Message, "Like successfully")
				}
			}

			checkErrorResponse(t, w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func TestUnlikeMovie(t *testing.T) {
	tests := []struct {
		name           string
		movieId        string
		removeFunc     func(context.Context, int, int) error
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:    "successful unlike",
			movieId: "1",
			removeFunc: func(ctx context.Context, userID, movieID int) error {
				return nil
			},
			wantStatus: http.StatusOK,
		},
		{
			name:           "invalid movie id",
			movieId:        "abc",
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "invalid movieId parameter",
		},
		{
			name:    "movie not liked",
			movieId: "1",
			removeFunc: func(ctx context.Context, userID, movieID int) error {
				return domain.ErrMovieNotLiked
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: "The requested resource not found",
		},
		{
			name:    "database error",
			movieId: "1",
			removeFunc: func(ctx context.Context, userID, movieID int) error {
				return fmt.Errorf("database connection error")
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: "The server encountered a problem and could not process your request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(func(a *Application) {
				a.likeRepo = &mocks.MockLikeRepo{
					RemoveFunc: tt.removeFunc,
				}
			})

			w, r := executeRequest(t, http.MethodDelete, "/users/me/likes/"+tt.movieId, nil)
			r = withURLParams(r, map[string]string{"movieId": tt.movieId})
			r = setupUserContext(r, 7)

			app.UnlikeMovie(w, r)

			if got := w.Code; got != tt.wantStatus {
				t.Errorf("UnlikeMovie() status = %v, want %v", got, tt.wantStatus)
			}

			checkErrorResponse(t, w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func TestGetLikedMovies(t *testing.T) {
	tests := []struct {
		name             string
		moviesByUserFunc func(context.Context, int) ([]*domain.Movie, error)
		wantStatus       int
		wantTotal        int
		wantErrMessage   string
	}{
		{
			name: "returns liked movies in like order",
			moviesByUserFunc: func(ctx context.Context, userID int) ([]*domain.Movie, error) {
				return []*domain.Movie{{ID: 3}, {ID: 1}}, nil
			},
			wantStatus: http.StatusOK,
			wantTotal:  2,
		},
		{
			name: "no liked movies",
			moviesByUserFunc: func(ctx context.Context, userID int) ([]*domain.Movie, error) {
				return []*domain.Movie{}, nil
			},
			wantStatus: http.StatusOK,
			wantTotal:  0,
		},
		{
			name: "database error",
			moviesByUserFunc: func(ctx context.Context, userID int) ([]*domain.Movie, error) {
				return nil, fmt.Errorf("database connection error")
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: "The server encountered a problem and could not process your request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(func(a *Application) {
				a.likeRepo = &mocks.MockLikeRepo{
					MoviesByUserFunc: tt.moviesByUserFunc,
				}
			})

			w, r := executeRequest(t, http.MethodGet, "/users/me/likes", nil)
			r = setupUserContext(r, 7)

			app.GetLikedMovies(w, r)

			if got := w.Code; got != tt.wantStatus {
				t.Errorf("GetLikedMovies() status = %v, want %v", got, tt.wantStatus)
			}

			if tt.wantStatus == http.StatusOK {
				var response api.LikedMoviesResponse
				if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}

				if response.Total != tt.wantTotal {
					t.Errorf("GetLikedMovies() total = %d, want %d", response.Total, tt.wantTotal)
				}

				if len(response.ListLiked) != tt.wantTotal {
					t.Errorf("GetLikedMovies() returned %d movies, want %d", len(response.ListLiked), tt.wantTotal)
				}
			}

			checkErrorResponse(t, w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}
