package domain

import "errors"

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrEditConflict      = errors.New("edit conflict")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrAlreadyReviewed   = errors.New("movie already reviewed by this user")
	ErrAlreadyLiked      = errors.New("movie already liked")
	ErrMovieNotLiked     = errors.New("movie is not in the liked list")
)
