// Package api defines the request and response types exposed by the HTTP
// layer. Request types carry validator tags; handlers validate them before
// touching the domain.
package api

import "time"

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationIssue struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationIssue `json:"validationErrors"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	Id        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"isAdmin"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int       `json:"version"`
}

type UserListResponse struct {
	Users    []UserResponse `json:"users"`
	Metadata *Metadata      `json:"metadata,omitempty"`
}

type UpdateUserRequest struct {
	Name string `json:"name" validate:"required,min=2,max=50"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,password"`
}

type AvatarResponse struct {
	Message string `json:"message"`
	Image   string `json:"image"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type CreateMovieRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Category string `json:"category" validate:"required,min=1,max=50"`
	Language string `json:"language" validate:"required,min=1,max=50"`
	Year     int    `json:"year" validate:"required,year"`
}

type GetMoviesParams struct {
	Page     *int    `validate:"omitempty,min=1"`
	PageSize *int    `validate:"omitempty,min=1,max=100"`
	Term     *string `validate:"omitempty,max=200"`
}

type CastResponse struct {
	Image string `json:"image"`
}

type ReviewResponse struct {
	UserId    int       `json:"userId"`
	UserName  string    `json:"userName"`
	UserImage string    `json:"userImage,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

type MovieResponse struct {
	Id              int              `json:"id"`
	Name            string           `json:"name"`
	Category        string           `json:"category"`
	Language        string           `json:"language"`
	Year            int              `json:"year"`
	Image           string           `json:"image,omitempty"`
	Video           string           `json:"video,omitempty"`
	Rate            float64          `json:"rate"`
	NumberOfReviews int              `json:"numberOfReviews"`
	Liked           int              `json:"liked"`
	Casts           []CastResponse   `json:"casts,omitempty"`
	Reviews         []ReviewResponse `json:"reviews,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	Version         int              `json:"version"`
}

type MovieListResponse struct {
	Movies   []MovieResponse `json:"movies"`
	Metadata *Metadata       `json:"metadata,omitempty"`
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,min=1,max=1000"`
}

type LikeRequest struct {
	MovieId int `json:"movieId" validate:"required,min=1"`
}

type LikedMoviesResponse struct {
	ListLiked []MovieResponse `json:"listLiked"`
	Total     int             `json:"total"`
}

type MovieStatsResponse struct {
	TotalMovies     int `json:"totalMovies"`
	TotalCategories int `json:"totalCategories"`
}

type UserStatsResponse struct {
	TotalUsers int `json:"totalUsers"`
}

type BannerResponse struct {
	Banner []MovieResponse `json:"banner"`
}

type PopularMoviesResponse struct {
	PopularMovies []MovieResponse `json:"popularMovies"`
}

type TopRatedMoviesResponse struct {
	TopRateMovies []MovieResponse `json:"topRateMovies"`
}
