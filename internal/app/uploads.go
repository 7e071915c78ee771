package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/metinatakli/movie-catalog-service/internal/domain"
)

const (
	// maxUploadSize bounds the whole multipart form, trailer video included.
	maxUploadSize = 512 << 20

	uploadTimeout = 30 * time.Second
)

type filePayload struct {
	name        string
	data        []byte
	contentType string
}

// UploadMovieAssets attaches a poster, a trailer and one or more cast photos
// to a movie. Every payload is uploaded to the object store first; the
// resulting URLs are committed to the movie record in a single write only
// after all uploads succeed. A failed or timed-out upload aborts the whole
// operation and leaves the movie's previous assets in place; objects already
// uploaded by the aborted run stay behind in the store.
func (app *Application) UploadMovieAssets(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	movieId, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = r.ParseMultipartForm(maxUploadSize)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	poster, posterErr := readFormFile(r, "image")
	trailer, trailerErr := readFormFile(r, "video")
	castImages, castErr := readFormFiles(r, "images")

	var missing []string
	if posterErr != nil {
		missing = append(missing, "image")
	}
	if trailerErr != nil {
		missing = append(missing, "video")
	}
	if castErr != nil || len(castImages) == 0 {
		missing = append(missing, "images")
	}

	if len(missing) > 0 {
		app.missingAssetsResponse(w, r, missing)
		return
	}

	movie, err := app.movieRepo.GetById(r.Context(), movieId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	imageUrl, err := app.uploadWithTimeout(r.Context(), "imageMovies/"+poster.name, poster)
	if err != nil {
		logger.Error("poster upload failed", "movieId", movieId, "error", err)
		app.serverErrorResponse(w, r, err)
		return
	}

	videoUrl, err := app.uploadWithTimeout(r.Context(), "videosMovies/"+trailer.name, trailer)
	if err != nil {
		logger.Error("trailer upload failed", "movieId", movieId, "error", err)
		app.serverErrorResponse(w, r, err)
		return
	}

	castUrls := make([]string, 0, len(castImages))
	for _, cast := range castImages {
		url, err := app.uploadWithTimeout(r.Context(), "castMovies/"+cast.name, cast)
		if err != nil {
			logger.Error("cast photo upload failed", "movieId", movieId, "error", err)
			app.serverErrorResponse(w, r, err)
			return
		}

		castUrls = append(castUrls, url)
	}

	assets := domain.MovieAssets{
		ImageUrl:      imageUrl,
		VideoUrl:      videoUrl,
		CastImageUrls: castUrls,
	}

	err = app.movieRepo.UpdateAssets(r.Context(), movie, assets)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEditConflict):
			app.editConflictResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.metrics.assetCommits.Add(r.Context(), 1)

	movie.ImageUrl = assets.ImageUrl
	movie.VideoUrl = assets.VideoUrl
	movie.Casts = make([]domain.CastMember, len(assets.CastImageUrls))
	for i, url := range assets.CastImageUrls {
		movie.Casts[i] = domain.CastMember{ImageUrl: url}
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// uploadWithTimeout bounds a single object store call so one stalled upload
// cannot pin the request forever.
func (app *Application) uploadWithTimeout(ctx context.Context, key string, file *filePayload) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	return app.objectStore.Upload(ctx, key, file.data, file.contentType)
}

func readFormFile(r *http.Request, field string) (*filePayload, error) {
	if r.MultipartForm == nil || len(r.MultipartForm.File[field]) == 0 {
		return nil, fmt.Errorf("no file uploaded for %q", field)
	}

	return readFileHeader(r.MultipartForm.File[field][0])
}

func readFormFiles(r *http.Request, field string) ([]*filePayload, error) {
	if r.MultipartForm == nil {
		return nil, fmt.Errorf("no files uploaded for %q", field)
	}

	headers := r.MultipartForm.File[field]
	files := make([]*filePayload, 0, len(headers))

	for _, header := range headers {
		file, err := readFileHeader(header)
		if err != nil {
			return nil, err
		}

		files = append(files, file)
	}

	return files, nil
}

func readFileHeader(header *multipart.FileHeader) (*filePayload, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &filePayload{
		name:        header.Filename,
		data:        data,
		contentType: header.Header.Get("Content-Type"),
	}, nil
}
