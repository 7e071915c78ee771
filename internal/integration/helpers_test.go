package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-catalog-service/internal/domain"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
	"updatedAt": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string, cookies []http.Cookie) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for i := range cookies {
		req.AddCookie(&cookies[i])
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indetermistic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		switch v := m[k].(type) {
		case map[string]any:
			cleanMap(v)
		case []any:
			for _, item := range v {
				if nested, ok := item.(map[string]any); ok {
					cleanMap(nested)
				}
			}
		}
	}
}

func decodeBody(t testing.TB, res *http.Response) map[string]any {
	var body map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	return body
}

// truncateMoviesOnly clears movie data but keeps users, so seeded sessions
// stay valid.
func truncateMoviesOnly(t testing.TB, app *TestApp) {
	tables := []string{"reviews", "liked_movies", "movie_casts", "movies"}
	for _, table := range tables {
		_, err := app.DB.Exec(context.Background(), "TRUNCATE "+table+" RESTART IDENTITY CASCADE")
		require.NoError(t, err)
	}

	require.NoError(t, app.Cache.FlushAll(context.Background()).Err())
}

func truncateAll(t testing.TB, app *TestApp) {
	tables := []string{"reviews", "liked_movies", "movie_casts", "movies", "users"}
	for _, table := range tables {
		_, err := app.DB.Exec(context.Background(), "TRUNCATE "+table+" RESTART IDENTITY CASCADE")
		require.NoError(t, err)
	}

	require.NoError(t, app.Cache.FlushAll(context.Background()).Err())
}

func insertTestUser(t testing.TB, db *pgxpool.Pool, name, email string, admin bool) {
	var user domain.User
	require.NoError(t, user.Password.Set(TestUserPassword))

	_, err := db.Exec(
		context.Background(),
		`INSERT INTO users (name, email, password_hash, is_admin) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (email) DO NOTHING`,
		name,
		email,
		user.Password.Hash,
		admin,
	)
	require.NoError(t, err)
}

type testMovie struct {
	Name     string
	Category string
	Language string
	Year     int
	Rate     float64
	Reviews  int
	Liked    int
}

func defaultTestMovie() testMovie {
	return testMovie{
		Name:     TestMovieName,
		Category: TestMovieCategory,
		Language: TestMovieLanguage,
		Year:     TestMovieYear,
	}
}

func insertTestMovie(t testing.TB, db *pgxpool.Pool, m testMovie) int {
	var id int
	err := db.QueryRow(
		context.Background(),
		`INSERT INTO movies (name, category, language, year, rate, number_of_reviews, liked)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		m.Name,
		m.Category,
		m.Language,
		m.Year,
		m.Rate,
		m.Reviews,
		m.Liked,
	).Scan(&id)
	require.NoError(t, err)

	return id
}
