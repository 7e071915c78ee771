package integration_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-catalog-service/internal/app"
	"github.com/metinatakli/movie-catalog-service/internal/mailer"
	"github.com/metinatakli/movie-catalog-service/internal/mocks"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type TestApp struct {
	App    *app.Application
	Routes http.Handler
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Mailer *mailer.MockMailer
	Store  *mocks.MockObjectStore
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	mockMailer := mailer.NewMockMailer()
	store := &mocks.MockObjectStore{}

	application, err := app.New(cfg, app.WithMailer(mockMailer), app.WithObjectStore(store))
	if err != nil {
		return nil, err
	}

	// Separate pool for seeding and assertions, so the tests never reach into
	// the application's own connections.
	db, err := pgxpool.New(context.Background(), cfg.DB.DSN)
	if err != nil {
		application.Close()
		return nil, err
	}

	cache := redis.NewClient(&redis.Options{Addr: cfg.Redis.URL})

	return &TestApp{
		App:    application,
		Routes: application.Routes(),
		DB:     db,
		Cache:  cache,
		Mailer: mockMailer,
		Store:  store,
	}, nil
}

// authenticatedUserCookies seeds the default test user and returns the
// session cookies of a logged-in session for them.
func (ta *TestApp) authenticatedUserCookies(t testing.TB) []http.Cookie {
	insertTestUser(t, ta.DB, TestUserName, TestUserEmail, false)
	return ta.loginCookies(t, TestUserEmail)
}

// authenticatedAdminCookies does the same for an admin account.
func (ta *TestApp) authenticatedAdminCookies(t testing.TB) []http.Cookie {
	insertTestUser(t, ta.DB, TestAdminName, TestAdminEmail, true)
	return ta.loginCookies(t, TestAdminEmail)
}

func (ta *TestApp) loginCookies(t testing.TB, email string) []http.Cookie {
	body := strings.NewReader(`{"email": "` + email + `", "password": "` + TestUserPassword + `"}`)

	req, err := prepareRequest(http.MethodPost, "/users/sessions", body, nil, nil)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	ta.Routes.ServeHTTP(rec, req)

	res := rec.Result()
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode, "login for %s failed", email)

	cookies := make([]http.Cookie, 0, len(res.Cookies()))
	for _, c := range res.Cookies() {
		cookies = append(cookies, *c)
	}

	require.NotEmpty(t, cookies, "expected a session cookie after login")

	return cookies
}
