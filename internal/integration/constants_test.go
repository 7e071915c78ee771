package integration_test

const (
	dbName         = "movie_catalog"
	dbUser         = "test_user"
	dbPassword     = "test_password"
	dbImageName    = "postgres:17-alpine"
	cacheImageName = "redis:7"

	// User related constants
	TestUserName     = "John Doe"
	TestUserEmail    = "test@example.com"
	TestUserPassword = "Test123!@#"
	TestAdminName    = "Admin"
	TestAdminEmail   = "admin@example.com"

	// Movie related constants
	TestMovieName     = "Test Movie"
	TestMovieCategory = "action"
	TestMovieLanguage = "English"
	TestMovieYear     = 2021
)
