package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/exaring/otelpgx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-catalog-service/internal/blob"
	"github.com/metinatakli/movie-catalog-service/internal/domain"
	"github.com/metinatakli/movie-catalog-service/internal/mailer"
	"github.com/metinatakli/movie-catalog-service/internal/repository"
	appvalidator "github.com/metinatakli/movie-catalog-service/internal/validator"
	"github.com/metinatakli/movie-catalog-service/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

var (
	version = vcs.Version()
)

type Application struct {
	config         Config
	logger         *slog.Logger
	db             *pgxpool.Pool
	redis          redis.UniversalClient
	validator      *validator.Validate
	mailer         mailer.Mailer
	sessionManager *scs.SessionManager
	metrics        *metrics
	wg             sync.WaitGroup

	userRepo   domain.UserRepository
	movieRepo  domain.MovieRepository
	reviewRepo domain.ReviewRepository
	likeRepo   domain.LikeRepository

	objectStore domain.ObjectStore
}

type Config struct {
	Port             int
	Env              string
	DB               DBConfig
	Redis            RedisConfig
	SMTP             SMTPConfig
	S3               blob.S3Config
	OtelCollectorUrl string
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

// Option overrides one of the Application's external collaborators, used by
// the tests to swap in fakes.
type Option func(*Application)

func WithObjectStore(store domain.ObjectStore) Option {
	return func(app *Application) {
		app.objectStore = store
	}
}

func WithMailer(m mailer.Mailer) Option {
	return func(app *Application) {
		app.mailer = m
	}
}

func Run() error {
	var cfg Config

	flag.IntVar(&cfg.Port, "port", 3000, "server port")
	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")

	flag.StringVar(&cfg.DB.DSN, "db-dsn", "", "PostgreSQL DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")

	flag.StringVar(&cfg.Redis.URL, "redis-url", "", "Redis URL")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.StringVar(&cfg.SMTP.Host, "smtp-host", "sandbox.smtp.mailtrap.io", "SMTP host")
	flag.IntVar(&cfg.SMTP.Port, "smtp-port", 2525, "SMTP port")
	flag.StringVar(&cfg.SMTP.Username, "smtp-username", "", "SMTP username")
	flag.StringVar(&cfg.SMTP.Password, "smtp-password", "", "SMTP password")
	flag.StringVar(&cfg.SMTP.Sender, "smtp-sender", "Movie Catalog <no-reply@catalog.metinatakli.net>", "SMTP sender")

	flag.StringVar(&cfg.S3.Endpoint, "s3-endpoint", "", "S3 endpoint URL")
	flag.StringVar(&cfg.S3.Region, "s3-region", "us-east-1", "S3 region")
	flag.StringVar(&cfg.S3.Bucket, "s3-bucket", "movie-assets", "S3 bucket for movie assets")
	flag.StringVar(&cfg.S3.AccessKey, "s3-access-key", "", "S3 access key")
	flag.StringVar(&cfg.S3.SecretKey, "s3-secret-key", "", "S3 secret key")

	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", "", "OpenTelemetry collector URL")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	app, err := New(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	if cfg.OtelCollectorUrl != "" {
		app.logger = slog.New(NewMultiHandler(app.logger.Handler(), otelslog.NewHandler("movie-catalog-api")))
	}

	return app.Serve()
}

func New(cfg Config, opts ...Option) (*Application, error) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	validator := appvalidator.NewValidator()

	db, err := newDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := newRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	metrics, err := newMetrics()
	if err != nil {
		db.Close()
		redisClient.Close()
		return nil, err
	}

	app := &Application{
		config:         cfg,
		logger:         logger,
		db:             db,
		redis:          redisClient,
		validator:      validator,
		mailer:         mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender),
		sessionManager: newSessionManager(redisClient),
		metrics:        metrics,
		userRepo:       repository.NewPostgresUserRepository(db),
		movieRepo:      repository.NewPostgresMovieRepository(db),
		reviewRepo:     repository.NewPostgresReviewRepository(db),
		likeRepo:       repository.NewPostgresLikeRepository(db),
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.objectStore == nil {
		store, err := blob.NewS3Store(cfg.S3)
		if err != nil {
			app.Close()
			return nil, err
		}

		app.objectStore = store
	}

	return app, nil
}

// Wait blocks until in-flight background tasks, like welcome emails, finish.
func (app *Application) Wait() {
	app.wg.Wait()
}

func (app *Application) Close() {
	if app.db != nil {
		app.db.Close()
	}
	if app.redis != nil {
		_ = app.redis.Close()
	}
}

func newSessionManager(client *redis.Client) *scs.SessionManager {
	sessionManager := scs.New()

	sessionManager.Store = goredisstore.New(client)
	sessionManager.IdleTimeout = 20 * time.Minute
	sessionManager.Cookie.Name = "session_id"

	return sessionManager
}

func newRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	if err := redisotel.InstrumentTracing(rdb); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := rdb.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func newDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) Serve() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
		}

		app.logger.Info("waiting for background tasks", "addr", srv.Addr)
		app.wg.Wait()

		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware("movie-catalog-api", otelchi.WithChiRoutes(r)))
	r.Use(app.requestLogger)
	r.Use(app.recoverPanic)
	r.Use(app.sessionManager.LoadAndSave)

	r.Get("/healthcheck", app.GetHealth)

	r.Route("/movies", func(r chi.Router) {
		r.Get("/", app.GetMovies)
		r.Get("/banners", app.GetBannerMovies)
		r.Get("/popular", app.GetPopularMovies)
		r.Get("/top-rated", app.GetTopRatedMovies)
		r.Get("/category/{category}", app.GetMoviesByCategory)
		r.Get("/{id}", app.GetMovieById)

		r.With(app.requireAuthentication).Post("/{id}/reviews", app.CreateMovieReview)

		r.Group(func(r chi.Router) {
			r.Use(app.requireAuthentication, app.requireAdmin)

			r.Post("/", app.CreateMovie)
			r.Get("/all", app.ListAllMovies)
			r.Get("/stats", app.GetMovieStats)
			r.Patch("/{id}/assets", app.UploadMovieAssets)
			r.Delete("/{id}", app.DeleteMovie)
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", app.RegisterUser)
		r.Post("/sessions", app.LoginUser)

		r.Group(func(r chi.Router) {
			r.Use(app.requireAuthentication)

			r.Delete("/sessions", app.LogoutUser)

			r.Route("/me", func(r chi.Router) {
				r.Get("/", app.GetCurrentUser)
				r.Patch("/", app.UpdateCurrentUser)
				r.Delete("/", app.DeleteCurrentUser)
				r.Patch("/password", app.ChangePassword)
				r.Patch("/avatar", app.UpdateAvatar)

				r.Get("/likes", app.GetLikedMovies)
				r.Post("/likes", app.LikeMovie)
				r.Delete("/likes/{movieId}", app.UnlikeMovie)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(app.requireAuthentication, app.requireAdmin)

			r.Get("/", app.ListUsers)
			r.Get("/stats", app.GetUserStats)
			r.Delete("/{id}", app.DeleteUser)
		})
	})

	return r
}
