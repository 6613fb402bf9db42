package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"

	"github.com/ghtimeline/timeline/db"
	"github.com/ghtimeline/timeline/handler"
	"github.com/ghtimeline/timeline/modules"
	"github.com/ghtimeline/timeline/modules/signup"
	updatemod "github.com/ghtimeline/timeline/modules/update"
	"github.com/ghtimeline/timeline/pkg/config"
	"github.com/ghtimeline/timeline/pkg/cors"
	"github.com/ghtimeline/timeline/pkg/email"
	"github.com/ghtimeline/timeline/pkg/environment"
	"github.com/ghtimeline/timeline/pkg/httpserver"
	"github.com/ghtimeline/timeline/pkg/jwt"
	"github.com/ghtimeline/timeline/pkg/logger"
	"github.com/ghtimeline/timeline/pkg/pg"
	"github.com/ghtimeline/timeline/pkg/ratelimiter"
	"github.com/ghtimeline/timeline/pkg/redis"
	"github.com/ghtimeline/timeline/pkg/requestid"
	"github.com/ghtimeline/timeline/svc/archive"
	"github.com/ghtimeline/timeline/svc/delivery"
	"github.com/ghtimeline/timeline/svc/digest"
	"github.com/ghtimeline/timeline/svc/subscriber"
	"github.com/ghtimeline/timeline/svc/timeline"
	"github.com/ghtimeline/timeline/svc/update"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if _, err := os.Stat(".env"); err == nil {
		if err := config.LoadEnv(".env"); err != nil {
			return fmt.Errorf("load .env: %w", err)
		}
	}
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	env := cfg.Env.Environment()
	log := logger.New(
		logger.WithConfig(cfg.Log),
		logger.WithEnvironment(env, cfg.ServiceName),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			environment.LoggerExtractor(),
		),
	)
	slog.SetDefault(log)

	pool, err := pg.Connect(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := pg.Migrate(ctx, pool, db.Migrations, cfg.DB, log); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	var rdb *goredis.Client
	if cfg.Redis.Enabled() {
		rdb, err = redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer func() { _ = rdb.Close() }()
	}

	mailer, err := email.New(cfg.Email)
	if err != nil {
		return fmt.Errorf("create mailer: %w", err)
	}

	checks := newDepChecks(pool, rdb, mailer)
	archiver, err := buildArchiver(ctx, cfg.Archive, checks)
	if err != nil {
		return err
	}

	if err := checks.startup(ctx, log); err != nil {
		return err
	}
	if err := email.SendTestEmail(ctx, mailer, cfg.Email.TestRecipient); err != nil {
		log.WarnContext(ctx, "startup test email failed", logger.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	timelineMetrics := timeline.NewMetrics(reg)

	client, err := timeline.NewClient(cfg.Timeline,
		timeline.WithLogger(log),
		timeline.WithMetrics(timelineMetrics),
	)
	if err != nil {
		return fmt.Errorf("create feed client: %w", err)
	}

	var feedCache timeline.Cache = timeline.NewMemoryCache(cfg.PreviewCacheSize)
	if rdb != nil {
		feedCache = timeline.NewRedisCache(rdb, "")
	}
	previewFeed := timeline.NewCachedFetcher(client, feedCache, cfg.Timeline.PreviewCacheTTL, log, timelineMetrics)

	loc, err := time.LoadLocation(cfg.Timeline.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone: %w", err)
	}

	store := subscriber.NewPostgresStore(pool, cfg.DB.QueryTimeout)
	subscribers := subscriber.NewService(
		store,
		mailer,
		subscriber.WithLogger(log),
		subscriber.WithMetrics(subscriber.NewMetrics(reg)),
		subscriber.WithConfig(cfg.Subscriber),
	)

	cycle := update.NewService(
		store,
		client,
		digest.New(digest.WithLocation(loc)),
		delivery.New(mailer, cfg.Delivery,
			delivery.WithLogger(log),
			delivery.WithMetrics(delivery.NewMetrics(reg)),
		),
		update.WithPreviewFetcher(previewFeed),
		update.WithArchiver(archiver),
		update.WithConfig(cfg.Update),
		update.WithLogger(log),
	)

	signupMW, err := limiter(cfg.SignupLimit, rdb, "signup")
	if err != nil {
		return err
	}
	updateMW, err := limiter(cfg.TriggerLimit, rdb, "trigger")
	if err != nil {
		return err
	}
	if cfg.JWT.Enabled() {
		tokens, err := jwt.NewFromConfig(cfg.JWT)
		if err != nil {
			return fmt.Errorf("create jwt service: %w", err)
		}
		updateMW = append([]func(http.Handler) http.Handler{
			jwt.Middleware(tokens, jwt.RequireScope(updatemod.Scope)),
		}, updateMW...)
	} else {
		log.WarnContext(ctx, "JWT_SECRET not set, update endpoints are unauthenticated")
	}

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		environment.Middleware(env),
		middleware.RealIP,
		handler.Recoverer(log),
		cors.Middleware(cfg.CORS),
	)

	live := httpserver.LivenessHandler("Server is running!")
	r.Get("/health", live)
	r.Get("/health/ready", httpserver.HealthCheckHandler(log, checks.all()))
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	api := modules.Router(modules.RouterOptions{
		Signup: signup.New(subscribers, log, signup.WithMiddleware(signupMW...)),
		Update: updatemod.New(cycle, log, updatemod.WithMiddleware(updateMW...)),
	})
	api.Get("/health", live)
	r.Mount("/api", api)

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, r)
}

// depChecks splits dependency checks by their effect on startup. Required
// checks gate the boot; advisory ones are only logged. Readiness runs both.
type depChecks struct {
	required map[string]httpserver.CheckFunc
	advisory map[string]httpserver.CheckFunc
}

func newDepChecks(pool *pgxpool.Pool, rdb *goredis.Client, mailer email.EmailSender) depChecks {
	p := depChecks{
		required: map[string]httpserver.CheckFunc{"postgres": pg.Healthcheck(pool)},
		advisory: map[string]httpserver.CheckFunc{"email": email.Healthcheck(mailer)},
	}
	if rdb != nil {
		p.required["redis"] = redis.Healthcheck(rdb)
	}
	return p
}

func (p depChecks) all() map[string]httpserver.CheckFunc {
	out := make(map[string]httpserver.CheckFunc, len(p.required)+len(p.advisory))
	maps.Copy(out, p.required)
	maps.Copy(out, p.advisory)
	return out
}

func (p depChecks) startup(ctx context.Context, log *slog.Logger) error {
	if failed := httpserver.RunChecks(ctx, log, p.advisory); len(failed) > 0 {
		log.WarnContext(ctx, "optional dependencies unavailable at startup",
			slog.Any("checks", failed),
		)
	}
	if failed := httpserver.RunChecks(ctx, log, p.required); len(failed) > 0 {
		return fmt.Errorf("startup checks failed: %v", failed)
	}
	return nil
}

func buildArchiver(ctx context.Context, cfg archive.Config, p depChecks) (archive.Archiver, error) {
	if !cfg.Enabled() {
		return archive.Noop{}, nil
	}
	s3a, err := archive.NewS3Archive(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create archive: %w", err)
	}
	p.advisory["archive"] = s3a.Healthcheck
	return s3a, nil
}

// limiter builds a per-IP token bucket backed by Redis when available.
func limiter(cfg ratelimiter.Config, rdb *goredis.Client, name string) ([]func(http.Handler) http.Handler, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	var store ratelimiter.Store
	if rdb != nil {
		store = ratelimiter.NewRedisStore(rdb)
	} else {
		store = ratelimiter.NewMemoryStore()
	}
	bucket, err := ratelimiter.NewBucket(store, cfg, ratelimiter.WithKeyPrefix(name))
	if err != nil {
		return nil, errors.Join(fmt.Errorf("%s rate limit", name), err)
	}
	return []func(http.Handler) http.Handler{ratelimiter.Middleware(bucket, ratelimiter.ByIP)}, nil
}
