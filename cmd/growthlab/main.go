package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/growthlab/handler"
	"github.com/dmitrymomot/growthlab/pkg/cache"
	"github.com/dmitrymomot/growthlab/pkg/config"
	"github.com/dmitrymomot/growthlab/pkg/email"
	"github.com/dmitrymomot/growthlab/pkg/httpserver"
	"github.com/dmitrymomot/growthlab/pkg/logger"
	"github.com/dmitrymomot/growthlab/pkg/opensearch"
	"github.com/dmitrymomot/growthlab/pkg/pg"
	"github.com/dmitrymomot/growthlab/pkg/redis"
	"github.com/dmitrymomot/growthlab/pkg/requestid"
	"github.com/dmitrymomot/growthlab/svc/billing"
	"github.com/dmitrymomot/growthlab/svc/content"
	"github.com/dmitrymomot/growthlab/svc/entitlement"
	"github.com/dmitrymomot/growthlab/svc/progress"
)

type appConfig struct {
	Env             string `env:"APP_ENV" envDefault:"development"`
	PlanCatalogPath string `env:"PLAN_CATALOG_PATH" envDefault:"plans.yaml"`
	SearchEnabled   bool   `env:"SEARCH_ENABLED" envDefault:"false"`
	EmailEnabled    bool   `env:"EMAIL_ENABLED" envDefault:"false"`
}

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithEnvironment(cfg.Env, "growthlab"),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	var pgCfg pg.Config
	config.MustLoad(&pgCfg)
	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	var redisCfg redis.Config
	config.MustLoad(&redisCfg)
	redisClient, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer redisClient.Close()

	catalog, err := entitlement.LoadCatalog(ctx, entitlement.NewFileSource(cfg.PlanCatalogPath))
	if err != nil {
		return fmt.Errorf("load plan catalog: %w", err)
	}

	subscriptions := billing.NewPgSubscriptionStore(pool)
	resolver := entitlement.NewResolver(
		billing.NewSource(subscriptions),
		catalog,
		entitlement.WithCache(cache.NewRedis[entitlement.Entitlement](redisClient, "entitlement")),
		entitlement.WithLogger(log),
	)

	contentOpts := []content.ServiceOption{content.WithServiceLogger(log)}
	healthchecks := []func(context.Context) error{
		pg.Healthcheck(pool),
		redis.Healthcheck(redisClient),
	}
	if cfg.SearchEnabled {
		var osCfg opensearch.Config
		config.MustLoad(&osCfg)
		osClient, err := opensearch.New(ctx, osCfg)
		if err != nil {
			return fmt.Errorf("connect opensearch: %w", err)
		}
		contentOpts = append(contentOpts, content.WithSearch(content.NewSearchIndex(osClient, "")))
		healthchecks = append(healthchecks, opensearch.Healthcheck(osClient))
	}
	contentSvc := content.NewService(content.NewPgStore(pool), resolver, contentOpts...)

	progressSvc := progress.NewService(
		progress.NewPgStore(pool),
		contentSvc,
		progress.WithLogger(log),
		progress.WithSummaryCache(cache.NewRedis[progress.Summary](redisClient, "progress")),
	)

	var billingCfg billing.Config
	config.MustLoad(&billingCfg)
	paddle, err := billing.NewPaddleProvider(billingCfg)
	if err != nil {
		return fmt.Errorf("create paddle provider: %w", err)
	}

	webhookOpts := []billing.WebhookOption{billing.WithWebhookLogger(log)}
	if cfg.EmailEnabled {
		var emailCfg email.Config
		config.MustLoad(&emailCfg)
		webhookOpts = append(webhookOpts, billing.WithMailer(email.MustNewPostmarkClient(emailCfg)))
	}
	webhook := billing.NewWebhookHandler(paddle, subscriptions, resolver, webhookOpts...)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestid.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(handler.Auth(redisTokenVerifier(redisClient)))

	r.Get("/health", httpserver.HealthCheckHandler(log, healthchecks...))

	r.Mount("/entitlement", entitlement.Router(resolver))
	r.Mount("/content", content.Router(contentSvc))
	r.Mount("/progress", progress.Router(progressSvc))
	r.Mount("/billing", billing.Router(paddle, catalog, webhook))

	var httpCfg httpserver.Config
	config.MustLoad(&httpCfg)
	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))

	return srv.Run(ctx, r)
}

// redisTokenVerifier resolves bearer tokens against sessions written by the
// external auth provider: "session:<token>" holds the user ID.
func redisTokenVerifier(client *goredis.Client) handler.TokenVerifier {
	return func(ctx context.Context, token string) (uuid.UUID, error) {
		raw, err := client.Get(ctx, "session:"+token).Result()
		if err != nil {
			return uuid.Nil, err
		}
		return uuid.Parse(strings.TrimSpace(raw))
	}
}
