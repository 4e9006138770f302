package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/companion-service/internal/api/http"
	"github.com/spec-kit/companion-service/internal/api/http/handlers"
	"github.com/spec-kit/companion-service/internal/auth"
	"github.com/spec-kit/companion-service/internal/chat"
	"github.com/spec-kit/companion-service/internal/config"
	"github.com/spec-kit/companion-service/internal/events"
	"github.com/spec-kit/companion-service/internal/observability"
	"github.com/spec-kit/companion-service/internal/payment"
	"github.com/spec-kit/companion-service/internal/persistence"
	"github.com/spec-kit/companion-service/internal/repository"
	"github.com/spec-kit/companion-service/internal/service"
	"github.com/spec-kit/companion-service/internal/worker"
)

const processedSessionTTL = 7 * 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	metrics := observability.NewMetrics()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	pool := pg.PoolHandle()
	if cfg.Postgres.RunMigrations && pool != nil {
		migrator := persistence.NewMigrator(cfg.Postgres.MigrationsDir, os.Stdout, logger)
		if _, err := migrator.Run(ctx, pool); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	profileRepo := repository.NewProfileRepository(pool)
	planFeatureRepo := repository.NewPlanFeatureRepository(pool)
	footerRepo := repository.NewFooterRepository(pool)
	tokenRepo := repository.NewTokenRepository(pool)
	premiumRepo := repository.NewPremiumRepository(pool)
	characterRepo := repository.NewCharacterRepository(pool)
	settingRepo := repository.NewSettingRepository(pool)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())
	refreshStore := auth.NewRedisRefreshStore(redis.Client, cfg.Auth.RefreshTokenTTL())
	sessions := auth.NewSessionManager(tokens, refreshStore, profileRepo, auth.CookieConfig{
		Secure:     cfg.Auth.CookieSecure,
		RefreshTTL: cfg.Auth.RefreshTokenTTL(),
	})
	gate := auth.NewGate(auth.GateConfig{
		BackendConfigured: cfg.Backend.Configured(),
		FallbackPath:      cfg.Auth.AdminFallbackPath,
	}, sessions, profileRepo, metrics, logger)

	var provider payment.Provider
	if stripeProvider := payment.NewStripeProvider(cfg.Payment); stripeProvider != nil {
		provider = stripeProvider
	} else {
		logger.Warn("payment provider not configured; checkout disabled")
	}

	dispatcher := events.NewInMemoryDispatcher()
	authService := service.NewAuthService(profileRepo)
	contentService := service.NewContentService(planFeatureRepo, footerRepo, dispatcher, logger)
	premiumService := service.NewPremiumService(premiumRepo, provider, cfg.App.PublicURL, logger)
	purchaseService := service.NewPurchaseService(tokenRepo, provider,
		payment.NewRedisDeduper(redis.Client, processedSessionTTL), dispatcher, logger)
	auditService := service.NewAuditService(dispatcher, logger)
	worker.StartEventWorkers(purchaseService, auditService)

	completions := chat.NewClient(chat.ClientConfig{
		APIKey:  chat.ResolveAPIKey(ctx, settingRepo, cfg.Chat.APIKey, logger),
		BaseURL: cfg.Chat.BaseURL,
	}, logger)
	relay := chat.NewRelay(completions, cfg.Chat.Model, logger)

	app := fiber.New(fiber.Config{
		AppName:     cfg.App.Name,
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
		ErrorHandler: httptransport.ErrorHandler(logger, metrics),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Gate:         gate,
		RequireAdmin: auth.RequireAdmin(profileRepo, logger),
		Health:       handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:         handlers.NewAuthHandler(authService, sessions, profileRepo, logger),
		Admin:        handlers.NewAdminHandler(metrics),
		PlanFeatures: handlers.NewPlanFeaturesHandler(contentService, logger),
		Footer:       handlers.NewFooterHandler(contentService),
		Consent:      handlers.NewConsentHandler(cfg.Analytics, cfg.Auth.CookieSecure),
		Characters:   handlers.NewCharactersHandler(characterRepo),
		Chat:         handlers.NewChatHandler(relay, logger),
		Tokens:       handlers.NewTokensHandler(purchaseService, logger),
		EnvCheck:     handlers.NewEnvCheckHandler(),
		Premium:      handlers.NewPremiumHandler(premiumService, purchaseService, logger),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
