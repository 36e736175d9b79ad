package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	_ "cmsapi/docs" // swagger docs

	"cmsapi/internal/auth"
	"cmsapi/internal/cache"
	"cmsapi/internal/config"
	"cmsapi/internal/db"
	"cmsapi/internal/handler"
	"cmsapi/internal/logger"
	"cmsapi/internal/mailer"
	"cmsapi/internal/repository"
	"cmsapi/internal/router"
	"cmsapi/internal/service"
	"cmsapi/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

// @title CMS API
// @version 1.0
// @description Admin panel API with JWT authentication and role based access control.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.New("info")
		boot.Fatal().Err(err).Msg("configuration")
	}
	log := logger.New(cfg.LogLevel)

	shutdownTracing, err := telemetry.Init(ctx, "cmsapi", cfg.OTLPEndpoint)
	if err != nil {
		log.Fatal().Err(err).Msg("telemetry init")
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}
	defer func() { _ = db.Close(gormDB) }()

	if cfg.ResetDB {
		log.Warn().Msg("RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			log.Fatal().Err(err).Msg("reset database")
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	var cacheClient *cache.Client
	if cfg.RedisAddr != "" {
		cacheClient = cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, log)
		defer func() { _ = cacheClient.Close() }()
		if err := cacheClient.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("redis unreachable, rate limiting disabled until it recovers")
		}
	}

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	refreshRepo := repository.NewRefreshTokenRepository(gormDB)
	resetRepo := repository.NewPasswordResetTokenRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)

	// Auth components
	tokens := auth.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	tokenStore := auth.NewTokenStore(refreshRepo)
	passwords := auth.NewPasswordHasher(cfg.BcryptCost)

	var mail mailer.Mailer = mailer.NewLogMailer(log)
	if cfg.AMQPURL != "" {
		mail = mailer.NewAMQPPublisher(cfg.AMQPURL, cfg.MailQueue)
	}

	// Services
	authService := service.NewAuthService(userRepo, resetRepo, tokens, tokenStore, passwords, mail, log, service.AuthOptions{
		ResetTokenTTL:          cfg.ResetTokenTTL,
		FrontendURL:            cfg.FrontendURL,
		UniformForgotPassword:  cfg.UniformForgotPassword,
		ClientOnlyRegistration: cfg.RestrictSelfRegistration,
	})
	userService := service.NewUserService(userRepo, tokenStore, passwords, log)
	categoryService := service.NewCategoryService(categoryRepo)

	e := echo.New()
	e.HideBanner = true
	router.Register(
		e,
		cfg,
		log,
		router.Guards{Tokens: tokens, Roles: userService, Limiter: cacheClient},
		handler.NewAuthHandler(authService),
		handler.NewUserHandler(userService),
		handler.NewCategoryHandler(categoryService),
	)

	addr := ":" + cfg.ServerPort
	go func() {
		log.Info().Str("addr", addr).Str("swagger", "http://localhost"+addr+"/swagger/index.html").Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start")
		}
	}()

	<-ctx.Done()
	shutdown(log, e, shutdownTracing)
}

func shutdown(log zerolog.Logger, e *echo.Echo, shutdownTracing func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info().Msg("shutting down")
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if err := shutdownTracing(ctx); err != nil {
		log.Error().Err(err).Msg("telemetry shutdown")
	}
}
