package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"jobfair/internal/auth"
	"jobfair/internal/cache"
	"jobfair/internal/config"
	"jobfair/internal/db"
	apperrors "jobfair/internal/errors"
	"jobfair/internal/handler"
	"jobfair/internal/logging"
	"jobfair/internal/metrics"
	"jobfair/internal/middleware"
	"jobfair/internal/repository"
	"jobfair/internal/router"
	"jobfair/internal/service"
	"jobfair/internal/storage"
)

// @title Job Fair API
// @version 1.0
// @description Virtual job fair backend: sessions, users, companies, offers, stands and media.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.WithError(err).Fatal("database init")
	}
	if cfg.ResetDB {
		logger.Warn("RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			logger.WithError(err).Fatal("reset database")
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		logger.WithError(err).Fatal("migrate database")
	}

	redisClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer redisClient.Close()
	identities := cache.NewMemoryIdentityCache(cfg.IdentityCacheSize, cfg.IdentityCacheTTL)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	companyRepo := repository.NewCompanyRepository(gormDB)
	standRepo := repository.NewStandRepository(gormDB)
	offerRepo := repository.NewOfferRepository(gormDB)
	videoRepo := repository.NewVideoRepository(gormDB)
	filesRepo := repository.NewFilesRepository(gormDB)

	// Auth
	hasher := auth.NewBcryptHasher()
	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		logger.WithError(err).Fatal("token service")
	}
	var revocations auth.RevocationStore
	if cfg.TokenRevocation {
		revocations = auth.NewUserRevocationStore(userRepo)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)
	m.WatchIdentityCache(identities.Len)

	ctx := context.Background()
	blobs, err := storage.NewS3Store(ctx, storage.S3Config{
		Bucket:     cfg.S3Bucket,
		Region:     cfg.S3Region,
		Endpoint:   cfg.S3Endpoint,
		AccessKey:  cfg.S3AccessKey,
		SecretKey:  cfg.S3SecretKey,
		PresignTTL: cfg.S3PresignTTL,
	})
	if err != nil {
		logger.WithError(err).Fatal("object storage")
	}

	// Services
	authService := service.NewAuthService(service.AuthDeps{
		Users:       userRepo,
		Hasher:      hasher,
		Tokens:      tokens,
		Identities:  identities,
		CacheTTL:    cfg.IdentityCacheTTL,
		Revocations: revocations,
		Metrics:     m,
		Logger:      logger,
	})
	userService := service.NewUserService(userRepo, hasher, identities, logger)
	companyService := service.NewCompanyService(companyRepo, userRepo, standRepo, blobs, logger)
	offerService := service.NewOfferService(offerRepo, companyRepo)
	videoService := service.NewVideoService(videoRepo)
	fileService := service.NewFileService(filesRepo, blobs, logger)

	e := echo.New()
	router.Register(e, cfg,
		router.Handlers{
			Auth:    handler.NewAuthHandler(authService, cfg.CookieName, cfg.CookieSecure),
			Users:   handler.NewUserHandler(userService),
			Company: handler.NewCompanyHandler(companyService),
			Offers:  handler.NewOfferHandler(offerService),
			Media:   handler.NewMediaHandler(videoService, fileService),
		},
		router.Deps{
			Gate:         middleware.NewGate(tokens, revocations, cfg.CookieName, m, logger),
			LoginLimiter: middleware.LoginRateLimiter(redisClient, cfg.LoginRateLimit, cfg.LoginRateWindow, m, logger),
			Metrics:      m,
			Logger:       logger,
			Health:       healthCheck(gormDB, redisClient, logger),
		},
	)

	go func() {
		addr := ":" + cfg.ServerPort
		logger.WithField("addr", addr).Info("server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("server shutdown")
	}
}

// healthCheck fails when MySQL is unreachable. Redis failures are only logged
// since the login limiter fails open.
func healthCheck(gormDB *gorm.DB, redisClient *cache.Client, logger logrus.FieldLogger) func(echo.Context) error {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		sqlDB, err := gormDB.DB()
		if err != nil {
			return apperrors.Dependency("health", err)
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return apperrors.Dependency("health", err)
		}
		if err := redisClient.Ping(ctx); err != nil {
			logger.WithError(err).Warn("redis unreachable, login rate limiting disabled")
		}
		return nil
	}
}
