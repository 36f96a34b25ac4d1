package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"jobfair/internal/auth"
	"jobfair/internal/cache"
	"jobfair/internal/config"
	"jobfair/internal/db"
	"jobfair/internal/logging"
	"jobfair/internal/model"
	"jobfair/internal/repository"
	"jobfair/internal/service"
)

// seedAccount is one account created by the seed script.
type seedAccount struct {
	Name     string
	Email    string
	Password string
	Role     model.Role
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	logger.Info("starting seed script")

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.WithError(err).Fatal("connect database")
	}
	if err := db.Migrate(gormDB); err != nil {
		logger.WithError(err).Fatal("migrate database")
	}

	admin := seedAccount{
		Name:     getEnv("SEED_ADMIN_NAME", "admin"),
		Email:    getEnv("SEED_ADMIN_EMAIL", "admin@jobfair.local"),
		Password: os.Getenv("SEED_ADMIN_PASSWORD"),
		Role:     model.RoleAdmin,
	}
	if admin.Password == "" {
		logger.Fatal("SEED_ADMIN_PASSWORD is required")
	}

	repo := repository.NewUserRepository(gormDB)
	users := service.NewUserService(repo, auth.NewBcryptHasher(), cache.NewMemoryIdentityCache(1, 0), logger)

	created, err := seedAccounts(context.Background(), repo, users, []seedAccount{admin})
	if err != nil {
		logger.WithError(err).Fatal("seed accounts")
	}
	logger.WithField("created", created).Info("seed completed")
}

// seedAccounts creates the accounts whose email is not registered yet.
func seedAccounts(ctx context.Context, repo repository.UserRepository, users service.UserService, accounts []seedAccount) (int, error) {
	created := 0
	for _, acc := range accounts {
		_, err := repo.FindByEmail(ctx, acc.Email)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, fmt.Errorf("check account %s: %w", acc.Email, err)
		}
		if _, err := users.Create(ctx, service.CreateUserInput{
			Name:     acc.Name,
			Email:    acc.Email,
			Password: acc.Password,
			Role:     acc.Role,
		}); err != nil {
			return created, fmt.Errorf("create account %s: %w", acc.Email, err)
		}
		created++
	}
	return created, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
