package main

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/config"
	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/observability"
	"github.com/spec-kit/catalog-service/internal/persistence"
	"github.com/spec-kit/catalog-service/internal/repository"
)

func strPtr(s string) *string { return &s }

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Admin.Password == "" {
		log.Fatal("ADMIN_PASSWORD is required to seed the admin user")
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	users := repository.NewUserRepository(pg.PoolHandle())
	categories := repository.NewCategoryRepository(pg.PoolHandle())

	if err := seedAdmin(ctx, users, cfg, logger); err != nil {
		logger.Fatal("failed to seed admin", zap.Error(err))
	}
	if err := seedCategories(ctx, categories, logger); err != nil {
		logger.Fatal("failed to seed categories", zap.Error(err))
	}

	logger.Info("seeding complete")
}

func seedAdmin(ctx context.Context, users repository.UserRepository, cfg *config.Config, logger *zap.Logger) error {
	if _, err := users.GetByEmail(ctx, cfg.Admin.Email); err == nil {
		logger.Info("admin user already exists", zap.String("email", cfg.Admin.Email))
		return nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(cfg.Admin.Password, cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}

	admin := &domain.User{
		Email:        cfg.Admin.Email,
		Name:         strPtr("Admin"),
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}
	logger.Info("admin user created", zap.String("email", admin.Email))
	return nil
}

func seedCategories(ctx context.Context, categories repository.CategoryRepository, logger *zap.Logger) error {
	starter := []*domain.Category{
		{
			Name:        "Necklaces",
			Slug:        "necklaces",
			Image:       strPtr("/luxury-gold-necklace-pendant-elegant.jpg"),
			Description: strPtr("Exquisite necklaces crafted with finest materials"),
			IsActive:    true,
			Order:       1,
		},
		{
			Name:        "Rings",
			Slug:        "rings",
			Image:       strPtr("/elegant-gold-diamond-ring-jewelry.jpg"),
			Description: strPtr("Timeless rings for special moments"),
			IsActive:    true,
			Order:       2,
		},
		{
			Name:        "Bracelets",
			Slug:        "bracelets",
			Image:       strPtr("/luxury-gold-bracelet-cuff-bangle.jpg"),
			Description: strPtr("Sophisticated bracelets designed for elegance"),
			IsActive:    true,
			Order:       3,
		},
		{
			Name:        "Earrings",
			Slug:        "earrings",
			Image:       strPtr("/dangling-gold-pearl-earrings-luxury.jpg"),
			Description: strPtr("Statement earrings that elevate any look"),
			IsActive:    true,
			Order:       4,
		},
	}

	created, err := categories.CreateMany(ctx, starter)
	if err != nil {
		return err
	}
	logger.Info("categories seeded", zap.Int("created", created), zap.Int("skipped", len(starter)-created))
	return nil
}
