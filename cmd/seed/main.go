package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-member-portal/config"
	"github.com/oksasatya/go-member-portal/internal/domain/apperror"
	"github.com/oksasatya/go-member-portal/internal/domain/entity"
	pginfra "github.com/oksasatya/go-member-portal/internal/infrastructure/postgres"
	"github.com/oksasatya/go-member-portal/pkg/helpers"
)

// seed creates the initial admin account, or promotes it when the email is
// already registered.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.SeedAdminPassword == "" {
		log.Fatal("SEED_ADMIN_PASSWORD is required")
	}

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	db := pginfra.OpenDB(pool)
	defer func() { _ = db.Close() }()
	users := pginfra.NewUserRepository(db)

	hash, err := helpers.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	_, err = users.Insert(ctx, &entity.User{
		Email:        cfg.SeedAdminEmail,
		Name:         cfg.SeedAdminName,
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
	})
	switch {
	case err == nil:
		fmt.Printf("seeded admin: email=%s name=%s\n", cfg.SeedAdminEmail, cfg.SeedAdminName)
	case errors.Is(err, apperror.ErrDuplicateKey):
		if err := users.UpdateRole(ctx, cfg.SeedAdminEmail, entity.RoleAdmin); err != nil {
			log.Fatalf("failed to promote existing user: %v", err)
		}
		fmt.Printf("promoted existing user to admin: email=%s\n", cfg.SeedAdminEmail)
	default:
		log.Fatalf("failed to seed admin: %v", err)
	}
}
