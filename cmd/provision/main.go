package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"go.uber.org/zap"

	"github.com/geek-records/support-desk/internal/config"
	"github.com/geek-records/support-desk/internal/domain"
	"github.com/geek-records/support-desk/internal/identity"
	"github.com/geek-records/support-desk/internal/observability"
	"github.com/geek-records/support-desk/internal/persistence"
)

// Account provisioning lives outside the API surface. This command creates or
// updates a profile row directly; the service itself never writes profiles.
func main() {
	email := flag.String("email", "", "profile email")
	password := flag.String("password", "", "plaintext password, hashed before storage")
	role := flag.String("role", string(domain.RoleUser), "profile role: user or admin")
	flag.Parse()

	if strings.TrimSpace(*email) == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}
	profileRole := domain.Role(*role)
	if profileRole != domain.RoleUser && profileRole != domain.RoleAdmin {
		log.Fatalf("unknown role %q", *role)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
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

	pool := pg.PoolHandle()
	if pool == nil {
		logger.Fatal("POSTGRES_DSN is required for provisioning")
	}

	hash, err := identity.HashPassword(*password, cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to hash password", zap.Error(err))
	}

	const query = `
        INSERT INTO profiles (email, password_hash, role)
        VALUES ($1, $2, $3)
        ON CONFLICT (email) DO UPDATE SET password_hash=$2, role=$3
        RETURNING id`
	var id string
	if err := pool.QueryRow(ctx, query, strings.TrimSpace(*email), hash, profileRole).Scan(&id); err != nil {
		logger.Fatal("failed to provision profile", zap.Error(err))
	}

	logger.Info("profile provisioned",
		zap.String("profile_id", id),
		zap.String("email", strings.TrimSpace(*email)),
		zap.String("role", string(profileRole)))
}
