// seed inserts local-dev accounts into the database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/raqa-app/auth-service/internal/auth"
	"github.com/raqa-app/auth-service/internal/domain"
	"github.com/raqa-app/auth-service/internal/infrastructure/postgres"
)

type accountSpec struct {
	name      string
	email     string
	password  string
	resetCode string // non-empty seeds a pending reset
	expired   bool
}

var accounts = []accountSpec{
	{"Seed User", "seed@test.local", "secret1", "", false},
	{"Pending Reset", "reset@test.local", "secret1", "123456", false},
	// Already-expired code, for poking at the lazy-expiry path
	{"Expired Reset", "expired@test.local", "secret1", "654321", true},
}

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("db schema: %v", err)
	}

	repo := postgres.NewAccountRepository(pool)
	hasher := auth.NewPasswordHasher()
	now := time.Now().UTC()

	for _, spec := range accounts {
		hash, err := hasher.Hash(spec.password)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}

		account := &domain.Account{
			ID:           uuid.NewString(),
			Email:        spec.email,
			Name:         spec.name,
			PasswordHash: hash,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if spec.resetCode != "" {
			expiry := now.Add(10 * time.Minute)
			if spec.expired {
				expiry = now.Add(-1 * time.Minute)
			}
			account.SetResetCode(spec.resetCode, expiry)
		}

		if err := repo.Insert(ctx, account); err != nil {
			log.Printf("skip %s: %v", spec.email, err)
			continue
		}
		fmt.Printf("seeded %s (password %q)\n", spec.email, spec.password)
	}
}
