package service_test

import (
	"context"
	"testing"

	"github.com/mqlstam/vinylplatz2025/internal/domain"
	"github.com/mqlstam/vinylplatz2025/internal/service"
)

func TestSeedService_Run(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	seed := service.NewSeedService(db.Users(), db.Genres(), db.Vinyls(), db.Orders(), db.Favorites(), 4)
	if err := seed.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	count, err := db.Users().Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 5 {
		t.Fatalf("expected 5 seeded users, got %d", count)
	}

	admin, err := db.Users().GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if admin.Role != domain.RoleAdmin {
		t.Fatalf("expected alice to be admin, got %s", admin.Role)
	}

	genres, err := db.Genres().List(ctx, "")
	if err != nil {
		t.Fatalf("List genres: %v", err)
	}
	if len(genres) != 7 {
		t.Fatalf("expected 7 seeded genres, got %d", len(genres))
	}

	page, err := db.Vinyls().List(ctx, domain.VinylFilter{Limit: 50})
	if err != nil {
		t.Fatalf("List vinyls: %v", err)
	}
	if page.Total != 11 {
		t.Fatalf("expected 11 seeded vinyls, got %d", page.Total)
	}

	// Seeded accounts can log in with the demo password.
	auth := service.NewAuthService(db.Users(), testJWTSecret, 4)
	if _, _, err := auth.Login(ctx, "bob@example.com", "password123"); err != nil {
		t.Fatalf("seeded login: %v", err)
	}
}

func TestSeedService_RunIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	seed := service.NewSeedService(db.Users(), db.Genres(), db.Vinyls(), db.Orders(), db.Favorites(), 4)
	if err := seed.Run(ctx); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if err := seed.Run(ctx); err != nil {
		t.Fatalf("second Run: %v", err)
	}

	count, err := db.Users().Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 5 {
		t.Fatalf("expected second run to be a no-op, got %d users", count)
	}
}

func TestSeedService_SkipsNonEmptyDatabase(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	existing := registerUser(t, db, "existing@example.com")

	seed := service.NewSeedService(db.Users(), db.Genres(), db.Vinyls(), db.Orders(), db.Favorites(), 4)
	if err := seed.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	count, err := db.Users().Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected seeding skipped for non-empty database, got %d users", count)
	}
	if _, err := db.Users().GetByID(ctx, existing.ID); err != nil {
		t.Fatalf("existing user lost: %v", err)
	}
}
