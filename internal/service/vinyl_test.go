package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mqlstam/vinylplatz2025/internal/domain"
	"github.com/mqlstam/vinylplatz2025/internal/repository/sqlite"
	"github.com/mqlstam/vinylplatz2025/internal/service"
)

func newTestVinylService(t *testing.T) (*service.VinylService, *sqlite.DB) {
	t.Helper()
	db := openTestDB(t)
	return service.NewVinylService(db.Vinyls(), db.Users(), db.Genres()), db
}

func registerUser(t *testing.T, db *sqlite.DB, email string) *domain.User {
	t.Helper()
	user := &domain.User{Name: "User", Email: email, PasswordHash: "hash"}
	if err := db.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func listVinyl(t *testing.T, svc *service.VinylService, seller *domain.User, title string, price float64) *domain.Vinyl {
	t.Helper()
	vinyl := &domain.Vinyl{
		Title:    title,
		Artist:   "Artist",
		Price:    decimal.NewFromFloat(price),
		SellerID: seller.ID,
	}
	if err := svc.Create(context.Background(), vinyl); err != nil {
		t.Fatalf("create vinyl %s: %v", title, err)
	}
	return vinyl
}

func TestVinylService_Create_Defaults(t *testing.T) {
	svc, db := newTestVinylService(t)
	seller := registerUser(t, db, "seller@example.com")

	vinyl := listVinyl(t, svc, seller, "Untitled", 10)
	if vinyl.Condition != domain.ConditionGood {
		t.Fatalf("expected default condition Good, got %s", vinyl.Condition)
	}
}

func TestVinylService_Create_Invalid(t *testing.T) {
	svc, db := newTestVinylService(t)
	seller := registerUser(t, db, "seller@example.com")
	ctx := context.Background()

	cond := domain.Condition("Pristine")
	tests := []struct {
		name  string
		vinyl domain.Vinyl
		want  error
	}{
		{"missing title", domain.Vinyl{Artist: "A", SellerID: seller.ID, Price: decimal.NewFromInt(1)}, domain.ErrInvalidInput},
		{"missing artist", domain.Vinyl{Title: "T", SellerID: seller.ID, Price: decimal.NewFromInt(1)}, domain.ErrInvalidInput},
		{"unknown condition", domain.Vinyl{Title: "T", Artist: "A", Condition: cond, SellerID: seller.ID, Price: decimal.NewFromInt(1)}, domain.ErrInvalidInput},
		{"negative price", domain.Vinyl{Title: "T", Artist: "A", SellerID: seller.ID, Price: decimal.NewFromInt(-5)}, domain.ErrInvalidInput},
		{"unknown seller", domain.Vinyl{Title: "T", Artist: "A", SellerID: "missing", Price: decimal.NewFromInt(1)}, domain.ErrNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := tc.vinyl
			if err := svc.Create(ctx, &v); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestVinylService_Create_UnknownGenre(t *testing.T) {
	svc, db := newTestVinylService(t)
	seller := registerUser(t, db, "seller@example.com")

	missing := "missing-genre"
	vinyl := &domain.Vinyl{
		Title:    "T",
		Artist:   "A",
		Price:    decimal.NewFromInt(1),
		SellerID: seller.ID,
		GenreID:  &missing,
	}
	if err := svc.Create(context.Background(), vinyl); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestVinylService_Update_OwnerOnly(t *testing.T) {
	svc, db := newTestVinylService(t)
	seller := registerUser(t, db, "seller@example.com")
	other := registerUser(t, db, "other@example.com")
	ctx := context.Background()

	vinyl := listVinyl(t, svc, seller, "Guarded", 20)

	_, err := svc.Update(ctx, vinyl.ID, other.ID, domain.VinylPatch{Title: strptr("Stolen")})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	updated, err := svc.Update(ctx, vinyl.ID, seller.ID, domain.VinylPatch{Title: strptr("Renamed")})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Fatalf("expected renamed vinyl, got %s", updated.Title)
	}
}

func TestVinylService_Update_Partial(t *testing.T) {
	svc, db := newTestVinylService(t)
	seller := registerUser(t, db, "seller@example.com")
	ctx := context.Background()

	genres := service.NewGenreService(db.Genres())
	rock, err := genres.Create(ctx, "Rock", "")
	if err != nil {
		t.Fatalf("create genre: %v", err)
	}

	vinyl := listVinyl(t, svc, seller, "Original", 20)

	// Attach the genre, leave everything else alone.
	updated, err := svc.Update(ctx, vinyl.ID, seller.ID, domain.VinylPatch{GenreID: &rock.ID})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Original" {
		t.Fatalf("title unexpectedly changed to %s", updated.Title)
	}
	if updated.Genre == nil || updated.Genre.Name != "Rock" {
		t.Fatalf("expected genre attached, got %+v", updated.Genre)
	}

	// A pointer to empty string clears the genre.
	updated, err = svc.Update(ctx, vinyl.ID, seller.ID, domain.VinylPatch{GenreID: strptr("")})
	if err != nil {
		t.Fatalf("Update clear genre: %v", err)
	}
	if updated.GenreID != nil {
		t.Fatalf("expected genre cleared, got %v", *updated.GenreID)
	}

	// Negative price patches are rejected.
	neg := decimal.NewFromInt(-1)
	if _, err := svc.Update(ctx, vinyl.ID, seller.ID, domain.VinylPatch{Price: &neg}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestVinylService_Delete_OwnerOnly(t *testing.T) {
	svc, db := newTestVinylService(t)
	seller := registerUser(t, db, "seller@example.com")
	other := registerUser(t, db, "other@example.com")
	ctx := context.Background()

	vinyl := listVinyl(t, svc, seller, "Guarded", 20)

	if err := svc.Delete(ctx, vinyl.ID, other.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(ctx, vinyl.ID, seller.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := svc.Get(ctx, vinyl.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestVinylService_List_UnknownCondition(t *testing.T) {
	svc, _ := newTestVinylService(t)

	_, err := svc.List(context.Background(), domain.VinylFilter{Condition: "Pristine"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
