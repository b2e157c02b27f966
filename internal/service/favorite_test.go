package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mqlstam/vinylplatz2025/internal/domain"
	"github.com/mqlstam/vinylplatz2025/internal/repository/sqlite"
	"github.com/mqlstam/vinylplatz2025/internal/service"
)

func newTestFavoriteEnv(t *testing.T) (*service.FavoriteService, *service.VinylService, *sqlite.DB) {
	t.Helper()
	db := openTestDB(t)
	vinyls := service.NewVinylService(db.Vinyls(), db.Users(), db.Genres())
	favorites := service.NewFavoriteService(db.Favorites(), db.Users(), db.Vinyls())
	return favorites, vinyls, db
}

func TestFavoriteService_AddIsIdempotent(t *testing.T) {
	favorites, vinyls, db := newTestFavoriteEnv(t)
	ctx := context.Background()

	user := registerUser(t, db, "user@example.com")
	seller := registerUser(t, db, "seller@example.com")
	vinyl := listVinyl(t, vinyls, seller, "Keeper", 20)

	if _, err := favorites.Add(ctx, user.ID, vinyl.ID); err != nil {
		t.Fatalf("first Add: %v", err)
	}
	if _, err := favorites.Add(ctx, user.ID, vinyl.ID); err != nil {
		t.Fatalf("repeat Add: %v", err)
	}

	favs, err := favorites.List(ctx, user.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(favs) != 1 {
		t.Fatalf("expected 1 favorite, got %d", len(favs))
	}
	if favs[0].Seller == nil || favs[0].Seller.Email != "seller@example.com" {
		t.Fatalf("expected seller populated on favorite, got %+v", favs[0].Seller)
	}
}

func TestFavoriteService_Add_UnknownVinyl(t *testing.T) {
	favorites, _, db := newTestFavoriteEnv(t)
	user := registerUser(t, db, "user@example.com")

	_, err := favorites.Add(context.Background(), user.ID, "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFavoriteService_Add_UnknownUser(t *testing.T) {
	favorites, vinyls, db := newTestFavoriteEnv(t)
	seller := registerUser(t, db, "seller@example.com")
	vinyl := listVinyl(t, vinyls, seller, "Record", 10)

	_, err := favorites.Add(context.Background(), "missing", vinyl.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFavoriteService_RemoveAbsentIsNotAnError(t *testing.T) {
	favorites, vinyls, db := newTestFavoriteEnv(t)
	ctx := context.Background()

	user := registerUser(t, db, "user@example.com")
	seller := registerUser(t, db, "seller@example.com")
	vinyl := listVinyl(t, vinyls, seller, "Record", 10)

	removed, err := favorites.Remove(ctx, user.ID, vinyl.ID)
	if err != nil {
		t.Fatalf("Remove absent: %v", err)
	}
	if removed {
		t.Fatal("expected removal of absent favorite to report false")
	}

	if _, err := favorites.Add(ctx, user.ID, vinyl.ID); err != nil {
		t.Fatalf("Add: %v", err)
	}
	removed, err = favorites.Remove(ctx, user.ID, vinyl.ID)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if !removed {
		t.Fatal("expected removal of present favorite to report true")
	}
}

func TestFavoriteService_IsFavorited(t *testing.T) {
	favorites, vinyls, db := newTestFavoriteEnv(t)
	ctx := context.Background()

	user := registerUser(t, db, "user@example.com")
	seller := registerUser(t, db, "seller@example.com")
	vinyl := listVinyl(t, vinyls, seller, "Record", 10)

	got, err := favorites.IsFavorited(ctx, user.ID, vinyl.ID)
	if err != nil {
		t.Fatalf("IsFavorited: %v", err)
	}
	if got {
		t.Fatal("expected not favorited")
	}

	// The status check is permissive: unknown vinyls just read as false.
	got, err = favorites.IsFavorited(ctx, user.ID, "missing")
	if err != nil {
		t.Fatalf("IsFavorited unknown vinyl: %v", err)
	}
	if got {
		t.Fatal("expected unknown vinyl to read as not favorited")
	}

	if _, err := favorites.Add(ctx, user.ID, vinyl.ID); err != nil {
		t.Fatalf("Add: %v", err)
	}
	got, err = favorites.IsFavorited(ctx, user.ID, vinyl.ID)
	if err != nil {
		t.Fatalf("IsFavorited: %v", err)
	}
	if !got {
		t.Fatal("expected favorited")
	}
}

func TestFavoriteService_List_UnknownUser(t *testing.T) {
	favorites, _, _ := newTestFavoriteEnv(t)

	_, err := favorites.List(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
