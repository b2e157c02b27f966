package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mqlstam/vinylplatz2025/internal/domain"
	"github.com/mqlstam/vinylplatz2025/internal/service"
)

func TestGenreService_Create(t *testing.T) {
	db := openTestDB(t)
	genres := service.NewGenreService(db.Genres())
	ctx := context.Background()

	genre, err := genres.Create(ctx, "Rock", "Guitars and drums")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if genre.ID == "" {
		t.Fatal("expected generated genre ID")
	}

	_, err = genres.Create(ctx, "Rock", "Again")
	if !errors.Is(err, domain.ErrDuplicateGenre) {
		t.Fatalf("expected ErrDuplicateGenre, got %v", err)
	}

	_, err = genres.Create(ctx, "", "No name")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGenreService_Update_RenameConflict(t *testing.T) {
	db := openTestDB(t)
	genres := service.NewGenreService(db.Genres())
	ctx := context.Background()

	if _, err := genres.Create(ctx, "Rock", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}
	jazz, err := genres.Create(ctx, "Jazz", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = genres.Update(ctx, jazz.ID, strptr("Rock"), nil)
	if !errors.Is(err, domain.ErrDuplicateGenre) {
		t.Fatalf("expected ErrDuplicateGenre, got %v", err)
	}

	// Renaming a genre to its own current name is allowed.
	updated, err := genres.Update(ctx, jazz.ID, strptr("Jazz"), strptr("Improvised music"))
	if err != nil {
		t.Fatalf("rename to self: %v", err)
	}
	if updated.Description != "Improvised music" {
		t.Fatalf("expected description updated, got %s", updated.Description)
	}
}

func TestGenreService_Update_NotFound(t *testing.T) {
	db := openTestDB(t)
	genres := service.NewGenreService(db.Genres())

	_, err := genres.Update(context.Background(), "missing", strptr("X"), nil)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGenreService_Delete(t *testing.T) {
	db := openTestDB(t)
	genres := service.NewGenreService(db.Genres())
	ctx := context.Background()

	genre, err := genres.Create(ctx, "Doomed", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := genres.Delete(ctx, genre.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := genres.Delete(ctx, genre.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
