package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mqlstam/vinylplatz2025/internal/domain"
)

// GenreService handles the genre taxonomy. Name uniqueness is
// case-sensitive exact, consistent with the database constraint; only the
// listing search is case-insensitive.
type GenreService struct {
	genres domain.GenreRepository
}

// NewGenreService creates a new GenreService.
func NewGenreService(genres domain.GenreRepository) *GenreService {
	return &GenreService{genres: genres}
}

// List returns all genres sorted by name, optionally filtered by a
// case-insensitive substring search.
func (s *GenreService) List(ctx context.Context, search string) ([]domain.Genre, error) {
	return s.genres.List(ctx, search)
}

// Get retrieves a genre by ID.
func (s *GenreService) Get(ctx context.Context, id string) (*domain.Genre, error) {
	return s.genres.GetByID(ctx, id)
}

// Create adds a new genre. The name must not be in use.
func (s *GenreService) Create(ctx context.Context, name, description string) (*domain.Genre, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: genre name is required", domain.ErrInvalidInput)
	}

	genre := &domain.Genre{Name: name, Description: description}
	if err := s.genres.Create(ctx, genre); err != nil {
		if errors.Is(err, domain.ErrDuplicateGenre) {
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateGenre, name)
		}
		return nil, fmt.Errorf("create genre: %w", err)
	}
	return genre, nil
}

// Update renames and/or re-describes a genre. Renaming to a name held by a
// different genre is a conflict; renaming to the genre's own current name
// is allowed.
func (s *GenreService) Update(ctx context.Context, id string, name, description *string) (*domain.Genre, error) {
	genre, err := s.genres.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil && *name != genre.Name {
		if *name == "" {
			return nil, fmt.Errorf("%w: genre name is required", domain.ErrInvalidInput)
		}
		existing, err := s.genres.GetByName(ctx, *name)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("check genre name: %w", err)
		}
		if existing != nil && existing.ID != id {
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateGenre, *name)
		}
		genre.Name = *name
	}
	if description != nil {
		genre.Description = *description
	}

	if err := s.genres.Update(ctx, genre); err != nil {
		return nil, fmt.Errorf("update genre: %w", err)
	}
	return genre, nil
}

// Delete removes a genre. Listings referencing it keep existing with their
// genre cleared by the schema's ON DELETE SET NULL.
func (s *GenreService) Delete(ctx context.Context, id string) error {
	return s.genres.Delete(ctx, id)
}
