package service

import (
	"context"
	"fmt"

	"github.com/mqlstam/vinylplatz2025/internal/domain"
)

// VinylService handles vinyl listings: creation, ownership-checked
// mutation, and filtered, paginated retrieval.
type VinylService struct {
	vinyls domain.VinylRepository
	users  domain.UserRepository
	genres domain.GenreRepository
}

// NewVinylService creates a new VinylService.
func NewVinylService(vinyls domain.VinylRepository, users domain.UserRepository, genres domain.GenreRepository) *VinylService {
	return &VinylService{vinyls: vinyls, users: users, genres: genres}
}

// List returns one page of listings matching the filter. Unknown sortBy
// values silently fall back to newest-first; an unknown condition value is
// rejected as invalid input.
func (s *VinylService) List(ctx context.Context, filter domain.VinylFilter) (*domain.VinylPage, error) {
	if filter.Condition != "" && !filter.Condition.Valid() {
		return nil, fmt.Errorf("%w: unknown condition %q", domain.ErrInvalidInput, filter.Condition)
	}
	return s.vinyls.List(ctx, filter)
}

// Get retrieves a listing with seller and genre populated.
func (s *VinylService) Get(ctx context.Context, id string) (*domain.Vinyl, error) {
	return s.vinyls.GetByID(ctx, id)
}

// ListBySeller returns all listings owned by the given seller, newest first.
func (s *VinylService) ListBySeller(ctx context.Context, sellerID string) ([]domain.Vinyl, error) {
	return s.vinyls.ListBySeller(ctx, sellerID)
}

// Create persists a new listing after validating that the seller exists
// and, when supplied, that the genre exists.
func (s *VinylService) Create(ctx context.Context, vinyl *domain.Vinyl) error {
	if vinyl.Title == "" || vinyl.Artist == "" {
		return fmt.Errorf("%w: title and artist are required", domain.ErrInvalidInput)
	}
	if vinyl.Condition == "" {
		vinyl.Condition = domain.ConditionGood
	}
	if !vinyl.Condition.Valid() {
		return fmt.Errorf("%w: unknown condition %q", domain.ErrInvalidInput, vinyl.Condition)
	}
	if vinyl.Price.IsNegative() {
		return fmt.Errorf("%w: price cannot be negative", domain.ErrInvalidInput)
	}

	if _, err := s.users.GetByID(ctx, vinyl.SellerID); err != nil {
		return fmt.Errorf("resolve seller %s: %w", vinyl.SellerID, err)
	}
	if vinyl.GenreID != nil && *vinyl.GenreID != "" {
		if _, err := s.genres.GetByID(ctx, *vinyl.GenreID); err != nil {
			return fmt.Errorf("resolve genre %s: %w", *vinyl.GenreID, err)
		}
	} else {
		vinyl.GenreID = nil
	}

	if err := s.vinyls.Create(ctx, vinyl); err != nil {
		return fmt.Errorf("create vinyl: %w", err)
	}
	return nil
}

// Update applies a partial patch to a listing. Only the seller may mutate
// their own listing.
func (s *VinylService) Update(ctx context.Context, id, requesterID string, patch domain.VinylPatch) (*domain.Vinyl, error) {
	vinyl, err := s.vinyls.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vinyl.SellerID != requesterID {
		return nil, fmt.Errorf("%w: you can only update your own vinyl listings", domain.ErrForbidden)
	}

	if patch.Title != nil {
		if *patch.Title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrInvalidInput)
		}
		vinyl.Title = *patch.Title
	}
	if patch.Artist != nil {
		if *patch.Artist == "" {
			return nil, fmt.Errorf("%w: artist cannot be empty", domain.ErrInvalidInput)
		}
		vinyl.Artist = *patch.Artist
	}
	if patch.ReleaseYear != nil {
		vinyl.ReleaseYear = patch.ReleaseYear
	}
	if patch.Condition != nil {
		if !patch.Condition.Valid() {
			return nil, fmt.Errorf("%w: unknown condition %q", domain.ErrInvalidInput, *patch.Condition)
		}
		vinyl.Condition = *patch.Condition
	}
	if patch.Price != nil {
		if patch.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price cannot be negative", domain.ErrInvalidInput)
		}
		vinyl.Price = *patch.Price
	}
	if patch.Description != nil {
		vinyl.Description = *patch.Description
	}
	if patch.CoverImageURL != nil {
		vinyl.CoverImageURL = *patch.CoverImageURL
	}
	if patch.GenreID != nil {
		if *patch.GenreID == "" {
			vinyl.GenreID = nil
		} else {
			if _, err := s.genres.GetByID(ctx, *patch.GenreID); err != nil {
				return nil, fmt.Errorf("resolve genre %s: %w", *patch.GenreID, err)
			}
			vinyl.GenreID = patch.GenreID
		}
	}

	if err := s.vinyls.Update(ctx, vinyl); err != nil {
		return nil, fmt.Errorf("update vinyl: %w", err)
	}

	// Re-read so populated seller/genre reflect the patch.
	return s.vinyls.GetByID(ctx, id)
}

// Delete removes a listing. Only the seller may delete their own listing.
func (s *VinylService) Delete(ctx context.Context, id, requesterID string) error {
	vinyl, err := s.vinyls.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if vinyl.SellerID != requesterID {
		return fmt.Errorf("%w: you can only delete your own vinyl listings", domain.ErrForbidden)
	}
	return s.vinyls.Delete(ctx, id)
}
