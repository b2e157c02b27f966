package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mqlstam/vinylplatz2025/internal/domain"
)

// FavoriteService maintains each user's set of favorited listings.
type FavoriteService struct {
	favorites domain.FavoriteRepository
	users     domain.UserRepository
	vinyls    domain.VinylRepository
}

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(favorites domain.FavoriteRepository, users domain.UserRepository, vinyls domain.VinylRepository) *FavoriteService {
	return &FavoriteService{favorites: favorites, users: users, vinyls: vinyls}
}

// List returns the user's favorited vinyls with seller and genre
// populated. The user must exist.
func (s *FavoriteService) List(ctx context.Context, userID string) ([]domain.Vinyl, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.favorites.ListVinyls(ctx, userID)
}

// IsFavorited reports whether the user has favorited the vinyl. It is a
// permissive read: an absent user or vinyl yields false, not an error.
func (s *FavoriteService) IsFavorited(ctx context.Context, userID, vinylID string) (bool, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return s.favorites.Exists(ctx, userID, vinylID)
}

// Add favorites the vinyl for the user. Adding an already-favorited vinyl
// succeeds without duplicating the pair.
func (s *FavoriteService) Add(ctx context.Context, userID, vinylID string) (bool, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return false, err
	}
	if _, err := s.vinyls.GetByID(ctx, vinylID); err != nil {
		return false, fmt.Errorf("resolve vinyl %s: %w", vinylID, err)
	}

	if err := s.favorites.Add(ctx, userID, vinylID); err != nil {
		return false, err
	}
	return true, nil
}

// Remove unfavorites the vinyl. Removing a vinyl that was never favorited
// returns false rather than an error.
func (s *FavoriteService) Remove(ctx context.Context, userID, vinylID string) (bool, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return false, err
	}
	return s.favorites.Remove(ctx, userID, vinylID)
}
