package domain

import "context"

// FavoriteRepository maintains the user↔vinyl favorites set. Pairs are
// unique; ordering is irrelevant. Rows are removed by the database's
// referential cascade when either side is deleted.
type FavoriteRepository interface {
	// Add inserts the pair if absent. Adding an existing pair is a no-op.
	Add(ctx context.Context, userID, vinylID string) error
	// Remove deletes the pair and reports whether it was present.
	Remove(ctx context.Context, userID, vinylID string) (bool, error)
	Exists(ctx context.Context, userID, vinylID string) (bool, error)
	// ListVinyls returns the user's favorited vinyls with seller and genre
	// populated, newest favorite first.
	ListVinyls(ctx context.Context, userID string) ([]Vinyl, error)
}
