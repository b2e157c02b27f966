package domain

import "context"

// Genre is a named taxonomy entry for vinyl listings. Names are unique
// (case-sensitive exact match, enforced by the repository).
type Genre struct {
	ID          string
	Name        string
	Description string
}

// GenreRepository defines persistence operations for genres.
type GenreRepository interface {
	Create(ctx context.Context, genre *Genre) error
	GetByID(ctx context.Context, id string) (*Genre, error)
	GetByName(ctx context.Context, name string) (*Genre, error)
	// List returns all genres sorted by name ascending. When search is
	// non-empty it filters by case-insensitive substring on the name.
	List(ctx context.Context, search string) ([]Genre, error)
	Update(ctx context.Context, genre *Genre) error
	Delete(ctx context.Context, id string) error
}
