package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mqlstam/vinylplatz2025/internal/domain"
)

// GenreRepository implements domain.GenreRepository using SQLite.
type GenreRepository struct {
	db *sql.DB
}

// NewGenreRepository creates a new SQLite-backed GenreRepository.
func NewGenreRepository(db *DB) *GenreRepository {
	return &GenreRepository{db: db.SqlDB}
}

func (r *GenreRepository) Create(ctx context.Context, genre *domain.Genre) error {
	if genre.ID == "" {
		genre.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO genres (id, name, description) VALUES (?, ?, ?)",
		genre.ID, genre.Name, genre.Description,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateGenre
		}
		return fmt.Errorf("insert genre: %w", err)
	}
	return nil
}

func (r *GenreRepository) GetByID(ctx context.Context, id string) (*domain.Genre, error) {
	return r.getWhere(ctx, "id = ?", id)
}

func (r *GenreRepository) GetByName(ctx context.Context, name string) (*domain.Genre, error) {
	// Exact, case-sensitive match, consistent with the UNIQUE constraint.
	return r.getWhere(ctx, "name = ?", name)
}

func (r *GenreRepository) getWhere(ctx context.Context, where string, arg any) (*domain.Genre, error) {
	genre := &domain.Genre{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, description FROM genres WHERE "+where, arg,
	).Scan(&genre.ID, &genre.Name, &genre.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query genre: %w", err)
	}
	return genre, nil
}

func (r *GenreRepository) List(ctx context.Context, search string) ([]domain.Genre, error) {
	query := "SELECT id, name, description FROM genres"
	var args []any
	if search != "" {
		query += " WHERE LOWER(name) LIKE ?"
		args = append(args, "%"+strings.ToLower(search)+"%")
	}
	query += " ORDER BY name ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	defer rows.Close()

	var genres []domain.Genre
	for rows.Next() {
		var g domain.Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.Description); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

func (r *GenreRepository) Update(ctx context.Context, genre *domain.Genre) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE genres SET name = ?, description = ? WHERE id = ?",
		genre.Name, genre.Description, genre.ID,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateGenre
		}
		return fmt.Errorf("update genre: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GenreRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM genres WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete genre: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
