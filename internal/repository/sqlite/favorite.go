package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mqlstam/vinylplatz2025/internal/domain"
)

// FavoriteRepository implements domain.FavoriteRepository using SQLite.
// The (user_id, vinyl_id) primary key makes adds naturally idempotent and
// avoids the read-modify-write over a whole favorites collection that
// would risk lost updates under concurrent toggles.
type FavoriteRepository struct {
	db *sql.DB
}

// NewFavoriteRepository creates a new SQLite-backed FavoriteRepository.
func NewFavoriteRepository(db *DB) *FavoriteRepository {
	return &FavoriteRepository{db: db.SqlDB}
}

func (r *FavoriteRepository) Add(ctx context.Context, userID, vinylID string) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO user_favorites (user_id, vinyl_id, created_at) VALUES (?, ?, ?)",
		userID, vinylID, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert favorite: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, vinylID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM user_favorites WHERE user_id = ? AND vinyl_id = ?",
		userID, vinylID,
	)
	if err != nil {
		return false, fmt.Errorf("delete favorite: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return rows > 0, nil
}

func (r *FavoriteRepository) Exists(ctx context.Context, userID, vinylID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM user_favorites WHERE user_id = ? AND vinyl_id = ?",
		userID, vinylID,
	).Scan(&one)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("query favorite: %w", err)
	}
	return true, nil
}

func (r *FavoriteRepository) ListVinyls(ctx context.Context, userID string) ([]domain.Vinyl, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+vinylColumns+vinylJoins+
			` JOIN user_favorites f ON f.vinyl_id = v.id
			 WHERE f.user_id = ? ORDER BY f.created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	var vinyls []domain.Vinyl
	for rows.Next() {
		vinyl, err := scanVinyl(rows)
		if err != nil {
			return nil, fmt.Errorf("scan favorite vinyl: %w", err)
		}
		vinyls = append(vinyls, *vinyl)
	}
	return vinyls, rows.Err()
}
