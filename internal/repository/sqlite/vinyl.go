package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mqlstam/vinylplatz2025/internal/domain"
)

// VinylRepository implements domain.VinylRepository using SQLite.
type VinylRepository struct {
	db *sql.DB
}

// NewVinylRepository creates a new SQLite-backed VinylRepository.
func NewVinylRepository(db *DB) *VinylRepository {
	return &VinylRepository{db: db.SqlDB}
}

const (
	defaultPageLimit = 12

	vinylColumns = `v.id, v.title, v.artist, v.release_year, v.condition, v.price,
		v.description, v.cover_image_url, v.seller_id, v.genre_id, v.created_at, v.updated_at,
		u.name, u.email, u.profile_image, u.address, u.role, u.registration_date,
		g.name, g.description`

	vinylJoins = ` FROM vinyls v
		JOIN users u ON u.id = v.seller_id
		LEFT JOIN genres g ON g.id = v.genre_id`
)

// conditionRank orders conditions best to worst for sorting.
const conditionRank = `CASE v.condition
	WHEN 'Mint' THEN 0
	WHEN 'Near Mint' THEN 1
	WHEN 'Excellent' THEN 2
	WHEN 'Very Good Plus' THEN 3
	WHEN 'Very Good' THEN 4
	WHEN 'Good' THEN 5
	WHEN 'Fair' THEN 6
	ELSE 7 END`

// sortColumns is the allow-list of sortable fields. Anything else falls
// back to the default creation-time ordering.
var sortColumns = map[string]string{
	"title":       "LOWER(v.title)",
	"artist":      "LOWER(v.artist)",
	"price":       "CAST(v.price AS REAL)",
	"condition":   conditionRank,
	"releaseYear": "v.release_year",
	"createdAt":   "v.created_at",
}

func (r *VinylRepository) Create(ctx context.Context, vinyl *domain.Vinyl) error {
	if vinyl.ID == "" {
		vinyl.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO vinyls (id, title, artist, release_year, condition, price, description,
			cover_image_url, seller_id, genre_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		vinyl.ID, vinyl.Title, vinyl.Artist, nullableInt(vinyl.ReleaseYear),
		vinyl.Condition, vinyl.Price.StringFixed(2), vinyl.Description,
		vinyl.CoverImageURL, vinyl.SellerID, nullableString(vinyl.GenreID), now, now,
	)
	if err != nil {
		return fmt.Errorf("insert vinyl: %w", err)
	}

	vinyl.CreatedAt = now
	vinyl.UpdatedAt = now
	return nil
}

func (r *VinylRepository) GetByID(ctx context.Context, id string) (*domain.Vinyl, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+vinylColumns+vinylJoins+" WHERE v.id = ?", id)
	vinyl, err := scanVinyl(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query vinyl by id: %w", err)
	}
	return vinyl, nil
}

func (r *VinylRepository) List(ctx context.Context, filter domain.VinylFilter) (*domain.VinylPage, error) {
	where, args := buildVinylWhere(filter)

	var total int64
	countQuery := "SELECT COUNT(*)" + vinylJoins + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count vinyls: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}

	query := "SELECT " + vinylColumns + vinylJoins + where +
		" ORDER BY " + orderClause(filter.SortBy, filter.SortOrder) +
		" LIMIT ? OFFSET ?"
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list vinyls: %w", err)
	}
	defer rows.Close()

	var items []domain.Vinyl
	for rows.Next() {
		vinyl, err := scanVinyl(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vinyl: %w", err)
		}
		items = append(items, *vinyl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &domain.VinylPage{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (r *VinylRepository) ListBySeller(ctx context.Context, sellerID string) ([]domain.Vinyl, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+vinylColumns+vinylJoins+" WHERE v.seller_id = ? ORDER BY v.created_at DESC",
		sellerID)
	if err != nil {
		return nil, fmt.Errorf("list vinyls by seller: %w", err)
	}
	defer rows.Close()

	var vinyls []domain.Vinyl
	for rows.Next() {
		vinyl, err := scanVinyl(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vinyl: %w", err)
		}
		vinyls = append(vinyls, *vinyl)
	}
	return vinyls, rows.Err()
}

func (r *VinylRepository) Update(ctx context.Context, vinyl *domain.Vinyl) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE vinyls SET title = ?, artist = ?, release_year = ?, condition = ?, price = ?,
			description = ?, cover_image_url = ?, genre_id = ?, updated_at = ?
		 WHERE id = ?`,
		vinyl.Title, vinyl.Artist, nullableInt(vinyl.ReleaseYear), vinyl.Condition,
		vinyl.Price.StringFixed(2), vinyl.Description, vinyl.CoverImageURL,
		nullableString(vinyl.GenreID), now, vinyl.ID,
	)
	if err != nil {
		return fmt.Errorf("update vinyl: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	vinyl.UpdatedAt = now
	return nil
}

func (r *VinylRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM vinyls WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete vinyl: %w", err)
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

func buildVinylWhere(filter domain.VinylFilter) (string, []any) {
	var clauses []string
	var args []any

	if filter.Title != "" {
		clauses = append(clauses, "LOWER(v.title) LIKE ?")
		args = append(args, "%"+strings.ToLower(filter.Title)+"%")
	}
	if filter.Artist != "" {
		clauses = append(clauses, "LOWER(v.artist) LIKE ?")
		args = append(args, "%"+strings.ToLower(filter.Artist)+"%")
	}
	if filter.GenreID != "" {
		clauses = append(clauses, "v.genre_id = ?")
		args = append(args, filter.GenreID)
	}
	if filter.SellerID != "" {
		clauses = append(clauses, "v.seller_id = ?")
		args = append(args, filter.SellerID)
	}
	if filter.Condition != "" {
		clauses = append(clauses, "v.condition = ?")
		args = append(args, filter.Condition)
	}
	if filter.MinPrice != nil {
		clauses = append(clauses, "CAST(v.price AS REAL) >= ?")
		args = append(args, filter.MinPrice.InexactFloat64())
	}
	if filter.MaxPrice != nil {
		clauses = append(clauses, "CAST(v.price AS REAL) <= ?")
		args = append(args, filter.MaxPrice.InexactFloat64())
	}
	// Exact release year wins over the range filters.
	if filter.ReleaseYear != nil {
		clauses = append(clauses, "v.release_year = ?")
		args = append(args, *filter.ReleaseYear)
	} else {
		if filter.MinReleaseYear != nil {
			clauses = append(clauses, "v.release_year >= ?")
			args = append(args, *filter.MinReleaseYear)
		}
		if filter.MaxReleaseYear != nil {
			clauses = append(clauses, "v.release_year <= ?")
			args = append(args, *filter.MaxReleaseYear)
		}
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func orderClause(sortBy, sortOrder string) string {
	column, ok := sortColumns[sortBy]
	if !ok {
		// Unknown sort fields silently fall back to newest first.
		return "v.created_at DESC"
	}

	dir := "ASC"
	if strings.EqualFold(sortOrder, "desc") || (sortOrder == "" && sortBy == "createdAt") {
		dir = "DESC"
	}
	return column + " " + dir
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanVinyl(row rowScanner) (*domain.Vinyl, error) {
	var (
		v           domain.Vinyl
		releaseYear sql.NullInt64
		price       string
		genreID     sql.NullString
		seller      domain.User
		genreName   sql.NullString
		genreDesc   sql.NullString
	)

	err := row.Scan(&v.ID, &v.Title, &v.Artist, &releaseYear, &v.Condition, &price,
		&v.Description, &v.CoverImageURL, &v.SellerID, &genreID, &v.CreatedAt, &v.UpdatedAt,
		&seller.Name, &seller.Email, &seller.ProfileImage, &seller.Address,
		&seller.Role, &seller.RegistrationDate,
		&genreName, &genreDesc)
	if err != nil {
		return nil, err
	}

	v.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parse price %q: %w", price, err)
	}
	if releaseYear.Valid {
		year := int(releaseYear.Int64)
		v.ReleaseYear = &year
	}

	seller.ID = v.SellerID
	v.Seller = &seller

	if genreID.Valid {
		id := genreID.String
		v.GenreID = &id
		v.Genre = &domain.Genre{ID: id, Name: genreName.String, Description: genreDesc.String}
	}

	return &v, nil
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableString(v *string) any {
	if v == nil || *v == "" {
		return nil
	}
	return *v
}
