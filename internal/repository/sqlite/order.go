package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mqlstam/vinylplatz2025/internal/domain"
)

// OrderRepository implements domain.OrderRepository using SQLite.
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new SQLite-backed OrderRepository.
func NewOrderRepository(db *DB) *OrderRepository {
	return &OrderRepository{db: db.SqlDB}
}

const orderColumns = `o.id, o.price, o.status, o.order_date, o.buyer_id, o.seller_id, o.vinyl_id,
	b.name, b.email, b.profile_image,
	s.name, s.email, s.profile_image,
	v.id, v.title, v.artist, v.condition, v.price, v.cover_image_url`

// The vinyl join is LEFT because orders outlive their listings.
const orderJoins = ` FROM orders o
	JOIN users b ON b.id = o.buyer_id
	JOIN users s ON s.id = o.seller_id
	LEFT JOIN vinyls v ON v.id = o.vinyl_id`

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if order.Status == "" {
		order.Status = domain.OrderPending
	}
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO orders (id, price, status, order_date, buyer_id, seller_id, vinyl_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.Price.StringFixed(2), order.Status, now,
		order.BuyerID, order.SellerID, order.VinylID,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	order.OrderDate = now
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+orderColumns+orderJoins+" WHERE o.id = ?", id)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query order by id: %w", err)
	}
	return order, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string, filter domain.OrderFilter) ([]domain.Order, error) {
	where := " WHERE (o.buyer_id = ? OR o.seller_id = ?)"
	args := []any{userID, userID}

	// Restrict to a single role only when exactly one flag is set;
	// both set (or neither) means "either role".
	switch {
	case filter.AsBuyer && !filter.AsSeller:
		where = " WHERE o.buyer_id = ?"
		args = []any{userID}
	case filter.AsSeller && !filter.AsBuyer:
		where = " WHERE o.seller_id = ?"
		args = []any{userID}
	}

	if filter.Status != "" {
		where += " AND o.status = ?"
		args = append(args, filter.Status)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+orderColumns+orderJoins+where+" ORDER BY o.order_date DESC", args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE orders SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
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

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		o          domain.Order
		price      string
		buyer      domain.User
		seller     domain.User
		vinylID    sql.NullString
		vinylTitle sql.NullString
		vinylArt   sql.NullString
		vinylCond  sql.NullString
		vinylPrice sql.NullString
		vinylCover sql.NullString
	)

	err := row.Scan(&o.ID, &price, &o.Status, &o.OrderDate, &o.BuyerID, &o.SellerID, &o.VinylID,
		&buyer.Name, &buyer.Email, &buyer.ProfileImage,
		&seller.Name, &seller.Email, &seller.ProfileImage,
		&vinylID, &vinylTitle, &vinylArt, &vinylCond, &vinylPrice, &vinylCover)
	if err != nil {
		return nil, err
	}

	o.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parse order price %q: %w", price, err)
	}

	buyer.ID = o.BuyerID
	seller.ID = o.SellerID
	o.Buyer = &buyer
	o.Seller = &seller

	if vinylID.Valid {
		vinyl := &domain.Vinyl{
			ID:            vinylID.String,
			Title:         vinylTitle.String,
			Artist:        vinylArt.String,
			Condition:     domain.Condition(vinylCond.String),
			CoverImageURL: vinylCover.String,
			SellerID:      o.SellerID,
		}
		if vinylPrice.Valid {
			if p, err := decimal.NewFromString(vinylPrice.String); err == nil {
				vinyl.Price = p
			}
		}
		o.Vinyl = vinyl
	}

	return &o, nil
}
