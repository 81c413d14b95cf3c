package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/skeemans/cafebot/internal/logger"
	"github.com/skeemans/cafebot/internal/order"
)

// OrderRow is the database shape of one mirrored order.
type OrderRow struct {
	ID             string    `db:"id"`
	ClientFullName string    `db:"client_full_name"`
	ProductName    string    `db:"product_name"`
	ProductAmount  string    `db:"product_amount"`
	PaymentMethod  string    `db:"payment_method"`
	MoneyAmount    string    `db:"money_amount"`
	PlacedAt       time.Time `db:"placed_at"`
}

// Orders persists completed orders and serves the admin listing.
type Orders struct {
	db *sqlx.DB
}

// NewOrders wires the repository to an open connection pool.
func NewOrders(db *sqlx.DB) *Orders {
	return &Orders{db: db}
}

const insertOrderQuery = `
INSERT INTO orders (id, client_full_name, product_name, product_amount, payment_method, money_amount, placed_at)
VALUES (:id, :client_full_name, :product_name, :product_amount, :payment_method, :money_amount, :placed_at)`

// Insert mirrors one completed order. A missing id is generated here so the
// caller does not have to care about identity.
func (r *Orders) Insert(ctx context.Context, o order.Order) error {
	row := OrderRow{
		ID:             o.ID,
		ClientFullName: o.ClientFullName,
		ProductName:    o.ProductName,
		ProductAmount:  o.ProductAmount,
		PaymentMethod:  string(o.PaymentMethod),
		MoneyAmount:    o.MoneyAmount,
		PlacedAt:       o.PlacedAt,
	}
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	if row.PlacedAt.IsZero() {
		row.PlacedAt = time.Now()
	}

	start := time.Now()
	_, err := r.db.NamedExecContext(ctx, insertOrderQuery, row)
	if err != nil {
		logger.DB.Error("order insert failed",
			slog.String("event", "orders.insert"),
			slog.String("order_id", row.ID),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("insert order: %w", err)
	}

	logger.DB.Debug("order mirrored",
		slog.String("event", "orders.insert"),
		slog.String("order_id", row.ID),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	)
	return nil
}

const listRecentQuery = `
SELECT id, client_full_name, product_name, product_amount, payment_method, money_amount, placed_at
FROM orders
ORDER BY placed_at DESC
LIMIT $1`

// ListRecent returns the newest orders first, capped at limit.
func (r *Orders) ListRecent(ctx context.Context, limit int) ([]order.Order, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []OrderRow
	if err := r.db.SelectContext(ctx, &rows, listRecentQuery, limit); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	out := make([]order.Order, 0, len(rows))
	for _, row := range rows {
		out = append(out, order.Order{
			ID:             row.ID,
			ClientFullName: row.ClientFullName,
			ProductName:    row.ProductName,
			ProductAmount:  row.ProductAmount,
			PaymentMethod:  order.PaymentMethod(row.PaymentMethod),
			MoneyAmount:    row.MoneyAmount,
			PlacedAt:       row.PlacedAt,
		})
	}
	return out, nil
}
