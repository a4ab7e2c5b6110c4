package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"nexora/internal/app/db"
)

// PgStore implements Store on PostgreSQL.
type PgStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PgStore)(nil)

// NewPgStore returns a Store using pool.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

const cartItemsSQL = `
SELECT ci.course_id, c.title, COALESCE(c.price, 0)::float8
FROM cart_items ci
JOIN courses c ON c.id = ci.course_id
WHERE ci.user_id = $1
ORDER BY ci.created_at`

func (s *PgStore) CartItems(ctx context.Context, userID string) ([]CartItem, error) {
	user, err := toUUID(userID)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, cartItemsSQL, user)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (CartItem, error) {
		var (
			id   pgtype.UUID
			item CartItem
		)
		if err := row.Scan(&id, &item.Title, &item.Price); err != nil {
			return CartItem{}, err
		}
		item.CourseID = db.UUIDString(id)
		return item, nil
	})
}

const (
	insertPendingOrderSQL = `
INSERT INTO orders (user_id, stripe_session_id, total_amount, status)
VALUES ($1, $2, $3::float8, 'pending')
RETURNING id`

	insertOrderItemSQL = `
INSERT INTO order_items (order_id, course_id, price)
VALUES ($1, $2, $3::float8)`
)

func (s *PgStore) CreatePendingOrder(ctx context.Context, userID string, sessionID string, total float64, items []CartItem) (string, error) {
	user, err := toUUID(userID)
	if err != nil {
		return "", err
	}

	var orderID pgtype.UUID
	err = pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, insertPendingOrderSQL, user, sessionID, total).Scan(&orderID); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		batch := &pgx.Batch{}
		for _, item := range items {
			course, err := db.ParseUUID(item.CourseID)
			if err != nil {
				return err
			}
			batch.Queue(insertOrderItemSQL, orderID, course, item.Price)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert order items: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return db.UUIDString(orderID), nil
}

const orderBySessionSQL = `
SELECT id, user_id, status
FROM orders
WHERE stripe_session_id = $1`

func (s *PgStore) OrderBySession(ctx context.Context, sessionID string) (*Order, error) {
	var (
		id, user pgtype.UUID
		order    Order
	)
	err := s.pool.QueryRow(ctx, orderBySessionSQL, sessionID).Scan(&id, &user, &order.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	order.ID = db.UUIDString(id)
	order.UserID = db.UUIDString(user)
	return &order, nil
}

const (
	completeOrderSQL = `
UPDATE orders SET status = 'completed'
WHERE id = $1 AND status <> 'completed'
RETURNING user_id`

	orderCourseIDsSQL = `SELECT course_id FROM order_items WHERE order_id = $1`

	insertPurchasesSQL = `
INSERT INTO course_purchases (user_id, course_id, order_id)
SELECT $1, course_id, $3 FROM unnest($2::uuid[]) AS course_id
ON CONFLICT (user_id, course_id) DO NOTHING`

	insertEnrollmentsSQL = `
INSERT INTO enrollments (student_id, course_id)
SELECT $1, course_id FROM unnest($2::uuid[]) AS course_id
ON CONFLICT (student_id, course_id) DO NOTHING`

	removeFromCartSQL = `DELETE FROM cart_items WHERE user_id = $1 AND course_id = ANY($2)`
)

func (s *PgStore) CompleteOrder(ctx context.Context, orderID string) (bool, error) {
	order, err := db.ParseUUID(orderID)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrOrderNotFound, err)
	}

	completed := false
	err = pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		var user pgtype.UUID
		err := tx.QueryRow(ctx, completeOrderSQL, order).Scan(&user)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("update order: %w", err)
		}

		rows, err := tx.Query(ctx, orderCourseIDsSQL, order)
		if err != nil {
			return fmt.Errorf("load order items: %w", err)
		}
		courses, err := pgx.CollectRows(rows, pgx.RowTo[pgtype.UUID])
		if err != nil {
			return fmt.Errorf("load order items: %w", err)
		}

		if _, err := tx.Exec(ctx, insertPurchasesSQL, user, courses, order); err != nil {
			return fmt.Errorf("insert purchases: %w", err)
		}
		if _, err := tx.Exec(ctx, insertEnrollmentsSQL, user, courses); err != nil {
			return fmt.Errorf("insert enrollments: %w", err)
		}
		if _, err := tx.Exec(ctx, removeFromCartSQL, user, courses); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		completed = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return completed, nil
}

func toUUID(s string) (pgtype.UUID, error) {
	id, err := db.ParseUUID(s)
	if err != nil {
		return pgtype.UUID{}, fmt.Errorf("%w: %v", ErrInvalidUserID, err)
	}
	return id, nil
}
