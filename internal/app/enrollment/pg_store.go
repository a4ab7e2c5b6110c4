package enrollment

import (
	"context"
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

const cartCoursesSQL = `
SELECT ci.course_id, COALESCE(c.price, 0)::float8
FROM cart_items ci
JOIN courses c ON c.id = ci.course_id
WHERE ci.user_id = $1
ORDER BY ci.created_at`

func (s *PgStore) CartCourses(ctx context.Context, userID string) ([]CartCourse, error) {
	user, err := toUUID(userID)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, cartCoursesSQL, user)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (CartCourse, error) {
		var (
			id    pgtype.UUID
			price float64
		)
		if err := row.Scan(&id, &price); err != nil {
			return CartCourse{}, err
		}
		return CartCourse{CourseID: fromUUID(id), Price: price}, nil
	})
}

const ownedCourseIDsSQL = `
SELECT course_id
FROM course_purchases
WHERE user_id = $1 AND course_id = ANY($2)`

func (s *PgStore) OwnedCourseIDs(ctx context.Context, userID string, courseIDs []string) ([]string, error) {
	user, err := toUUID(userID)
	if err != nil {
		return nil, err
	}
	courses, err := toUUIDs(courseIDs)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, ownedCourseIDsSQL, user, courses)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (string, error) {
		var id pgtype.UUID
		if err := row.Scan(&id); err != nil {
			return "", err
		}
		return fromUUID(id), nil
	})
}

const removeFromCartSQL = `DELETE FROM cart_items WHERE user_id = $1 AND course_id = ANY($2)`

func (s *PgStore) RemoveFromCart(ctx context.Context, userID string, courseIDs []string) error {
	user, err := toUUID(userID)
	if err != nil {
		return err
	}
	courses, err := toUUIDs(courseIDs)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, removeFromCartSQL, user, courses)
	return err
}

const (
	insertFreeOrderSQL = `
INSERT INTO orders (user_id, total_amount, status)
VALUES ($1, 0, 'paid')
RETURNING id`

	insertPurchasesSQL = `
INSERT INTO course_purchases (user_id, course_id, order_id)
SELECT $1, course_id, $3 FROM unnest($2::uuid[]) AS course_id`

	insertEnrollmentsSQL = `
INSERT INTO enrollments (student_id, course_id)
SELECT $1, course_id FROM unnest($2::uuid[]) AS course_id
ON CONFLICT (student_id, course_id) DO NOTHING`
)

func (s *PgStore) RecordFreeOrder(ctx context.Context, userID string, enrollIDs []string, cartIDs []string) (string, error) {
	user, err := toUUID(userID)
	if err != nil {
		return "", err
	}
	enroll, err := toUUIDs(enrollIDs)
	if err != nil {
		return "", err
	}
	cart, err := toUUIDs(cartIDs)
	if err != nil {
		return "", err
	}

	var orderID pgtype.UUID
	err = pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, insertFreeOrderSQL, user).Scan(&orderID); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		if _, err := tx.Exec(ctx, insertPurchasesSQL, user, enroll, orderID); err != nil {
			return fmt.Errorf("insert purchases: %w", err)
		}
		if _, err := tx.Exec(ctx, insertEnrollmentsSQL, user, enroll); err != nil {
			return fmt.Errorf("insert enrollments: %w", err)
		}
		if _, err := tx.Exec(ctx, removeFromCartSQL, user, cart); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		return nil
	})
	if db.IsUniqueViolation(err) {
		return "", ErrAlreadyOwned
	}
	if db.IsForeignKeyViolation(err) {
		return "", fmt.Errorf("%w: %v", ErrCourseRemoved, err)
	}
	if err != nil {
		return "", err
	}

	return fromUUID(orderID), nil
}

func toUUID(s string) (pgtype.UUID, error) {
	id, err := db.ParseUUID(s)
	if err != nil {
		return pgtype.UUID{}, fmt.Errorf("%w: %v", ErrInvalidUserID, err)
	}
	return id, nil
}

func toUUIDs(ids []string) ([]pgtype.UUID, error) {
	return db.ParseUUIDs(ids)
}

func fromUUID(id pgtype.UUID) string {
	return db.UUIDString(id)
}
