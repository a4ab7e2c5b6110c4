/*
Package enrollment enrolls students into the free courses sitting in their
cart without going through checkout.

For every free course not already owned, one zero-amount paid order is
recorded together with the matching course purchases and enrollments, and
the free items are removed from the cart.
*/
package enrollment

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"nexora/internal/pkg/logx"
	"nexora/internal/pkg/randx"
)

const (
	// AlreadyEnrolledMessage accompanies a successful result that enrolled nothing new.
	AlreadyEnrolledMessage = "Already enrolled"

	// maxRecordAttempts bounds how often the order is re-planned after a
	// concurrent purchase of one of the courses.
	maxRecordAttempts = 2
)

var (
	// ErrNoFreeCourses is returned when the cart contains no free course.
	ErrNoFreeCourses = errors.New("no free courses in cart")

	// ErrInvalidUserID is returned for a user id that is not a UUID.
	ErrInvalidUserID = errors.New("invalid user id")

	// ErrAlreadyOwned is returned by a Store when a purchase for one of the
	// courses was recorded concurrently.
	ErrAlreadyOwned = errors.New("course already owned")

	// ErrCourseRemoved is returned by a Store when a course in the cart was
	// deleted before the order could be recorded.
	ErrCourseRemoved = errors.New("course no longer available")
)

// CartCourse is a course in a user's cart with its current price.
type CartCourse struct {
	CourseID string
	Price    float64
}

// Store is the persistence the enrollment flow needs.
type Store interface {
	// CartCourses lists the courses in userID's cart.
	CartCourses(ctx context.Context, userID string) ([]CartCourse, error)

	// OwnedCourseIDs returns the subset of courseIDs userID already purchased.
	OwnedCourseIDs(ctx context.Context, userID string, courseIDs []string) ([]string, error)

	// RemoveFromCart deletes courseIDs from userID's cart.
	RemoveFromCart(ctx context.Context, userID string, courseIDs []string) error

	// RecordFreeOrder atomically creates a paid zero-amount order with purchases
	// and enrollments for enrollIDs, and removes cartIDs from the cart.
	// It returns the new order id.
	RecordFreeOrder(ctx context.Context, userID string, enrollIDs []string, cartIDs []string) (string, error)
}

// Result is returned to the caller after enrollment.
type Result struct {
	EnrolledCourseIDs []string `json:"enrolled_course_ids"`
	Message           string   `json:"message,omitempty"`
}

// Service runs the free enrollment flow on top of a Store.
type Service struct {
	store  Store
	logger zerolog.Logger
}

// NewService returns a Service backed by store.
func NewService(store Store) *Service {
	return &Service{
		store:  store,
		logger: logx.Logger().With().Str("component", "Enrollment").Logger(),
	}
}

// EnrollFreeCourses enrolls userID into every free course in their cart
// that they do not own yet.
func (s *Service) EnrollFreeCourses(ctx context.Context, userID string) (*Result, error) {
	if !randx.IsValidUUID(userID) {
		return nil, ErrInvalidUserID
	}

	cart, err := s.store.CartCourses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	freeIDs := make([]string, 0, len(cart))
	for _, item := range cart {
		if item.Price == 0 {
			freeIDs = append(freeIDs, item.CourseID)
		}
	}
	if len(freeIDs) == 0 {
		return nil, ErrNoFreeCourses
	}

	for attempt := 1; ; attempt++ {
		owned, err := s.store.OwnedCourseIDs(ctx, userID, freeIDs)
		if err != nil {
			return nil, fmt.Errorf("load existing purchases: %w", err)
		}

		newIDs := subtract(freeIDs, owned)
		if len(newIDs) == 0 {
			return s.alreadyEnrolled(ctx, userID, freeIDs)
		}

		orderID, err := s.store.RecordFreeOrder(ctx, userID, newIDs, freeIDs)
		if errors.Is(err, ErrAlreadyOwned) && attempt < maxRecordAttempts {
			s.logger.Warn().Str("user_id", userID).Msg("Concurrent purchase detected during free enrollment; retrying.")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("record free order: %w", err)
		}

		s.logger.Info().
			Str("user_id", userID).
			Str("order_id", orderID).
			Int("course_count", len(newIDs)).
			Msg("Enrolled user into free courses.")

		return &Result{EnrolledCourseIDs: newIDs}, nil
	}
}

// alreadyEnrolled is only reached once every id in freeIDs is owned.
func (s *Service) alreadyEnrolled(ctx context.Context, userID string, freeIDs []string) (*Result, error) {
	if err := s.store.RemoveFromCart(ctx, userID, freeIDs); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("Failed to clear owned free courses from cart.")
	}

	return &Result{EnrolledCourseIDs: []string{}, Message: AlreadyEnrolledMessage}, nil
}

// subtract returns the ids in all that are not in remove, keeping order.
func subtract(all, remove []string) []string {
	skip := make(map[string]struct{}, len(remove))
	for _, id := range remove {
		skip[id] = struct{}{}
	}

	out := make([]string, 0, len(all))
	for _, id := range all {
		if _, ok := skip[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
