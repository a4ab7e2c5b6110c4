/*
Package checkout sells the courses in a student's cart through a hosted
payment page and records the purchase once the payment is confirmed.

CreateCheckout opens a payment session for the whole cart and stores a
pending order with one item per course. ProcessPayment checks that the
session was paid and then completes the order: purchases and enrollments
are recorded and the bought courses leave the cart.
*/
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"nexora/internal/pkg/logx"
	"nexora/internal/pkg/randx"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"

	// PaymentProcessedMessage accompanies a successful ProcessPayment result.
	PaymentProcessedMessage = "Payment processed successfully"

	// sessionIDPlaceholder is replaced by the provider with the session id
	// when it redirects back after payment.
	sessionIDPlaceholder = "{CHECKOUT_SESSION_ID}"
)

var (
	ErrInvalidUserID       = errors.New("invalid user id")
	ErrMissingEmail        = errors.New("user email not available")
	ErrMissingOrigin       = errors.New("request origin is required")
	ErrEmptyCart           = errors.New("no items in cart")
	ErrSessionIDRequired   = errors.New("session id is required")
	ErrSessionNotFound     = errors.New("checkout session not found")
	ErrPaymentNotCompleted = errors.New("payment not completed")
	ErrOrderNotFound       = errors.New("order not found")

	// ErrPaymentProvider wraps failures of the PaymentGateway.
	ErrPaymentProvider = errors.New("payment provider failure")
)

// CartItem is a course in the cart with the data shown on the payment page.
type CartItem struct {
	CourseID string
	Title    string
	Price    float64
}

// Order is a stored order as ProcessPayment needs it.
type Order struct {
	ID     string
	UserID string
	Status string
}

// Store is the persistence the checkout flow needs.
type Store interface {
	// CartItems lists the courses in userID's cart.
	CartItems(ctx context.Context, userID string) ([]CartItem, error)

	// CreatePendingOrder stores a pending order for sessionID with one order
	// item per cart item and returns its id.
	CreatePendingOrder(ctx context.Context, userID string, sessionID string, total float64, items []CartItem) (string, error)

	// OrderBySession returns the order created for sessionID, or ErrOrderNotFound.
	OrderBySession(ctx context.Context, sessionID string) (*Order, error)

	// CompleteOrder atomically marks the order completed, records purchases
	// and enrollments for its items and removes them from the cart. It
	// reports false when the order had already been completed.
	CompleteOrder(ctx context.Context, orderID string) (bool, error)
}

// Session is a hosted payment session.
type Session struct {
	ID   string
	URL  string
	Paid bool
}

// SessionRequest describes the payment session to open.
type SessionRequest struct {
	UserID        string
	CustomerEmail string
	Items         []CartItem
	SuccessURL    string
	CancelURL     string
}

// PaymentGateway opens and looks up hosted payment sessions.
type PaymentGateway interface {
	CreateSession(ctx context.Context, req SessionRequest) (*Session, error)

	// GetSession returns ErrSessionNotFound for an unknown session id.
	GetSession(ctx context.Context, sessionID string) (*Session, error)
}

// CheckoutRequest identifies the buyer and the site to return to.
type CheckoutRequest struct {
	UserID string
	Email  string
	Origin string
}

// CheckoutResult points the buyer at the payment page.
type CheckoutResult struct {
	URL string `json:"url"`
}

// PaymentRequest asks to confirm sessionID for the signed-in user.
type PaymentRequest struct {
	UserID    string
	SessionID string
}

// PaymentResult is returned after a confirmed payment.
type PaymentResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OrderID string `json:"order_id"`
}

// Service runs the paid checkout flow.
type Service struct {
	store   Store
	gateway PaymentGateway
	logger  zerolog.Logger
}

// NewService returns a Service persisting to store and charging through gateway.
func NewService(store Store, gateway PaymentGateway) *Service {
	return &Service{
		store:   store,
		gateway: gateway,
		logger:  logx.Logger().With().Str("component", "Checkout").Logger(),
	}
}

// CreateCheckout opens a payment session for every course in the caller's
// cart and records the matching pending order.
func (s *Service) CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	if !randx.IsValidUUID(req.UserID) {
		return nil, ErrInvalidUserID
	}
	if req.Email == "" {
		return nil, ErrMissingEmail
	}

	origin := strings.TrimRight(req.Origin, "/")
	if origin == "" {
		return nil, ErrMissingOrigin
	}

	items, err := s.store.CartItems(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	session, err := s.gateway.CreateSession(ctx, SessionRequest{
		UserID:        req.UserID,
		CustomerEmail: req.Email,
		Items:         items,
		SuccessURL:    origin + "/payment-success?session_id=" + sessionIDPlaceholder,
		CancelURL:     origin + "/cart",
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create session: %v", ErrPaymentProvider, err)
	}

	orderID, err := s.store.CreatePendingOrder(ctx, req.UserID, session.ID, Total(items), items)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.logger.Info().
		Str("user_id", req.UserID).
		Str("order_id", orderID).
		Str("session_id", session.ID).
		Int("item_count", len(items)).
		Msg("Checkout session created.")

	return &CheckoutResult{URL: session.URL}, nil
}

// ProcessPayment confirms a paid session and completes its order. Confirming
// the same session again succeeds without recording anything twice.
func (s *Service) ProcessPayment(ctx context.Context, req PaymentRequest) (*PaymentResult, error) {
	if req.SessionID == "" {
		return nil, ErrSessionIDRequired
	}

	session, err := s.gateway.GetSession(ctx, req.SessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get session: %v", ErrPaymentProvider, err)
	}
	if !session.Paid {
		return nil, ErrPaymentNotCompleted
	}

	order, err := s.store.OrderBySession(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if order.UserID != req.UserID {
		s.logger.Warn().
			Str("user_id", req.UserID).
			Str("order_id", order.ID).
			Msg("Payment confirmation for another user's order rejected.")
		return nil, ErrOrderNotFound
	}

	completed, err := s.store.CompleteOrder(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("complete order: %w", err)
	}

	event := s.logger.Info()
	if !completed {
		event = s.logger.Debug()
	}
	event.
		Str("user_id", order.UserID).
		Str("order_id", order.ID).
		Bool("newly_completed", completed).
		Msg("Payment processed.")

	return &PaymentResult{Success: true, Message: PaymentProcessedMessage, OrderID: order.ID}, nil
}

// Total sums the item prices.
func Total(items []CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price
	}
	return total
}
