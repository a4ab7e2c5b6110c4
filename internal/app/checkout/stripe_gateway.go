package checkout

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"nexora/internal/pkg/logx"
)

// DefaultCurrency is charged when GatewayConfig leaves Currency empty.
const DefaultCurrency = "usd"

// GatewayConfig configures the Stripe gateway. An empty BaseURL uses the
// public Stripe API.
type GatewayConfig struct {
	SecretKey string
	Currency  string
	BaseURL   string
}

// StripeGateway implements PaymentGateway with Stripe Checkout.
type StripeGateway struct {
	api      *client.API
	currency string
	logger   zerolog.Logger
}

var _ PaymentGateway = (*StripeGateway)(nil)

// NewStripeGateway returns a gateway authenticated with cfg.SecretKey.
func NewStripeGateway(cfg GatewayConfig) *StripeGateway {
	logger := logx.Logger().With().Str("component", "Stripe").Logger()

	backendCfg := &stripe.BackendConfig{
		LeveledLogger: &stripeLogger{logger: logger},
	}
	if cfg.BaseURL != "" {
		backendCfg.URL = stripe.String(cfg.BaseURL)
	}
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg)

	currency := cfg.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	return &StripeGateway{
		api:      client.New(cfg.SecretKey, &stripe.Backends{API: backend, Connect: backend, Uploads: backend}),
		currency: currency,
		logger:   logger,
	}
}

func (g *StripeGateway) CreateSession(ctx context.Context, req SessionRequest) (*Session, error) {
	customerID, err := g.customerID(ctx, req.CustomerEmail)
	if err != nil {
		return nil, err
	}

	params := &stripe.CheckoutSessionParams{
		Customer:   stripe.String(customerID),
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	for _, item := range req.Items {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(g.currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Title),
				},
				UnitAmount: stripe.Int64(ToMinorUnits(item.Price)),
			},
			Quantity: stripe.Int64(1),
		})
	}
	params.AddMetadata("user_id", req.UserID)
	params.Context = ctx

	session, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	return &Session{ID: session.ID, URL: session.URL, Paid: isPaid(session)}, nil
}

func (g *StripeGateway) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	session, err := g.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode == http.StatusNotFound {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("retrieve checkout session: %w", err)
	}

	return &Session{ID: session.ID, URL: session.URL, Paid: isPaid(session)}, nil
}

// customerID returns the id of the first customer registered with email,
// creating one when there is none.
func (g *StripeGateway) customerID(ctx context.Context, email string) (string, error) {
	listParams := &stripe.CustomerListParams{Email: stripe.String(email)}
	listParams.Limit = stripe.Int64(1)
	listParams.Context = ctx

	iter := g.api.Customers.List(listParams)
	if iter.Next() {
		return iter.Customer().ID, nil
	}
	if err := iter.Err(); err != nil {
		return "", fmt.Errorf("list customers: %w", err)
	}

	params := &stripe.CustomerParams{Email: stripe.String(email)}
	params.Context = ctx

	customer, err := g.api.Customers.New(params)
	if err != nil {
		return "", fmt.Errorf("create customer: %w", err)
	}

	g.logger.Debug().Str("customer_id", customer.ID).Msg("Stripe customer created.")
	return customer.ID, nil
}

func isPaid(session *stripe.CheckoutSession) bool {
	return session.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid
}

// ToMinorUnits converts a price to cents, rounding half away from zero.
func ToMinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// stripeLogger routes SDK log lines into zerolog.
type stripeLogger struct {
	logger zerolog.Logger
}

func (l *stripeLogger) Debugf(format string, v ...interface{}) { l.logger.Debug().Msgf(format, v...) }
func (l *stripeLogger) Infof(format string, v ...interface{})  { l.logger.Debug().Msgf(format, v...) }
func (l *stripeLogger) Warnf(format string, v ...interface{})  { l.logger.Warn().Msgf(format, v...) }
func (l *stripeLogger) Errorf(format string, v ...interface{}) { l.logger.Error().Msgf(format, v...) }
