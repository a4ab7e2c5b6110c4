package handler

import (
	"context"

	"golang.org/x/time/rate"

	"nexora/internal/app/checkout"
	"nexora/internal/app/enrollment"
	"nexora/internal/app/storage"
	"nexora/internal/app/videotoken"
	"nexora/internal/configs"
	"nexora/internal/pkg/limiter"
)

const (
	TokenRate   = 1
	TokenBurst  = 10
	UploadRate  = 0.2
	UploadBurst = 5
)

// FreeEnroller enrolls a user into the free courses in their cart.
type FreeEnroller interface {
	EnrollFreeCourses(ctx context.Context, userID string) (*enrollment.Result, error)
}

// Checkout sells the courses in a user's cart.
type Checkout interface {
	CreateCheckout(ctx context.Context, req checkout.CheckoutRequest) (*checkout.CheckoutResult, error)
	ProcessPayment(ctx context.Context, req checkout.PaymentRequest) (*checkout.PaymentResult, error)
}

// AppDeps bundles what the handlers need. A nil Enrollment, Checkout or
// Storage leaves the matching routes unregistered.
type AppDeps struct {
	Config     *configs.AppConfig
	Issuer     *videotoken.Issuer
	Enrollment FreeEnroller
	Checkout   Checkout
	Storage    storage.StorageService

	TokenLimiter  *limiter.IPRateLimiter
	UploadLimiter *limiter.IPRateLimiter
}

// NewAppDeps returns deps with the per-IP limiters started. Call Close on shutdown.
func NewAppDeps(cfg *configs.AppConfig, issuer *videotoken.Issuer) *AppDeps {
	return &AppDeps{
		Config:        cfg,
		Issuer:        issuer,
		TokenLimiter:  limiter.NewIPRateLimiter(rate.Limit(TokenRate), TokenBurst),
		UploadLimiter: limiter.NewIPRateLimiter(rate.Limit(UploadRate), UploadBurst),
	}
}

// Close stops the limiter cleanup goroutines.
func (d *AppDeps) Close() {
	d.TokenLimiter.Stop()
	d.UploadLimiter.Stop()
}
