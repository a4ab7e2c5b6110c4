package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"nexora/internal/app/checkout"
)

func TestCreateCheckout(t *testing.T) {
	deps := newTestDeps(t, validCreds())
	fake := &fakeCheckout{result: &checkout.CheckoutResult{URL: "https://checkout.example/cs_1"}}
	deps.Checkout = fake

	r := httptest.NewRequest(http.MethodPost, "/functions/v1/create-checkout", nil)
	r.Header.Set("Authorization", "Bearer "+accessToken(t, testUserID))
	r.Header.Set("Origin", testOrigin)

	rr := serve(deps, r)
	assert.Equal(t, http.StatusOK, rr.Code)
	assertFunctionHeaders(t, rr.Header())
	assert.Equal(t, map[string]any{"url": "https://checkout.example/cs_1"}, decodeBody(t, rr))
	assert.Equal(t, checkout.CheckoutRequest{
		UserID: testUserID,
		Email:  "student@example.com",
		Origin: testOrigin,
	}, fake.gotCheckout)
}

func TestCreateCheckout_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"empty cart", checkout.ErrEmptyCart, http.StatusBadRequest, "No items in cart"},
		{"no email", checkout.ErrMissingEmail, http.StatusBadRequest, "User email not available"},
		{"no origin", checkout.ErrMissingOrigin, http.StatusBadRequest, "Missing request origin"},
		{"bad subject", checkout.ErrInvalidUserID, http.StatusUnauthorized, "Not authenticated"},
		{"provider down", fmt.Errorf("%w: create session: timeout", checkout.ErrPaymentProvider), http.StatusBadGateway, "Payment provider is unavailable. Please try again."},
		{"database failure", errors.New("connection refused"), http.StatusInternalServerError, "Database operation failed."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newTestDeps(t, validCreds())
			deps.Checkout = &fakeCheckout{err: tt.err}

			r := httptest.NewRequest(http.MethodPost, "/functions/v1/create-checkout", nil)
			r.Header.Set("Authorization", "Bearer "+accessToken(t, testUserID))

			rr := serve(deps, r)
			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, map[string]any{"error": tt.wantError}, decodeBody(t, rr))
		})
	}
}

func TestProcessPayment(t *testing.T) {
	deps := newTestDeps(t, validCreds())
	fake := &fakeCheckout{payment: &checkout.PaymentResult{
		Success: true,
		Message: checkout.PaymentProcessedMessage,
		OrderID: "order-1",
	}}
	deps.Checkout = fake

	r := postJSON("/functions/v1/process-payment", `{"session_id":"cs_1"}`)
	r.Header.Set("Authorization", "Bearer "+accessToken(t, testUserID))

	rr := serve(deps, r)
	assert.Equal(t, http.StatusOK, rr.Code)
	assertFunctionHeaders(t, rr.Header())
	assert.Equal(t, map[string]any{
		"success":  true,
		"message":  "Payment processed successfully",
		"order_id": "order-1",
	}, decodeBody(t, rr))
	assert.Equal(t, checkout.PaymentRequest{UserID: testUserID, SessionID: "cs_1"}, fake.gotPayment)
}

func TestProcessPayment_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"broken json", `{"session_id":`, nil, http.StatusBadRequest, "Request body is not valid JSON."},
		{"no session id", `{}`, checkout.ErrSessionIDRequired, http.StatusBadRequest, "Session ID is required"},
		{"unpaid", `{"session_id":"cs_1"}`, checkout.ErrPaymentNotCompleted, http.StatusBadRequest, "Payment not completed"},
		{"unknown order", `{"session_id":"cs_1"}`, checkout.ErrOrderNotFound, http.StatusNotFound, "Order not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newTestDeps(t, validCreds())
			deps.Checkout = &fakeCheckout{err: tt.err}

			r := postJSON("/functions/v1/process-payment", tt.body)
			r.Header.Set("Authorization", "Bearer "+accessToken(t, testUserID))

			rr := serve(deps, r)
			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, map[string]any{"error": tt.wantError}, decodeBody(t, rr))
		})
	}
}

func TestCheckoutRoutes_RequireUser(t *testing.T) {
	deps := newTestDeps(t, validCreds())
	fake := &fakeCheckout{}
	deps.Checkout = fake

	for _, path := range []string{"/functions/v1/create-checkout", "/functions/v1/process-payment"} {
		t.Run(path, func(t *testing.T) {
			rr := serve(deps, postJSON(path, `{"session_id":"cs_1"}`))

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assertFunctionHeaders(t, rr.Header())
		})
	}
	assert.Empty(t, fake.gotCheckout.UserID)
	assert.Empty(t, fake.gotPayment.UserID)
}

func TestCheckoutRoutes_Disabled(t *testing.T) {
	deps := newTestDeps(t, validCreds())

	r := postJSON("/functions/v1/process-payment", `{"session_id":"cs_1"}`)
	r.Header.Set("Authorization", "Bearer "+accessToken(t, testUserID))

	assert.Equal(t, http.StatusNotFound, serve(deps, r).Code)
}
