package handler

import (
	"errors"
	"net/http"

	"nexora/internal/app/checkout"
	"nexora/internal/pkg/auth/jwt"
	"nexora/internal/pkg/errs"
	"nexora/internal/pkg/logx"
	"nexora/internal/pkg/req"
	"nexora/internal/pkg/resp"
)

// ProcessPaymentInput is the JSON body of a payment confirmation.
type ProcessPaymentInput struct {
	SessionID string `json:"session_id"`
}

// HandleCreateCheckout opens a payment session for the signed-in user's cart.
// The payment page returns the buyer to the request's Origin.
func HandleCreateCheckout(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := jwt.GetClaimsFromContext(r)
		if claims == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		result, err := deps.Checkout.CreateCheckout(r.Context(), checkout.CheckoutRequest{
			UserID: claims.UserID(),
			Email:  claims.Email,
			Origin: r.Header.Get("Origin"),
		})
		if err != nil {
			respondCheckoutError(w, r, err, "Checkout creation failed.")
			return
		}

		resp.RespondSuccess(w, r, result)
	}
}

// HandleProcessPayment confirms a paid session and enrolls the user in the
// courses it bought.
func HandleProcessPayment(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := jwt.GetClaimsFromContext(r)
		if claims == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input ProcessPaymentInput
		if customErr := req.BindFunctionJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		result, err := deps.Checkout.ProcessPayment(r.Context(), checkout.PaymentRequest{
			UserID:    claims.UserID(),
			SessionID: input.SessionID,
		})
		if err != nil {
			respondCheckoutError(w, r, err, "Payment processing failed.")
			return
		}

		resp.RespondSuccess(w, r, result)
	}
}

func respondCheckoutError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	customErr := checkoutError(err)

	event := logx.Ctx(r.Context()).Error()
	if customErr.Kind != errs.KindInternal {
		event = logx.Ctx(r.Context()).Warn()
	}
	event.Err(err).Str("error_kind", string(customErr.Kind)).Msg(msg)

	resp.RespondError(w, r, customErr)
}

func checkoutError(err error) *errs.CustomError {
	switch {
	case errors.Is(err, checkout.ErrInvalidUserID):
		return errs.NewError(errs.ErrUnauthorized)
	case errors.Is(err, checkout.ErrMissingEmail):
		return errs.NewError(errs.ErrCheckoutEmail)
	case errors.Is(err, checkout.ErrMissingOrigin):
		return errs.NewError(errs.ErrCheckoutOrigin)
	case errors.Is(err, checkout.ErrEmptyCart):
		return errs.NewError(errs.ErrEmptyCart)
	case errors.Is(err, checkout.ErrSessionIDRequired):
		return errs.NewError(errs.ErrSessionIDRequired)
	case errors.Is(err, checkout.ErrPaymentNotCompleted):
		return errs.NewError(errs.ErrPaymentNotCompleted)
	case errors.Is(err, checkout.ErrOrderNotFound):
		return errs.NewError(errs.ErrOrderNotFound)
	case errors.Is(err, checkout.ErrPaymentProvider):
		return errs.NewError(errs.ErrPaymentProvider)
	default:
		return errs.NewError(errs.ErrDatabase)
	}
}
