package errs

import "net/http"

// errorMap holds the template for every application error code.
// A zero Status means http.StatusBadRequest.
var errorMap = map[int]CustomError{
	// 1xxx
	ErrInvalidParams:         {Code: ErrInvalidParams, Kind: KindValidation, Message: "Invalid request parameters."},
	ErrUnsupportedMediaType:  {Code: ErrUnsupportedMediaType, Kind: KindValidation, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:     {Code: ErrInvalidJSONFormat, Kind: KindValidation, Message: "Request body is not valid JSON."},
	ErrExtraContentInBody:    {Code: ErrExtraContentInBody, Kind: KindValidation, Message: "Request contains unexpected data."},
	ErrRequestEntityTooLarge: {Code: ErrRequestEntityTooLarge, Kind: KindValidation, Message: "Request size is too large.", Status: http.StatusRequestEntityTooLarge},
	ErrRateLimitExceeded:     {Code: ErrRateLimitExceeded, Kind: KindValidation, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},
	ErrRequestCanceled:       {Code: ErrRequestCanceled, Kind: KindValidation, Message: "Request was cancelled."},

	// 2xxx
	ErrVideoTokenParams: {Code: ErrVideoTokenParams, Kind: KindValidation, Message: "Missing required parameters: %s. roomId and userId are required"},
	ErrVideoCredentials: {Code: ErrVideoCredentials, Kind: KindConfiguration, Message: "Missing Zegocloud credentials"},
	ErrVideoSigning:     {Code: ErrVideoSigning, Kind: KindCrypto, Message: "Failed to sign video token"},
	ErrNoFreeCourses:    {Code: ErrNoFreeCourses, Kind: KindValidation, Message: "No free courses in cart"},
	ErrEnrollmentConflict: {Code: ErrEnrollmentConflict, Kind: KindValidation, Message: "Your courses changed while enrolling. Please try again.", Status: http.StatusConflict},
	ErrFileSizeTooLarge: {Code: ErrFileSizeTooLarge, Kind: KindValidation, Message: "File is too large."},
	ErrFileTypeInvalid:  {Code: ErrFileTypeInvalid, Kind: KindValidation, Message: "File type is not allowed."},
	ErrEmptyCart:           {Code: ErrEmptyCart, Kind: KindValidation, Message: "No items in cart"},
	ErrCheckoutEmail:       {Code: ErrCheckoutEmail, Kind: KindValidation, Message: "User email not available"},
	ErrCheckoutOrigin:      {Code: ErrCheckoutOrigin, Kind: KindValidation, Message: "Missing request origin"},
	ErrSessionIDRequired:   {Code: ErrSessionIDRequired, Kind: KindValidation, Message: "Session ID is required"},
	ErrPaymentNotCompleted: {Code: ErrPaymentNotCompleted, Kind: KindValidation, Message: "Payment not completed"},
	ErrOrderNotFound:       {Code: ErrOrderNotFound, Kind: KindValidation, Message: "Order not found", Status: http.StatusNotFound},

	// 3xxx
	ErrUnauthorized: {Code: ErrUnauthorized, Kind: KindAuth, Message: "Not authenticated", Status: http.StatusUnauthorized},

	// 5xxx
	ErrUnknown:           {Code: ErrUnknown, Kind: KindInternal, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrFileStorageFailed: {Code: ErrFileStorageFailed, Kind: KindInternal, Message: "File storage is unavailable. Please try again.", Status: http.StatusInternalServerError},
	ErrDatabase:          {Code: ErrDatabase, Kind: KindInternal, Message: "Database operation failed.", Status: http.StatusInternalServerError},
	ErrPaymentProvider:   {Code: ErrPaymentProvider, Kind: KindInternal, Message: "Payment provider is unavailable. Please try again.", Status: http.StatusBadGateway},
}
