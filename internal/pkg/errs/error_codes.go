/*
Package errs defines the application error codes and the CustomError type
that handlers translate domain errors into before responding.
*/
package errs

// 1xxx: General request handling errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates a Content-Type other than JSON.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates a request body that is not valid JSON.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates trailing data after the JSON document.
	ErrExtraContentInBody = 1004

	// ErrRequestEntityTooLarge indicates the request body exceeded the server limit.
	ErrRequestEntityTooLarge = 1006

	// ErrRateLimitExceeded indicates the caller exceeded its request rate.
	ErrRateLimitExceeded = 1007

	// ErrRequestCanceled indicates the caller went away before the work started.
	ErrRequestCanceled = 1008
)

// 2xxx: Video room token errors
const (
	// ErrVideoTokenParams indicates missing roomId and/or userId.
	ErrVideoTokenParams = 2101

	// ErrVideoCredentials indicates the video platform credentials are not configured.
	ErrVideoCredentials = 2102

	// ErrVideoSigning indicates the token could not be serialized or signed.
	ErrVideoSigning = 2103
)

// 22xx: Enrollment errors
const (
	// ErrNoFreeCourses indicates the caller's cart holds no free course.
	ErrNoFreeCourses = 2201

	// ErrEnrollmentConflict indicates the cart kept changing under concurrent purchases.
	ErrEnrollmentConflict = 2202
)

// 23xx: Content errors
const (
	// ErrFileSizeTooLarge indicates the declared upload size exceeds the limit.
	ErrFileSizeTooLarge = 2301

	// ErrFileTypeInvalid indicates an extension/MIME type pair that is not accepted.
	ErrFileTypeInvalid = 2302
)

// 24xx: Checkout and payment errors
const (
	// ErrEmptyCart indicates checkout was requested with an empty cart.
	ErrEmptyCart = 2401

	// ErrCheckoutEmail indicates the caller's token carries no email for the payment customer.
	ErrCheckoutEmail = 2402

	// ErrCheckoutOrigin indicates the request has no Origin to build return URLs from.
	ErrCheckoutOrigin = 2403

	// ErrSessionIDRequired indicates a payment confirmation without a session id.
	ErrSessionIDRequired = 2404

	// ErrPaymentNotCompleted indicates the checkout session has not been paid.
	ErrPaymentNotCompleted = 2405

	// ErrOrderNotFound indicates no order of the caller matches the session.
	ErrOrderNotFound = 2406
)

// 3xxx: Authentication errors
const (
	// ErrUnauthorized indicates a missing or invalid access token.
	ErrUnauthorized = 3001
)

// 5xxx: Internal errors
const (
	// ErrUnknown is an unclassified internal error.
	ErrUnknown = 5000

	// ErrFileStorageFailed indicates the object storage call failed.
	ErrFileStorageFailed = 5001

	// ErrDatabase indicates a failed database operation.
	ErrDatabase = 5002

	// ErrPaymentProvider indicates the payment provider call failed.
	ErrPaymentProvider = 5003
)
