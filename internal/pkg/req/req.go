/*
Package req decodes JSON request bodies into handler input structs.
*/
package req

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"nexora/internal/pkg/errs"
)

// MaxJSONBodySize caps the size of JSON request bodies (64 KB).
const MaxJSONBodySize int64 = 64 << 10

// BindJSON decodes the request body into dst. A missing Content-Type is
// accepted since function clients do not always send one; any other
// non-JSON type is rejected. Unknown fields are ignored.
func BindJSON(r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	return decode(r, dst)
}

// BindFunctionJSON decodes the body of a function request into dst
// whatever its Content-Type. Every failure is reported with 400, the only
// error status function clients handle.
func BindFunctionJSON(r *http.Request, dst any) *errs.CustomError {
	customErr := decode(r, dst)
	if customErr != nil {
		customErr.Status = http.StatusBadRequest
	}
	return customErr
}

func decode(r *http.Request, dst any) *errs.CustomError {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, MaxJSONBodySize))

	if err := decoder.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errs.NewError(errs.ErrRequestEntityTooLarge)
		}
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}
