package resp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"nexora/internal/pkg/errs"
)

func TestRespondSuccess(t *testing.T) {
	rr := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	RespondSuccess(rr, r, map[string]string{"token": "abc"})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"token":"abc"}`, rr.Body.String())
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name       string
		err        *errs.CustomError
		wantStatus int
		wantBody   string
	}{
		{"validation", errs.NewError(errs.ErrVideoCredentials), http.StatusBadRequest, `{"error":"Missing Zegocloud credentials"}`},
		{"auth", errs.NewError(errs.ErrUnauthorized), http.StatusUnauthorized, `{"error":"Not authenticated"}`},
		{"nil", nil, http.StatusInternalServerError, `{"error":"Something went wrong. Please try again."}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			RespondError(rr, httptest.NewRequest(http.MethodPost, "/", nil), tt.err)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}
