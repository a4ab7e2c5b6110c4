package req

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexora/internal/pkg/errs"
)

type sample struct {
	Name string `json:"name"`
}

func newRequest(body, contentType string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	return r
}

func TestBindJSON(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		contentType string
		wantCode    int
	}{
		{"valid", `{"name":"a"}`, "application/json", 0},
		{"charset suffix", `{"name":"a"}`, "application/json; charset=utf-8", 0},
		{"no content type", `{"name":"a"}`, "", 0},
		{"unknown fields ignored", `{"name":"a","other":1}`, "application/json", 0},
		{"wrong content type", `{"name":"a"}`, "text/plain", errs.ErrUnsupportedMediaType},
		{"broken json", `{"name":`, "application/json", errs.ErrInvalidJSONFormat},
		{"empty body", ``, "application/json", errs.ErrInvalidJSONFormat},
		{"trailing data", `{"name":"a"} {"name":"b"}`, "application/json", errs.ErrExtraContentInBody},
		{"too large", `{"name":"` + strings.Repeat("x", int(MaxJSONBodySize)) + `"}`, "application/json", errs.ErrRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst sample
			err := BindJSON(newRequest(tt.body, tt.contentType), &dst)

			if tt.wantCode == 0 {
				require.Nil(t, err)
				assert.Equal(t, "a", dst.Name)
				return
			}

			require.NotNil(t, err)
			assert.Equal(t, tt.wantCode, err.Code)
		})
	}
}

func TestBindFunctionJSON(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		contentType string
		wantCode    int
	}{
		{"json", `{"name":"a"}`, "application/json", 0},
		{"text plain", `{"name":"a"}`, "text/plain;charset=UTF-8", 0},
		{"form type", `{"name":"a"}`, "application/x-www-form-urlencoded", 0},
		{"broken json", `{"name":`, "text/plain", errs.ErrInvalidJSONFormat},
		{"too large", `{"name":"` + strings.Repeat("x", int(MaxJSONBodySize)) + `"}`, "application/json", errs.ErrRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst sample
			err := BindFunctionJSON(newRequest(tt.body, tt.contentType), &dst)

			if tt.wantCode == 0 {
				require.Nil(t, err)
				assert.Equal(t, "a", dst.Name)
				return
			}

			require.NotNil(t, err)
			assert.Equal(t, tt.wantCode, err.Code)
			assert.Equal(t, http.StatusBadRequest, err.Status)
		})
	}
}
