package limiter

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestMiddleware_LimitsPerIP(t *testing.T) {
	l := NewIPRateLimiter(rate.Limit(0.001), 2)
	defer l.Stop()

	handler := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	call := func(addr string) int {
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r.RemoteAddr = addr
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call("198.51.100.1:1000"))
	assert.Equal(t, http.StatusOK, call("198.51.100.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, call("198.51.100.1:1002"))

	assert.Equal(t, http.StatusOK, call("198.51.100.2:1000"))
}

func TestPrune_RemovesIdleLimiters(t *testing.T) {
	l := NewIPRateLimiter(rate.Limit(1), 1)
	defer l.Stop()

	busy := l.GetLimiter("198.51.100.1")
	busy.Allow()
	l.GetLimiter("198.51.100.2")

	removed := l.prune(time.Now())

	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, l.size())
	assert.Same(t, busy, l.GetLimiter("198.51.100.1"))
}

func TestStop_Idempotent(t *testing.T) {
	l := NewIPRateLimiter(rate.Limit(1), 1)
	l.Stop()
	assert.NotPanics(t, l.Stop)
}
