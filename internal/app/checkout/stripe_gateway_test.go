package checkout

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStripe records the form of every request and answers with canned
// Stripe API bodies.
type fakeStripe struct {
	mu        sync.Mutex
	customers string
	forms     map[string]url.Values
}

func newFakeStripe(t *testing.T, customers string) (*fakeStripe, *StripeGateway) {
	t.Helper()

	f := &fakeStripe{customers: customers, forms: map[string]url.Values{}}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	return f, NewStripeGateway(GatewayConfig{SecretKey: "sk_test_123", BaseURL: srv.URL})
}

func (f *fakeStripe) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()

	f.mu.Lock()
	f.forms[r.Method+" "+r.URL.Path] = r.Form
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	switch r.Method + " " + r.URL.Path {
	case "GET /v1/customers":
		_, _ = w.Write([]byte(f.customers))
	case "POST /v1/customers":
		_, _ = w.Write([]byte(`{"id":"cus_new","object":"customer"}`))
	case "POST /v1/checkout/sessions":
		_, _ = w.Write([]byte(`{"id":"cs_test_a1","object":"checkout.session","url":"https://checkout.example/cs_test_a1","payment_status":"unpaid"}`))
	case "GET /v1/checkout/sessions/cs_test_paid":
		_, _ = w.Write([]byte(`{"id":"cs_test_paid","object":"checkout.session","payment_status":"paid"}`))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","code":"resource_missing","message":"No such resource"}}`))
	}
}

func (f *fakeStripe) form(key string) url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.forms[key]
}

const (
	existingCustomer = `{"object":"list","url":"/v1/customers","has_more":false,"data":[{"id":"cus_existing","object":"customer"}]}`
	noCustomers      = `{"object":"list","url":"/v1/customers","has_more":false,"data":[]}`
)

func TestStripeGateway_CreateSession(t *testing.T) {
	fake, gateway := newFakeStripe(t, existingCustomer)

	session, err := gateway.CreateSession(context.Background(), SessionRequest{
		UserID:        userID,
		CustomerEmail: "student@example.com",
		Items:         cart(),
		SuccessURL:    "https://app.example/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     "https://app.example/cart",
	})
	require.NoError(t, err)
	assert.Equal(t, &Session{ID: "cs_test_a1", URL: "https://checkout.example/cs_test_a1"}, session)

	assert.Equal(t, "student@example.com", fake.form("GET /v1/customers").Get("email"))
	assert.Nil(t, fake.form("POST /v1/customers"))

	form := fake.form("POST /v1/checkout/sessions")
	require.NotNil(t, form)
	assert.Equal(t, "cus_existing", form.Get("customer"))
	assert.Equal(t, "payment", form.Get("mode"))
	assert.Equal(t, "https://app.example/payment-success?session_id={CHECKOUT_SESSION_ID}", form.Get("success_url"))
	assert.Equal(t, "https://app.example/cart", form.Get("cancel_url"))
	assert.Equal(t, userID, form.Get("metadata[user_id]"))
	assert.Equal(t, "usd", form.Get("line_items[0][price_data][currency]"))
	assert.Equal(t, "Go Basics", form.Get("line_items[0][price_data][product_data][name]"))
	assert.Equal(t, "1999", form.Get("line_items[0][price_data][unit_amount]"))
	assert.Equal(t, "1", form.Get("line_items[0][quantity]"))
	assert.Equal(t, "4950", form.Get("line_items[1][price_data][unit_amount]"))
}

func TestStripeGateway_CreatesMissingCustomer(t *testing.T) {
	fake, gateway := newFakeStripe(t, noCustomers)

	_, err := gateway.CreateSession(context.Background(), SessionRequest{
		UserID:        userID,
		CustomerEmail: "new@example.com",
		Items:         cart()[:1],
	})
	require.NoError(t, err)

	assert.Equal(t, "new@example.com", fake.form("POST /v1/customers").Get("email"))
	assert.Equal(t, "cus_new", fake.form("POST /v1/checkout/sessions").Get("customer"))
}

func TestStripeGateway_GetSession(t *testing.T) {
	_, gateway := newFakeStripe(t, noCustomers)

	session, err := gateway.GetSession(context.Background(), "cs_test_paid")
	require.NoError(t, err)
	assert.True(t, session.Paid)
	assert.Equal(t, "cs_test_paid", session.ID)

	_, err = gateway.GetSession(context.Background(), "cs_test_missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
