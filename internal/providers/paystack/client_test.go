package paystack

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kolahope/kolahope/internal/donation/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(Config{
		SecretKey: "sk_test_abc",
		BaseURL:   srv.URL,
		Timeout:   time.Second,
	}, zap.NewNop())
}

func TestInitializeTransaction(t *testing.T) {
	var gotAuth string
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": true,
			"message": "Authorization URL created",
			"data": {
				"authorization_url": "https://checkout.paystack.com/xyz",
				"access_code": "xyz",
				"reference": "ref-123"
			}
		}`))
	})

	session, err := client.InitializeTransaction(context.Background(), domain.GatewayInitRequest{
		AmountMinor: 500000,
		Email:       "a@b.com",
		Currency:    "NGN",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer sk_test_abc", gotAuth)
	assert.Equal(t, "/transaction/initialize", gotPath)
	assert.Equal(t, "https://checkout.paystack.com/xyz", session.AuthorizationURL)
	assert.Equal(t, "ref-123", session.Reference)
}

func TestInitializeTransactionRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status": false, "message": "Invalid amount"}`))
	})

	_, err := client.InitializeTransaction(context.Background(), domain.GatewayInitRequest{
		AmountMinor: -1,
		Email:       "a@b.com",
	})
	require.ErrorIs(t, err, domain.ErrGateway)
	assert.Contains(t, err.Error(), "Invalid amount")
}

func TestVerifyTransaction(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/verify/ref-123", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"status": true,
			"message": "Verification successful",
			"data": {
				"reference": "ref-123",
				"status": "Success",
				"amount": 500000,
				"currency": "NGN",
				"customer": {"email": "a@b.com"},
				"metadata": {"program_id": "42"}
			}
		}`))
	})

	tx, err := client.VerifyTransaction(context.Background(), "ref-123")
	require.NoError(t, err)
	assert.True(t, tx.Success(), "status is normalized to lower case")
	assert.Equal(t, int64(500000), tx.AmountMinor)
	assert.Equal(t, "a@b.com", tx.CustomerEmail)
	assert.Equal(t, "42", tx.Metadata["program_id"])
}

func TestVerifyTransactionMalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := client.VerifyTransaction(context.Background(), "ref-123")
	assert.ErrorIs(t, err, domain.ErrGateway)
}

func TestCallTimeoutClassified(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})
	client.http.Timeout = 20 * time.Millisecond

	_, err := client.VerifyTransaction(context.Background(), "ref-slow")
	assert.ErrorIs(t, err, domain.ErrGatewayTimeout)
}

func TestListTransactions(t *testing.T) {
	since := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction", r.URL.Path)
		assert.Equal(t, "25", r.URL.Query().Get("perPage"))
		assert.Equal(t, since.Format(time.RFC3339), r.URL.Query().Get("from"))
		_, _ = w.Write([]byte(`{
			"status": true,
			"message": "Transactions retrieved",
			"data": [
				{"reference": "ref-1", "status": "success", "amount": 100000},
				{"reference": "ref-2", "status": "abandoned", "amount": 200000}
			]
		}`))
	})

	txns, err := client.ListTransactions(context.Background(), since, 25)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.True(t, txns[0].Success())
	assert.False(t, txns[1].Success())
}

func TestMissingSecretKey(t *testing.T) {
	client := NewClient(Config{}, zap.NewNop())

	_, err := client.InitializeTransaction(context.Background(), domain.GatewayInitRequest{})
	assert.ErrorIs(t, err, domain.ErrNotConfigured)

	_, err = client.VerifyTransaction(context.Background(), "ref")
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}
