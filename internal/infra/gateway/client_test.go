package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(secret, transactionCode, status string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(transactionCode + "|" + status))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	c := NewClient("http://example.com", "secret")

	good := sign("secret", "tx-1", "COMPLETED")
	assert.True(t, c.VerifySignature("tx-1", "COMPLETED", good))

	// ステータスが違えば署名は合わない
	assert.False(t, c.VerifySignature("tx-1", "FAILED", good))
	assert.False(t, c.VerifySignature("tx-1", "COMPLETED", "garbage"))
	assert.False(t, c.VerifySignature("tx-1", "COMPLETED", ""))
}

func TestVerifySignature_EmptySecretAlwaysFails(t *testing.T) {
	c := NewClient("http://example.com", "")
	assert.False(t, c.VerifySignature("tx-1", "COMPLETED", sign("", "tx-1", "COMPLETED")))
}

func TestFetchStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transactions/tx-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"transaction_code":"tx-1","status":"COMPLETED"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	status, err := c.FetchStatus(context.Background(), "tx-1")

	assert.NoError(t, err)
	assert.Equal(t, "COMPLETED", status)
}

func TestFetchStatus_RetriesOnTransientFailure(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"transaction_code":"tx-1","status":"FAILED"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	status, err := c.FetchStatus(context.Background(), "tx-1")

	assert.NoError(t, err)
	assert.Equal(t, "FAILED", status)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestFetchStatus_GivesUpAfterRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	_, err := c.FetchStatus(context.Background(), "tx-1")

	assert.Error(t, err)
}
