package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/coldstore/internal/config"
)

func TestSendLowStockAlert(t *testing.T) {
	var received LowStockAlert
	var contentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(config.AlertsConfig{WebhookURL: srv.URL})

	alert := LowStockAlert{
		ProductID:   "p1",
		ProductName: "Salmon fillet",
		Stock:       3.2,
		Unit:        "kg",
		Threshold:   5,
	}
	require.NoError(t, client.SendLowStockAlert(context.Background(), alert))

	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, alert, received)
}

func TestSendLowStockAlertServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream busted", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(config.AlertsConfig{WebhookURL: srv.URL})

	err := client.SendLowStockAlert(context.Background(), LowStockAlert{ProductID: "p1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestSendLowStockAlertUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(config.AlertsConfig{WebhookURL: srv.URL})

	err := client.SendLowStockAlert(context.Background(), LowStockAlert{ProductID: "p1"})
	assert.Error(t, err)
}
