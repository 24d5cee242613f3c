package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/coldstore/internal/config"
)

// Client delivers operational alerts to an external webhook.
type Client interface {
	SendLowStockAlert(ctx context.Context, alert LowStockAlert) error
}

// LowStockAlert describes a product that crossed the low-stock threshold.
type LowStockAlert struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Stock       float64 `json:"stock"`
	Unit        string  `json:"unit"`
	Threshold   float64 `json:"threshold"`
}

// WebhookClient is a resty-backed implementation of Client.
type WebhookClient struct {
	httpClient *resty.Client
	webhookURL string
}

// NewClient builds a webhook alert client using the provided configuration values.
func NewClient(cfg config.AlertsConfig) *WebhookClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(10 * time.Second)

	return &WebhookClient{
		httpClient: restyClient,
		webhookURL: cfg.WebhookURL,
	}
}

// SendLowStockAlert posts the alert payload to the configured webhook.
func (c *WebhookClient) SendLowStockAlert(ctx context.Context, alert LowStockAlert) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(alert).
		Post(c.webhookURL)
	if err != nil {
		return fmt.Errorf("post low stock alert: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("low stock webhook returned status %d: %s", resp.StatusCode(), resp.String())
	}

	return nil
}
