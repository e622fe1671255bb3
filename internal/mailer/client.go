// Package mailer предоставляет клиент внешнего сервиса отправки писем.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// Email описывает письмо для внешнего сервиса отправки.
type Email struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

type sendResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Client инкапсулирует HTTP-взаимодействие с сервисом отправки писем.
// Временные сбои сети и ответы 5xx повторяются автоматически.
type Client struct {
	baseURL    string
	httpClient *retryablehttp.Client
}

// NewClient создаёт клиент для обращения к сервису писем по указанному адресу.
func NewClient(baseURL string) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.HTTPClient.Timeout = 5 * time.Second
	rc.Logger = nil

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: rc,
	}
}

// Send отправляет письмо через внешний сервис. Возвращает ошибку, если
// сервис не подтвердил отправку.
func (c *Client) Send(ctx context.Context, msg Email) error {
	if c == nil || c.baseURL == "" {
		return fmt.Errorf("mailer client not configured")
	}

	base := c.baseURL
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	url := base + "/api/send-email"

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	var result sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status: %d", resp.StatusCode)
		}
		return fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || !result.Success {
		if result.Error != "" {
			return fmt.Errorf("send email: %s", result.Error)
		}
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	return nil
}
