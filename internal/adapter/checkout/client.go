package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/garmentix/marketplace/internal/domain/model"
)

// ErrSessionNotSettled indicates the provider has not finished processing
// the checkout session yet.
var ErrSessionNotSettled = errors.New("checkout session not settled")

// TooManyRequestsError represents rate limiting signal from the provider.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// SessionRequest carries the order and buyer fields the provider needs to
// open a checkout page.
type SessionRequest struct {
	OrderID     string
	ProductName string
	Amount      float64
	BuyerEmail  string
	BuyerName   string
}

// Client exposes operations against the external checkout provider.
type Client interface {
	CreateSession(ctx context.Context, req SessionRequest) (*model.CheckoutSession, error)
	ConfirmSession(ctx context.Context, sessionID string) (*model.CheckoutConfirmation, error)
}

// HTTPClient implements Client via the provider's HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

type sessionPayload struct {
	ReferenceID string  `json:"reference_id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Email       string  `json:"customer_email"`
	Name        string  `json:"customer_name"`
}

type sessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type confirmResponse struct {
	ID            string  `json:"id"`
	Status        string  `json:"status"`
	TransactionID string  `json:"transaction_id"`
	Amount        float64 `json:"amount"`
}

// NewHTTPClient creates an HTTP checkout client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse checkout url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("checkout url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

// CreateSession opens a checkout session and returns the redirect URL.
func (c *HTTPClient) CreateSession(ctx context.Context, sess SessionRequest) (*model.CheckoutSession, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/v1/checkout/sessions")

	body, err := json.Marshal(sessionPayload{
		ReferenceID: sess.OrderID,
		Description: sess.ProductName,
		Amount:      sess.Amount,
		Email:       sess.BuyerEmail,
		Name:        sess.BuyerName,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var data sessionResponse
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, err
		}
		if data.URL == "" {
			return nil, fmt.Errorf("checkout session missing redirect url")
		}
		return &model.CheckoutSession{ID: data.ID, URL: data.URL}, nil
	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return nil, TooManyRequestsError{RetryAfter: retryAfter}
	default:
		raw, _ := io.ReadAll(resp.Body)
		c.logger.Error("checkout session request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(raw)))
		return nil, fmt.Errorf("checkout error: %s", resp.Status)
	}
}

// ConfirmSession reconciles a completed session into a confirmation.
func (c *HTTPClient) ConfirmSession(ctx context.Context, sessionID string) (*model.CheckoutConfirmation, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/v1/checkout/sessions/", sessionID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var data confirmResponse
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, err
		}
		return &model.CheckoutConfirmation{
			SessionID:     data.ID,
			TransactionID: data.TransactionID,
			Paid:          data.Status == "complete" || data.Status == "paid",
			Amount:        data.Amount,
		}, nil
	case http.StatusAccepted, http.StatusNoContent:
		return nil, ErrSessionNotSettled
	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return nil, TooManyRequestsError{RetryAfter: retryAfter}
	default:
		raw, _ := io.ReadAll(resp.Body)
		c.logger.Error("checkout confirm failed", slog.Int("status", resp.StatusCode), slog.String("body", string(raw)))
		return nil, fmt.Errorf("checkout error: %s", resp.Status)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
