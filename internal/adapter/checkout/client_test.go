package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewHTTPClientValidation(t *testing.T) {
	if _, err := NewHTTPClient("not-a-url", discardLogger()); err == nil {
		t.Fatalf("expected error for relative url")
	}
	if _, err := NewHTTPClient("https://checkout.example.com", discardLogger()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateSession(t *testing.T) {
	var captured sessionPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/checkout/sessions" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(sessionResponse{ID: "sess-1", URL: "https://pay.example.com/sess-1"})
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, discardLogger())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	session, err := client.CreateSession(context.Background(), SessionRequest{
		OrderID:     "order-1",
		ProductName: "Denim Jacket",
		Amount:      800,
		BuyerEmail:  "buyer@example.com",
		BuyerName:   "Buyer Name",
	})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if session.ID != "sess-1" || session.URL != "https://pay.example.com/sess-1" {
		t.Fatalf("unexpected session %+v", session)
	}
	if captured.ReferenceID != "order-1" || captured.Amount != 800 {
		t.Fatalf("unexpected payload %+v", captured)
	}
}

func TestCreateSessionRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, _ := NewHTTPClient(server.URL, discardLogger())
	_, err := client.CreateSession(context.Background(), SessionRequest{OrderID: "order-1"})

	var tooMany TooManyRequestsError
	if !errors.As(err, &tooMany) {
		t.Fatalf("expected TooManyRequestsError, got %v", err)
	}
	if tooMany.RetryAfter != 7*time.Second {
		t.Fatalf("expected retry after 7s, got %s", tooMany.RetryAfter)
	}
}

func TestCreateSessionServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, _ := NewHTTPClient(server.URL, discardLogger())
	if _, err := client.CreateSession(context.Background(), SessionRequest{OrderID: "order-1"}); err == nil {
		t.Fatalf("expected error for 500 response")
	}
}

func TestConfirmSession(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     *confirmResponse
		wantPaid bool
		wantErr  error
	}{
		{name: "complete", status: http.StatusOK, body: &confirmResponse{ID: "sess-1", Status: "complete", TransactionID: "txn-1", Amount: 800}, wantPaid: true},
		{name: "paid", status: http.StatusOK, body: &confirmResponse{ID: "sess-1", Status: "paid", TransactionID: "txn-1"}, wantPaid: true},
		{name: "open", status: http.StatusOK, body: &confirmResponse{ID: "sess-1", Status: "open"}, wantPaid: false},
		{name: "processing", status: http.StatusAccepted, wantErr: ErrSessionNotSettled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/v1/checkout/sessions/sess-1" {
					t.Fatalf("unexpected path %s", r.URL.Path)
				}
				w.WriteHeader(tt.status)
				if tt.body != nil {
					_ = json.NewEncoder(w).Encode(tt.body)
				}
			}))
			defer server.Close()

			client, _ := NewHTTPClient(server.URL, discardLogger())
			confirmation, err := client.ConfirmSession(context.Background(), "sess-1")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("confirm: %v", err)
			}
			if confirmation.Paid != tt.wantPaid {
				t.Fatalf("expected paid=%v, got %+v", tt.wantPaid, confirmation)
			}
		})
	}
}

func TestParseRetryAfter(t *testing.T) {
	if d := parseRetryAfter(""); d != 5*time.Second {
		t.Fatalf("expected default, got %s", d)
	}
	if d := parseRetryAfter("12"); d != 12*time.Second {
		t.Fatalf("expected 12s, got %s", d)
	}
	if d := parseRetryAfter("garbage"); d != 5*time.Second {
		t.Fatalf("expected default for garbage, got %s", d)
	}
}
