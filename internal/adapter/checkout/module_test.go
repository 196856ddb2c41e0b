package checkout

import (
	"io"
	"log/slog"
	"testing"

	"github.com/garmentix/marketplace/internal/config"
)

func TestNewClientUsesConfig(t *testing.T) {
	cfg := &config.Config{CheckoutProviderAddress: "http://example.com"}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	client, err := newClient(clientParams{Config: cfg, Logger: logger})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client == nil {
		t.Fatal("expected client instance")
	}
}
