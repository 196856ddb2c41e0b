package images

import (
	"io"
	"log/slog"
	"testing"

	"github.com/garmentix/marketplace/internal/config"
)

func TestNewUploaderUsesConfig(t *testing.T) {
	cfg := &config.Config{ImageHostingAddress: "https://api.imgbb.com/1/upload", ImageHostingKey: "key"}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	uploader := newUploader(uploaderParams{Config: cfg, Logger: logger})
	if uploader == nil {
		t.Fatal("expected uploader instance")
	}
}
