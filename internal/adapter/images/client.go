package images

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotConfigured signals that no hosting API key was provided; callers can
// fall back to accepting a plain image URL.
var ErrNotConfigured = errors.New("image hosting not configured")

// Uploader pushes an image to the external hosting service and returns its
// public URL.
type Uploader interface {
	Upload(ctx context.Context, name string, data []byte) (string, error)
}

// HTTPUploader implements Uploader against an imgbb-style upload endpoint.
type HTTPUploader struct {
	uploadURL  string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

type uploadResponse struct {
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
	Success bool `json:"success"`
}

// NewHTTPUploader creates an uploader with default timeout. An empty apiKey
// yields a client that reports ErrNotConfigured on use.
func NewHTTPUploader(uploadURL, apiKey string, logger *slog.Logger) *HTTPUploader {
	return &HTTPUploader{
		uploadURL: uploadURL,
		apiKey:    apiKey,
		logger:    logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Upload sends the image as multipart form data.
func (u *HTTPUploader) Upload(ctx context.Context, name string, data []byte) (string, error) {
	if u.apiKey == "" {
		return "", ErrNotConfigured
	}

	var body strings.Builder
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", name)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	endpoint := u.uploadURL + "?key=" + url.QueryEscape(u.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(body.String()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		u.logger.Error("image upload failed", slog.Int("status", resp.StatusCode), slog.String("body", string(raw)))
		return "", fmt.Errorf("image upload error: %s", resp.Status)
	}

	var parsed uploadResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", err
	}
	if !parsed.Success || parsed.Data.URL == "" {
		return "", fmt.Errorf("image upload rejected")
	}
	return parsed.Data.URL, nil
}
