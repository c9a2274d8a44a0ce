package handler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Confirmer completes the one-time subscription handshake by calling the
// confirmation URL the notification service handed us.
type Confirmer interface {
	Confirm(ctx context.Context, url string) error
}

// HTTPConfirmer performs the handshake with a plain GET.
type HTTPConfirmer struct {
	httpClient *http.Client
	userAgent  string
}

// NewHTTPConfirmer creates a new HTTPConfirmer identified by a
// version-stamped user agent.
func NewHTTPConfirmer(version string) *HTTPConfirmer {
	return &HTTPConfirmer{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		userAgent:  "ocitotelegram/" + version,
	}
}

// Confirm issues a single GET to the confirmation URL. Any 2xx response
// completes the handshake; everything else is a failure. No retries.
func (c *HTTPConfirmer) Confirm(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("confirm: failed to create HTTP request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "*/*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("confirm: failed to call confirmation URL: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Error("confirm: failed to close response body", "error", err)
		}
	}()
	// Drain so the connection can be reused; the body content is irrelevant.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("confirm: confirmation URL returned status %d", resp.StatusCode)
	}

	return nil
}
