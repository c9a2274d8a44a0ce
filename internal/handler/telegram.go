package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const defaultTelegramBaseURL = "https://api.telegram.org"

// TelegramClient is an interface for delivering messages to a chat
type TelegramClient interface {
	SendMessage(ctx context.Context, text string) error
}

// TelegramHTTPClient delivers messages via direct HTTP calls to the Telegram
// Bot API
type TelegramHTTPClient struct {
	httpClient *http.Client
	botToken   string
	chatID     string
	baseURL    string
}

// sendMessageRequest is the JSON body for the sendMessage Bot API method.
type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

// NewTelegramClient creates a new TelegramHTTPClient.
// If baseURL is empty, defaults to the official Bot API URL.
func NewTelegramClient(botToken, chatID, baseURL string) *TelegramHTTPClient {
	if baseURL == "" {
		baseURL = defaultTelegramBaseURL
	}
	return &TelegramHTTPClient{
		botToken:   botToken,
		chatID:     chatID,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SendMessage posts a Markdown message to the configured chat
func (t *TelegramHTTPClient) SendMessage(ctx context.Context, text string) error {
	apiURL := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.botToken)

	payload, err := json.Marshal(sendMessageRequest{
		ChatID:                t.chatID,
		Text:                  text,
		ParseMode:             "Markdown",
		DisableWebPagePreview: true,
	})
	if err != nil {
		return fmt.Errorf("telegram: failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("telegram: failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: failed to send HTTP request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Error("telegram: failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("telegram: API error (status %d), failed to read error response", resp.StatusCode)
		}
		return fmt.Errorf("telegram: API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return nil
}
