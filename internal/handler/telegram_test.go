package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewTelegramClient_DefaultBaseURL(t *testing.T) {
	client := NewTelegramClient("123:abc", "42", "")

	if client.baseURL != defaultTelegramBaseURL {
		t.Errorf("expected baseURL %q, got %q", defaultTelegramBaseURL, client.baseURL)
	}
	if client.botToken != "123:abc" {
		t.Errorf("expected botToken %q, got %q", "123:abc", client.botToken)
	}
	if client.chatID != "42" {
		t.Errorf("expected chatID %q, got %q", "42", client.chatID)
	}
}

func TestNewTelegramClient_CustomBaseURL(t *testing.T) {
	client := NewTelegramClient("123:abc", "42", "https://custom.telegram.example")

	if client.baseURL != "https://custom.telegram.example" {
		t.Errorf("expected custom baseURL, got %q", client.baseURL)
	}
}

func TestTelegramHTTPClient_SendMessage(t *testing.T) {
	var receivedPath string
	var receivedContentType string
	var receivedBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedPath = r.URL.Path
		receivedContentType = r.Header.Get("Content-Type")
		receivedBody, _ = io.ReadAll(r.Body)

		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1}}`))
	}))
	defer server.Close()

	client := NewTelegramClient("123:abc", "42", server.URL)
	err := client.SendMessage(context.Background(), "🔥 *Oracle VM Alert*")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if receivedPath != "/bot123:abc/sendMessage" {
		t.Errorf("expected path /bot123:abc/sendMessage, got %q", receivedPath)
	}
	if !strings.HasPrefix(receivedContentType, "application/json") {
		t.Errorf("expected JSON content type, got %q", receivedContentType)
	}

	var req sendMessageRequest
	if err := json.Unmarshal(receivedBody, &req); err != nil {
		t.Fatalf("failed to decode request body: %v", err)
	}
	if req.ChatID != "42" {
		t.Errorf("expected chat_id 42, got %q", req.ChatID)
	}
	if req.Text != "🔥 *Oracle VM Alert*" {
		t.Errorf("expected message text, got %q", req.Text)
	}
	if req.ParseMode != "Markdown" {
		t.Errorf("expected parse_mode Markdown, got %q", req.ParseMode)
	}
	if !req.DisableWebPagePreview {
		t.Error("expected disable_web_page_preview true")
	}
}

func TestTelegramHTTPClient_SendMessage_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":401,"description":"Unauthorized"}`))
	}))
	defer server.Close()

	client := NewTelegramClient("bad-token", "42", server.URL)
	err := client.SendMessage(context.Background(), "text")

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "API error (status 401)") {
		t.Errorf("expected error to contain status code, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "Unauthorized") {
		t.Errorf("expected error to carry the API response, got %q", err.Error())
	}
}

func TestTelegramHTTPClient_SendMessage_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewTelegramClient("123:abc", "42", server.URL)
	if err := client.SendMessage(ctx, "text"); err == nil {
		t.Error("expected error from cancelled context, got nil")
	}
}
