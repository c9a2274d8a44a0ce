// mock-telegram is a standalone fake Telegram Bot API server for manual
// integration runs. Point the bridge at it with TELEGRAM_BASE_URL and inspect
// delivered messages on GET /messages.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"
)

// SendMessageRequest mirrors the Bot API sendMessage body
type SendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

// StoredMessage is one recorded delivery
type StoredMessage struct {
	ReceivedAt time.Time          `json:"received_at"`
	BotToken   string             `json:"bot_token"`
	Request    SendMessageRequest `json:"request"`
}

// MessageStore stores delivered messages for verification
type MessageStore struct {
	mu       sync.RWMutex
	messages []StoredMessage
}

func (s *MessageStore) Add(msg StoredMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

func (s *MessageStore) GetAll() []StoredMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]StoredMessage, len(s.messages))
	copy(result, s.messages)
	return result
}

func (s *MessageStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
}

var store = &MessageStore{}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "9200"
	}

	// Bot API method endpoint: /bot<token>/sendMessage
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/bot") || !strings.HasSuffix(r.URL.Path, "/sendMessage") {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		token := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/bot"), "/sendMessage")

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "failed to read body", http.StatusBadRequest)
			return
		}
		var req SendMessageRequest
		if err := json.Unmarshal(body, &req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, `{"ok":false,"error_code":400,"description":"Bad Request: %s"}`, err)
			return
		}
		if req.ChatID == "" || req.Text == "" {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"ok":false,"error_code":400,"description":"Bad Request: chat_id and text are required"}`)
			return
		}

		store.Add(StoredMessage{ReceivedAt: time.Now(), BotToken: token, Request: req})
		log.Printf("sendMessage chat_id=%s parse_mode=%s len=%d", req.ChatID, req.ParseMode, len(req.Text))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"ok":true,"result":{"message_id":%d}}`, len(store.GetAll()))
	})

	// Verification endpoint for test scripts
	http.HandleFunc("/messages", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(store.GetAll())
		case http.MethodDelete:
			store.Clear()
			w.WriteHeader(http.StatusNoContent)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "ok")
	})

	log.Printf("mock-telegram listening on :%s", port)
	log.Fatal(http.ListenAndServe(":"+port, nil))
}
