package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// maxBodySize is the maximum allowed request body size (5 MB).
// This prevents denial-of-service attacks via large request bodies
// while leaving plenty of room for verbose alarm payloads.
const maxBodySize = 5 << 20

// Config holds the configuration for the handler
type Config struct {
	BotToken         string // Telegram bot token
	ChatID           string // Telegram chat to deliver alerts to
	TelegramBaseURL  string // Optional: override Telegram API base URL (for testing)
	MaxSummaryLength int    // Maximum summary length before truncation (default: 200)
	LogFormat        string // Access log format: "simple" (default) or "nginx"
	DryRun           bool   // If true, log messages instead of calling Telegram
}

// Validate checks that all required configuration fields are set and consistent.
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("missing required configuration: BotToken (env TOKEN)")
	}
	if c.ChatID == "" {
		return fmt.Errorf("missing required configuration: ChatID (env CHAT_ID)")
	}
	if c.MaxSummaryLength < 0 {
		return fmt.Errorf("MaxSummaryLength must be >= 0 (got %d)", c.MaxSummaryLength)
	}
	switch c.LogFormat {
	case "", "simple", "nginx":
	default:
		return fmt.Errorf("LogFormat must be \"simple\" or \"nginx\" (got %q)", c.LogFormat)
	}
	return nil
}

// Handler handles HTTP requests for the ocitotelegram service
type Handler struct {
	Config    *Config
	Client    TelegramClient
	Confirmer Confirmer
	StartTime time.Time
	Version   string
	metrics   *Metrics
}

// New creates a new Handler with the given configuration
func New(cfg *Config, version string) *Handler {
	return &Handler{
		Config:    cfg,
		Client:    NewTelegramClient(cfg.BotToken, cfg.ChatID, cfg.TelegramBaseURL),
		Confirmer: NewHTTPConfirmer(version),
		StartTime: time.Now(),
		Version:   version,
		metrics:   NewMetrics(),
	}
}

// NewWithClients creates a new Handler with custom collaborators (useful for testing)
func NewWithClients(cfg *Config, client TelegramClient, confirmer Confirmer, version string) *Handler {
	return &Handler{
		Config:    cfg,
		Client:    client,
		Confirmer: confirmer,
		StartTime: time.Now(),
		Version:   version,
		metrics:   NewMetrics(),
	}
}

// RegisterRoutes registers all HTTP routes on the given mux. Method patterns
// make the mux answer 405 on its own for anything that is not GET or POST.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /metrics", h.Metrics)
	mux.HandleFunc("GET /", h.Ready)
	mux.HandleFunc("POST /", h.Notify)
}

// Ready handles the health probe endpoint. The body is never touched.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if _, err := io.WriteString(w, "ready"); err != nil {
		slog.Error("ready: failed to write response", "error", err)
	}
}

// Health handles the health check endpoint
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(h.StartTime).Round(time.Second)
	response := HealthResponse{
		Status:  "ok",
		Version: h.Version,
		Uptime:  uptime.String(),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("health: failed to encode JSON response", "error", err)
	}
}

// Notify handles an inbound notification delivery. The pipeline is linear:
// read, parse (with quote repair), detect a subscription confirmation from
// headers then body, otherwise render the alarm and deliver it to Telegram.
//
// An empty body is rejected before anything else, regardless of headers. A
// confirmation URL carried in a header is acted on before parsing, since
// that delivery path does not need the body at all.
func (h *Handler) Notify(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if err := r.Body.Close(); err != nil {
			slog.Error("notify: failed to close request body", "error", err)
		}
	}()
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		slog.Error("notify: failed to read request body", "error", err)
		http.Error(w, "notify: failed to read request body", http.StatusBadRequest)
		return
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		slog.Error("notify: empty request body")
		http.Error(w, "notify: "+ErrEmptyBody.Error(), http.StatusBadRequest)
		return
	}

	headerSig := ConfirmationFromHeaders(r.Header)
	if headerSig.URL != "" {
		h.confirm(w, r, headerSig.URL)
		return
	}

	payload, err := ParsePayload(raw)
	if err != nil {
		slog.Error("notify: failed to parse request body", "error", err)
		http.Error(w, "notify: "+err.Error(), http.StatusBadRequest)
		return
	}

	bodySig := ConfirmationFromBody(payload)
	if headerSig.Present || bodySig.Present {
		// Header URL would have been handled above, so the body is the only
		// remaining URL source.
		if bodySig.URL == "" {
			slog.Error("notify: confirmation signaled but no confirmation URL found")
			http.Error(w, "notify: "+ErrMissingConfirmationURL.Error(), http.StatusBadRequest)
			return
		}
		h.confirm(w, r, bodySig.URL)
		return
	}

	h.deliver(w, r, payload)
}

// confirm completes the subscription handshake with exactly one outbound GET.
func (h *Handler) confirm(w http.ResponseWriter, r *http.Request, url string) {
	if err := h.Confirmer.Confirm(r.Context(), url); err != nil {
		h.metrics.IncConfirmationsFailed()
		slog.Error("confirm: handshake failed", "url", url, "error", err)
		http.Error(w, "confirm: failed to call confirmation URL", http.StatusInternalServerError)
		return
	}

	h.metrics.IncConfirmationsCompleted()
	slog.Info("Subscription confirmed", "url", url)
	if _, err := io.WriteString(w, "subscription confirmed"); err != nil {
		slog.Error("confirm: failed to write response", "error", err)
	}
}

// deliver renders the alarm payload and sends it to the chat.
func (h *Handler) deliver(w http.ResponseWriter, r *http.Request, payload []byte) {
	h.metrics.IncAlarmsProcessed()

	if h.Config.BotToken == "" || h.Config.ChatID == "" {
		slog.Error("deliver: telegram credentials not configured")
		http.Error(w, "deliver: "+ErrConfigurationMissing.Error(), http.StatusInternalServerError)
		return
	}

	text := FormatMessage(payload, h.Config.MaxSummaryLength)

	if h.Config.DryRun {
		slog.Info("dry-run: would send message", "text", text)
		if _, err := io.WriteString(w, "message sent"); err != nil {
			slog.Error("deliver: failed to write response", "error", err)
		}
		return
	}

	if err := h.Client.SendMessage(r.Context(), text); err != nil {
		h.metrics.IncMessagesFailed()
		slog.Error("telegram: failed to deliver message", "error", err)
		http.Error(w, "deliver: failed to deliver message", http.StatusInternalServerError)
		return
	}

	h.metrics.IncMessagesSent()
	slog.Info("Message sent")
	if _, err := io.WriteString(w, "message sent"); err != nil {
		slog.Error("deliver: failed to write response", "error", err)
	}
}
