package handler

import (
	"fmt"
	"net/http"
	"sync/atomic"
)

// Metrics holds Prometheus counters for the service. Safe for concurrent use.
type Metrics struct {
	alarmsProcessedTotal        atomic.Uint64
	messagesSentTotal           atomic.Uint64
	messagesFailedTotal         atomic.Uint64
	confirmationsCompletedTotal atomic.Uint64
	confirmationsFailedTotal    atomic.Uint64
}

// NewMetrics returns a new Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// IncAlarmsProcessed increments the alarms-processed counter.
func (m *Metrics) IncAlarmsProcessed() {
	m.alarmsProcessedTotal.Add(1)
}

// IncMessagesSent increments the messages-sent counter.
func (m *Metrics) IncMessagesSent() {
	m.messagesSentTotal.Add(1)
}

// IncMessagesFailed increments the messages-failed counter.
func (m *Metrics) IncMessagesFailed() {
	m.messagesFailedTotal.Add(1)
}

// IncConfirmationsCompleted increments the confirmations-completed counter.
func (m *Metrics) IncConfirmationsCompleted() {
	m.confirmationsCompletedTotal.Add(1)
}

// IncConfirmationsFailed increments the confirmations-failed counter.
func (m *Metrics) IncConfirmationsFailed() {
	m.confirmationsFailedTotal.Add(1)
}

// Metrics serves GET /metrics in Prometheus text exposition format.
func (h *Handler) Metrics(w http.ResponseWriter, _ *http.Request) {
	processed := h.metrics.alarmsProcessedTotal.Load()
	sent := h.metrics.messagesSentTotal.Load()
	failed := h.metrics.messagesFailedTotal.Load()
	confirmed := h.metrics.confirmationsCompletedTotal.Load()
	confirmFailed := h.metrics.confirmationsFailedTotal.Load()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	_, _ = fmt.Fprintf(w, "# HELP ocitotelegram_alarms_processed_total Total number of alarm notifications processed.\n")
	_, _ = fmt.Fprintf(w, "# TYPE ocitotelegram_alarms_processed_total counter\n")
	_, _ = fmt.Fprintf(w, "ocitotelegram_alarms_processed_total %d\n", processed)
	_, _ = fmt.Fprintf(w, "# HELP ocitotelegram_messages_sent_total Total messages delivered to Telegram successfully.\n")
	_, _ = fmt.Fprintf(w, "# TYPE ocitotelegram_messages_sent_total counter\n")
	_, _ = fmt.Fprintf(w, "ocitotelegram_messages_sent_total %d\n", sent)
	_, _ = fmt.Fprintf(w, "# HELP ocitotelegram_messages_failed_total Total messages that failed to deliver.\n")
	_, _ = fmt.Fprintf(w, "# TYPE ocitotelegram_messages_failed_total counter\n")
	_, _ = fmt.Fprintf(w, "ocitotelegram_messages_failed_total %d\n", failed)
	_, _ = fmt.Fprintf(w, "# HELP ocitotelegram_confirmations_completed_total Total subscription confirmations completed.\n")
	_, _ = fmt.Fprintf(w, "# TYPE ocitotelegram_confirmations_completed_total counter\n")
	_, _ = fmt.Fprintf(w, "ocitotelegram_confirmations_completed_total %d\n", confirmed)
	_, _ = fmt.Fprintf(w, "# HELP ocitotelegram_confirmations_failed_total Total subscription confirmations that failed.\n")
	_, _ = fmt.Fprintf(w, "# TYPE ocitotelegram_confirmations_failed_total counter\n")
	_, _ = fmt.Fprintf(w, "ocitotelegram_confirmations_failed_total %d\n", confirmFailed)
}
