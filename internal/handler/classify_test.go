package handler

import (
	"net/http"
	"testing"
)

func TestConfirmationFromHeaders_MessageType(t *testing.T) {
	header := http.Header{}
	header.Set("X-OCI-NS-MessageType", "SubscriptionConfirmation")

	sig := ConfirmationFromHeaders(header)
	if !sig.Present {
		t.Error("expected confirmation signal from message-type header")
	}
	if sig.URL != "" {
		t.Errorf("expected no URL, got %q", sig.URL)
	}
}

func TestConfirmationFromHeaders_MessageTypeCaseInsensitive(t *testing.T) {
	header := http.Header{}
	header.Set("x-oci-ns-messagetype", "SUBSCRIPTIONCONFIRMATION")

	sig := ConfirmationFromHeaders(header)
	if !sig.Present {
		t.Error("expected confirmation signal regardless of value case")
	}
}

func TestConfirmationFromHeaders_ConfirmationURL(t *testing.T) {
	header := http.Header{}
	header.Set("X-OCI-NS-ConfirmationURL", " https://x/y ")

	sig := ConfirmationFromHeaders(header)
	if !sig.Present {
		t.Error("expected confirmation signal from URL header")
	}
	if sig.URL != "https://x/y" {
		t.Errorf("expected trimmed URL https://x/y, got %q", sig.URL)
	}
}

func TestConfirmationFromHeaders_NoSignal(t *testing.T) {
	header := http.Header{}
	header.Set("X-OCI-NS-MessageType", "AlarmStatusChanged")

	sig := ConfirmationFromHeaders(header)
	if sig.Present {
		t.Error("expected no confirmation signal")
	}
}

func TestConfirmationFromBody_EventType(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		present bool
		url     string
	}{
		{
			name:    "snake case event type",
			payload: `{"eventType":"SUBSCRIPTION_CONFIRMATION"}`,
			present: true,
		},
		{
			name:    "camel case event type",
			payload: `{"eventType":"SubscriptionConfirmation"}`,
			present: true,
		},
		{
			name:    "uppercase confirmation URL key",
			payload: `{"ConfirmationURL":"https://x/confirm"}`,
			present: true,
			url:     "https://x/confirm",
		},
		{
			name:    "lowercase confirmation URL key",
			payload: `{"confirmationUrl":"https://x/confirm2"}`,
			present: true,
			url:     "https://x/confirm2",
		},
		{
			name:    "event type and URL together",
			payload: `{"eventType":"SUBSCRIPTION_CONFIRMATION","ConfirmationURL":"https://x/c"}`,
			present: true,
			url:     "https://x/c",
		},
		{
			name:    "alarm payload is not a confirmation",
			payload: `{"type":"OK_TO_FIRING","severity":"CRITICAL"}`,
			present: false,
		},
		{
			name:    "unrelated event type",
			payload: `{"eventType":"com.oraclecloud.computeapi.launchinstance.end"}`,
			present: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := ConfirmationFromBody([]byte(tt.payload))
			if sig.Present != tt.present {
				t.Errorf("Present = %v, want %v", sig.Present, tt.present)
			}
			if sig.URL != tt.url {
				t.Errorf("URL = %q, want %q", sig.URL, tt.url)
			}
		})
	}
}

func TestConfirmationFromBody_URLKeyPrecedence(t *testing.T) {
	payload := `{"ConfirmationURL":"https://x/first","confirmationUrl":"https://x/second"}`

	sig := ConfirmationFromBody([]byte(payload))
	if sig.URL != "https://x/first" {
		t.Errorf("expected ConfirmationURL spelling to win, got %q", sig.URL)
	}
}
