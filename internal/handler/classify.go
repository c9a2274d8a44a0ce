package handler

import (
	"net/http"
	"strings"

	"github.com/buger/jsonparser"
)

// OCI Notifications signals a subscription confirmation inconsistently
// across delivery paths: sometimes purely via headers, sometimes only via
// fields inside the JSON body. Both sources must be checked.
const (
	headerMessageType     = "X-OCI-NS-MessageType"
	headerConfirmationURL = "X-OCI-NS-ConfirmationURL"

	messageTypeConfirmation = "SubscriptionConfirmation"
)

// confirmationURLKeys are the accepted body field spellings for the
// confirmation callback URL.
var confirmationURLKeys = []string{"ConfirmationURL", "confirmationUrl"}

// ConfirmationSignal is the outcome of confirmation detection: whether the
// request is a subscription confirmation, and the callback URL if one was
// found.
type ConfirmationSignal struct {
	Present bool
	URL     string
}

// ConfirmationFromHeaders inspects request headers for confirmation signals.
// A confirmation-URL header both marks the request as a confirmation and
// carries the callback URL, so it can be acted on before the body is parsed.
func ConfirmationFromHeaders(header http.Header) ConfirmationSignal {
	var sig ConfirmationSignal
	if strings.EqualFold(header.Get(headerMessageType), messageTypeConfirmation) {
		sig.Present = true
	}
	if u := strings.TrimSpace(header.Get(headerConfirmationURL)); u != "" {
		sig.Present = true
		sig.URL = u
	}
	return sig
}

// ConfirmationFromBody inspects a parsed payload for confirmation signals:
// an eventType naming a subscription confirmation, or a confirmation URL
// under either accepted key spelling.
func ConfirmationFromBody(payload []byte) ConfirmationSignal {
	var sig ConfirmationSignal
	if eventType, err := jsonparser.GetString(payload, "eventType"); err == nil && isConfirmationEvent(eventType) {
		sig.Present = true
	}
	for _, key := range confirmationURLKeys {
		if u, err := jsonparser.GetString(payload, key); err == nil && strings.TrimSpace(u) != "" {
			sig.Present = true
			sig.URL = strings.TrimSpace(u)
			break
		}
	}
	return sig
}

func isConfirmationEvent(eventType string) bool {
	return strings.EqualFold(eventType, messageTypeConfirmation) ||
		strings.EqualFold(eventType, "SUBSCRIPTION_CONFIRMATION")
}
