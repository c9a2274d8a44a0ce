package handler

import "errors"

// Sentinel errors for the request pipeline. Handlers map these to HTTP
// statuses with errors.Is; everything else is a wrapped transport error.
var (
	// ErrEmptyBody is returned when a notification body is empty or
	// whitespace-only.
	ErrEmptyBody = errors.New("empty request body")

	// ErrUnrepairableJSON is returned when a body fails strict JSON parsing
	// and the quote-repair pass does not make it parseable. The wrapped text
	// carries the original parse diagnostic.
	ErrUnrepairableJSON = errors.New("unrepairable JSON")

	// ErrMissingConfirmationURL is returned when a request signals a
	// subscription confirmation but no confirmation URL can be resolved from
	// headers or body.
	ErrMissingConfirmationURL = errors.New("confirmation request without confirmation URL")

	// ErrConfigurationMissing is returned when the Telegram bot token or chat
	// id is absent. This fails the request before any outbound call is made,
	// so it is never confused with a delivery failure.
	ErrConfigurationMissing = errors.New("telegram credentials not configured")
)
