package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/buger/jsonparser"
)

const defaultMaxSummaryLength = 200

// rawDumpLimit caps the raw-JSON dump embedded in the fallback message.
const rawDumpLimit = 300

const (
	emojiResolved = "✅"
	emojiFiring   = "🔥"
	emojiNeutral  = "ℹ️"
	emojiFallback = "⚠️"
)

// FormatMessage renders an alarm payload into a Markdown message for
// Telegram. Every field in the payload is optional at every nesting level,
// so each clause is appended only when its source field is present. Only the
// first alarmMetaData entry, first dimension and first metricValues object
// are consulted.
//
// FormatMessage never fails: if rendering panics on a malformed intermediate
// shape, a fallback message embedding the error and a truncated raw dump is
// returned instead.
func FormatMessage(payload []byte, maxSummaryLen int) (msg string) {
	defer func() {
		if r := recover(); r != nil {
			msg = fallbackMessage(payload, r)
		}
	}()
	if maxSummaryLen <= 0 {
		maxSummaryLen = defaultMaxSummaryLength
	}

	kind, _ := jsonparser.GetString(payload, "type")
	var label, emoji string
	switch kind {
	case "FIRING_TO_OK":
		label, emoji = "RESOLVED", emojiResolved
	case "OK_TO_FIRING":
		label, emoji = "FIRING", emojiFiring
	case "":
		label, emoji = "UNKNOWN", emojiNeutral
	default:
		label, emoji = kind, emojiNeutral
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s *Oracle VM Alert*\n", emoji)
	fmt.Fprintf(&b, "*Status:* %s\n", label)

	severity, err := jsonparser.GetString(payload, "severity")
	if err != nil || severity == "" {
		severity = "INFO"
	}
	fmt.Fprintf(&b, "*Severity:* %s\n", severity)

	timestamp, err := jsonparser.GetString(payload, "timestamp")
	if err != nil || timestamp == "" {
		timestamp = "Unknown time"
	}
	fmt.Fprintf(&b, "*Time:* %s\n", timestamp)

	if title, err := jsonparser.GetString(payload, "title"); err == nil && title != "" {
		fmt.Fprintf(&b, "*Alert:* %s\n", title)
	}

	if meta, _, _, err := jsonparser.Get(payload, "alarmMetaData", "[0]"); err == nil {
		writeMetadata(&b, meta, maxSummaryLen)
	}

	return strings.TrimRight(b.String(), "\n")
}

// writeMetadata appends the clauses sourced from one alarm metadata entry:
// resource dimensions, metric values, summary and console link.
func writeMetadata(b *strings.Builder, meta []byte, maxSummaryLen int) {
	if name, err := jsonparser.GetString(meta, "dimensions", "[0]", "resourceDisplayName"); err == nil && name != "" {
		fmt.Fprintf(b, "*Resource:* %s\n", name)
	}
	if shape, err := jsonparser.GetString(meta, "dimensions", "[0]", "shape"); err == nil && shape != "" {
		fmt.Fprintf(b, "*Shape:* %s\n", shape)
	}
	if region, err := jsonparser.GetString(meta, "dimensions", "[0]", "region"); err == nil && region != "" {
		fmt.Fprintf(b, "*Region:* %s\n", region)
	}

	if metrics, _, _, err := jsonparser.Get(meta, "metricValues", "[0]"); err == nil {
		writeMetricValues(b, metrics)
	}

	if summary, err := jsonparser.GetString(meta, "alarmSummary"); err == nil && summary != "" {
		fmt.Fprintf(b, "*Details:* %s\n", TruncateText(summary, maxSummaryLen))
	}
	if consoleURL, err := jsonparser.GetString(meta, "alarmUrl"); err == nil && consoleURL != "" {
		fmt.Fprintf(b, "[View in OCI Console](%s)\n", consoleURL)
	}
}

// writeMetricValues appends one line per numeric metric, in document order.
// Values that do not parse as numbers are expected (upstream mixes strings
// in) and are skipped without comment.
func writeMetricValues(b *strings.Builder, metrics []byte) {
	_ = jsonparser.ObjectEach(metrics, func(key, value []byte, _ jsonparser.ValueType, _ int) error {
		v, err := strconv.ParseFloat(string(value), 64)
		if err != nil {
			return nil
		}
		name := string(key)
		if strings.Contains(name, "Cpu") {
			name = "CPU Usage"
		}
		fmt.Fprintf(b, "%s: %.1f%%\n", name, v)
		return nil
	})
}

// fallbackMessage is produced when rendering panics. It still gives the chat
// a usable diagnostic instead of failing the request.
func fallbackMessage(payload []byte, cause any) string {
	dump := string(payload)
	if runes := []rune(dump); len(runes) > rawDumpLimit {
		dump = string(runes[:rawDumpLimit])
	}
	return fmt.Sprintf("%s *Oracle VM Alert*\nAlert received but could not be formatted.\nError: %v\nRaw payload: %s",
		emojiFallback, cause, dump)
}
