package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ParsePayload validates a raw notification body and returns the bytes to
// hand downstream. Valid JSON is returned unchanged (any JSON value is
// accepted, there is no schema). If strict parsing fails, a repair pass
// escapes stray quotes inside string literals and the result is re-checked.
//
// OCI Notifications is known to emit alarmSummary text containing raw `"`
// characters without escaping them, which is syntactically invalid JSON.
// Repair runs only after strict parsing fails, so valid payloads are never
// rewritten.
func ParsePayload(body []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, ErrEmptyBody
	}

	if json.Valid(trimmed) {
		return trimmed, nil
	}

	repaired := repairStrayQuotes(trimmed)
	if json.Valid(repaired) {
		return repaired, nil
	}

	// Report the diagnostic from the original text, not the repaired one.
	var probe any
	err := json.Unmarshal(trimmed, &probe)
	return nil, fmt.Errorf("%w: %v", ErrUnrepairableJSON, err)
}

// repairStrayQuotes escapes literal `"` characters that appear inside JSON
// string literals. A quote inside a string is treated as the closing quote
// only when the next non-whitespace byte is a structural continuation
// (comma, colon, closing brace or bracket) or end of input; any other quote
// is content and gets escaped.
//
// This is a heuristic, not a full tokenizer: a stray quote immediately
// followed by a structural byte still terminates the string early. That
// shape has not been observed in upstream payloads.
func repairStrayQuotes(src []byte) []byte {
	var out bytes.Buffer
	out.Grow(len(src) + 16)

	inString := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		if !inString {
			if c == '"' {
				inString = true
			}
			out.WriteByte(c)
			continue
		}
		switch c {
		case '\\':
			out.WriteByte(c)
			if i+1 < len(src) {
				i++
				out.WriteByte(src[i])
			}
		case '"':
			if closesString(src, i+1) {
				inString = false
				out.WriteByte(c)
			} else {
				out.WriteString(`\"`)
			}
		default:
			out.WriteByte(c)
		}
	}
	return out.Bytes()
}

// closesString reports whether a quote at position i-1 can terminate a JSON
// string, judged by the next non-whitespace byte.
func closesString(src []byte, i int) bool {
	for ; i < len(src); i++ {
		switch src[i] {
		case ' ', '\t', '\r', '\n':
			continue
		case ',', ':', '}', ']':
			return true
		default:
			return false
		}
	}
	return true
}
