package httpclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"regexp"

	"github.com/tidwall/gjson"
)

// User-facing messages produced by ErrorMessage. Fixed strings so pages and
// tests can rely on them verbatim.
const (
	MsgGeneric        = "Something went wrong."
	MsgNetwork        = "Network error. Check your connection and that the API is running."
	MsgSessionExpired = "Session expired. Please sign in again."
	MsgServerError    = "Server error. Please try again later."
)

var statusMessages = map[int]string{
	400: "Invalid request.",
	401: MsgSessionExpired,
	403: "You don't have permission to do that.",
	404: "Not found.",
	422: "Validation error.",
	429: "Too many attempts. Please try again in a minute.",
}

var (
	networkPattern = regexp.MustCompile(`(?i)fetch|network|failed to fetch|connection refused|no such host|timeout`)
	tokenPattern   = regexp.MustCompile(`(?i)token.*(invalid|expired|not valid)|(invalid|expired|not valid).*token`)
)

// Paginated is the normalized list envelope: the raw items of the current
// page plus the total item count across all pages.
type Paginated struct {
	Results []json.RawMessage
	Count   int
}

// ToList extracts the items of a list response whether the server sent a bare
// JSON array or a paginated envelope. Total: unrecognized shapes, including
// nil, yield an empty slice.
func ToList(body []byte) []json.RawMessage {
	parsed := gjson.ParseBytes(body)
	if parsed.IsArray() {
		return rawItems(parsed)
	}
	if results := parsed.Get("results"); results.IsArray() {
		return rawItems(results)
	}
	return []json.RawMessage{}
}

// ToPaginated normalizes a list response into a Paginated. A paginated
// envelope passes through; a bare array becomes a single full page; anything
// else yields an empty result. Total like ToList.
func ToPaginated(body []byte) Paginated {
	parsed := gjson.ParseBytes(body)
	if parsed.IsArray() {
		items := rawItems(parsed)
		return Paginated{Results: items, Count: len(items)}
	}
	if results := parsed.Get("results"); results.IsArray() {
		items := rawItems(results)
		count := len(items)
		if c := parsed.Get("count"); c.Exists() {
			count = int(c.Int())
		}
		return Paginated{Results: items, Count: count}
	}
	return Paginated{Results: []json.RawMessage{}}
}

func rawItems(arr gjson.Result) []json.RawMessage {
	items := arr.Array()
	out := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		out = append(out, json.RawMessage(item.Raw))
	}
	return out
}

// ErrorMessage maps an arbitrary error to a user-facing string. It is total:
// any input, including nil, produces a readable message and it never panics.
// Precedence: detail field, status-specific messages, field-level errors,
// then status-qualified or generic fallbacks.
func ErrorMessage(err error) string {
	if err == nil {
		return MsgGeneric
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return transportMessage(err)
	}

	body := gjson.ParseBytes(apiErr.Body)

	detail := body.Get("detail")
	if detail.IsArray() {
		if arr := detail.Array(); len(arr) > 0 {
			return arr[0].String()
		}
	}
	if detail.Type == gjson.String {
		if tokenPattern.MatchString(detail.String()) {
			return MsgSessionExpired
		}
		return detail.String()
	}

	if apiErr.Status >= 500 {
		return MsgServerError
	}
	if msg, ok := statusMessages[apiErr.Status]; ok {
		return msg
	}

	message := ""
	body.ForEach(func(key, value gjson.Result) bool {
		if key.String() == "detail" || !value.IsArray() {
			return true
		}
		if arr := value.Array(); len(arr) > 0 {
			message = fmt.Sprintf("%s: %s", key.String(), arr[0].String())
			return false
		}
		return true
	})
	if message != "" {
		return message
	}

	if detail.Exists() {
		return detail.String()
	}
	if apiErr.Status > 0 {
		return fmt.Sprintf("Request failed (%d).", apiErr.Status)
	}
	return MsgGeneric
}

// transportMessage handles errors that never reached the server: DNS and
// connection failures, timeouts, and plain Go errors from callers.
func transportMessage(err error) string {
	var netErr net.Error
	var urlErr *url.Error
	if errors.As(err, &netErr) || errors.As(err, &urlErr) {
		return MsgNetwork
	}
	msg := err.Error()
	if msg == "" {
		return MsgGeneric
	}
	if networkPattern.MatchString(msg) {
		return MsgNetwork
	}
	return msg
}
