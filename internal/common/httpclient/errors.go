package httpclient

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// APIError represents a non-2xx response from the server. Status carries the
// primary meaning; Body holds the raw response body, which may be empty or
// non-JSON. Use ErrorMessage to turn one into user-facing text.
type APIError struct {
	Status int
	Body   []byte
}

func newAPIError(status int, body []byte) *APIError {
	return &APIError{Status: status, Body: body}
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if detail := e.Detail(); detail != "" {
		return fmt.Sprintf("request failed (%d): %s", e.Status, detail)
	}
	return fmt.Sprintf("request failed (%d)", e.Status)
}

// Detail returns the body's detail field as a string: the field itself when
// it is a string, its first element when it is an array, and "" otherwise.
func (e *APIError) Detail() string {
	d := gjson.GetBytes(e.Body, "detail")
	switch {
	case d.IsArray():
		if arr := d.Array(); len(arr) > 0 {
			return arr[0].String()
		}
		return ""
	case d.Type == gjson.String:
		return d.String()
	default:
		return ""
	}
}

// FieldErrors returns per-field validation errors: every top-level body key
// other than detail whose value is a non-empty array, mapped to the first
// message. DRF serializers report validation failures in this shape.
func (e *APIError) FieldErrors() map[string]string {
	fields := make(map[string]string)
	gjson.ParseBytes(e.Body).ForEach(func(key, value gjson.Result) bool {
		if key.String() == "detail" {
			return true
		}
		if value.IsArray() {
			if arr := value.Array(); len(arr) > 0 {
				fields[key.String()] = arr[0].String()
			}
		}
		return true
	})
	return fields
}
