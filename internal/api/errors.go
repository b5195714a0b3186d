package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// The client surfaces every failure as one of four error kinds. Callers
// type-switch (or errors.As) on these instead of inspecting HTTP status codes.

// NetworkError indicates no response was received: the host is unreachable,
// the request timed out, or DNS resolution failed.
type NetworkError struct {
	URL   string
	Cause error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error calling %s: %v", e.URL, e.Cause)
}

// Unwrap returns the underlying transport error.
func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// Kind identifies the taxonomy bucket for logging and exit-code mapping.
func (e *NetworkError) Kind() string { return "network" }

// AuthError indicates the backend rejected the credential (HTTP 401).
// By the time a caller sees this error the session has already been torn down
// by the client's auth-failure hook.
type AuthError struct {
	Message string
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authentication required"
	}
	return e.Message
}

// Kind identifies the taxonomy bucket for logging and exit-code mapping.
func (e *AuthError) Kind() string { return "auth" }

// ValidationError indicates the backend rejected the request with a 4xx and a
// structured field-error body. Message is the flattened join of every
// field-level message, in body key order.
type ValidationError struct {
	StatusCode int
	Fields     map[string][]string
	Message    string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request rejected with status %d", e.StatusCode)
	}
	return e.Message
}

// Kind identifies the taxonomy bucket for logging and exit-code mapping.
func (e *ValidationError) Kind() string { return "validation" }

// ServerError indicates an HTTP 5xx. The body is passed through verbatim.
type ServerError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("server error (status %d): %s", e.StatusCode, e.Message)
}

// Kind identifies the taxonomy bucket for logging and exit-code mapping.
func (e *ServerError) Kind() string { return "server" }

// flattenFieldErrors parses a Django-style field-error body such as
//
//	{"username": ["required"], "password": ["too short"]}
//
// and joins every message with ", " in the order the keys appear in the body.
// Returns ok=false when the body is not a JSON object of field errors.
func flattenFieldErrors(body []byte) (fields map[string][]string, message string, ok bool) {
	dec := json.NewDecoder(strings.NewReader(string(body)))

	tok, err := dec.Token()
	if err != nil {
		return nil, "", false
	}
	if delim, isDelim := tok.(json.Delim); !isDelim || delim != '{' {
		return nil, "", false
	}

	fields = make(map[string][]string)
	var messages []string

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, "", false
		}
		key, isString := keyTok.(string)
		if !isString {
			return nil, "", false
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, "", false
		}

		var msgs []string
		var asList []string
		if err := json.Unmarshal(raw, &asList); err == nil {
			msgs = asList
		} else {
			var asString string
			if err := json.Unmarshal(raw, &asString); err != nil {
				// Nested objects or numbers carry no displayable message.
				continue
			}
			msgs = []string{asString}
		}

		fields[key] = msgs
		messages = append(messages, msgs...)
	}

	if len(messages) == 0 {
		return nil, "", false
	}
	return fields, strings.Join(messages, ", "), true
}
