package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors for admin API operations.
var (
	// ErrUnauthorized indicates the admin token was missing or rejected.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound indicates the product does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnsupportedMedia indicates the file does not match the media kind
	// expected by the endpoint (an image at the video endpoint or vice versa).
	ErrUnsupportedMedia = errors.New("unsupported media type")
)

// UploadError is a transfer failure reported by the server.
type UploadError struct {
	StatusCode int
	Message    string
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload failed: %s (status %d)", e.Message, e.StatusCode)
}

// mapStatus converts a non-success response into an error, extracting the
// human-readable message from a structured {"error": ...} body when the body
// parses, falling back to the raw text and then the HTTP status text.
func mapStatus(statusCode int, body []byte) error {
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}
	return &UploadError{StatusCode: statusCode, Message: extractMessage(statusCode, body)}
}

func extractMessage(statusCode int, body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return http.StatusText(statusCode)
}
