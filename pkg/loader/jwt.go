package loader

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// IsJWT reports whether input looks like a JWT: exactly three dot-separated
// parts, the first two of which are base64url-encoded JSON objects.
func IsJWT(input string) bool {
	input = strings.TrimPrefix(input, "Bearer ")
	input = strings.TrimSpace(input)

	parts := strings.Split(input, ".")
	if len(parts) != 3 {
		return false
	}
	for _, part := range parts {
		if len(part) == 0 {
			return false
		}
	}
	for i := 0; i < 2; i++ {
		decoded, err := base64.RawURLEncoding.DecodeString(parts[i])
		if err != nil {
			return false
		}
		var obj map[string]any
		if err := json.Unmarshal(decoded, &obj); err != nil {
			return false
		}
	}
	_, err := base64.RawURLEncoding.DecodeString(parts[2])
	return err == nil
}

// DecodeJWT decodes a token into a map with header, payload, and signature
// keys, so the explorer can drill into the claims like any other mapping.
// The signature stays as its base64url string; the bytes are not JSON.
func DecodeJWT(input string) (map[string]any, error) {
	input = strings.TrimPrefix(input, "Bearer ")
	input = strings.TrimSpace(input)

	parts := strings.Split(input, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid JWT: expected 3 parts, got %d", len(parts))
	}

	headerBytes, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid JWT header: %w", err)
	}
	var header map[string]any
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, fmt.Errorf("invalid JWT header JSON: %w", err)
	}

	payloadBytes, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid JWT payload: %w", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(payloadBytes, &payload); err != nil {
		return nil, fmt.Errorf("invalid JWT payload JSON: %w", err)
	}

	return map[string]any{
		"header":    header,
		"payload":   payload,
		"signature": parts[2],
	}, nil
}
