package webhook

import (
	"encoding/base64"
	"strings"
)

// tokenMarker prefixes every selection token so it can never be confused
// with free text typed by a user. The marker doubles as a version tag:
// future token shapes get a different prefix.
const tokenMarker = "entry_pass_email:"

// EncodeEmailSelection packs an email address into the opaque callback id
// attached to a disambiguation option. The chosen email travels inside the
// id the platform echoes back, so no per-sender prompt state is kept
// anywhere on the server.
func EncodeEmailSelection(email string) string {
	return tokenMarker + base64.RawURLEncoding.EncodeToString([]byte(email))
}

// DecodeEmailSelection reverses EncodeEmailSelection. Anything that does not
// carry the marker, has an empty payload, or fails to decode is simply not a
// token: the second return is false and the caller falls through to
// plain-text email extraction.
func DecodeEmailSelection(value string) (string, bool) {
	if !strings.HasPrefix(value, tokenMarker) {
		return "", false
	}

	encoded := strings.TrimPrefix(value, tokenMarker)
	if encoded == "" {
		return "", false
	}

	decoded, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", false
	}
	return string(decoded), true
}
