package otp

import (
	"encoding/base32"
	"fmt"
	"strings"
	"unicode"
)

// DecodeSecret parses user-supplied base32 text into raw secret bytes.
// Input is case-insensitive, `=` padding is optional, and whitespace or
// hyphen separators (as printed by many providers) are stripped first.
func DecodeSecret(text string) ([]byte, error) {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' {
			return -1
		}
		return unicode.ToUpper(r)
	}, text)
	s = strings.TrimRight(s, "=")

	if s == "" {
		return nil, fmt.Errorf("%w: empty secret", ErrInvalidSecret)
	}

	secret, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSecret, err)
	}
	return secret, nil
}

// EncodeSecret renders a secret in canonical form: upper-case base32
// with standard padding. Shown to the user once, at creation time.
func EncodeSecret(secret []byte) string {
	return base32.StdEncoding.EncodeToString(secret)
}
