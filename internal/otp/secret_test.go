package otp

import (
	"bytes"
	"errors"
	"testing"
)

func TestDecodeSecret(t *testing.T) {
	want := []byte("Hello!\xde\xad\xbe\xef")

	tests := []struct {
		name  string
		input string
	}{
		{"canonical", "JBSWY3DPEHPK3PXP"},
		{"lower case", "jbswy3dpehpk3pxp"},
		{"mixed case", "JbSwY3dPeHpK3pXp"},
		{"spaces", "JBSW Y3DP EHPK 3PXP"},
		{"hyphens", "JBSW-Y3DP-EHPK-3PXP"},
		{"tabs and newline", "JBSW\tY3DP\nEHPK 3PXP"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeSecret(tc.input)
			if err != nil {
				t.Fatalf("DecodeSecret(%q) failed: %v", tc.input, err)
			}
			if !bytes.Equal(got, want) {
				t.Errorf("DecodeSecret(%q) = %x, want %x", tc.input, got, want)
			}
		})
	}
}

func TestDecodeSecretPadding(t *testing.T) {
	// "12345678901234567890" is 20 bytes = 32 base32 chars, no padding
	// needed; a 6-byte secret needs '=' padding which must be optional.
	padded, err := DecodeSecret("JBSWY3DPEE======")
	if err != nil {
		t.Fatal(err)
	}
	bare, err := DecodeSecret("JBSWY3DPEE")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(padded, bare) {
		t.Errorf("padded and unpadded input decoded differently: %x vs %x", padded, bare)
	}
	if string(padded) != "Hello!" {
		t.Errorf("got %q, want %q", padded, "Hello!")
	}
}

func TestDecodeSecretErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"only separators", " - -\t"},
		{"only padding", "===="},
		{"digit outside alphabet", "JBSW1Y3DP"},
		{"symbol", "JBSW!Y3DP"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeSecret(tc.input)
			if !errors.Is(err, ErrInvalidSecret) {
				t.Errorf("DecodeSecret(%q): expected ErrInvalidSecret, got %v", tc.input, err)
			}
		})
	}
}

func TestSecretRoundTrip(t *testing.T) {
	// Lengths around the 5-byte base32 group size exercise padding.
	for size := 1; size <= 21; size++ {
		secret := make([]byte, size)
		for i := range secret {
			secret[i] = byte(i*37 + size)
		}
		decoded, err := DecodeSecret(EncodeSecret(secret))
		if err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
		if !bytes.Equal(decoded, secret) {
			t.Errorf("size %d: round trip mismatch: %x != %x", size, decoded, secret)
		}
	}
}
