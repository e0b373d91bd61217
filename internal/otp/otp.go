// Package otp implements the HOTP/TOTP core (RFC 4226, RFC 6238) and the
// base32 secret codec. Everything here is a pure function of its inputs;
// the clock is always a parameter, never read internally.
package otp

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
	"strings"
)

const (
	DefaultDigits = 6
	DefaultPeriod = 30
)

var (
	ErrInvalidSecret        = errors.New("invalid base32 secret")
	ErrUnsupportedAlgorithm = errors.New("unsupported hash algorithm")
	ErrInvalidParams        = errors.New("invalid OTP parameters")
)

// Algorithm selects the HMAC hash. The string value doubles as the
// persisted tag.
type Algorithm string

const (
	SHA1   Algorithm = "SHA1"
	SHA256 Algorithm = "SHA256"
	SHA512 Algorithm = "SHA512"
)

// ParseAlgorithm maps a stored tag to an Algorithm, case-insensitively.
func ParseAlgorithm(tag string) (Algorithm, error) {
	switch Algorithm(strings.ToUpper(strings.TrimSpace(tag))) {
	case SHA1:
		return SHA1, nil
	case SHA256:
		return SHA256, nil
	case SHA512:
		return SHA512, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, tag)
}

func (a Algorithm) hashFunc() (func() hash.Hash, error) {
	switch a {
	case SHA1:
		return sha1.New, nil
	case SHA256:
		return sha256.New, nil
	case SHA512:
		return sha512.New, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, string(a))
}

type Params struct {
	Digits    int
	Period    int
	Algorithm Algorithm
}

func DefaultParams() Params {
	return Params{
		Digits:    DefaultDigits,
		Period:    DefaultPeriod,
		Algorithm: SHA1,
	}
}

// Code computes the TOTP code for the given secret at the given unix
// timestamp. The counter is timestamp/period as an 8-byte big-endian
// integer; the digest is reduced with RFC 4226 dynamic truncation and
// rendered zero-padded to exactly p.Digits characters.
func Code(secret []byte, timestamp uint64, p Params) (string, error) {
	if p.Digits <= 0 || p.Period <= 0 {
		return "", fmt.Errorf("%w: digits=%d period=%d", ErrInvalidParams, p.Digits, p.Period)
	}
	newHash, err := p.Algorithm.hashFunc()
	if err != nil {
		return "", err
	}

	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, timestamp/uint64(p.Period))
	h := hmac.New(newHash, secret)
	h.Write(buf)
	sum := h.Sum(nil)

	off := sum[len(sum)-1] & 0xf
	trunc := (uint32(sum[off])&0x7f)<<24 |
		uint32(sum[off+1])<<16 |
		uint32(sum[off+2])<<8 |
		uint32(sum[off+3])

	code := uint64(trunc) % pow10(p.Digits)
	return fmt.Sprintf("%0*d", p.Digits, code), nil
}

// Remaining returns the seconds left before the code at timestamp rolls
// over to the next counter value.
func Remaining(timestamp uint64, period int) int {
	if period <= 0 {
		return 0
	}
	return period - int(timestamp%uint64(period))
}

func pow10(n int) uint64 {
	p := uint64(1)
	for i := 0; i < n && i < 19; i++ {
		p *= 10
	}
	return p
}
