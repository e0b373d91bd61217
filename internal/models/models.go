// Package models holds the domain types shared across the application.
package models

import "odnorazka/internal/otp"

// Account is a single TOTP account. The account store owns the secret;
// other components borrow it for the duration of one code computation
// and it is only ever surfaced to a human as base32 text, once, right
// after creation.
type Account struct {
	// ID is a stable identity used in logs so the user-chosen name
	// never has to appear there.
	ID     string
	Name   string
	Secret []byte
	Params otp.Params
}
