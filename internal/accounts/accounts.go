// Package accounts implements the account store: an ordered, uniquely
// named collection of TOTP accounts backed by a storage.Backend. The
// store is the sole owner of all secrets.
package accounts

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"odnorazka/internal/models"
	"odnorazka/internal/otp"
	"odnorazka/internal/storage"
)

// WeakSecretBytes is the RFC 4226 minimum recommended secret length.
const WeakSecretBytes = 10

var (
	ErrDuplicateAccount = errors.New("account already exists")
	ErrAccountNotFound  = errors.New("account not found")
)

// Store holds the ordered account list in memory and persists the full
// set through its backend after every mutation.
type Store struct {
	backend  storage.Backend
	accounts []models.Account
}

// Open loads and validates every persisted record. A record that fails
// validation (undecodable secret, unknown algorithm tag, non-positive
// digits or period) surfaces as an error naming the account: silently
// dropping a saved account would be worse than failing loudly.
func Open(backend storage.Backend) (*Store, error) {
	records, err := backend.Load()
	if err != nil {
		return nil, err
	}

	s := &Store{backend: backend}
	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		acct, err := fromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("account %q: %w", rec.Name, err)
		}
		if _, ok := seen[acct.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate account name %q", storage.ErrCorrupt, acct.Name)
		}
		seen[acct.Name] = struct{}{}
		if len(acct.Secret) < WeakSecretBytes {
			slog.Warn("account has a weak secret", "account_id", acct.ID, "bytes", len(acct.Secret))
		}
		s.accounts = append(s.accounts, acct)
	}
	return s, nil
}

// Add decodes secretText, appends a new account and persists the store.
// A failed add leaves the in-memory store and the backend unchanged.
func (s *Store) Add(name, secretText string, p otp.Params) (models.Account, error) {
	if name == "" {
		return models.Account{}, fmt.Errorf("%w: account name must not be empty", otp.ErrInvalidParams)
	}
	if p.Digits < 6 || p.Digits > 8 {
		return models.Account{}, fmt.Errorf("%w: digits must be between 6 and 8, got %d", otp.ErrInvalidParams, p.Digits)
	}
	if p.Period < 1 {
		// Sub-second periods are unsupported.
		return models.Account{}, fmt.Errorf("%w: period must be at least 1 second, got %d", otp.ErrInvalidParams, p.Period)
	}
	if s.index(name) >= 0 {
		return models.Account{}, fmt.Errorf("%w: %q", ErrDuplicateAccount, name)
	}

	secret, err := otp.DecodeSecret(secretText)
	if err != nil {
		return models.Account{}, err
	}

	acct := models.Account{
		ID:     uuid.NewString(),
		Name:   name,
		Secret: secret,
		Params: p,
	}
	s.accounts = append(s.accounts, acct)
	if err := s.persist(); err != nil {
		s.accounts = s.accounts[:len(s.accounts)-1]
		return models.Account{}, err
	}
	return acct, nil
}

// Delete removes the named account and persists the store.
func (s *Store) Delete(name string) error {
	i := s.index(name)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrAccountNotFound, name)
	}

	removed := s.accounts[i]
	s.accounts = append(s.accounts[:i:i], s.accounts[i+1:]...)
	if err := s.persist(); err != nil {
		s.accounts = append(s.accounts[:i:i], append([]models.Account{removed}, s.accounts[i:]...)...)
		return err
	}
	return nil
}

// List returns the accounts in insertion order. Callers computing codes
// borrow the secrets; renderers must only ever see the digit strings.
func (s *Store) List() []models.Account {
	return append([]models.Account(nil), s.accounts...)
}

func (s *Store) Close() error {
	return s.backend.Close()
}

func (s *Store) index(name string) int {
	for i := range s.accounts {
		if s.accounts[i].Name == name {
			return i
		}
	}
	return -1
}

func (s *Store) persist() error {
	records := make([]storage.Record, 0, len(s.accounts))
	for _, acct := range s.accounts {
		records = append(records, storage.Record{
			ID:        acct.ID,
			Name:      acct.Name,
			Secret:    otp.EncodeSecret(acct.Secret),
			Digits:    acct.Params.Digits,
			Period:    acct.Params.Period,
			Algorithm: string(acct.Params.Algorithm),
		})
	}
	return s.backend.Save(records)
}

func fromRecord(rec storage.Record) (models.Account, error) {
	algorithm, err := otp.ParseAlgorithm(rec.Algorithm)
	if err != nil {
		return models.Account{}, err
	}
	secret, err := otp.DecodeSecret(rec.Secret)
	if err != nil {
		return models.Account{}, err
	}
	// Hand-edited files get the benefit of the doubt here: any positive
	// digits/period loads, only Add enforces the 6..8 range.
	if rec.Digits <= 0 || rec.Period <= 0 {
		return models.Account{}, fmt.Errorf("%w: digits=%d period=%d", otp.ErrInvalidParams, rec.Digits, rec.Period)
	}

	id := rec.ID
	if id == "" {
		id = uuid.NewString()
	}
	return models.Account{
		ID:     id,
		Name:   rec.Name,
		Secret: secret,
		Params: otp.Params{
			Digits:    rec.Digits,
			Period:    rec.Period,
			Algorithm: algorithm,
		},
	}, nil
}
