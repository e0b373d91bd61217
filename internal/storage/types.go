// Package storage persists the ordered account record set. Two real
// backends exist: a JSON text file (default, human-inspectable) and a
// bbolt database. Both carry the exact same record fields, so switching
// backends is a matter of pointing the loader at the other one.
package storage

import (
	"errors"

	"github.com/vmihailenco/msgpack/v5"
)

var (
	// ErrCorrupt means the backing store exists but cannot be parsed.
	ErrCorrupt = errors.New("account store is corrupt")
	// ErrPersistence wraps I/O failures reading or writing the store.
	ErrPersistence = errors.New("account store I/O failed")
)

// Record is the persisted form of an account. The secret stays base32
// text, never raw bytes, so the store file remains portable and
// inspectable. Every field must survive a save/load round trip.
type Record struct {
	ID        string `json:"id" msgpack:"id"`
	Name      string `json:"name" msgpack:"name"`
	Secret    string `json:"secret" msgpack:"secret"`
	Digits    int    `json:"digits" msgpack:"digits"`
	Period    int    `json:"period" msgpack:"period"`
	Algorithm string `json:"algorithm" msgpack:"algorithm"`
}

func (r *Record) MarshalBinary() (data []byte, err error) {
	type alias Record
	return msgpack.Marshal((*alias)(r))
}

func (r *Record) UnmarshalBinary(data []byte) error {
	type alias Record
	return msgpack.Unmarshal(data, (*alias)(r))
}

// Backend loads and atomically replaces the full ordered record set.
// The account store is the only writer of its backend.
type Backend interface {
	Load() ([]Record, error)
	Save([]Record) error
	Close() error
}
