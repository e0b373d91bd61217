package storage

import (
	"encoding/binary"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

var bucketAccounts = []byte("accounts")

// BoltBackend stores records in a bbolt database, msgpack-encoded, keyed
// by an 8-byte big-endian insertion sequence so iteration order is
// insertion order. Crash atomicity comes from bbolt transactions, so the
// temp-then-rename discipline of the file backend does not apply here.
type BoltBackend struct {
	db *bbolt.DB
}

func NewBoltBackend(path string) (*BoltBackend, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("%w: opening bbolt db: %s", ErrPersistence, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketAccounts)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: creating bucket: %s", ErrPersistence, err)
	}

	return &BoltBackend{db: db}, nil
}

func (b *BoltBackend) Load() ([]Record, error) {
	var records []Record
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAccounts)
		return bucket.ForEach(func(k, v []byte) error {
			var rec Record
			if err := rec.UnmarshalBinary(v); err != nil {
				return fmt.Errorf("%w: record %x: %s", ErrCorrupt, k, err)
			}
			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (b *BoltBackend) Save(records []Record) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketAccounts); err != nil {
			return err
		}
		bucket, err := tx.CreateBucket(bucketAccounts)
		if err != nil {
			return err
		}
		for i := range records {
			data, err := records[i].MarshalBinary()
			if err != nil {
				return err
			}
			if err := bucket.Put(seqKey(i), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: writing bbolt db: %s", ErrPersistence, err)
	}
	return nil
}

func (b *BoltBackend) Close() error {
	return b.db.Close()
}

func seqKey(i int) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(i))
	return key
}
