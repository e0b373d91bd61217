package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileBackend stores records as a JSON array in a single file. Saves are
// atomic with respect to a process crash: the new content is written to a
// temporary file in the same directory, synced, then renamed over the
// target, so the store is never left half-written.
type FileBackend struct {
	path string
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (b *FileBackend) Load() ([]Record, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		// Missing file is an empty store, not an error.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %s", ErrPersistence, b.path, err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrCorrupt, b.path, err)
	}
	return records, nil
}

func (b *FileBackend) Save(records []Record) error {
	if records == nil {
		records = []Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding records: %s", ErrPersistence, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("%w: creating %s: %s", ErrPersistence, dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".accounts-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %s", ErrPersistence, err)
	}
	defer func() {
		// No-op after a successful rename.
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: writing temp file: %s", ErrPersistence, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: syncing temp file: %s", ErrPersistence, err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: setting temp file mode: %s", ErrPersistence, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: closing temp file: %s", ErrPersistence, err)
	}

	if err := os.Rename(tmp.Name(), b.path); err != nil {
		return fmt.Errorf("%w: replacing %s: %s", ErrPersistence, b.path, err)
	}
	return nil
}

func (b *FileBackend) Close() error {
	return nil
}
