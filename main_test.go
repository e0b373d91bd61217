package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"odnorazka/internal/storage"
)

// feedStdin pipes text into os.Stdin for the duration of the test, so
// the add command's secret prompt reads it like piped shell input.
func feedStdin(t *testing.T, text string) {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)

	orig := os.Stdin
	os.Stdin = r
	t.Cleanup(func() {
		os.Stdin = orig
		_ = r.Close()
	})

	_, err = w.WriteString(text)
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

func TestAddListDelete(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "accounts.json")
	t.Setenv("ODNORAZKA_STORE", storePath)
	t.Setenv("ODNORAZKA_BACKEND", "file")

	ctx := context.Background()

	feedStdin(t, "JBSWY3DPEHPK3PXP\n")
	require.NoError(t, run(ctx, []string{"add", "github"}))

	// Every account field must survive in the persisted record.
	data, err := os.ReadFile(storePath)
	require.NoError(t, err)
	var records []storage.Record
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 1)
	require.Equal(t, "github", records[0].Name)
	require.Equal(t, "JBSWY3DPEHPK3PXP", records[0].Secret)
	require.Equal(t, 6, records[0].Digits)
	require.Equal(t, 30, records[0].Period)
	require.Equal(t, "SHA1", records[0].Algorithm)
	require.NotEmpty(t, records[0].ID)

	// Duplicate add fails and leaves the store untouched.
	feedStdin(t, "JBSWY3DPEHPK3PXP\n")
	require.Error(t, run(ctx, []string{"add", "github"}))
	data, err = os.ReadFile(storePath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 1)

	require.NoError(t, run(ctx, []string{"list", "-once"}))

	require.NoError(t, run(ctx, []string{"delete", "github"}))
	require.Error(t, run(ctx, []string{"delete", "github"}))

	data, err = os.ReadFile(storePath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &records))
	require.Empty(t, records)
}

func TestAddWithFlags(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "accounts.json")
	t.Setenv("ODNORAZKA_STORE", storePath)
	t.Setenv("ODNORAZKA_BACKEND", "file")

	ctx := context.Background()

	feedStdin(t, "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ\n")
	require.NoError(t, run(ctx, []string{"add", "-digits", "8", "-period", "60", "-algo", "sha512", "aws"}))

	data, err := os.ReadFile(storePath)
	require.NoError(t, err)
	var records []storage.Record
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 1)
	require.Equal(t, 8, records[0].Digits)
	require.Equal(t, 60, records[0].Period)
	require.Equal(t, "SHA512", records[0].Algorithm)
}

func TestBoltBackendEndToEnd(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "accounts.db")
	t.Setenv("ODNORAZKA_STORE", storePath)
	t.Setenv("ODNORAZKA_BACKEND", "bbolt")

	ctx := context.Background()

	feedStdin(t, "JBSWY3DPEHPK3PXP\n")
	require.NoError(t, run(ctx, []string{"add", "github"}))
	require.NoError(t, run(ctx, []string{"list", "-once"}))
	require.NoError(t, run(ctx, []string{"delete", "github"}))
}

func TestUnknownCommand(t *testing.T) {
	t.Setenv("ODNORAZKA_STORE", filepath.Join(t.TempDir(), "accounts.json"))
	t.Setenv("ODNORAZKA_BACKEND", "file")

	require.Error(t, run(context.Background(), []string{"frobnicate"}))
	require.Error(t, run(context.Background(), nil))
}

func TestCorruptStoreSurfaces(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "accounts.json")
	t.Setenv("ODNORAZKA_STORE", storePath)
	t.Setenv("ODNORAZKA_BACKEND", "file")

	require.NoError(t, os.WriteFile(storePath, []byte("{broken"), 0o600))

	err := run(context.Background(), []string{"list", "-once"})
	require.ErrorIs(t, err, storage.ErrCorrupt)
}
