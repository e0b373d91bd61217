package commands

import (
	"fmt"
	"io"

	"odnorazka/internal/accounts"
)

// Delete removes the named account from the store.
func Delete(store *accounts.Store, name string, out io.Writer) error {
	if err := store.Delete(name); err != nil {
		return err
	}
	fmt.Fprintf(out, "Deleted %s\n", name)
	return nil
}
