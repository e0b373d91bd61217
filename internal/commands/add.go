// Package commands implements the CLI verbs. Each verb is a function
// over the account store; main wires flags, config and signals.
package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"odnorazka/internal/accounts"
	"odnorazka/internal/otp"
)

// readSecret is a test seam. On a terminal the secret is read without
// echo; otherwise (piped input) a single line is consumed.
var readSecret = func(out io.Writer) (string, error) {
	fmt.Fprint(out, "Secret (base32): ")
	if term.IsTerminal(int(os.Stdin.Fd())) {
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	fmt.Fprintln(out)
	return strings.TrimSpace(line), nil
}

// Add prompts for the shared secret, creates the account and prints the
// canonical base32 form once so the user can back it up.
func Add(store *accounts.Store, name string, p otp.Params, out io.Writer) error {
	secretText, err := readSecret(out)
	if err != nil {
		return fmt.Errorf("reading secret: %w", err)
	}

	acct, err := store.Add(name, secretText, p)
	if err != nil {
		return err
	}

	if len(acct.Secret) < accounts.WeakSecretBytes {
		fmt.Fprintf(out, "warning: secret is only %d bytes; RFC 4226 recommends at least %d\n",
			len(acct.Secret), accounts.WeakSecretBytes)
	}
	fmt.Fprintf(out, "Added %s (%s, %d digits, %ds period)\n",
		acct.Name, acct.Params.Algorithm, acct.Params.Digits, acct.Params.Period)
	fmt.Fprintf(out, "Backup secret: %s\n", otp.EncodeSecret(acct.Secret))
	return nil
}
