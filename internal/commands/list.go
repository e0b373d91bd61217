package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"odnorazka/internal/accounts"
	"odnorazka/internal/display"
)

// List runs the live refresh loop until the user presses q or the
// context is cancelled. User-initiated stop is a normal return.
func List(ctx context.Context, store *accounts.Store, out *os.File) error {
	accts := store.List()

	stdinFd := int(os.Stdin.Fd())
	if term.IsTerminal(stdinFd) {
		oldState, err := term.MakeRaw(stdinFd)
		if err != nil {
			return fmt.Errorf("entering raw mode: %w", err)
		}
		defer func() {
			_ = term.Restore(stdinFd, oldState)
		}()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return display.NewLoop(accts, display.NewTermRenderer(out)).Run(gctx)
	})
	g.Go(func() error {
		watchKeys(gctx, os.Stdin, cancel)
		return nil
	})
	return g.Wait()
}

// watchKeys polls stdin for a stop key. Short read deadlines keep the
// read interruptible so cancellation from elsewhere is observed promptly
// instead of after the next keystroke.
func watchKeys(ctx context.Context, in *os.File, cancel context.CancelFunc) {
	defer func() {
		_ = in.SetReadDeadline(time.Time{})
	}()

	buf := make([]byte, 1)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		_ = in.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
		n, err := in.Read(buf)
		if n > 0 {
			switch buf[0] {
			case 'q', 'Q', 0x03: // Ctrl-C arrives as a byte in raw mode
				cancel()
				return
			}
		}
		if err != nil && !errors.Is(err, os.ErrDeadlineExceeded) {
			// EOF on piped stdin: keep running until the context stops us.
			<-ctx.Done()
			return
		}
	}
}

// ListOnce prints a single frame and returns, for scripting.
func ListOnce(store *accounts.Store, out io.Writer, now time.Time) error {
	frame := display.Compute(store.List(), now)
	if len(frame.Rows) == 0 {
		fmt.Fprintln(out, "(no accounts)")
		return nil
	}
	for _, row := range frame.Rows {
		if row.Err != nil {
			fmt.Fprintf(out, "%s\t<error: %v>\n", row.Name, row.Err)
			continue
		}
		fmt.Fprintf(out, "%s\t%s\t%ds left\n", row.Name, row.Code, row.Remaining)
	}
	return nil
}
