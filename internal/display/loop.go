// Package display drives the live code view: it recomputes every
// account's current code once per second and hands the resulting frame
// to a renderer.
package display

import (
	"context"
	"time"

	"odnorazka/internal/models"
	"odnorazka/internal/otp"
)

// Row is one account's line in a frame. A per-account computation
// failure lands in Err and leaves the other rows untouched.
type Row struct {
	Name      string
	Code      string
	Remaining int
	Period    int
	Err       error
}

// Frame is one complete redraw of the account table.
type Frame struct {
	At   time.Time
	Rows []Row
}

// Renderer receives frames. Close is called exactly once when the loop
// stops and must restore whatever state Render set up.
type Renderer interface {
	Render(Frame) error
	Close() error
}

// Compute builds the frame for the given instant. Every account is
// recomputed every time: a code is a single HMAC, so recomputation is
// cheaper than any cache and always correct at period boundaries.
func Compute(accts []models.Account, now time.Time) Frame {
	ts := uint64(now.Unix())
	frame := Frame{At: now, Rows: make([]Row, 0, len(accts))}
	for _, acct := range accts {
		row := Row{Name: acct.Name, Period: acct.Params.Period}
		code, err := otp.Code(acct.Secret, ts, acct.Params)
		if err != nil {
			row.Err = err
		} else {
			row.Code = code
			row.Remaining = otp.Remaining(ts, acct.Params.Period)
		}
		frame.Rows = append(frame.Rows, row)
	}
	return frame
}

// Loop emits one frame immediately and then one per wall-clock second
// until the context is cancelled. The account snapshot is read-only for
// the lifetime of the loop.
type Loop struct {
	accounts []models.Account
	renderer Renderer
	now      func() time.Time
}

func NewLoop(accts []models.Account, r Renderer) *Loop {
	return &Loop{accounts: accts, renderer: r, now: time.Now}
}

// Run blocks until ctx is cancelled or the renderer fails. Each wait
// targets the next whole second, so redraws stay aligned with period
// boundaries instead of drifting. Cancellation is a normal stop and
// returns nil.
func (l *Loop) Run(ctx context.Context) (err error) {
	defer func() {
		if cerr := l.renderer.Close(); err == nil {
			err = cerr
		}
	}()

	if err := l.renderer.Render(Compute(l.accounts, l.now())); err != nil {
		return err
	}

	for {
		now := l.now()
		next := now.Truncate(time.Second).Add(time.Second)
		timer := time.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
			if err := l.renderer.Render(Compute(l.accounts, l.now())); err != nil {
				return err
			}
		}
	}
}
