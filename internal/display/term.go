package display

import (
	"fmt"
	"io"
	"strings"
)

const barWidth = 10

// TermRenderer redraws the account table in place using ANSI cursor
// movement. It expects the terminal to be in raw mode, so every line
// ends with \r\n.
type TermRenderer struct {
	w     io.Writer
	lines int
}

func NewTermRenderer(w io.Writer) *TermRenderer {
	return &TermRenderer{w: w}
}

func (r *TermRenderer) Render(frame Frame) error {
	var b strings.Builder
	if r.lines == 0 {
		b.WriteString("\x1b[?25l") // hide cursor for the session
	} else {
		fmt.Fprintf(&b, "\x1b[%dA", r.lines)
	}

	nameWidth := 0
	for _, row := range frame.Rows {
		if len(row.Name) > nameWidth {
			nameWidth = len(row.Name)
		}
	}

	lines := 0
	if len(frame.Rows) == 0 {
		b.WriteString("\x1b[2K(no accounts, use `odnorazka add`)\r\n")
		lines++
	}
	for _, row := range frame.Rows {
		b.WriteString("\x1b[2K")
		if row.Err != nil {
			fmt.Fprintf(&b, "%-*s  <error: %v>\r\n", nameWidth, row.Name, row.Err)
		} else {
			fmt.Fprintf(&b, "%-*s  %s  [%s] %2ds\r\n",
				nameWidth, row.Name, row.Code, bar(row.Remaining, row.Period), row.Remaining)
		}
		lines++
	}
	b.WriteString("\x1b[2Kpress q to quit\r\n")
	lines++

	r.lines = lines
	_, err := io.WriteString(r.w, b.String())
	return err
}

// Close restores the cursor. The last frame stays on screen.
func (r *TermRenderer) Close() error {
	if r.lines == 0 {
		return nil
	}
	_, err := io.WriteString(r.w, "\x1b[?25h")
	return err
}

func bar(remaining, period int) string {
	if period <= 0 {
		period = 1
	}
	filled := remaining * barWidth / period
	if filled > barWidth {
		filled = barWidth
	}
	return strings.Repeat("=", filled) + strings.Repeat(" ", barWidth-filled)
}
