package presentation

import (
	"context"
	"fmt"
	"io"
)

// ConsoleSender writes the report to a local writer instead of mailing it,
// backing the dry-run mode.
type ConsoleSender struct {
	out io.Writer
}

// NewConsoleSender returns a sender that writes reports to out.
func NewConsoleSender(out io.Writer) *ConsoleSender {
	return &ConsoleSender{out: out}
}

// SendReport writes body to the configured writer.
func (s *ConsoleSender) SendReport(ctx context.Context, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := fmt.Fprint(s.out, body); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
