package presentation

import (
	"context"
	"errors"
	"fmt"
	"net/textproto"

	"github.com/wneessen/go-mail"
)

// FailureCategory labels a send failure for operator diagnostics. Failures
// are never retried regardless of category.
type FailureCategory string

const (
	// FailureAuth covers SMTP authentication rejections.
	FailureAuth FailureCategory = "auth"
	// FailureRelay covers every other failure reported by the mail relay.
	FailureRelay FailureCategory = "relay"
	// FailureUnknown covers failures with no recognisable SMTP cause.
	FailureUnknown FailureCategory = "unknown"
)

// ClassifySendError maps a send failure to its diagnostic category.
func ClassifySendError(err error) FailureCategory {
	var protoErr *textproto.Error
	if errors.As(err, &protoErr) {
		switch protoErr.Code {
		case 530, 534, 535:
			return FailureAuth
		}
		return FailureRelay
	}

	var sendErr *mail.SendError
	if errors.As(err, &sendErr) {
		return FailureRelay
	}

	return FailureUnknown
}

// smtpClient is the part of *mail.Client the sender uses.
type smtpClient interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// MailConfig describes the relay session and the fixed message envelope.
type MailConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	Recipients []string
	Subject    string
}

// MailSender dispatches the report as one plaintext message over an
// SSL/TLS SMTP session.
type MailSender struct {
	client     smtpClient
	from       string
	recipients []string
	subject    string
}

// NewMailSender wires an SMTP client to the report dispatch interface
// expected by the use case layer.
func NewMailSender(cfg MailConfig) (*MailSender, error) {
	if cfg.From == "" {
		return nil, fmt.Errorf("sender address cannot be empty")
	}
	if len(cfg.Recipients) == 0 {
		return nil, fmt.Errorf("recipient list cannot be empty")
	}

	client, err := mail.NewClient(
		cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("create SMTP client: %w", err)
	}

	return &MailSender{
		client:     client,
		from:       cfg.From,
		recipients: cfg.Recipients,
		subject:    cfg.Subject,
	}, nil
}

// SendReport sends body to every configured recipient in a single message.
// The session is dialed, used for the one send, and torn down again.
func (s *MailSender) SendReport(ctx context.Context, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("set sender address: %w", err)
	}
	if err := msg.To(s.recipients...); err != nil {
		return fmt.Errorf("set recipient addresses: %w", err)
	}
	msg.Subject(s.subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send report: %w", err)
	}

	return nil
}
