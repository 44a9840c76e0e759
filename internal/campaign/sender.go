package campaign

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	"prospector-engine/internal/domain"
)

// Fallback for clients that refuse the HTML alternative.
const plainTextNotice = "This is an HTML email. If you see this, your client is showing the plain-text part."

const smtpTimeout = 20 * time.Second

// Message is one outgoing email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers a single message. Implementations must close their
// connection whether or not the send succeeded.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SendError wraps an SMTP transport or auth failure for one recipient.
type SendError struct {
	To  string
	Err error
}

func (e *SendError) Error() string { return fmt.Sprintf("send to %s: %v", e.To, e.Err) }
func (e *SendError) Unwrap() error { return e.Err }

// SMTPSender sends over plain SMTP with STARTTLS (typically port 587) or
// implicit TLS (typically port 465), authenticating only when credentials
// are configured. The From identity is fixed for this deployment.
type SMTPSender struct {
	Host        string
	Port        int
	Username    string
	Password    string
	UseStartTLS bool
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m := mail.NewMsg()
	if err := m.FromFormat(domain.FromName, domain.FromEmail); err != nil {
		return &SendError{To: msg.To, Err: err}
	}
	if err := m.To(msg.To); err != nil {
		return &SendError{To: msg.To, Err: err}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, plainTextNotice)
	m.AddAlternativeString(mail.TypeTextHTML, msg.HTML)

	opts := []mail.Option{
		mail.WithPort(s.Port),
		mail.WithTimeout(smtpTimeout),
	}
	if s.UseStartTLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	} else {
		opts = append(opts, mail.WithSSL())
	}
	if s.Username != "" || s.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.Username),
			mail.WithPassword(s.Password),
		)
	}

	c, err := mail.NewClient(s.Host, opts...)
	if err != nil {
		return &SendError{To: msg.To, Err: err}
	}

	// DialAndSend closes the connection on both success and failure.
	if err := c.DialAndSendWithContext(ctx, m); err != nil {
		return &SendError{To: msg.To, Err: err}
	}
	return nil
}
