package email

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

// GomailProvider implements Provider over SMTP via gomail
type GomailProvider struct {
	config Config
	dialer *gomail.Dialer
}

// NewGomailProvider creates the SMTP provider
func NewGomailProvider(config Config) (*GomailProvider, error) {
	if config.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if config.Port <= 0 || config.Port > 65535 {
		return nil, fmt.Errorf("invalid SMTP port: %d", config.Port)
	}

	return &GomailProvider{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
	}, nil
}

// Send delivers the message. The SMTP round-trip is bounded by the
// configured timeout so a stalled transport cannot hang a request forever.
func (p *GomailProvider) Send(email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.config.FromEmail, p.config.FromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	m.SetBody("text/plain", email.Body)
	if email.HTML != "" {
		m.AddAlternative("text/html", email.HTML)
	}

	timeout := p.config.SendTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	// gomail has no context-aware API, so the send runs in its own
	// goroutine and we give up after the deadline. A late completion is
	// harmless, the result channel is buffered.
	done := make(chan error, 1)
	go func() {
		done <- p.dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send failed: %w", err)
		}
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("smtp send timed out after %s", timeout)
	}
}

// SendPasswordReset delivers the plaintext reset code
func (p *GomailProvider) SendPasswordReset(to, code, resetURL string) error {
	return p.Send(BuildPasswordResetEmail(to, code, resetURL))
}

// Close is a no-op, gomail dials per message
func (p *GomailProvider) Close() error {
	return nil
}
