package email

import (
	"context"
	"errors"
	"fmt"

	"solar-quote-backend/config"
)

var ErrUnknownProvider = errors.New("unknown email provider")

// Message is a single outbound email as handed to a provider.
type Message struct {
	From     string
	To       []string
	ReplyTo  string
	Subject  string
	HTMLBody string
	TextBody string
	Tag      string
}

// Sender delivers messages through one email provider.
type Sender interface {
	// Send delivers msg and returns the provider's message id.
	Send(ctx context.Context, msg Message) (string, error)
	// Verify checks that the provider accepts our credentials.
	Verify(ctx context.Context) error
	// Name identifies the provider in logs and diagnostics.
	Name() string
}

// NewSender builds the Sender selected by EMAIL_PROVIDER.
func NewSender(cfg *config.Config) (Sender, error) {
	switch cfg.EmailProvider {
	case config.ProviderPostmark:
		return NewPostmarkSender(cfg.EmailAPIKey), nil
	case config.ProviderSMTP:
		return NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPSecure), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.EmailProvider)
	}
}
