package email

import (
	"context"
	"fmt"

	"solar-quote-backend/config"
	"solar-quote-backend/internal/domain"
	"solar-quote-backend/pkg/logger"
)

const (
	tagQuoteRequest      = "quote-request"
	tagQuoteConfirmation = "quote-confirmation"
)

// Service sends the quote emails through a Sender. Every method reports its
// outcome as a domain.EmailResult and logs exactly one record.
type Service struct {
	sender        Sender
	renderer      *Renderer
	fromEmail     string
	businessEmail string
	replyTo       string
	shortName     string
}

// NewService wires a Sender and Renderer to the configured addresses.
func NewService(cfg *config.Config, sender Sender, renderer *Renderer) *Service {
	return &Service{
		sender:        sender,
		renderer:      renderer,
		fromEmail:     cfg.FromEmail,
		businessEmail: cfg.BusinessEmail,
		replyTo:       cfg.ReplyTo(),
		shortName:     cfg.BusinessShortName,
	}
}

// NewRendererFromConfig builds the Renderer for the configured business.
func NewRendererFromConfig(cfg *config.Config) *Renderer {
	return NewRenderer(RendererOptions{
		Brand: Brand{
			Name:      cfg.BusinessName,
			ShortName: cfg.BusinessShortName,
			Email:     cfg.BusinessEmail,
			Phone:     cfg.BusinessPhone,
			Address:   cfg.BusinessAddress,
		},
		Location:    cfg.Location(),
		PhoneRegion: cfg.PhoneRegion,
	})
}

// Provider names the underlying Sender.
func (s *Service) Provider() string {
	return s.sender.Name()
}

// Verify checks provider access.
func (s *Service) Verify(ctx context.Context) error {
	return s.sender.Verify(ctx)
}

// SendQuoteRequest sends the lead notification to the business inbox with
// Reply-To set to the customer.
func (s *Service) SendQuoteRequest(ctx context.Context, quote domain.QuoteRequest) domain.EmailResult {
	attrs := []any{
		"service", "email",
		"action", "send_quote_request",
		"provider", s.sender.Name(),
		"customerEmail", quote.Email,
		"customerName", quote.FullName,
		"suburb", quote.Suburb,
	}

	html, err := s.renderer.RenderBusinessNotification(quote)
	if err != nil {
		return s.failed(ctx, "Quote request email failed", err, attrs)
	}

	id, err := s.sender.Send(ctx, Message{
		From:     s.fromEmail,
		To:       []string{s.businessEmail},
		ReplyTo:  quote.Email,
		Subject:  fmt.Sprintf("New Quote Request from %s - %s", quote.FullName, quote.Suburb),
		HTMLBody: html,
		Tag:      tagQuoteRequest,
	})
	if err != nil {
		return s.failed(ctx, "Quote request email failed", err, attrs)
	}

	logger.Log.InfoContext(ctx, "Quote request email sent successfully",
		append(attrs, "status", "success", "messageId", id, "interests", quote.Interests)...)
	return domain.EmailSent(id)
}

// SendConfirmationEmail sends the courtesy acknowledgement to the customer.
func (s *Service) SendConfirmationEmail(ctx context.Context, customerEmail, customerName string) domain.EmailResult {
	attrs := []any{
		"service", "email",
		"action", "send_confirmation_email",
		"provider", s.sender.Name(),
		"customerEmail", customerEmail,
		"customerName", customerName,
	}

	html, err := s.renderer.RenderCustomerConfirmation(customerName)
	if err != nil {
		return s.failed(ctx, "Confirmation email failed", err, attrs)
	}

	id, err := s.sender.Send(ctx, Message{
		From:     s.fromEmail,
		To:       []string{customerEmail},
		ReplyTo:  s.replyTo,
		Subject:  fmt.Sprintf("Your Quote Request Has Been Received - %s", s.shortName),
		HTMLBody: html,
		Tag:      tagQuoteConfirmation,
	})
	if err != nil {
		return s.failed(ctx, "Confirmation email failed", err, attrs)
	}

	logger.Log.InfoContext(ctx, "Confirmation email sent successfully",
		append(attrs, "status", "success", "messageId", id)...)
	return domain.EmailSent(id)
}

// SendEmail is the plain-text send kept for callers outside the quote flow.
func (s *Service) SendEmail(ctx context.Context, to []string, subject, text string) domain.EmailResult {
	attrs := []any{
		"service", "email",
		"action", "send_legacy_email",
		"provider", s.sender.Name(),
		"recipients", to,
		"subject", subject,
	}

	if len(to) == 0 {
		return s.failed(ctx, "Legacy email sending failed", ErrNoRecipients, attrs)
	}
	if text == "" {
		return s.failed(ctx, "Legacy email sending failed", ErrEmptyBody, attrs)
	}

	id, err := s.sender.Send(ctx, Message{
		From:     s.fromEmail,
		To:       to,
		Subject:  subject,
		TextBody: text,
	})
	if err != nil {
		return s.failed(ctx, "Legacy email sending failed", err, attrs)
	}

	logger.Log.InfoContext(ctx, "Legacy email sent successfully",
		append(attrs, "status", "success", "messageId", id)...)
	return domain.EmailSent(id)
}

func (s *Service) failed(ctx context.Context, msg string, err error, attrs []any) domain.EmailResult {
	logger.Log.ErrorContext(ctx, msg, append(attrs, "status", "failed", "error", err.Error())...)
	return domain.EmailFailed(err)
}
