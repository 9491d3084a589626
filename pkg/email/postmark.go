package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/mrz1836/postmark"
)

// PostmarkSender delivers mail through the Postmark transactional API.
type PostmarkSender struct {
	client *postmark.Client
}

// NewPostmarkSender creates a sender authenticated with a server token.
func NewPostmarkSender(serverToken string) *PostmarkSender {
	return NewPostmarkSenderWithClient(postmark.NewClient(serverToken, ""))
}

// NewPostmarkSenderWithClient wraps an existing client (custom HTTP client, tests).
func NewPostmarkSenderWithClient(client *postmark.Client) *PostmarkSender {
	return &PostmarkSender{client: client}
}

func (s *PostmarkSender) Name() string {
	return "postmark"
}

func (s *PostmarkSender) Send(ctx context.Context, msg Message) (string, error) {
	resp, err := s.client.SendEmail(ctx, postmark.Email{
		From:     msg.From,
		To:       strings.Join(msg.To, ","),
		ReplyTo:  msg.ReplyTo,
		Subject:  msg.Subject,
		Tag:      msg.Tag,
		HTMLBody: msg.HTMLBody,
		TextBody: msg.TextBody,
	})
	if err != nil {
		return "", err
	}
	if resp.ErrorCode > 0 {
		return "", fmt.Errorf("postmark error %d: %s", resp.ErrorCode, resp.Message)
	}
	return resp.MessageID, nil
}

// Verify fetches the server the token belongs to.
func (s *PostmarkSender) Verify(ctx context.Context) error {
	if _, err := s.client.GetCurrentServer(ctx); err != nil {
		return fmt.Errorf("postmark verify: %w", err)
	}
	return nil
}
