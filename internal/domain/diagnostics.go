package domain

import "context"

// EmailConfigSummary is the non-secret view of the email configuration
// returned by the operator diagnostics.
type EmailConfigSummary struct {
	Provider      string `json:"provider"`
	Host          string `json:"host,omitempty"`
	Port          int    `json:"port,omitempty"`
	Secure        bool   `json:"secure"`
	User          string `json:"user,omitempty"`
	BusinessEmail string `json:"businessEmail"`
	FromEmail     string `json:"fromEmail"`
}

// TestEmailRequest is the body of POST /email/test
type TestEmailRequest struct {
	TestEmail string `json:"testEmail" binding:"required,loose_email"`
}

// DiagnosticsUsecase backs the operator setup checks.
type DiagnosticsUsecase interface {
	// CheckConfiguration validates configuration without touching the provider.
	CheckConfiguration(ctx context.Context) (*EmailConfigSummary, error)
	// CheckConnection validates configuration and verifies provider access.
	CheckConnection(ctx context.Context) (*EmailConfigSummary, error)
	// SendTestEmail sends a literal plain-text test message.
	SendTestEmail(ctx context.Context, to string) error
}

// TestMailer is the part of the email service the diagnostics exercise.
type TestMailer interface {
	Provider() string
	Verify(ctx context.Context) error
	SendEmail(ctx context.Context, to []string, subject, text string) EmailResult
}
