package usecase_test

import (
	"context"
	"errors"
	"testing"

	"solar-quote-backend/config"
	"solar-quote-backend/internal/domain"
	"solar-quote-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Provider() string {
	return "smtp"
}

func (m *MockMailer) Verify(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockMailer) SendEmail(ctx context.Context, to []string, subject, text string) domain.EmailResult {
	return m.Called(ctx, to, subject, text).Get(0).(domain.EmailResult)
}

func smtpConfig() *config.Config {
	return &config.Config{
		LogLevel:               "info",
		LogFormat:              "json",
		EmailProvider:          config.ProviderSMTP,
		SMTPHost:               "smtp.example.com",
		SMTPPort:               587,
		SMTPUser:               "mailer",
		SMTPPass:               "secret",
		BusinessEmail:          "leads@theenergyplanet.com",
		FromEmail:              "noreply@theenergyplanet.com",
		BusinessShortName:      "The Energy Planet",
		BusinessTimezone:       "Australia/Melbourne",
		PhoneRegion:            "AU",
		QuoteRateLimit:         5,
		QuoteRateWindowSeconds: 60,
	}
}

func TestCheckConfiguration(t *testing.T) {
	uc := usecase.NewDiagnosticsUsecase(smtpConfig(), new(MockMailer))

	summary, err := uc.CheckConfiguration(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &domain.EmailConfigSummary{
		Provider:      "smtp",
		Host:          "smtp.example.com",
		Port:          587,
		User:          "mailer",
		BusinessEmail: "leads@theenergyplanet.com",
		FromEmail:     "noreply@theenergyplanet.com",
	}, summary)

	cfg := smtpConfig()
	cfg.SMTPHost = ""
	cfg.BusinessEmail = ""
	_, err = usecase.NewDiagnosticsUsecase(cfg, new(MockMailer)).CheckConfiguration(context.Background())

	var cfgErr *config.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.ElementsMatch(t, []string{"SMTP_HOST", "BUSINESS_EMAIL"}, cfgErr.Missing)
}

func TestCheckConnection(t *testing.T) {
	t.Run("provider reachable", func(t *testing.T) {
		mailer := new(MockMailer)
		mailer.On("Verify", mock.Anything).Return(nil)

		summary, err := usecase.NewDiagnosticsUsecase(smtpConfig(), mailer).CheckConnection(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "smtp", summary.Provider)
	})

	t.Run("provider rejects credentials", func(t *testing.T) {
		mailer := new(MockMailer)
		mailer.On("Verify", mock.Anything).Return(errors.New("535 authentication failed"))

		_, err := usecase.NewDiagnosticsUsecase(smtpConfig(), mailer).CheckConnection(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "535 authentication failed")
	})
}

func TestSendTestEmail(t *testing.T) {
	t.Run("sends plain text test mail", func(t *testing.T) {
		mailer := new(MockMailer)
		mailer.On("SendEmail", mock.Anything, []string{"ops@example.com"}, "Test Email - The Energy Planet",
			mock.MatchedBy(func(text string) bool {
				return assert.Contains(t, text, "Email Test Successful!") && assert.Contains(t, text, "Sent at: ")
			})).Return(domain.EmailSent("test-1"))

		err := usecase.NewDiagnosticsUsecase(smtpConfig(), mailer).SendTestEmail(context.Background(), "ops@example.com")
		require.NoError(t, err)
		mailer.AssertExpectations(t)
	})

	t.Run("surfaces provider error", func(t *testing.T) {
		mailer := new(MockMailer)
		mailer.On("SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(domain.EmailFailed(errors.New("550 mailbox unavailable")))

		err := usecase.NewDiagnosticsUsecase(smtpConfig(), mailer).SendTestEmail(context.Background(), "ops@example.com")
		assert.EqualError(t, err, "550 mailbox unavailable")
	})

	t.Run("invalid configuration sends nothing", func(t *testing.T) {
		cfg := smtpConfig()
		cfg.FromEmail = ""
		mailer := new(MockMailer)

		err := usecase.NewDiagnosticsUsecase(cfg, mailer).SendTestEmail(context.Background(), "ops@example.com")
		assert.Error(t, err)
		mailer.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
