package email_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"solar-quote-backend/config"
	"solar-quote-backend/pkg/email"
	"solar-quote-backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg email.Message) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

func (m *MockSender) Verify(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockSender) Name() string {
	return "mock"
}

func testConfig() *config.Config {
	return &config.Config{
		BusinessEmail:     "leads@theenergyplanet.com",
		FromEmail:         "noreply@theenergyplanet.com",
		ReplyToEmail:      "info@theenergyplanet.com",
		BusinessShortName: "The Energy Planet",
	}
}

// captureLogs swaps the package logger for one writing to a buffer.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := logger.Log
	logger.Log = logger.New(&buf, "debug", "json")
	t.Cleanup(func() { logger.Log = prev })
	return &buf
}

func decodeLogs(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var records []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal(line, &rec))
		records = append(records, rec)
	}
	return records
}

func TestSendQuoteRequest(t *testing.T) {
	logs := captureLogs(t)
	sender := new(MockSender)
	svc := email.NewService(testConfig(), sender, testRenderer(t))

	sender.On("Send", mock.Anything, mock.AnythingOfType("email.Message")).
		Return("pm-123", nil).
		Run(func(args mock.Arguments) {
			msg := args.Get(1).(email.Message)
			assert.Equal(t, "noreply@theenergyplanet.com", msg.From)
			assert.Equal(t, []string{"leads@theenergyplanet.com"}, msg.To)
			assert.Equal(t, "john@example.com", msg.ReplyTo)
			assert.Equal(t, "New Quote Request from John Doe - Melbourne", msg.Subject)
			assert.Contains(t, msg.HTMLBody, "15kWh per day")
			assert.Equal(t, "quote-request", msg.Tag)
		})

	result := svc.SendQuoteRequest(context.Background(), sampleQuote())

	assert.True(t, result.Success)
	assert.Equal(t, "pm-123", result.MessageID)
	sender.AssertExpectations(t)

	records := decodeLogs(t, logs)
	require.Len(t, records, 1)
	assert.Equal(t, "INFO", records[0]["level"])
	assert.Equal(t, "send_quote_request", records[0]["action"])
	assert.Equal(t, "success", records[0]["status"])
	assert.Equal(t, "pm-123", records[0]["messageId"])
	assert.Equal(t, "john@example.com", records[0]["customerEmail"])
}

func TestSendQuoteRequest_ProviderFailure(t *testing.T) {
	logs := captureLogs(t)
	sender := new(MockSender)
	svc := email.NewService(testConfig(), sender, testRenderer(t))

	sender.On("Send", mock.Anything, mock.Anything).Return("", errors.New("401 Unauthorized: invalid server token"))

	result := svc.SendQuoteRequest(context.Background(), sampleQuote())

	assert.False(t, result.Success)
	assert.Empty(t, result.MessageID)
	assert.Equal(t, "401 Unauthorized: invalid server token", result.Error)

	records := decodeLogs(t, logs)
	require.Len(t, records, 1)
	assert.Equal(t, "ERROR", records[0]["level"])
	assert.Equal(t, "failed", records[0]["status"])
	assert.Equal(t, "401 Unauthorized: invalid server token", records[0]["error"])
}

func TestSendConfirmationEmail(t *testing.T) {
	captureLogs(t)
	sender := new(MockSender)
	svc := email.NewService(testConfig(), sender, testRenderer(t))

	sender.On("Send", mock.Anything, mock.AnythingOfType("email.Message")).
		Return("pm-456", nil).
		Run(func(args mock.Arguments) {
			msg := args.Get(1).(email.Message)
			assert.Equal(t, []string{"john@example.com"}, msg.To)
			assert.Equal(t, "info@theenergyplanet.com", msg.ReplyTo)
			assert.Equal(t, "Your Quote Request Has Been Received - The Energy Planet", msg.Subject)
			assert.Contains(t, msg.HTMLBody, "Dear John Doe,")
		})

	result := svc.SendConfirmationEmail(context.Background(), "john@example.com", "John Doe")

	assert.True(t, result.Success)
	assert.Equal(t, "pm-456", result.MessageID)
}

func TestSendConfirmationEmail_ReplyToFallsBackToBusiness(t *testing.T) {
	captureLogs(t)
	cfg := testConfig()
	cfg.ReplyToEmail = ""
	sender := new(MockSender)
	svc := email.NewService(cfg, sender, testRenderer(t))

	sender.On("Send", mock.Anything, mock.MatchedBy(func(msg email.Message) bool {
		return msg.ReplyTo == "leads@theenergyplanet.com"
	})).Return("", errors.New("rate limited"))

	result := svc.SendConfirmationEmail(context.Background(), "john@example.com", "John Doe")

	assert.False(t, result.Success)
	assert.Equal(t, "rate limited", result.Error)
	sender.AssertExpectations(t)
}

func TestSendEmail_Legacy(t *testing.T) {
	captureLogs(t)
	sender := new(MockSender)
	svc := email.NewService(testConfig(), sender, testRenderer(t))

	sender.On("Send", mock.Anything, email.Message{
		From:     "noreply@theenergyplanet.com",
		To:       []string{"ops@example.com"},
		Subject:  "Hello",
		TextBody: "plain body",
	}).Return("legacy-1", nil)

	result := svc.SendEmail(context.Background(), []string{"ops@example.com"}, "Hello", "plain body")
	assert.True(t, result.Success)
	assert.Equal(t, "legacy-1", result.MessageID)

	result = svc.SendEmail(context.Background(), nil, "Hello", "plain body")
	assert.False(t, result.Success)
	assert.Equal(t, email.ErrNoRecipients.Error(), result.Error)

	sender.AssertNumberOfCalls(t, "Send", 1)
}

func TestNewSender(t *testing.T) {
	cfg := &config.Config{EmailProvider: config.ProviderPostmark, EmailAPIKey: "token"}
	s, err := email.NewSender(cfg)
	require.NoError(t, err)
	assert.Equal(t, "postmark", s.Name())

	cfg = &config.Config{EmailProvider: config.ProviderSMTP, SMTPHost: "smtp.example.com", SMTPPort: 587}
	s, err = email.NewSender(cfg)
	require.NoError(t, err)
	assert.Equal(t, "smtp", s.Name())

	_, err = email.NewSender(&config.Config{EmailProvider: "carrier-pigeon"})
	assert.ErrorIs(t, err, email.ErrUnknownProvider)
}
