package email

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSMTPMessage(t *testing.T) {
	m, err := buildSMTPMessage(Message{
		From:     "noreply@theenergyplanet.com",
		To:       []string{"leads@theenergyplanet.com"},
		ReplyTo:  "john@example.com",
		Subject:  "New Quote Request from John Doe - Melbourne",
		HTMLBody: "<p>hello</p>",
		TextBody: "hello",
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.String()

	assert.Contains(t, raw, "Subject: New Quote Request from John Doe - Melbourne")
	assert.Contains(t, raw, "Reply-To:")
	assert.Contains(t, raw, "john@example.com")
	assert.Contains(t, raw, "leads@theenergyplanet.com")
	assert.Contains(t, raw, "multipart/alternative")
	assert.Contains(t, raw, "text/html")
	assert.NotEmpty(t, m.GetMessageID())
}

func TestBuildSMTPMessage_InvalidAddress(t *testing.T) {
	_, err := buildSMTPMessage(Message{
		From:     "not-an-address",
		To:       []string{"leads@theenergyplanet.com"},
		TextBody: "hello",
	})
	assert.Error(t, err)

	_, err = buildSMTPMessage(Message{
		From:     "noreply@theenergyplanet.com",
		To:       []string{"nobody"},
		TextBody: "hello",
	})
	assert.Error(t, err)
}

func TestSMTPSender_MissingHost(t *testing.T) {
	s := NewSMTPSender("", 587, "user", "pass", false)

	_, err := s.Send(context.Background(), Message{
		From:     "noreply@theenergyplanet.com",
		To:       []string{"leads@theenergyplanet.com"},
		TextBody: "hello",
	})
	assert.Error(t, err)
	assert.Error(t, s.Verify(context.Background()))
}
