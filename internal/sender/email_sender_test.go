package sender

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompose(t *testing.T) {
	testCases := []struct {
		name    string
		bcc     string
		wantBcc []string
	}{
		{name: "with audit copy", bcc: "audit@example.com", wantBcc: []string{"audit@example.com"}},
		{name: "without audit copy", bcc: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSMTPEmailSender("smtp.example.com", "587", "user", "pass", "noreply@example.com", tc.bcc)
			e := s.compose("amy@example.com", "subject", "body")

			assert.Equal(t, "noreply@example.com", e.From)
			assert.Equal(t, []string{"amy@example.com"}, e.To)
			assert.Equal(t, tc.wantBcc, e.Bcc)
			assert.Equal(t, "subject", e.Subject)
			assert.Equal(t, []byte("body"), e.Text)
		})
	}
}

func TestSendEmailCancelled(t *testing.T) {
	s := NewSMTPEmailSender("smtp.example.com", "587", "user", "pass", "noreply@example.com", "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.SendEmail(ctx, "amy@example.com", "subject", "body")
	assert.ErrorIs(t, err, context.Canceled)
}
