package email

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestNewMailer(t *testing.T) {
	tests := []struct {
		name    string
		config  MailerConfig
		want    any
		wantErr bool
	}{
		{name: "noop", config: MailerConfig{Provider: ProviderNoop}, want: &noopMailer{}},
		{name: "empty provider is noop", config: MailerConfig{}, want: &noopMailer{}},
		{name: "unknown provider falls back to noop", config: MailerConfig{Provider: "carrier-pigeon"}, want: &noopMailer{}},
		{
			name:   "ses",
			config: MailerConfig{Provider: ProviderSES, FromAddress: "cfp@example.com", SES: SESConfig{Region: "eu-west-1"}},
			want:   &sesMailer{},
		},
		{
			name:   "sendgrid",
			config: MailerConfig{Provider: ProviderSendGrid, FromAddress: "cfp@example.com", SendGrid: SendGridConfig{APIKey: "SG.key"}},
			want:   &sendGridMailer{},
		},
		{name: "sendgrid without key", config: MailerConfig{Provider: ProviderSendGrid}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMailer(tt.config, testLogger)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, m)
		})
	}
}

func TestNoopMailer_Send(t *testing.T) {
	m, err := NewMailer(MailerConfig{Provider: ProviderNoop}, testLogger)
	require.NoError(t, err)
	require.NoError(t, m.Send(context.Background(), "a@example.com", "hi", "<p>hi</p>", "hi"))
}

func TestBuildSESInput(t *testing.T) {
	input := buildSESInput(formatSource("CFP Team", "cfp@example.com"), "guest@example.com", "Subject", "<p>x</p>", "")

	assert.Equal(t, "CFP Team <cfp@example.com>", aws.ToString(input.Source))
	assert.Equal(t, []string{"guest@example.com"}, input.Destination.ToAddresses)
	assert.Equal(t, "Subject", aws.ToString(input.Message.Subject.Data))
	require.NotNil(t, input.Message.Body.Html)
	assert.Nil(t, input.Message.Body.Text)
}

func TestFormatSource(t *testing.T) {
	assert.Equal(t, "cfp@example.com", formatSource("", "cfp@example.com"))
	assert.Equal(t, "CFP <cfp@example.com>", formatSource("CFP", "cfp@example.com"))
}
