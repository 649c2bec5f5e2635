package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"confsite/internal/domain"
)

// Supported values for MailerConfig.Provider.
const (
	ProviderSES      = "ses"
	ProviderSendGrid = "sendgrid"
	ProviderNoop     = "noop"
)

// SESConfig holds configuration for AWS SES.
type SESConfig struct {
	Region             string
	AccessKeyID        string
	SecretAccessKey    string
	InsecureSkipVerify bool
}

// SendGridConfig holds configuration for SendGrid.
type SendGridConfig struct {
	APIKey string
}

// MailerConfig holds configuration for creating a mailer.
type MailerConfig struct {
	Provider    string
	FromAddress string
	FromName    string
	SES         SESConfig
	SendGrid    SendGridConfig
}

// NewMailer creates a mailer from config. Unknown providers fall back to the noop mailer.
func NewMailer(config MailerConfig, logger *slog.Logger) (domain.Mailer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch config.Provider {
	case ProviderSES:
		return newSESMailer(config, logger), nil
	case ProviderSendGrid:
		if config.SendGrid.APIKey == "" {
			return nil, fmt.Errorf("sendgrid mailer: api key is required")
		}
		return &sendGridMailer{
			client:      sendgrid.NewSendClient(config.SendGrid.APIKey),
			fromAddress: config.FromAddress,
			fromName:    config.FromName,
			logger:      logger,
		}, nil
	case ProviderNoop, "":
		return &noopMailer{logger: logger}, nil
	default:
		logger.Warn("unknown email provider, using noop", "provider", config.Provider)
		return &noopMailer{logger: logger}, nil
	}
}

type sesMailer struct {
	client      *ses.Client
	fromAddress string
	fromName    string
	logger      *slog.Logger
}

func newSESMailer(config MailerConfig, logger *slog.Logger) *sesMailer {
	sesConfig := config.SES
	if sesConfig.InsecureSkipVerify {
		logger.Warn("TLS certificate verification is disabled for SES; use only in development")
	}
	httpClient := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: sesConfig.InsecureSkipVerify,
				MinVersion:         tls.VersionTLS12,
			},
		},
	}
	awsCfg := aws.Config{
		Region: sesConfig.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				sesConfig.AccessKeyID,
				sesConfig.SecretAccessKey,
				"",
			),
		),
		HTTPClient: httpClient,
	}
	return &sesMailer{
		client:      ses.NewFromConfig(awsCfg),
		fromAddress: config.FromAddress,
		fromName:    config.FromName,
		logger:      logger,
	}
}

func (s *sesMailer) Send(ctx context.Context, to, subject, html, text string) error {
	input := buildSESInput(formatSource(s.fromName, s.fromAddress), to, subject, html, text)
	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("send email via SES: %w", err)
	}
	s.logger.InfoContext(ctx, "email sent via SES", "message_id", aws.ToString(result.MessageId))
	return nil
}

func buildSESInput(source, to, subject, html, text string) *ses.SendEmailInput {
	input := &ses.SendEmailInput{
		Source: aws.String(source),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{},
		},
	}
	if html != "" {
		input.Message.Body.Html = &types.Content{
			Data:    aws.String(html),
			Charset: aws.String("UTF-8"),
		}
	}
	if text != "" {
		input.Message.Body.Text = &types.Content{
			Data:    aws.String(text),
			Charset: aws.String("UTF-8"),
		}
	}
	return input
}

func formatSource(name, address string) string {
	if name == "" {
		return address
	}
	return fmt.Sprintf("%s <%s>", name, address)
}

type sendGridMailer struct {
	client      *sendgrid.Client
	fromAddress string
	fromName    string
	logger      *slog.Logger
}

func (s *sendGridMailer) Send(ctx context.Context, to, subject, html, text string) error {
	message := mail.NewSingleEmail(
		mail.NewEmail(s.fromName, s.fromAddress),
		subject,
		mail.NewEmail("", to),
		text,
		html,
	)
	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("send email via SendGrid: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	s.logger.InfoContext(ctx, "email sent via SendGrid", "status", response.StatusCode)
	return nil
}

type noopMailer struct {
	logger *slog.Logger
}

func (n *noopMailer) Send(ctx context.Context, to, subject, html, text string) error {
	n.logger.InfoContext(ctx, "email would be sent (noop)", "to", to, "subject", subject)
	return nil
}
