package services

import (
	"context"
	"fmt"
	"log/slog"

	"confsite/internal/domain"
)

const speakerInvitationTemplate = "speaker_invitation"

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendSpeakerInvitation sends the co-speaker invitation using the "speaker_invitation" template.
func (s *emailService) SendSpeakerInvitation(ctx context.Context, data *domain.SpeakerInvitationEmailData) error {
	if data == nil {
		return fmt.Errorf("speaker invitation data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render(speakerInvitationTemplate, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", speakerInvitationTemplate, err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send speaker invitation email: %w", err)
	}
	s.logger.InfoContext(ctx, "speaker invitation email sent", "to", data.Email)
	return nil
}
