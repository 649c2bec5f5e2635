package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// SpeakerInvitationEmailData holds data for the co-speaker invitation email.
type SpeakerInvitationEmailData struct {
	Email          string
	InviterName    string
	ProposalTitle  string
	ConferenceName string
	// InviteToken is set when the invitee has no account yet and must sign up to accept.
	InviteToken string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendSpeakerInvitation(ctx context.Context, data *SpeakerInvitationEmailData) error
}
