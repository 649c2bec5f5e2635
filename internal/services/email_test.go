package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confsite/internal/domain"
)

type sentMail struct {
	to, subject, html, text string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(ctx context.Context, to, subject, html, text string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to, subject, html, text})
	return nil
}

type fakeRenderer struct {
	lastTemplate string
	err          error
}

func (r *fakeRenderer) Render(templateName string, data any) (string, string, string, error) {
	r.lastTemplate = templateName
	if r.err != nil {
		return "", "", "", r.err
	}
	d := data.(*domain.SpeakerInvitationEmailData)
	return "Invite: " + d.ProposalTitle, "<p>" + d.InviterName + "</p>", d.InviterName, nil
}

func TestEmailService_SendSpeakerInvitation(t *testing.T) {
	data := &domain.SpeakerInvitationEmailData{Email: "guest@example.com", InviterName: "Ada", ProposalTitle: "Engines"}

	tests := []struct {
		name        string
		mailerErr   error
		renderErr   error
		data        *domain.SpeakerInvitationEmailData
		wantErr     bool
		wantSubject string
	}{
		{name: "success", data: data, wantSubject: "Invite: Engines"},
		{name: "nil data", data: nil, wantErr: true},
		{name: "render failure", data: data, renderErr: errors.New("bad template"), wantErr: true},
		{name: "mailer failure", data: data, mailerErr: errors.New("ses down"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := &fakeMailer{err: tt.mailerErr}
			renderer := &fakeRenderer{err: tt.renderErr}
			svc := NewEmailService(mailer, renderer, testLogger)

			err := svc.SendSpeakerInvitation(context.Background(), tt.data)
			if tt.wantErr {
				require.Error(t, err)
				assert.Empty(t, mailer.sent)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "speaker_invitation", renderer.lastTemplate)
			require.Len(t, mailer.sent, 1)
			assert.Equal(t, "guest@example.com", mailer.sent[0].to)
			assert.Equal(t, tt.wantSubject, mailer.sent[0].subject)
		})
	}
}
