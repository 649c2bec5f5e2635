package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"confsite/internal/delivery/http/helpers"
	"confsite/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

var testPrincipal = domain.Principal{UserID: "user-123", Email: "ada@example.com"}

// fakeProposalService implements domain.ProposalService for handler tests.
type fakeProposalService struct {
	proposal      *domain.Proposal
	proposals     []*domain.Proposal
	fieldErrs     domain.FieldErrors
	err           error
	lastVariant   domain.Variant
	lastSub       *domain.ProposalSubmission
	lastID        string
	lastPrincipal domain.Principal
}

func (f *fakeProposalService) SubmitProposal(ctx context.Context, variant domain.Variant, sub *domain.ProposalSubmission, principal domain.Principal) (*domain.Proposal, domain.FieldErrors, error) {
	f.lastVariant, f.lastSub, f.lastPrincipal = variant, sub, principal
	if f.err != nil || len(f.fieldErrs) > 0 {
		return nil, f.fieldErrs, f.err
	}
	return f.proposal, nil, nil
}

func (f *fakeProposalService) UpdateProposal(ctx context.Context, proposalID string, sub *domain.ProposalSubmission, principal domain.Principal) (*domain.Proposal, domain.FieldErrors, error) {
	f.lastID, f.lastSub, f.lastPrincipal = proposalID, sub, principal
	if f.err != nil || len(f.fieldErrs) > 0 {
		return nil, f.fieldErrs, f.err
	}
	return f.proposal, nil, nil
}

func (f *fakeProposalService) GetProposal(ctx context.Context, proposalID string, principal domain.Principal) (*domain.Proposal, error) {
	f.lastID, f.lastPrincipal = proposalID, principal
	if f.err != nil {
		return nil, f.err
	}
	return f.proposal, nil
}

func (f *fakeProposalService) ListMyProposals(ctx context.Context, principal domain.Principal) ([]*domain.Proposal, error) {
	f.lastPrincipal = principal
	return f.proposals, f.err
}

// fakeInvitationService implements domain.SpeakerInvitationService for handler tests.
type fakeInvitationService struct {
	result        *domain.ProposalSpeakers
	err           error
	lastID        string
	lastEmail     string
	lastPrincipal domain.Principal
}

func (f *fakeInvitationService) ViewSpeakers(ctx context.Context, proposalID string, principal domain.Principal) (*domain.ProposalSpeakers, error) {
	f.lastID, f.lastPrincipal = proposalID, principal
	return f.result, f.err
}

func (f *fakeInvitationService) InviteSpeaker(ctx context.Context, proposalID string, principal domain.Principal, email string) (*domain.ProposalSpeakers, error) {
	f.lastID, f.lastPrincipal, f.lastEmail = proposalID, principal, email
	return f.result, f.err
}

// fakeSpeakerService implements domain.SpeakerService for handler tests.
type fakeSpeakerService struct {
	speaker  *domain.Speaker
	err      error
	lastName string
}

func (f *fakeSpeakerService) CreateProfile(ctx context.Context, principal domain.Principal, name string) (*domain.Speaker, error) {
	f.lastName = name
	return f.speaker, f.err
}

func (f *fakeSpeakerService) GetMyProfile(ctx context.Context, principal domain.Principal) (*domain.Speaker, error) {
	return f.speaker, f.err
}

// fakeCatalog labels every field with its own name.
type fakeCatalog struct{}

func (fakeCatalog) FieldText(v domain.Variant, field string) domain.FieldText {
	return domain.FieldText{Label: field, HelpText: string(v) + " help"}
}

func decodeEnvelope(t *testing.T, body io.Reader) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(body).Decode(&envelope), "response must be valid JSON envelope")
	return envelope
}

// decodeData re-decodes envelope.Data into dest.
func decodeData(t *testing.T, envelope helpers.APIResponse, dest any) {
	t.Helper()
	raw, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, dest))
}
