package domain

import (
	"context"
	"time"
)

// InvitationStatus is the state of a speaker invitation.
type InvitationStatus string

// Only pending invitations are created here; acceptance happens when the invitee signs up.
const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

// Invitation offers a speaker (by email) a place on a proposal.
// swagger:model Invitation
type Invitation struct {
	ID         string           `json:"id"`
	ProposalID string           `json:"proposal_id"`
	SpeakerID  string           `json:"speaker_id"`
	Email      string           `json:"email"`
	Status     InvitationStatus `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
}

// NewInvitation returns a pending invitation. ID is typically set by the repository on create.
func NewInvitation(proposalID, speakerID, email string, createdAt time.Time) *Invitation {
	return &Invitation{
		ProposalID: proposalID,
		SpeakerID:  speakerID,
		Email:      email,
		Status:     InvitationPending,
		CreatedAt:  createdAt,
	}
}

// InvitationRepository defines storage for speaker invitations.
type InvitationRepository interface {
	// Create inserts the invitation. A second pending invitation for the same
	// proposal and email returns ErrDuplicateInvite.
	Create(ctx context.Context, inv *Invitation) error
	// GetPending returns the pending invitation for proposal and email, or ErrNotFound.
	GetPending(ctx context.Context, proposalID, email string) (*Invitation, error)
	ListByProposalID(ctx context.Context, proposalID string) ([]*Invitation, error)
}

// ProposalSpeakers is the manage view of a proposal: its owner and the invitations sent for it.
// swagger:model ProposalSpeakers
type ProposalSpeakers struct {
	Proposal    *Proposal     `json:"proposal"`
	Owner       *Speaker      `json:"owner"`
	Invitations []*Invitation `json:"invitations"`
}

// SpeakerInvitationService manages the speakers attached to a proposal.
// Every call fails with ErrNotFound unless the principal owns the proposal.
type SpeakerInvitationService interface {
	ViewSpeakers(ctx context.Context, proposalID string, principal Principal) (*ProposalSpeakers, error)
	// InviteSpeaker returns ErrSelfInvite, ErrDuplicateInvite or ErrInvalidInput for rejected emails.
	InviteSpeaker(ctx context.Context, proposalID string, principal Principal, email string) (*ProposalSpeakers, error)
}
