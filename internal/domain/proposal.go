package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Variant is the proposal kind. It decides which fields a submission must carry.
type Variant string

const (
	VariantTalk     Variant = "talk"
	VariantTutorial Variant = "tutorial"
	VariantPoster   Variant = "poster"
)

// Variants lists every supported proposal kind.
var Variants = []Variant{VariantTalk, VariantTutorial, VariantPoster}

// ParseVariant resolves a variant name (case-insensitive). Unknown names return ErrUnsupportedVariant.
func ParseVariant(s string) (Variant, error) {
	v := Variant(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case VariantTalk, VariantTutorial, VariantPoster:
		return v, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedVariant, s)
}

// Audience levels accepted for audience_level.
const (
	AudienceNovice       = "novice"
	AudienceIntermediate = "intermediate"
	AudienceExperienced  = "experienced"
)

// Answers accepted for under_represented_group. Blank means the speaker chose not to answer.
const (
	AnswerYes = "Yes"
	AnswerNo  = "No"
)

// Proposal is a submitted talk, tutorial or poster.
// swagger:model Proposal
type Proposal struct {
	ID                    string    `json:"id"`
	SpeakerID             string    `json:"speaker_id"`
	Variant               Variant   `json:"variant"`
	Title                 string    `json:"title"`
	AudienceLevel         string    `json:"audience_level"`
	Description           string    `json:"description"`
	Abstract              string    `json:"abstract"`
	Affiliation           string    `json:"affiliation"`
	AdditionalNotes       string    `json:"additional_notes"`
	FirstTimeAtConference bool      `json:"first_time_at_conference"`
	Requests              string    `json:"requests"`
	Gender                string    `json:"gender"`
	Referral              string    `json:"referral"`
	UnderRepresentedGroup string    `json:"under_represented_group"`
	AccessibilityNeeds    string    `json:"accessibility_needs"`
	RecordingRelease      bool      `json:"recording_release"`
	PhoneNumber           string    `json:"phone_number"`
	GDPRGrant             bool      `json:"gdpr_grant"`
	GDPRRevokeAwareness   bool      `json:"gdpr_revoke_awareness"`
	GDPRDataExemption     bool      `json:"gdpr_data_exemption"`
	TargetAudience        string    `json:"target_audience"`
	TutorialFormat        string    `json:"tutorial_format"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// ProposalSubmission is the raw, user-supplied proposal payload.
// Consent fields are pointers so that "not sent" and "false" both read as not affirmed.
// swagger:model ProposalSubmission
type ProposalSubmission struct {
	Title                 string `json:"title"`
	AudienceLevel         string `json:"audience_level"`
	Description           string `json:"description"`
	Abstract              string `json:"abstract"`
	Affiliation           string `json:"affiliation"`
	AdditionalNotes       string `json:"additional_notes"`
	FirstTimeAtConference bool   `json:"first_time_at_conference"`
	Requests              string `json:"requests"`
	Gender                string `json:"gender"`
	Referral              string `json:"referral"`
	UnderRepresentedGroup string `json:"under_represented_group"`
	AccessibilityNeeds    string `json:"accessibility_needs"`
	RecordingRelease      bool   `json:"recording_release"`
	PhoneNumber           string `json:"phone_number"`
	GDPRGrant             *bool  `json:"gdpr_grant"`
	GDPRRevokeAwareness   *bool  `json:"gdpr_revoke_awareness"`
	GDPRDataExemption     *bool  `json:"gdpr_data_exemption"`
	TargetAudience        string `json:"target_audience"`
	TutorialFormat        string `json:"tutorial_format"`
}

// Normalize trims surrounding whitespace from every text field.
func (s *ProposalSubmission) Normalize() {
	for _, f := range []*string{
		&s.Title, &s.AudienceLevel, &s.Description, &s.Abstract, &s.Affiliation,
		&s.AdditionalNotes, &s.Requests, &s.Gender, &s.Referral, &s.UnderRepresentedGroup,
		&s.AccessibilityNeeds, &s.PhoneNumber, &s.TargetAudience, &s.TutorialFormat,
	} {
		*f = strings.TrimSpace(*f)
	}
}

// Apply copies a validated submission onto p. Variant-only fields are cleared for talks and posters.
func (s *ProposalSubmission) Apply(p *Proposal) {
	p.Title = s.Title
	p.AudienceLevel = s.AudienceLevel
	p.Description = s.Description
	p.Abstract = s.Abstract
	p.Affiliation = s.Affiliation
	p.AdditionalNotes = s.AdditionalNotes
	p.FirstTimeAtConference = s.FirstTimeAtConference
	p.Requests = s.Requests
	p.Gender = s.Gender
	p.Referral = s.Referral
	p.UnderRepresentedGroup = s.UnderRepresentedGroup
	p.AccessibilityNeeds = s.AccessibilityNeeds
	p.RecordingRelease = s.RecordingRelease
	p.PhoneNumber = s.PhoneNumber
	p.GDPRGrant = isTrue(s.GDPRGrant)
	p.GDPRRevokeAwareness = isTrue(s.GDPRRevokeAwareness)
	p.GDPRDataExemption = isTrue(s.GDPRDataExemption)
	if p.Variant == VariantTutorial {
		p.TargetAudience = s.TargetAudience
		p.TutorialFormat = s.TutorialFormat
	} else {
		p.TargetAudience = ""
		p.TutorialFormat = ""
	}
}

func isTrue(b *bool) bool { return b != nil && *b }

// ProposalRepository defines storage for proposals.
type ProposalRepository interface {
	Create(ctx context.Context, p *Proposal) error
	Update(ctx context.Context, p *Proposal) error
	GetByID(ctx context.Context, id string) (*Proposal, error)
	ListBySpeakerID(ctx context.Context, speakerID string) ([]*Proposal, error)
}

// ProposalService validates and stores proposals on behalf of their speaker.
type ProposalService interface {
	// SubmitProposal validates the submission for the variant and stores it for the principal's speaker.
	// Validation failures come back as FieldErrors with a nil error; the error is reserved for
	// unsupported variants, a missing speaker profile and storage failures.
	SubmitProposal(ctx context.Context, variant Variant, sub *ProposalSubmission, principal Principal) (*Proposal, FieldErrors, error)
	// UpdateProposal re-validates an owned proposal with its stored variant and saves it.
	UpdateProposal(ctx context.Context, proposalID string, sub *ProposalSubmission, principal Principal) (*Proposal, FieldErrors, error)
	GetProposal(ctx context.Context, proposalID string, principal Principal) (*Proposal, error)
	ListMyProposals(ctx context.Context, principal Principal) ([]*Proposal, error)
}

// PhoneNormalizer validates a phone number and returns it in canonical form.
type PhoneNormalizer interface {
	Normalize(phone string) (string, error)
}
