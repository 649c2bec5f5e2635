package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"confsite/internal/domain"
	"confsite/internal/metrics"
)

type speakerInvitationService struct {
	proposalRepo   domain.ProposalRepository
	speakerRepo    domain.SpeakerRepository
	invitationRepo domain.InvitationRepository
	tx             domain.Transactor
	emailService   domain.EmailService
	metrics        *metrics.Metrics
	logger         *slog.Logger
	conferenceName string
	contextTimeout time.Duration
}

func NewSpeakerInvitationService(
	proposalRepo domain.ProposalRepository,
	speakerRepo domain.SpeakerRepository,
	invitationRepo domain.InvitationRepository,
	tx domain.Transactor,
	emailService domain.EmailService,
	m *metrics.Metrics,
	logger *slog.Logger,
	conferenceName string,
	timeout time.Duration,
) domain.SpeakerInvitationService {
	return &speakerInvitationService{
		proposalRepo:   proposalRepo,
		speakerRepo:    speakerRepo,
		invitationRepo: invitationRepo,
		tx:             tx,
		emailService:   emailService,
		metrics:        m,
		logger:         logger,
		conferenceName: conferenceName,
		contextTimeout: timeout,
	}
}

func (s *speakerInvitationService) ViewSpeakers(ctx context.Context, proposalID string, principal domain.Principal) (*domain.ProposalSpeakers, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p, owner, err := s.ownedProposal(ctx, proposalID, principal)
	if err != nil {
		return nil, err
	}
	return s.speakers(ctx, p, owner)
}

func (s *speakerInvitationService) InviteSpeaker(ctx context.Context, proposalID string, principal domain.Principal, email string) (*domain.ProposalSpeakers, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p, owner, err := s.ownedProposal(ctx, proposalID, principal)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.metrics.InvitationOutcome(metrics.OutcomeNotFound)
		}
		return nil, err
	}
	email, err = normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(email, strings.TrimSpace(principal.Email)) || strings.EqualFold(email, owner.Email) {
		s.metrics.InvitationOutcome(metrics.OutcomeSelf)
		return nil, domain.ErrSelfInvite
	}
	if _, err := s.invitationRepo.GetPending(ctx, p.ID, email); err == nil {
		s.metrics.InvitationOutcome(metrics.OutcomeDuplicate)
		return nil, domain.ErrDuplicateInvite
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get pending invitation: %w", err)
	}

	var invitee *domain.Speaker
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		now := time.Now()
		sp, err := s.speakerRepo.GetByEmail(ctx, email)
		if errors.Is(err, domain.ErrNotFound) {
			sp = domain.NewPlaceholderSpeaker(email, uuid.NewString(), now)
			err = s.speakerRepo.Create(ctx, sp)
		}
		if err != nil {
			return fmt.Errorf("resolve invited speaker: %w", err)
		}
		invitee = sp
		return s.invitationRepo.Create(ctx, domain.NewInvitation(p.ID, sp.ID, email, now))
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateInvite) {
			s.metrics.InvitationOutcome(metrics.OutcomeDuplicate)
			return nil, domain.ErrDuplicateInvite
		}
		return nil, fmt.Errorf("create invitation: %w", err)
	}
	s.metrics.InvitationOutcome(metrics.OutcomeInvited)
	s.logger.InfoContext(ctx, "speaker invited", "proposal_id", p.ID, "speaker_id", invitee.ID)

	s.notify(ctx, p, owner, invitee, email)
	return s.speakers(ctx, p, owner)
}

// notify sends the invitation email. The invitation is already committed, so a failure is only logged.
func (s *speakerInvitationService) notify(ctx context.Context, p *domain.Proposal, owner, invitee *domain.Speaker, email string) {
	data := &domain.SpeakerInvitationEmailData{
		Email:          email,
		InviterName:    owner.DisplayName(),
		ProposalTitle:  p.Title,
		ConferenceName: s.conferenceName,
	}
	if invitee.IsPlaceholder() {
		data.InviteToken = invitee.InviteToken
	}
	if err := s.emailService.SendSpeakerInvitation(ctx, data); err != nil {
		s.metrics.InvitationEmailFailed()
		s.logger.WarnContext(ctx, "invitation email failed", "proposal_id", p.ID, "speaker_id", invitee.ID, "err", err)
	}
}

func (s *speakerInvitationService) speakers(ctx context.Context, p *domain.Proposal, owner *domain.Speaker) (*domain.ProposalSpeakers, error) {
	invs, err := s.invitationRepo.ListByProposalID(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	if invs == nil {
		invs = []*domain.Invitation{}
	}
	return &domain.ProposalSpeakers{Proposal: p, Owner: owner, Invitations: invs}, nil
}

// ownedProposal returns the proposal and its owning speaker when principal is that speaker's user.
// Every other case, including a missing proposal, is ErrNotFound.
func (s *speakerInvitationService) ownedProposal(ctx context.Context, proposalID string, principal domain.Principal) (*domain.Proposal, *domain.Speaker, error) {
	p, err := s.proposalRepo.GetByID(ctx, proposalID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get proposal: %w", err)
	}
	owner, err := s.speakerRepo.GetByID(ctx, p.SpeakerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get proposal owner: %w", err)
	}
	if !owner.IsLinkedTo(principal.UserID) {
		return nil, nil, domain.ErrNotFound
	}
	return p, owner, nil
}

// normalizeEmail trims email and rejects anything that is not a bare address.
func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: invalid email address", domain.ErrInvalidInput)
	}
	return email, nil
}
