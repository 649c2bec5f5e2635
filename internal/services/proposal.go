package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"confsite/internal/domain"
	"confsite/internal/metrics"
)

type proposalService struct {
	proposalRepo   domain.ProposalRepository
	speakerRepo    domain.SpeakerRepository
	tx             domain.Transactor
	phone          domain.PhoneNormalizer
	metrics        *metrics.Metrics
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewProposalService returns a ProposalService. phone may be nil, in which case phone numbers are stored as typed.
func NewProposalService(
	proposalRepo domain.ProposalRepository,
	speakerRepo domain.SpeakerRepository,
	tx domain.Transactor,
	phone domain.PhoneNormalizer,
	m *metrics.Metrics,
	logger *slog.Logger,
	timeout time.Duration,
) domain.ProposalService {
	return &proposalService{
		proposalRepo:   proposalRepo,
		speakerRepo:    speakerRepo,
		tx:             tx,
		phone:          phone,
		metrics:        m,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *proposalService) SubmitProposal(ctx context.Context, variant domain.Variant, sub *domain.ProposalSubmission, principal domain.Principal) (*domain.Proposal, domain.FieldErrors, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	form, err := domain.FormFor(variant)
	if err != nil {
		return nil, nil, err
	}
	if sub == nil {
		return nil, nil, fmt.Errorf("%w: submission is required", domain.ErrInvalidInput)
	}
	speaker, err := s.speakerRepo.GetByUserID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrSpeakerProfileRequired
		}
		return nil, nil, fmt.Errorf("get speaker: %w", err)
	}

	if errs := s.validate(form, sub); len(errs) > 0 {
		s.metrics.ValidationFailed(string(variant))
		return nil, errs, nil
	}

	now := time.Now()
	p := &domain.Proposal{
		SpeakerID: speaker.ID,
		Variant:   variant,
		CreatedAt: now,
		UpdatedAt: now,
	}
	sub.Apply(p)
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		return s.proposalRepo.Create(ctx, p)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create proposal: %w", err)
	}
	s.metrics.ProposalSubmitted(string(variant))
	s.logger.InfoContext(ctx, "proposal submitted", "proposal_id", p.ID, "variant", variant, "speaker_id", speaker.ID)
	return p, nil, nil
}

func (s *proposalService) UpdateProposal(ctx context.Context, proposalID string, sub *domain.ProposalSubmission, principal domain.Principal) (*domain.Proposal, domain.FieldErrors, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if sub == nil {
		return nil, nil, fmt.Errorf("%w: submission is required", domain.ErrInvalidInput)
	}
	p, err := s.ownedProposal(ctx, proposalID, principal)
	if err != nil {
		return nil, nil, err
	}
	form, err := domain.FormFor(p.Variant)
	if err != nil {
		return nil, nil, err
	}
	if errs := s.validate(form, sub); len(errs) > 0 {
		s.metrics.ValidationFailed(string(p.Variant))
		return nil, errs, nil
	}

	sub.Apply(p)
	p.UpdatedAt = time.Now()
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		return s.proposalRepo.Update(ctx, p)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("update proposal: %w", err)
	}
	return p, nil, nil
}

func (s *proposalService) GetProposal(ctx context.Context, proposalID string, principal domain.Principal) (*domain.Proposal, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.ownedProposal(ctx, proposalID, principal)
}

func (s *proposalService) ListMyProposals(ctx context.Context, principal domain.Principal) ([]*domain.Proposal, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	speaker, err := s.speakerRepo.GetByUserID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrSpeakerProfileRequired
		}
		return nil, fmt.Errorf("get speaker: %w", err)
	}
	proposals, err := s.proposalRepo.ListBySpeakerID(ctx, speaker.ID)
	if err != nil {
		return nil, fmt.Errorf("list proposals: %w", err)
	}
	if proposals == nil {
		proposals = []*domain.Proposal{}
	}
	return proposals, nil
}

// validate normalizes sub in place and collects every field error, including an unparseable phone number.
func (s *proposalService) validate(form domain.ProposalForm, sub *domain.ProposalSubmission) domain.FieldErrors {
	sub.Normalize()
	errs := form.Validate(sub)
	if sub.PhoneNumber != "" && s.phone != nil {
		normalized, err := s.phone.Normalize(sub.PhoneNumber)
		if err != nil {
			errs.Add(domain.FieldPhoneNumber, domain.MsgInvalidPhone)
		} else {
			sub.PhoneNumber = normalized
		}
	}
	return errs
}

// ownedProposal loads a proposal for its owner. Missing proposals, callers without a
// profile and callers who do not own the proposal all get ErrNotFound.
func (s *proposalService) ownedProposal(ctx context.Context, proposalID string, principal domain.Principal) (*domain.Proposal, error) {
	p, err := s.proposalRepo.GetByID(ctx, proposalID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get proposal: %w", err)
	}
	speaker, err := s.speakerRepo.GetByUserID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get speaker: %w", err)
	}
	if p.SpeakerID != speaker.ID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}
