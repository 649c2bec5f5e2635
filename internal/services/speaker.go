package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"confsite/internal/domain"
)

type speakerService struct {
	speakerRepo    domain.SpeakerRepository
	tx             domain.Transactor
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewSpeakerService(speakerRepo domain.SpeakerRepository, tx domain.Transactor, logger *slog.Logger, timeout time.Duration) domain.SpeakerService {
	return &speakerService{
		speakerRepo:    speakerRepo,
		tx:             tx,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *speakerService) CreateProfile(ctx context.Context, principal domain.Principal, name string) (*domain.Speaker, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	if principal.UserID == "" || name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	existing, err := s.speakerRepo.GetByUserID(ctx, principal.UserID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get speaker: %w", err)
	}

	var speaker *domain.Speaker
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		now := time.Now()
		if principal.Email != "" {
			placeholder, err := s.speakerRepo.GetByEmail(ctx, principal.Email)
			switch {
			case err == nil && placeholder.IsPlaceholder():
				if err := s.speakerRepo.Link(ctx, placeholder.ID, principal.UserID, name, now); err != nil {
					if errors.Is(err, domain.ErrNotFound) {
						// Claimed between the lookup and the update.
						return domain.ErrSpeakerExists
					}
					return fmt.Errorf("link speaker: %w", err)
				}
				userID := principal.UserID
				placeholder.UserID = &userID
				placeholder.Name = name
				placeholder.InviteToken = ""
				placeholder.UpdatedAt = now
				speaker = placeholder
				s.logger.InfoContext(ctx, "placeholder speaker claimed", "speaker_id", placeholder.ID)
				return nil
			case err != nil && !errors.Is(err, domain.ErrNotFound):
				return fmt.Errorf("get speaker by email: %w", err)
			}
		}
		speaker = domain.NewSpeaker(name, principal.UserID, principal.Email, now, now)
		return s.speakerRepo.Create(ctx, speaker)
	})
	if errors.Is(err, domain.ErrSpeakerExists) {
		// A concurrent request created or claimed the profile first.
		existing, getErr := s.speakerRepo.GetByUserID(ctx, principal.UserID)
		if getErr != nil {
			return nil, fmt.Errorf("get speaker after conflict: %w", getErr)
		}
		return existing, nil
	}
	if err != nil {
		return nil, err
	}
	return speaker, nil
}

func (s *speakerService) GetMyProfile(ctx context.Context, principal domain.Principal) (*domain.Speaker, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	speaker, err := s.speakerRepo.GetByUserID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrSpeakerProfileRequired
		}
		return nil, fmt.Errorf("get speaker: %w", err)
	}
	return speaker, nil
}
