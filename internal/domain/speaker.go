package domain

import (
	"context"
	"time"
)

// Speaker is a person who owns or is invited to proposals.
// A speaker without a UserID is a placeholder created by an invitation and not yet claimed.
// swagger:model Speaker
type Speaker struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	UserID      *string   `json:"user_id,omitempty"`
	Email       string    `json:"email"`
	InviteToken string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewSpeaker returns a speaker linked to userID. ID is typically set by the repository on create.
func NewSpeaker(name, userID, email string, createdAt, updatedAt time.Time) *Speaker {
	return &Speaker{
		Name:      name,
		UserID:    &userID,
		Email:     email,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// NewPlaceholderSpeaker returns an unlinked speaker for an invited email.
func NewPlaceholderSpeaker(email, inviteToken string, createdAt time.Time) *Speaker {
	return &Speaker{
		Email:       email,
		InviteToken: inviteToken,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

// IsPlaceholder reports whether the speaker has no linked user.
func (s *Speaker) IsPlaceholder() bool {
	return s.UserID == nil || *s.UserID == ""
}

// IsLinkedTo reports whether the speaker belongs to userID.
func (s *Speaker) IsLinkedTo(userID string) bool {
	return !s.IsPlaceholder() && userID != "" && *s.UserID == userID
}

// DisplayName is the speaker's name, or their email when they have not set one.
func (s *Speaker) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Email
}

// SpeakerRepository defines storage for speakers.
type SpeakerRepository interface {
	Create(ctx context.Context, s *Speaker) error
	GetByID(ctx context.Context, id string) (*Speaker, error)
	GetByUserID(ctx context.Context, userID string) (*Speaker, error)
	// GetByEmail returns the speaker for email, preferring a linked speaker over a placeholder.
	GetByEmail(ctx context.Context, email string) (*Speaker, error)
	// Link attaches a placeholder speaker to userID and sets its name.
	Link(ctx context.Context, speakerID, userID, name string, updatedAt time.Time) error
}

// SpeakerService manages the caller's own speaker profile.
type SpeakerService interface {
	// CreateProfile returns the caller's profile, claiming a placeholder with their email or creating one.
	CreateProfile(ctx context.Context, principal Principal, name string) (*Speaker, error)
	GetMyProfile(ctx context.Context, principal Principal) (*Speaker, error)
}
