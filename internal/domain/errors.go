package domain

import "errors"

// Sentinel errors shared by services, repositories and controllers.
var (
	// ErrNotFound is returned when a record does not exist or the caller may not see it.
	// Ownership failures on proposals are reported as ErrNotFound so that a proposal's
	// existence is never confirmed to someone who does not own it.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when the request is malformed (e.g. an empty invite email).
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedVariant is returned for a proposal kind other than talk, tutorial or poster.
	ErrUnsupportedVariant = errors.New("unsupported proposal variant")

	// ErrSpeakerProfileRequired is returned when the caller has no speaker profile yet.
	ErrSpeakerProfileRequired = errors.New("speaker profile required")

	// ErrSelfInvite is returned when a speaker invites their own email to a proposal.
	ErrSelfInvite = errors.New("self invitation")

	// ErrSpeakerExists is returned by storage when the user already has a speaker profile.
	ErrSpeakerExists = errors.New("speaker profile already exists")

	// ErrDuplicateInvite is returned when the email already has a pending invitation on the proposal.
	ErrDuplicateInvite = errors.New("duplicate invitation")
)

// User-facing messages for the invitation outcomes.
const (
	SelfInviteMessage      = "You can't invite yourself to this proposal"
	DuplicateInviteMessage = "This email address has already been invited to your talk proposal"
	InviteSuccessMessage   = "Speaker invited to proposal."
)
