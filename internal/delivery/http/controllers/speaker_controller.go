package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"confsite/internal/delivery/http/helpers"
	"confsite/internal/delivery/http/middleware"
	"confsite/internal/domain"
)

// InviteSpeakerRequest is the request body for POST /proposals/{proposalID}/speakers.
type InviteSpeakerRequest struct {
	Email string `json:"email"`
}

// InviteSpeakerResponse carries the confirmation message and the updated speaker list.
type InviteSpeakerResponse struct {
	Message  string                   `json:"message"`
	Speakers *domain.ProposalSpeakers `json:"speakers"`
}

// InviteSpeakerSuccessResponse is the success response envelope for POST /proposals/{proposalID}/speakers (201).
type InviteSpeakerSuccessResponse struct {
	Data  InviteSpeakerResponse `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// ProposalSpeakersSuccessResponse is the success response envelope for GET /proposals/{proposalID}/speakers (200).
type ProposalSpeakersSuccessResponse struct {
	Data  *domain.ProposalSpeakers `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// CreateProfileRequest is the request body for POST /speakers/me.
type CreateProfileRequest struct {
	Name string `json:"name"`
}

// Validate implements helpers.Validator.
func (req CreateProfileRequest) Validate() domain.FieldErrors {
	errs := domain.FieldErrors{}
	if strings.TrimSpace(req.Name) == "" {
		errs.Add("name", domain.MsgRequired)
	}
	return errs
}

// SpeakerSuccessResponse is the success response envelope for the caller's speaker profile.
type SpeakerSuccessResponse struct {
	Data  *domain.Speaker   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type SpeakerController struct {
	Logger      *slog.Logger
	Invitations domain.SpeakerInvitationService
	Profiles    domain.SpeakerService
}

func NewSpeakerController(logger *slog.Logger, invitations domain.SpeakerInvitationService, profiles domain.SpeakerService) *SpeakerController {
	return &SpeakerController{
		Logger:      logger,
		Invitations: invitations,
		Profiles:    profiles,
	}
}

// ViewSpeakers godoc
// @Summary List a proposal's speakers
// @Description Returns the proposal, its owning speaker and every invitation sent for it. Non-owners get 404.
// @Tags speakers
// @Produce json
// @Security BearerAuth
// @Param proposalID path string true "Proposal ID"
// @Success 200 {object} controllers.ProposalSpeakersSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /proposals/{proposalID}/speakers [get]
func (c *SpeakerController) ViewSpeakers(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	speakers, err := c.Invitations.ViewSpeakers(r.Context(), r.PathValue("proposalID"), principal)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, speakers)
}

// InviteSpeaker godoc
// @Summary Invite a co-speaker
// @Description Invites an email address to speak on the proposal and emails them. Unknown addresses get a placeholder speaker profile.
// @Tags speakers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param proposalID path string true "Proposal ID"
// @Param body body InviteSpeakerRequest true "Invitee"
// @Success 201 {object} controllers.InviteSpeakerSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or self_invite"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: duplicate_invite"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /proposals/{proposalID}/speakers [post]
func (c *SpeakerController) InviteSpeaker(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	// The email is checked by the service once ownership is established.
	var req InviteSpeakerRequest
	if !helpers.DecodeJSON(w, r, &req) {
		return
	}
	speakers, err := c.Invitations.InviteSpeaker(r.Context(), r.PathValue("proposalID"), principal, req.Email)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, InviteSpeakerResponse{
		Message:  domain.InviteSuccessMessage,
		Speakers: speakers,
	})
}

// CreateProfile godoc
// @Summary Create my speaker profile
// @Description Creates the caller's speaker profile, or claims the placeholder an invitation created for their email. Returns the existing profile if there is one.
// @Tags speakers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateProfileRequest true "Profile"
// @Success 201 {object} controllers.SpeakerSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 422 {object} helpers.APIResponse "error.code: validation_failed"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers/me [post]
func (c *SpeakerController) CreateProfile(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req CreateProfileRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	speaker, err := c.Profiles.CreateProfile(r.Context(), principal, req.Name)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, speaker)
}

// GetMyProfile godoc
// @Summary Get my speaker profile
// @Tags speakers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.SpeakerSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: speaker_profile_required"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers/me [get]
func (c *SpeakerController) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	speaker, err := c.Profiles.GetMyProfile(r.Context(), principal)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, speaker)
}
