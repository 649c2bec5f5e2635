package controllers

import (
	"log/slog"
	"net/http"

	"confsite/internal/delivery/http/helpers"
	"confsite/internal/delivery/http/middleware"
	"confsite/internal/domain"
)

// FormField describes one input of a proposal form.
// swagger:model FormField
type FormField struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	HelpText string `json:"help_text,omitempty"`
	Required bool   `json:"required"`
}

// FormResponse is the field list for one proposal variant.
type FormResponse struct {
	Variant domain.Variant `json:"variant"`
	Fields  []FormField    `json:"fields"`
}

// FormSuccessResponse is the success response envelope for GET /forms/{variant} (200).
type FormSuccessResponse struct {
	Data  FormResponse      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ProposalSuccessResponse is the success response envelope for a single proposal.
type ProposalSuccessResponse struct {
	Data  *domain.Proposal  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ProposalListSuccessResponse is the success response envelope for GET /proposals/me (200).
type ProposalListSuccessResponse struct {
	Data  []*domain.Proposal `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

type ProposalController struct {
	Logger  *slog.Logger
	Service domain.ProposalService
	Catalog domain.FormCatalog
}

func NewProposalController(logger *slog.Logger, svc domain.ProposalService, catalog domain.FormCatalog) *ProposalController {
	return &ProposalController{
		Logger:  logger,
		Service: svc,
		Catalog: catalog,
	}
}

// GetForm godoc
// @Summary Get a proposal form
// @Description Returns the fields of the talk, tutorial or poster form with labels, help text and the required flag.
// @Tags proposals
// @Produce json
// @Param variant path string true "talk, tutorial or poster"
// @Success 200 {object} controllers.FormSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: unsupported_variant"
// @Router /forms/{variant} [get]
func (c *ProposalController) GetForm(w http.ResponseWriter, r *http.Request) {
	variant, err := domain.ParseVariant(r.PathValue("variant"))
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	form, err := domain.FormFor(variant)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	fields := make([]FormField, 0, len(form.Fields))
	for _, name := range form.Fields {
		text := c.Catalog.FieldText(variant, name)
		fields = append(fields, FormField{
			Name:     name,
			Label:    text.Label,
			HelpText: text.HelpText,
			Required: form.IsRequired(name),
		})
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, FormResponse{Variant: variant, Fields: fields})
}

// SubmitProposal godoc
// @Summary Submit a proposal
// @Description Validates and stores a talk, tutorial or poster proposal for the caller's speaker profile. Every invalid field is reported in error.fields.
// @Tags proposals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param variant path string true "talk, tutorial or poster"
// @Param body body domain.ProposalSubmission true "Proposal fields"
// @Success 201 {object} controllers.ProposalSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or unsupported_variant"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: speaker_profile_required"
// @Failure 422 {object} helpers.APIResponse "error.code: validation_failed"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /proposals/{variant} [post]
func (c *ProposalController) SubmitProposal(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	variant, err := domain.ParseVariant(r.PathValue("variant"))
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	var sub domain.ProposalSubmission
	if !helpers.DecodeJSON(w, r, &sub) {
		return
	}
	p, fieldErrs, err := c.Service.SubmitProposal(r.Context(), variant, &sub, principal)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	if len(fieldErrs) > 0 {
		helpers.WriteValidationErrors(w, fieldErrs)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, p)
}

// UpdateProposal godoc
// @Summary Update a proposal
// @Description Re-validates the proposal against the form of its variant and saves it. Only the owning speaker may update.
// @Tags proposals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param proposalID path string true "Proposal ID"
// @Param body body domain.ProposalSubmission true "Proposal fields"
// @Success 200 {object} controllers.ProposalSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 422 {object} helpers.APIResponse "error.code: validation_failed"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /proposals/{proposalID} [put]
func (c *ProposalController) UpdateProposal(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var sub domain.ProposalSubmission
	if !helpers.DecodeJSON(w, r, &sub) {
		return
	}
	p, fieldErrs, err := c.Service.UpdateProposal(r.Context(), r.PathValue("proposalID"), &sub, principal)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	if len(fieldErrs) > 0 {
		helpers.WriteValidationErrors(w, fieldErrs)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, p)
}

// GetProposal godoc
// @Summary Get a proposal
// @Description Returns one of the caller's proposals. Proposals owned by others are reported as not found.
// @Tags proposals
// @Produce json
// @Security BearerAuth
// @Param proposalID path string true "Proposal ID"
// @Success 200 {object} controllers.ProposalSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /proposals/{proposalID} [get]
func (c *ProposalController) GetProposal(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	p, err := c.Service.GetProposal(r.Context(), r.PathValue("proposalID"), principal)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, p)
}

// ListMyProposals godoc
// @Summary List my proposals
// @Description Returns the caller's proposals, newest first.
// @Tags proposals
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ProposalListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: speaker_profile_required"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /proposals/me [get]
func (c *ProposalController) ListMyProposals(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	proposals, err := c.Service.ListMyProposals(r.Context(), principal)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, proposals)
}
