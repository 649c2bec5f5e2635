package helpers

import (
	"encoding/json"
	"net/http"

	"confsite/internal/domain"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest             = "bad_request"
	ErrCodeUnauthorized           = "unauthorized"
	ErrCodeNotFound               = "not_found"
	ErrCodeValidationFailed       = "validation_failed"
	ErrCodeUnsupportedVariant     = "unsupported_variant"
	ErrCodeSpeakerProfileRequired = "speaker_profile_required"
	ErrCodeSelfInvite             = "self_invite"
	ErrCodeDuplicateInvite        = "duplicate_invite"
	ErrCodeInternalError          = "internal_error"
)

// APIError is the error object in the standardized API response envelope.
// Fields is only set for validation_failed and maps field names to messages.
// swagger:model APIError
type APIError struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

// APIResponse is the standardized envelope for all API responses.
// On success: Data is set, Error is nil. On error: Data is nil, Error is set.
// swagger:model APIResponse
type APIResponse struct {
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
}

// WriteJSONSuccess sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with the given data and error set to nil.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any) {
	writeJSON(w, statusCode, APIResponse{Data: data})
}

// WriteJSONError sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with data nil and the given error code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	writeJSON(w, statusCode, APIResponse{Error: &APIError{Code: code, Message: message}})
}

// WriteValidationErrors answers 422 validation_failed with every field error.
func WriteValidationErrors(w http.ResponseWriter, errs domain.FieldErrors) {
	writeJSON(w, http.StatusUnprocessableEntity, APIResponse{Error: &APIError{
		Code:    ErrCodeValidationFailed,
		Message: "submission has invalid fields",
		Fields:  errs,
	}})
}

func writeJSON(w http.ResponseWriter, statusCode int, body APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
