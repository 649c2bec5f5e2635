package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"confsite/internal/domain"
)

// MaxBodyBytes bounds every JSON request body. A full proposal submission is a few KB.
const MaxBodyBytes = 64 << 10

// Validator is implemented by request bodies that check their own fields.
// An empty result means valid.
type Validator interface {
	Validate() domain.FieldErrors
}

// DecodeJSON reads one JSON object from the body into dest. Unknown fields, trailing data and
// bodies over MaxBodyBytes are rejected with 400 bad_request. Callers return when it reports false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, decodeErrorMessage(err))
		return false
	}
	if dec.More() {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "request body must hold a single JSON object")
		return false
	}
	return true
}

// DecodeAndValidate is DecodeJSON followed by dest's Validate, when it has one.
// Field errors are answered with 422 validation_failed, the same shape as proposal validation.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	if !DecodeJSON(w, r, dest) {
		return false
	}
	if v, ok := dest.(Validator); ok {
		if errs := v.Validate(); len(errs) > 0 {
			WriteValidationErrors(w, errs)
			return false
		}
	}
	return true
}

func decodeErrorMessage(err error) string {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit)
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("field %q must be a %s", typeErr.Field, typeErr.Type)
	}
	return "invalid JSON body: " + err.Error()
}
