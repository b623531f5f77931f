package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mstojanov/bus-ticketing/backend/internal/domain"
)

// ErrorResponse is the JSON body for every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code, a human-readable message, and,
// for input validation failures, the per-field violations.
type ErrorDetail struct {
	Code    string           `json:"code"`
	Message string           `json:"message"`
	Fields  []FieldViolation `json:"fields,omitempty"`
}

// FieldViolation names one input field that failed validation and why.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// notFoundBody returns an ErrorResponse for a missing resource.
func notFoundBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "not_found", Message: message}}
}

// businessRuleBody returns an ErrorResponse for a domain-rule rejection.
func businessRuleBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "business_rule_violation", Message: message}}
}

// validationBody returns an ErrorResponse for a validation failure with the
// structured list of field violations.
func validationBody(message string, fields []FieldViolation) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "validation_error", Message: message, Fields: fields}}
}

// requestBody returns an ErrorResponse for a request rejected before reaching
// the service layer (malformed JSON, bad UUID, bad query parameter).
func requestBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "bad_request", Message: message}}
}

// writeServiceError maps a service-layer error onto the HTTP error contract:
// not-found → 404 (using the identifier-bearing message when the service
// supplied one), business rule → 400, validation → 422, anything else → 500
// with details only in the log.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFoundFallback string) {
	var nf *domain.NotFoundError
	switch {
	case errors.As(err, &nf):
		writeJSON(w, r, http.StatusNotFound, notFoundBody(nf.Error()))
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, r, http.StatusNotFound, notFoundBody(notFoundFallback))
	case errors.Is(err, domain.ErrBusinessRule):
		writeJSON(w, r, http.StatusBadRequest, businessRuleBody(unwrapMessage(err, domain.ErrBusinessRule)))
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, r, http.StatusUnprocessableEntity, validationBody(unwrapMessage(err, domain.ErrValidation), nil))
	default:
		slog.ErrorContext(r.Context(), "internal error", "error", err)
		writeJSON(w, r, http.StatusInternalServerError, ErrorResponse{
			Error: ErrorDetail{Code: "internal_error", Message: "internal server error"},
		})
	}
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error,
// e.g. "service.TicketService.Renew: business rule violation: single ride
// tickets cannot be renewed" → "single ride tickets cannot be renewed".
func unwrapMessage(err error, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return msg
}
