package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charlesegbo631-code/watchme/internal/domain"
)

const (
	codeNotFound            = "not_found"
	codeForbidden           = "forbidden"
	codeInvalidRequestBody  = "invalid_request_body"
	codeValidationError     = "validation_error"
	codePaymentNotConfirmed = "payment_not_confirmed"
	codeInvalidSignature    = "invalid_signature"
	codeOrderNotFound       = "order_not_found"
	codeConfigurationError  = "configuration_error"
	codeUpstreamError       = "upstream_error"
	codePersistenceError    = "persistence_error"
	codeInternalError       = "internal_error"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{Error: msg, Code: code})
	if err != nil {
		_, _ = w.Write([]byte(`{"success":false,"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeServiceError maps domain error kinds onto the HTTP surface:
// validation and unconfirmed payments are the caller's problem, everything
// else is the operator's.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrPaymentNotConfirmed):
		writeError(w, http.StatusBadRequest, codePaymentNotConfirmed, err.Error())
	case errors.Is(err, domain.ErrInvalidSignature):
		writeError(w, http.StatusBadRequest, codeInvalidSignature, err.Error())
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, codeValidationError, err.Error())
	case errors.Is(err, domain.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, codeOrderNotFound, err.Error())
	case errors.Is(err, domain.ErrConfiguration):
		writeError(w, http.StatusInternalServerError, codeConfigurationError, err.Error())
	case errors.Is(err, domain.ErrUpstream):
		writeError(w, http.StatusInternalServerError, codeUpstreamError, err.Error())
	case errors.Is(err, domain.ErrPersistence):
		writeError(w, http.StatusInternalServerError, codePersistenceError, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
