package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"warranty-service/internal/domain"

	log "github.com/sirupsen/logrus"
)

type successEnvelope struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type errorBody struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}

func writeSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, successEnvelope{Message: message, Data: data})
}

func writeError(w http.ResponseWriter, status int, code, message string, fields []string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message, Fields: fields}})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "request body is not valid JSON", nil)
		return false
	}
	return true
}

func writeDomainError(w http.ResponseWriter, err error) {
	var (
		validationErr *domain.ValidationError
		duplicateErr  *domain.DuplicateInvoiceError
		incompleteErr *domain.IncompleteWriteError
		redemptionErr *domain.RedemptionError
	)
	switch {
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error(), validationErr.Fields)
	case errors.As(err, &duplicateErr):
		writeError(w, http.StatusConflict, "duplicate_invoice", err.Error(), []string{"invoice"})
	case errors.As(err, &incompleteErr):
		writeError(w, http.StatusInternalServerError, "incomplete_write", err.Error(), nil)
	case errors.As(err, &redemptionErr):
		writeError(w, http.StatusBadGateway, "redemption_failed", err.Error()+"; look the unit up again before retrying", nil)
	case errors.Is(err, domain.ErrAuthRejected):
		writeError(w, http.StatusUnauthorized, "auth_rejected", domain.ErrAuthRejected.Error(), nil)
	case errors.Is(err, domain.ErrNotLoggedIn):
		writeError(w, http.StatusUnauthorized, "login_required", err.Error(), nil)
	case errors.Is(err, domain.ErrAlreadyRedeemed):
		writeError(w, http.StatusConflict, "already_redeemed", err.Error(), nil)
	case errors.Is(err, domain.ErrNotShopRecord):
		writeError(w, http.StatusForbidden, "foreign_unit", err.Error(), nil)
	case errors.Is(err, domain.ErrRecordNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error(), nil)
	default:
		log.WithError(err).Error("Unhandled error")
		writeError(w, http.StatusInternalServerError, "internal", "internal error", nil)
	}
}
