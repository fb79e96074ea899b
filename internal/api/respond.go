package api

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/acework2u/ai-smart-plants/internal/errors"
)

// Every response carries the same envelope:
// {"data": ..., "meta": {...}, "errors": [...]}.

type envelope struct {
	Data   interface{}    `json:"data"`
	Meta   map[string]any `json:"meta"`
	Errors []apiError     `json:"errors"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func writeData(w http.ResponseWriter, status int, data interface{}) {
	writeEnvelope(w, status, envelope{Data: data, Meta: map[string]any{}, Errors: []apiError{}})
}

func writeDataMeta(w http.ResponseWriter, status int, data interface{}, meta map[string]any) {
	writeEnvelope(w, status, envelope{Data: data, Meta: meta, Errors: []apiError{}})
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	out := apiError{Code: "INTERNAL", Message: "internal error"}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		out = apiError{Code: appErr.Code, Message: appErr.Message, Field: appErr.Field}
		switch appErr.Type {
		case apperrors.ErrorTypeValidation:
			status = http.StatusBadRequest
		case apperrors.ErrorTypeNotFound:
			status = http.StatusNotFound
		case apperrors.ErrorTypeExternal, apperrors.ErrorTypeTimeout:
			status = http.StatusBadGateway
		case apperrors.ErrorTypePersistence:
			status = http.StatusInternalServerError
		}
	}

	writeEnvelope(w, status, envelope{Data: nil, Meta: map[string]any{}, Errors: []apiError{out}})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeEnvelope(w, http.StatusBadRequest, envelope{
		Data:   nil,
		Meta:   map[string]any{},
		Errors: []apiError{{Code: "BAD_REQUEST", Message: message}},
	})
}

func writeNotFound(w http.ResponseWriter, message string) {
	writeEnvelope(w, http.StatusNotFound, envelope{
		Data:   nil,
		Meta:   map[string]any{},
		Errors: []apiError{{Code: "NOT_FOUND", Message: message}},
	})
}

func writeEnvelope(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}
