package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const maxRequestBody = 1 << 20 // 1 MiB

// envelope is the primary catalog's response wrapper.
type envelope map[string]interface{}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			s.logger.Error().Err(err).Msg("failed to encode response")
		}
	}
}

// respondSuccess wraps the payload as {"success": true, <key>: <data>, ...}.
func (s *Server) respondSuccess(w http.ResponseWriter, status int, data envelope) {
	payload := envelope{"success": true}
	for key, value := range data {
		payload[key] = value
	}
	s.respondJSON(w, status, payload)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, envelope{"success": false, "error": message})
}

func (s *Server) respondInternalError(w http.ResponseWriter, err error, context string) {
	s.logger.Error().Err(err).Msg(context)
	s.respondError(w, http.StatusInternalServerError, "Internal server error")
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func (s *Server) respondDecodeError(w http.ResponseWriter, err error) {
	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxError):
		s.respondError(w, http.StatusBadRequest, "Malformed JSON payload")
	case errors.As(err, &typeError):
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid value for field %s", typeError.Field))
	case errors.Is(err, io.EOF):
		s.respondError(w, http.StatusBadRequest, "Request body cannot be empty")
	default:
		s.respondError(w, http.StatusBadRequest, "Unable to parse request body")
	}
}

// checkRequest validates a decoded request struct and writes a 400 when a
// constraint fails. Returns false when the caller should stop.
func (s *Server) checkRequest(w http.ResponseWriter, req interface{}) bool {
	err := s.validate.Struct(req)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		s.respondError(w, http.StatusBadRequest, validationMessage(first))
		return false
	}
	s.respondError(w, http.StatusBadRequest, "Invalid request payload")
	return false
}

func validationMessage(err validator.FieldError) string {
	field := strings.ToLower(err.Field()[:1]) + err.Field()[1:]
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, err.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func uintParam(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return 0, fmt.Errorf("missing %s parameter", name)
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter", name)
	}
	return uint(id), nil
}
