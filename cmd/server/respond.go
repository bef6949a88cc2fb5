package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/medtrabalho/cotador/internal/pricing"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// decodeJSON decodes exactly one JSON object, rejecting unknown fields and
// trailing content.
func decodeJSON(r io.Reader, dst any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("conteúdo extra após o objeto JSON")
	}
	return nil
}

// writeCalcError maps a calculator error to HTTP: validation failures are the
// caller's fault (422), anything else is ours.
func (s *server) writeCalcError(w http.ResponseWriter, err error) {
	var verr *pricing.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error": "entrada inválida",
			"field": verr.Field,
			"why":   verr.Reason,
		})
		return
	}
	writeError(w, http.StatusInternalServerError, "falha no cálculo")
}
