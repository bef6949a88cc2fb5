package main

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/medtrabalho/cotador/internal/pricing"
)

// appSettings is the admin-configured rate singleton. The calculators never
// read it directly: handlers resolve it and pass the values in as plain
// inputs.
type appSettings struct {
	VisitKmRate                float64 `json:"visitKmRate"`
	VisitTaxPercent            float64 `json:"visitTaxPercent"`
	VisitMarginPercent         float64 `json:"visitMarginPercent"`
	InstallmentInterestPercent float64 `json:"installmentInterestPercent"`
}

func (a appSettings) visitRates() pricing.VisitRates {
	return pricing.VisitRates{
		KmRate:        a.VisitKmRate,
		TaxPercent:    a.VisitTaxPercent,
		MarginPercent: a.VisitMarginPercent,
	}
}

func (a appSettings) validate() error {
	if a.VisitKmRate < 0 {
		return fmt.Errorf("visitKmRate deve ser maior ou igual a 0")
	}
	for name, v := range map[string]float64{
		"visitTaxPercent":            a.VisitTaxPercent,
		"visitMarginPercent":         a.VisitMarginPercent,
		"installmentInterestPercent": a.InstallmentInterestPercent,
	} {
		if v < 0 || v > 100 {
			return fmt.Errorf("%s deve estar entre 0 e 100", name)
		}
	}
	return nil
}

func (s *server) getSettings(r *http.Request) (appSettings, error) {
	var a appSettings
	err := s.db.QueryRowContext(r.Context(), `
		SELECT visit_km_rate, visit_tax_percent, visit_margin_percent, installment_interest_percent
		FROM settings
		WHERE id = 1
	`).Scan(&a.VisitKmRate, &a.VisitTaxPercent, &a.VisitMarginPercent, &a.InstallmentInterestPercent)
	if err != nil {
		return appSettings{}, fmt.Errorf("query settings: %w", err)
	}
	return a, nil
}

func (s *server) handleSettingsGet(w http.ResponseWriter, r *http.Request) {
	settings, err := s.getSettings(r)
	if err != nil {
		s.log.Error("failed to load settings", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "falha ao carregar configuração")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *server) handleSettingsUpdate(w http.ResponseWriter, r *http.Request) {
	var settings appSettings
	if err := decodeJSON(r.Body, &settings); err != nil {
		writeError(w, http.StatusBadRequest, "corpo JSON inválido")
		return
	}
	if err := settings.validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	_, err := s.db.ExecContext(r.Context(), `
		UPDATE settings
		SET
			visit_km_rate = ?,
			visit_tax_percent = ?,
			visit_margin_percent = ?,
			installment_interest_percent = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
	`,
		settings.VisitKmRate,
		settings.VisitTaxPercent,
		settings.VisitMarginPercent,
		settings.InstallmentInterestPercent,
	)
	if err != nil {
		s.log.Error("failed to update settings", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "falha ao salvar configuração")
		return
	}

	writeJSON(w, http.StatusOK, settings)
}
