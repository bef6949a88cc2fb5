package main

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/medtrabalho/cotador/internal/money"
	"github.com/medtrabalho/cotador/internal/pricing"
)

// The quote endpoints are stateless: they run the calculator over the posted
// snapshot and return the derived result. Nothing is persisted until the user
// explicitly saves through /api/history.

func (s *server) handleQuoteStandard(w http.ResponseWriter, r *http.Request) {
	var in pricing.StandardInput
	if err := decodeJSON(r.Body, &in); err != nil {
		writeError(w, http.StatusBadRequest, "corpo JSON inválido")
		return
	}

	// The visit rates are admin configuration, never client input.
	settings, err := s.getSettings(r)
	if err != nil {
		s.log.Error("failed to load settings", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "falha ao carregar configuração")
		return
	}
	in.Rates = settings.visitRates()

	result, err := pricing.CalculateStandard(in)
	if err != nil {
		s.writeCalcError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"result":         result,
		"totalFormatted": money.FormatBRL(result.TotalDue),
	})
}

func (s *server) handleQuoteInCompany(w http.ResponseWriter, r *http.Request) {
	var in pricing.InCompanyInput
	if err := decodeJSON(r.Body, &in); err != nil {
		writeError(w, http.StatusBadRequest, "corpo JSON inválido")
		return
	}

	result, err := pricing.CalculateInCompany(in)
	if err != nil {
		s.writeCalcError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"result":         result,
		"totalFormatted": money.FormatBRL(result.FinalValue),
	})
}

func (s *server) handleQuoteCredenciador(w http.ResponseWriter, r *http.Request) {
	var in pricing.CredenciadorInput
	if err := decodeJSON(r.Body, &in); err != nil {
		writeError(w, http.StatusBadRequest, "corpo JSON inválido")
		return
	}

	result, err := pricing.CalculateCredenciador(in)
	if err != nil {
		s.writeCalcError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"result":         result,
		"totalFormatted": money.FormatBRL(result.Total),
	})
}

func (s *server) handleQuotePsychosocial(w http.ResponseWriter, r *http.Request) {
	var in pricing.PsychosocialInput
	if err := decodeJSON(r.Body, &in); err != nil {
		writeError(w, http.StatusBadRequest, "corpo JSON inválido")
		return
	}

	result, err := pricing.CalculatePsychosocial(in)
	if err != nil {
		s.writeCalcError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"result":         result,
		"totalFormatted": money.FormatBRL(result.Fee),
	})
}

func (s *server) handleReferenceTiers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pricing.Ranges())
}

func (s *server) handleReferenceUnits(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pricing.Units())
}

// handleReferenceExams serves either one unit's reference table (?unit=) or a
// deduplicated search across every unit (?q=).
func (s *server) handleReferenceExams(w http.ResponseWriter, r *http.Request) {
	if unit := r.URL.Query().Get("unit"); unit != "" {
		catalog, err := pricing.UnitCatalog(pricing.UnitID(unit))
		if err != nil {
			s.writeCalcError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, catalog)
		return
	}

	writeJSON(w, http.StatusOK, pricing.SearchExams(r.URL.Query().Get("q")))
}
