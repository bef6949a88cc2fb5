package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/medtrabalho/cotador/internal/pricing"
)

func TestQuoteStandardReturnsCalculatedTotal(t *testing.T) {
	srv := newTestServer(t)

	body := `{"employeeCount": 10, "riskLevel": 1, "fidelity": "com_fidelidade"}`
	rec := httptest.NewRecorder()
	srv.handleQuoteStandard(rec, httptest.NewRequest("POST", "/api/quotes/standard", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Result         pricing.StandardResult `json:"result"`
		TotalFormatted string                 `json:"totalFormatted"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Result.Plan != pricing.PlanExpress {
		t.Fatalf("expected express plan for risk 1, got %q", resp.Result.Plan)
	}
	if resp.Result.TotalDue != 900 {
		t.Fatalf("expected total 900, got %v", resp.Result.TotalDue)
	}
	if resp.Result.ProgramFee != 0 {
		t.Fatalf("expected fidelity to waive the program fee, got %v", resp.Result.ProgramFee)
	}
	if resp.TotalFormatted != "R$ 900,00" {
		t.Fatalf("unexpected formatted total: %q", resp.TotalFormatted)
	}
}

func TestQuoteStandardUsesVisitRatesFromSettings(t *testing.T) {
	srv := newTestServer(t)

	// Seeded rates: km 1.2, tax 15%, margin 30%. Dispatched visit, 100 km,
	// 10 in tolls, both ways: raw = (100*1.2 + 10) * 2 = 260.
	body := `{
		"employeeCount": 10,
		"riskLevel": 1,
		"fidelity": "com_fidelidade",
		"visit": {"kind": "equipe_propria", "distanceKm": 100, "tolls": 10}
	}`
	rec := httptest.NewRecorder()
	srv.handleQuoteStandard(rec, httptest.NewRequest("POST", "/api/quotes/standard", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Result pricing.StandardResult `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	want := (100*1.2 + 10) * 2 / 0.85 * 1.3
	if diff := resp.Result.TechnicalVisitFee - want; diff > 1e-6 || diff < -1e-6 {
		t.Fatalf("expected visit fee %v, got %v", want, resp.Result.TechnicalVisitFee)
	}
}

func TestQuoteStandardValidationMapsTo422(t *testing.T) {
	srv := newTestServer(t)

	body := `{"employeeCount": 0, "riskLevel": 1, "fidelity": "com_fidelidade"}`
	rec := httptest.NewRecorder()
	srv.handleQuoteStandard(rec, httptest.NewRequest("POST", "/api/quotes/standard", strings.NewReader(body)))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["field"] == "" || resp["why"] == "" {
		t.Fatalf("expected field and why in the validation payload, got %v", resp)
	}
}

func TestQuoteStandardRejectsUnknownFields(t *testing.T) {
	srv := newTestServer(t)

	// Rates are admin configuration; a client posting them is a bug.
	body := `{"employeeCount": 10, "riskLevel": 1, "fidelity": "com_fidelidade", "rates": {"kmRate": 0}}`
	rec := httptest.NewRecorder()
	srv.handleQuoteStandard(rec, httptest.NewRequest("POST", "/api/quotes/standard", strings.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown fields, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestQuoteInCompanyEndpoint(t *testing.T) {
	srv := newTestServer(t)

	body := `{
		"professionals": [{"type": "medico", "quantity": 1, "executionHours": 2, "travelHours": 0}],
		"vehicles": [{"type": "carro_pequeno", "distanceKm": 100, "tolls": 0, "doctorOwnCar": false}],
		"exams": [],
		"executionDays": 1,
		"earlyDeparture": false,
		"mealsPerDay": 1,
		"taxPercent": 8,
		"commissionPercent": 12,
		"marginPercent": 0,
		"printCost": 0,
		"hotelCost": 0
	}`
	rec := httptest.NewRecorder()
	srv.handleQuoteInCompany(rec, httptest.NewRequest("POST", "/api/quotes/incompany", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Result         pricing.InCompanyResult `json:"result"`
		TotalFormatted string                  `json:"totalFormatted"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	// labor 300 + travel 120 + lunch 35 = 455; 455 / 0.80 = 568.75.
	if resp.Result.FinalValue != 568.75 {
		t.Fatalf("expected final value 568.75, got %v", resp.Result.FinalValue)
	}
	if resp.TotalFormatted != "R$ 568,75" {
		t.Fatalf("unexpected formatted total: %q", resp.TotalFormatted)
	}
}

func TestReferenceEndpoints(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.handleReferenceTiers(rec, httptest.NewRequest("GET", "/api/reference/tiers", nil))
	var tiers []pricing.EmployeeRange
	if err := json.Unmarshal(rec.Body.Bytes(), &tiers); err != nil {
		t.Fatalf("failed to decode tiers: %v", err)
	}
	if len(tiers) != 22 || tiers[0].ID != "R1" {
		t.Fatalf("unexpected tier listing: %d entries", len(tiers))
	}

	rec = httptest.NewRecorder()
	srv.handleReferenceUnits(rec, httptest.NewRequest("GET", "/api/reference/units", nil))
	var units []pricing.UnitID
	if err := json.Unmarshal(rec.Body.Bytes(), &units); err != nil {
		t.Fatalf("failed to decode units: %v", err)
	}
	if len(units) != 4 {
		t.Fatalf("expected 4 units, got %v", units)
	}

	rec = httptest.NewRecorder()
	srv.handleReferenceExams(rec, httptest.NewRequest("GET", "/api/reference/exams?unit="+string(units[0]), nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for unit catalog, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	srv.handleReferenceExams(rec, httptest.NewRequest("GET", "/api/reference/exams?unit=desconhecida", nil))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unknown unit, got %d", rec.Code)
	}
}
