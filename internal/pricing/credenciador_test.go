package pricing

import (
	"strings"
	"testing"
)

func TestCredenciador_SeedsFromCatalogOnFirstSelection(t *testing.T) {
	c, err := NewCredenciador(UnitCampinas)
	if err != nil {
		t.Fatalf("NewCredenciador: %v", err)
	}

	exams, err := c.Exams(UnitCampinas)
	if err != nil {
		t.Fatalf("Exams: %v", err)
	}
	catalog, err := UnitCatalog(UnitCampinas)
	if err != nil {
		t.Fatalf("UnitCatalog: %v", err)
	}
	if len(exams) != len(catalog) {
		t.Fatalf("seeded %d rows, want %d", len(exams), len(catalog))
	}

	for i, e := range exams {
		if e.Name != strings.ToUpper(catalog[i].Name) {
			t.Fatalf("row %d name = %q, want uppercased %q", i, e.Name, catalog[i].Name)
		}
		if e.Category != strings.ToUpper(catalog[i].Category) {
			t.Fatalf("row %d category = %q, want uppercased %q", i, e.Category, catalog[i].Category)
		}
		nearlyEqual(t, "seeded cost", e.Cost, 0)
		nearlyEqual(t, "seeded margin", e.MarginPercent, 0)
		nearlyEqual(t, "seeded price", e.Price, catalog[i].Price)
	}
}

func TestCredenciador_LastUnitCannotBeDeselected(t *testing.T) {
	c, err := NewCredenciador(UnitSaoPaulo)
	if err != nil {
		t.Fatalf("NewCredenciador: %v", err)
	}

	if err := c.Toggle(UnitSaoPaulo); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	selected := c.SelectedUnits()
	if len(selected) != 1 || selected[0] != UnitSaoPaulo {
		t.Fatalf("last unit was deselected: %v", selected)
	}

	if err := c.Toggle(UnitSantos); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if err := c.Toggle(UnitSaoPaulo); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	selected = c.SelectedUnits()
	if len(selected) != 1 || selected[0] != UnitSantos {
		t.Fatalf("expected only santos selected, got %v", selected)
	}
}

func TestCredenciador_ReselectionKeepsEdits(t *testing.T) {
	c, err := NewCredenciador(UnitSorocaba)
	if err != nil {
		t.Fatalf("NewCredenciador: %v", err)
	}
	if err := c.Toggle(UnitSantos); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if err := c.SetExamCost(UnitSantos, 0, 40); err != nil {
		t.Fatalf("SetExamCost: %v", err)
	}

	if err := c.Toggle(UnitSantos); err != nil {
		t.Fatalf("Toggle off: %v", err)
	}
	if err := c.Toggle(UnitSantos); err != nil {
		t.Fatalf("Toggle on: %v", err)
	}

	exams, err := c.Exams(UnitSantos)
	if err != nil {
		t.Fatalf("Exams: %v", err)
	}
	nearlyEqual(t, "edited cost survives toggle", exams[0].Cost, 40)
}

func TestCredenciador_TotalSumsSelectedUnits(t *testing.T) {
	c, err := NewCredenciador(UnitSaoPaulo)
	if err != nil {
		t.Fatalf("NewCredenciador: %v", err)
	}
	if err := c.Toggle(UnitCampinas); err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	var want float64
	for _, unit := range []UnitID{UnitSaoPaulo, UnitCampinas} {
		catalog, err := UnitCatalog(unit)
		if err != nil {
			t.Fatalf("UnitCatalog: %v", err)
		}
		for _, e := range catalog {
			want += e.Price
		}
	}
	nearlyEqual(t, "consolidated total", c.Total(), want)

	// Deselecting drops that unit's share.
	if err := c.Toggle(UnitCampinas); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if c.Total() >= want {
		t.Fatalf("total did not shrink after deselection")
	}
}

func TestCredenciador_CascadeMarginWithinUnit(t *testing.T) {
	c, err := NewCredenciador(UnitSaoPaulo)
	if err != nil {
		t.Fatalf("NewCredenciador: %v", err)
	}
	if err := c.SetExamMargin(UnitSaoPaulo, 0, 25); err != nil {
		t.Fatalf("SetExamMargin: %v", err)
	}
	if err := c.CascadeMargin(UnitSaoPaulo, 0); err != nil {
		t.Fatalf("CascadeMargin: %v", err)
	}

	exams, err := c.Exams(UnitSaoPaulo)
	if err != nil {
		t.Fatalf("Exams: %v", err)
	}
	for _, e := range exams {
		nearlyEqual(t, "cascaded margin", e.MarginPercent, 25)
		nearlyEqual(t, "cost from own price", e.Cost, e.Price*0.75)
	}
}

func TestCalculateCredenciador_Snapshot(t *testing.T) {
	in := CredenciadorInput{
		Units: []UnitExams{
			{Unit: UnitSaoPaulo, Exams: []PricedExam{{Name: "ASO", Price: 80}, {Name: "AUDIO", Price: 50}}},
			{Unit: UnitSantos, Exams: []PricedExam{{Name: "ASO", Price: 90}}},
		},
	}

	result, err := CalculateCredenciador(in)
	if err != nil {
		t.Fatalf("CalculateCredenciador: %v", err)
	}
	nearlyEqual(t, "sao paulo subtotal", result.Subtotals[0].Subtotal, 130)
	nearlyEqual(t, "santos subtotal", result.Subtotals[1].Subtotal, 90)
	nearlyEqual(t, "total", result.Total, 220)
}

func TestCalculateCredenciador_RejectsBadSnapshots(t *testing.T) {
	if _, err := CalculateCredenciador(CredenciadorInput{}); err == nil {
		t.Fatalf("empty snapshot accepted")
	}
	if _, err := CalculateCredenciador(CredenciadorInput{
		Units: []UnitExams{{Unit: "curitiba"}},
	}); err == nil {
		t.Fatalf("unknown unit accepted")
	}
	if _, err := CalculateCredenciador(CredenciadorInput{
		Units: []UnitExams{{Unit: UnitSantos}, {Unit: UnitSantos}},
	}); err == nil {
		t.Fatalf("duplicated unit accepted")
	}
}

func TestSearchExams_DeduplicatesByName(t *testing.T) {
	all := SearchExams("")
	seen := make(map[string]bool)
	for _, e := range all {
		if seen[e.Name] {
			t.Fatalf("duplicated exam %q in search result", e.Name)
		}
		seen[e.Name] = true
	}

	aso := SearchExams("aso")
	if len(aso) == 0 {
		t.Fatalf("expected matches for 'aso'")
	}
	for _, e := range aso {
		if !strings.Contains(strings.ToLower(e.Name), "aso") {
			t.Fatalf("non-matching result %q", e.Name)
		}
	}
}
