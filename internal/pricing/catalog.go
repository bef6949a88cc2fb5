package pricing

import "strings"

// CatalogExam is one row of a unit's static reference table: the price the
// accredited clinic practices and its usual result deadline.
type CatalogExam struct {
	Category string  `json:"category"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Deadline string  `json:"deadline"`
}

// unitCatalogs holds the reference exam table of each accredited unit. The
// tables are hand-authored business data; prices differ between units.
var unitCatalogs = map[UnitID][]CatalogExam{
	UnitSaoPaulo: {
		{Category: "Clínico", Name: "ASO Admissional", Price: 85, Deadline: "1 dia útil"},
		{Category: "Clínico", Name: "ASO Periódico", Price: 75, Deadline: "1 dia útil"},
		{Category: "Audiometria", Name: "Audiometria Tonal", Price: 55, Deadline: "2 dias úteis"},
		{Category: "Laboratorial", Name: "Hemograma Completo", Price: 32, Deadline: "3 dias úteis"},
		{Category: "Laboratorial", Name: "Glicemia em Jejum", Price: 18, Deadline: "3 dias úteis"},
		{Category: "Imagem", Name: "Raio-X Tórax PA", Price: 95, Deadline: "2 dias úteis"},
		{Category: "Clínico", Name: "Acuidade Visual", Price: 25, Deadline: "1 dia útil"},
		{Category: "Clínico", Name: "Espirometria", Price: 68, Deadline: "2 dias úteis"},
	},
	UnitCampinas: {
		{Category: "Clínico", Name: "ASO Admissional", Price: 78, Deadline: "1 dia útil"},
		{Category: "Clínico", Name: "ASO Periódico", Price: 70, Deadline: "1 dia útil"},
		{Category: "Audiometria", Name: "Audiometria Tonal", Price: 48, Deadline: "2 dias úteis"},
		{Category: "Laboratorial", Name: "Hemograma Completo", Price: 28, Deadline: "4 dias úteis"},
		{Category: "Imagem", Name: "Raio-X Tórax PA", Price: 88, Deadline: "3 dias úteis"},
		{Category: "Clínico", Name: "Eletrocardiograma", Price: 72, Deadline: "2 dias úteis"},
		{Category: "Clínico", Name: "Espirometria", Price: 60, Deadline: "2 dias úteis"},
	},
	UnitSorocaba: {
		{Category: "Clínico", Name: "ASO Admissional", Price: 72, Deadline: "1 dia útil"},
		{Category: "Clínico", Name: "ASO Demissional", Price: 72, Deadline: "1 dia útil"},
		{Category: "Audiometria", Name: "Audiometria Tonal", Price: 45, Deadline: "3 dias úteis"},
		{Category: "Laboratorial", Name: "Glicemia em Jejum", Price: 15, Deadline: "3 dias úteis"},
		{Category: "Imagem", Name: "Raio-X Coluna Lombar", Price: 110, Deadline: "3 dias úteis"},
		{Category: "Clínico", Name: "Acuidade Visual", Price: 20, Deadline: "1 dia útil"},
	},
	UnitSantos: {
		{Category: "Clínico", Name: "ASO Admissional", Price: 90, Deadline: "1 dia útil"},
		{Category: "Clínico", Name: "ASO Periódico", Price: 82, Deadline: "1 dia útil"},
		{Category: "Audiometria", Name: "Audiometria Tonal", Price: 58, Deadline: "2 dias úteis"},
		{Category: "Laboratorial", Name: "Hemograma Completo", Price: 35, Deadline: "3 dias úteis"},
		{Category: "Clínico", Name: "Eletroencefalograma", Price: 140, Deadline: "5 dias úteis"},
		{Category: "Clínico", Name: "Espirometria", Price: 74, Deadline: "2 dias úteis"},
	},
}

// UnitCatalog returns a copy of a unit's reference table.
func UnitCatalog(id UnitID) ([]CatalogExam, error) {
	catalog, ok := unitCatalogs[id]
	if !ok {
		return nil, invalidf("unit", "unidade desconhecida %q", id)
	}
	out := make([]CatalogExam, len(catalog))
	copy(out, catalog)
	return out, nil
}

// SearchExams looks query up across every unit catalog, case-insensitively,
// deduplicating by exam name (the first unit in declaration order wins). An
// empty query returns the whole deduplicated union.
func SearchExams(query string) []CatalogExam {
	query = strings.ToLower(strings.TrimSpace(query))

	seen := make(map[string]bool)
	out := make([]CatalogExam, 0)
	for _, unit := range unitOrder {
		for _, exam := range unitCatalogs[unit] {
			if seen[exam.Name] {
				continue
			}
			if query != "" && !strings.Contains(strings.ToLower(exam.Name), query) {
				continue
			}
			seen[exam.Name] = true
			out = append(out, exam)
		}
	}
	return out
}
