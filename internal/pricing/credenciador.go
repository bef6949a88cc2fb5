package pricing

import "strings"

// UnitID identifies an accredited unit. The set is closed: internal state is
// kept in fixed-size arrays indexed by unit ordinal, so a missing key can
// never be confused with an empty unit.
type UnitID string

const (
	UnitSaoPaulo UnitID = "sao_paulo"
	UnitCampinas UnitID = "campinas"
	UnitSorocaba UnitID = "sorocaba"
	UnitSantos   UnitID = "santos"
)

var unitOrder = [...]UnitID{UnitSaoPaulo, UnitCampinas, UnitSorocaba, UnitSantos}

const numUnits = len(unitOrder)

func unitIndex(id UnitID) (int, bool) {
	for i, u := range unitOrder {
		if u == id {
			return i, true
		}
	}
	return 0, false
}

// Units returns every known unit in declaration order.
func Units() []UnitID {
	out := make([]UnitID, numUnits)
	copy(out, unitOrder[:])
	return out
}

// Credenciador is the interactive state of a multi-unit proposal: a set of
// selected units, each owning an independent exam table. At least one unit is
// always selected.
type Credenciador struct {
	selected [numUnits]bool
	exams    [numUnits][]PricedExam
}

// NewCredenciador starts a proposal with one selected unit, seeding its exam
// table from the unit's reference catalog.
func NewCredenciador(first UnitID) (*Credenciador, error) {
	i, ok := unitIndex(first)
	if !ok {
		return nil, invalidf("unit", "unidade desconhecida %q", first)
	}
	c := &Credenciador{}
	c.selected[i] = true
	c.exams[i] = seedFromCatalog(first)
	return c, nil
}

// seedFromCatalog builds a unit's initial exam table: names uppercased, cost
// and margin zeroed, price inherited from the reference table.
func seedFromCatalog(id UnitID) []PricedExam {
	catalog := unitCatalogs[id]
	rows := make([]PricedExam, len(catalog))
	for i, exam := range catalog {
		rows[i] = PricedExam{
			Category: strings.ToUpper(exam.Category),
			Name:     strings.ToUpper(exam.Name),
			Price:    exam.Price,
			Deadline: exam.Deadline,
		}
	}
	return rows
}

// Toggle flips a unit's selection. Selecting a unit for the first time seeds
// its exam table; re-selecting keeps previous edits. Deselecting the only
// selected unit is a no-op: a proposal never has zero units.
func (c *Credenciador) Toggle(id UnitID) error {
	i, ok := unitIndex(id)
	if !ok {
		return invalidf("unit", "unidade desconhecida %q", id)
	}

	if c.selected[i] {
		if c.selectedCount() == 1 {
			return nil
		}
		c.selected[i] = false
		return nil
	}

	c.selected[i] = true
	if c.exams[i] == nil {
		c.exams[i] = seedFromCatalog(id)
	}
	return nil
}

func (c *Credenciador) selectedCount() int {
	n := 0
	for _, sel := range c.selected {
		if sel {
			n++
		}
	}
	return n
}

// SelectedUnits lists the selected units in declaration order.
func (c *Credenciador) SelectedUnits() []UnitID {
	out := make([]UnitID, 0, numUnits)
	for i, sel := range c.selected {
		if sel {
			out = append(out, unitOrder[i])
		}
	}
	return out
}

// Exams returns a copy of a unit's current exam table.
func (c *Credenciador) Exams(id UnitID) ([]PricedExam, error) {
	i, ok := unitIndex(id)
	if !ok {
		return nil, invalidf("unit", "unidade desconhecida %q", id)
	}
	out := make([]PricedExam, len(c.exams[i]))
	copy(out, c.exams[i])
	return out, nil
}

func (c *Credenciador) examRow(id UnitID, row int) (*PricedExam, error) {
	i, ok := unitIndex(id)
	if !ok {
		return nil, invalidf("unit", "unidade desconhecida %q", id)
	}
	if row < 0 || row >= len(c.exams[i]) {
		return nil, invalidf("row", "índice %d fora da tabela de %d exames", row, len(c.exams[i]))
	}
	return &c.exams[i][row], nil
}

// SetExamCost edits one row's cost, rederiving its margin.
func (c *Credenciador) SetExamCost(id UnitID, row int, cost float64) error {
	e, err := c.examRow(id, row)
	if err != nil {
		return err
	}
	return e.SetCost(cost)
}

// SetExamMargin edits one row's margin, rederiving its cost.
func (c *Credenciador) SetExamMargin(id UnitID, row int, margin float64) error {
	e, err := c.examRow(id, row)
	if err != nil {
		return err
	}
	return e.SetMargin(margin)
}

// SetExamPrice edits one row's price, rederiving its margin.
func (c *Credenciador) SetExamPrice(id UnitID, row int, price float64) error {
	e, err := c.examRow(id, row)
	if err != nil {
		return err
	}
	return e.SetPrice(price)
}

// CascadeMargin copies one row's margin to every later row of the same unit.
func (c *Credenciador) CascadeMargin(id UnitID, from int) error {
	i, ok := unitIndex(id)
	if !ok {
		return invalidf("unit", "unidade desconhecida %q", id)
	}
	return CascadeMargin(c.exams[i], from)
}

// Total is the consolidated proposal value: the sum of every exam price over
// all selected units. Each row counts once; this mode has no quantity field.
func (c *Credenciador) Total() float64 {
	var total float64
	for i, sel := range c.selected {
		if !sel {
			continue
		}
		for _, e := range c.exams[i] {
			total += e.Price
		}
	}
	return total
}

// UnitExams is one unit's exam table inside a consolidated snapshot.
type UnitExams struct {
	Unit  UnitID       `json:"unit"`
	Exams []PricedExam `json:"exams"`
}

// CredenciadorInput is a stateless snapshot of a multi-unit proposal, as
// submitted by a caller that kept the interactive state elsewhere.
type CredenciadorInput struct {
	Units []UnitExams `json:"units"`
}

// UnitSubtotal is one unit's share of the consolidated total.
type UnitSubtotal struct {
	Unit     UnitID  `json:"unit"`
	Subtotal float64 `json:"subtotal"`
}

// CredenciadorResult is the consolidated pricing of a snapshot.
type CredenciadorResult struct {
	Subtotals []UnitSubtotal `json:"subtotals"`
	Total     float64        `json:"total"`
}

// CalculateCredenciador consolidates a snapshot: per-unit subtotals plus the
// grand total. The snapshot must carry at least one unit, each known and
// listed once.
func CalculateCredenciador(in CredenciadorInput) (CredenciadorResult, error) {
	if len(in.Units) == 0 {
		return CredenciadorResult{}, invalidf("units", "a proposta precisa de pelo menos uma unidade")
	}

	seen := make(map[UnitID]bool, len(in.Units))
	result := CredenciadorResult{Subtotals: make([]UnitSubtotal, 0, len(in.Units))}
	for _, u := range in.Units {
		if _, ok := unitIndex(u.Unit); !ok {
			return CredenciadorResult{}, invalidf("units", "unidade desconhecida %q", u.Unit)
		}
		if seen[u.Unit] {
			return CredenciadorResult{}, invalidf("units", "unidade %q repetida", u.Unit)
		}
		seen[u.Unit] = true

		var subtotal float64
		for i, e := range u.Exams {
			if e.Price < 0 {
				return CredenciadorResult{}, invalidf("units", "unidade %q: exame %d com preço negativo", u.Unit, i)
			}
			subtotal += e.Price
		}
		result.Subtotals = append(result.Subtotals, UnitSubtotal{Unit: u.Unit, Subtotal: subtotal})
		result.Total += subtotal
	}

	return result, nil
}
