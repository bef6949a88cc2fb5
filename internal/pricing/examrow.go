package pricing

// PricedExam is one editable exam row. Cost, margin and price are three
// mutually derivable fields with asymmetric update rules: editing cost or
// price rederives the margin, editing the margin rederives the cost. Each
// setter is one explicit, one-directional recompute; there is no constraint
// solver and no way to loop.
type PricedExam struct {
	Category      string  `json:"category"`
	Name          string  `json:"name"`
	Cost          float64 `json:"cost"`
	MarginPercent float64 `json:"marginPercent"`
	Price         float64 `json:"price"`
	Deadline      string  `json:"deadline"`
}

// SetCost stores the cost and rederives the margin from the current price.
// A zero price resolves the margin to 0 instead of dividing by zero.
func (e *PricedExam) SetCost(cost float64) error {
	if err := validateNonNegative("cost", cost); err != nil {
		return err
	}
	e.Cost = cost
	e.MarginPercent = marginFrom(e.Cost, e.Price)
	return nil
}

// SetMargin stores the margin and rederives the cost from the current price.
func (e *PricedExam) SetMargin(margin float64) error {
	if err := validatePercent("marginPercent", margin); err != nil {
		return err
	}
	e.MarginPercent = margin
	e.Cost = e.Price * (1 - margin/100)
	return nil
}

// SetPrice stores the price and rederives the margin from the current cost.
func (e *PricedExam) SetPrice(price float64) error {
	if err := validateNonNegative("price", price); err != nil {
		return err
	}
	e.Price = price
	e.MarginPercent = marginFrom(e.Cost, e.Price)
	return nil
}

func marginFrom(cost, price float64) float64 {
	if price == 0 {
		return 0
	}
	return (price - cost) / price * 100
}

// CascadeMargin copies the margin of rows[from] to every later row,
// rederiving each row's cost from that row's own price. Rows before and
// including from are untouched.
func CascadeMargin(rows []PricedExam, from int) error {
	if from < 0 || from >= len(rows) {
		return invalidf("from", "índice %d fora da tabela de %d exames", from, len(rows))
	}
	margin := rows[from].MarginPercent
	for i := from + 1; i < len(rows); i++ {
		rows[i].MarginPercent = margin
		rows[i].Cost = rows[i].Price * (1 - margin/100)
	}
	return nil
}
