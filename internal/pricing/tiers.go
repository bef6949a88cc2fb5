package pricing

// EmployeeRange is one contiguous band of employee counts. Every rate table is
// keyed by the band ID.
type EmployeeRange struct {
	ID    string `json:"id"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
	Label string `json:"label"`
}

// employeeRanges covers 1..200 with no gaps and no overlaps: four bands of
// five lives up to 20, then bands of ten up to 200.
var employeeRanges = []EmployeeRange{
	{ID: "R1", Min: 1, Max: 5, Label: "1 a 5 vidas"},
	{ID: "R2", Min: 6, Max: 10, Label: "6 a 10 vidas"},
	{ID: "R3", Min: 11, Max: 15, Label: "11 a 15 vidas"},
	{ID: "R4", Min: 16, Max: 20, Label: "16 a 20 vidas"},
	{ID: "R5", Min: 21, Max: 30, Label: "21 a 30 vidas"},
	{ID: "R6", Min: 31, Max: 40, Label: "31 a 40 vidas"},
	{ID: "R7", Min: 41, Max: 50, Label: "41 a 50 vidas"},
	{ID: "R8", Min: 51, Max: 60, Label: "51 a 60 vidas"},
	{ID: "R9", Min: 61, Max: 70, Label: "61 a 70 vidas"},
	{ID: "R10", Min: 71, Max: 80, Label: "71 a 80 vidas"},
	{ID: "R11", Min: 81, Max: 90, Label: "81 a 90 vidas"},
	{ID: "R12", Min: 91, Max: 100, Label: "91 a 100 vidas"},
	{ID: "R13", Min: 101, Max: 110, Label: "101 a 110 vidas"},
	{ID: "R14", Min: 111, Max: 120, Label: "111 a 120 vidas"},
	{ID: "R15", Min: 121, Max: 130, Label: "121 a 130 vidas"},
	{ID: "R16", Min: 131, Max: 140, Label: "131 a 140 vidas"},
	{ID: "R17", Min: 141, Max: 150, Label: "141 a 150 vidas"},
	{ID: "R18", Min: 151, Max: 160, Label: "151 a 160 vidas"},
	{ID: "R19", Min: 161, Max: 170, Label: "161 a 170 vidas"},
	{ID: "R20", Min: 171, Max: 180, Label: "171 a 180 vidas"},
	{ID: "R21", Min: 181, Max: 190, Label: "181 a 190 vidas"},
	{ID: "R22", Min: 191, Max: 200, Label: "191 a 200 vidas"},
}

// ResolveTier maps an employee count to its band. Counts outside 1..200 are
// rejected with a ValidationError instead of clamping to the nearest band.
func ResolveTier(quantity int) (EmployeeRange, error) {
	if quantity < 1 {
		return EmployeeRange{}, invalidf("employeeCount", "deve ser no mínimo 1, recebido %d", quantity)
	}
	if quantity > maxEmployees {
		return EmployeeRange{}, invalidf("employeeCount", "deve ser no máximo %d, recebido %d", maxEmployees, quantity)
	}

	for _, r := range employeeRanges {
		if quantity >= r.Min && quantity <= r.Max {
			return r, nil
		}
	}

	// Unreachable while employeeRanges covers 1..maxEmployees.
	return EmployeeRange{}, invalidf("employeeCount", "sem faixa para %d vidas", quantity)
}

const maxEmployees = 200

// Ranges returns a copy of the full band list, ordered by Min.
func Ranges() []EmployeeRange {
	out := make([]EmployeeRange, len(employeeRanges))
	copy(out, employeeRanges)
	return out
}
