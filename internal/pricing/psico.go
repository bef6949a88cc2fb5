package pricing

// PsychosocialInput sizes the standalone psychosocial risk assessment.
type PsychosocialInput struct {
	EmployeeCount int `json:"employeeCount"`
}

// PsychosocialResult is the flat fee derived from the employee band.
type PsychosocialResult struct {
	Tier EmployeeRange `json:"tier"`
	Fee  float64       `json:"fee"`
}

// CalculatePsychosocial prices the standalone psychosocial assessment: a flat
// fee per employee band, no subscription component.
func CalculatePsychosocial(in PsychosocialInput) (PsychosocialResult, error) {
	tier, err := ResolveTier(in.EmployeeCount)
	if err != nil {
		return PsychosocialResult{}, err
	}
	return PsychosocialResult{
		Tier: tier,
		Fee:  tableValue(psychosocialFeeTable, tier.ID),
	}, nil
}
