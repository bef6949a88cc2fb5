package pricing

// FidelityModel is the contract commitment option.
type FidelityModel string

const (
	FidelityNone FidelityModel = "sem_fidelidade"
	Fidelity24m  FidelityModel = "com_fidelidade"
)

// Plan is the commercial label shown to the client. Pricing only cares about
// update-mode and Pro; Essencial bills from the Express table.
type Plan string

const (
	PlanExpress   Plan = "express"
	PlanEssencial Plan = "essencial"
	PlanPro       Plan = "pro"
)

// BillingCycle says whether the subscription is collected monthly or as a
// single annual prepayment.
type BillingCycle string

const (
	CycleMonthly       BillingCycle = "mensal"
	CycleAnnualPrepaid BillingCycle = "anual_antecipado"
)

// TechnicalVisitKind selects how the on-site technical visit is delivered.
type TechnicalVisitKind string

const (
	VisitCompanyDispatched TechnicalVisitKind = "equipe_propria"
	VisitLocalTechnician   TechnicalVisitKind = "tecnico_local"
)

// TechnicalVisit is the optional on-site visit add-on. DistanceKm and Tolls
// apply to the company-dispatched model; LocalCost to the local-technician
// model.
type TechnicalVisit struct {
	Kind       TechnicalVisitKind `json:"kind"`
	DistanceKm float64            `json:"distanceKm"`
	Tolls      float64            `json:"tolls"`
	LocalCost  float64            `json:"localCost"`
}

// VisitRates are externally configured rates applied to the technical visit.
// They come from the settings store, never from this package.
type VisitRates struct {
	KmRate        float64 `json:"kmRate"`
	TaxPercent    float64 `json:"taxPercent"`
	MarginPercent float64 `json:"marginPercent"`
}

// StandardInput is the full input snapshot of the standard SST plan
// calculator. It is treated as immutable: recalculating with an identical
// snapshot yields an identical result.
type StandardInput struct {
	EmployeeCount   int             `json:"employeeCount"`
	RiskLevel       int             `json:"riskLevel"`
	Fidelity        FidelityModel   `json:"fidelity"`
	Renewal         bool            `json:"renewal"`
	UpdateMode      bool            `json:"updateMode"`
	ExternalLives   int             `json:"externalLives"`
	Visit           *TechnicalVisit `json:"visit,omitempty"`
	SpecialDiscount float64         `json:"specialDiscount"`
	Rates           VisitRates      `json:"-"`
}

// StandardResult is the derived pricing record for the standard calculator.
type StandardResult struct {
	Tier                EmployeeRange `json:"tier"`
	Plan                Plan          `json:"plan"`
	BaseMonthly         float64       `json:"baseMonthly"`
	SchedulingSurcharge float64       `json:"schedulingSurcharge"`
	MonthlyTotal        float64       `json:"monthlyTotal"`
	BillingCycle        BillingCycle  `json:"billingCycle"`
	ProgramFee          float64       `json:"programFee"`
	OriginalProgramFee  float64       `json:"originalProgramFee"`
	TechnicalVisitFee   float64       `json:"technicalVisitFee"`
	TotalDue            float64       `json:"totalDue"`
}

// CalculateStandard prices a standard SST subscription.
//
// Plan selection: risk 1 is Express; up to 20 lives is Essencial; above that
// Pro. The program fee is halved on renewal and fully waived under fidelity
// (the waiver wins when both apply; never in update mode). Annual prepayment
// only happens with fidelity, outside update mode and outside the Pro plan;
// Pro and update mode always bill monthly, by commercial decision.
func CalculateStandard(in StandardInput) (StandardResult, error) {
	if err := validateStandard(in); err != nil {
		return StandardResult{}, err
	}

	tier, err := ResolveTier(in.EmployeeCount)
	if err != nil {
		return StandardResult{}, err
	}

	plan := selectPlan(in.RiskLevel, in.EmployeeCount)

	base := tableValue(monthlyTableFor(in.UpdateMode, plan), tier.ID)
	surcharge := float64(in.ExternalLives) * schedulingRatePerLife
	monthly := base + surcharge

	feeTable := programFeeTable
	if in.UpdateMode {
		feeTable = updateProgramFeeTable
	}
	originalFee := tableValue(feeTable, tier.ID)
	fee := originalFee
	if in.Renewal && !in.UpdateMode {
		fee = originalFee * 0.5
	}
	if in.Fidelity == Fidelity24m && !in.UpdateMode {
		fee = 0
	}

	visitFee := technicalVisitFee(in.Visit, in.Rates)

	cycle := CycleMonthly
	due := monthly
	if in.Fidelity == Fidelity24m && !in.UpdateMode && plan != PlanPro {
		cycle = CycleAnnualPrepaid
		due = monthly * 12
	}

	total := fee + due + visitFee - in.SpecialDiscount
	if total < 0 {
		total = 0
	}

	return StandardResult{
		Tier:                tier,
		Plan:                plan,
		BaseMonthly:         base,
		SchedulingSurcharge: surcharge,
		MonthlyTotal:        monthly,
		BillingCycle:        cycle,
		ProgramFee:          fee,
		OriginalProgramFee:  originalFee,
		TechnicalVisitFee:   visitFee,
		TotalDue:            total,
	}, nil
}

func selectPlan(riskLevel, employeeCount int) Plan {
	switch {
	case riskLevel == 1:
		return PlanExpress
	case employeeCount <= 20:
		return PlanEssencial
	default:
		return PlanPro
	}
}

func monthlyTableFor(updateMode bool, plan Plan) map[string]float64 {
	switch {
	case updateMode:
		return updateMonthlyTable
	case plan == PlanPro:
		return proMonthlyTable
	default:
		return expressMonthlyTable
	}
}

// technicalVisitFee grosses the raw visit cost up by tax and margin. The
// company-dispatched model charges the trip both ways. A tax rate of 100% or
// more zeroes the fee instead of dividing by zero.
func technicalVisitFee(v *TechnicalVisit, rates VisitRates) float64 {
	if v == nil {
		return 0
	}

	var raw float64
	switch v.Kind {
	case VisitCompanyDispatched:
		raw = (v.DistanceKm*rates.KmRate + v.Tolls) * 2
	case VisitLocalTechnician:
		raw = v.LocalCost
	}

	divisor := 1 - rates.TaxPercent/100
	if divisor <= 0 {
		return 0
	}
	return raw / divisor * (1 + rates.MarginPercent/100)
}

func validateStandard(in StandardInput) error {
	if in.RiskLevel < 1 || in.RiskLevel > 4 {
		return invalidf("riskLevel", "deve estar entre 1 e 4, recebido %d", in.RiskLevel)
	}
	if in.Fidelity != FidelityNone && in.Fidelity != Fidelity24m {
		return invalidf("fidelity", "valor desconhecido %q", in.Fidelity)
	}
	if in.ExternalLives < 0 {
		return invalidf("externalLives", "não pode ser negativo, recebido %d", in.ExternalLives)
	}
	if in.ExternalLives > in.EmployeeCount {
		return invalidf("externalLives", "não pode exceder o número de funcionários (%d)", in.EmployeeCount)
	}
	if err := validateNonNegative("specialDiscount", in.SpecialDiscount); err != nil {
		return err
	}
	if v := in.Visit; v != nil {
		if v.Kind != VisitCompanyDispatched && v.Kind != VisitLocalTechnician {
			return invalidf("visit.kind", "valor desconhecido %q", v.Kind)
		}
		if err := validateNonNegative("visit.distanceKm", v.DistanceKm); err != nil {
			return err
		}
		if err := validateNonNegative("visit.tolls", v.Tolls); err != nil {
			return err
		}
		if err := validateNonNegative("visit.localCost", v.LocalCost); err != nil {
			return err
		}
	}
	if err := validateNonNegative("rates.kmRate", in.Rates.KmRate); err != nil {
		return err
	}
	if err := validatePercent("rates.taxPercent", in.Rates.TaxPercent); err != nil {
		return err
	}
	if err := validatePercent("rates.marginPercent", in.Rates.MarginPercent); err != nil {
		return err
	}
	return nil
}
