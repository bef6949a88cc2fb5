package pricing

// ProfessionalType identifies the kind of professional dispatched to the
// client site. The set is closed; unknown values fall back to a flat hourly
// rate instead of failing (lenient by business decision).
type ProfessionalType string

const (
	ProfessionalDoctor       ProfessionalType = "medico"
	ProfessionalNurse        ProfessionalType = "enfermeiro"
	ProfessionalNursingTech  ProfessionalType = "tecnico_enfermagem"
	ProfessionalSafetyTech   ProfessionalType = "tecnico_seguranca"
	ProfessionalAudiologist  ProfessionalType = "fonoaudiologo"
	ProfessionalPsychologist ProfessionalType = "psicologo"
)

const fallbackHourlyRate = 50.0

func hourlyRate(t ProfessionalType) float64 {
	switch t {
	case ProfessionalDoctor:
		return 150
	case ProfessionalNurse:
		return 60
	case ProfessionalNursingTech:
		return 35
	case ProfessionalSafetyTech:
		return 45
	case ProfessionalAudiologist:
		return 80
	case ProfessionalPsychologist:
		return 90
	default:
		return fallbackHourlyRate
	}
}

// VehicleType identifies the vehicle used for the trip. Unknown values fall
// back to a flat rate per km, same policy as professionals.
type VehicleType string

const (
	VehicleSmallCar VehicleType = "carro_pequeno"
	VehicleSUV      VehicleType = "suv"
	VehicleVan      VehicleType = "van"
)

const fallbackKmRate = 1.5

func vehicleKmRate(t VehicleType) float64 {
	switch t {
	case VehicleSmallCar:
		return 1.2
	case VehicleSUV:
		return 1.6
	case VehicleVan:
		return 2.0
	default:
		return fallbackKmRate
	}
}

// Per-professional meal allowances, charged per execution day.
const (
	breakfastFlat = 18.0
	lunchFlat     = 35.0
)

// Professional is one row of the dispatched team.
type Professional struct {
	Type           ProfessionalType `json:"type"`
	Quantity       int              `json:"quantity"`
	ExecutionHours float64          `json:"executionHours"`
	TravelHours    float64          `json:"travelHours"`
}

// Vehicle is one vehicle of the operation.
type Vehicle struct {
	Type         VehicleType `json:"type"`
	DistanceKm   float64     `json:"distanceKm"`
	Tolls        float64     `json:"tolls"`
	DoctorOwnCar bool        `json:"doctorOwnCar"`
}

// ExamItem is one exam sold inside the operation, with a quantity and both
// the client-facing price and the internal cost.
type ExamItem struct {
	Name        string  `json:"name"`
	Quantity    int     `json:"quantity"`
	ClientPrice float64 `json:"clientPrice"`
	CostPrice   float64 `json:"costPrice"`
}

// InCompanyInput is the full snapshot of an In Company operation.
type InCompanyInput struct {
	Professionals     []Professional `json:"professionals"`
	Vehicles          []Vehicle      `json:"vehicles"`
	Exams             []ExamItem     `json:"exams"`
	ExecutionDays     int            `json:"executionDays"`
	EarlyDeparture    bool           `json:"earlyDeparture"`
	MealsPerDay       int            `json:"mealsPerDay"`
	TaxPercent        float64        `json:"taxPercent"`
	CommissionPercent float64        `json:"commissionPercent"`
	MarginPercent     float64        `json:"marginPercent"`
	PrintCost         float64        `json:"printCost"`
	HotelCost         float64        `json:"hotelCost"`
}

// InCompanyResult holds the derived totals of an operation.
type InCompanyResult struct {
	LaborCost     float64 `json:"laborCost"`
	TravelCost    float64 `json:"travelCost"`
	FoodCost      float64 `json:"foodCost"`
	ExamCost      float64 `json:"examCost"`
	ExamRevenue   float64 `json:"examRevenue"`
	OperatingCost float64 `json:"operatingCost"`
	FinalValue    float64 `json:"finalValue"`
	LogisticsFee  float64 `json:"logisticsFee"`
}

// CalculateInCompany prices an on-site operation with the cost-plus-markup
// formula: operating cost grossed up by tax+commission, then margin applied.
// When tax plus commission reaches 100% the final value resolves to 0 rather
// than dividing by zero. The logistics fee is whatever part of the final
// value is not exam revenue.
func CalculateInCompany(in InCompanyInput) (InCompanyResult, error) {
	if err := validateInCompany(in); err != nil {
		return InCompanyResult{}, err
	}

	var labor float64
	var units int
	for _, p := range in.Professionals {
		labor += (p.ExecutionHours + p.TravelHours) * hourlyRate(p.Type) * float64(p.Quantity)
		units += p.Quantity
	}

	var travel float64
	for _, v := range in.Vehicles {
		cost := v.DistanceKm*vehicleKmRate(v.Type) + v.Tolls
		if v.DoctorOwnCar {
			// Reimbursement charged twice when the doctor drives their own
			// car. Confirmed with the product owner as intended.
			cost *= 2
		}
		travel += cost
	}

	var food float64
	if in.EarlyDeparture {
		food = float64(units) * (breakfastFlat + lunchFlat) * float64(in.MealsPerDay) * float64(in.ExecutionDays)
	} else {
		food = float64(units) * lunchFlat * float64(in.ExecutionDays)
	}

	var examCost, examRevenue float64
	for _, e := range in.Exams {
		examCost += e.CostPrice * float64(e.Quantity)
		examRevenue += e.ClientPrice * float64(e.Quantity)
	}

	operating := labor + travel + food + in.PrintCost + in.HotelCost + examCost

	var final float64
	if divisor := 1 - (in.TaxPercent+in.CommissionPercent)/100; divisor > 0 {
		final = operating / divisor * (1 + in.MarginPercent/100)
	}

	return InCompanyResult{
		LaborCost:     labor,
		TravelCost:    travel,
		FoodCost:      food,
		ExamCost:      examCost,
		ExamRevenue:   examRevenue,
		OperatingCost: operating,
		FinalValue:    final,
		LogisticsFee:  final - examRevenue,
	}, nil
}

func validateInCompany(in InCompanyInput) error {
	if in.ExecutionDays < 1 {
		return invalidf("executionDays", "deve ser no mínimo 1, recebido %d", in.ExecutionDays)
	}
	if in.MealsPerDay != 1 && in.MealsPerDay != 2 {
		return invalidf("mealsPerDay", "deve ser 1 ou 2, recebido %d", in.MealsPerDay)
	}
	if err := validatePercent("taxPercent", in.TaxPercent); err != nil {
		return err
	}
	if err := validatePercent("commissionPercent", in.CommissionPercent); err != nil {
		return err
	}
	if err := validatePercent("marginPercent", in.MarginPercent); err != nil {
		return err
	}
	if err := validateNonNegative("printCost", in.PrintCost); err != nil {
		return err
	}
	if err := validateNonNegative("hotelCost", in.HotelCost); err != nil {
		return err
	}
	for i, p := range in.Professionals {
		if p.Quantity < 0 {
			return invalidf("professionals", "linha %d: quantidade negativa", i)
		}
		if p.ExecutionHours < 0 || p.TravelHours < 0 {
			return invalidf("professionals", "linha %d: horas negativas", i)
		}
	}
	for i, v := range in.Vehicles {
		if v.DistanceKm < 0 || v.Tolls < 0 {
			return invalidf("vehicles", "linha %d: valores negativos", i)
		}
	}
	for i, e := range in.Exams {
		if e.Quantity < 0 || e.ClientPrice < 0 || e.CostPrice < 0 {
			return invalidf("exams", "linha %d: valores negativos", i)
		}
	}
	return nil
}
