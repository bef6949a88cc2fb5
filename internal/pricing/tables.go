package pricing

// Hand-authored commercial tables, keyed by band ID. Values are BRL.
// A missing key is not an error: sparse tables resolve to 0 via tableValue.

// expressMonthlyTable is the base subscription for Express and Essencial
// plans (both plans bill from the same table, the label differs).
var expressMonthlyTable = map[string]float64{
	"R1": 65, "R2": 75, "R3": 85, "R4": 95,
	"R5": 110, "R6": 125, "R7": 140, "R8": 155,
	"R9": 170, "R10": 185, "R11": 200, "R12": 215,
	"R13": 230, "R14": 245, "R15": 260, "R16": 275,
	"R17": 290, "R18": 305, "R19": 320, "R20": 335,
	"R21": 350, "R22": 365,
}

// proMonthlyTable starts at R5: the Pro plan only applies above 20 lives, so
// the lower bands were never authored.
var proMonthlyTable = map[string]float64{
	"R5": 145, "R6": 165, "R7": 185, "R8": 205,
	"R9": 225, "R10": 245, "R11": 265, "R12": 285,
	"R13": 305, "R14": 325, "R15": 345, "R16": 365,
	"R17": 385, "R18": 405, "R19": 425, "R20": 445,
	"R21": 465, "R22": 485,
}

// updateMonthlyTable is the subscription when the client only needs the
// yearly document update (modo atualização).
var updateMonthlyTable = map[string]float64{
	"R1": 45, "R2": 52, "R3": 59, "R4": 66,
	"R5": 78, "R6": 90, "R7": 102, "R8": 114,
	"R9": 126, "R10": 138, "R11": 150, "R12": 162,
	"R13": 174, "R14": 186, "R15": 198, "R16": 210,
	"R17": 222, "R18": 234, "R19": 246, "R20": 258,
	"R21": 270, "R22": 282,
}

// programFeeTable is the one-time setup fee for the initial PGR/PCMSO
// documentation.
var programFeeTable = map[string]float64{
	"R1": 350, "R2": 420, "R3": 470, "R4": 510,
	"R5": 550, "R6": 620, "R7": 690, "R8": 760,
	"R9": 830, "R10": 900, "R11": 970, "R12": 1040,
	"R13": 1110, "R14": 1180, "R15": 1250, "R16": 1320,
	"R17": 1390, "R18": 1460, "R19": 1530, "R20": 1600,
	"R21": 1670, "R22": 1740,
}

// updateProgramFeeTable replaces programFeeTable in update mode.
var updateProgramFeeTable = map[string]float64{
	"R1": 210, "R2": 250, "R3": 280, "R4": 310,
	"R5": 330, "R6": 370, "R7": 410, "R8": 460,
	"R9": 500, "R10": 540, "R11": 580, "R12": 620,
	"R13": 670, "R14": 710, "R15": 750, "R16": 790,
	"R17": 830, "R18": 880, "R19": 920, "R20": 960,
	"R21": 1000, "R22": 1040,
}

// psychosocialFeeTable is the flat fee for the standalone psychosocial risk
// assessment product.
var psychosocialFeeTable = map[string]float64{
	"R1": 290, "R2": 340, "R3": 390, "R4": 440,
	"R5": 520, "R6": 600, "R7": 680, "R8": 760,
	"R9": 840, "R10": 920, "R11": 1000, "R12": 1080,
	"R13": 1160, "R14": 1240, "R15": 1320, "R16": 1400,
	"R17": 1480, "R18": 1560, "R19": 1640, "R20": 1720,
	"R21": 1800, "R22": 1880,
}

// schedulingRatePerLife is charged monthly per external life managed through
// the scheduling desk.
const schedulingRatePerLife = 5.5

func tableValue(table map[string]float64, tierID string) float64 {
	return table[tierID]
}
