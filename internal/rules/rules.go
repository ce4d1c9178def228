// Package rules evaluates declarative viability rules against a scored
// business and summarizes the triggered set into an overall risk level.
package rules

// Severity orders how hard a triggered rule should stop the user.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
	SeverityBlocking Severity = "blocking"
)

// severityRank orders blocking first. Lower sorts earlier.
var severityRank = map[Severity]int{
	SeverityBlocking: 0,
	SeverityCritical: 1,
	SeverityWarning:  2,
	SeverityInfo:     3,
}

// Category groups rules by the kind of concern they raise.
type Category string

const (
	CategoryMarket      Category = "market"
	CategoryLegal       Category = "legal"
	CategoryFinancial   Category = "financial"
	CategoryOperational Category = "operational"
	CategoryStrategic   Category = "strategic"
)

// AllCategories lists every category in a stable order.
var AllCategories = []Category{
	CategoryMarket, CategoryLegal, CategoryFinancial,
	CategoryOperational, CategoryStrategic,
}

// categoryConfidence is the base trust per category before scaling by data
// completeness. Legal rules are near-certain; strategic ones are judgment
// calls.
var categoryConfidence = map[Category]float64{
	CategoryLegal:       0.95,
	CategoryOperational: 0.9,
	CategoryMarket:      0.8,
	CategoryFinancial:   0.7,
	CategoryStrategic:   0.6,
}

// Rule is pure data: the triggering logic lives behind Predicate, the name of
// a registered predicate function. Catalogs are built once at engine
// construction and never mutated.
type Rule struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Category       Category `json:"category"`
	Severity       Severity `json:"severity"`
	Predicate      string   `json:"predicate"`
	Message        string   `json:"message"`
	Recommendation string   `json:"recommendation"`
	Priority       int      `json:"priority"` // 1-10, higher surfaces first within a severity
}

// Result is one triggered rule with its evaluation context.
type Result struct {
	RuleID         string         `json:"rule_id"`
	Severity       Severity       `json:"severity"`
	Category       Category       `json:"category"`
	Message        string         `json:"message"`
	Recommendation string         `json:"recommendation"`
	Confidence     float64        `json:"confidence"`
	SupportingData map[string]any `json:"supporting_data,omitempty"`
}

// Summary aggregates an evaluation's results into counts and a single risk
// label.
type Summary struct {
	TotalTriggered int              `json:"total_rules_triggered"`
	BlockingIssues int              `json:"blocking_issues"`
	CriticalIssues int              `json:"critical_issues"`
	Warnings       int              `json:"warnings"`
	InfoItems      int              `json:"info_items"`
	Categories     map[Category]int `json:"categories"`
	OverallRisk    string           `json:"overall_risk"`
}

func generalRules() []Rule {
	return []Rule{
		{
			ID:             "market_oversaturated",
			Name:           "Market Oversaturation",
			Category:       CategoryMarket,
			Severity:       SeverityCritical,
			Predicate:      predMarketSaturation,
			Message:        "market is saturated with this business type",
			Recommendation: "consider pivoting to a related category or a different area",
			Priority:       9,
		},
		{
			ID:             "high_competition",
			Name:           "High Competition",
			Category:       CategoryMarket,
			Severity:       SeverityWarning,
			Predicate:      predHighCompetition,
			Message:        "competition in the area is intense",
			Recommendation: "a strong differentiation strategy is required",
			Priority:       7,
		},
		{
			ID:             "low_profit_potential",
			Name:           "Low Profit Potential",
			Category:       CategoryFinancial,
			Severity:       SeverityWarning,
			Predicate:      predLowFinancialScore,
			Message:        "profitability outlook is weak",
			Recommendation: "look at a lower-cost business model",
			Priority:       8,
		},
		{
			ID:             "high_rent_area",
			Name:           "High Rent Area",
			Category:       CategoryFinancial,
			Severity:       SeverityWarning,
			Predicate:      predHighRentArea,
			Message:        "commercial rents in the area run high",
			Recommendation: "consider an online-first model or a cheaper location",
			Priority:       6,
		},
		{
			ID:             "poor_safety",
			Name:           "Poor Safety Infrastructure",
			Category:       CategoryOperational,
			Severity:       SeverityWarning,
			Predicate:      predNoSafetyInfra,
			Message:        "no safety infrastructure nearby",
			Recommendation: "budget for security or choose another location",
			Priority:       5,
		},
		{
			ID:             "poor_transport",
			Name:           "Poor Transportation",
			Category:       CategoryOperational,
			Severity:       SeverityInfo,
			Predicate:      predLowTransportScore,
			Message:        "public transport access is inconvenient",
			Recommendation: "consider delivery services or online marketing",
			Priority:       4,
		},
		{
			ID:             "declining_market",
			Name:           "Declining Market",
			Category:       CategoryStrategic,
			Severity:       SeverityWarning,
			Predicate:      predLowMarketPotential,
			Message:        "market shows signs of decline",
			Recommendation: "research long-term demand trends before committing",
			Priority:       7,
		},
		{
			ID:             "customer_mismatch",
			Name:           "Customer Target Mismatch",
			Category:       CategoryStrategic,
			Severity:       SeverityWarning,
			Predicate:      predLowCustomerScore,
			Message:        "poor fit with the target customer group",
			Recommendation: "change the target group or pick a different category",
			Priority:       8,
		},
	}
}

func businessRules() map[string][]Rule {
	return map[string][]Rule{
		"cafe": {
			{
				ID:             "cafe_no_office_nearby",
				Name:           "No Office Buildings Nearby",
				Category:       CategoryMarket,
				Severity:       SeverityWarning,
				Predicate:      predFewOffices,
				Message:        "few office buildings around the site",
				Recommendation: "focus on student or residential customers instead",
				Priority:       6,
			},
			{
				ID:             "cafe_too_many_competitors",
				Name:           "Too Many Coffee Shops",
				Category:       CategoryMarket,
				Severity:       SeverityCritical,
				Predicate:      predCafeCrowded,
				Message:        "too many cafes within the search radius",
				Recommendation: "pick another site or a sharply different concept",
				Priority:       9,
			},
		},
		"milk_tea": {
			{
				ID:             "milk_tea_no_students",
				Name:           "No Educational Institutions",
				Category:       CategoryMarket,
				Severity:       SeverityWarning,
				Predicate:      predNoSchools,
				Message:        "no schools near the site",
				Recommendation: "target a different customer group or relocate",
				Priority:       7,
			},
			{
				ID:             "milk_tea_oversaturated",
				Name:           "Milk Tea Market Oversaturated",
				Category:       CategoryMarket,
				Severity:       SeverityBlocking,
				Predicate:      predMilkTeaOversaturated,
				Message:        "the milk tea market here is past saturation",
				Recommendation: "do not open another shop; look at other categories",
				Priority:       10,
			},
		},
		"pharmacy": {
			{
				ID:             "pharmacy_hospital_required",
				Name:           "Hospital Proximity Required",
				Category:       CategoryLegal,
				Severity:       SeverityCritical,
				Predicate:      predNoHospital,
				Message:        "needs proximity to a hospital or clinic",
				Recommendation: "find a site near a medical facility",
				Priority:       9,
			},
			{
				ID:             "pharmacy_license_complex",
				Name:           "Complex Licensing Requirements",
				Category:       CategoryLegal,
				Severity:       SeverityInfo,
				Predicate:      predAlways,
				Message:        "pharmaceutical retail carries heavy licensing requirements",
				Recommendation: "prepare licenses and certified staff in advance",
				Priority:       8,
			},
		},
		"spa": {
			{
				ID:             "spa_high_income_area",
				Name:           "Requires High Income Area",
				Category:       CategoryMarket,
				Severity:       SeverityWarning,
				Predicate:      predLowIncomeArea,
				Message:        "spa services need a higher-income catchment",
				Recommendation: "find a wealthier area or adjust pricing",
				Priority:       7,
			},
			{
				ID:             "spa_parking_needed",
				Name:           "Parking Infrastructure Needed",
				Category:       CategoryOperational,
				Severity:       SeverityInfo,
				Predicate:      predAlways,
				Message:        "spa customers usually arrive by car",
				Recommendation: "secure parking on site or nearby",
				Priority:       5,
			},
		},
		"gaming": {
			{
				ID:             "gaming_student_area",
				Name:           "Student Population Required",
				Category:       CategoryMarket,
				Severity:       SeverityCritical,
				Predicate:      predLowStudentPopulation,
				Message:        "needs a dense student population",
				Recommendation: "find a site near schools or younger neighborhoods",
				Priority:       8,
			},
			{
				ID:             "gaming_noise_regulations",
				Name:           "Noise Regulation Concerns",
				Category:       CategoryLegal,
				Severity:       SeverityWarning,
				Predicate:      predDenseResidential,
				Message:        "dense housing nearby raises noise-complaint risk",
				Recommendation: "check local regulations and invest in soundproofing",
				Priority:       6,
			},
		},
	}
}

func contextualRules() []Rule {
	return []Rule{
		{
			ID:             "pandemic_exposure",
			Name:           "Pandemic Exposure Assessment",
			Category:       CategoryStrategic,
			Severity:       SeverityInfo,
			Predicate:      predPandemicSensitive,
			Message:        "this sector is sensitive to public-health disruptions",
			Recommendation: "prepare a contingency plan for closures",
			Priority:       6,
		},
		{
			ID:             "seasonal_business",
			Name:           "Seasonal Business Pattern",
			Category:       CategoryStrategic,
			Severity:       SeverityInfo,
			Predicate:      predStronglySeasonal,
			Message:        "demand in this sector swings heavily by season",
			Recommendation: "plan cash flow around off-season months",
			Priority:       4,
		},
		{
			ID:             "digital_transformation",
			Name:           "Digital Transformation Required",
			Category:       CategoryStrategic,
			Severity:       SeverityInfo,
			Predicate:      predDigitalPressure,
			Message:        "this sector faces strong online competition",
			Recommendation: "invest in an online presence from day one",
			Priority:       5,
		},
	}
}
