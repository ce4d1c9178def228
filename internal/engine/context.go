package engine

// Factor names the eight scoring dimensions. The set is fixed; weight maps and
// component score maps are keyed by Factor.
type Factor string

const (
	FactorCustomer    Factor = "customer"
	FactorCompetition Factor = "competition"
	FactorMarket      Factor = "market_potential"
	FactorFinancial   Factor = "financial_viability"
	FactorSafety      Factor = "safety"
	FactorTransport   Factor = "transport"
	FactorLandmark    Factor = "landmark"
	FactorOperational Factor = "operational_feasibility"
)

// AllFactors lists every factor in a stable order.
var AllFactors = []Factor{
	FactorCustomer,
	FactorCompetition,
	FactorMarket,
	FactorFinancial,
	FactorSafety,
	FactorTransport,
	FactorLandmark,
	FactorOperational,
}

// Feature tags reported by the area-feature provider.
const (
	TagSchool      = "school"
	TagHospital    = "hospital"
	TagPharmacy    = "pharmacy"
	TagPolice      = "police"
	TagBusStop     = "bus_stop"
	TagSubway      = "subway"
	TagPark        = "park"
	TagOffice      = "office"
	TagResidential = "residential"
)

// FeatureTags lists every tag the engine understands.
var FeatureTags = []string{
	TagSchool, TagHospital, TagPharmacy, TagPolice,
	TagBusStop, TagSubway, TagPark, TagOffice, TagResidential,
}

// IncomeLevel is the derived income estimate for an area.
type IncomeLevel string

const (
	IncomeLow    IncomeLevel = "low"
	IncomeMedium IncomeLevel = "medium"
	IncomeHigh   IncomeLevel = "high"
)

// MarketContext is an immutable-by-convention snapshot of the area signals an
// analysis runs against. It is built once per request from collaborator
// outputs; scenario and Monte Carlo operations work on a Clone, never on the
// original.
type MarketContext struct {
	OSM               map[string]int `json:"osm"`
	CategoryCounts    map[string]int `json:"category_counts"`
	PopulationDensity float64        `json:"population_density"`
	IncomeLevel       IncomeLevel    `json:"income_level"`
	FootTraffic       float64        `json:"foot_traffic"` // [0,1]
	RentLevel         int            `json:"rent_level"`   // 1 (cheap) .. 4 (prime)
	SeasonalFactor    float64        `json:"seasonal_factor,omitempty"`
}

// Feature returns an OSM feature count, defaulting missing tags to 0.
func (c *MarketContext) Feature(tag string) int {
	if c.OSM == nil {
		return 0
	}
	return c.OSM[tag]
}

// Competitors returns the existing business count for a category.
func (c *MarketContext) Competitors(businessID string) int {
	if c.CategoryCounts == nil {
		return 0
	}
	return c.CategoryCounts[businessID]
}

// TotalBusinesses sums all category counts.
func (c *MarketContext) TotalBusinesses() int {
	total := 0
	for _, n := range c.CategoryCounts {
		total += n
	}
	return total
}

// Clone returns a deep copy safe to mutate independently of the original.
func (c *MarketContext) Clone() *MarketContext {
	cp := *c
	cp.OSM = make(map[string]int, len(c.OSM))
	for k, v := range c.OSM {
		cp.OSM[k] = v
	}
	cp.CategoryCounts = make(map[string]int, len(c.CategoryCounts))
	for k, v := range c.CategoryCounts {
		cp.CategoryCounts[k] = v
	}
	return &cp
}

// Inputs carries the caller-supplied preferences for a scoring run.
type Inputs struct {
	CustomerTarget string `json:"customer_target"`
	PriceLevel     int    `json:"price_level"`
	// Month (1-12) pins the seasonal calendar lookup; 0 means the current
	// month at call time.
	Month int `json:"month,omitempty"`
}

// ComponentScores maps each factor to its [0,1] sub-score.
type ComponentScores map[Factor]float64

// ScoringResult is the complete engine output for one business at one site.
// Built fresh per call and never mutated afterwards.
type ScoringResult struct {
	BusinessID      string             `json:"business_id"`
	Score           float64            `json:"score"`      // 0-100
	Confidence      float64            `json:"confidence"` // [0.5,1] unless degraded
	Components      ComponentScores    `json:"components"`
	Weights         WeightMap          `json:"weights"`
	Reasons         []string           `json:"reasons"`
	Warnings        []string           `json:"warnings,omitempty"`
	Sensitivity     map[Factor]float64 `json:"sensitivity,omitempty"`
	Recommendations []string           `json:"recommendations,omitempty"`
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 { return clamp(v, 0, 1) }
