package engine

import "time"

// Seasonal calendars. Monthly demand multipliers follow Vietnamese retail
// patterns: the Tet slump in Jan/Feb, the September back-to-school spike for
// student-facing trade, and the December holiday peak.

var segmentSeasonal = map[string][12]float64{
	"general": {0.9, 0.8, 1.1, 1.2, 1.0, 0.9, 0.9, 0.9, 1.1, 1.2, 1.3, 1.4},
	"student": {0.7, 0.6, 1.2, 1.3, 1.4, 0.8, 0.7, 0.7, 1.5, 1.3, 1.2, 1.0},
	"office":  {0.9, 0.7, 1.3, 1.2, 1.1, 1.0, 1.1, 1.0, 1.2, 1.3, 1.2, 1.4},
	"family":  {0.9, 0.8, 1.1, 1.2, 1.1, 1.0, 1.3, 1.2, 1.4, 1.2, 1.1, 1.5},
	"tourist": {0.8, 0.7, 1.1, 1.4, 1.2, 0.9, 1.0, 1.0, 1.1, 1.3, 1.4, 1.5},
}

var businessSeasonal = map[string][12]float64{
	"ice_cream":   {0.3, 0.4, 0.7, 1.1, 1.3, 1.2, 1.5, 1.4, 1.1, 0.9, 0.6, 0.5},
	"milk_tea":    {0.8, 0.6, 1.2, 1.3, 1.4, 1.1, 1.0, 0.9, 1.5, 1.3, 1.2, 1.1},
	"spa":         {1.1, 0.8, 1.2, 1.3, 1.2, 1.0, 0.9, 0.9, 1.1, 1.3, 1.4, 1.5},
	"pharmacy":    {1.2, 0.9, 1.1, 1.0, 1.1, 1.3, 1.2, 1.1, 1.0, 1.1, 1.2, 1.3},
	"flower_shop": {0.8, 1.5, 1.4, 1.2, 1.1, 0.9, 0.8, 0.9, 1.0, 1.3, 1.2, 1.4},
	"clothing":    {0.9, 0.8, 1.1, 1.3, 1.2, 1.0, 1.1, 1.0, 1.4, 1.3, 1.2, 1.5},
	"bookstore":   {0.9, 0.7, 1.2, 1.1, 1.0, 0.8, 0.7, 0.8, 1.5, 1.2, 1.1, 1.0},
	"toy_store":   {0.8, 0.9, 1.0, 1.1, 1.2, 1.4, 1.3, 1.2, 1.1, 1.0, 1.2, 1.8},
	"cafe":        {0.9, 0.7, 1.1, 1.2, 1.1, 1.0, 1.0, 1.0, 1.2, 1.3, 1.2, 1.1},
	"gaming":      {1.1, 0.8, 1.0, 1.0, 1.1, 1.2, 1.4, 1.3, 0.9, 1.0, 1.1, 1.2},
}

// SeasonalFactor combines the customer-segment calendar and the
// business-specific calendar into one multiplier, bounded to [0.3, 2.0].
// month is 1-12; 0 resolves to the current month.
func SeasonalFactor(businessID, customerTarget string, month int) float64 {
	if month < 1 || month > 12 {
		month = int(time.Now().Month())
	}

	segment, ok := segmentSeasonal[customerTarget]
	if !ok {
		segment = segmentSeasonal["general"]
	}
	segmentFactor := segment[month-1]

	businessFactor := 1.0
	if cal, ok := businessSeasonal[businessID]; ok {
		businessFactor = cal[month-1]
	}

	combined := segmentFactor*0.4 + businessFactor*0.6
	return clamp(combined, 0.3, 2.0)
}
